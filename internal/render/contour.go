package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/gruppe-adler/flowplot/internal/dem"
	"github.com/gruppe-adler/flowplot/internal/flow"
)

// ErrUnsupportedFormat indicates an output path with an unknown image extension.
var ErrUnsupportedFormat = errors.New("render: unsupported image format")

// thicknessLevels is the number of colours used for the flow overlay.
const thicknessLevels = 10

// ContourOptions configures the 2D renderer.
type ContourOptions struct {
	// Levels is the number of filled terrain bands.
	Levels int
	Width  vg.Length
	Height vg.Length
	DPI    int
}

// DefaultContourOptions returns the options used when nothing is configured.
func DefaultContourOptions() ContourOptions {
	return ContourOptions{
		Levels: 50,
		Width:  16 * vg.Centimeter,
		Height: 12 * vg.Centimeter,
		DPI:    300,
	}
}

// relief is the filtered terrain relative to its lowest valid cell.
type relief struct {
	*dem.Grid
	min float64
}

func (r relief) Z(c, row int) float64 {
	return r.Grid.Z(c, row) - r.min
}

// centered moves the coordinates of a grid from cell corners to cell centers,
// where plotter.HeatMap expects them.
type centered struct {
	plotter.GridXYZ
	half float64
}

func (g centered) X(c int) float64 { return g.GridXYZ.X(c) + g.half }
func (g centered) Y(r int) float64 { return g.GridXYZ.Y(r) + g.half }

// terrainHeatMap returns the gray bands of the filtered terrain.
func terrainHeatMap(initial *dem.Grid, stats dem.Stats, levels int) *plotter.HeatMap {
	grid := centered{relief{Grid: initial.FilteredNaN(), min: stats.Min}, initial.CellSize / 2}
	terrain := plotter.NewHeatMap(grid, grayPalette(levels))
	terrain.Min, terrain.Max = span(0, stats.Max-stats.Min)
	terrain.NaN = color.Transparent
	terrain.Rasterized = true
	return terrain
}

// Contour plots the terrain as filled gray bands with the visible flow
// thickness on top. Axes are in grid coordinates.
func Contour(initial *dem.Grid, field *flow.Field, opts ContourOptions) (*plot.Plot, error) {
	if opts.Levels < 2 {
		return nil, fmt.Errorf("render: need at least 2 levels, got %d", opts.Levels)
	}

	stats, err := initial.Statistics()
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.X.Label.Text = "x [m]"
	p.Y.Label.Text = "y [m]"

	p.Add(terrainHeatMap(initial, stats, opts.Levels))

	summary := field.Summary()
	if summary.VisibleCells > 0 {
		overlay := plotter.NewHeatMap(centered{field, field.CellSize / 2}, thicknessPalette(thicknessLevels))
		overlay.Min, overlay.Max = span(field.Threshold, summary.MaxThickness)
		overlay.NaN = color.Transparent
		overlay.Underflow = color.Transparent
		overlay.Rasterized = true
		p.Add(overlay)
	}

	xs, ys := initial.XCoordinates(), initial.YCoordinates()
	p.X.Min, p.X.Max = xs[0], xs[len(xs)-1]+initial.CellSize
	p.Y.Min, p.Y.Max = ys[0], ys[len(ys)-1]+initial.CellSize

	return p, nil
}

// span returns a non-empty [min, max] range for a colour scale.
func span(min, max float64) (float64, float64) {
	if !(max > min) {
		return min, min + 1
	}
	return min, max
}

// SavePlot draws the plot and writes it to path. The format follows the
// file extension: png, jpg/jpeg or tif/tiff.
func SavePlot(p *plot.Plot, path string, opts ContourOptions) error {
	c := vgimg.NewWith(vgimg.UseWH(opts.Width, opts.Height), vgimg.UseDPI(opts.DPI))

	var canvas io.WriterTo
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		canvas = vgimg.PngCanvas{Canvas: c}
	case ".jpg", ".jpeg":
		canvas = vgimg.JpegCanvas{Canvas: c}
	case ".tif", ".tiff":
		canvas = vgimg.TiffCanvas{Canvas: c}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := canvas.WriteTo(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
