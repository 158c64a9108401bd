package render

import (
	"image"
	"image/color"
	"math"

	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/mat"

	"github.com/gruppe-adler/flowplot/internal/dem"
	"github.com/gruppe-adler/flowplot/internal/flow"
)

// ambient is the share of light that reaches cells facing away from the sun.
const ambient = 0.2

// ShadedOptions configures the shaded relief renderer.
type ShadedOptions struct {
	// Warp scales the vertical relief around the lowest valid height.
	Warp float64
	// Azimuth is the light direction in degrees clockwise from north.
	Azimuth float64
	// Altitude is the light elevation above the horizon in degrees.
	Altitude float64
	// Width of the output image in pixels; 0 keeps one pixel per cell.
	Width uint
}

// DefaultShadedOptions returns the options used when nothing is configured.
func DefaultShadedOptions() ShadedOptions {
	return ShadedOptions{
		Warp:     1,
		Azimuth:  315,
		Altitude: 45,
		Width:    1024,
	}
}

// Shaded renders the warped initial terrain as a gray shaded relief and drapes
// the visible flow over it, shaded by the warped final surface. North is up.
func Shaded(initial, final *dem.Grid, field *flow.Field, opts ShadedOptions) (image.Image, error) {
	if err := initial.Compatible(final.Header); err != nil {
		return nil, err
	}

	initialStats, err := initial.Statistics()
	if err != nil {
		return nil, err
	}
	finalStats, err := final.Statistics()
	if err != nil {
		return nil, err
	}

	terrain := flow.Warp(initial.FilteredNaN().Height, opts.Warp, initialStats.Min)
	surface := flow.Warp(final.FilteredNaN().Height, opts.Warp, finalStats.Min)

	light := lightVector(opts.Azimuth, opts.Altitude)
	terrainShade := hillshade(terrain, initial.CellSize, light)
	surfaceShade := hillshade(surface, final.CellSize, light)

	summary := field.Summary()
	min, max := span(field.Threshold, summary.MaxThickness)
	cm := thicknessColorMap()

	cols, rows := initial.Dims()
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))

	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			y := rows - 1 - r

			if v := field.Z(c, r); !math.IsNaN(v) {
				shade := surfaceShade.At(c, r)
				if math.IsNaN(shade) {
					shade = 1
				}
				t := math.Max(0, math.Min(1, (v-min)/(max-min)))
				base, err := cm.At(t)
				if err != nil {
					return nil, err
				}
				img.Set(c, y, scaleColor(base, ambient+(1-ambient)*shade))
				continue
			}

			shade := terrainShade.At(c, r)
			if math.IsNaN(shade) {
				// no-data: leave transparent
				continue
			}
			g := uint8(math.Round(255 * (ambient + (1-ambient)*shade)))
			img.SetRGBA(c, y, color.RGBA{R: g, G: g, B: g, A: 255})
		}
	}

	if opts.Width == 0 || opts.Width == uint(cols) {
		return img, nil
	}

	return resize.Resize(opts.Width, 0, img, resize.MitchellNetravali), nil
}

type vec3 [3]float64

// lightVector returns the unit vector pointing towards the light source.
// x points east, y north and z up.
func lightVector(azimuth, altitude float64) vec3 {
	az := azimuth * math.Pi / 180
	alt := altitude * math.Pi / 180
	return vec3{
		math.Cos(alt) * math.Sin(az),
		math.Cos(alt) * math.Cos(az),
		math.Sin(alt),
	}
}

// hillshade returns the Lambertian illumination of every cell in [0, 1].
// Cells with a NaN height get a NaN shade.
func hillshade(height *mat.Dense, cellSize float64, light vec3) *mat.Dense {
	cols, rows := height.Dims()
	shade := mat.NewDense(cols, rows, nil)

	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			z := height.At(c, r)
			if math.IsNaN(z) {
				shade.Set(c, r, math.NaN())
				continue
			}

			dzdx := gradient(height, c, r, 1, 0, cellSize)
			dzdy := gradient(height, c, r, 0, 1, cellSize)

			// normal of the surface z = f(x, y) is (-dz/dx, -dz/dy, 1)
			norm := math.Sqrt(dzdx*dzdx + dzdy*dzdy + 1)
			dot := (-dzdx*light[0] - dzdy*light[1] + light[2]) / norm

			shade.Set(c, r, math.Max(0, dot))
		}
	}

	return shade
}

// gradient returns the central difference along (dc, dr), falling back to a
// one-sided difference at edges and next to NaN cells.
func gradient(height *mat.Dense, c, r, dc, dr int, cellSize float64) float64 {
	cols, rows := height.Dims()
	at := func(c, r int) (float64, bool) {
		if c < 0 || r < 0 || c >= cols || r >= rows {
			return 0, false
		}
		v := height.At(c, r)
		return v, !math.IsNaN(v)
	}

	z := height.At(c, r)
	next, okNext := at(c+dc, r+dr)
	prev, okPrev := at(c-dc, r-dr)

	switch {
	case okNext && okPrev:
		return (next - prev) / (2 * cellSize)
	case okNext:
		return (next - z) / cellSize
	case okPrev:
		return (z - prev) / cellSize
	}
	return 0
}

func scaleColor(c color.Color, f float64) color.RGBA {
	r, g, b, _ := c.RGBA()
	scale := func(v uint32) uint8 {
		return uint8(math.Round(math.Min(255, float64(v>>8)*f)))
	}
	return color.RGBA{R: scale(r), G: scale(g), B: scale(b), A: 255}
}
