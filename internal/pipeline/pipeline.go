// Package pipeline wires the grid loader, the thickness computation and the
// renderers and exporters together. Every command of flowplot is one method.
package pipeline

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
	"golang.org/x/sync/errgroup"

	"github.com/gruppe-adler/flowplot/internal/config"
	"github.com/gruppe-adler/flowplot/internal/dem"
	"github.com/gruppe-adler/flowplot/internal/flow"
	"github.com/gruppe-adler/flowplot/internal/outline"
	"github.com/gruppe-adler/flowplot/internal/render"
	"github.com/gruppe-adler/flowplot/internal/report"
	"github.com/gruppe-adler/flowplot/internal/terrainrgb"
	"github.com/gruppe-adler/flowplot/internal/validate"
)

// Default output paths of the exporters.
const (
	DefaultThicknessOutfile  = "./thickness.asc"
	DefaultOutlineOutfile    = "./outline.geojson"
	DefaultTerrainRGBOutfile = "./terrain.png"
)

// Pipeline runs the commands with the given settings.
type Pipeline struct {
	Settings config.Settings
	Log      logrus.FieldLogger

	// Open shows a written file to the user when running interactively.
	Open func(path string) error
}

// New returns a pipeline logging to log and opening files with the system viewer.
func New(settings config.Settings, log logrus.FieldLogger) *Pipeline {
	return &Pipeline{
		Settings: settings,
		Log:      log,
		Open:     open.Run,
	}
}

// Pair is an initial and a final grid with the thickness field between them.
type Pair struct {
	InitialPath, FinalPath string
	Initial, Final         *dem.Grid
	Field                  *flow.Field
}

// step logs the start of a step and returns a func logging its completion.
func (p *Pipeline) step(msg string, fields logrus.Fields) func() {
	start := time.Now()
	log := p.Log.WithFields(fields)
	log.Debug(msg)
	return func() {
		log.WithField("duration", time.Since(start).String()).Info(msg)
	}
}

// ReadGrid reads a single grid file.
func (p *Pipeline) ReadGrid(path string) (*dem.Grid, error) {
	done := p.step("read grid", logrus.Fields{"path": path})

	grid, err := dem.Read(path)
	if err != nil {
		return nil, err
	}

	done()
	return grid, nil
}

// Load reads both grids concurrently and computes the thickness field with the
// configured threshold.
func (p *Pipeline) Load(ctx context.Context, initialPath, finalPath string) (*Pair, error) {
	if err := validate.GridFiles(initialPath, finalPath); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pair := &Pair{InitialPath: initialPath, FinalPath: finalPath}

	// gctx is cancelled by Wait, so it must not be checked afterwards
	g, gctx := errgroup.WithContext(ctx)
	read := func(path string, dst **dem.Grid) func() error {
		return func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			grid, err := p.ReadGrid(path)
			*dst = grid
			return err
		}
	}
	g.Go(read(initialPath, &pair.Initial))
	g.Go(read(finalPath, &pair.Final))
	if err := g.Wait(); err != nil {
		return nil, err
	}

	done := p.step("computed thickness", logrus.Fields{"threshold": p.Settings.Threshold})
	field, err := flow.Compute(pair.Initial, pair.Final, p.Settings.Threshold)
	if err != nil {
		return nil, err
	}
	done()

	pair.Field = field
	p.Log.WithFields(logrus.Fields{
		"cols":         field.Ncols,
		"rows":         field.Nrows,
		"cellsize":     field.CellSize,
		"visibleCells": field.Visible.Count(),
	}).Info("loaded grids")

	return pair, nil
}

// Contour renders the 2D contour plot and returns the written path.
func (p *Pipeline) Contour(ctx context.Context, initialPath, finalPath string) (string, error) {
	out := p.Settings.Outfile(config.DefaultImageOutfile)
	if err := validate.OutputFile(out); err != nil {
		return "", err
	}

	pair, err := p.Load(ctx, initialPath, finalPath)
	if err != nil {
		return "", err
	}

	done := p.step("rendered contour plot", logrus.Fields{"path": out})
	plt, err := render.Contour(pair.Initial, pair.Field, p.Settings.Contour)
	if err != nil {
		return "", err
	}
	if err := render.SavePlot(plt, out, p.Settings.Contour); err != nil {
		return "", err
	}
	done()

	return out, p.show(out)
}

// Surface renders the shaded relief with the flow overlay and returns the written path.
func (p *Pipeline) Surface(ctx context.Context, initialPath, finalPath string) (string, error) {
	out := p.Settings.Outfile(config.DefaultImageOutfile)
	if err := validate.OutputFile(out); err != nil {
		return "", err
	}

	pair, err := p.Load(ctx, initialPath, finalPath)
	if err != nil {
		return "", err
	}

	done := p.step("rendered shaded surface", logrus.Fields{"path": out, "warp": p.Settings.Shaded.Warp})
	img, err := render.Shaded(pair.Initial, pair.Final, pair.Field, p.Settings.Shaded)
	if err != nil {
		return "", err
	}
	if err := render.SaveImage(out, img); err != nil {
		return "", err
	}
	done()

	return out, p.show(out)
}

// Thickness writes the visible thickness as an ESRI ASCII Grid and returns the written path.
func (p *Pipeline) Thickness(ctx context.Context, initialPath, finalPath string) (string, error) {
	out := p.Settings.Outfile(DefaultThicknessOutfile)
	if err := validate.OutputFile(out); err != nil {
		return "", err
	}

	pair, err := p.Load(ctx, initialPath, finalPath)
	if err != nil {
		return "", err
	}

	done := p.step("wrote thickness grid", logrus.Fields{"path": out})
	if err := dem.Write(out, pair.Field.Grid()); err != nil {
		return "", err
	}
	done()

	return out, nil
}

// Outline writes the GeoJSON outline of the flow and returns the written path.
func (p *Pipeline) Outline(ctx context.Context, initialPath, finalPath string) (string, error) {
	out := p.Settings.Outfile(DefaultOutlineOutfile)
	if err := validate.OutputFile(out); err != nil {
		return "", err
	}

	pair, err := p.Load(ctx, initialPath, finalPath)
	if err != nil {
		return "", err
	}

	done := p.step("wrote outline", logrus.Fields{"path": out})
	if err := writeFile(out, func(w io.Writer) error { return outline.Write(w, pair.Field) }); err != nil {
		return "", err
	}
	done()

	return out, nil
}

// TerrainRGB writes the Terrain-RGB encoding of a single grid and returns the written path.
func (p *Pipeline) TerrainRGB(ctx context.Context, path string) (string, error) {
	out := p.Settings.Outfile(DefaultTerrainRGBOutfile)
	if err := validate.OutputFile(out); err != nil {
		return "", err
	}
	if err := validate.GridFiles(path); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	grid, err := p.ReadGrid(path)
	if err != nil {
		return "", err
	}

	done := p.step("wrote terrain-rgb image", logrus.Fields{"path": out})
	if err := writeFile(out, func(w io.Writer) error { return terrainrgb.Encode(w, grid) }); err != nil {
		return "", err
	}
	done()

	return out, p.show(out)
}

// Stats writes the JSON summary to the configured output file, or to w if none is set.
func (p *Pipeline) Stats(ctx context.Context, initialPath, finalPath string, w io.Writer) error {
	pair, err := p.Load(ctx, initialPath, finalPath)
	if err != nil {
		return err
	}

	r, err := report.New(initialPath, pair.Initial, finalPath, pair.Final, pair.Field)
	if err != nil {
		return err
	}

	if p.Settings.ImageOutfile == "" {
		return r.Write(w)
	}
	if err := validate.OutputFile(p.Settings.ImageOutfile); err != nil {
		return err
	}
	return r.WriteFile(p.Settings.ImageOutfile)
}

// Probe is the state of a single cell.
type Probe struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Col          int     `json:"col"`
	Row          int     `json:"row"`
	Initial      float64 `json:"initial"`
	Final        float64 `json:"final"`
	Thickness    float64 `json:"thickness"`
	Visible      bool    `json:"visible"`
	InitialValid bool    `json:"initialValid"`
	FinalValid   bool    `json:"finalValid"`
}

// Probe reports both heights and the thickness at the point (x, y).
func (p *Pipeline) Probe(ctx context.Context, initialPath, finalPath string, x, y float64) (Probe, error) {
	pair, err := p.Load(ctx, initialPath, finalPath)
	if err != nil {
		return Probe{}, err
	}

	c, r, err := pair.Field.Locate(x, y)
	if err != nil {
		return Probe{}, err
	}

	initial, final := pair.Initial.Z(c, r), pair.Final.Z(c, r)
	return Probe{
		X:            x,
		Y:            y,
		Col:          c,
		Row:          r,
		Initial:      initial,
		Final:        final,
		Thickness:    pair.Field.Thickness.At(c, r),
		Visible:      pair.Field.Visible.At(c, r),
		InitialValid: pair.Initial.IsValid(initial),
		FinalValid:   pair.Final.IsValid(final),
	}, nil
}

// show opens path when running interactively.
func (p *Pipeline) show(path string) error {
	if !p.Settings.Interactive || p.Open == nil {
		return nil
	}
	p.Log.WithField("path", path).Info("opening viewer")
	return p.Open(path)
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
