package report

import (
	"encoding/json"
	"io"
	"os"

	"github.com/gruppe-adler/flowplot/internal/dem"
	"github.com/gruppe-adler/flowplot/internal/flow"
)

// Surface describes one of the two input grids.
type Surface struct {
	Path       string  `json:"path"`
	MinHeight  float64 `json:"minHeight"`
	MaxHeight  float64 `json:"maxHeight"`
	RawMax     float64 `json:"rawMaxHeight"`
	ValidCells int     `json:"validCells"`
}

// Grid describes the shared geometry of both grids.
type Grid struct {
	Ncols    int     `json:"ncols"`
	Nrows    int     `json:"nrows"`
	Xcorner  float64 `json:"xllcorner"`
	Ycorner  float64 `json:"yllcorner"`
	CellSize float64 `json:"cellsize"`
}

// Report represents the structure of the stats output
type Report struct {
	Grid    Grid         `json:"grid"`
	Initial Surface      `json:"initial"`
	Final   Surface      `json:"final"`
	Flow    flow.Summary `json:"flow"`
}

// New assembles the report of a thickness field and its two source grids.
func New(initialPath string, initial *dem.Grid, finalPath string, final *dem.Grid, field *flow.Field) (Report, error) {
	initialSurface, err := surface(initialPath, initial)
	if err != nil {
		return Report{}, err
	}
	finalSurface, err := surface(finalPath, final)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Grid: Grid{
			Ncols:    field.Ncols,
			Nrows:    field.Nrows,
			Xcorner:  field.Xcorner,
			Ycorner:  field.Ycorner,
			CellSize: field.CellSize,
		},
		Initial: initialSurface,
		Final:   finalSurface,
		Flow:    field.Summary(),
	}, nil
}

func surface(path string, g *dem.Grid) (Surface, error) {
	stats, err := g.Statistics()
	if err != nil {
		return Surface{}, err
	}
	return Surface{
		Path:       path,
		MinHeight:  stats.Min,
		MaxHeight:  stats.Max,
		RawMax:     stats.RawMax,
		ValidCells: stats.ValidCells,
	}, nil
}

// Write the report as indented JSON
func (r Report) Write(w io.Writer) error {
	bytes, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return err
	}

	bytes = append(bytes, '\n')
	_, err = w.Write(bytes)
	return err
}

// WriteFile writes the report to path
func (r Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := r.Write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
