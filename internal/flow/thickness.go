// Package flow derives the thickness of a flow deposit from two elevation
// grids of the same area, one taken before and one after the event.
package flow

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gruppe-adler/flowplot/internal/dem"
)

// DefaultThreshold is the smallest thickness that is considered part of the flow.
const DefaultThreshold = 1e-12

// Field is the thickness field between an initial and a final grid.
// It satisfies plotter.GridXYZ; Z reports NaN for invisible cells.
type Field struct {
	dem.Header
	Thickness *mat.Dense
	Visible   dem.Mask
	Threshold float64
}

// Thickness returns final - initial for every cell. The heights are used as
// they are, no-data cells included.
func Thickness(initial, final *dem.Grid) (*mat.Dense, error) {
	if err := initial.Compatible(final.Header); err != nil {
		return nil, err
	}

	var thickness mat.Dense
	thickness.Sub(final.Height, initial.Height)
	return &thickness, nil
}

// VisibleMask marks every cell whose thickness is at least threshold.
func VisibleMask(thickness mat.Matrix, threshold float64) dem.Mask {
	cols, rows := thickness.Dims()
	mask := dem.NewMask(cols, rows)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			v := thickness.At(c, r)
			mask.Set(c, r, !math.IsNaN(v) && v >= threshold)
		}
	}
	return mask
}

// Compute derives the thickness field. Cells that are no-data in either grid are
// never visible.
func Compute(initial, final *dem.Grid, threshold float64) (*Field, error) {
	thickness, err := Thickness(initial, final)
	if err != nil {
		return nil, err
	}

	valid := initial.ValidMask().And(final.ValidMask())

	return &Field{
		Header:    initial.Header,
		Thickness: thickness,
		Visible:   VisibleMask(thickness, threshold).And(valid),
		Threshold: threshold,
	}, nil
}

// Z returns the thickness at (c, r), or NaN where the flow is not visible.
func (f *Field) Z(c, r int) float64 {
	if !f.Visible.At(c, r) {
		return math.NaN()
	}
	return f.Thickness.At(c, r)
}

// Grid returns the visible thickness as a grid, invisible cells set to NaN.
func (f *Field) Grid() *dem.Grid {
	g := dem.NewGrid(f.Header)
	g.Height.Apply(func(c, r int, _ float64) float64 {
		return f.Z(c, r)
	}, g.Height)
	return g
}

// Warp rescales heights around minHeight: factor*(h - minHeight) + minHeight.
// A factor of 1 returns an unchanged copy.
func Warp(height mat.Matrix, factor, minHeight float64) *mat.Dense {
	var warped mat.Dense
	if factor == 1 {
		warped.CloneFrom(height)
		return &warped
	}

	warped.Apply(func(_, _ int, h float64) float64 {
		return factor*(h-minHeight) + minHeight
	}, height)
	return &warped
}
