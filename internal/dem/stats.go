package dem

import (
	"math"
)

// Stats summarises the heights of a grid. Min and Max only consider valid
// cells, RawMax considers every non-NaN cell including no-data cells.
type Stats struct {
	Min, Max   float64
	RawMax     float64
	ValidCells int
	Cells      int
}

// IsValid reports whether v is a real sample. The +1 margin keeps values that
// are only close to the sentinel classified as no-data; NaN is never valid.
func (g *Grid) IsValid(v float64) bool {
	return v > g.NoDataValue+1
}

// ValidMask returns a mask that is set for every valid cell.
func (g *Grid) ValidMask() Mask {
	mask := NewMask(g.Ncols, g.Nrows)
	for c := 0; c < g.Ncols; c++ {
		for r := 0; r < g.Nrows; r++ {
			mask.Set(c, r, g.IsValid(g.Height.At(c, r)))
		}
	}
	return mask
}

// Statistics computes min and max heights over the valid cells.
func (g *Grid) Statistics() (Stats, error) {
	stats := Stats{
		Min:    math.Inf(1),
		Max:    math.Inf(-1),
		RawMax: math.Inf(-1),
		Cells:  g.Ncols * g.Nrows,
	}

	for c := 0; c < g.Ncols; c++ {
		for r := 0; r < g.Nrows; r++ {
			v := g.Height.At(c, r)

			if v > stats.RawMax {
				stats.RawMax = v
			}

			if !g.IsValid(v) {
				continue
			}

			stats.ValidCells++
			if v < stats.Min {
				stats.Min = v
			}
			if v > stats.Max {
				stats.Max = v
			}
		}
	}

	if stats.ValidCells == 0 {
		return stats, ErrAllCellsInvalid
	}

	return stats, nil
}

// MinHeight returns the minimum height over the valid cells.
func (g *Grid) MinHeight() (float64, error) {
	stats, err := g.Statistics()
	return stats.Min, err
}

// MaxHeight returns the maximum height over the valid cells.
func (g *Grid) MaxHeight() (float64, error) {
	stats, err := g.Statistics()
	return stats.Max, err
}

// RawMaxHeight returns the maximum over all non-NaN cells, no-data cells
// included. It returns -Inf for a grid of NaNs.
func (g *Grid) RawMaxHeight() float64 {
	stats, _ := g.Statistics()
	return stats.RawMax
}

// Filtered returns a copy of the grid with every invalid cell set to
// replacement. The receiver is left untouched.
func (g *Grid) Filtered(replacement float64) *Grid {
	out := g.Clone()
	out.Height.Apply(func(_, _ int, v float64) float64 {
		if g.IsValid(v) {
			return v
		}
		return replacement
	}, out.Height)
	return out
}

// FilteredNaN returns a copy of the grid with every invalid cell set to NaN.
func (g *Grid) FilteredNaN() *Grid {
	return g.Filtered(math.NaN())
}
