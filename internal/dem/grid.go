package dem

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// DefaultNoDataValue is the conventional ESRI sentinel for missing samples.
const DefaultNoDataValue = -9999.0

// compatTolerance is the relative tolerance used when comparing grid origins and cell sizes.
const compatTolerance = 1e-9

// Header holds the metadata of an ESRI ASCII Grid
type Header struct {
	Ncols, Nrows     int
	Xcorner, Ycorner float64
	CellSize         float64
	NoDataValue      float64
}

// Grid is an elevation grid. Height has the dimensions (Ncols, Nrows) and is
// indexed [column, row], row 0 being the southernmost row.
type Grid struct {
	Header
	Height *mat.Dense
}

// NewGrid creates a grid for the given header with all heights set to zero.
func NewGrid(h Header) *Grid {
	return &Grid{Header: h, Height: mat.NewDense(h.Ncols, h.Nrows, nil)}
}

// Dims returns the dimensions of the grid.
func (h Header) Dims() (c, r int) {
	return h.Ncols, h.Nrows
}

// X returns the coordinate for the column at the index c.
func (h Header) X(c int) float64 {
	return h.Xcorner + float64(c)*h.CellSize
}

// Y returns the coordinate for the row at the index r.
func (h Header) Y(r int) float64 {
	return h.Ycorner + float64(r)*h.CellSize
}

// XCoordinates returns the Ncols column coordinates, starting at the lower left corner.
func (h Header) XCoordinates() []float64 {
	xs := make([]float64, h.Ncols)
	for i := range xs {
		xs[i] = h.X(i)
	}
	return xs
}

// YCoordinates returns the Nrows row coordinates, starting at the lower left corner.
func (h Header) YCoordinates() []float64 {
	ys := make([]float64, h.Nrows)
	for j := range ys {
		ys[j] = h.Y(j)
	}
	return ys
}

// CellArea returns the area covered by a single cell.
func (h Header) CellArea() float64 {
	return h.CellSize * h.CellSize
}

// Locate returns the indices of the cell containing the point (x, y).
func (h Header) Locate(x, y float64) (c, r int, err error) {
	outsideX := x < h.Xcorner || x >= h.Xcorner+float64(h.Ncols)*h.CellSize
	outsideY := y < h.Ycorner || y >= h.Ycorner+float64(h.Nrows)*h.CellSize
	if outsideX || outsideY {
		return 0, 0, fmt.Errorf("%w: (%g, %g)", ErrOutOfBounds, x, y)
	}

	c = int((x - h.Xcorner) / h.CellSize)
	r = int((y - h.Ycorner) / h.CellSize)

	// guard against rounding right at the upper edge
	if c >= h.Ncols {
		c = h.Ncols - 1
	}
	if r >= h.Nrows {
		r = h.Nrows - 1
	}
	return c, r, nil
}

// Compatible reports whether two headers describe the same cells.
// The no-data value is allowed to differ.
func (h Header) Compatible(other Header) error {
	if h.Ncols != other.Ncols || h.Nrows != other.Nrows {
		return fmt.Errorf("%w: %dx%d vs %dx%d cells", ErrIncompatibleGrids, h.Ncols, h.Nrows, other.Ncols, other.Nrows)
	}
	if !scalar.EqualWithinAbsOrRel(h.CellSize, other.CellSize, compatTolerance, compatTolerance) {
		return fmt.Errorf("%w: cell size %g vs %g", ErrIncompatibleGrids, h.CellSize, other.CellSize)
	}
	tol := compatTolerance * h.CellSize
	if !scalar.EqualWithinAbs(h.Xcorner, other.Xcorner, tol) || !scalar.EqualWithinAbs(h.Ycorner, other.Ycorner, tol) {
		return fmt.Errorf("%w: origin (%g, %g) vs (%g, %g)", ErrIncompatibleGrids,
			h.Xcorner, h.Ycorner, other.Xcorner, other.Ycorner)
	}
	return nil
}

// Z returns the value of a grid value at (c, r).
// It will panic if c or r are out of bounds for the grid.
func (g *Grid) Z(c, r int) float64 {
	return g.Height.At(c, r)
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{Header: g.Header, Height: mat.DenseCopyOf(g.Height)}
}
