package dem

import "errors"

var (
	// ErrMalformedHeader indicates a header line that is missing, mislabelled or not numeric.
	ErrMalformedHeader = errors.New("dem: malformed header")
	// ErrMalformedBody indicates a body value that is not a number.
	ErrMalformedBody = errors.New("dem: malformed data value")
	// ErrDimensionMismatch indicates a body whose shape differs from ncols x nrows.
	ErrDimensionMismatch = errors.New("dem: body does not match declared dimensions")
	// ErrFileNotFound indicates the grid file does not exist.
	ErrFileNotFound = errors.New("dem: file not found")
	// ErrIO indicates any other failure while accessing or reading a grid file.
	ErrIO = errors.New("dem: i/o error")
	// ErrAllCellsInvalid indicates that no cell holds a valid sample.
	ErrAllCellsInvalid = errors.New("dem: all cells are no-data")
	// ErrOutOfBounds indicates a coordinate outside of the grid.
	ErrOutOfBounds = errors.New("dem: coordinates outside of grid")
	// ErrIncompatibleGrids indicates two grids that do not share dimensions, cell size and origin.
	ErrIncompatibleGrids = errors.New("dem: incompatible grids")
)
