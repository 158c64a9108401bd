package dem

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// maxLineLength bounds a single body line, wide grids put every row on one line.
const maxLineLength = 256 * 1024 * 1024

// headerKeywords lists the accepted labels of the six header lines in their fixed order.
var headerKeywords = [6][]string{
	{"NCOLS"},
	{"NROWS"},
	{"XLLCORNER", "XLLCENTER"},
	{"YLLCORNER", "YLLCENTER"},
	{"CELLSIZE"},
	{"NODATA_VALUE"},
}

// ParseEsriASCIIRaster parses an ESRI ASCII Grid. The header must consist of
// exactly six lines (ncols, nrows, xllcorner, yllcorner, cellsize,
// NODATA_value) followed by nrows lines of ncols values each.
// The body is stored north to south in the file, the returned grid has row 0
// as its southernmost row.
func ParseEsriASCIIRaster(reader io.Reader) (*Grid, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	header, err := parseHeader(scanner)
	if err != nil {
		return nil, err
	}

	// the matrix is only allocated once the body matches the header
	var values []float64
	lineNumber := len(headerKeywords)
	rowIndex := 0

	for scanner.Scan() {
		lineNumber++
		fields := strings.Fields(scanner.Text())

		// np.loadtxt style: blank lines do not count as rows
		if len(fields) == 0 {
			continue
		}

		if rowIndex >= header.Nrows {
			return nil, fmt.Errorf("%w: more than %d data rows (line %d)", ErrDimensionMismatch, header.Nrows, lineNumber)
		}

		values, err = parseDataLine(values, fields, header.Ncols, lineNumber)
		if err != nil {
			return nil, err
		}
		rowIndex++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	if rowIndex != header.Nrows {
		return nil, fmt.Errorf("%w: got %d data rows, want %d", ErrDimensionMismatch, rowIndex, header.Nrows)
	}

	grid := NewGrid(header)
	for i := 0; i < header.Nrows; i++ {
		for c := 0; c < header.Ncols; c++ {
			grid.Height.Set(c, header.Nrows-1-i, values[i*header.Ncols+c])
		}
	}

	return grid, nil
}

func parseHeader(scanner *bufio.Scanner) (Header, error) {
	var values [6]float64
	var centered [2]bool

	for i, keywords := range headerKeywords {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return Header{}, fmt.Errorf("%w: %v", ErrIO, err)
			}
			return Header{}, fmt.Errorf("%w: line %d: missing %s", ErrMalformedHeader, i+1, keywords[0])
		}

		keyword, value, err := parseHeaderLine(scanner.Text(), keywords, i+1)
		if err != nil {
			return Header{}, err
		}
		values[i] = value

		if keyword == "XLLCENTER" {
			centered[0] = true
		}
		if keyword == "YLLCENTER" {
			centered[1] = true
		}
	}

	ncols, err := dimension(values[0], "ncols")
	if err != nil {
		return Header{}, err
	}
	nrows, err := dimension(values[1], "nrows")
	if err != nil {
		return Header{}, err
	}

	cellSize := values[4]
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return Header{}, fmt.Errorf("%w: cellsize must be greater than 0, got %g", ErrMalformedHeader, cellSize)
	}

	header := Header{
		Ncols:       ncols,
		Nrows:       nrows,
		Xcorner:     values[2],
		Ycorner:     values[3],
		CellSize:    cellSize,
		NoDataValue: values[5],
	}

	// a center origin refers to the middle of the lower left cell
	if centered[0] {
		header.Xcorner -= cellSize / 2
	}
	if centered[1] {
		header.Ycorner -= cellSize / 2
	}

	return header, nil
}

// parseHeaderLine splits a "<label> <value>" line. The value is the last field.
func parseHeaderLine(line string, keywords []string, lineNumber int) (string, float64, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", 0, fmt.Errorf("%w: line %d: expected \"<label> <value>\", got %q", ErrMalformedHeader, lineNumber, line)
	}

	keyword := strings.ToUpper(fields[0])
	if !contains(keywords, keyword) {
		return "", 0, fmt.Errorf("%w: line %d: expected %s, got %s", ErrMalformedHeader, lineNumber, keywords[0], fields[0])
	}

	f, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: line %d: %s value %q is not a number", ErrMalformedHeader, lineNumber, fields[0], fields[len(fields)-1])
	}

	return keyword, f, nil
}

func dimension(v float64, name string) (int, error) {
	if v < 1 || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %g", ErrMalformedHeader, name, v)
	}
	return int(v), nil
}

// parseDataLine appends the values of one body line to values.
func parseDataLine(values []float64, fields []string, cols int, lineNumber int) ([]float64, error) {
	if len(fields) != cols {
		return values, fmt.Errorf("%w: line %d has %d values, want %d", ErrDimensionMismatch, lineNumber, len(fields), cols)
	}

	for c, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return values, fmt.Errorf("%w: line %d, column %d: %q", ErrMalformedBody, lineNumber, c+1, field)
		}
		values = append(values, f)
	}

	return values, nil
}

// contains checks whether an array contains a string
func contains(array []string, element string) bool {
	for _, curElement := range array {
		if curElement == element {
			return true
		}
	}
	return false
}
