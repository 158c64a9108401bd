package dem

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// WriteEsriASCIIRaster writes the grid as an ESRI ASCII Grid, northernmost
// row first. NaN cells are written as the no-data value.
func WriteEsriASCIIRaster(writer io.Writer, g *Grid) error {
	w := bufio.NewWriter(writer)

	fmt.Fprintf(w, "ncols %d\n", g.Ncols)
	fmt.Fprintf(w, "nrows %d\n", g.Nrows)
	fmt.Fprintf(w, "xllcorner %s\n", formatValue(g.Xcorner))
	fmt.Fprintf(w, "yllcorner %s\n", formatValue(g.Ycorner))
	fmt.Fprintf(w, "cellsize %s\n", formatValue(g.CellSize))
	fmt.Fprintf(w, "NODATA_value %s\n", formatValue(g.NoDataValue))

	line := make([]byte, 0, 16*g.Ncols)
	for r := g.Nrows - 1; r >= 0; r-- {
		line = line[:0]
		for c := 0; c < g.Ncols; c++ {
			if c > 0 {
				line = append(line, ' ')
			}
			v := g.Height.At(c, r)
			if math.IsNaN(v) {
				v = g.NoDataValue
			}
			line = strconv.AppendFloat(line, v, 'g', -1, 64)
		}
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// Write stores the grid at path.
func Write(path string, g *Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	if err := WriteEsriASCIIRaster(f, g); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

func formatValue(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
