package dem_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruppe-adler/flowplot/internal/dem"
)

const header2x2 = "ncols 2\nnrows 2\nxllcorner 10\nyllcorner 20\ncellsize 1.5\nNODATA_value -9999\n"

func parse(t *testing.T, s string) *dem.Grid {
	t.Helper()
	grid, err := dem.ParseEsriASCIIRaster(strings.NewReader(s))
	require.NoError(t, err)
	return grid
}

func TestParseEsriASCIIRaster_Header(t *testing.T) {
	grid := parse(t, header2x2+"1 2\n3 4\n")

	assert.Equal(t, dem.Header{
		Ncols:       2,
		Nrows:       2,
		Xcorner:     10,
		Ycorner:     20,
		CellSize:    1.5,
		NoDataValue: -9999,
	}, grid.Header)
}

func TestParseEsriASCIIRaster_FlipTranspose(t *testing.T) {
	grid := parse(t, header2x2+"1 2\n3 4\n")

	c, r := grid.Height.Dims()
	require.Equal(t, 2, c)
	require.Equal(t, 2, r)

	// height[:, :] == [[3, 1], [4, 2]]
	assert.Equal(t, 3.0, grid.Z(0, 0))
	assert.Equal(t, 1.0, grid.Z(0, 1))
	assert.Equal(t, 4.0, grid.Z(1, 0))
	assert.Equal(t, 2.0, grid.Z(1, 1))
}

func TestParseEsriASCIIRaster_Shape(t *testing.T) {
	input := "ncols 4\nnrows 3\nxllcorner 0\nyllcorner 0\ncellsize 1\nNODATA_value -9999\n" +
		"1 2 3 4\n" +
		"5 6 7 8\n" +
		"9 10 11 12\n"
	grid := parse(t, input)

	c, r := grid.Height.Dims()
	assert.Equal(t, 4, c)
	assert.Equal(t, 3, r)
	c, r = grid.Dims()
	assert.Equal(t, 4, c)
	assert.Equal(t, 3, r)

	// the first body line is the northernmost row
	assert.Equal(t, []float64{1, 2, 3, 4}, []float64{grid.Z(0, 2), grid.Z(1, 2), grid.Z(2, 2), grid.Z(3, 2)})
	assert.Equal(t, []float64{9, 10, 11, 12}, []float64{grid.Z(0, 0), grid.Z(1, 0), grid.Z(2, 0), grid.Z(3, 0)})
}

func TestParseEsriASCIIRaster_Lenient(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"LowerCaseLabels", "NCOLS 2\nNROWS 2\nXLLCORNER 10\nYLLCORNER 20\nCELLSIZE 1.5\nnodata_value -9999\n1 2\n3 4\n"},
		{"PaddedLabels", "ncols     2\nnrows  2\nxllcorner\t10\nyllcorner 20   \ncellsize 1.5\nNODATA_value -9999\n1 2\n3 4\n"},
		{"BlankLines", header2x2 + "1 2\n\n3 4\n\n"},
		{"TabsAndExtraSpaces", header2x2 + "  1\t2 \n3   4"},
		{"FloatDimensions", "ncols 2.0\nnrows 2\nxllcorner 10\nyllcorner 20\ncellsize 1.5\nNODATA_value -9999\n1 2\n3 4\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			grid := parse(t, tc.input)
			assert.Equal(t, 2, grid.Ncols)
			assert.Equal(t, 10.0, grid.Xcorner)
			assert.Equal(t, 3.0, grid.Z(0, 0))
			assert.Equal(t, 2.0, grid.Z(1, 1))
		})
	}
}

func TestParseEsriASCIIRaster_CenterOrigin(t *testing.T) {
	input := "ncols 2\nnrows 2\nxllcenter 10\nyllcenter 20\ncellsize 2\nNODATA_value -9999\n1 2\n3 4\n"
	grid := parse(t, input)

	assert.Equal(t, 9.0, grid.Xcorner)
	assert.Equal(t, 19.0, grid.Ycorner)
}

func TestParseEsriASCIIRaster_Errors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		err   error
	}{
		{"Empty", "", dem.ErrMalformedHeader},
		{"ShortHeader", "ncols 2\nnrows 2\nxllcorner 10\n", dem.ErrMalformedHeader},
		{"SingleToken", "ncols\nnrows 2\nxllcorner 10\nyllcorner 20\ncellsize 1\nNODATA_value -9999\n1 2\n3 4\n", dem.ErrMalformedHeader},
		{"NotANumber", "ncols two\nnrows 2\nxllcorner 10\nyllcorner 20\ncellsize 1\nNODATA_value -9999\n1 2\n3 4\n", dem.ErrMalformedHeader},
		{"WrongOrder", "nrows 2\nncols 2\nxllcorner 10\nyllcorner 20\ncellsize 1\nNODATA_value -9999\n1 2\n3 4\n", dem.ErrMalformedHeader},
		{"MissingNoData", "ncols 2\nnrows 2\nxllcorner 10\nyllcorner 20\ncellsize 1\n1 2\n3 4\n", dem.ErrMalformedHeader},
		{"ZeroCols", "ncols 0\nnrows 2\nxllcorner 10\nyllcorner 20\ncellsize 1\nNODATA_value -9999\n", dem.ErrMalformedHeader},
		{"FractionalRows", "ncols 2\nnrows 2.5\nxllcorner 10\nyllcorner 20\ncellsize 1\nNODATA_value -9999\n1 2\n3 4\n", dem.ErrMalformedHeader},
		{"ZeroCellSize", "ncols 2\nnrows 2\nxllcorner 10\nyllcorner 20\ncellsize 0\nNODATA_value -9999\n1 2\n3 4\n", dem.ErrMalformedHeader},
		{"NegativeCellSize", "ncols 2\nnrows 2\nxllcorner 10\nyllcorner 20\ncellsize -1\nNODATA_value -9999\n1 2\n3 4\n", dem.ErrMalformedHeader},
		{"TooFewRows", header2x2 + "1 2\n", dem.ErrDimensionMismatch},
		{"TooManyRows", header2x2 + "1 2\n3 4\n5 6\n", dem.ErrDimensionMismatch},
		{"ShortRow", header2x2 + "1 2\n3\n", dem.ErrDimensionMismatch},
		{"LongRow", header2x2 + "1 2 9\n3 4\n", dem.ErrDimensionMismatch},
		{"BadValue", header2x2 + "1 x\n3 4\n", dem.ErrMalformedBody},
		{"HugeHeader", "ncols 2000000000\nnrows 2000000000\nxllcorner 0\nyllcorner 0\ncellsize 1\nNODATA_value -9999\n1 2\n", dem.ErrDimensionMismatch},
		{"HugeRowCount", "ncols 2\nnrows 2000000000\nxllcorner 0\nyllcorner 0\ncellsize 1\nNODATA_value -9999\n1 2\n", dem.ErrDimensionMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() {
				_, err = dem.ParseEsriASCIIRaster(strings.NewReader(tc.input))
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
