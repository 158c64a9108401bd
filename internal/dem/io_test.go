package dem_test

import (
	"bytes"
	"compress/gzip"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/gruppe-adler/flowplot/internal/dem"
)

const sample3x2 = "ncols 3\nnrows 2\nxllcorner 0.5\nyllcorner 4.5\ncellsize 1\nNODATA_value -9999\n" +
	"1 2 3\n" +
	"-9999 5 6.25\n"

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "initial.asc")
	require.NoError(t, os.WriteFile(path, []byte(sample3x2), 0o644))

	grid, err := dem.Read(path)
	require.NoError(t, err)
	assert.Equal(t, 3, grid.Ncols)
	assert.Equal(t, 6.25, grid.Z(2, 0))
	assert.Equal(t, 1.0, grid.Z(0, 1))
}

func TestRead_Gzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(sample3x2))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	path := filepath.Join(t.TempDir(), "dem.asc.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	grid, err := dem.Read(path)
	require.NoError(t, err)
	assert.Equal(t, 5.0, grid.Z(1, 0))
}

func TestRead_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := dem.Read(filepath.Join(dir, "missing.asc"))
	assert.ErrorIs(t, err, dem.ErrFileNotFound)

	// a directory can be opened but not read
	_, err = dem.Read(dir)
	assert.ErrorIs(t, err, dem.ErrIO)

	notGzip := filepath.Join(dir, "plain.asc.gz")
	require.NoError(t, os.WriteFile(notGzip, []byte(sample3x2), 0o644))
	_, err = dem.Read(notGzip)
	assert.ErrorIs(t, err, dem.ErrIO)

	broken := filepath.Join(dir, "broken.asc")
	require.NoError(t, os.WriteFile(broken, []byte(header2x2+"1 2\n"), 0o644))
	_, err = dem.Read(broken)
	assert.ErrorIs(t, err, dem.ErrDimensionMismatch)
	assert.Contains(t, err.Error(), broken)
}

func TestWriteEsriASCIIRaster_RoundTrip(t *testing.T) {
	grid := parse(t, sample3x2)
	filtered := grid.FilteredNaN()

	var buf bytes.Buffer
	require.NoError(t, dem.WriteEsriASCIIRaster(&buf, filtered))

	assert.Equal(t, sample3x2, buf.String())

	again, err := dem.ParseEsriASCIIRaster(&buf)
	require.NoError(t, err)
	assert.Equal(t, grid.Header, again.Header)
	assert.True(t, mat.Equal(grid.Height, again.Height))
}

func TestWrite(t *testing.T) {
	grid := dem.NewGrid(dem.Header{Ncols: 2, Nrows: 1, CellSize: 0.25, NoDataValue: -9999})
	grid.Height.Set(0, 0, 1.5)
	grid.Height.Set(1, 0, math.NaN())

	path := filepath.Join(t.TempDir(), "out.asc")
	require.NoError(t, dem.Write(path, grid))

	read, err := dem.Read(path)
	require.NoError(t, err)
	assert.Equal(t, 1.5, read.Z(0, 0))
	assert.Equal(t, -9999.0, read.Z(1, 0))
	assert.Equal(t, 0.25, read.CellSize)
}
