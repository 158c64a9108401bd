package dem_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruppe-adler/flowplot/internal/dem"
)

func TestCoordinates_ExactLength(t *testing.T) {
	cases := []struct {
		name       string
		header     dem.Header
		wantX0     float64
		wantY0     float64
		wantXCount int
		wantYCount int
	}{
		{"UnevenCellSize", dem.Header{Ncols: 10, Nrows: 7, Xcorner: 0.1, Ycorner: -3, CellSize: 0.3}, 0.1, -3, 10, 7},
		{"TinyCellSize", dem.Header{Ncols: 1000, Nrows: 3, Xcorner: 1e6, Ycorner: 4e6, CellSize: 1e-3}, 1e6, 4e6, 1000, 3},
		{"SingleCell", dem.Header{Ncols: 1, Nrows: 1, Xcorner: 5, Ycorner: 5, CellSize: 25}, 5, 5, 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			xs := tc.header.XCoordinates()
			ys := tc.header.YCoordinates()

			require.Len(t, xs, tc.wantXCount)
			require.Len(t, ys, tc.wantYCount)
			assert.Equal(t, tc.wantX0, xs[0])
			assert.Equal(t, tc.wantY0, ys[0])

			for i, x := range xs {
				assert.InDelta(t, tc.header.Xcorner+float64(i)*tc.header.CellSize, x, 1e-9)
			}
		})
	}
}

func TestCoordinates_Regenerated(t *testing.T) {
	g := dem.NewGrid(dem.Header{Ncols: 10, Nrows: 4, Xcorner: 2, Ycorner: 3, CellSize: 0.3})

	assert.Equal(t, g.XCoordinates(), g.XCoordinates())
	assert.InDelta(t, 2+9*0.3, g.XCoordinates()[9], 1e-12)
	assert.InDelta(t, 3+3*0.3, g.YCoordinates()[3], 1e-12)
	assert.Equal(t, g.X(4), g.XCoordinates()[4])
	assert.Equal(t, g.Y(2), g.YCoordinates()[2])
}

func TestLocate(t *testing.T) {
	h := dem.Header{Ncols: 19, Nrows: 6, Xcorner: 0, Ycorner: 4, CellSize: 1}

	c, r, err := h.Locate(11.4, 7.6)
	require.NoError(t, err)
	assert.Equal(t, 11, c)
	assert.Equal(t, 3, r)

	c, r, err = h.Locate(0, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, c)
	assert.Equal(t, 0, r)

	outside := [][2]float64{{-0.1, 5}, {19, 5}, {3, 3.99}, {3, 10}}
	for _, p := range outside {
		_, _, err := h.Locate(p[0], p[1])
		assert.ErrorIs(t, err, dem.ErrOutOfBounds, "point %v", p)
	}
}

func TestCompatible(t *testing.T) {
	base := dem.Header{Ncols: 3, Nrows: 3, Xcorner: 100, Ycorner: 200, CellSize: 10, NoDataValue: -9999}

	cases := []struct {
		name   string
		mutate func(h *dem.Header)
		ok     bool
	}{
		{"Identical", func(h *dem.Header) {}, true},
		{"OtherNoData", func(h *dem.Header) { h.NoDataValue = -32768 }, true},
		{"RoundingNoise", func(h *dem.Header) { h.Xcorner += 1e-12 }, true},
		{"Cols", func(h *dem.Header) { h.Ncols = 4 }, false},
		{"Rows", func(h *dem.Header) { h.Nrows = 2 }, false},
		{"CellSize", func(h *dem.Header) { h.CellSize = 5 }, false},
		{"OriginX", func(h *dem.Header) { h.Xcorner = 110 }, false},
		{"OriginY", func(h *dem.Header) { h.Ycorner = 190 }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			other := base
			tc.mutate(&other)

			err := base.Compatible(other)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, dem.ErrIncompatibleGrids)
			}
		})
	}
}
