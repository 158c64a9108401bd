package terrainrgb_test

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruppe-adler/flowplot/internal/dem"
	"github.com/gruppe-adler/flowplot/internal/terrainrgb"
)

func TestHeightToRgb_RoundTrip(t *testing.T) {
	for _, h := range []float64{-10000, -432.1, 0, 0.05, 1.3, 2962.7, 8848.86, 100000} {
		got := terrainrgb.RgbToHeight(terrainrgb.HeightToRgb(h))
		assert.InDelta(t, h, got, 0.05+1e-9, "height %g", h)
	}
}

func TestHeightToRgb_Known(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 1, G: 134, B: 160, A: 255}, terrainrgb.HeightToRgb(0))
	assert.Equal(t, color.RGBA{A: 255}, terrainrgb.HeightToRgb(-20000), "clamped below")
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, terrainrgb.HeightToRgb(1e9), "clamped above")
}

func TestEncode(t *testing.T) {
	g := dem.NewGrid(dem.Header{Ncols: 2, Nrows: 3, CellSize: 1, NoDataValue: -9999})
	g.Height.Set(0, 0, 12.3)
	g.Height.Set(1, 2, -9999)
	g.Height.Set(0, 2, math.NaN())

	var buf bytes.Buffer
	require.NoError(t, terrainrgb.Encode(&buf, g))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())

	// row 0 is the bottom line of the image
	bottomLeft := color.RGBAModel.Convert(img.At(0, 2)).(color.RGBA)
	assert.InDelta(t, 12.3, terrainrgb.RgbToHeight(bottomLeft), 0.05+1e-9)

	_, _, _, a := img.At(1, 0).RGBA()
	assert.Zero(t, a, "no-data is transparent")
	_, _, _, a = img.At(0, 0).RGBA()
	assert.Zero(t, a, "NaN is transparent")
}
