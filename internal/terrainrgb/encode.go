package terrainrgb

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/gruppe-adler/flowplot/internal/dem"
)

// Image encodes the grid as a Terrain-RGB image with north at the top. Cells
// that are no-data or NaN are left transparent.
func Image(g *dem.Grid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Ncols, g.Nrows))

	for c := 0; c < g.Ncols; c++ {
		for r := 0; r < g.Nrows; r++ {
			v := g.Z(c, r)
			if !g.IsValid(v) {
				img.SetRGBA(c, g.Nrows-1-r, color.RGBA{})
				continue
			}
			img.SetRGBA(c, g.Nrows-1-r, HeightToRgb(v))
		}
	}

	return img
}

// Encode writes the Terrain-RGB image of the grid as PNG.
func Encode(w io.Writer, g *dem.Grid) error {
	return png.Encode(w, Image(g))
}
