package terrainrgb

import (
	"image/color"
	"math"
)

/*
	Terrain-RGB encodes a height value in the three colour channels:

	height = -10000 + ((R * 256 * 256 + G * 256 + B) * 0.1)

	Replacing (R * 256 * 256 + G * 256 + B) with x and solving for x gives
	x = 10 * height + 100000

	x is then written as a three digit base 256 number, position 2 is r,
	position 1 is g and position 0 is b.
*/

// maxX is the largest value three base 256 digits can hold.
const maxX = 256*256*256 - 1

// HeightToRgb calculates rgb values from height. Heights outside of the
// representable range [-10000, 1667721.5] are clamped.
func HeightToRgb(height float64) color.RGBA {
	x := int64(math.Round(10*height + 100000))
	if x < 0 {
		x = 0
	}
	if x > maxX {
		x = maxX
	}

	b := uint8(x % 256)
	x = x / 256

	g := uint8(x % 256)
	x = x / 256

	r := uint8(x % 256)

	return color.RGBA{
		R: r,
		G: g,
		B: b,
		A: 255,
	}
}

// RgbToHeight calculates height from given rgb values
func RgbToHeight(c color.RGBA) float64 {
	x := int64(c.R)*256*256 + int64(c.G)*256 + int64(c.B)

	return -10000.0 + float64(x)*0.1
}
