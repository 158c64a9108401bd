package render

import (
	"image/color"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// grayPalette is a linear black to white palette.
type grayPalette int

// Colors implements palette.Palette.
func (n grayPalette) Colors() []color.Color {
	colors := make([]color.Color, int(n))
	for i := range colors {
		v := uint8(0)
		if n > 1 {
			v = uint8(255 * i / (int(n) - 1))
		}
		colors[i] = color.Gray{Y: v}
	}
	return colors
}

// thicknessColorMap is the colour map of the flow overlay, dark for thin and
// bright for thick deposits.
func thicknessColorMap() palette.ColorMap {
	cm := moreland.ExtendedBlackBody()
	cm.SetMin(0)
	cm.SetMax(1)
	return cm
}

// thicknessPalette returns n colours of the flow overlay.
func thicknessPalette(n int) palette.Palette {
	return thicknessColorMap().Palette(n)
}
