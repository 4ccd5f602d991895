package codec

import (
	"image"
	"image/color"
)

// backgroundFor picks the fill color matching a decoded image's color model.
// Padding and flattening use white in every model that has one; plain CMYK
// white is all-zero ink.
func backgroundFor(img image.Image) color.Color {
	switch img.(type) {
	case *image.CMYK:
		return color.CMYK{}
	case *image.Gray, *image.Gray16:
		return color.Gray{Y: 255}
	default:
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
}
