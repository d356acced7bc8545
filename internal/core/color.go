package core

import (
	"fmt"
	"image/color"
)

// Commonly used colours. Everything else comes from the constants palette.
var (
	ColorTransparent = color.RGBA{}
	ColorWhite       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColorBlack       = color.RGBA{A: 255}
)

// Blend composites src over dst using src's alpha and returns an opaque colour.
func Blend(dst, src color.RGBA) color.RGBA {
	if src.A == 255 {
		return src
	}
	if src.A == 0 {
		return dst
	}
	a := uint32(src.A)
	mix := func(d, s uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a)) / 255)
	}
	return color.RGBA{
		R: mix(dst.R, src.R),
		G: mix(dst.G, src.G),
		B: mix(dst.B, src.B),
		A: 255,
	}
}

// Hex formats a colour as #rrggbb (alpha is dropped).
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
