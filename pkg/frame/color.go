package frame

import "image/color"

// Pack565 packs 8-bit samples into an RGB565 word, keeping the top 5, 6
// and 5 bits.
func Pack565(r, g, b uint8) uint16 {
	return uint16(r&0xf8)<<8 | uint16(g&0xfc)<<3 | uint16(b>>3)
}

// Unpack565 expands an RGB565 word to 8-bit samples. The high bits are
// replicated into the low bits so full scale maps to 0xff.
func Unpack565(v uint16) (r, g, b uint8) {
	r5 := uint8(v >> 11)
	g6 := uint8(v>>5) & 0x3f
	b5 := uint8(v) & 0x1f
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// XRGB8888To565 converts a 32bpp framebuffer word (0x00RRGGBB) to RGB565.
func XRGB8888To565(v uint32) uint16 {
	return Pack565(uint8(v>>16), uint8(v>>8), uint8(v))
}

// RGB565Model converts any colour to the nearest RGB565 colour.
var RGB565Model = color.ModelFunc(rgb565Model)

func rgb565Model(c color.Color) color.Color {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	r, g, b := Unpack565(Pack565(rgba.R, rgba.G, rgba.B))
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
