// Package frame holds the framebuffers handed to matrix drivers: packed
// 24-bit RGB and 16-bit RGB565, both usable as draw.Image.
package frame

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/pkg/errors"
)

// Format is a framebuffer pixel layout.
type Format int

const (
	// RGB888Packed stores three bytes per pixel, red first.
	RGB888Packed Format = iota
	// RGB565 stores one 16-bit word per pixel.
	RGB565
)

func (f Format) String() string {
	switch f {
	case RGB888Packed:
		return "rgb888"
	case RGB565:
		return "rgb565"
	}
	return "unknown"
}

// BytesPerPixel returns the size of one pixel in bytes.
func (f Format) BytesPerPixel() int {
	if f == RGB565 {
		return 2
	}
	return 3
}

// ParseFormat returns the format named by s ("rgb888" or "rgb565").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rgb888", "rgb888packed", "":
		return RGB888Packed, nil
	case "rgb565":
		return RGB565, nil
	}
	return 0, errors.Errorf("unknown pixel format %q", s)
}

// Frame is a framebuffer a driver can present.
type Frame interface {
	draw.Image
	Format() Format
	// Clone returns a deep copy.
	Clone() Frame
	// Bytes returns the pixels in driver memory order (little-endian words
	// for RGB565).
	Bytes() []byte
}

// New allocates a black frame.
func New(f Format, width, height int) (Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid frame dimensions: %dx%d", width, height)
	}
	switch f {
	case RGB888Packed:
		return NewRGB888(width, height), nil
	case RGB565:
		return NewRGB565(width, height), nil
	}
	return nil, errors.Errorf("unknown pixel format %d", int(f))
}

// RGB888 is a packed 24-bit frame.
type RGB888 struct {
	Pix    []uint8
	Width  int
	Height int
}

// NewRGB888 allocates a black width x height frame.
func NewRGB888(width, height int) *RGB888 {
	return &RGB888{
		Pix:    make([]uint8, width*height*3),
		Width:  width,
		Height: height,
	}
}

func (p *RGB888) Format() Format { return RGB888Packed }

func (p *RGB888) ColorModel() color.Model { return color.RGBAModel }

func (p *RGB888) Bounds() image.Rectangle { return image.Rect(0, 0, p.Width, p.Height) }

// PixOffset returns the index of the first byte of pixel (x, y).
func (p *RGB888) PixOffset(x, y int) int {
	return (y*p.Width + x) * 3
}

func (p *RGB888) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Bounds())) {
		return color.RGBA{}
	}
	r, g, b := p.RGBAt(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// RGBAt returns the samples of pixel (x, y), which must be in bounds.
func (p *RGB888) RGBAt(x, y int) (r, g, b uint8) {
	i := p.PixOffset(x, y)
	return p.Pix[i], p.Pix[i+1], p.Pix[i+2]
}

func (p *RGB888) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Bounds())) {
		return
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	p.SetRGB(x, y, rgba.R, rgba.G, rgba.B)
}

// SetRGB stores samples at (x, y), which must be in bounds.
func (p *RGB888) SetRGB(x, y int, r, g, b uint8) {
	i := p.PixOffset(x, y)
	p.Pix[i], p.Pix[i+1], p.Pix[i+2] = r, g, b
}

func (p *RGB888) Clone() Frame {
	c := NewRGB888(p.Width, p.Height)
	copy(c.Pix, p.Pix)
	return c
}

func (p *RGB888) Bytes() []byte {
	return p.Pix
}

// RGB565Frame is a 16-bit frame.
type RGB565Frame struct {
	Pix    []uint16
	Width  int
	Height int
}

// NewRGB565 allocates a black width x height frame.
func NewRGB565(width, height int) *RGB565Frame {
	return &RGB565Frame{
		Pix:    make([]uint16, width*height),
		Width:  width,
		Height: height,
	}
}

func (p *RGB565Frame) Format() Format { return RGB565 }

func (p *RGB565Frame) ColorModel() color.Model { return RGB565Model }

func (p *RGB565Frame) Bounds() image.Rectangle { return image.Rect(0, 0, p.Width, p.Height) }

func (p *RGB565Frame) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Bounds())) {
		return color.RGBA{}
	}
	r, g, b := Unpack565(p.Pix[y*p.Width+x])
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func (p *RGB565Frame) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Bounds())) {
		return
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	p.Pix[y*p.Width+x] = Pack565(rgba.R, rgba.G, rgba.B)
}

func (p *RGB565Frame) Clone() Frame {
	c := NewRGB565(p.Width, p.Height)
	copy(c.Pix, p.Pix)
	return c
}

func (p *RGB565Frame) Bytes() []byte {
	out := make([]byte, len(p.Pix)*2)
	for i, v := range p.Pix {
		out[2*i] = byte(v)
		out[2*i+1] = byte(v >> 8)
	}
	return out
}
