package pattern

import (
	"image"
	"image/color"

	"github.com/srwiley/rasterx"
)

var (
	gold    = color.RGBA{255, 215, 0, 255}
	green   = color.RGBA{0, 255, 0, 255}
	grey    = color.RGBA{50, 50, 50, 255}
	magenta = color.RGBA{255, 0, 255, 255}
	teal    = color.RGBA{0, 128, 128, 255}
)

// Bounce is a ball bouncing inside a bordered frame with a few fixed
// shapes drawn behind it. Each Render advances the ball one step.
type Bounce struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	init   bool
}

// NewBounce returns a ball starting at the centre of the frame.
func NewBounce() *Bounce {
	return &Bounce{VX: 4, VY: 3, Radius: 10}
}

func (b *Bounce) step(w, h float64) {
	if !b.init {
		b.X, b.Y = w/2, h/2
		b.init = true
	}
	b.X += b.VX
	b.Y += b.VY
	if b.X >= w-b.Radius || b.X <= b.Radius {
		b.VX = -b.VX
	}
	if b.Y >= h-b.Radius || b.Y <= b.Radius {
		b.VY = -b.VY
	}
}

// Render implements display.Source.
func (b *Bounce) Render(dst *image.RGBA, frame int) error {
	w, h := float64(dst.Bounds().Dx()), float64(dst.Bounds().Dy())
	b.step(w, h)

	fill(dst, color.RGBA{0, 0, 0, 255})
	c := newCanvas(dst)

	c.strokeRect(2, 2, w-3, h-3, 2, green)
	c.line(w/2, 0, w/2, h, 1, rasterx.ButtCap, grey)
	c.line(0, h/2, w, h/2, 1, rasterx.ButtCap, grey)

	c.fillRect(20, h-25, 50, h-10, color.RGBA{0, 0, 255, 255})
	c.fillRect(60, h-25, 90, h-10, green)
	c.fillRect(100, h-25, 130, h-10, color.RGBA{255, 0, 0, 255})

	c.strokeCircle(w-20, 20, 8, 2, magenta)
	c.line(0, 0, 50, 50, 2, rasterx.RoundCap, teal)

	c.fillCircle(b.X, b.Y, b.Radius, gold)
	return nil
}
