package pattern

import (
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
)

var (
	charcoal = color.RGBA{20, 20, 20, 255}
	white    = color.RGBA{255, 255, 255, 255}
)

// SunIcon draws two brightness icons whose rays rotate in opposite
// directions. Sizes are given for a 96 pixel tall frame and scale with the
// target height.
type SunIcon struct {
	Rays int
	// Speed is the rotation in radians per frame.
	Speed float64
	// Dark draws on black instead of white.
	Dark bool
}

// NewSunIcon returns the icon with eight rays.
func NewSunIcon() *SunIcon {
	return &SunIcon{Rays: 8, Speed: 0.05}
}

// Render implements display.Source.
func (s *SunIcon) Render(dst *image.RGBA, frame int) error {
	w, h := float64(dst.Bounds().Dx()), float64(dst.Bounds().Dy())
	if s.Dark {
		fill(dst, color.RGBA{0, 0, 0, 255})
	} else {
		fill(dst, white)
	}

	c := newCanvas(dst)
	angle := s.Speed * float64(frame)
	k := h / 96
	s.draw(c, w*80/256, h/2, k, angle)
	s.draw(c, w*176/256, h/2, k, -angle)
	return nil
}

func (s *SunIcon) draw(c *canvas, cx, cy, k, angle float64) {
	bigR, sunR := 38*k, 11*k
	c.fillCircle(cx, cy, bigR, charcoal)

	sx, sy := cx+0.45*bigR, cy-0.45*bigR
	c.fillCircle(sx, sy, sunR, charcoal)

	inner, outer := sunR+2*k, sunR+12*k
	for i := 0; i < s.Rays; i++ {
		a := 2*math.Pi*float64(i)/float64(s.Rays) + angle
		cos, sin := math.Cos(a), math.Sin(a)
		c.line(sx+inner*cos, sy+inner*sin, sx+outer*cos, sy+outer*sin, 3*k, rasterx.RoundCap, white)
	}
}
