// Package pattern holds the procedural frame sources used to bring up and
// demo a panel array.
package pattern

import (
	"image"
	"image/color"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// canvas wraps the rasterx scanner, filler and stroker for one target.
type canvas struct {
	filler  *rasterx.Filler
	stroker *rasterx.Stroker
}

func newCanvas(dst *image.RGBA) *canvas {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	return &canvas{
		filler:  rasterx.NewFiller(w, h, scanner),
		stroker: rasterx.NewStroker(w, h, scanner),
	}
}

func (c *canvas) fillCircle(cx, cy, r float64, col color.Color) {
	c.filler.Clear()
	c.filler.SetColor(col)
	rasterx.AddCircle(cx, cy, r, c.filler)
	c.filler.Draw()
}

func (c *canvas) fillRect(x0, y0, x1, y1 float64, col color.Color) {
	c.filler.Clear()
	c.filler.SetColor(col)
	rasterx.AddRect(x0, y0, x1, y1, 0, c.filler)
	c.filler.Draw()
}

func (c *canvas) setStroke(width float64, capFn rasterx.CapFunc, col color.Color) {
	c.stroker.Clear()
	c.stroker.SetColor(col)
	c.stroker.SetStroke(fixed.Int26_6(width*64), fixed.I(4), capFn, capFn, rasterx.RoundGap, rasterx.Round)
}

func (c *canvas) strokeCircle(cx, cy, r, width float64, col color.Color) {
	c.setStroke(width, rasterx.ButtCap, col)
	rasterx.AddCircle(cx, cy, r, c.stroker)
	c.stroker.Draw()
}

func (c *canvas) strokeRect(x0, y0, x1, y1, width float64, col color.Color) {
	c.setStroke(width, rasterx.ButtCap, col)
	rasterx.AddRect(x0, y0, x1, y1, 0, c.stroker)
	c.stroker.Draw()
}

func (c *canvas) line(x0, y0, x1, y1, width float64, capFn rasterx.CapFunc, col color.Color) {
	c.setStroke(width, capFn, col)
	c.stroker.Start(rasterx.ToFixedP(x0, y0))
	c.stroker.Line(rasterx.ToFixedP(x1, y1))
	c.stroker.Stop(false)
	c.stroker.Draw()
}

func fill(dst *image.RGBA, c color.RGBA) {
	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = c.R, c.G, c.B, c.A
	}
}
