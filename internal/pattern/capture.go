package pattern

import (
	"image"

	"github.com/fcurrie/hub75-pixelmap/pkg/frame"
)

// Capture copies a live image, such as a mapped framebuffer, into each
// frame. With Scale set the whole source is fitted to the target;
// otherwise the target-sized region at Origin is copied 1:1.
type Capture struct {
	Src    image.Image
	Origin image.Point
	Scale  bool
}

// frameCopier fills a frame without going through color.Color, as
// fbdev.Device does.
type frameCopier interface {
	CopyTo(dst frame.Frame, sp image.Point)
}

// Render implements display.Source.
func (c *Capture) Render(dst *image.RGBA, _ int) error {
	if c.Scale {
		frame.Fit(dst, c.Src)
		return nil
	}
	frame.Copy(dst, c.Src, c.Src.Bounds().Min.Add(c.Origin))
	return nil
}

// RenderFrame implements display.FrameSource.
func (c *Capture) RenderFrame(dst frame.Frame, _ int) error {
	if c.Scale {
		frame.Fit(dst, c.Src)
		return nil
	}
	sp := c.Src.Bounds().Min.Add(c.Origin)
	if fc, ok := c.Src.(frameCopier); ok {
		fc.CopyTo(dst, sp)
		return nil
	}
	frame.Copy(dst, c.Src, sp)
	return nil
}
