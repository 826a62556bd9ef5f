package pattern

import (
	"image"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// SVG draws an icon over a solid background, optionally drifting
// horizontally and wrapping around the frame.
type SVG struct {
	icon *oksvg.SvgIcon
	// Size is the icon's square target size in pixels; 0 uses the frame
	// height.
	Size float64
	// Speed is the horizontal drift in pixels per frame.
	Speed   float64
	Opacity float64
}

// NewSVG parses an SVG document.
func NewSVG(r io.Reader) (*SVG, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.WarnErrorMode)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse svg")
	}
	return &SVG{icon: icon, Opacity: 1}, nil
}

// LoadSVG reads an SVG file.
func LoadSVG(path string) (*SVG, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open svg")
	}
	defer f.Close()
	return NewSVG(f)
}

// Render implements display.Source.
func (s *SVG) Render(dst *image.RGBA, frame int) error {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	size := s.Size
	if size <= 0 {
		size = float64(h)
	}

	x := (float64(w) - size) / 2
	if s.Speed != 0 {
		span := float64(w) + size
		x = math.Mod(s.Speed*float64(frame), span)
		if x < 0 {
			x += span
		}
		x -= size
	}
	y := (float64(h) - size) / 2

	s.icon.SetTarget(x, y, size, size)
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	s.icon.Draw(rasterx.NewDasher(w, h, scanner), s.Opacity)
	return nil
}
