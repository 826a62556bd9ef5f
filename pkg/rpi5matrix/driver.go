package rpi5matrix

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/fcurrie/hub75-pixelmap/pkg/frame"
	"github.com/fcurrie/hub75-pixelmap/pkg/pixelmap"
)

// PreviewDriver is a Driver that walks the map in scan order and rebuilds
// what the panels would receive: one row per (lane, address), lanes
// stacked top to bottom, ScanWidth columns wide.
type PreviewDriver struct {
	rows   int
	lanes  int
	width  int
	img    *image.RGBA
	dir    string
	every  int
	frames int
	log    zerolog.Logger
	mu     sync.Mutex
	closed bool
}

// PreviewOption configures a PreviewDriver.
type PreviewOption func(*PreviewDriver)

// WithSnapshots writes the wire image to dir as a PNG every n frames.
func WithSnapshots(dir string, n int) PreviewOption {
	return func(d *PreviewDriver) {
		d.dir = dir
		d.every = n
	}
}

// WithLogger sets the logger used for snapshot messages.
func WithLogger(l zerolog.Logger) PreviewOption {
	return func(d *PreviewDriver) {
		d.log = l
	}
}

// NewPreviewDriver creates a preview sink for g.
func NewPreviewDriver(g pixelmap.PanelGeometry, opts ...PreviewOption) (*PreviewDriver, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	d := &PreviewDriver{
		rows:  g.RowsPerScan(),
		lanes: g.PhysicalLanes(),
		width: g.ScanWidth(),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.dir != "" {
		if err := os.MkdirAll(d.dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "failed to create snapshot directory")
		}
	}
	d.img = image.NewRGBA(image.Rect(0, 0, d.width, d.rows*d.lanes))
	return d, nil
}

// Present implements Driver.
func (d *PreviewDriver) Present(f frame.Frame, m pixelmap.Map) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return errors.New("preview driver closed")
	}
	if len(m) != d.width*d.rows*d.lanes {
		return errors.Errorf("map has %d entries, want %d", len(m), d.width*d.rows*d.lanes)
	}

	// Read the frame the way a driver streams it: raw memory, one pixel
	// per map entry.
	raw := f.Bytes()
	bpp := f.Format().BytesPerPixel()
	for i, off := range m {
		p := off * bpp
		if off < 0 || p+bpp > len(raw) {
			return errors.Errorf("map entry %d points at pixel %d outside the frame", i, off)
		}
		var c color.RGBA
		if f.Format() == frame.RGB565 {
			c.R, c.G, c.B = frame.Unpack565(uint16(raw[p]) | uint16(raw[p+1])<<8)
		} else {
			c.R, c.G, c.B = raw[p], raw[p+1], raw[p+2]
		}
		c.A = 0xff

		chunk := i / d.width
		addr, lane := chunk/d.lanes, chunk%d.lanes
		d.img.SetRGBA(i%d.width, lane*d.rows+addr, c)
	}
	d.frames++

	if d.every > 0 && d.frames%d.every == 0 {
		return d.snapshot()
	}
	return nil
}

func (d *PreviewDriver) snapshot() error {
	path := filepath.Join(d.dir, fmt.Sprintf("frame-%06d.png", d.frames))
	fh, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create snapshot")
	}
	if err := png.Encode(fh, d.img); err != nil {
		fh.Close()
		return errors.Wrapf(err, "failed to encode %s", path)
	}
	d.log.Debug().Str("path", path).Int("frame", d.frames).Msg("wrote snapshot")
	return fh.Close()
}

// Image returns a copy of the last wire image.
func (d *PreviewDriver) Image() *image.RGBA {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := image.NewRGBA(d.img.Rect)
	copy(out.Pix, d.img.Pix)
	return out
}

// Frames returns the number of frames presented.
func (d *PreviewDriver) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// Close implements Driver.
func (d *PreviewDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}
