package rpi5matrix

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
	"periph.io/x/conn/v3/display"

	"github.com/fcurrie/hub75-pixelmap/pkg/frame"
	"github.com/fcurrie/hub75-pixelmap/pkg/pixelmap"
)

// Driver moves a frame onto the panels in the order given by a pixel map.
// Entry i of the map is the frame offset the driver sends in scan slot i.
type Driver interface {
	Present(f frame.Frame, m pixelmap.Map) error
	Close() error
}

// Config holds the configuration for the LED matrix
type Config struct {
	Geometry   pixelmap.PanelGeometry
	Format     frame.Format
	Brightness int
	// FlipLanes rotates each of this many horizontal strips by 180
	// degrees. Zero leaves the frame as drawn.
	FlipLanes int
	// ScaleImages lets SetImage resample images whose size does not match
	// the matrix.
	ScaleImages bool
}

// Matrix is an RGB LED matrix array addressed in logical (x, y) order.
// The pixel map is built once and handed to the driver with every frame.
type Matrix struct {
	geom       pixelmap.PanelGeometry
	width      int
	height     int
	brightness int
	scale      bool
	buf        frame.Frame
	pmap       pixelmap.Map
	drv        Driver
	mu         sync.RWMutex
}

var _ display.Drawer = (*Matrix)(nil)

// NewMatrix creates a new LED matrix display
func NewMatrix(cfg *Config, drv Driver) (*Matrix, error) {
	if drv == nil {
		return nil, errors.New("rpi5matrix: nil driver")
	}
	if cfg.Brightness < 0 || cfg.Brightness > 255 {
		return nil, errors.Errorf("brightness must be between 0 and 255, got %d", cfg.Brightness)
	}

	pmap, err := cfg.Geometry.Build()
	if err != nil {
		return nil, err
	}

	width, height := cfg.Geometry.Width(), cfg.Geometry.Height()
	if cfg.FlipLanes > 0 {
		flip, err := pixelmap.NewLaneFlip(width, height, cfg.FlipLanes)
		if err != nil {
			return nil, err
		}
		pmap = pmap.Compose(flip)
	}

	buf, err := frame.New(cfg.Format, width, height)
	if err != nil {
		return nil, errors.Wrap(err, "failed to allocate frame")
	}

	return &Matrix{
		geom:       cfg.Geometry,
		width:      width,
		height:     height,
		brightness: cfg.Brightness,
		scale:      cfg.ScaleImages,
		buf:        buf,
		pmap:       pmap,
		drv:        drv,
	}, nil
}

// Close closes the driver
func (m *Matrix) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.drv == nil {
		return nil
	}
	err := m.drv.Close()
	m.drv = nil
	return err
}

// Clear clears all LEDs
func (m *Matrix) Clear() error {
	return m.Fill(color.Black)
}

// Fill fills the entire matrix with a color
func (m *Matrix) Fill(c color.Color) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	xdraw.Draw(m.buf, m.buf.Bounds(), image.NewUniform(c), image.Point{}, xdraw.Src)
	return nil
}

func (m *Matrix) inBounds(x, y int) error {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return errors.Errorf("coordinates out of bounds: (%d, %d)", x, y)
	}
	return nil
}

// SetPixel sets a pixel at the given coordinates to the given color
func (m *Matrix) SetPixel(x, y int, c color.Color) error {
	if err := m.inBounds(x, y); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.buf.Set(x, y, c)
	return nil
}

// SetPixelColor sets a pixel at the given coordinates to the given color
func (m *Matrix) SetPixelColor(x, y int, r, g, b uint8) error {
	return m.SetPixel(x, y, color.RGBA{r, g, b, 255})
}

// GetPixelColor gets the color of a pixel at the given coordinates
func (m *Matrix) GetPixelColor(x, y int) (r, g, b uint8, err error) {
	if err := m.inBounds(x, y); err != nil {
		return 0, 0, 0, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	c := color.RGBAModel.Convert(m.buf.At(x, y)).(color.RGBA)
	return c.R, c.G, c.B, nil
}

// SetImage copies img into the matrix. An image of another size is
// resampled when the matrix was configured with ScaleImages.
func (m *Matrix) SetImage(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if img.Bounds().Size() == m.buf.Bounds().Size() {
		frame.Copy(m.buf, img, img.Bounds().Min)
		return nil
	}
	if !m.scale {
		return errors.Errorf("image is %v, matrix is %dx%d", img.Bounds().Size(), m.width, m.height)
	}
	frame.Scale(m.buf, img)
	return nil
}

// Update runs fn on the frame Show sends, under the matrix lock. fn must
// not keep dst after it returns.
func (m *Matrix) Update(fn func(dst frame.Frame) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m.buf)
}

// Scroll moves the contents by (dx, dy); uncovered pixels turn black.
func (m *Matrix) Scroll(dx, dy int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	src := m.buf.Clone()
	r := m.buf.Bounds()
	xdraw.Draw(m.buf, r, image.Black, image.Point{}, xdraw.Src)
	xdraw.Draw(m.buf, r.Add(image.Pt(dx, dy)), src, image.Point{}, xdraw.Src)
	return nil
}

// SetBrightness sets the brightness of the LED matrix
func (m *Matrix) SetBrightness(brightness int) error {
	if brightness < 0 || brightness > 255 {
		return errors.Errorf("brightness must be between 0 and 255, got %d", brightness)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.brightness = brightness
	return nil
}

// GetBrightness returns the current brightness of the LED matrix
func (m *Matrix) GetBrightness() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.brightness
}

// GetDimensions returns the dimensions of the LED matrix
func (m *Matrix) GetDimensions() (width, height int) {
	return m.width, m.height
}

// PixelMap returns the map handed to the driver. It must not be modified.
func (m *Matrix) PixelMap() pixelmap.Map {
	return m.pmap
}

// Geometry returns the panel geometry the map was built from.
func (m *Matrix) Geometry() pixelmap.PanelGeometry {
	return m.geom
}

// Show sends the current buffer to the driver, dimmed to the current
// brightness.
func (m *Matrix) Show() error {
	m.mu.RLock()
	out := m.buf.Clone()
	brightness := m.brightness
	drv := m.drv
	m.mu.RUnlock()

	if drv == nil {
		return errors.New("rpi5matrix: matrix is closed")
	}
	dim(out, brightness)
	if err := drv.Present(out, m.pmap); err != nil {
		return errors.Wrap(err, "failed to present frame")
	}
	return nil
}

// String implements conn.Resource.
func (m *Matrix) String() string {
	return fmt.Sprintf("rpi5matrix{%s}", m.geom)
}

// Halt blanks the panels.
func (m *Matrix) Halt() error {
	if err := m.Clear(); err != nil {
		return err
	}
	return m.Show()
}

// ColorModel implements display.Drawer.
func (m *Matrix) ColorModel() color.Model {
	return m.buf.ColorModel()
}

// Bounds implements display.Drawer.
func (m *Matrix) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// Draw implements display.Drawer. It draws src into r and shows the
// result.
func (m *Matrix) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	m.mu.Lock()
	xdraw.Draw(m.buf, r, src, sp, xdraw.Src)
	m.mu.Unlock()
	return m.Show()
}

// dim scales every sample of f by brightness/255.
func dim(f frame.Frame, brightness int) {
	if brightness >= 255 {
		return
	}
	switch p := f.(type) {
	case *frame.RGB888:
		for i, v := range p.Pix {
			p.Pix[i] = uint8(int(v) * brightness / 255)
		}
	case *frame.RGB565Frame:
		for i, v := range p.Pix {
			r, g, b := frame.Unpack565(v)
			p.Pix[i] = frame.Pack565(
				uint8(int(r)*brightness/255),
				uint8(int(g)*brightness/255),
				uint8(int(b)*brightness/255),
			)
		}
	}
}
