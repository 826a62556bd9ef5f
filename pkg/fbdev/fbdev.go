// Package fbdev reads a Linux framebuffer (/dev/fbN) as an image.Image so
// a desktop region can be mirrored onto the matrix.
package fbdev

import (
	"encoding/binary"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/fcurrie/hub75-pixelmap/pkg/frame"
)

// SysfsRoot is where the kernel publishes framebuffer attributes.
const SysfsRoot = "/sys/class/graphics"

// Device is a read-only memory map of a framebuffer device.
type Device struct {
	name   string
	width  int
	height int
	bpp    int
	stride int
	file   *os.File
	mem    []byte
	mu     sync.Mutex
}

// Open maps the framebuffer called name (for example "fb0").
func Open(name string) (*Device, error) {
	return OpenPaths(filepath.Join(SysfsRoot, name), filepath.Join("/dev", name))
}

// OpenPaths maps devPath using the geometry published in sysDir.
func OpenPaths(sysDir, devPath string) (*Device, error) {
	size, err := readInts(filepath.Join(sysDir, "virtual_size"))
	if err != nil {
		return nil, err
	}
	if len(size) != 2 || size[0] <= 0 || size[1] <= 0 {
		return nil, errors.Errorf("fbdev: bad virtual_size %v", size)
	}
	bpp, err := readInt(filepath.Join(sysDir, "bits_per_pixel"))
	if err != nil {
		return nil, err
	}
	if bpp != 16 && bpp != 32 {
		return nil, errors.Errorf("fbdev: unsupported depth %d bpp, want 16 or 32", bpp)
	}
	stride, err := readInt(filepath.Join(sysDir, "stride"))
	if err != nil {
		return nil, err
	}
	if stride < size[0]*bpp/8 {
		return nil, errors.Errorf("fbdev: stride %d shorter than a %d pixel row", stride, size[0])
	}

	f, err := os.Open(devPath)
	if err != nil {
		return nil, errors.Wrap(err, "fbdev: open device")
	}

	mem, err := unix.Mmap(int(f.Fd()), 0, stride*size[1], unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "fbdev: mmap %s", devPath)
	}

	return &Device{
		name:   filepath.Base(devPath),
		width:  size[0],
		height: size[1],
		bpp:    bpp,
		stride: stride,
		file:   f,
		mem:    mem,
	}, nil
}

// Close unmaps the framebuffer.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.mem != nil {
		if err := unix.Munmap(d.mem); err != nil {
			return errors.Wrap(err, "fbdev: munmap")
		}
		d.mem = nil
	}
	if d.file != nil {
		err := d.file.Close()
		d.file = nil
		return err
	}
	return nil
}

// String returns the device name.
func (d *Device) String() string { return d.name }

// BitsPerPixel returns the framebuffer depth.
func (d *Device) BitsPerPixel() int { return d.bpp }

// Stride returns the length of one row in bytes.
func (d *Device) Stride() int { return d.stride }

func (d *Device) ColorModel() color.Model { return color.RGBAModel }

func (d *Device) Bounds() image.Rectangle { return image.Rect(0, 0, d.width, d.height) }

func (d *Device) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(d.Bounds())) {
		return color.RGBA{}
	}
	r, g, b := d.rgbAt(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// rgbAt reads black once the device is closed.
func (d *Device) rgbAt(x, y int) (r, g, b uint8) {
	if d.mem == nil {
		return 0, 0, 0
	}
	off := y*d.stride + x*d.bpp/8
	if d.bpp == 16 {
		return frame.Unpack565(binary.LittleEndian.Uint16(d.mem[off:]))
	}
	v := binary.LittleEndian.Uint32(d.mem[off:])
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

// Region returns a view of the part of the framebuffer inside r.
func (d *Device) Region(r image.Rectangle) image.Image {
	return &region{d: d, r: r.Intersect(d.Bounds())}
}

// CopyTo copies the dst-sized region starting at sp into dst. RGB565
// destinations read 16bpp framebuffers word for word and pack 32bpp ones
// directly. A closed device copies nothing.
func (d *Device) CopyTo(dst frame.Frame, sp image.Point) {
	d.copyRect(dst, sp, d.Bounds())
}

func (d *Device) copyRect(dst frame.Frame, sp image.Point, clip image.Rectangle) {
	if d.mem == nil {
		return
	}
	r := image.Rectangle{Min: sp, Max: sp.Add(dst.Bounds().Size())}.Intersect(clip)
	if p, ok := dst.(*frame.RGB565Frame); ok {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			row := (y - sp.Y) * p.Width
			for x := r.Min.X; x < r.Max.X; x++ {
				off := y*d.stride + x*d.bpp/8
				var v uint16
				if d.bpp == 16 {
					v = binary.LittleEndian.Uint16(d.mem[off:])
				} else {
					v = frame.XRGB8888To565(binary.LittleEndian.Uint32(d.mem[off:]))
				}
				p.Pix[row+x-sp.X] = v
			}
		}
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.Set(x-sp.X, y-sp.Y, d.At(x, y))
		}
	}
}

type region struct {
	d *Device
	r image.Rectangle
}

func (v *region) ColorModel() color.Model { return v.d.ColorModel() }

func (v *region) Bounds() image.Rectangle { return v.r }

func (v *region) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(v.r)) {
		return color.RGBA{}
	}
	return v.d.At(x, y)
}

// CopyTo is Device.CopyTo clipped to the region.
func (v *region) CopyTo(dst frame.Frame, sp image.Point) {
	v.d.copyRect(dst, sp, v.r)
}

func readInt(path string) (int, error) {
	v, err := readInts(path)
	if err != nil {
		return 0, err
	}
	if len(v) != 1 {
		return 0, errors.Errorf("fbdev: %s: want one value, got %d", path, len(v))
	}
	return v[0], nil
}

// readInts parses a sysfs attribute such as "1920,1080".
func readInts(path string) ([]int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "fbdev: read attribute")
	}
	fields := strings.Split(strings.TrimSpace(string(b)), ",")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, errors.Wrapf(err, "fbdev: parse %s", path)
		}
		out = append(out, n)
	}
	return out, nil
}
