package pixelmap

// LaneFlip rotates each of a frame's horizontal lane strips by 180
// degrees. It corrects lanes whose panels are mounted upside down
// relative to the scan order. Applying it twice is the identity. The zero
// LaneFlip leaves every pixel where it is.
type LaneFlip struct {
	width      int
	height     int
	lanes      int
	laneHeight int
}

// NewLaneFlip returns the rotation for a width x height frame split into
// numLanes strips. height must be a multiple of numLanes.
func NewLaneFlip(width, height, numLanes int) (LaneFlip, error) {
	const op = "lane flip"
	if width <= 0 || height <= 0 {
		return LaneFlip{}, newError(op, ErrInvalidGeometry, "dimensions must be positive, got %dx%d", width, height)
	}
	if numLanes < 1 {
		return LaneFlip{}, newError(op, ErrInvalidGeometry, "lane count must be positive, got %d", numLanes)
	}
	if height%numLanes != 0 {
		return LaneFlip{}, newError(op, ErrGeometryMismatch, "height %d is not divisible into %d lanes", height, numLanes)
	}
	return LaneFlip{
		width:      width,
		height:     height,
		lanes:      numLanes,
		laneHeight: height / numLanes,
	}, nil
}

// LaneHeight returns the height of one strip.
func (f LaneFlip) LaneHeight() int {
	return f.laneHeight
}

// Lanes returns the number of strips.
func (f LaneFlip) Lanes() int {
	return f.lanes
}

// Point returns where pixel (x, y) lands after rotation.
func (f LaneFlip) Point(x, y int) (int, int) {
	if f.laneHeight == 0 {
		return x, y
	}
	lane := y / f.laneHeight
	return f.width - 1 - x, lane*f.laneHeight + f.laneHeight - 1 - y%f.laneHeight
}

// Index returns where linear offset i lands after rotation. A strip is a
// contiguous run of width*laneHeight offsets, and rotating it by 180
// degrees reverses that run.
func (f LaneFlip) Index(i int) int {
	n := f.width * f.laneHeight
	if n == 0 {
		return i
	}
	start := i - i%n
	return start + n - 1 - (i - start)
}

// RotateLanes rotates each lane strip of pix in place. pix holds
// width*height pixels of elemsPerPixel elements each, rows packed without
// padding (3 for packed RGB888 bytes, 1 for RGB565 words).
func RotateLanes[E any](pix []E, width, height, elemsPerPixel, numLanes int) error {
	f, err := NewLaneFlip(width, height, numLanes)
	if err != nil {
		return err
	}
	if elemsPerPixel < 1 {
		return newError("rotate lanes", ErrInvalidGeometry, "elements per pixel must be positive, got %d", elemsPerPixel)
	}
	if len(pix) != width*height*elemsPerPixel {
		return newError("rotate lanes", ErrGeometryMismatch,
			"buffer holds %d elements, want %dx%dx%d", len(pix), width, height, elemsPerPixel)
	}

	n := width * f.laneHeight
	for lane := 0; lane < numLanes; lane++ {
		base := lane * n
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			a := (base + i) * elemsPerPixel
			b := (base + j) * elemsPerPixel
			for k := 0; k < elemsPerPixel; k++ {
				pix[a+k], pix[b+k] = pix[b+k], pix[a+k]
			}
		}
	}
	return nil
}

// RotatedLanes is RotateLanes on a copy; pix is left untouched.
func RotatedLanes[E any](pix []E, width, height, elemsPerPixel, numLanes int) ([]E, error) {
	out := make([]E, len(pix))
	copy(out, pix)
	if err := RotateLanes(out, width, height, elemsPerPixel, numLanes); err != nil {
		return nil, err
	}
	return out, nil
}
