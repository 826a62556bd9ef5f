package pixelmap

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Map lists, in driver scan order, the framebuffer offset (x + width*y)
// to read for each scan slot. A Map is never modified after it is built.
type Map []int

// Len returns the number of scan slots.
func (m Map) Len() int {
	return len(m)
}

// IsPermutation reports whether m holds every offset in [0, n) exactly
// once.
func (m Map) IsPermutation(n int) bool {
	if len(m) != n {
		return false
	}
	seen := make([]bool, n)
	for _, v := range m {
		if v < 0 || v >= n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Uint32s returns a copy of m in the element type drivers index with.
func (m Map) Uint32s() []uint32 {
	out := make([]uint32, len(m))
	for i, v := range m {
		out[i] = uint32(v)
	}
	return out
}

// WriteTo writes m as a stream of little-endian uint32 values.
func (m Map) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, binary.LittleEndian, m.Uint32s()); err != nil {
		return 0, errors.Wrap(err, "write pixel map")
	}
	return int64(4 * len(m)), nil
}

// Compose folds an orientation correction into m. Reading the unrotated
// frame through the result is the same as rotating the frame's lanes and
// reading it through m.
func (m Map) Compose(f LaneFlip) Map {
	out := make(Map, len(m))
	for i, v := range m {
		out[i] = f.Index(v)
	}
	return out
}
