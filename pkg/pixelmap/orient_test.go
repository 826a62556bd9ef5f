package pixelmap

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaneFlipPoint(t *testing.T) {
	f, err := NewLaneFlip(64, 32, 2)
	require.NoError(t, err)
	assert.Equal(t, 16, f.LaneHeight())
	assert.Equal(t, 2, f.Lanes())

	x, y := f.Point(0, 0)
	assert.Equal(t, 63, x)
	assert.Equal(t, 15, y)

	x, y = f.Point(x, y)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)

	// lane 1 stays inside lane 1
	x, y = f.Point(10, 16)
	assert.Equal(t, 53, x)
	assert.Equal(t, 31, y)
}

func TestLaneFlipIndexIsInvolution(t *testing.T) {
	f, err := NewLaneFlip(256, 96, 3)
	require.NoError(t, err)

	for i := 0; i < 256*96; i++ {
		j := f.Index(i)
		require.Equal(t, i, f.Index(j), "offset %d", i)

		x, y := f.Point(i%256, i/256)
		require.Equal(t, x+256*y, j, "offset %d", i)
	}
}

func TestZeroLaneFlipIsIdentity(t *testing.T) {
	var f LaneFlip
	for _, i := range []int{0, 1, 63, 4096} {
		assert.Equal(t, i, f.Index(i))
	}
	x, y := f.Point(5, 7)
	assert.Equal(t, [2]int{5, 7}, [2]int{x, y})

	m, err := SimpleMultilane(64, 32, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, m, m.Compose(f))
}

func TestNewLaneFlipErrors(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		lanes  int
		kind   error
	}{
		{name: "height not divisible", width: 256, height: 100, lanes: 3, kind: ErrGeometryMismatch},
		{name: "zero lanes", width: 256, height: 96, lanes: 0, kind: ErrInvalidGeometry},
		{name: "zero height", width: 256, height: 0, lanes: 3, kind: ErrInvalidGeometry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLaneFlip(tt.width, tt.height, tt.lanes)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestRotateLanesInvolution(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("packed rgb888", func(t *testing.T) {
		pix := make([]uint8, 256*96*3)
		rng.Read(pix)
		orig := append([]uint8(nil), pix...)

		require.NoError(t, RotateLanes(pix, 256, 96, 3, 3))
		assert.NotEqual(t, orig, pix)
		require.NoError(t, RotateLanes(pix, 256, 96, 3, 3))
		assert.Equal(t, orig, pix)
	})

	t.Run("rgb565", func(t *testing.T) {
		pix := make([]uint16, 64*32)
		for i := range pix {
			pix[i] = uint16(rng.Intn(1 << 16))
		}
		once, err := RotatedLanes(pix, 64, 32, 1, 2)
		require.NoError(t, err)
		twice, err := RotatedLanes(once, 64, 32, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, pix, twice)
	})
}

func TestRotateLanesMovesPixel(t *testing.T) {
	pix := make([]uint8, 64*32*3)
	pix[0], pix[1], pix[2] = 1, 2, 3

	out, err := RotatedLanes(pix, 64, 32, 3, 2)
	require.NoError(t, err)

	// (0, 0) lands on (63, 15)
	off := (63 + 64*15) * 3
	assert.Equal(t, []uint8{1, 2, 3}, out[off:off+3])
	assert.Equal(t, []uint8{1, 2, 3}, pix[0:3], "source modified")
}

func TestRotateLanesRejectsBadGeometry(t *testing.T) {
	pix := make([]uint8, 256*100*3)
	pix[0] = 7

	err := RotateLanes(pix, 256, 100, 3, 3)
	assert.True(t, errors.Is(err, ErrGeometryMismatch), "got %v", err)
	assert.Equal(t, uint8(7), pix[0])

	err = RotateLanes(make([]uint16, 10), 64, 32, 1, 2)
	assert.True(t, errors.Is(err, ErrGeometryMismatch), "got %v", err)

	err = RotateLanes(make([]uint16, 64*32), 64, 32, 0, 2)
	assert.True(t, errors.Is(err, ErrInvalidGeometry), "got %v", err)
}
