package pixelmap

// MaxAddrLines is the number of row address lines on a HUB75 connector
// (A through E).
const MaxAddrLines = 5

// builder accumulates map entries for one geometry. Every builder walks
// address, then lane, then column and hands each pixel to emit.
type builder struct {
	op       string
	width    int
	height   int
	rows     int
	lanes    int
	physical int
	m        Map
}

func newBuilder(op string, width, height, addrLines, lanes, panelsPerLane int, o options) (*builder, error) {
	if width <= 0 || height <= 0 {
		return nil, newError(op, ErrInvalidGeometry, "dimensions must be positive, got %dx%d", width, height)
	}
	if addrLines < 1 || addrLines > MaxAddrLines {
		return nil, newError(op, ErrInvalidGeometry, "address lines must be in [1, %d], got %d", MaxAddrLines, addrLines)
	}
	if lanes < 1 {
		return nil, newError(op, ErrInvalidGeometry, "lane count must be positive, got %d", lanes)
	}
	if panelsPerLane < 1 {
		return nil, newError(op, ErrInvalidGeometry, "panels per lane must be positive, got %d", panelsPerLane)
	}
	if o.virtualLanes < 0 || o.virtualLanes >= lanes {
		return nil, newError(op, ErrInvalidGeometry, "virtual lanes must be in [0, %d), got %d", lanes, o.virtualLanes)
	}

	rows := 1 << addrLines
	physical := lanes - o.virtualLanes
	block := rows * panelsPerLane
	if height != physical*block {
		if height%block == 0 && height/block < lanes {
			return nil, newError(op, ErrInvalidGeometry,
				"height %d covers %d of %d declared lanes; declare %d virtual lanes to prune the rest",
				height, height/block, lanes, lanes-height/block)
		}
		return nil, newError(op, ErrInvalidGeometry,
			"height %d != %d physical lanes * %d rows", height, physical, block)
	}

	return &builder{
		op:       op,
		width:    width,
		height:   height,
		rows:     rows,
		lanes:    lanes,
		physical: physical,
		m:        make(Map, 0, width*height),
	}, nil
}

// emit appends the offset of pixel (x, y). Rows below the frame are
// dropped when they belong to a declared virtual lane; anywhere else they
// mean the wiring arithmetic is wrong.
func (b *builder) emit(x, y, lane int) error {
	if y >= b.height && lane >= b.physical {
		return nil
	}
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return newError(b.op, ErrIndexOutOfRange, "pixel (%d, %d) on lane %d outside %dx%d", x, y, lane, b.width, b.height)
	}
	b.m = append(b.m, x+b.width*y)
	return nil
}

// SimpleMultilane builds the map for lanes stacked vertically without
// interleaving: lane l owns rows [l*rows, (l+1)*rows). height must equal
// the number of physical lanes times 1<<addrLines.
func SimpleMultilane(width, height, addrLines, lanes int, opts ...Option) (Map, error) {
	b, err := newBuilder("simple multilane", width, height, addrLines, lanes, 1, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	for addr := 0; addr < b.rows; addr++ {
		for lane := 0; lane < b.lanes; lane++ {
			y := addr + lane*b.rows
			for x := 0; x < b.width; x++ {
				if err := b.emit(x, y, lane); err != nil {
					return nil, err
				}
			}
		}
	}
	return b.m, nil
}

// ChainedMultilane builds the map for panelsPerChain panels daisy-chained
// along each lane. Each panel's columns pass through the remap given with
// WithColumnRemap before being combined with the lane's row.
func ChainedMultilane(width, height, addrLines, lanes, panelsPerChain int, opts ...Option) (Map, error) {
	const op = "chained multilane"
	o := buildOptions(opts)
	if panelsPerChain < 1 {
		return nil, newError(op, ErrInvalidGeometry, "panels per chain must be positive, got %d", panelsPerChain)
	}
	if width%panelsPerChain != 0 {
		return nil, newError(op, ErrInvalidGeometry, "width %d is not a multiple of %d panels", width, panelsPerChain)
	}
	b, err := newBuilder(op, width, height, addrLines, lanes, 1, o)
	if err != nil {
		return nil, err
	}

	cols, err := remapColumns(op, width/panelsPerChain, panelsPerChain, o.remap)
	if err != nil {
		return nil, err
	}

	for addr := 0; addr < b.rows; addr++ {
		for lane := 0; lane < b.lanes; lane++ {
			y := addr + lane*b.rows
			for x := 0; x < b.width; x++ {
				if err := b.emit(cols[x], y, lane); err != nil {
					return nil, err
				}
			}
		}
	}
	return b.m, nil
}

// remapColumns resolves the remap once per column of the chain and checks
// that every panel's remap is a permutation.
func remapColumns(op string, panelWidth, panels int, remap ColumnRemap) ([]int, error) {
	cols := make([]int, panelWidth*panels)
	seen := make([]bool, panelWidth)
	for p := 0; p < panels; p++ {
		for i := range seen {
			seen[i] = false
		}
		for c := 0; c < panelWidth; c++ {
			rc := remap(p, c, panelWidth)
			if rc < 0 || rc >= panelWidth {
				return nil, newError(op, ErrIndexOutOfRange, "panel %d column %d remapped to %d, outside [0, %d)", p, c, rc, panelWidth)
			}
			if seen[rc] {
				return nil, newError(op, ErrInvalidGeometry, "panel %d remap hits column %d twice", p, rc)
			}
			seen[rc] = true
			cols[p*panelWidth+c] = p*panelWidth + rc
		}
	}
	return cols, nil
}

// VerticalChain builds the map for panelsPerLane panels chained in series
// down each lane. For every address and lane the driver clocks
// width*panelsPerLane columns; chained panel c of lane l covers rows
// starting at (l*panelsPerLane + c) * 1<<addrLines.
func VerticalChain(width, height, addrLines, lanes, panelsPerLane int, opts ...Option) (Map, error) {
	b, err := newBuilder("vertical chain", width, height, addrLines, lanes, panelsPerLane, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	for addr := 0; addr < b.rows; addr++ {
		for lane := 0; lane < b.lanes; lane++ {
			for c := 0; c < panelsPerLane; c++ {
				y := addr + (lane*panelsPerLane+c)*b.rows
				for x := 0; x < b.width; x++ {
					if err := b.emit(x, y, lane); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	return b.m, nil
}

// Serpentine builds the map for panels whose wiring reverses column
// direction on every odd address row. Even rows match SimpleMultilane.
func Serpentine(width, height, addrLines, lanes int, opts ...Option) (Map, error) {
	b, err := newBuilder("serpentine", width, height, addrLines, lanes, 1, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	for addr := 0; addr < b.rows; addr++ {
		for lane := 0; lane < b.lanes; lane++ {
			y := addr + lane*b.rows
			for i := 0; i < b.width; i++ {
				x := i
				if addr%2 == 1 {
					x = b.width - 1 - i
				}
				if err := b.emit(x, y, lane); err != nil {
					return nil, err
				}
			}
		}
	}
	return b.m, nil
}
