package pixelmap

import "fmt"

// PanelGeometry describes a panel array and how it is wired to the
// driver. Build it once at startup and pass it by value.
type PanelGeometry struct {
	// PanelWidth and PanelHeight are the pixel dimensions of one module.
	PanelWidth  int
	PanelHeight int
	// PanelsPerChain is the number of panels daisy-chained left to right
	// on each lane. Zero means 1.
	PanelsPerChain int
	// PanelsPerLane is the number of panels chained top to bottom on each
	// lane. Only VerticalChain uses it. Zero means 1.
	PanelsPerLane int
	// Chains is the number of physical connectors stacked vertically.
	// Zero means 1.
	Chains int
	// AddrLines is the number of row address lines; one scan group covers
	// 1<<AddrLines rows.
	AddrLines int
	// Lanes is the lane count declared to the driver, virtual lanes
	// included. Zero derives it from the height.
	Lanes int
	// VirtualLanes is how many of the declared lanes have no rows behind
	// them.
	VirtualLanes int
	Topology     Topology
	// ColumnRemap is used by ChainedMultilane. Nil means IdentityColumns.
	ColumnRemap ColumnRemap
}

func (g PanelGeometry) normalized() PanelGeometry {
	if g.PanelsPerChain == 0 {
		g.PanelsPerChain = 1
	}
	if g.PanelsPerLane == 0 {
		g.PanelsPerLane = 1
	}
	if g.Chains == 0 {
		g.Chains = 1
	}
	return g
}

// Width returns the frame width in pixels.
func (g PanelGeometry) Width() int {
	g = g.normalized()
	return g.PanelWidth * g.PanelsPerChain
}

// Height returns the frame height in pixels.
func (g PanelGeometry) Height() int {
	g = g.normalized()
	return g.PanelHeight * g.Chains * g.PanelsPerLane
}

// RowsPerScan returns the number of rows addressed by one scan group, or
// 0 for a negative address line count.
func (g PanelGeometry) RowsPerScan() int {
	if g.AddrLines < 0 {
		return 0
	}
	return 1 << g.AddrLines
}

// DeclaredLanes returns the lane count handed to the driver.
func (g PanelGeometry) DeclaredLanes() int {
	if g.Lanes != 0 {
		return g.Lanes
	}
	g = g.normalized()
	block := g.RowsPerScan() * g.PanelsPerLane
	if block <= 0 {
		return 0
	}
	return g.Height()/block + g.VirtualLanes
}

// PhysicalLanes returns the lanes that actually have panels behind them.
func (g PanelGeometry) PhysicalLanes() int {
	return g.DeclaredLanes() - g.VirtualLanes
}

// ScanWidth returns the number of columns the driver clocks per lane for
// each address.
func (g PanelGeometry) ScanWidth() int {
	g = g.normalized()
	if g.Topology == TopologyVertical {
		return g.Width() * g.PanelsPerLane
	}
	return g.Width()
}

// Validate checks g without building a map.
func (g PanelGeometry) Validate() error {
	const op = "validate geometry"
	if g.PanelWidth <= 0 || g.PanelHeight <= 0 {
		return newError(op, ErrInvalidGeometry, "panel dimensions must be positive, got %dx%d", g.PanelWidth, g.PanelHeight)
	}
	if g.PanelsPerChain < 0 || g.PanelsPerLane < 0 || g.Chains < 0 {
		return newError(op, ErrInvalidGeometry, "panel counts must not be negative")
	}
	if g.AddrLines < 1 || g.AddrLines > MaxAddrLines {
		return newError(op, ErrInvalidGeometry, "address lines must be in [1, %d], got %d", MaxAddrLines, g.AddrLines)
	}
	if _, ok := topologyNames[g.Topology]; !ok {
		return newError(op, ErrInvalidGeometry, "unknown topology %d", int(g.Topology))
	}
	n := g.normalized()
	if n.PanelsPerLane > 1 && g.Topology != TopologyVertical {
		return newError(op, ErrInvalidGeometry, "panels per lane %d requires the %s topology", n.PanelsPerLane, TopologyVertical)
	}
	lanes := g.DeclaredLanes()
	if lanes < 1 {
		return newError(op, ErrInvalidGeometry, "lane count must be positive, got %d", lanes)
	}
	if g.VirtualLanes < 0 || g.VirtualLanes >= lanes {
		return newError(op, ErrInvalidGeometry, "virtual lanes must be in [0, %d), got %d", lanes, g.VirtualLanes)
	}
	block := g.RowsPerScan() * n.PanelsPerLane
	if g.Height() != g.PhysicalLanes()*block {
		return newError(op, ErrInvalidGeometry, "height %d != %d physical lanes * %d rows",
			g.Height(), g.PhysicalLanes(), block)
	}
	return nil
}

// Build validates g and builds its map with the builder selected by
// Topology.
func (g PanelGeometry) Build() (Map, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	n := g.normalized()
	opts := []Option{WithVirtualLanes(g.VirtualLanes)}

	switch g.Topology {
	case TopologySimple:
		return SimpleMultilane(g.Width(), g.Height(), g.AddrLines, g.DeclaredLanes(), opts...)
	case TopologyChained:
		opts = append(opts, WithColumnRemap(g.ColumnRemap))
		return ChainedMultilane(g.Width(), g.Height(), g.AddrLines, g.DeclaredLanes(), n.PanelsPerChain, opts...)
	case TopologyVertical:
		return VerticalChain(g.Width(), g.Height(), g.AddrLines, g.DeclaredLanes(), n.PanelsPerLane, opts...)
	case TopologySerpentine:
		return Serpentine(g.Width(), g.Height(), g.AddrLines, g.DeclaredLanes(), opts...)
	}
	return nil, newError("build", ErrInvalidGeometry, "unknown topology %d", int(g.Topology))
}

// String summarises g for logs.
func (g PanelGeometry) String() string {
	return fmt.Sprintf("%dx%d %s, %d addr lines, %d lanes (%d virtual), scan width %d",
		g.Width(), g.Height(), g.Topology, g.AddrLines, g.DeclaredLanes(), g.VirtualLanes, g.ScanWidth())
}
