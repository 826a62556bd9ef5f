package pixelmap

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeChainRig is twelve 64x32 panels, four per chain, on three
// connectors.
func threeChainRig() PanelGeometry {
	return PanelGeometry{
		PanelWidth:     64,
		PanelHeight:    32,
		PanelsPerChain: 4,
		Chains:         3,
		AddrLines:      4,
	}
}

func TestPanelGeometryDerived(t *testing.T) {
	g := threeChainRig()
	assert.Equal(t, 256, g.Width())
	assert.Equal(t, 96, g.Height())
	assert.Equal(t, 16, g.RowsPerScan())
	assert.Equal(t, 6, g.DeclaredLanes())
	assert.Equal(t, 6, g.PhysicalLanes())
	assert.Equal(t, 256, g.ScanWidth())
	assert.NoError(t, g.Validate())
	assert.Contains(t, g.String(), "256x96 simple")
}

func TestPanelGeometryBuild(t *testing.T) {
	tests := []struct {
		name   string
		geom   PanelGeometry
		length int
	}{
		{name: "simple", geom: threeChainRig(), length: 24576},
		{
			name: "chained mirror",
			geom: func() PanelGeometry {
				g := threeChainRig()
				g.Topology = TopologyChained
				g.ColumnRemap = MirrorColumns
				return g
			}(),
			length: 24576,
		},
		{
			name: "serpentine with virtual lanes",
			geom: func() PanelGeometry {
				g := threeChainRig()
				g.Topology = TopologySerpentine
				g.Lanes = 8
				g.VirtualLanes = 2
				return g
			}(),
			length: 24576,
		},
		{
			name: "vertical chain",
			geom: PanelGeometry{
				PanelWidth:    64,
				PanelHeight:   32,
				PanelsPerLane: 2,
				AddrLines:     4,
				Topology:      TopologyVertical,
			},
			length: 64 * 64,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.geom.Build()
			require.NoError(t, err)
			assert.Equal(t, tt.length, m.Len())
			assert.True(t, m.IsPermutation(tt.geom.Width()*tt.geom.Height()))
		})
	}
}

func TestPanelGeometryBuildDispatchesOnTopology(t *testing.T) {
	rig := threeChainRig()
	tests := []struct {
		topology Topology
		lanes    int
		virtual  int
		build    func() (Map, error)
	}{
		{
			topology: TopologySimple,
			build:    func() (Map, error) { return SimpleMultilane(256, 96, 4, 6) },
		},
		{
			topology: TopologyChained,
			build:    func() (Map, error) { return ChainedMultilane(256, 96, 4, 6, 4, WithColumnRemap(MirrorColumns)) },
		},
		{
			topology: TopologySerpentine,
			lanes:    8,
			virtual:  2,
			build:    func() (Map, error) { return Serpentine(256, 96, 4, 8, WithVirtualLanes(2)) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.topology.String(), func(t *testing.T) {
			g := rig
			g.Topology = tt.topology
			g.Lanes = tt.lanes
			g.VirtualLanes = tt.virtual
			if tt.topology == TopologyChained {
				g.ColumnRemap = MirrorColumns
			}
			got, err := g.Build()
			require.NoError(t, err)
			want, err := tt.build()
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	t.Run(TopologyVertical.String(), func(t *testing.T) {
		g := PanelGeometry{PanelWidth: 64, PanelHeight: 32, PanelsPerLane: 2, AddrLines: 4, Topology: TopologyVertical}
		got, err := g.Build()
		require.NoError(t, err)
		want, err := VerticalChain(64, 64, 4, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestPanelGeometryNegativeAddrLines(t *testing.T) {
	g := threeChainRig()
	g.AddrLines = -1
	assert.Equal(t, 0, g.RowsPerScan())
	assert.Equal(t, 0, g.DeclaredLanes())
	assert.NotPanics(t, func() { _ = g.String() })
	assert.True(t, errors.Is(g.Validate(), ErrInvalidGeometry))
}

func TestPanelGeometryVerticalScanWidth(t *testing.T) {
	g := PanelGeometry{
		PanelWidth:    64,
		PanelHeight:   32,
		PanelsPerLane: 2,
		AddrLines:     4,
		Topology:      TopologyVertical,
	}
	assert.Equal(t, 64, g.Height())
	assert.Equal(t, 2, g.DeclaredLanes())
	assert.Equal(t, 128, g.ScanWidth())
}

func TestPanelGeometryValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(g *PanelGeometry)
	}{
		{name: "zero panel width", mutate: func(g *PanelGeometry) { g.PanelWidth = 0 }},
		{name: "negative chains", mutate: func(g *PanelGeometry) { g.Chains = -1 }},
		{name: "address lines", mutate: func(g *PanelGeometry) { g.AddrLines = 0 }},
		{name: "unknown topology", mutate: func(g *PanelGeometry) { g.Topology = Topology(42) }},
		{name: "panels per lane without vertical", mutate: func(g *PanelGeometry) { g.PanelsPerLane = 2 }},
		{name: "too many declared lanes", mutate: func(g *PanelGeometry) { g.Lanes = 8 }},
		{name: "too few declared lanes", mutate: func(g *PanelGeometry) { g.Lanes = 3 }},
		{name: "virtual lanes cover everything", mutate: func(g *PanelGeometry) { g.Lanes = 2; g.VirtualLanes = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := threeChainRig()
			tt.mutate(&g)
			assert.True(t, errors.Is(g.Validate(), ErrInvalidGeometry))

			m, err := g.Build()
			assert.Nil(t, m)
			assert.True(t, errors.Is(err, ErrInvalidGeometry))
		})
	}
}

func TestTopologyText(t *testing.T) {
	for _, top := range []Topology{TopologySimple, TopologyChained, TopologyVertical, TopologySerpentine} {
		text, err := top.MarshalText()
		require.NoError(t, err)

		var got Topology
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, top, got)
	}

	top, err := ParseTopology(" Serpentine ")
	require.NoError(t, err)
	assert.Equal(t, TopologySerpentine, top)

	_, err = ParseTopology("zigzag")
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
	assert.Equal(t, "unknown", Topology(9).String())
}

func TestParseColumnRemap(t *testing.T) {
	r, err := ParseColumnRemap("")
	require.NoError(t, err)
	assert.Equal(t, 5, r(1, 5, 64))

	r, err = ParseColumnRemap("mirror-odd")
	require.NoError(t, err)
	assert.Equal(t, 5, r(0, 5, 64))
	assert.Equal(t, 58, r(1, 5, 64))

	_, err = ParseColumnRemap("shuffle")
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
}
