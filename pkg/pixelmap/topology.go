package pixelmap

import (
	"strings"
)

// Topology selects how panels are wired to the driver's lanes.
type Topology int

const (
	// TopologySimple stacks lanes vertically, one RowsPerScan block each,
	// with columns in plain left to right order.
	TopologySimple Topology = iota
	// TopologyChained adds a per-panel column remap for panel controllers
	// whose internal column order is not contiguous.
	TopologyChained
	// TopologyVertical daisy-chains several panels down a single lane.
	TopologyVertical
	// TopologySerpentine reverses the column order on odd address rows.
	TopologySerpentine
)

var topologyNames = map[Topology]string{
	TopologySimple:     "simple",
	TopologyChained:    "chained",
	TopologyVertical:   "vertical",
	TopologySerpentine: "serpentine",
}

func (t Topology) String() string {
	if name, ok := topologyNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseTopology returns the topology named by s. Names are the ones
// printed by String, matched case-insensitively.
func ParseTopology(s string) (Topology, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for t, name := range topologyNames {
		if name == want {
			return t, nil
		}
	}
	return 0, newError("parse topology", ErrInvalidGeometry, "unknown topology %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Topology) MarshalText() ([]byte, error) {
	if _, ok := topologyNames[t]; !ok {
		return nil, newError("marshal topology", ErrInvalidGeometry, "unknown topology %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Topology) UnmarshalText(text []byte) error {
	parsed, err := ParseTopology(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
