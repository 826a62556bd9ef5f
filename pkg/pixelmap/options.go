package pixelmap

import "strings"

// ColumnRemap maps a panel-relative column to the column the panel's
// controller actually lights. It must be a permutation of
// [0, panelWidth) for every panel.
type ColumnRemap func(panel, col, panelWidth int) int

// IdentityColumns leaves columns untouched.
func IdentityColumns(panel, col, panelWidth int) int {
	return col
}

// MirrorColumns reverses the columns of every panel.
func MirrorColumns(panel, col, panelWidth int) int {
	return panelWidth - 1 - col
}

// MirrorOddPanels reverses the columns of every second panel in the
// chain, as seen on chains where alternate panels are mounted rotated.
func MirrorOddPanels(panel, col, panelWidth int) int {
	if panel%2 == 1 {
		return panelWidth - 1 - col
	}
	return col
}

var columnRemaps = map[string]ColumnRemap{
	"identity":   IdentityColumns,
	"mirror":     MirrorColumns,
	"mirror-odd": MirrorOddPanels,
}

// ParseColumnRemap returns the built-in remap with the given name. An
// empty name selects IdentityColumns.
func ParseColumnRemap(name string) (ColumnRemap, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return IdentityColumns, nil
	}
	if r, ok := columnRemaps[name]; ok {
		return r, nil
	}
	return nil, newError("parse column remap", ErrInvalidGeometry, "unknown column remap %q", name)
}

// Option tunes a builder.
type Option func(*options)

type options struct {
	virtualLanes int
	remap        ColumnRemap
}

// WithVirtualLanes declares that the last n lanes passed to a builder have
// no panels behind them. Their entries are pruned instead of being
// reported as out of range.
func WithVirtualLanes(n int) Option {
	return func(o *options) {
		o.virtualLanes = n
	}
}

// WithColumnRemap sets the per-panel column remap used by
// ChainedMultilane. Other builders ignore it.
func WithColumnRemap(r ColumnRemap) Option {
	return func(o *options) {
		o.remap = r
	}
}

func buildOptions(opts []Option) options {
	o := options{remap: IdentityColumns}
	for _, opt := range opts {
		opt(&o)
	}
	if o.remap == nil {
		o.remap = IdentityColumns
	}
	return o
}
