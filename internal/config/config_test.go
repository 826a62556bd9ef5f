package config

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcurrie/hub75-pixelmap/pkg/frame"
	"github.com/fcurrie/hub75-pixelmap/pkg/pixelmap"
)

func TestDefaultConfigGeometry(t *testing.T) {
	cfg := DefaultConfig()
	g, err := cfg.Geometry()
	require.NoError(t, err)

	assert.Equal(t, 256, g.Width())
	assert.Equal(t, 96, g.Height())
	assert.Equal(t, 6, g.DeclaredLanes())

	m, err := g.Build()
	require.NoError(t, err)
	assert.Equal(t, 24576, m.Len())
}

func TestLoadConfigFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = os.Stat(path)
	require.NoError(t, err)

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadConfigFirstRunReadOnly(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("needs /proc")
	}
	var buf bytes.Buffer
	saved := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = saved }()

	// Nothing can be created under /proc, not even as root.
	path := "/proc/hub75-pixelmap-missing/config.yaml"
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Contains(t, buf.String(), "failed to write default config")
	assert.Contains(t, buf.String(), path)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Panel.Topology = "serpentine"
	cfg.Display.FlipLanes = 3
	cfg.Display.Format = "rgb565"
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	mc, err := loaded.MatrixConfig()
	require.NoError(t, err)
	assert.Equal(t, pixelmap.TopologySerpentine, mc.Geometry.Topology)
	assert.Equal(t, frame.RGB565, mc.Format)
	assert.Equal(t, 3, mc.FlipLanes)
}

func TestLoadConfigNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("panel:\n  width: 64\n  height: 32\n  addr_lines: 4\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Panel.Chains)
	assert.Equal(t, "simple", cfg.Panel.Topology)
	assert.Equal(t, 60, cfg.Display.FPS)
	assert.Equal(t, "fb0", cfg.Mirror.Device)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())

	g, err := cfg.Geometry()
	require.NoError(t, err)
	assert.Equal(t, 2, g.DeclaredLanes())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("panel: [\n"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestGeometryErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		kind   error
	}{
		{
			name:   "unknown topology",
			mutate: func(c *Config) { c.Panel.Topology = "spiral" },
		},
		{
			name:   "unknown remap",
			mutate: func(c *Config) { c.Panel.ColumnRemap = "twist" },
		},
		{
			name:   "too many address lines",
			mutate: func(c *Config) { c.Panel.AddrLines = 6 },
			kind:   pixelmap.ErrInvalidGeometry,
		},
		{
			name:   "undeclared virtual lane",
			mutate: func(c *Config) { c.Panel.Lanes = 8 },
			kind:   pixelmap.ErrInvalidGeometry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			_, err := cfg.Geometry()
			require.Error(t, err)
			if tt.kind != nil {
				assert.True(t, errors.Is(err, tt.kind), "got %v", err)
			}
		})
	}
}

func TestLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "debug"
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	cfg.LogLevel = "loud"
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}
