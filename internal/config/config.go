package config

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/fcurrie/hub75-pixelmap/pkg/frame"
	"github.com/fcurrie/hub75-pixelmap/pkg/pixelmap"
	"github.com/fcurrie/hub75-pixelmap/pkg/rpi5matrix"
)

// DefaultPath is where the tools look for their configuration.
const DefaultPath = "config.yaml"

// PanelConfig describes the panel array and its wiring.
type PanelConfig struct {
	// Width and Height are the pixel dimensions of one module.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// PanelsPerChain panels are daisy-chained left to right on a connector.
	PanelsPerChain int `yaml:"panels_per_chain"`
	// PanelsPerLane panels are chained top to bottom on one lane
	// (vertical topology only).
	PanelsPerLane int `yaml:"panels_per_lane,omitempty"`
	// Chains is the number of connectors stacked vertically.
	Chains    int `yaml:"chains"`
	AddrLines int `yaml:"addr_lines"`
	// Lanes declared to the driver. Zero derives it from the height.
	Lanes        int    `yaml:"lanes,omitempty"`
	VirtualLanes int    `yaml:"virtual_lanes,omitempty"`
	Topology     string `yaml:"topology"`
	// ColumnRemap is "identity", "mirror" or "mirror-odd"; chained only.
	ColumnRemap string `yaml:"column_remap,omitempty"`
}

// DisplayConfig holds how frames are produced and shown.
type DisplayConfig struct {
	Brightness int    `yaml:"brightness"`
	Format     string `yaml:"format"`
	// FlipLanes rotates this many horizontal strips by 180 degrees; 0 is off.
	FlipLanes   int  `yaml:"flip_lanes"`
	FPS         int  `yaml:"fps"`
	ScaleImages bool `yaml:"scale_images"`
}

// PreviewConfig controls the preview driver's PNG snapshots.
type PreviewConfig struct {
	Dir   string `yaml:"dir,omitempty"`
	Every int    `yaml:"every,omitempty"`
}

// MirrorConfig selects the framebuffer region mirrored onto the matrix.
type MirrorConfig struct {
	Device string `yaml:"device"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	// Scale resamples the whole framebuffer instead of copying a region.
	Scale bool `yaml:"scale"`
}

// Config represents the application configuration
type Config struct {
	Panel    PanelConfig   `yaml:"panel"`
	Display  DisplayConfig `yaml:"display"`
	Preview  PreviewConfig `yaml:"preview,omitempty"`
	Mirror   MirrorConfig  `yaml:"mirror"`
	LogLevel string        `yaml:"log_level"`
}

// DefaultConfig returns the configuration for twelve 64x32 panels on
// three connectors: a 256x96 frame scanned as six lanes of 16 rows.
func DefaultConfig() *Config {
	return &Config{
		Panel: PanelConfig{
			Width:          64,
			Height:         32,
			PanelsPerChain: 4,
			Chains:         3,
			AddrLines:      4,
			Topology:       pixelmap.TopologySimple.String(),
		},
		Display: DisplayConfig{
			Brightness: 128,
			Format:     frame.RGB888Packed.String(),
			FPS:        60,
		},
		Mirror: MirrorConfig{
			Device: "fb0",
		},
		LogLevel: zerolog.InfoLevel.String(),
	}
}

// Normalize fills in zero values so partially written files still load.
func (c *Config) Normalize() {
	if c.Panel.PanelsPerChain == 0 {
		c.Panel.PanelsPerChain = 1
	}
	if c.Panel.Chains == 0 {
		c.Panel.Chains = 1
	}
	if c.Panel.Topology == "" {
		c.Panel.Topology = pixelmap.TopologySimple.String()
	}
	if c.Display.Format == "" {
		c.Display.Format = frame.RGB888Packed.String()
	}
	if c.Display.FPS <= 0 {
		c.Display.FPS = 60
	}
	if c.Mirror.Device == "" {
		c.Mirror.Device = "fb0"
	}
	if c.LogLevel == "" {
		c.LogLevel = zerolog.InfoLevel.String()
	}
}

// Geometry converts the panel section into a validated geometry.
func (c *Config) Geometry() (pixelmap.PanelGeometry, error) {
	topo, err := pixelmap.ParseTopology(c.Panel.Topology)
	if err != nil {
		return pixelmap.PanelGeometry{}, err
	}
	remap, err := pixelmap.ParseColumnRemap(c.Panel.ColumnRemap)
	if err != nil {
		return pixelmap.PanelGeometry{}, err
	}

	g := pixelmap.PanelGeometry{
		PanelWidth:     c.Panel.Width,
		PanelHeight:    c.Panel.Height,
		PanelsPerChain: c.Panel.PanelsPerChain,
		PanelsPerLane:  c.Panel.PanelsPerLane,
		Chains:         c.Panel.Chains,
		AddrLines:      c.Panel.AddrLines,
		Lanes:          c.Panel.Lanes,
		VirtualLanes:   c.Panel.VirtualLanes,
		Topology:       topo,
		ColumnRemap:    remap,
	}
	if err := g.Validate(); err != nil {
		return pixelmap.PanelGeometry{}, err
	}
	return g, nil
}

// MatrixConfig returns the matrix configuration for this file.
func (c *Config) MatrixConfig() (*rpi5matrix.Config, error) {
	g, err := c.Geometry()
	if err != nil {
		return nil, err
	}
	format, err := frame.ParseFormat(c.Display.Format)
	if err != nil {
		return nil, err
	}
	return &rpi5matrix.Config{
		Geometry:    g,
		Format:      format,
		Brightness:  c.Display.Brightness,
		FlipLanes:   c.Display.FlipLanes,
		ScaleImages: c.Display.ScaleImages,
	}, nil
}

// Level returns the configured log level, Info when it does not parse.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// LoadConfig loads the configuration from a YAML file. A missing file is
// created with the defaults; if that write fails the defaults are still
// returned and the failure is logged.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("failed to write default config, using defaults")
			}
			return cfg, nil
		}
		return nil, errors.Wrap(err, "failed to read config")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes cfg to path atomically.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to encode config")
	}

	tmp, err := os.CreateTemp(dir, ".hub75-config-*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to write config")
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return errors.Wrap(os.Rename(tmpName, path), "failed to replace config")
}

// Save writes c to path.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
