// Command pixelmap builds the scan pixel map for the configured panel
// array and writes it out for a driver to load.
package main

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"

	"github.com/fcurrie/hub75-pixelmap/internal/config"
	"github.com/fcurrie/hub75-pixelmap/pkg/pixelmap"
)

type dump struct {
	Geometry  string `json:"geometry"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	AddrLines int    `json:"addr_lines"`
	Lanes     int    `json:"lanes"`
	FlipLanes int    `json:"flip_lanes,omitempty"`
	Map       []int  `json:"map"`
}

func main() {
	var (
		configPath = flag.StringP("config", "c", config.DefaultPath, "path to config.yaml")
		topology   = flag.StringP("topology", "t", "", "override the configured topology (simple, chained, vertical, serpentine)")
		out        = flag.StringP("out", "o", "-", "output file, - for stdout")
		format     = flag.StringP("format", "f", "bin", "output format: bin (little-endian uint32) or json")
		flip       = flag.Bool("flip", false, "bake the configured lane flip into the map")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := run(*configPath, *topology, *out, *format, *flip); err != nil {
		log.Fatal().Err(err).Msg("pixelmap failed")
	}
}

func run(configPath, topology, out, format string, flip bool) (err error) {
	if format != "bin" && format != "json" {
		return errors.Errorf("unknown format %q", format)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(cfg.Level())
	if topology != "" {
		cfg.Panel.Topology = topology
	}

	g, err := cfg.Geometry()
	if err != nil {
		return errors.Wrap(err, "invalid geometry")
	}
	m, err := g.Build()
	if err != nil {
		return err
	}

	flipLanes := 0
	if flip && cfg.Display.FlipLanes > 0 {
		lf, err := pixelmap.NewLaneFlip(g.Width(), g.Height(), cfg.Display.FlipLanes)
		if err != nil {
			return err
		}
		m = m.Compose(lf)
		flipLanes = lf.Lanes()
	}

	log.Info().
		Str("geometry", g.String()).
		Int("entries", m.Len()).
		Bool("permutation", m.IsPermutation(g.Width()*g.Height())).
		Int("flip_lanes", flipLanes).
		Msg("built pixel map")

	var w io.Writer = os.Stdout
	if out != "-" {
		f, ferr := os.Create(out)
		if ferr != nil {
			return errors.Wrap(ferr, "failed to create output")
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = errors.Wrap(cerr, "failed to close output")
			}
		}()
		w = f
	}

	if err := writeMap(w, format, g, m, flipLanes); err != nil {
		return err
	}
	log.Debug().Str("out", out).Str("format", format).Msg("wrote map")
	return nil
}

// writeMap encodes m as format ("bin" or "json") to w.
func writeMap(w io.Writer, format string, g pixelmap.PanelGeometry, m pixelmap.Map, flipLanes int) error {
	switch format {
	case "bin":
		if _, err := m.WriteTo(w); err != nil {
			return errors.Wrap(err, "failed to write map")
		}
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err := enc.Encode(dump{
			Geometry:  g.String(),
			Width:     g.Width(),
			Height:    g.Height(),
			AddrLines: g.AddrLines,
			Lanes:     g.DeclaredLanes(),
			FlipLanes: flipLanes,
			Map:       m,
		})
		if err != nil {
			return errors.Wrap(err, "failed to encode map")
		}
	default:
		return errors.Errorf("unknown format %q", format)
	}
	return nil
}
