// Command matrix runs bring-up patterns and procedural animations on the
// configured panel array through the preview driver.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"

	"github.com/fcurrie/hub75-pixelmap/internal/config"
	"github.com/fcurrie/hub75-pixelmap/internal/display"
	"github.com/fcurrie/hub75-pixelmap/internal/pattern"
	"github.com/fcurrie/hub75-pixelmap/pkg/rpi5matrix"
)

type options struct {
	configPath string
	pattern    string
	svg        string
	frames     int
	hold       int
	preview    string
	every      int
}

func main() {
	var o options
	flag.StringVarP(&o.configPath, "config", "c", config.DefaultPath, "path to config.yaml")
	flag.StringVarP(&o.pattern, "pattern", "p", "test", "pattern: test, bounce, icon or svg")
	flag.StringVar(&o.svg, "svg", "", "SVG file for the svg pattern")
	flag.IntVarP(&o.frames, "frames", "n", 0, "stop after this many frames (0 runs until interrupted)")
	flag.IntVar(&o.hold, "hold", 120, "frames per test card stage")
	flag.StringVar(&o.preview, "preview", "", "directory for PNG snapshots of the wire image")
	flag.IntVar(&o.every, "every", 60, "snapshot every N frames")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("matrix failed")
	}
	log.Info().Msg("shut down")
}

func run(ctx context.Context, o options) error {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(cfg.Level())

	mc, err := cfg.MatrixConfig()
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	var popts []rpi5matrix.PreviewOption
	popts = append(popts, rpi5matrix.WithLogger(log.Logger))
	if o.preview != "" {
		popts = append(popts, rpi5matrix.WithSnapshots(o.preview, o.every))
	} else if cfg.Preview.Dir != "" {
		popts = append(popts, rpi5matrix.WithSnapshots(cfg.Preview.Dir, cfg.Preview.Every))
	}
	drv, err := rpi5matrix.NewPreviewDriver(mc.Geometry, popts...)
	if err != nil {
		return err
	}

	matrix, err := rpi5matrix.NewMatrix(mc, drv)
	if err != nil {
		return errors.Wrap(err, "failed to create matrix")
	}
	defer func() {
		if err := matrix.Halt(); err != nil {
			log.Warn().Err(err).Msg("failed to blank matrix")
		}
		matrix.Close()
	}()
	log.Info().Stringer("matrix", matrix).Int("brightness", mc.Brightness).Msg("matrix ready")

	var src display.Source
	switch o.pattern {
	case "test":
		tc, err := pattern.NewTestCard(mc.Geometry, o.hold)
		if err != nil {
			return err
		}
		src = tc
	case "bounce":
		src = pattern.NewBounce()
	case "icon":
		src = pattern.NewSunIcon()
	case "svg":
		if o.svg == "" {
			return errors.New("--svg is required for the svg pattern")
		}
		s, err := pattern.LoadSVG(o.svg)
		if err != nil {
			return err
		}
		s.Speed = 1
		src = s
	default:
		return errors.Errorf("unknown pattern %q", o.pattern)
	}

	renderer := display.NewRenderer(display.Config{FPS: cfg.Display.FPS, MaxFrames: o.frames}, log.Logger)
	renderer.SetMatrix(matrix)
	renderer.SetSource(src)
	return renderer.Start(ctx)
}
