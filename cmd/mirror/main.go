// Command mirror copies a region of a Linux framebuffer onto the matrix,
// 1:1 or scaled to fit.
package main

import (
	"context"
	"image"
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
	"github.com/fcurrie/hub75-pixelmap/pkg/fbdev"
	"github.com/fcurrie/hub75-pixelmap/pkg/rpi5matrix"
)

func main() {
	var (
		configPath = flag.StringP("config", "c", config.DefaultPath, "path to config.yaml")
		fb         = flag.String("fb", "", "framebuffer device name (default from config)")
		x          = flag.Int("x", -1, "left edge of the mirrored region (default from config)")
		y          = flag.Int("y", -1, "top edge of the mirrored region (default from config)")
		scale      = flag.Bool("scale", false, "scale the whole framebuffer instead of copying a region")
		frames     = flag.IntP("frames", "n", 0, "stop after this many frames (0 runs until interrupted)")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	if *fb != "" {
		cfg.Mirror.Device = *fb
	}
	if *x >= 0 {
		cfg.Mirror.X = *x
	}
	if *y >= 0 {
		cfg.Mirror.Y = *y
	}
	if *scale {
		cfg.Mirror.Scale = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *frames); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("mirror failed")
	}
	log.Info().Msg("shut down")
}

func run(ctx context.Context, cfg *config.Config, frames int) error {
	dev, err := fbdev.Open(cfg.Mirror.Device)
	if err != nil {
		return err
	}
	defer dev.Close()
	log.Info().
		Stringer("device", dev).
		Str("size", dev.Bounds().Size().String()).
		Int("bpp", dev.BitsPerPixel()).
		Msg("framebuffer mapped")

	mc, err := cfg.MatrixConfig()
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	if cfg.Mirror.Scale {
		mc.ScaleImages = true
	}

	region := image.Rectangle{
		Min: image.Pt(cfg.Mirror.X, cfg.Mirror.Y),
		Max: image.Pt(cfg.Mirror.X+mc.Geometry.Width(), cfg.Mirror.Y+mc.Geometry.Height()),
	}
	if !cfg.Mirror.Scale && !region.In(dev.Bounds()) {
		return errors.Errorf("region %v does not fit in framebuffer %v", region, dev.Bounds())
	}

	var popts []rpi5matrix.PreviewOption
	popts = append(popts, rpi5matrix.WithLogger(log.Logger))
	if cfg.Preview.Dir != "" {
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
	defer matrix.Close()

	src := &pattern.Capture{Src: dev, Scale: cfg.Mirror.Scale}
	if !cfg.Mirror.Scale {
		src.Src = dev.Region(region)
	}

	renderer := display.NewRenderer(display.Config{FPS: cfg.Display.FPS, MaxFrames: frames}, log.Logger)
	renderer.SetMatrix(matrix)
	renderer.SetSource(src)
	return renderer.Start(ctx)
}
