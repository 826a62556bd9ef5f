package display

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/fcurrie/hub75-pixelmap/internal/types"
	"github.com/fcurrie/hub75-pixelmap/pkg/frame"
)

// Source draws one frame of an animation.
type Source interface {
	Render(dst *image.RGBA, frame int) error
}

// FrameSource is a Source that can also draw straight into the matrix
// frame. The renderer prefers it when the matrix supports Update.
type FrameSource interface {
	Source
	RenderFrame(dst frame.Frame, n int) error
}

type frameUpdater interface {
	Update(fn func(dst frame.Frame) error) error
}

// Config tunes the render loop.
type Config struct {
	FPS int
	// MaxFrames stops the loop after this many frames; 0 runs until the
	// context is cancelled.
	MaxFrames int
}

// Renderer handles the display rendering logic
type Renderer struct {
	cfg     Config
	matrix  types.Matrix
	source  Source
	scratch *image.RGBA
	frame   int
	log     zerolog.Logger
	mu      sync.RWMutex
}

// NewRenderer creates a new renderer instance
func NewRenderer(cfg Config, log zerolog.Logger) *Renderer {
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	return &Renderer{
		cfg: cfg,
		log: log,
	}
}

// SetMatrix sets the matrix to render to
func (r *Renderer) SetMatrix(matrix types.Matrix) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matrix = matrix
	r.scratch = nil
	if matrix != nil {
		w, h := matrix.GetDimensions()
		r.scratch = image.NewRGBA(image.Rect(0, 0, w, h))
	}
}

// SetSource sets what is drawn each frame
func (r *Renderer) SetSource(src Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.source = src
}

// Frames returns the number of frames rendered so far.
func (r *Renderer) Frames() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frame
}

// Start starts the renderer. It returns nil once MaxFrames frames have
// been shown and the context error when cancelled first.
func (r *Renderer) Start(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(r.cfg.FPS))
	defer ticker.Stop()

	r.log.Info().Int("fps", r.cfg.FPS).Msg("renderer started")
	for {
		select {
		case <-ctx.Done():
			r.log.Info().Int("frames", r.Frames()).Msg("renderer stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := r.render(); err != nil {
				r.log.Error().Err(err).Int("frame", r.Frames()).Msg("failed to render")
			}
			if r.cfg.MaxFrames > 0 && r.Frames() >= r.cfg.MaxFrames {
				r.log.Info().Int("frames", r.Frames()).Msg("renderer finished")
				return nil
			}
		}
	}
}

// render renders the current state to the matrix
func (r *Renderer) render() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.matrix == nil || r.source == nil {
		return nil
	}

	n := r.frame
	r.frame++

	if fs, ok := r.source.(FrameSource); ok {
		if fu, ok := r.matrix.(frameUpdater); ok {
			if err := r.matrix.Clear(); err != nil {
				return errors.Wrap(err, "clear")
			}
			if err := fu.Update(func(dst frame.Frame) error { return fs.RenderFrame(dst, n) }); err != nil {
				return errors.Wrap(err, "source")
			}
			return r.matrix.Show()
		}
	}

	for i := range r.scratch.Pix {
		r.scratch.Pix[i] = 0
	}
	if err := r.source.Render(r.scratch, n); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := r.matrix.SetImage(r.scratch); err != nil {
		return errors.Wrap(err, "set image")
	}
	return r.matrix.Show()
}
