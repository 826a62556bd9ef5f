package pattern

import (
	"image"
	"image/color"

	"github.com/pkg/errors"

	"github.com/fcurrie/hub75-pixelmap/pkg/pixelmap"
)

// Stage is one step of the test card.
type Stage int

const (
	StageRed Stage = iota
	StageGreen
	StageBlue
	StageAlternating
	// StageLanes paints each physical lane its own colour.
	StageLanes
	// StageScan lights one scan line of the map per frame, following the
	// order the driver clocks pixels out.
	StageScan
	numStages
)

var stageNames = [...]string{"red", "green", "blue", "alternating", "lanes", "scan"}

func (s Stage) String() string {
	if s < 0 || s >= numStages {
		return "unknown"
	}
	return stageNames[s]
}

var lanePalette = []color.RGBA{
	{255, 0, 0, 255},
	{0, 255, 0, 255},
	{0, 0, 255, 255},
	{255, 255, 0, 255},
	{0, 255, 255, 255},
	{255, 0, 255, 255},
}

// TestCard cycles through the panel bring-up stages, holding each for a
// fixed number of frames.
type TestCard struct {
	geom  pixelmap.PanelGeometry
	m     pixelmap.Map
	width int
	hold  int
}

// NewTestCard builds the test card for g, holding each stage for hold
// frames.
func NewTestCard(g pixelmap.PanelGeometry, hold int) (*TestCard, error) {
	if hold < 1 {
		return nil, errors.Errorf("hold must be at least one frame, got %d", hold)
	}
	m, err := g.Build()
	if err != nil {
		return nil, err
	}
	return &TestCard{geom: g, m: m, width: g.Width(), hold: hold}, nil
}

// Stage returns the stage shown on the given frame.
func (t *TestCard) Stage(frame int) Stage {
	return Stage(frame / t.hold % int(numStages))
}

// Render implements display.Source.
func (t *TestCard) Render(dst *image.RGBA, frame int) error {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	if w != t.geom.Width() || h != t.geom.Height() {
		return errors.Errorf("test card is %dx%d, target is %dx%d", t.geom.Width(), t.geom.Height(), w, h)
	}

	switch t.Stage(frame) {
	case StageRed:
		fill(dst, color.RGBA{255, 0, 0, 255})
	case StageGreen:
		fill(dst, color.RGBA{0, 255, 0, 255})
	case StageBlue:
		fill(dst, color.RGBA{0, 0, 255, 255})
	case StageAlternating:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if (y*w+x)%2 == 0 {
					dst.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
				} else {
					dst.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
				}
			}
		}
	case StageLanes:
		laneHeight := h / t.geom.PhysicalLanes()
		for y := 0; y < h; y++ {
			c := lanePalette[(y/laneHeight)%len(lanePalette)]
			for x := 0; x < w; x++ {
				dst.SetRGBA(x, y, c)
			}
		}
	case StageScan:
		fill(dst, color.RGBA{0, 0, 0, 255})
		sw := t.geom.ScanWidth()
		k := frame % (len(t.m) / sw)
		for _, off := range t.m[k*sw : (k+1)*sw] {
			dst.SetRGBA(off%t.width, off/t.width, color.RGBA{255, 255, 255, 255})
		}
	}
	return nil
}
