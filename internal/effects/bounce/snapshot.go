package bounce

import (
	"image"
	"image/color"
	"math"

	"github.com/LaMitaOne/glint/internal/canvas"
	"github.com/LaMitaOne/glint/internal/engine"
)

// State is an immutable pose of the rectangle, sufficient to draw one
// frame. The pulse is a pure function of elapsed time, so the pose only
// needs position and parameters.
type State struct {
	X, Y       float64
	Size       float64
	PulseHz    float64
	PulseAmp   float64
	ColorA     color.RGBA
	ColorB     color.RGBA
	Background color.RGBA
}

// pose captures the current motion state as a value.
func (e *Effect) pose() State {
	return State{
		X:          e.x,
		Y:          e.y,
		Size:       e.size,
		PulseHz:    e.pulseHz,
		PulseAmp:   e.pulseAmp,
		ColorA:     e.colorA,
		ColorB:     e.colorB,
		Background: e.background,
	}
}

// Snapshot returns an independent copy of the current pose for UI-side
// drawing in direct mode.
func (e *Effect) Snapshot() engine.Snapshot {
	return e.pose()
}

// Ensure State implements engine.Snapshot
var _ engine.Snapshot = State{}

// Draw renders the pose into dst, covering area.
func (s State) Draw(dst *canvas.Surface, area image.Rectangle, elapsed float64) {
	w, h := area.Dx(), area.Dy()
	if w <= 0 || h <= 0 {
		return
	}

	dst.FillRect(area, s.Background)

	pulse := math.Sin(2 * math.Pi * s.PulseHz * elapsed)

	side := s.Size * (1 + s.PulseAmp*pulse) * math.Min(float64(w), float64(h))
	if side < 1 {
		side = 1
	}
	half := side / 2

	cx := float64(area.Min.X) + s.X*float64(w)
	cy := float64(area.Min.Y) + s.Y*float64(h)

	rect := image.Rect(
		int(math.Round(cx-half)),
		int(math.Round(cy-half)),
		int(math.Round(cx+half)),
		int(math.Round(cy+half)),
	)

	fill := canvas.Lerp(s.ColorA, s.ColorB, 0.5+0.45*pulse)
	dst.FillRect(rect, fill)
}
