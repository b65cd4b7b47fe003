// Package plasma implements the classic per-pixel sine-field palette
// animation. The field is a pure function of pixel position and elapsed
// time, so the effect carries no mutable state at all.
package plasma

import (
	"image"
	"image/color"
	"math"

	"github.com/LaMitaOne/glint/internal/canvas"
	"github.com/LaMitaOne/glint/internal/config"
	"github.com/LaMitaOne/glint/internal/engine"
	"github.com/LaMitaOne/glint/internal/registry"
)

// cfg stores the parameters applied to new instances, set via CLI/config.
var cfg = config.Default().Effects.Plasma

// SetConfig replaces the parameters used by new instances.
func SetConfig(c config.PlasmaConfig) {
	cfg = c
}

// Effect evaluates the plasma field. Every field is written once at
// construction and never again, which is what makes the effect itself a
// valid direct-mode snapshot.
type Effect struct {
	scale   float64
	speed   float64
	palette [256]color.RGBA
}

// New creates a plasma effect from the package configuration.
func New() *Effect {
	e := &Effect{
		scale: cfg.Scale,
		speed: cfg.Speed,
	}
	for i := range e.palette {
		hue := float64(i) / 256.0 * 360.0
		e.palette[i] = canvas.HSV(hue, 0.85, 1.0)
	}
	return e
}

// ID returns the unique identifier for this effect.
func (e *Effect) ID() string {
	return "plasma"
}

// Title returns the display name for this effect.
func (e *Effect) Title() string {
	return "Plasma"
}

// Update is a no-op: the field depends only on elapsed time.
func (e *Effect) Update(dt float64) {}

// Render evaluates three overlapping sine waves per pixel and maps their
// sum onto the palette.
func (e *Effect) Render(dst *canvas.Surface, area image.Rectangle, elapsed float64) {
	w, h := area.Dx(), area.Dy()
	if w <= 0 || h <= 0 {
		return
	}

	t := elapsed * e.speed

	// Per-frame terms hoisted out of the pixel loop.
	sinT2 := math.Sin(t / 2)
	cosT3 := math.Cos(t / 3)
	sinT5 := math.Sin(t / 5)

	for y := 0; y < h; y++ {
		ny := float64(y)/float64(h) - 0.5
		for x := 0; x < w; x++ {
			nx := float64(x)/float64(w) - 0.5

			v1 := math.Sin(nx*e.scale + t)
			v2 := math.Sin(e.scale*(nx*sinT2+ny*cosT3) + t)

			cx := nx + 0.5*sinT5
			cy := ny + 0.5*cosT3
			v3 := math.Sin(math.Sqrt(e.scale*e.scale*(cx*cx+cy*cy)+1) + t)

			idx := int((v1 + v2 + v3 + 3) / 6 * 255)
			if idx < 0 {
				idx = 0
			} else if idx > 255 {
				idx = 255
			}

			dst.SetRGBA(area.Min.X+x, area.Min.Y+y, e.palette[idx])
		}
	}
}

// Draw implements engine.Snapshot by delegating to Render.
func (e *Effect) Draw(dst *canvas.Surface, area image.Rectangle, elapsed float64) {
	e.Render(dst, area, elapsed)
}

// Snapshot returns the effect itself: immutable after construction, it
// can be shared between the worker and the UI without copying.
func (e *Effect) Snapshot() engine.Snapshot {
	return e
}

var (
	_ registry.Effect    = (*Effect)(nil)
	_ engine.Snapshotter = (*Effect)(nil)
	_ engine.Snapshot    = (*Effect)(nil)
)

// Register the effect with the registry
func init() {
	registry.Register("plasma", func() registry.Effect {
		return New()
	})
}
