// Package starfield implements a seeded particle field streaming toward
// the viewer. Stars live in a normalized view volume and are projected
// with a perspective divide; a fixed seed makes the whole run
// reproducible.
package starfield

import (
	"image"
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/LaMitaOne/glint/internal/canvas"
	"github.com/LaMitaOne/glint/internal/config"
	"github.com/LaMitaOne/glint/internal/registry"
)

// cfg stores the parameters applied to new instances, set via CLI/config.
var cfg = config.Default().Effects.Starfield

// SetConfig replaces the parameters used by new instances.
func SetConfig(c config.StarfieldConfig) {
	cfg = c
}

// star is one particle. x and y are lateral offsets in [-1, 1]; z is
// depth in (0, 1] with 1 at the far plane.
type star struct {
	x, y, z float64
}

// Effect holds the particle field. State mutates in place every update,
// so the effect deliberately offers no direct-mode snapshot; the engine
// falls back to buffered rendering for it.
type Effect struct {
	stars []star
	speed float64
	rng   *rand.Rand
}

// New creates a starfield from the package configuration.
func New() *Effect {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	count := cfg.Stars
	if count <= 0 {
		count = 220
	}

	e := &Effect{
		stars: make([]star, count),
		speed: cfg.Speed,
		rng:   rand.New(rand.NewSource(seed)),
	}
	for i := range e.stars {
		e.stars[i] = e.spawn()
		// Spread initial depths so the field does not start as a burst.
		e.stars[i].z = e.rng.Float64()*0.95 + 0.05
	}
	return e
}

// spawn places a fresh star at the far plane.
func (e *Effect) spawn() star {
	return star{
		x: e.rng.Float64()*2 - 1,
		y: e.rng.Float64()*2 - 1,
		z: 1,
	}
}

// ID returns the unique identifier for this effect.
func (e *Effect) ID() string {
	return "starfield"
}

// Title returns the display name for this effect.
func (e *Effect) Title() string {
	return "Starfield"
}

// Update streams every star toward the near plane, respawning those
// that cross it.
func (e *Effect) Update(dt float64) {
	for i := range e.stars {
		e.stars[i].z -= e.speed * dt
		if e.stars[i].z <= 0.05 {
			e.stars[i] = e.spawn()
		}
	}
}

// Render projects the field onto the canvas. Out-of-frame stars are
// dropped by the surface's bounds check.
func (e *Effect) Render(dst *canvas.Surface, area image.Rectangle, elapsed float64) {
	w, h := area.Dx(), area.Dy()
	if w <= 0 || h <= 0 {
		return
	}

	dst.FillRect(area, color.RGBA{A: 255})

	cx := float64(area.Min.X) + float64(w)/2
	cy := float64(area.Min.Y) + float64(h)/2
	focal := math.Min(float64(w), float64(h)) * 0.5

	for _, s := range e.stars {
		px := int(math.Round(cx + s.x/s.z*focal))
		py := int(math.Round(cy + s.y/s.z*focal))

		// Nearer stars are brighter.
		v := uint8(255 * (1 - s.z*0.8))
		dst.SetRGBA(px, py, color.RGBA{R: v, G: v, B: v, A: 255})
	}
}

var _ registry.Effect = (*Effect)(nil)

// Register the effect with the registry
func init() {
	registry.Register("starfield", func() registry.Effect {
		return New()
	})
}
