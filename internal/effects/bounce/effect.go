// Package bounce implements the bouncing, pulsing rectangle effect.
// A square drifts across the canvas at constant speed, reflects off the
// walls, and breathes: a sinusoidal pulse drives both its size and a
// color blend between two configured endpoints.
package bounce

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
var cfg = config.Default().Effects.Bounce

// SetConfig replaces the parameters used by new instances.
func SetConfig(c config.BounceConfig) {
	cfg = c
}

// Effect holds the rectangle's motion state. Position and velocity are
// normalized to the unit square so the effect is resolution-independent;
// pixels only enter the picture at draw time.
type Effect struct {
	x, y   float64 // center position in [0, 1]
	vx, vy float64 // normalized units per second

	size     float64
	pulseHz  float64
	pulseAmp float64

	colorA     color.RGBA
	colorB     color.RGBA
	background color.RGBA
}

// New creates a bounce effect from the package configuration.
func New() *Effect {
	e := &Effect{
		x:        0.31,
		y:        0.42,
		size:     cfg.Size,
		pulseHz:  cfg.PulseHz,
		pulseAmp: cfg.PulseAmp,
	}

	// Fixed initial heading keeps runs deterministic.
	heading := math.Pi / 5
	e.vx = cfg.Speed * math.Cos(heading)
	e.vy = cfg.Speed * math.Sin(heading)

	e.colorA = parseOr(cfg.ColorA, color.RGBA{R: 0xff, G: 0x5f, B: 0x87, A: 0xff})
	e.colorB = parseOr(cfg.ColorB, color.RGBA{R: 0x5f, G: 0xd7, B: 0xff, A: 0xff})
	e.background = parseOr(cfg.Background, color.RGBA{R: 0x10, G: 0x10, B: 0x1c, A: 0xff})

	return e
}

// parseOr falls back to a built-in color when the configured hex string
// does not parse.
func parseOr(s string, fallback color.RGBA) color.RGBA {
	c, err := canvas.ParseHex(s)
	if err != nil {
		return fallback
	}
	return c
}

// ID returns the unique identifier for this effect.
func (e *Effect) ID() string {
	return "bounce"
}

// Title returns the display name for this effect.
func (e *Effect) Title() string {
	return "Bounce"
}

// Update advances the rectangle by dt seconds, reflecting off the walls.
func (e *Effect) Update(dt float64) {
	e.x += e.vx * dt
	e.y += e.vy * dt

	margin := e.size / 2
	e.x, e.vx = reflect(e.x, e.vx, margin, 1-margin)
	e.y, e.vy = reflect(e.y, e.vy, margin, 1-margin)
}

// reflect clamps pos into [lo, hi] and flips the velocity on wall
// contact. Degenerate ranges (size >= 1) pin the center instead.
func reflect(pos, vel, lo, hi float64) (float64, float64) {
	if lo > hi {
		return 0.5, vel
	}
	if pos < lo {
		return lo, math.Abs(vel)
	}
	if pos > hi {
		return hi, -math.Abs(vel)
	}
	return pos, vel
}

// Render draws the current pose into dst.
func (e *Effect) Render(dst *canvas.Surface, area image.Rectangle, elapsed float64) {
	e.pose().Draw(dst, area, elapsed)
}

var (
	_ registry.Effect    = (*Effect)(nil)
	_ engine.Snapshotter = (*Effect)(nil)
)

// Register the effect with the registry
func init() {
	registry.Register("bounce", func() registry.Effect {
		return New()
	})
}
