package engine

import (
	"image"

	"github.com/LaMitaOne/glint/internal/canvas"
)

// Effect is the engine's extension point. Update advances effect state by
// dt seconds; Render draws the current state into dst, covering area.
// Both are called from the worker goroutine only — in direct mode, UI-side
// drawing goes through an immutable Snapshot instead of Render.
type Effect interface {
	Update(dt float64)
	Render(dst *canvas.Surface, area image.Rectangle, elapsed float64)
}

// Snapshotter is implemented by effects that support direct mode. The
// returned Snapshot must be an independent copy: the worker keeps
// mutating its own state after publishing it.
type Snapshotter interface {
	Snapshot() Snapshot
}
