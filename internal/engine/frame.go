package engine

import (
	"image"
	"time"

	"github.com/LaMitaOne/glint/internal/canvas"
)

// Snapshot is an immutable copy of effect state sufficient to draw one
// frame. Draw runs on the UI goroutine in direct mode and may be invoked
// several times for the same snapshot; implementations must not mutate
// the receiver.
type Snapshot interface {
	Draw(dst *canvas.Surface, area image.Rectangle, elapsed float64)
}

// Frame is the artifact published by one worker iteration: a finished
// image in buffered mode, or a logic snapshot in direct mode. A frame is
// never mutated after it is published.
type Frame struct {
	Seq      uint64
	Elapsed  float64
	Produced time.Time
	Image    *image.RGBA
	State    Snapshot
}
