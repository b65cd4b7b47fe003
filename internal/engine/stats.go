package engine

import (
	"sync/atomic"
	"time"
)

// counters accumulate across the whole life of an engine, surviving
// pause and restart.
type counters struct {
	iterations atomic.Uint64
	frames     atomic.Uint64
	skipped    atomic.Uint64
	startNanos atomic.Int64 // wall time of the first worker start
}

// Stats is a point-in-time summary of a run, safe to read while the
// worker is producing.
type Stats struct {
	Iterations uint64
	Frames     uint64
	Skipped    uint64
	Elapsed    float64       // logic seconds fed to the effect
	Wall       time.Duration // since the first activation
	AvgFPS     float64       // frames produced per wall second
}

// Stats returns a snapshot of the run counters.
func (e *Engine) Stats() Stats {
	s := Stats{
		Iterations: e.counters.iterations.Load(),
		Frames:     e.counters.frames.Load(),
		Skipped:    e.counters.skipped.Load(),
		Elapsed:    e.ElapsedSeconds(),
	}
	if start := e.counters.startNanos.Load(); start > 0 {
		s.Wall = e.clock.Now().Sub(time.Unix(0, start))
	}
	if s.Wall > 0 {
		s.AvgFPS = float64(s.Frames) / s.Wall.Seconds()
	}
	return s
}
