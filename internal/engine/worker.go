package engine

import (
	"sync"
	"time"

	"github.com/LaMitaOne/glint/internal/canvas"
)

// worker owns the frame production goroutine. Its timing state lives in
// this struct, confined to the goroutine; the engine is reached only
// through atomics and the frame slot.
type worker struct {
	eng    *Engine
	effect Effect
	clock  Clock
	mode   Mode

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	lastTick time.Time
	elapsed  float64
}

func (e *Engine) startWorker() *worker {
	w := &worker{
		eng:    e,
		effect: e.effect,
		clock:  e.clock,
		mode:   e.mode,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *worker) signalStop() {
	w.stopOnce.Do(func() {
		close(w.stop)
	})
}

// run is the frame production loop. Each iteration computes the logic
// delta, advances the effect unless paused, produces and publishes an
// artifact, requests a repaint, then sleeps toward the target frame
// interval. The stop signal is honored between iterations and during the
// sleep; on exit the liveness flag drops before the done channel closes.
func (w *worker) run() {
	e := w.eng
	e.workerRunning.Store(true)
	e.counters.startNanos.CompareAndSwap(0, w.clock.Now().UnixNano())
	defer close(w.done)
	defer e.workerRunning.Store(false)

	// A fresh worker resumes the visible timeline but not the tick: the
	// first delta must reflect one frame interval, not the stopped gap.
	w.elapsed = e.ElapsedSeconds()
	w.lastTick = w.clock.Now()

	timer := time.NewTimer(frameInterval(e.TargetFPS()))
	defer timer.Stop()

	for {
		select {
		case <-w.stop:
			return
		default:
		}

		now := w.clock.Now()
		dt := elapsedSeconds(now, w.lastTick)
		w.lastTick = now

		if e.active.Load() {
			w.effect.Update(dt)
			w.elapsed += dt
			e.setElapsed(w.elapsed)
		}

		w.produce()
		e.requestRepaint()
		e.counters.iterations.Add(1)

		select {
		case <-w.stop:
			return
		case <-timer.C:
		}
		timer.Reset(frameInterval(e.TargetFPS()))
	}
}

// produce builds and publishes one artifact. Buffered mode rasterizes
// into a fresh offscreen surface sized to the host's current bounds;
// direct mode publishes a logic snapshot and leaves drawing to the
// presenter. A host without usable extent skips the frame; the loop
// stays alive.
func (w *worker) produce() {
	e := w.eng
	if w.mode == ModeDirect {
		// New guarantees direct-mode effects implement Snapshotter.
		snap := w.effect.(Snapshotter).Snapshot()
		e.slot.publish(&Frame{
			Seq:      e.seq.Add(1),
			Elapsed:  w.elapsed,
			Produced: w.clock.Now(),
			State:    snap,
		})
		e.counters.frames.Add(1)
		return
	}

	width, height := e.host.Bounds()
	surface := canvas.NewSurface(width, height)
	if surface == nil {
		e.counters.skipped.Add(1)
		return
	}
	w.effect.Render(surface, surface.Area(), w.elapsed)
	e.slot.publish(&Frame{
		Seq:      e.seq.Add(1),
		Elapsed:  w.elapsed,
		Produced: w.clock.Now(),
		Image:    surface.Snapshot(),
	})
	e.counters.frames.Add(1)
}
