// Package engine implements a threaded render engine: a dedicated worker
// goroutine advances effect logic and produces frames at a target rate,
// while the goroutine that owns the screen presents the most recently
// published artifact. The engine is host-agnostic; anything that can
// report bounds and accept an asynchronous repaint request can host it.
package engine

import (
	"image/color"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/LaMitaOne/glint/internal/canvas"
)

// Mode selects the buffer-handoff strategy between the worker and the
// UI goroutine.
type Mode int

const (
	// ModeBuffered renders frames off the UI goroutine and publishes
	// finished images (double buffering).
	ModeBuffered Mode = iota
	// ModeDirect publishes logic snapshots only; drawing happens on the
	// UI goroutine at paint time.
	ModeDirect
)

// String returns the config-file name of the mode.
func (m Mode) String() string {
	if m == ModeDirect {
		return "direct"
	}
	return "buffered"
}

// ParseMode maps a config-file name to a mode. Unknown names fall back
// to buffered.
func ParseMode(name string) Mode {
	if name == "direct" {
		return ModeDirect
	}
	return ModeBuffered
}

// Host is the visual control the engine animates.
type Host interface {
	// Bounds returns the drawable size in pixels. It is polled from the
	// worker goroutine; implementations must be safe for concurrent use.
	Bounds() (width, height int)
	// Invalidate asks the host to repaint soon. It must never block the
	// caller and must tolerate being called during or after teardown;
	// requests may be dropped.
	Invalidate()
}

const (
	// DefaultFrameInterval paces the loop when no positive target FPS
	// is set.
	DefaultFrameInterval = 16 * time.Millisecond
	// stopGrace bounds how long Stop waits for the worker to exit before
	// proceeding with teardown anyway.
	stopGrace = 100 * time.Millisecond
)

// Options configure an Engine.
type Options struct {
	Mode       Mode
	TargetFPS  int         // <= 0 selects the default interval
	Quality    canvas.Quality
	ClearColor color.RGBA  // shown until the first artifact lands
	Clock      Clock       // nil selects the system clock
	Logger     *log.Logger // nil silences engine logging
}

// Engine owns one worker goroutine that produces frames from an Effect,
// hands them through a single-slot buffer, and nudges the host to paint.
type Engine struct {
	host    Host
	effect  Effect
	mode    Mode
	clock   Clock
	logger  *log.Logger
	quality canvas.Quality
	clear   color.RGBA

	slot slot

	active         atomic.Bool
	workerRunning  atomic.Bool
	repaintPending atomic.Bool
	targetFPS      atomic.Int32
	elapsedBits    atomic.Uint64
	seq            atomic.Uint64

	counters counters

	mu       sync.Mutex
	worker   *worker
	stopping bool
	closed   bool
}

// New creates an engine for the given host and effect. The worker is not
// started until the first SetActive(true). A direct-mode request with an
// effect that cannot snapshot falls back to buffered mode.
func New(host Host, effect Effect, opts Options) *Engine {
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	mode := opts.Mode
	if mode == ModeDirect {
		if _, ok := effect.(Snapshotter); !ok {
			logger.Warn("effect cannot snapshot its state, using buffered mode")
			mode = ModeBuffered
		}
	}

	e := &Engine{
		host:    host,
		effect:  effect,
		mode:    mode,
		clock:   clock,
		logger:  logger,
		quality: opts.Quality,
		clear:   opts.ClearColor,
	}
	e.targetFPS.Store(int32(opts.TargetFPS))
	return e
}

// Mode returns the resolved buffer-handoff mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// SetActive starts or pauses the animation. Activating starts the worker
// goroutine when none is running (a no-op while one is running or still
// stopping); deactivating pauses logic but keeps the loop ticking, so a
// later resume has no startup latency. SetActive cannot fail.
func (e *Engine) SetActive(active bool) {
	e.active.Store(active)
	if active {
		e.mu.Lock()
		// workerRunning gates the restart path: if a previous worker
		// outlived its stop grace it is still winding down, and starting
		// another would briefly double production.
		if !e.closed && !e.stopping && e.worker == nil && !e.workerRunning.Load() {
			e.worker = e.startWorker()
		}
		e.mu.Unlock()
	}
	e.requestRepaint()
}

// Active reports the user intent set by SetActive.
func (e *Engine) Active() bool {
	return e.active.Load()
}

// WorkerRunning reports actual worker liveness. It is flipped only by the
// worker goroutine itself on entry and exit.
func (e *Engine) WorkerRunning() bool {
	return e.workerRunning.Load()
}

// SetTargetFPS changes frame pacing starting from the next loop tick.
// Values <= 0 select the default interval; never an error.
func (e *Engine) SetTargetFPS(fps int) {
	e.targetFPS.Store(int32(fps))
}

// TargetFPS returns the current FPS target as set; <= 0 means the default
// interval is in use.
func (e *Engine) TargetFPS() int {
	return int(e.targetFPS.Load())
}

// ElapsedSeconds returns the effect's logic time: the sum of all deltas
// fed to Update. It freezes while paused and persists across Stop/start.
func (e *Engine) ElapsedSeconds() float64 {
	return math.Float64frombits(e.elapsedBits.Load())
}

func (e *Engine) setElapsed(v float64) {
	e.elapsedBits.Store(math.Float64bits(v))
}

// Latest returns the most recently published frame, if any.
func (e *Engine) Latest() (*Frame, bool) {
	return e.slot.latest()
}

// Present draws the current artifact into dst. It runs on the goroutine
// that owns the screen, inside the host's paint path: buffered mode blits
// the latest frame scaled to dst with the configured sampling quality,
// direct mode re-executes effect drawing from the published snapshot at
// the current logic time, and the clear color covers the gap before the
// first artifact exists.
func (e *Engine) Present(dst *canvas.Surface) {
	e.repaintPending.Store(false)
	if dst == nil {
		return
	}
	f, ok := e.slot.latest()
	switch {
	case !ok:
		dst.Fill(e.clear)
	case e.mode == ModeDirect && f.State != nil:
		dst.Fill(e.clear)
		f.State.Draw(dst, dst.Area(), e.ElapsedSeconds())
	case f.Image != nil:
		canvas.DrawImage(dst, dst.Area(), f.Image, e.quality)
	default:
		dst.Fill(e.clear)
	}
}

// Stop shuts the worker down cooperatively: signal, then wait a bounded
// grace period, then proceed regardless of whether the worker confirmed
// its exit. A later SetActive(true) starts a fresh worker whose first
// delta reflects one frame interval, not the stopped gap. Stop is
// idempotent and cannot fail.
func (e *Engine) Stop() {
	e.mu.Lock()
	w := e.worker
	if w == nil {
		e.mu.Unlock()
		return
	}
	e.worker = nil
	e.stopping = true
	e.mu.Unlock()

	w.signalStop()
	select {
	case <-w.done:
	case <-time.After(stopGrace):
		e.logger.Debug("worker missed the stop grace period, proceeding with teardown")
	}

	e.mu.Lock()
	e.stopping = false
	e.mu.Unlock()
}

// Close stops the worker and retires the engine; SetActive afterwards is
// a no-op. Returns within the stop grace bound regardless of worker state.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.mu.Unlock()
	e.Stop()
}

// requestRepaint asks the host to paint, coalescing requests so at most
// one is outstanding until the presenter runs.
func (e *Engine) requestRepaint() {
	if e.repaintPending.CompareAndSwap(false, true) {
		e.host.Invalidate()
	}
}

// frameInterval converts a target FPS to a sleep interval in whole
// milliseconds; non-positive targets select the default.
func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		return DefaultFrameInterval
	}
	ms := math.Round(1000.0 / float64(fps))
	return time.Duration(ms) * time.Millisecond
}
