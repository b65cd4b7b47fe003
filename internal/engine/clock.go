package engine

import "time"

// maxTickDelta caps the logic delta of a single iteration so a clock
// anomaly or a long scheduler stall cannot inject a huge time step.
const maxTickDelta = time.Second

// Clock supplies the worker loop's notion of time. The production clock
// reads the system clock (whose time.Time values carry a monotonic
// reading); tests inject a fake.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// elapsedSeconds returns the seconds from prev to now, clamped to
// [0, maxTickDelta] so a step is never negative and never huge.
func elapsedSeconds(now, prev time.Time) float64 {
	d := now.Sub(prev)
	if d < 0 {
		return 0
	}
	if d > maxTickDelta {
		d = maxTickDelta
	}
	return d.Seconds()
}
