package engine

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/LaMitaOne/glint/internal/canvas"
)

// paintState is a snapshot that draws one solid color. In direct mode the
// engine hands it from the worker to the presenting goroutine.
type paintState struct {
	fill color.RGBA
}

func (s paintState) Draw(dst *canvas.Surface, area image.Rectangle, elapsed float64) {
	dst.FillRect(area, s.fill)
}

// paintEffect is a snapshot-capable effect rendering a fixed color.
type paintEffect struct {
	fill color.RGBA
}

func (e *paintEffect) Update(dt float64) {}

func (e *paintEffect) Render(dst *canvas.Surface, area image.Rectangle, elapsed float64) {
	dst.FillRect(area, e.fill)
}

func (e *paintEffect) Snapshot() Snapshot {
	return paintState{fill: e.fill}
}

func TestPresentClearColorBeforeFirstFrame(t *testing.T) {
	clear := color.RGBA{R: 20, G: 30, B: 40, A: 255}
	host := newTestHost(8, 8)
	eng := New(host, &paintEffect{fill: color.RGBA{R: 200, A: 255}}, Options{ClearColor: clear})
	defer eng.Close()

	dst := canvas.NewSurface(8, 8)
	eng.Present(dst)

	img := dst.Snapshot()
	if got := img.RGBAAt(3, 3); got != clear {
		t.Errorf("pixel before first frame = %v, expected clear color %v", got, clear)
	}
	if got := img.RGBAAt(0, 7); got != clear {
		t.Errorf("corner before first frame = %v, expected clear color %v", got, clear)
	}
}

func TestPresentBlitsBufferedFrame(t *testing.T) {
	fill := color.RGBA{R: 50, G: 150, B: 250, A: 255}
	host := newTestHost(8, 8)
	eng := New(host, &paintEffect{fill: fill}, Options{TargetFPS: 120})
	defer eng.Close()

	eng.SetActive(true)
	if !waitFor(time.Second, func() bool { _, ok := eng.Latest(); return ok }) {
		t.Fatal("no frame to present")
	}

	// The 8x8 frame is scaled up to the 16x16 destination on the way in.
	dst := canvas.NewSurface(16, 16)
	eng.Present(dst)

	img := dst.Snapshot()
	if got := img.RGBAAt(8, 8); got != fill {
		t.Errorf("presented pixel = %v, expected %v", got, fill)
	}
	if got := img.RGBAAt(1, 1); got != fill {
		t.Errorf("presented corner = %v, expected %v", got, fill)
	}
}

func TestPresentDirectModeDrawsSnapshot(t *testing.T) {
	fill := color.RGBA{R: 240, G: 10, B: 60, A: 255}
	host := newTestHost(8, 8)
	eng := New(host, &paintEffect{fill: fill}, Options{Mode: ModeDirect, TargetFPS: 120})
	defer eng.Close()

	if eng.Mode() != ModeDirect {
		t.Fatalf("Mode() = %v, expected direct for a snapshot-capable effect", eng.Mode())
	}

	eng.SetActive(true)
	if !waitFor(time.Second, func() bool { _, ok := eng.Latest(); return ok }) {
		t.Fatal("no snapshot published")
	}

	f, _ := eng.Latest()
	if f.Image != nil {
		t.Error("direct-mode frame carries a rendered image")
	}
	if f.State == nil {
		t.Fatal("direct-mode frame carries no snapshot")
	}

	// Direct mode draws at destination resolution, whatever it is.
	dst := canvas.NewSurface(10, 6)
	eng.Present(dst)

	img := dst.Snapshot()
	if got := img.RGBAAt(5, 3); got != fill {
		t.Errorf("direct present pixel = %v, expected %v", got, fill)
	}
}

func TestPresentNilDestination(t *testing.T) {
	host := newTestHost(8, 8)
	eng := New(host, &paintEffect{fill: color.RGBA{A: 255}}, Options{})
	defer eng.Close()

	// Must not panic; a nil destination still acknowledges the repaint.
	eng.Present(nil)
}
