package starfield

import (
	"image"
	"testing"

	"github.com/LaMitaOne/glint/internal/canvas"
	"github.com/LaMitaOne/glint/internal/config"
	"github.com/LaMitaOne/glint/internal/engine"
)

func TestSeedDeterminism(t *testing.T) {
	SetConfig(config.StarfieldConfig{Stars: 64, Speed: 1.0, Seed: 42})
	defer SetConfig(config.Default().Effects.Starfield)

	e1 := New()
	e2 := New()

	for i := 0; i < 400; i++ {
		e1.Update(1.0 / 60.0)
		e2.Update(1.0 / 60.0)
	}

	for i := range e1.stars {
		if e1.stars[i] != e2.stars[i] {
			t.Fatalf("star %d differs: %+v vs %+v", i, e1.stars[i], e2.stars[i])
		}
	}
}

func TestStarsRespawnInsideVolume(t *testing.T) {
	SetConfig(config.StarfieldConfig{Stars: 64, Speed: 2.0, Seed: 7})
	defer SetConfig(config.Default().Effects.Starfield)

	e := New()

	// Long enough for every star to cross the near plane several times.
	for i := 0; i < 600; i++ {
		e.Update(1.0 / 60.0)
	}

	for i, s := range e.stars {
		if s.z <= 0.05 || s.z > 1 {
			t.Errorf("star %d depth %v outside (0.05, 1]", i, s.z)
		}
		if s.x < -1 || s.x > 1 || s.y < -1 || s.y > 1 {
			t.Errorf("star %d lateral position (%v, %v) outside [-1, 1]", i, s.x, s.y)
		}
	}
}

func TestRenderDrawsStars(t *testing.T) {
	SetConfig(config.StarfieldConfig{Stars: 128, Speed: 1.0, Seed: 3})
	defer SetConfig(config.Default().Effects.Starfield)

	e := New()
	e.Update(0.5)

	dst := canvas.NewSurface(40, 30)
	e.Render(dst, image.Rect(0, 0, 40, 30), 0.5)
	img := dst.Image()

	lit := 0
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			c := img.RGBAAt(x, y)
			if c.R > 0 || c.G > 0 || c.B > 0 {
				lit++
			}
		}
	}

	if lit == 0 {
		t.Error("no stars landed on a 40x30 canvas")
	}
}

func TestNoSnapshotSupport(t *testing.T) {
	// The starfield mutates its particles in place, so it must not
	// advertise direct-mode support.
	var e interface{} = New()
	if _, ok := e.(engine.Snapshotter); ok {
		t.Error("starfield should not implement engine.Snapshotter")
	}
}
