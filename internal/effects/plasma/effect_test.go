package plasma

import (
	"image"
	"testing"

	"github.com/LaMitaOne/glint/internal/canvas"
)

func renderAt(e *Effect, elapsed float64) *image.RGBA {
	dst := canvas.NewSurface(24, 16)
	e.Render(dst, image.Rect(0, 0, 24, 16), elapsed)
	return dst.Snapshot()
}

func TestRenderDeterminism(t *testing.T) {
	// Same elapsed time, same pixels — across instances and regardless
	// of how often Update ran.
	e1 := New()
	e2 := New()
	for i := 0; i < 50; i++ {
		e2.Update(0.016)
	}

	img1 := renderAt(e1, 1.25)
	img2 := renderAt(e2, 1.25)

	for i := range img1.Pix {
		if img1.Pix[i] != img2.Pix[i] {
			t.Fatalf("pixel data differs at byte %d: %d vs %d", i, img1.Pix[i], img2.Pix[i])
		}
	}
}

func TestRenderAnimatesOverTime(t *testing.T) {
	e := New()

	img1 := renderAt(e, 0.0)
	img2 := renderAt(e, 2.0)

	same := true
	for i := range img1.Pix {
		if img1.Pix[i] != img2.Pix[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("field identical at elapsed 0 and 2; plasma is not animating")
	}
}

func TestRenderCoversArea(t *testing.T) {
	e := New()

	dst := canvas.NewSurface(24, 16)
	e.Render(dst, image.Rect(0, 0, 24, 16), 0.7)
	img := dst.Image()

	// Every pixel is opaque palette output.
	for y := 0; y < 16; y++ {
		for x := 0; x < 24; x++ {
			if img.RGBAAt(x, y).A != 255 {
				t.Fatalf("pixel (%d,%d) not written", x, y)
			}
		}
	}
}

func TestSnapshotSharesEffect(t *testing.T) {
	e := New()

	snap := e.Snapshot()
	if snap != e {
		t.Error("Snapshot() should return the effect itself; it is immutable")
	}

	// Snapshot drawing matches worker-side rendering exactly.
	a := canvas.NewSurface(16, 12)
	b := canvas.NewSurface(16, 12)
	e.Render(a, image.Rect(0, 0, 16, 12), 0.5)
	snap.Draw(b, image.Rect(0, 0, 16, 12), 0.5)

	pa, pb := a.Snapshot(), b.Snapshot()
	for i := range pa.Pix {
		if pa.Pix[i] != pb.Pix[i] {
			t.Fatalf("Draw and Render disagree at byte %d", i)
		}
	}
}
