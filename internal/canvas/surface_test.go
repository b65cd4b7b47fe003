package canvas

import (
	"image"
	"image/color"
	"testing"
)

func TestNewSurface(t *testing.T) {
	s := NewSurface(80, 48)
	if s == nil {
		t.Fatal("NewSurface(80, 48) returned nil")
	}

	w, h := s.Size()
	if w != 80 {
		t.Errorf("width = %d, expected 80", w)
	}
	if h != 48 {
		t.Errorf("height = %d, expected 48", h)
	}
}

func TestNewSurfaceRejectsBadSize(t *testing.T) {
	cases := []struct{ w, h int }{
		{0, 10},
		{10, 0},
		{-5, 10},
		{10, -5},
		{0, 0},
	}
	for _, c := range cases {
		if s := NewSurface(c.w, c.h); s != nil {
			t.Errorf("NewSurface(%d, %d) = %v, expected nil", c.w, c.h, s)
		}
	}
}

func TestSurfaceSetGet(t *testing.T) {
	s := NewSurface(10, 10)
	red := color.RGBA{R: 255, A: 255}

	s.SetRGBA(5, 5, red)
	if got := s.Image().RGBAAt(5, 5); got != red {
		t.Errorf("pixel (5,5) = %v, expected %v", got, red)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, red)
	s.Set(100, 0, red)
	s.Set(0, -1, red)
	s.Set(0, 100, red)
	s.SetRGBA(10, 10, red)
}

func TestSurfaceFillRect(t *testing.T) {
	s := NewSurface(10, 10)
	blue := color.RGBA{B: 255, A: 255}

	s.FillRect(image.Rect(2, 2, 5, 5), blue)

	if got := s.Image().RGBAAt(2, 2); got != blue {
		t.Errorf("pixel inside rect = %v, expected %v", got, blue)
	}
	if got := s.Image().RGBAAt(4, 4); got != blue {
		t.Errorf("pixel inside rect = %v, expected %v", got, blue)
	}
	if got := s.Image().RGBAAt(5, 5); got == blue {
		t.Error("pixel at exclusive max corner should not be filled")
	}

	// Rect extending past the surface must clip, not panic
	s.FillRect(image.Rect(8, 8, 20, 20), blue)
	if got := s.Image().RGBAAt(9, 9); got != blue {
		t.Errorf("clipped fill missed pixel (9,9), got %v", got)
	}
}

func TestSurfaceStrokeRect(t *testing.T) {
	s := NewSurface(10, 10)
	green := color.RGBA{G: 255, A: 255}

	s.StrokeRect(image.Rect(1, 1, 6, 6), green)

	if got := s.Image().RGBAAt(1, 1); got != green {
		t.Errorf("corner pixel = %v, expected %v", got, green)
	}
	if got := s.Image().RGBAAt(5, 5); got != green {
		t.Errorf("opposite corner pixel = %v, expected %v", got, green)
	}
	if got := s.Image().RGBAAt(3, 3); got == green {
		t.Error("interior pixel should not be stroked")
	}
}

func TestSurfaceSnapshotDetaches(t *testing.T) {
	s := NewSurface(4, 4)
	white := color.RGBA{255, 255, 255, 255}
	s.Fill(white)

	img := s.Snapshot()
	if img == nil {
		t.Fatal("Snapshot() returned nil")
	}
	if got := img.RGBAAt(0, 0); got != white {
		t.Errorf("snapshot pixel = %v, expected %v", got, white)
	}

	// Draws after Snapshot must not touch the returned image
	s.Fill(color.RGBA{A: 255})
	s.Set(0, 0, color.RGBA{A: 255})
	s.FillRect(image.Rect(0, 0, 4, 4), color.RGBA{A: 255})

	if got := img.RGBAAt(0, 0); got != white {
		t.Errorf("snapshot mutated after detach: pixel = %v, expected %v", got, white)
	}

	if w, h := s.Size(); w != 0 || h != 0 {
		t.Errorf("detached surface size = %dx%d, expected 0x0", w, h)
	}
}
