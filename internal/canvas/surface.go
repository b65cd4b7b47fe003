// Package canvas provides the offscreen pixel surface the render engine
// draws into, plus scaled blitting and color helpers. It decouples effect
// rendering from the terminal, letting effects draw in plain RGBA while
// the platform decides how pixels reach the screen.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
)

// Surface is an offscreen RGBA render target. A surface is produced for a
// single frame, drawn into, then finalized with Snapshot; after Snapshot
// all drawing operations become silent no-ops.
type Surface struct {
	img *image.RGBA
}

// NewSurface creates a surface with the given pixel dimensions. It returns
// nil when either dimension is not positive; callers treat a nil surface
// as "skip this frame".
func NewSurface(width, height int) *Surface {
	if width <= 0 || height <= 0 {
		return nil
	}
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Size returns the surface dimensions in pixels.
func (s *Surface) Size() (int, int) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Area returns the full surface rectangle, anchored at the origin.
func (s *Surface) Area() image.Rectangle {
	if s.img == nil {
		return image.Rectangle{}
	}
	return s.img.Bounds()
}

// Set writes one pixel. Writes outside the surface, or after Snapshot,
// are ignored.
func (s *Surface) Set(x, y int, c color.Color) {
	if s.img == nil || !image.Pt(x, y).In(s.img.Bounds()) {
		return
	}
	s.img.Set(x, y, c)
}

// SetRGBA writes one pixel without color model conversion.
func (s *Surface) SetRGBA(x, y int, c color.RGBA) {
	if s.img == nil || !image.Pt(x, y).In(s.img.Bounds()) {
		return
	}
	s.img.SetRGBA(x, y, c)
}

// Fill paints the entire surface with a single color.
func (s *Surface) Fill(c color.Color) {
	if s.img == nil {
		return
	}
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillRect paints the intersection of r with the surface.
func (s *Surface) FillRect(r image.Rectangle, c color.Color) {
	if s.img == nil {
		return
	}
	r = r.Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// StrokeRect draws a one-pixel outline of r, clipped to the surface.
func (s *Surface) StrokeRect(r image.Rectangle, c color.Color) {
	if s.img == nil || r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		s.Set(x, r.Min.Y, c)
		s.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		s.Set(r.Min.X, y, c)
		s.Set(r.Max.X-1, y, c)
	}
}

// Image exposes the current pixels. The returned image is still owned by
// the surface; use Snapshot to detach it.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Snapshot finalizes the surface and returns its pixels as an immutable
// image. The surface is detached afterwards: further draws do nothing and
// cannot mutate the returned image.
func (s *Surface) Snapshot() *image.RGBA {
	img := s.img
	s.img = nil
	return img
}
