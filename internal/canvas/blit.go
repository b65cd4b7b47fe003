package canvas

import (
	"image"

	"golang.org/x/image/draw"
)

// Quality selects the sampling filter used when a frame is scaled to a
// destination of a different size.
type Quality int

const (
	// QualityLow is nearest-neighbor sampling.
	QualityLow Quality = iota
	// QualityMedium is approximate bilinear sampling.
	QualityMedium
	// QualityHigh is Catmull-Rom sampling.
	QualityHigh
)

// String returns the config-file name of the quality level.
func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	default:
		return "high"
	}
}

// ParseQuality maps a config-file name to a quality level. Unknown names
// fall back to high, matching the presenter default.
func ParseQuality(name string) Quality {
	switch name {
	case "low":
		return QualityLow
	case "medium":
		return QualityMedium
	default:
		return QualityHigh
	}
}

func (q Quality) scaler() draw.Scaler {
	switch q {
	case QualityLow:
		return draw.NearestNeighbor
	case QualityMedium:
		return draw.ApproxBiLinear
	default:
		return draw.CatmullRom
	}
}

// DrawImage blits src into the destination rectangle r of dst, scaling
// with the given sampling quality. Same-size blits skip the scaler and
// copy directly.
func DrawImage(dst *Surface, r image.Rectangle, src image.Image, q Quality) {
	if dst == nil || dst.img == nil || src == nil {
		return
	}
	r = r.Intersect(dst.img.Bounds())
	if r.Empty() {
		return
	}
	sb := src.Bounds()
	if sb.Dx() == r.Dx() && sb.Dy() == r.Dy() {
		draw.Draw(dst.img, r, src, sb.Min, draw.Src)
		return
	}
	q.scaler().Scale(dst.img, r, src, sb, draw.Src, nil)
}
