package canvas

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Lerp blends between two colors in RGB space. t is clamped to [0, 1].
func Lerp(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	blended := toColorful(a).BlendRgb(toColorful(b), t)
	return fromColorful(blended)
}

// HSV converts hue (degrees), saturation and value in [0, 1] to RGBA.
func HSV(h, s, v float64) color.RGBA {
	return fromColorful(colorful.Hsv(h, s, v))
}

// ParseHex parses a "#rrggbb" color string.
func ParseHex(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("canvas: parse color %q: %w", s, err)
	}
	return fromColorful(c), nil
}

func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func fromColorful(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
