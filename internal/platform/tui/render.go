package tui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// halfBlock stacks two pixels into one terminal cell: the glyph's upper
// half takes the foreground color, its lower half the background.
const halfBlock = "▀"

// RenderImage converts an RGBA image to styled terminal rows, one cell
// per 1x2 pixel column. Adjacent cells sharing the same color pair are
// grouped into a single styled run to minimize ANSI escape sequences.
func RenderImage(img *image.RGBA) string {
	if img == nil {
		return ""
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return ""
	}

	rows := (h + 1) / 2

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(w*rows*24 + rows)

	for row := 0; row < rows; row++ {
		if row > 0 {
			sb.WriteRune('\n')
		}

		topY := b.Min.Y + row*2
		bottomY := topY + 1

		// Group consecutive cells with the same color pair
		x := 0
		for x < w {
			fg := hexAt(img, b.Min.X+x, topY)
			bg := hexAt(img, b.Min.X+x, bottomY)

			run := 1
			for x+run < w {
				if hexAt(img, b.Min.X+x+run, topY) != fg || hexAt(img, b.Min.X+x+run, bottomY) != bg {
					break
				}
				run++
			}

			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(fg)).
				Background(lipgloss.Color(bg))
			sb.WriteString(style.Render(strings.Repeat(halfBlock, run)))

			x += run
		}
	}

	return sb.String()
}

// hexAt reads a pixel as a "#rrggbb" string. Rows past the bottom edge
// (odd image heights) read as black.
func hexAt(img *image.RGBA, x, y int) string {
	if y >= img.Bounds().Max.Y {
		return "#000000"
	}
	c := img.RGBAAt(x, y)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
