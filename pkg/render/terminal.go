package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw paints the framebuffer onto area of the screen with upper half
// blocks: each cell shows two framebuffer rows, the top one as foreground
// and the bottom one as background.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1
		if topY >= fb.Height {
			break
		}

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.GetPixel(x, topY)),
					Bg: cellColor(fb.GetPixel(x, botY)),
				},
			})
		}
	}
}

// cellColor maps transparent pixels to the terminal default.
func cellColor(c Color) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// Color is the pixel type of framebuffers and textures.
type Color = color.RGBA

// Named colors.
var (
	ColorBlack   = Color{R: 0, G: 0, B: 0, A: 255}
	ColorWhite   = Color{R: 255, G: 255, B: 255, A: 255}
	ColorMagenta = Color{R: 255, G: 0, B: 255, A: 255}
	ColorSky     = Color{R: 135, G: 206, B: 235, A: 255}
)

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// FromUnit converts a color with channels in [0, 1] to an opaque Color.
func FromUnit(r, g, b float64) Color {
	return RGB(unitByte(r), unitByte(g), unitByte(b))
}

func unitByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
