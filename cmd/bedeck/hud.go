package main

import (
	"fmt"
	"image/color"
	"time"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/bedeck/pkg/editor"
	"github.com/taigrr/bedeck/pkg/render"
)

const helpText = "wheel orbit · ctrl+wheel zoom · click place · w/s size · a/d turn · rgb/RGB color · i/k light · e palette · x shader · p shot · ? hud · esc quit"

var (
	hudBar    = lipgloss.NewStyle().Background(lipgloss.Color("#000000")).Foreground(lipgloss.Color("#ffffff"))
	hudName   = hudBar.Bold(true).Padding(0, 1)
	hudField  = hudBar.Padding(0, 1)
	hudFPS    = hudBar.Foreground(lipgloss.Color("#5fd787")).Padding(0, 1)
	hudShader = hudBar.Foreground(lipgloss.Color("#5fd7ff")).Padding(0, 1)
	hudNotice = hudBar.Foreground(lipgloss.Color("#ffd75f")).Padding(0, 1)
	hudHelp   = hudBar.Faint(true).Padding(0, 1)
)

// HUD renders a status line with the editor state and a help line.
type HUD struct {
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a HUD whose FPS window starts at now.
func NewHUD(now time.Time) *HUD {
	return &HUD{fpsTime: now}
}

// UpdateFPS counts a frame and refreshes the rate once a second.
func (h *HUD) UpdateFPS(now time.Time) {
	h.fpsFrames++
	elapsed := now.Sub(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

// FPS returns the last measured frame rate.
func (h *HUD) FPS() float64 { return h.fps }

// Status renders the status line for ed.
func (h *HUD) Status(ed *editor.Editor, notice string) string {
	st := ed.State()
	entry := ed.Entry()
	preview := st.Preview
	swatch := render.FromUnit(preview.Color.X, preview.Color.Y, preview.Color.Z)
	cubes, decorations := ed.Scene().Counts()

	visible := "off canvas"
	if preview.Visible {
		visible = fmt.Sprintf("at %.2f,%.2f,%.2f", preview.Position.X, preview.Position.Y, preview.Position.Z)
	}

	parts := []string{
		hudName.Render(fmt.Sprintf("%s %d/%d", entry.Name, st.PaletteIndex+1, len(ed.Palette()))),
		swatchStyle(swatch).Render("  "),
		hudField.Render(fmt.Sprintf("rgb %d,%d,%d", swatch.R, swatch.G, swatch.B)),
		hudField.Render(fmt.Sprintf("scale %.3f", preview.Scale.X)),
		hudField.Render(visible),
		hudShader.Render(ed.Shader()),
		hudField.Render(fmt.Sprintf("%d cubes %d decorations", cubes, decorations)),
		hudField.Render(fmt.Sprintf("az %.2f el %.2f r %.2f", st.Camera.Azimuth, st.Camera.Elevation, st.Camera.Radius)),
		hudFPS.Render(fmt.Sprintf("%.0f FPS", h.fps)),
	}
	if notice != "" {
		parts = append(parts, hudNotice.Render(notice))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// Help renders the controls line.
func (h *HUD) Help() string {
	return hudHelp.Render(helpText)
}

// Draw paints the status line on the top row of area and the help line on
// the bottom row.
func (h *HUD) Draw(scr uv.Screen, area uv.Rectangle, ed *editor.Editor, notice string) {
	if area.Dy() < 1 {
		return
	}
	width := area.Dx()
	uv.NewStyledString(fit(h.Status(ed, notice), width)).Draw(scr, uv.Rect(area.Min.X, area.Min.Y, width, 1))
	if area.Dy() > 1 {
		uv.NewStyledString(fit(h.Help(), width)).Draw(scr, uv.Rect(area.Min.X, area.Max.Y-1, width, 1))
	}
}

func swatchStyle(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Background(c)
}

func fit(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
