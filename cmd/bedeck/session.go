package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/bedeck/pkg/config"
	"github.com/taigrr/bedeck/pkg/editor"
	"github.com/taigrr/bedeck/pkg/render"
)

// session ties the editor and the pipeline to terminal events. It does not
// touch the terminal itself, so it runs on any uv.Screen.
type session struct {
	ed     *editor.Editor
	pipe   *render.Pipeline
	hud    *HUD
	holds  *holdTracker
	logger *slog.Logger

	screenshots string
	showHUD     bool
	notice      string
	cols, rows  int
}

func newSession(cfg config.Config, assets *render.Assets, logger *slog.Logger, now time.Time) (*session, error) {
	opts, err := cfg.EditorOptions()
	if err != nil {
		return nil, err
	}
	ed, err := editor.New(opts, logger)
	if err != nil {
		return nil, fmt.Errorf("create editor: %w", err)
	}
	bg, err := cfg.Display.BackgroundColor()
	if err != nil {
		return nil, err
	}

	pipe := render.NewPipeline(1, 1, assets)
	pipe.Background = bg
	pipe.LightDir = cfg.Display.LightDir()

	return &session{
		ed:          ed,
		pipe:        pipe,
		hud:         NewHUD(now),
		holds:       newHoldTracker(cfg.Display.HoldTimeout),
		logger:      logger,
		screenshots: cfg.Display.Screenshots,
		showHUD:     true,
	}, nil
}

// resize fits the framebuffer to a terminal of cols by rows cells.
func (s *session) resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	s.cols, s.rows = cols, rows
	s.pipe.Resize(cols, rows*2)
	s.ed.Resize(float64(cols), float64(rows*2))
	s.logger.Debug("resized", "cols", cols, "rows", rows)
}

// handle applies one terminal event. It reports whether the user asked to quit.
func (s *session) handle(ev uv.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		s.resize(ev.Width, ev.Height)

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("esc", "ctrl+c"):
			return true
		case ev.MatchString("?"):
			s.showHUD = !s.showHUD
			return false
		case ev.MatchString("p"):
			s.screenshot(now)
			return false
		}
		name := keyName(uv.Key(ev))
		if ev.IsRepeat {
			s.holds.press(name, now)
			return false
		}
		if s.ed.KeyDown(name) {
			s.holds.press(name, now)
		}

	case uv.KeyReleaseEvent:
		name := keyName(uv.Key(ev))
		s.holds.release(name)
		s.ed.KeyUp(name)

	case uv.MouseMotionEvent:
		s.ed.PointerMove(cellToPixel(ev.X, ev.Y))

	case uv.MouseClickEvent:
		s.ed.PointerMove(cellToPixel(ev.X, ev.Y))
		if b, ok := pointerButton(ev.Button); ok {
			s.ed.PointerDown(b)
		}

	case uv.MouseReleaseEvent:
		if b, ok := pointerButton(ev.Button); ok {
			s.ed.PointerUp(b)
		}

	case uv.MouseWheelEvent:
		dx, dy := wheelDelta(ev.Button)
		s.ed.Scroll(dx, dy, ev.Mod.Contains(uv.ModCtrl))

	case uv.BlurEvent:
		s.holds.reset()
		s.ed.ReleaseAll()
	}
	return false
}

// tick releases keys that stopped repeating and advances the editor by dt.
func (s *session) tick(dt time.Duration, now time.Time) {
	for _, key := range s.holds.expired(now) {
		s.ed.KeyUp(key)
	}
	s.ed.Tick(dt)
	s.hud.UpdateFPS(now)
}

// draw renders the scene into area of scr.
func (s *session) draw(scr uv.Screen, area uv.Rectangle) {
	proj, view := s.ed.Matrices()
	s.pipe.Begin(render.Camera{View: view, Projection: proj})
	s.ed.Draw(s.pipe)
	s.pipe.Framebuffer().Draw(scr, area)
	if s.showHUD {
		s.hud.Draw(scr, area, s.ed, s.notice)
	}
}

func (s *session) screenshot(now time.Time) {
	path := filepath.Join(s.screenshots, "bedeck-"+now.Format("20060102-150405.000")+".png")
	if err := s.pipe.Screenshot(path); err != nil {
		s.logger.Error("screenshot failed", "path", path, "err", err)
		s.notice = "screenshot failed"
		return
	}
	s.logger.Info("screenshot saved", "path", path)
	s.notice = "saved " + filepath.Base(path)
}
