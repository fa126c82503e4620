package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/bedeck/pkg/config"
)

const (
	mouseOn  = "\x1b[?1003h\x1b[?1006h" // any-event tracking, SGR encoding
	mouseOff = "\x1b[?1003l\x1b[?1006l"
)

// maxFrameStep caps dt after a stall so held controls do not jump.
const maxFrameStep = 100 * time.Millisecond

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	assets := loadAssets(cfg, logger)
	s, err := newSession(cfg, assets, logger, time.Now())
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	if err := term.Resize(width, height); err != nil {
		logger.Warn("resize failed", "err", err)
	}
	_, _ = term.WriteString(mouseOn)
	s.resize(width, height)

	defer func() {
		_, _ = term.WriteString(mouseOff)
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			logger.Warn("terminal shutdown", "err", err)
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Display.FPS))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-term.Events():
			if size, ok := ev.(uv.WindowSizeEvent); ok {
				term.Erase()
				if err := term.Resize(size.Width, size.Height); err != nil {
					logger.Warn("resize failed", "err", err)
				}
			}
			if s.handle(ev, time.Now()) {
				return nil
			}

		case now := <-ticker.C:
			dt := min(now.Sub(last), maxFrameStep)
			last = now
			s.tick(dt, now)
			s.draw(term, term.Bounds())
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
