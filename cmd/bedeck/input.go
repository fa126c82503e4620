package main

import (
	"time"
	"unicode"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/bedeck/pkg/editor"
)

// keyName returns the name bindings use for k: the typed text when there
// is some, so shift+r is "R", otherwise the keystroke.
func keyName(k uv.Key) string {
	if k.Text != "" && k.Text != " " {
		return k.Text
	}
	// Release events often carry no text.
	if k.Mod == uv.ModShift && k.Code >= 'a' && k.Code <= 'z' {
		return string(unicode.ToUpper(k.Code))
	}
	return k.Keystroke()
}

// cellToPixel maps a terminal cell to the framebuffer pixel center under
// it. A cell is one pixel wide and two tall.
func cellToPixel(x, y int) (px, py float64) {
	return float64(x) + 0.5, float64(2*y) + 1
}

func pointerButton(b uv.MouseButton) (editor.Button, bool) {
	switch b {
	case uv.MouseLeft:
		return editor.ButtonPrimary, true
	case uv.MouseRight:
		return editor.ButtonSecondary, true
	case uv.MouseMiddle:
		return editor.ButtonMiddle, true
	}
	return 0, false
}

// wheelDelta returns the scroll delta of one wheel notch. Up and right are
// positive.
func wheelDelta(b uv.MouseButton) (dx, dy float64) {
	switch b {
	case uv.MouseWheelUp:
		return 0, 1
	case uv.MouseWheelDown:
		return 0, -1
	case uv.MouseWheelRight:
		return 1, 0
	case uv.MouseWheelLeft:
		return -1, 0
	}
	return 0, 0
}

// holdTracker releases keys that stopped repeating. Terminals without key
// release reporting only send presses and auto-repeats, so a key whose last
// press is older than the timeout counts as released.
type holdTracker struct {
	timeout time.Duration
	last    map[string]time.Time
}

func newHoldTracker(timeout time.Duration) *holdTracker {
	return &holdTracker{timeout: timeout, last: make(map[string]time.Time)}
}

func (h *holdTracker) press(key string, now time.Time) {
	h.last[key] = now
}

func (h *holdTracker) release(key string) {
	delete(h.last, key)
}

func (h *holdTracker) reset() {
	clear(h.last)
}

// expired removes and returns the keys not pressed within the timeout. A
// zero timeout never expires keys.
func (h *holdTracker) expired(now time.Time) []string {
	if h.timeout <= 0 {
		return nil
	}
	var keys []string
	for key, at := range h.last {
		if now.Sub(at) > h.timeout {
			keys = append(keys, key)
			delete(h.last, key)
		}
	}
	return keys
}
