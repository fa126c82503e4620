package main

import (
	"testing"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/assert"

	"github.com/taigrr/bedeck/pkg/editor"
)

func TestKeyName(t *testing.T) {
	tests := []struct {
		name string
		key  uv.Key
		want string
	}{
		{"letter", uv.Key{Code: 'r', Text: "r"}, "r"},
		{"shifted letter", uv.Key{Code: 'r', Mod: uv.ModShift, Text: "R"}, "R"},
		{"shifted release without text", uv.Key{Code: 'r', Mod: uv.ModShift}, "R"},
		{"plain release without text", uv.Key{Code: 'w'}, "w"},
		{"escape", uv.Key{Code: uv.KeyEscape}, "esc"},
		{"space", uv.Key{Code: uv.KeySpace, Text: " "}, "space"},
		{"ctrl letter", uv.Key{Code: 'c', Mod: uv.ModCtrl}, "ctrl+c"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, keyName(tc.key))
		})
	}
}

func TestCellToPixel(t *testing.T) {
	x, y := cellToPixel(0, 0)
	assert.Equal(t, 0.5, x)
	assert.Equal(t, 1.0, y)

	x, y = cellToPixel(10, 5)
	assert.Equal(t, 10.5, x)
	assert.Equal(t, 11.0, y)
}

func TestWheelDelta(t *testing.T) {
	tests := []struct {
		button uv.MouseButton
		dx, dy float64
	}{
		{uv.MouseWheelUp, 0, 1},
		{uv.MouseWheelDown, 0, -1},
		{uv.MouseWheelRight, 1, 0},
		{uv.MouseWheelLeft, -1, 0},
		{uv.MouseLeft, 0, 0},
	}
	for _, tc := range tests {
		dx, dy := wheelDelta(tc.button)
		assert.Equal(t, tc.dx, dx, "button %v", tc.button)
		assert.Equal(t, tc.dy, dy, "button %v", tc.button)
	}
}

func TestPointerButton(t *testing.T) {
	b, ok := pointerButton(uv.MouseLeft)
	assert.True(t, ok)
	assert.Equal(t, editor.ButtonPrimary, b)

	b, ok = pointerButton(uv.MouseRight)
	assert.True(t, ok)
	assert.Equal(t, editor.ButtonSecondary, b)

	_, ok = pointerButton(uv.MouseWheelUp)
	assert.False(t, ok)
}

func TestHoldTracker(t *testing.T) {
	start := time.Unix(1000, 0)
	h := newHoldTracker(400 * time.Millisecond)

	h.press("w", start)
	h.press("r", start)
	assert.Empty(t, h.expired(start.Add(300*time.Millisecond)))

	h.press("w", start.Add(300*time.Millisecond))
	assert.Equal(t, []string{"r"}, h.expired(start.Add(500*time.Millisecond)))
	assert.Empty(t, h.expired(start.Add(600*time.Millisecond)), "expired keys are dropped")

	h.release("w")
	assert.Empty(t, h.expired(start.Add(time.Hour)), "released keys never expire")

	h.press("a", start)
	h.reset()
	assert.Empty(t, h.expired(start.Add(time.Hour)))
}

func TestHoldTrackerZeroTimeout(t *testing.T) {
	h := newHoldTracker(0)
	h.press("w", time.Unix(0, 0))
	assert.Empty(t, h.expired(time.Unix(1e6, 0)))
}
