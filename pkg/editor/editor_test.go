package editor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/bedeck/pkg/math3d"
)

func newTestEditor(t *testing.T, palette Palette) *Editor {
	t.Helper()
	opts := DefaultOptions()
	if palette != nil {
		opts.Palette = palette
	}
	e, err := New(opts, nil)
	require.NoError(t, err)
	e.Resize(1000, 1000)
	return e
}

func TestNewRejectsEmptyPalette(t *testing.T) {
	opts := DefaultOptions()
	opts.Palette = nil
	_, err := New(opts, nil)
	assert.ErrorIs(t, err, ErrEmptyPalette)

	opts = DefaultOptions()
	opts.Camera.Radius = 0
	_, err = New(opts, nil)
	assert.Error(t, err)
}

func TestDefaultEditorState(t *testing.T) {
	e := newTestEditor(t, nil)

	assert.Equal(t, math3d.V3(0, 0, 5), e.Eye())
	assert.Equal(t, math3d.Splat(0.1), e.State().Preview.Scale)
	assert.Equal(t, math3d.Vec3{}, e.State().Preview.Color)
	assert.False(t, e.State().Preview.Visible)
	assert.Equal(t, "eye", e.Entry().Name)
	assert.Equal(t, math3d.V3(-0.5, -0.5, -0.5), e.Canvas().Bounds.Min)
	assert.Equal(t, math3d.V3(0.5, 0.5, 0.5), e.Canvas().Bounds.Max)
}

func TestPointerMovePicksCanvas(t *testing.T) {
	e := newTestEditor(t, nil)

	e.PointerMove(500, 500)
	p := e.State().Preview
	require.True(t, p.Visible)
	assert.True(t, p.Position.ApproxEqual(math3d.V3(0, 0, 0.5), 1e-9), "position = %v", p.Position)
	assert.Equal(t, math3d.V3(0, 0, 1), p.Normal)

	e.PointerMove(5, 5)
	assert.False(t, e.State().Preview.Visible)
}

func TestCommitRoutesByKind(t *testing.T) {
	e := newTestEditor(t, Palette{CubeEntry(), {Name: "horn", Kind: KindModel, Mesh: "cone"}})
	e.PointerMove(500, 500)

	require.True(t, e.Commit())
	cubes := e.Scene().Cubes()
	require.Len(t, cubes, 1)
	assert.True(t, cubes[0].Bounds.Min.ApproxEqual(math3d.V3(-0.05, -0.05, 0.45), 1e-9))
	assert.True(t, cubes[0].Bounds.Max.ApproxEqual(math3d.V3(0.05, 0.05, 0.55), 1e-9))

	require.True(t, e.KeyDown("e"))
	require.True(t, e.Commit())
	decorations := e.Scene().Decorations()
	require.Len(t, decorations, 1)
	assert.Equal(t, "cone", decorations[0].Mesh)
	assert.Len(t, e.Scene().Cubes(), 1)
}

func TestPlacedCubeTakesPrecedence(t *testing.T) {
	e := newTestEditor(t, Palette{CubeEntry()})
	e.PointerMove(500, 500)
	require.True(t, e.Commit())

	// The new cube sticks out of the canvas front face towards the eye.
	e.PointerMove(500, 500)
	assert.InDelta(t, 0.55, e.State().Preview.Position.Z, 1e-9)
	assert.InDelta(t, 4.45, e.LastHit().T, 1e-9)
}

func TestCommitWithHiddenPreviewIsNoop(t *testing.T) {
	e := newTestEditor(t, Palette{CubeEntry()})
	e.PointerMove(500, 500)
	require.True(t, e.Commit())

	e.PointerMove(0, 0)
	assert.False(t, e.Commit())
	e.PointerDown(ButtonPrimary)

	cubes, decorations := e.Scene().Counts()
	assert.Equal(t, 1, cubes)
	assert.Equal(t, 0, decorations)
}

func TestPointerDownCommitsOnPrimaryOnly(t *testing.T) {
	e := newTestEditor(t, Palette{CubeEntry()})
	e.PointerMove(500, 500)

	e.PointerDown(ButtonSecondary)
	e.PointerUp(ButtonSecondary)
	cubes, _ := e.Scene().Counts()
	assert.Equal(t, 0, cubes)

	e.PointerDown(ButtonPrimary)
	cubes, _ = e.Scene().Counts()
	assert.Equal(t, 1, cubes)
}

func TestHeldKeysDriveTick(t *testing.T) {
	e := newTestEditor(t, nil)
	frame := DefaultTunables().Frame

	assert.True(t, e.KeyDown("w"))
	e.Tick(frame)
	e.Tick(frame)
	assert.InDelta(t, 0.11, e.State().Preview.Scale.X, 1e-9)

	e.KeyUp("w")
	e.Tick(frame)
	assert.InDelta(t, 0.11, e.State().Preview.Scale.X, 1e-9)

	e.KeyDown("i")
	e.KeyDown("w")
	e.ReleaseAll()
	e.Tick(frame)
	assert.Equal(t, Input{}, e.Input())
	assert.Equal(t, math3d.Vec3{}, e.State().Preview.Color)

	assert.False(t, e.KeyDown("q"))
}

func TestCyclePaletteKeyWraps(t *testing.T) {
	e := newTestEditor(t, nil)
	n := len(e.Palette())

	for range n - 1 {
		e.KeyDown("e")
	}
	assert.Equal(t, n-1, e.State().PaletteIndex)
	e.KeyDown("e")
	assert.Equal(t, 0, e.State().PaletteIndex)
}

func TestCycleShader(t *testing.T) {
	opts := DefaultOptions()
	opts.Shaders = []string{"shaded", "flat", "wireframe"}
	e, err := New(opts, nil)
	require.NoError(t, err)

	assert.Equal(t, "shaded", e.Shader())
	e.KeyDown("x")
	assert.Equal(t, "flat", e.Shader())
	e.KeyDown("x")
	e.KeyDown("x")
	assert.Equal(t, "shaded", e.Shader())
}

func TestScrollOrbitsAndRepicks(t *testing.T) {
	e := newTestEditor(t, nil)
	e.PointerMove(500, 500)
	require.True(t, e.State().Preview.Visible)

	// Looking down from above, the centre ray lands on the top face.
	for range 20 {
		e.Scroll(0, 1, false)
	}
	assert.InDelta(t, 1.0, e.State().Camera.Elevation, 1e-9)
	assert.Equal(t, math3d.V3(0, 1, 0), e.State().Preview.Normal)

	e.Scroll(0, -10, true)
	assert.InDelta(t, 4.5, e.State().Camera.Radius, 1e-9)
}

func TestSmoothScrollSettles(t *testing.T) {
	opts := DefaultOptions()
	opts.SmoothFPS = 60
	opts.SmoothFrequency = 8
	e, err := New(opts, nil)
	require.NoError(t, err)

	e.Scroll(0, 10, false)
	assert.Zero(t, e.State().Camera.Elevation)

	for range 600 {
		e.Tick(time.Second / 60)
	}
	assert.InDelta(t, 0.5, e.State().Camera.Elevation, 0.05)
}

func TestActionNames(t *testing.T) {
	for a := ActionGrow; a <= ActionCycleShader; a++ {
		got, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	_, err := ParseAction("jump")
	assert.Error(t, err)
}
