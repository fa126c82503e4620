package editor

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taigrr/bedeck/pkg/geom"
	"github.com/taigrr/bedeck/pkg/math3d"
)

func modelState() State {
	return State{Preview: Preview{Decorator: Decorator{Scale: math3d.Splat(0.1)}}}
}

func repeat(s State, in Input, n int) State {
	for range n {
		s = Advance(s, in, DefaultPalette(), DefaultTunables(), 0)
	}
	return s
}

func TestAdvanceScaleFloor(t *testing.T) {
	tests := []struct {
		name  string
		start float64
	}{
		{"at floor", 0.1},
		{"above floor", 0.5},
		{"just above floor", 0.103},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := modelState()
			s.Preview.Scale = math3d.Splat(tt.start)
			s = repeat(s, Input{Shrink: true}, 500)
			assert.InDelta(t, 0.1, s.Preview.Scale.X, 1e-12)
			assert.GreaterOrEqual(t, s.Preview.Scale.X, 0.1)
			assert.Equal(t, s.Preview.Scale.X, s.Preview.Scale.Z)
		})
	}
}

func TestAdvanceGrowWinsOverShrink(t *testing.T) {
	s := repeat(modelState(), Input{Grow: true, Shrink: true}, 10)
	assert.InDelta(t, 0.15, s.Preview.Scale.Y, 1e-9)
}

func TestAdvanceColorClamp(t *testing.T) {
	s := repeat(modelState(), Input{Lighten: true}, 100)
	assert.Equal(t, math3d.V3(1, 1, 1), s.Preview.Color)

	s = repeat(s, Input{RaiseRed: true}, 10)
	assert.Equal(t, 1.0, s.Preview.Color.X)

	s = repeat(s, Input{Darken: true}, 100)
	assert.Equal(t, math3d.V3(0, 0, 0), s.Preview.Color)

	s = repeat(s, Input{LowerBlue: true}, 10)
	assert.Equal(t, 0.0, s.Preview.Color.Z)
}

func TestAdvanceChannelPriority(t *testing.T) {
	s := Advance(modelState(), Input{RaiseRed: true, RaiseGreen: true, RaiseBlue: true}, DefaultPalette(), DefaultTunables(), 0)
	assert.InDelta(t, 0.02, s.Preview.Color.X, 1e-12)
	assert.Zero(t, s.Preview.Color.Y)
	assert.Zero(t, s.Preview.Color.Z)

	s = Advance(s, Input{Lighten: true, Darken: true}, DefaultPalette(), DefaultTunables(), 0)
	assert.InDelta(t, 0.04, s.Preview.Color.X, 1e-12)
	assert.InDelta(t, 0.02, s.Preview.Color.Y, 1e-12)
}

func TestAdvanceYawOnlyForModels(t *testing.T) {
	palette := Palette{{Name: "horn", Kind: KindModel, Mesh: "cone"}, CubeEntry()}
	tun := DefaultTunables()

	s := modelState()
	s = Advance(s, Input{YawLeft: true}, palette, tun, 0)
	s = Advance(s, Input{YawLeft: true}, palette, tun, 0)
	assert.InDelta(t, 0.04, s.Preview.Rotation.Y, 1e-12)

	s = Advance(s, Input{YawRight: true}, palette, tun, 0)
	assert.InDelta(t, 0.02, s.Preview.Rotation.Y, 1e-12)

	s.PaletteIndex = 1
	s = Advance(s, Input{YawLeft: true}, palette, tun, 0)
	assert.Equal(t, math3d.Vec3{}, s.Preview.Rotation)
}

func TestAdvanceScalesWithFrameTime(t *testing.T) {
	tun := DefaultTunables()
	s := Advance(modelState(), Input{Grow: true}, DefaultPalette(), tun, 2*tun.Frame)
	assert.InDelta(t, 0.11, s.Preview.Scale.X, 1e-9)

	s = Advance(modelState(), Input{Grow: true}, DefaultPalette(), tun, tun.Frame/2)
	assert.InDelta(t, 0.1025, s.Preview.Scale.X, 1e-9)

	tun.Frame = 0
	s = Advance(modelState(), Input{Grow: true}, DefaultPalette(), tun, time.Second)
	assert.InDelta(t, 0.105, s.Preview.Scale.X, 1e-9)
}

func TestDefaultPaletteOrder(t *testing.T) {
	var names []string
	for _, e := range DefaultPalette() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"eye", "horn", "nose", "duck", "mouth", "cube"}, names)
}

func TestCyclePaletteWraps(t *testing.T) {
	palette := DefaultPalette()
	s := State{PaletteIndex: len(palette) - 1}

	s = CyclePalette(s, palette)
	assert.Equal(t, 0, s.PaletteIndex)
	assert.Equal(t, palette[0].Mesh, s.Preview.Mesh)

	s = CyclePalette(s, palette)
	assert.Equal(t, 1, s.PaletteIndex)
}

func TestCyclePaletteToPrimitiveClearsRotation(t *testing.T) {
	palette := Palette{{Name: "eye", Kind: KindModel, Mesh: "sphere"}, CubeEntry()}
	s := State{}
	s.Preview.Rotation = math3d.V3(1, 2, 3)

	s = CyclePalette(s, palette)
	assert.Equal(t, KindPrimitive, s.Preview.Kind)
	assert.Equal(t, math3d.Vec3{}, s.Preview.Rotation)
}

func TestApplyHit(t *testing.T) {
	model := PaletteEntry{Name: "eye", Kind: KindModel, Mesh: "sphere", Texture: "eye"}

	tests := []struct {
		name    string
		entry   PaletteEntry
		normal  math3d.Vec3
		wantRot math3d.Vec3
	}{
		{"model on top", model, math3d.V3(0, 1, 0), math3d.V3(0, 0.3, 0)},
		{"model underneath", model, math3d.V3(0, -1, 0), math3d.V3(0, 0.3, math.Pi)},
		{"model on front", model, math3d.V3(0, 0, 1), math3d.V3(0, 0.3, math.Pi/2)},
		{"cube ignores normal", CubeEntry(), math3d.V3(0, 0, 1), math3d.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Preview{}
			p.Rotation.Y = 0.3
			hit := geom.Hit{Hit: true, Point: math3d.V3(0, 0.5, 0), T: 4, Normal: tt.normal}

			got := ApplyHit(p, hit, tt.entry)
			assert.True(t, got.Visible)
			assert.Equal(t, hit.Point, got.Position)
			assert.Equal(t, tt.normal, got.Normal)
			assert.True(t, got.Rotation.ApproxEqual(tt.wantRot, 1e-12), "rotation = %v", got.Rotation)
			assert.Equal(t, tt.entry.Mesh, got.Mesh)
		})
	}
}

func TestApplyHitMissHidesPreview(t *testing.T) {
	p := Preview{Visible: true}
	p.Position = math3d.V3(1, 2, 3)

	got := ApplyHit(p, geom.Miss(), CubeEntry())
	assert.False(t, got.Visible)
	assert.Equal(t, math3d.V3(1, 2, 3), got.Position)
}

func TestPreviewSnapshot(t *testing.T) {
	p := Preview{Visible: true}
	p.Position = math3d.V3(0, 0.5, 0)
	p.Scale = math3d.Splat(0.2)

	d, ok := p.Snapshot()
	assert.True(t, ok)
	assert.True(t, d.Bounds.Min.ApproxEqual(math3d.V3(-0.1, 0.4, -0.1), 1e-12))
	assert.True(t, d.Bounds.Max.ApproxEqual(math3d.V3(0.1, 0.6, 0.1), 1e-12))

	p.Visible = false
	_, ok = p.Snapshot()
	assert.False(t, ok)
}
