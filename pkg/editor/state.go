package editor

import (
	"time"

	"github.com/taigrr/bedeck/pkg/geom"
	"github.com/taigrr/bedeck/pkg/math3d"
	"github.com/taigrr/bedeck/pkg/picking"
)

// Input is the set of held controls sampled once per frame.
type Input struct {
	Grow       bool
	Shrink     bool
	YawLeft    bool
	YawRight   bool
	RaiseRed   bool
	RaiseGreen bool
	RaiseBlue  bool
	LowerRed   bool
	LowerGreen bool
	LowerBlue  bool
	Lighten    bool
	Darken     bool
}

// Tunables are the per-frame steps of the held controls.
type Tunables struct {
	ScaleStep float64
	MinScale  float64
	YawStep   float64
	ColorStep float64
	// Frame is the frame length the steps are expressed in. Advance scales
	// each step by dt/Frame; zero applies each step once per call.
	Frame time.Duration
}

// DefaultTunables returns the stock step sizes at 60 frames per second.
func DefaultTunables() Tunables {
	return Tunables{
		ScaleStep: 0.005,
		MinScale:  0.1,
		YawStep:   0.02,
		ColorStep: 0.02,
		Frame:     time.Second / 60,
	}
}

// Preview is the decoration that a commit would place right now.
type Preview struct {
	Decorator
	Visible bool
	Normal  math3d.Vec3
}

// State is everything the per-frame update reads and writes.
type State struct {
	Preview      Preview
	PaletteIndex int
	Camera       Orbit
}

// Entry returns the active palette entry.
func (s State) Entry(p Palette) PaletteEntry {
	return p.At(s.PaletteIndex)
}

// Advance applies one frame of held controls to s and returns the result.
// It does not touch anything outside its arguments.
func Advance(s State, in Input, palette Palette, tun Tunables, dt time.Duration) State {
	s.Preview = syncEntry(s.Preview, s.Entry(palette))
	p := &s.Preview

	k := 1.0
	if tun.Frame > 0 && dt > 0 {
		k = float64(dt) / float64(tun.Frame)
	}

	if in.Grow {
		p.Scale = p.Scale.AddScalar(tun.ScaleStep * k)
	} else if in.Shrink && p.Scale.X >= tun.MinScale {
		p.Scale = p.Scale.AddScalar(-tun.ScaleStep * k).Max(math3d.Splat(tun.MinScale))
	}

	if p.IsModel() {
		if in.YawLeft {
			p.Rotation.Y += tun.YawStep * k
		} else if in.YawRight {
			p.Rotation.Y -= tun.YawStep * k
		}
	}

	step := tun.ColorStep * k
	switch {
	case in.RaiseRed:
		p.Color.X += step
	case in.RaiseGreen:
		p.Color.Y += step
	case in.RaiseBlue:
		p.Color.Z += step
	}
	switch {
	case in.LowerRed:
		p.Color.X -= step
	case in.LowerGreen:
		p.Color.Y -= step
	case in.LowerBlue:
		p.Color.Z -= step
	}
	if in.Lighten {
		p.Color = p.Color.AddScalar(step)
	} else if in.Darken {
		p.Color = p.Color.AddScalar(-step)
	}
	p.Color = p.Color.Clamp(0, 1)

	return s
}

// CyclePalette selects the next palette entry, wrapping after the last.
func CyclePalette(s State, palette Palette) State {
	s.PaletteIndex = palette.Next(s.PaletteIndex)
	s.Preview = syncEntry(s.Preview, s.Entry(palette))
	return s
}

// ApplyHit moves the preview to hit. A miss only hides the preview. Models
// are stood up along the hit normal; primitives are never rotated.
func ApplyHit(p Preview, hit geom.Hit, entry PaletteEntry) Preview {
	p = syncEntry(p, entry)
	p.Visible = hit.Hit
	if !hit.Hit {
		return p
	}
	p.Position = hit.Point
	p.Normal = hit.Normal
	if entry.IsModel() {
		p.Rotation.Z, p.Rotation.X = picking.RotationFromNormal(hit.Normal)
	}
	return p
}

// Snapshot returns the decorator a commit would store, with its picking
// box set to position ± scale/2. ok is false while the preview is hidden.
func (p Preview) Snapshot() (d Decorator, ok bool) {
	if !p.Visible {
		return Decorator{}, false
	}
	d = p.Decorator
	d.Bounds = geom.BoxAround(d.Position, d.Scale)
	return d, true
}

func syncEntry(p Preview, e PaletteEntry) Preview {
	p.Kind = e.Kind
	p.Mesh = e.Mesh
	p.Texture = e.Texture
	if !e.IsModel() {
		p.Rotation = math3d.Vec3{}
	}
	return p
}
