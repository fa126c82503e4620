package config

import (
	"fmt"
	"image/color"
	"math"
	"slices"
	"time"

	"github.com/taigrr/bedeck/pkg/editor"
	"github.com/taigrr/bedeck/pkg/geom"
	"github.com/taigrr/bedeck/pkg/math3d"
	"github.com/taigrr/bedeck/pkg/models"
	"github.com/taigrr/bedeck/pkg/render"
)

// EditorPalette converts the palette entries.
func (c Config) EditorPalette() editor.Palette {
	p := make(editor.Palette, 0, len(c.Palette))
	for _, e := range c.Palette {
		kind := editor.KindModel
		if e.Mesh == models.PrimitiveCube {
			kind = editor.KindPrimitive
		}
		p = append(p, editor.PaletteEntry{
			Name:    e.Name,
			Kind:    kind,
			Mesh:    e.Mesh,
			Texture: e.Texture,
		})
	}
	return p
}

// Bindings returns the default key map with Keys applied over it.
func (c Config) Bindings() (editor.Bindings, error) {
	b := editor.DefaultBindings()
	for key, name := range c.Keys {
		if name == Unbind {
			delete(b, key)
			continue
		}
		a, err := editor.ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("%w: keys.%s: %v", ErrInvalid, key, err)
		}
		b[key] = a
	}
	return b, nil
}

// Shaders returns the shader cycle starting at the configured shader.
func (c Config) Shaders() []string {
	all := render.Shaders()
	i := slices.Index(all, c.Display.Shader)
	if i < 0 {
		return all
	}
	return append(all[i:], all[:i]...)
}

// EditorOptions converts c into the options of an Editor.
func (c Config) EditorOptions() (editor.Options, error) {
	if err := c.Validate(); err != nil {
		return editor.Options{}, err
	}
	bindings, err := c.Bindings()
	if err != nil {
		return editor.Options{}, err
	}
	canvasColor, err := ParseColor(c.Canvas.Color)
	if err != nil {
		return editor.Options{}, err
	}
	previewColor, err := ParseColor(c.Preview.Color)
	if err != nil {
		return editor.Options{}, err
	}

	orbit := editor.NewOrbit(c.Camera.Radius)
	orbit.Gain = c.Camera.Gain
	orbit.ZoomGain = c.Camera.ZoomGain
	if c.Camera.Clamp {
		limits := editor.DefaultOrbitLimits()
		limits.MinRadius = c.Camera.MinRadius
		orbit.Limits = &limits
	}

	opts := editor.Options{
		Palette:  c.EditorPalette(),
		Bindings: bindings,
		Tunables: editor.Tunables{
			ScaleStep: c.Steps.Scale,
			MinScale:  c.Steps.MinScale,
			YawStep:   c.Steps.Yaw,
			ColorStep: c.Steps.Color,
			Frame:     time.Second / 60,
		},
		Lens: editor.Lens{
			FOV:  c.Camera.FOV * math.Pi / 180,
			Near: c.Camera.Near,
			Far:  c.Camera.Far,
		},
		Camera: orbit,
		Canvas: editor.Decorator{
			Kind:     editor.KindPrimitive,
			Mesh:     editor.CubeMesh,
			Position: vec3(c.Canvas.Position),
			Scale:    vec3(c.Canvas.Size),
			Color:    unit(canvasColor),
		},
		Preview: editor.Decorator{
			Scale: math3d.Splat(c.Preview.Scale),
			Color: unit(previewColor),
		},
		PreviewAlpha: c.Preview.Alpha,
		Tolerances: geom.Tolerances{
			Parallel: c.Picking.ParallelEpsilon,
			Front:    c.Picking.FrontTolerance,
		},
		Shaders: c.Shaders(),
	}
	if c.Display.SmoothScroll {
		opts.SmoothFPS = c.Display.FPS
		opts.SmoothFrequency = c.Display.SmoothFrequency
	}
	return opts, nil
}

// LightDir returns the display light direction.
func (d Display) LightDir() math3d.Vec3 {
	return vec3(d.Light)
}

func vec3(a [3]float64) math3d.Vec3 {
	return math3d.V3(a[0], a[1], a[2])
}

func unit(c color.RGBA) math3d.Vec3 {
	return math3d.V3(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}
