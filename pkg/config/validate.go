package config

import (
	"errors"
	"fmt"

	"github.com/taigrr/bedeck/pkg/editor"
	"github.com/taigrr/bedeck/pkg/models"
	"github.com/taigrr/bedeck/pkg/render"
)

// Validate reports every problem in c. The result matches ErrEmptyPalette
// or ErrInvalid with errors.Is.
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if len(c.Palette) == 0 {
		errs = append(errs, ErrEmptyPalette)
	}
	seen := make(map[string]bool, len(c.Palette))
	for i, e := range c.Palette {
		switch {
		case e.Name == "":
			invalid("palette[%d]: name is required", i)
		case seen[e.Name]:
			invalid("palette[%d]: duplicate name %q", i, e.Name)
		}
		seen[e.Name] = true
		if !models.IsPrimitive(e.Mesh) && !models.IsMeshFile(e.Mesh) {
			invalid("palette[%d] %q: mesh %q is neither a primitive nor a .ply, .glb or .gltf file", i, e.Name, e.Mesh)
		}
	}

	for key, name := range c.Keys {
		if name == Unbind {
			continue
		}
		if _, err := editor.ParseAction(name); err != nil {
			invalid("keys.%s: %v", key, err)
		}
	}

	positive := func(field string, v float64) {
		if v <= 0 {
			invalid("%s must be positive, got %v", field, v)
		}
	}
	positive("camera.radius", c.Camera.Radius)
	positive("camera.near", c.Camera.Near)
	positive("camera.gain", c.Camera.Gain)
	positive("camera.zoom_gain", c.Camera.ZoomGain)
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		invalid("camera.fov must be within (0, 180) degrees, got %v", c.Camera.FOV)
	}
	if c.Camera.Far <= c.Camera.Near {
		invalid("camera.far (%v) must exceed camera.near (%v)", c.Camera.Far, c.Camera.Near)
	}
	if c.Camera.Clamp {
		positive("camera.min_radius", c.Camera.MinRadius)
	}

	for i, s := range c.Canvas.Size {
		positive(fmt.Sprintf("canvas.size[%d]", i), s)
	}
	if _, err := ParseColor(c.Canvas.Color); err != nil {
		invalid("canvas.color %q", c.Canvas.Color)
	}

	positive("preview.scale", c.Preview.Scale)
	if c.Preview.Alpha < 0 || c.Preview.Alpha > 1 {
		invalid("preview.alpha must be within [0, 1], got %v", c.Preview.Alpha)
	}
	if _, err := ParseColor(c.Preview.Color); err != nil {
		invalid("preview.color %q", c.Preview.Color)
	}

	positive("steps.scale", c.Steps.Scale)
	positive("steps.min_scale", c.Steps.MinScale)
	positive("steps.yaw", c.Steps.Yaw)
	positive("steps.color", c.Steps.Color)

	if c.Picking.ParallelEpsilon < 0 {
		invalid("picking.parallel_epsilon must not be negative, got %v", c.Picking.ParallelEpsilon)
	}
	if c.Picking.FrontTolerance < 0 {
		invalid("picking.front_tolerance must not be negative, got %v", c.Picking.FrontTolerance)
	}

	if c.Display.FPS <= 0 {
		invalid("display.fps must be positive, got %d", c.Display.FPS)
	}
	if !render.ValidShader(c.Display.Shader) {
		invalid("display.shader %q is not one of %v", c.Display.Shader, render.Shaders())
	}
	if _, err := c.Display.BackgroundColor(); err != nil {
		invalid("display.background %q", c.Display.Background)
	}
	positive("display.mesh_size", c.Display.MeshSize)
	if c.Display.SmoothScroll {
		positive("display.smooth_frequency", c.Display.SmoothFrequency)
	}
	if c.Display.HoldTimeout < 0 {
		invalid("display.hold_timeout must not be negative, got %v", c.Display.HoldTimeout)
	}

	return errors.Join(errs...)
}
