// Package editor is the placement core: the preview state machine, the
// scene store of placed decorations, the orbit camera, and the event
// handlers that tie them to picking.
//
// All methods of Editor are meant to be called from one goroutine, the
// frame loop. The Scene may be read from any goroutine.
package editor

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/taigrr/bedeck/pkg/geom"
	"github.com/taigrr/bedeck/pkg/math3d"
	"github.com/taigrr/bedeck/pkg/picking"
)

// Button is a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Lens holds the projection parameters shared by picking and rendering.
type Lens struct {
	FOV  float64 // vertical, radians
	Near float64
	Far  float64
}

// DefaultLens is a 60 degree lens clipping at 0.5 and 10.
func DefaultLens() Lens {
	return Lens{FOV: math.Pi / 3, Near: 0.5, Far: 10}
}

// Options configures an Editor.
type Options struct {
	Palette      Palette
	Bindings     Bindings
	Tunables     Tunables
	Lens         Lens
	Camera       Orbit
	Canvas       Decorator
	Preview      Decorator // initial scale and color
	PreviewAlpha float64
	Tolerances   geom.Tolerances
	Shaders      []string

	// Smoothing of scroll input. Zero SmoothFPS applies scrolls directly.
	SmoothFPS       int
	SmoothFrequency float64
}

// DefaultOptions reproduces the stock editor: a white unit canvas at the
// origin, a small black preview, and a camera five units out on +Z.
func DefaultOptions() Options {
	return Options{
		Palette:  DefaultPalette(),
		Bindings: DefaultBindings(),
		Tunables: DefaultTunables(),
		Lens:     DefaultLens(),
		Camera:   NewOrbit(5),
		Canvas: Decorator{
			Kind:  KindPrimitive,
			Mesh:  CubeMesh,
			Scale: math3d.Splat(1),
			Color: math3d.V3(1, 1, 1),
		},
		Preview: Decorator{
			Scale: math3d.Splat(0.1),
		},
		PreviewAlpha: 0.5,
		Tolerances:   geom.DefaultTolerances,
		Shaders:      []string{"shaded"},
	}
}

// Editor owns the preview, the camera and the held-key state, and routes
// input events to them.
type Editor struct {
	palette  Palette
	bindings Bindings
	tunables Tunables
	lens     Lens
	canvas   Decorator
	alpha    float64
	shaders  []string

	picker   *picking.Picker
	scene    *Scene
	smoother *ScrollSmoother
	logger   *slog.Logger

	state    State
	input    Input
	shader   int
	viewport picking.Viewport
	pointer  math3d.Vec2
	tracking bool
	lastHit  geom.Hit
}

// New builds an Editor. A nil logger discards log output.
func New(opts Options, logger *slog.Logger) (*Editor, error) {
	if len(opts.Palette) == 0 {
		return nil, ErrEmptyPalette
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Bindings == nil {
		opts.Bindings = DefaultBindings()
	}
	if len(opts.Shaders) == 0 {
		opts.Shaders = []string{"shaded"}
	}
	if opts.Camera.Radius <= 0 {
		return nil, fmt.Errorf("camera radius must be positive, got %v", opts.Camera.Radius)
	}

	canvas := opts.Canvas
	canvas.Kind = KindPrimitive
	canvas.Mesh = CubeMesh
	canvas.Bounds = geom.BoxAround(canvas.Position, canvas.Scale)

	picker := picking.NewPicker(canvas.Bounds)
	picker.Tolerances = opts.Tolerances

	e := &Editor{
		palette:  opts.Palette,
		bindings: opts.Bindings,
		tunables: opts.Tunables,
		lens:     opts.Lens,
		canvas:   canvas,
		alpha:    opts.PreviewAlpha,
		shaders:  opts.Shaders,
		picker:   picker,
		scene:    NewScene(),
		logger:   logger,
		viewport: picking.Viewport{Width: 1000, Height: 1000},
		lastHit:  geom.Miss(),
	}
	if opts.SmoothFPS > 0 && opts.SmoothFrequency > 0 {
		e.smoother = NewScrollSmoother(opts.SmoothFPS, opts.SmoothFrequency)
	}

	e.state = State{
		Preview: Preview{Decorator: Decorator{
			Scale: opts.Preview.Scale,
			Color: opts.Preview.Color.Clamp(0, 1),
		}},
		Camera: opts.Camera,
	}
	e.state.Preview = syncEntry(e.state.Preview, e.Entry())
	return e, nil
}

// Scene returns the store of placed decorations.
func (e *Editor) Scene() *Scene { return e.scene }

// State returns a copy of the current state.
func (e *Editor) State() State { return e.state }

// Input returns the held-key snapshot.
func (e *Editor) Input() Input { return e.input }

// Entry returns the active palette entry.
func (e *Editor) Entry() PaletteEntry { return e.state.Entry(e.palette) }

// Palette returns the palette.
func (e *Editor) Palette() Palette { return e.palette }

// Canvas returns the fixed canvas decorator.
func (e *Editor) Canvas() Decorator { return e.canvas }

// Lens returns the projection parameters.
func (e *Editor) Lens() Lens { return e.lens }

// Shader returns the selected shader name.
func (e *Editor) Shader() string { return e.shaders[e.shader] }

// LastHit returns the result of the most recent pick.
func (e *Editor) LastHit() geom.Hit { return e.lastHit }

// Eye returns the camera position.
func (e *Editor) Eye() math3d.Vec3 { return e.state.Camera.Eye() }

// Viewport returns the pointer surface size.
func (e *Editor) Viewport() picking.Viewport { return e.viewport }

// Resize sets the size of the pointer surface and re-picks.
func (e *Editor) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	e.viewport = picking.Viewport{Width: width, Height: height}
	e.repick()
}

// Matrices returns the projection and view matrices of the current camera.
func (e *Editor) Matrices() (proj, view math3d.Mat4) {
	aspect := e.viewport.Width / e.viewport.Height
	proj = math3d.Perspective(e.lens.FOV, aspect, e.lens.Near, e.lens.Far)
	view = math3d.LookAt(e.Eye(), e.state.Camera.Target, math3d.Up())
	return proj, view
}

// KeyDown handles a key press. It reports whether the key is bound.
func (e *Editor) KeyDown(key string) bool {
	a, ok := e.bindings[key]
	if !ok {
		return false
	}
	switch {
	case a.Held():
		e.input = e.input.With(a, true)
	case a == ActionCyclePalette:
		e.state = CyclePalette(e.state, e.palette)
		e.logger.Debug("palette changed", "index", e.state.PaletteIndex, "entry", e.Entry().Name)
		e.repick()
	case a == ActionCycleShader:
		e.shader = (e.shader + 1) % len(e.shaders)
		e.logger.Debug("shader changed", "shader", e.Shader())
	}
	return true
}

// KeyUp handles a key release.
func (e *Editor) KeyUp(key string) {
	if a, ok := e.bindings[key]; ok && a.Held() {
		e.input = e.input.With(a, false)
	}
}

// ReleaseAll clears every held key.
func (e *Editor) ReleaseAll() {
	e.input = Input{}
}

// PointerMove re-picks under the pointer at (x, y) in viewport pixels.
func (e *Editor) PointerMove(x, y float64) {
	e.pointer = math3d.V2(x, y)
	e.tracking = true
	e.repick()
}

// PointerDown commits on the primary button.
func (e *Editor) PointerDown(b Button) {
	if b == ButtonPrimary {
		e.Commit()
	}
}

// PointerUp is a no-op; commits happen on press.
func (e *Editor) PointerUp(Button) {}

// Scroll orbits the camera, or zooms when zoom is set. With smoothing
// enabled the motion is spread over the following ticks.
func (e *Editor) Scroll(dx, dy float64, zoom bool) {
	if e.smoother != nil {
		e.smoother.Impulse(dx, dy, zoom)
		return
	}
	e.state.Camera = e.state.Camera.Scroll(dx, dy, zoom)
	e.repick()
}

// Tick advances one frame of held controls and pending camera motion.
func (e *Editor) Tick(dt time.Duration) {
	if e.smoother != nil && !e.smoother.Idle() {
		dx, dy, dz := e.smoother.Step()
		cam := e.state.Camera.Scroll(dx, dy, false)
		if dz != 0 {
			cam = cam.Scroll(0, dz, true)
		}
		e.state.Camera = cam
		e.repick()
	}
	e.state = Advance(e.state, e.input, e.palette, e.tunables, dt)
}

// Commit places the preview in the scene. It reports whether anything was
// placed; nothing is placed while the preview is hidden.
func (e *Editor) Commit() bool {
	d, ok := e.state.Preview.Snapshot()
	if !ok {
		return false
	}
	e.scene.Add(d)
	cubes, decorations := e.scene.Counts()
	e.logger.Info("decoration placed",
		"kind", d.Kind.String(),
		"mesh", d.Mesh,
		"position", fmt.Sprintf("%.3f,%.3f,%.3f", d.Position.X, d.Position.Y, d.Position.Z),
		"cubes", cubes,
		"decorations", decorations,
	)
	return true
}

// Frame assembles what Draw needs for the current state.
func (e *Editor) Frame() Frame {
	return Frame{
		Shader:       e.Shader(),
		Canvas:       e.canvas,
		Preview:      e.state.Preview,
		PreviewAlpha: e.alpha,
		Scene:        e.scene.Snapshot(),
	}
}

// Draw issues the current frame to r.
func (e *Editor) Draw(r Renderer) {
	Draw(r, e.Frame())
}

func (e *Editor) repick() {
	if !e.tracking {
		return
	}
	proj, view := e.Matrices()
	_, hit := e.picker.Cast(e.pointer, e.viewport, proj.Mul(view), e.Eye(), e.scene.CubeBounds())
	e.lastHit = hit
	e.state.Preview = ApplyHit(e.state.Preview, hit, e.Entry())
}
