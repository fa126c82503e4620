package render

import (
	"fmt"

	"github.com/taigrr/bedeck/pkg/math3d"
)

// Shader names accepted by UseShader.
const (
	ShaderShaded    = "shaded"
	ShaderFlat      = "flat"
	ShaderWireframe = "wireframe"
)

// Shaders lists the shader names in cycling order.
func Shaders() []string {
	return []string{ShaderShaded, ShaderFlat, ShaderWireframe}
}

// ValidShader reports whether name is a known shader.
func ValidShader(name string) bool {
	switch name {
	case ShaderShaded, ShaderFlat, ShaderWireframe:
		return true
	}
	return false
}

// Pipeline draws through a model transform stack with the uniforms the
// editor sets per object: shader, textured flag, texture and diffuse color.
type Pipeline struct {
	fb     *Framebuffer
	raster *Rasterizer
	assets *Assets

	Background Color
	LightDir   math3d.Vec3

	shader   string
	model    math3d.Mat4
	stack    []math3d.Mat4
	textured bool
	texture  string
	diffuse  Color
	alpha    float64
	missing  *Texture
}

// NewPipeline creates a pipeline with a width x height framebuffer.
func NewPipeline(width, height int, assets *Assets) *Pipeline {
	if assets == nil {
		assets = NewAssets()
	}
	fb := NewFramebuffer(width, height)
	return &Pipeline{
		fb:         fb,
		raster:     NewRasterizer(fb),
		assets:     assets,
		Background: ColorBlack,
		LightDir:   math3d.V3(0.4, 1, 0.6),
		shader:     ShaderShaded,
		model:      math3d.Identity(),
		diffuse:    ColorWhite,
		alpha:      1,
		missing:    missingTexture(),
	}
}

// Framebuffer returns the target the pipeline draws into.
func (p *Pipeline) Framebuffer() *Framebuffer { return p.fb }

// Rasterizer returns the underlying rasterizer.
func (p *Pipeline) Rasterizer() *Rasterizer { return p.raster }

// Assets returns the mesh and texture registry.
func (p *Pipeline) Assets() *Assets { return p.assets }

// Resize changes the framebuffer dimensions.
func (p *Pipeline) Resize(width, height int) {
	if width == p.fb.Width && height == p.fb.Height {
		return
	}
	p.fb.Resize(width, height)
	p.raster.Resize()
}

// Begin clears color and depth, sets the camera and resets per-frame state.
func (p *Pipeline) Begin(cam Camera) {
	p.fb.Clear(p.Background)
	p.raster.ClearDepth()
	p.raster.ResetCullingStats()
	p.raster.SetViewProjection(cam.ViewProjection())
	p.model = math3d.Identity()
	p.stack = p.stack[:0]
}

// Stats returns the culling counters of the current frame.
func (p *Pipeline) Stats() CullingStats { return p.raster.CullingStats }

// UseShader selects the shader for the following draws. Unknown names fall
// back to the shaded shader.
func (p *Pipeline) UseShader(name string) {
	if !ValidShader(name) {
		name = ShaderShaded
	}
	p.shader = name
}

// Shader returns the active shader name.
func (p *Pipeline) Shader() string { return p.shader }

// SetTextured toggles texturing for the following draws.
func (p *Pipeline) SetTextured(on bool) { p.textured = on }

// SetTexture selects the texture used while texturing is on.
func (p *Pipeline) SetTexture(handle string) { p.texture = handle }

// SetDiffuse sets the flat color, channels in [0, 1], and its opacity.
func (p *Pipeline) SetDiffuse(color math3d.Vec3, alpha float64) {
	p.diffuse = FromUnit(color.X, color.Y, color.Z)
	p.alpha = alpha
}

// Identity resets the model transform.
func (p *Pipeline) Identity() { p.model = math3d.Identity() }

// Translate post-multiplies a translation.
func (p *Pipeline) Translate(v math3d.Vec3) { p.model = p.model.Mul(math3d.Translate(v)) }

// Rotate post-multiplies a rotation of angle radians about axis.
func (p *Pipeline) Rotate(angle float64, axis math3d.Vec3) {
	p.model = p.model.Mul(math3d.Rotate(axis, angle))
}

// Scale post-multiplies a scale.
func (p *Pipeline) Scale(v math3d.Vec3) { p.model = p.model.Mul(math3d.Scale(v)) }

// Push saves the model transform.
func (p *Pipeline) Push() { p.stack = append(p.stack, p.model) }

// Pop restores the last pushed model transform. Popping an empty stack
// resets to identity.
func (p *Pipeline) Pop() {
	if len(p.stack) == 0 {
		p.model = math3d.Identity()
		return
	}
	p.model = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
}

// Model returns the current model transform.
func (p *Pipeline) Model() math3d.Mat4 { return p.model }

// DrawCube draws the unit cube with the current transform and uniforms.
func (p *Pipeline) DrawCube() {
	p.draw(UnitCube())
}

// DrawMesh draws the mesh registered under handle. Unregistered handles
// draw nothing.
func (p *Pipeline) DrawMesh(handle string) {
	if m, ok := p.assets.Mesh(handle); ok {
		p.draw(m)
	}
}

func (p *Pipeline) draw(mesh MeshSource) {
	if p.shader == ShaderWireframe {
		p.raster.DrawMeshWireframe(mesh, p.model, p.diffuse)
		return
	}
	p.raster.DrawMesh(mesh, p.model, p.material())
}

func (p *Pipeline) material() Material {
	m := Material{
		Color:    p.diffuse,
		Alpha:    p.alpha,
		LightDir: p.LightDir,
	}
	if p.shader == ShaderFlat {
		m.Shading = ShadeFlat
	}
	if p.textured {
		if tex, ok := p.assets.Texture(p.texture); ok {
			m.Texture = tex
		} else {
			m.Texture = p.missing
		}
	}
	return m
}

// Screenshot writes the framebuffer to path as a PNG.
func (p *Pipeline) Screenshot(path string) error {
	if err := p.fb.SavePNG(path); err != nil {
		return fmt.Errorf("screenshot %s: %w", path, err)
	}
	return nil
}
