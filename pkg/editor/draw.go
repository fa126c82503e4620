package editor

import "github.com/taigrr/bedeck/pkg/math3d"

// Renderer is the drawing surface the editor issues its frame to.
type Renderer interface {
	Transformer
	UseShader(name string)
	SetTextured(on bool)
	SetTexture(handle string)
	SetDiffuse(color math3d.Vec3, alpha float64)
	Identity()
	Push()
	Pop()
	DrawCube()
	DrawMesh(handle string)
}

// Frame is everything one Draw call needs.
type Frame struct {
	Shader       string
	Canvas       Decorator
	Preview      Preview
	PreviewAlpha float64
	Scene        Snapshot
}

// Draw issues the canvas, the placed cubes, the placed decorations and then
// the preview if it is visible. The translucent preview goes last so it
// blends over everything else.
func Draw(r Renderer, f Frame) {
	r.UseShader(f.Shader)

	drawDecorator(r, f.Canvas, 1)
	for _, c := range f.Scene.Cubes {
		drawDecorator(r, c, 1)
	}
	for _, d := range f.Scene.Decorations {
		drawDecorator(r, d, 1)
	}
	if f.Preview.Visible {
		drawDecorator(r, f.Preview.Decorator, f.PreviewAlpha)
	}
}

func drawDecorator(r Renderer, d Decorator, alpha float64) {
	r.Push()
	defer r.Pop()

	r.SetTextured(d.Texture != "")
	if d.Texture != "" {
		r.SetTexture(d.Texture)
	}
	r.SetDiffuse(d.Color, alpha)
	r.Identity()
	d.ApplyTransform(r)
	if d.IsModel() {
		r.DrawMesh(d.Mesh)
		return
	}
	r.DrawCube()
}
