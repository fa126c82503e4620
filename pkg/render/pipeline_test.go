package render

import (
	"errors"
	"image/png"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/bedeck/pkg/editor"
	"github.com/taigrr/bedeck/pkg/math3d"
)

var _ editor.Renderer = (*Pipeline)(nil)

// newTestPipeline returns a 100x100 pipeline looking at the origin from +Z
// with the light behind the eye.
func newTestPipeline() *Pipeline {
	p := NewPipeline(100, 100, nil)
	p.LightDir = math3d.V3(0, 0, 1)
	p.Begin(NewCamera(math3d.V3(0, 0, 10), math3d.V3(0, 0, 0), math3d.V3(0, 1, 0), math.Pi/3, 1, 0.1, 100))
	return p
}

func TestPipelineTransformMatchesDecorator(t *testing.T) {
	d := editor.Decorator{
		Position: math3d.V3(0.5, -0.25, 0.5),
		Rotation: math3d.V3(0.3, 1.1, -0.7),
		Scale:    math3d.V3(0.2, 0.4, 0.1),
	}

	p := NewPipeline(10, 10, nil)
	p.Translate(math3d.V3(3, 3, 3))
	p.Identity()
	d.ApplyTransform(p)

	got, want := p.Model(), d.Matrix()
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("model[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPipelinePushPop(t *testing.T) {
	p := NewPipeline(10, 10, nil)
	p.Translate(math3d.V3(1, 2, 3))
	saved := p.Model()

	p.Push()
	p.Scale(math3d.Splat(2))
	p.Pop()
	if p.Model() != saved {
		t.Errorf("Pop did not restore the pushed transform")
	}

	p.Pop()
	if p.Model() != math3d.Identity() {
		t.Errorf("Pop on an empty stack should reset to identity")
	}
}

func TestPipelineUseShader(t *testing.T) {
	p := NewPipeline(10, 10, nil)

	for _, name := range Shaders() {
		p.UseShader(name)
		if p.Shader() != name {
			t.Errorf("Shader() = %q, want %q", p.Shader(), name)
		}
	}

	p.UseShader("toon")
	if p.Shader() != ShaderShaded {
		t.Errorf("unknown shader fell back to %q, want %q", p.Shader(), ShaderShaded)
	}
	if ValidShader("toon") {
		t.Error("toon should not be a valid shader")
	}
}

func TestPipelineMaterial(t *testing.T) {
	p := NewPipeline(10, 10, nil)
	tex := NewTexture(2, 2)
	p.Assets().AddTexture("eye", tex)

	p.SetDiffuse(math3d.V3(1, 0.5, 0), 0.5)
	m := p.material()
	if m.Color != RGB(255, 128, 0) || m.Alpha != 0.5 {
		t.Errorf("material color/alpha = %v/%v", m.Color, m.Alpha)
	}
	if m.Texture != nil {
		t.Error("untextured draw should carry no texture")
	}

	p.SetTextured(true)
	p.SetTexture("eye")
	if p.material().Texture != tex {
		t.Error("registered texture not used")
	}

	p.SetTexture("unknown")
	if p.material().Texture != p.missing {
		t.Error("unregistered texture should fall back to the missing texture")
	}

	p.UseShader(ShaderFlat)
	if p.material().Shading != ShadeFlat {
		t.Error("flat shader should select flat shading")
	}
}

func TestPipelineDrawCube(t *testing.T) {
	p := newTestPipeline()
	p.SetDiffuse(math3d.V3(1, 0, 0), 1)
	p.DrawCube()

	if got := p.Framebuffer().GetPixel(50, 50); !nearColor(got, RGB(255, 0, 0), 1) {
		t.Errorf("center pixel = %v, want red", got)
	}
	if s := p.Stats(); s.MeshesDrawn != 1 {
		t.Errorf("stats = %+v, want one mesh drawn", s)
	}

	p.Translate(math3d.V3(0, 0, 20))
	p.DrawCube()
	if s := p.Stats(); s.MeshesCulled != 1 {
		t.Errorf("stats = %+v, want one mesh culled", s)
	}
}

func TestPipelineTranslucentOverOpaque(t *testing.T) {
	p := newTestPipeline()
	p.SetDiffuse(math3d.V3(1, 1, 1), 1)
	p.DrawCube()

	p.Push()
	p.Translate(math3d.V3(0, 0, 0.6))
	p.Scale(math3d.Splat(0.5))
	p.SetDiffuse(math3d.V3(0, 0, 0), 0.5)
	p.DrawCube()
	p.Pop()

	if got := p.Framebuffer().GetPixel(50, 50); !nearColor(got, RGB(128, 128, 128), 2) {
		t.Errorf("center pixel = %v, want half black over white", got)
	}
}

func TestPipelineTranslucentFaceBlendsOnce(t *testing.T) {
	p := newTestPipeline()
	p.SetDiffuse(math3d.V3(1, 1, 1), 1)
	p.DrawCube()

	p.Translate(math3d.V3(0, 0, 0.6))
	p.Scale(math3d.Splat(0.5))
	p.SetDiffuse(math3d.V3(0, 0, 0), 0.5)
	p.DrawCube()

	fb := p.Framebuffer()
	blended := 0
	for y := range fb.Height {
		for x := range fb.Width {
			got := fb.GetPixel(x, y)
			switch {
			case nearColor(got, RGB(128, 128, 128), 2):
				blended++
			case got.R > 20 && got.R < 110:
				t.Fatalf("pixel (%d,%d) = %v, blended more than once", x, y, got)
			}
		}
	}
	if blended == 0 {
		t.Fatal("translucent face drew nothing")
	}
}

func TestPipelineDrawMesh(t *testing.T) {
	p := newTestPipeline()
	p.DrawMesh("missing")
	if s := p.Stats(); s.MeshesTested != 0 {
		t.Errorf("unregistered mesh was tested: %+v", s)
	}
	if n := litPixels(p.Framebuffer()); n != 0 {
		t.Errorf("unregistered mesh drew %d pixels", n)
	}

	p.Assets().AddMesh("box", UnitCube())
	p.DrawMesh("box")
	if p.Framebuffer().GetPixel(50, 50) == ColorBlack {
		t.Error("registered mesh should be drawn")
	}
}

func TestPipelineWireframe(t *testing.T) {
	p := newTestPipeline()
	p.UseShader(ShaderWireframe)
	p.Scale(math3d.Splat(4))
	p.DrawCube()
	wire := litPixels(p.Framebuffer())

	p.Begin(NewCamera(math3d.V3(0, 0, 10), math3d.V3(0, 0, 0), math3d.V3(0, 1, 0), math.Pi/3, 1, 0.1, 100))
	p.UseShader(ShaderShaded)
	p.Scale(math3d.Splat(4))
	p.DrawCube()
	filled := litPixels(p.Framebuffer())

	if wire == 0 || wire >= filled {
		t.Errorf("wireframe lit %d pixels, filled %d", wire, filled)
	}
}

func TestPipelineBeginClears(t *testing.T) {
	p := newTestPipeline()
	p.DrawCube()
	p.Translate(math3d.V3(1, 0, 0))
	p.Push()

	p.Begin(NewCamera(math3d.V3(0, 0, 10), math3d.V3(0, 0, 0), math3d.V3(0, 1, 0), math.Pi/3, 1, 0.1, 100))
	if n := litPixels(p.Framebuffer()); n != 0 {
		t.Errorf("%d pixels survived Begin", n)
	}
	if p.Model() != math3d.Identity() || len(p.stack) != 0 {
		t.Error("Begin should reset the transform stack")
	}
	if p.Stats() != (CullingStats{}) {
		t.Errorf("stats after Begin = %+v", p.Stats())
	}
}

func TestPipelineDrawsEditorFrame(t *testing.T) {
	e, err := editor.New(editor.DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("editor.New: %v", err)
	}
	e.Resize(100, 100)

	p := NewPipeline(100, 100, nil)
	proj, view := e.Matrices()
	p.Begin(Camera{View: view, Projection: proj})
	e.Draw(p)

	if s := p.Stats(); s.MeshesTested != 1 || s.MeshesDrawn != 1 {
		t.Errorf("stats = %+v, want only the canvas drawn", s)
	}
	if p.Framebuffer().GetPixel(50, 50) == ColorBlack {
		t.Error("canvas should cover the center pixel")
	}
}

func TestPipelineResize(t *testing.T) {
	p := NewPipeline(10, 10, nil)
	p.Resize(40, 20)
	if p.Framebuffer().Width != 40 || p.Framebuffer().Height != 20 {
		t.Errorf("framebuffer = %dx%d, want 40x20", p.Framebuffer().Width, p.Framebuffer().Height)
	}
	if p.Rasterizer().Width() != 40 || len(p.Rasterizer().zbuffer) != 800 {
		t.Error("rasterizer did not follow the resize")
	}
}

func TestPipelineScreenshot(t *testing.T) {
	p := newTestPipeline()
	p.DrawCube()

	path := filepath.Join(t.TempDir(), "shot.png")
	if err := p.Screenshot(path); err != nil {
		t.Fatalf("Screenshot: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Errorf("image size = %v, want 100x100", b)
	}

	err = p.Screenshot(filepath.Join(t.TempDir(), "missing", "shot.png"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Screenshot into a missing dir = %v, want ErrNotExist", err)
	}
}
