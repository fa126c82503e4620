// Package render is the software renderer behind the editor: a depth
// buffered triangle rasterizer with Gouraud, flat and textured shading,
// alpha blending and wireframes, a transform-stack Pipeline the editor draws
// through, and half-block presentation of the framebuffer in a terminal.
package render

import (
	"math"

	"github.com/taigrr/bedeck/pkg/geom"
	"github.com/taigrr/bedeck/pkg/math3d"
)

// Shading selects how lighting is evaluated across a triangle.
type Shading int

const (
	// ShadeGouraud lights each vertex and interpolates the result.
	ShadeGouraud Shading = iota
	// ShadeFlat lights each triangle once from its face normal.
	ShadeFlat
)

// Material describes how triangles are filled.
type Material struct {
	// Color is used when Texture is nil.
	Color Color
	// Texture, when set, supplies the color instead of Color.
	Texture *Texture
	// Alpha strictly between 0 and 1 blends over the framebuffer without
	// writing depth. Zero, like 1, is opaque.
	Alpha   float64
	Shading Shading
	// LightDir points from the surface toward the light.
	LightDir math3d.Vec3
}

// Vertex is a world-space vertex ready for rasterization.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Triangle is three vertices in the renderer's winding: clockwise when seen
// from the front in a Y-up view.
type Triangle struct {
	V [3]Vertex
}

// Rasterizer fills triangles into a framebuffer with a depth buffer.
type Rasterizer struct {
	fb       *Framebuffer
	zbuffer  []float64
	viewProj math3d.Mat4
	frustum  Frustum

	CullingStats           CullingStats
	DisableBackfaceCulling bool

	clipIn, clipOut []clipVertex
}

// CullingStats tracks frustum culling per frame.
type CullingStats struct {
	MeshesTested int
	MeshesCulled int
	MeshesDrawn  int
}

// NewRasterizer creates a rasterizer drawing into fb with an identity
// view-projection.
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{fb: fb}
	r.SetViewProjection(math3d.Identity())
	r.Resize()
	return r
}

// Resize matches the depth buffer to the framebuffer.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	n := r.fb.Width * r.fb.Height
	if cap(r.zbuffer) >= n {
		r.zbuffer = r.zbuffer[:n]
	} else {
		r.zbuffer = make([]float64, n)
	}
	r.ClearDepth()
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// SetViewProjection sets the world-to-clip matrix and refreshes the frustum.
func (r *Rasterizer) SetViewProjection(m math3d.Mat4) {
	r.viewProj = m
	r.frustum = NewFrustumFromMatrix(m)
}

// Frustum returns the frustum of the current view-projection.
func (r *Rasterizer) Frustum() Frustum {
	return r.frustum
}

// ClearDepth resets the depth buffer; call before each frame.
func (r *Rasterizer) ClearDepth() {
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// ResetCullingStats zeroes the culling counters.
func (r *Rasterizer) ResetCullingStats() {
	r.CullingStats = CullingStats{}
}

// IsVisible tests a world-space box against the frustum.
func (r *Rasterizer) IsVisible(world geom.AABB) bool {
	return r.frustum.IntersectAABB(world)
}

// cull counts the test and reports whether a mesh with the given local
// bounds is outside the frustum after transform.
func (r *Rasterizer) cull(local geom.AABB, transform math3d.Mat4) bool {
	r.CullingStats.MeshesTested++
	if !r.IsVisible(local.Transform(transform)) {
		r.CullingStats.MeshesCulled++
		return true
	}
	r.CullingStats.MeshesDrawn++
	return false
}

// clipVertex is a vertex in clip space with the attributes that survive
// lighting: texture coordinates and light intensity.
type clipVertex struct {
	pos       math3d.Vec4
	uv        math3d.Vec2
	intensity float64
}

func (a clipVertex) lerp(b clipVertex, t float64) clipVertex {
	return clipVertex{
		pos: math3d.V4(
			a.pos.X+(b.pos.X-a.pos.X)*t,
			a.pos.Y+(b.pos.Y-a.pos.Y)*t,
			a.pos.Z+(b.pos.Z-a.pos.Z)*t,
			a.pos.W+(b.pos.W-a.pos.W)*t,
		),
		uv:        a.uv.Add(b.uv.Sub(a.uv).Scale(t)),
		intensity: a.intensity + (b.intensity-a.intensity)*t,
	}
}

// lightIntensity is the ambient plus diffuse term shared by all shading modes.
func lightIntensity(normal, lightDir math3d.Vec3) float64 {
	return 0.3 + 0.7*math.Max(0, normal.Dot(lightDir))
}

// DrawTriangle lights, clips and fills one triangle.
func (r *Rasterizer) DrawTriangle(tri Triangle, mat Material) {
	light := mat.LightDir.Normalize()

	var faceIntensity float64
	if mat.Shading == ShadeFlat {
		p := tri.V
		// Renderer winding is clockwise, so the front normal is e2 x e1.
		n := p[2].Position.Sub(p[0].Position).Cross(p[1].Position.Sub(p[0].Position)).Normalize()
		faceIntensity = lightIntensity(n, light)
	}

	r.clipIn = r.clipIn[:0]
	for _, v := range tri.V {
		cv := clipVertex{
			pos: r.viewProj.MulVec4(math3d.V4FromV3(v.Position, 1)),
			uv:  v.UV,
		}
		if mat.Shading == ShadeFlat {
			cv.intensity = faceIntensity
		} else {
			cv.intensity = lightIntensity(v.Normal.Normalize(), light)
		}
		r.clipIn = append(r.clipIn, cv)
	}

	r.clipOut = clipNear(r.clipIn, r.clipOut[:0])
	for i := 1; i+1 < len(r.clipOut); i++ {
		r.fill(r.clipOut[0], r.clipOut[i], r.clipOut[i+1], mat)
	}
}

// clipNear clips a convex polygon against the near plane z >= -w.
func clipNear(in, out []clipVertex) []clipVertex {
	for i := range in {
		a := in[i]
		b := in[(i+1)%len(in)]
		da := a.pos.Z + a.pos.W
		db := b.pos.Z + b.pos.W
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			out = append(out, a.lerp(b, da/(da-db)))
		}
	}
	return out
}

// screenVertex is a clipped vertex after the perspective divide.
type screenVertex struct {
	x, y, z   float64
	invW      float64
	uv        math3d.Vec2
	intensity float64
}

func (r *Rasterizer) toScreen(cv clipVertex) screenVertex {
	invW := 1 / cv.pos.W
	x, y := ndcToScreen(cv.pos.X*invW, cv.pos.Y*invW, r.Width(), r.Height())
	return screenVertex{
		x:         x,
		y:         y,
		z:         cv.pos.Z * invW,
		invW:      invW,
		uv:        cv.uv,
		intensity: cv.intensity,
	}
}

// edgeCoeffs returns A, B, C of the edge function A*x + B*y + C, which is
// positive on the inside of a triangle wound like the renderer expects.
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1
	B = x1 - x0
	C = x0*y1 - x1*y0
	return
}

// fill rasterizes a clipped triangle with edge functions.
func (r *Rasterizer) fill(c0, c1, c2 clipVertex, mat Material) {
	sv := [3]screenVertex{r.toScreen(c0), r.toScreen(c1), r.toScreen(c2)}

	area := (sv[1].x-sv[0].x)*(sv[2].y-sv[0].y) - (sv[1].y-sv[0].y)*(sv[2].x-sv[0].x)
	if area == 0 {
		return
	}
	if area < 0 {
		if !r.DisableBackfaceCulling {
			return
		}
		sv[1], sv[2] = sv[2], sv[1]
		area = -area
	}

	minX := max(0, int(math.Floor(min(sv[0].x, sv[1].x, sv[2].x))))
	maxX := min(r.Width()-1, int(math.Ceil(max(sv[0].x, sv[1].x, sv[2].x))))
	minY := max(0, int(math.Floor(min(sv[0].y, sv[1].y, sv[2].y))))
	maxY := min(r.Height()-1, int(math.Ceil(max(sv[0].y, sv[1].y, sv[2].y))))
	if minX > maxX || minY > maxY {
		return
	}

	// Edge i is opposite vertex i.
	A0, B0, C0 := edgeCoeffs(sv[1].x, sv[1].y, sv[2].x, sv[2].y)
	A1, B1, C1 := edgeCoeffs(sv[2].x, sv[2].y, sv[0].x, sv[0].y)
	A2, B2, C2 := edgeCoeffs(sv[0].x, sv[0].y, sv[1].x, sv[1].y)
	invArea := 1 / area

	tl0, tl1, tl2 := topLeft(A0, B0), topLeft(A1, B1), topLeft(A2, B2)

	blend := mat.Alpha > 0 && mat.Alpha < 1
	width := r.Width()

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			// Evaluated per pixel so a shared edge gives exactly opposite
			// values in both triangles.
			px := float64(x) + 0.5
			w0 := A0*px + B0*py + C0
			w1 := A1*px + B1*py + C1
			w2 := A2*px + B2*py + C2
			if !covers(w0, tl0) || !covers(w1, tl1) || !covers(w2, tl2) {
				continue
			}

			b0, b1, b2 := w0*invArea, w1*invArea, w2*invArea
			z := b0*sv[0].z + b1*sv[1].z + b2*sv[2].z
			idx := y*width + x
			if z < -1 || z > 1 || z >= r.zbuffer[idx] {
				continue
			}

			// Perspective-correct weights.
			p0, p1, p2 := b0*sv[0].invW, b1*sv[1].invW, b2*sv[2].invW
			norm := 1 / (p0 + p1 + p2)
			intensity := (p0*sv[0].intensity + p1*sv[1].intensity + p2*sv[2].intensity) * norm

			base := mat.Color
			if mat.Texture != nil {
				u := (p0*sv[0].uv.X + p1*sv[1].uv.X + p2*sv[2].uv.X) * norm
				v := (p0*sv[0].uv.Y + p1*sv[1].uv.Y + p2*sv[2].uv.Y) * norm
				base = mat.Texture.Sample(u, v)
			}
			c := MultiplyColor(base, intensity)

			if blend {
				r.fb.BlendPixel(x, y, c, mat.Alpha)
			} else {
				r.zbuffer[idx] = z
				c.A = 255
				r.fb.SetPixel(x, y, c)
			}
		}
	}
}

// topLeft reports whether an edge whose inside lies along (a, b) is a top
// or left edge in screen space, y down.
func topLeft(a, b float64) bool {
	return a > 0 || (a == 0 && b > 0)
}

// covers applies the top-left rule: a pixel centre exactly on an edge
// belongs to the triangle only when the edge is top or left.
func covers(w float64, topLeft bool) bool {
	return w > 0 || (w == 0 && topLeft)
}

// MeshSource is the geometry a Rasterizer can draw. Faces use the
// renderer's winding.
type MeshSource interface {
	VertexCount() int
	TriangleCount() int
	Vertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	Face(i int) [3]int
	LocalBounds() geom.AABB
}

// DrawMesh transforms and fills every triangle of mesh. It returns false
// when the mesh was frustum culled.
func (r *Rasterizer) DrawMesh(mesh MeshSource, transform math3d.Mat4, mat Material) bool {
	if r.cull(mesh.LocalBounds(), transform) {
		return false
	}

	normalMat, ok := transform.Invert()
	if !ok {
		// A zero scale collapses the mesh to nothing visible.
		return false
	}

	for i := range mesh.TriangleCount() {
		face := mesh.Face(i)
		var tri Triangle
		for k, idx := range face {
			pos, normal, uv := mesh.Vertex(idx)
			tri.V[k] = Vertex{
				Position: transform.MulVec3(pos),
				Normal:   mulTransposeDir(normalMat, normal),
				UV:       uv,
			}
		}
		r.DrawTriangle(tri, mat)
	}
	return true
}

// mulTransposeDir multiplies the direction n by the transpose of m. With m
// the inverse of a model matrix this maps normals to world space.
func mulTransposeDir(m math3d.Mat4, n math3d.Vec3) math3d.Vec3 {
	return math3d.V3(
		m[0]*n.X+m[1]*n.Y+m[2]*n.Z,
		m[4]*n.X+m[5]*n.Y+m[6]*n.Z,
		m[8]*n.X+m[9]*n.Y+m[10]*n.Z,
	)
}
