package render

import (
	"github.com/taigrr/bedeck/pkg/math3d"
)

// DrawMeshWireframe draws the edges of every triangle of mesh. Lines are
// neither depth tested nor backface culled. It returns false when the mesh
// was frustum culled.
func (r *Rasterizer) DrawMeshWireframe(mesh MeshSource, transform math3d.Mat4, color Color) bool {
	if r.cull(mesh.LocalBounds(), transform) {
		return false
	}

	mvp := r.viewProj.Mul(transform)
	for i := range mesh.TriangleCount() {
		face := mesh.Face(i)
		var clip [3]math3d.Vec4
		for k, idx := range face {
			pos, _, _ := mesh.Vertex(idx)
			clip[k] = mvp.MulVec4(math3d.V4FromV3(pos, 1))
		}
		r.drawClipLine(clip[0], clip[1], color)
		r.drawClipLine(clip[1], clip[2], color)
		r.drawClipLine(clip[2], clip[0], color)
	}
	return true
}

// DrawLine3D draws a world-space line segment.
func (r *Rasterizer) DrawLine3D(a, b math3d.Vec3, color Color) {
	r.drawClipLine(
		r.viewProj.MulVec4(math3d.V4FromV3(a, 1)),
		r.viewProj.MulVec4(math3d.V4FromV3(b, 1)),
		color,
	)
}

// drawClipLine clips a clip-space segment to the near plane and draws it.
func (r *Rasterizer) drawClipLine(a, b math3d.Vec4, color Color) {
	da := a.Z + a.W
	db := b.Z + b.W
	switch {
	case da < 0 && db < 0:
		return
	case da < 0:
		a = lerp4(a, b, da/(da-db))
	case db < 0:
		b = lerp4(b, a, db/(db-da))
	}

	ax, ay := ndcToScreen(a.X/a.W, a.Y/a.W, r.Width(), r.Height())
	bx, by := ndcToScreen(b.X/b.W, b.Y/b.W, r.Width(), r.Height())

	// Keep Bresenham from walking far outside the target.
	limit := float64(4 * max(r.Width(), r.Height(), 1))
	if max(ax, ay, bx, by) > limit || min(ax, ay, bx, by) < -limit {
		return
	}
	r.fb.DrawLine(int(ax), int(ay), int(bx), int(by), color)
}

func lerp4(a, b math3d.Vec4, t float64) math3d.Vec4 {
	return math3d.V4(
		a.X+(b.X-a.X)*t,
		a.Y+(b.Y-a.Y)*t,
		a.Z+(b.Z-a.Z)*t,
		a.W+(b.W-a.W)*t,
	)
}
