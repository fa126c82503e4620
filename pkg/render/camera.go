package render

import (
	"github.com/taigrr/bedeck/pkg/math3d"
)

// Camera is the view and projection a frame is rendered with.
type Camera struct {
	View       math3d.Mat4
	Projection math3d.Mat4
}

// NewCamera builds a perspective camera at eye looking at target.
func NewCamera(eye, target, up math3d.Vec3, fov, aspect, near, far float64) Camera {
	return Camera{
		View:       math3d.LookAt(eye, target, up),
		Projection: math3d.Perspective(fov, aspect, near, far),
	}
}

// ViewProjection returns Projection * View.
func (c Camera) ViewProjection() math3d.Mat4 {
	return c.Projection.Mul(c.View)
}

// Frustum returns the view frustum of the camera.
func (c Camera) Frustum() Frustum {
	return NewFrustumFromMatrix(c.ViewProjection())
}

// WorldToScreen projects a world point to pixel coordinates of a
// width x height target. visible is false behind the eye or outside the
// frustum.
func (c Camera) WorldToScreen(p math3d.Vec3, width, height int) (x, y, depth float64, visible bool) {
	clip := c.ViewProjection().MulVec4(math3d.V4FromV3(p, 1))
	if clip.W <= 0 {
		return 0, 0, 0, false
	}

	ndc := clip.PerspectiveDivide()
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}

	x, y = ndcToScreen(ndc.X, ndc.Y, width, height)
	return x, y, ndc.Z, true
}

// ndcToScreen maps normalized device coordinates to pixels, Y pointing down.
func ndcToScreen(nx, ny float64, width, height int) (x, y float64) {
	return (nx + 1) * 0.5 * float64(width), (1 - ny) * 0.5 * float64(height)
}
