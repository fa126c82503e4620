// Package picking turns a cursor position into a world ray and resolves the
// nearest box that ray touches.
package picking

import (
	"math"

	"github.com/taigrr/bedeck/pkg/geom"
	"github.com/taigrr/bedeck/pkg/math3d"
)

// Viewport is the size, in pixels, of the surface the cursor moves over.
type Viewport struct {
	Width, Height float64
}

// Unproject lifts a screen pixel to the far plane in world space.
// Screen y grows downward, so it is flipped before mapping to NDC.
func Unproject(screen math3d.Vec2, vp Viewport, invProjView math3d.Mat4) math3d.Vec3 {
	x := 2 * (screen.X/vp.Width - 0.5)
	y := 2 * ((vp.Height-screen.Y)/vp.Height - 0.5)
	return invProjView.MulVec4(math3d.V4(x, y, 1, 1)).PerspectiveDivide()
}

// ScreenToWorldRay returns the ray from eye through the world point under screen.
func ScreenToWorldRay(screen math3d.Vec2, vp Viewport, invProjView math3d.Mat4, eye math3d.Vec3) geom.Ray {
	world := Unproject(screen, vp, invProjView)
	return geom.Ray{Origin: eye, Dir: world.Sub(eye).Normalize()}
}

// PickNearest intersects ray with the canvas and every cube and returns the
// nearest hit with a non-negative t. A cube wins over the canvas when it is
// strictly nearer or when the canvas is not hit at all.
func PickNearest(tol geom.Tolerances, ray geom.Ray, canvas geom.AABB, cubes []geom.AABB) geom.Hit {
	best := tol.IntersectBox(ray, canvas)
	if best.T < 0 {
		best.Hit = false
	}

	nearest := geom.Miss()
	for _, box := range cubes {
		if h := tol.IntersectBox(ray, box); h.Closer(nearest) {
			nearest = h
		}
	}

	if nearest.Closer(best) {
		return nearest
	}
	return best
}

// RotationFromNormal maps a surface normal to the (rotZ, rotX) pair that
// stands a model upright on that surface. It is exact for the six
// axis-aligned normals a box can present and makes no promise for others.
func RotationFromNormal(n math3d.Vec3) (rotZ, rotX float64) {
	if n.Y > 0.5 {
		return 0, 0
	}
	if n.Y < -0.5 {
		return math.Pi, 0
	}

	tilt := math.Atan2(math.Sqrt(n.Y*n.Y+n.Z*n.Z), n.X)
	rotZ = tilt
	if n.Z < -0.5 {
		rotZ = -tilt
	}
	rotX = tilt - math.Pi/2
	if n.X < -0.5 {
		rotX = -tilt + math.Pi/2
	}
	return rotZ, rotX
}
