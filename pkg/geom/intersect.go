package geom

import (
	"math"

	"github.com/taigrr/bedeck/pkg/math3d"
)

// parallelPoint is the placeholder Point of a ray that runs parallel to a plane.
var parallelPoint = math3d.V3(5, 5, 5)

// Tolerances tunes the plane test that every other query is built on.
type Tolerances struct {
	// Parallel is the largest |dot(dir, normal)| still treated as parallel.
	// Zero means only an exact zero is parallel.
	Parallel float64
	// Front is the largest signed distance of the computed point from the
	// plane, along its normal, that still counts as a hit.
	Front float64
}

// DefaultTolerances matches the exact-zero parallel test and a 1e-5 front slack.
var DefaultTolerances = Tolerances{Parallel: 0, Front: 1e-5}

// IntersectPlane intersects ray with the plane through point with the given normal
// using DefaultTolerances.
func IntersectPlane(ray Ray, point, normal math3d.Vec3) Hit {
	return DefaultTolerances.IntersectPlane(ray, point, normal)
}

// IntersectBox intersects ray with box using DefaultTolerances.
func IntersectBox(ray Ray, box AABB) Hit {
	return DefaultTolerances.IntersectBox(ray, box)
}

// IntersectPlane solves t = dot(point-origin, n) / dot(dir, n).
//
// A parallel ray misses with Point set to (5,5,5) and T to +Inf. The t found
// is not restricted to be non-negative.
func (tol Tolerances) IntersectPlane(ray Ray, point, normal math3d.Vec3) Hit {
	denom := ray.Dir.Dot(normal)
	if math.Abs(denom) <= tol.Parallel {
		return Hit{Point: parallelPoint, T: math.Inf(1)}
	}

	t := (point.Dot(normal) - ray.Origin.Dot(normal)) / denom
	p := ray.At(t)
	if p.Sub(point).Dot(normal) > tol.Front {
		return Hit{T: math.Inf(1)}
	}
	return Hit{Hit: true, Point: p, T: t, Normal: normal}
}

// slab holds the nearer and farther face hits along one axis pair.
type slab struct {
	near, far Hit
}

func unbounded() slab {
	return slab{near: Hit{T: math.Inf(-1)}, far: Hit{T: math.Inf(1)}}
}

// newSlab orders two opposing face hits. A single hit bounds the axis on both
// sides; no hit leaves it unbounded.
func newSlab(a, b Hit) slab {
	switch {
	case a.Hit && b.Hit:
		if a.T < b.T {
			return slab{near: a, far: b}
		}
		return slab{near: b, far: a}
	case a.Hit:
		return slab{near: a, far: a}
	case b.Hit:
		return slab{near: b, far: b}
	}
	return unbounded()
}

// latest returns the hit with the greatest T. Ties go to the later argument.
func latest(a, b, c Hit) Hit {
	if a.T > b.T {
		if a.T > c.T {
			return a
		}
		return c
	}
	if b.T > c.T {
		return b
	}
	return c
}

// earliest returns the hit with the smallest T. Ties go to the later argument.
func earliest(a, b, c Hit) Hit {
	if a.T < b.T {
		if a.T < c.T {
			return a
		}
		return c
	}
	if b.T < c.T {
		return b
	}
	return c
}

// BoxSpan intersects the six face planes of box and returns the entry and
// exit candidates. The faces are paired top/bottom, left/right and
// front/back, and the pairs are compared in that order.
func (tol Tolerances) BoxSpan(ray Ray, box AABB) (entry, exit Hit) {
	vertical := newSlab(
		tol.IntersectPlane(ray, box.Max, math3d.V3(0, 1, 0)),
		tol.IntersectPlane(ray, box.Min, math3d.V3(0, -1, 0)),
	)
	horizontal := newSlab(
		tol.IntersectPlane(ray, box.Min, math3d.V3(-1, 0, 0)),
		tol.IntersectPlane(ray, box.Max, math3d.V3(1, 0, 0)),
	)
	depth := newSlab(
		tol.IntersectPlane(ray, box.Max, math3d.V3(0, 0, 1)),
		tol.IntersectPlane(ray, box.Min, math3d.V3(0, 0, -1)),
	)

	entry = latest(vertical.near, horizontal.near, depth.near)
	exit = earliest(vertical.far, horizontal.far, depth.far)
	return entry, exit
}

// IntersectBox runs the slab test. The ray hits iff the entry t is strictly
// below the exit t; the returned Hit is the entry face with Hit set to that
// outcome. An origin inside the box still hits, with a negative T.
func (tol Tolerances) IntersectBox(ray Ray, box AABB) Hit {
	entry, exit := tol.BoxSpan(ray, box)
	entry.Hit = entry.T < exit.T
	return entry
}

// IntersectSphere reports whether ray passes within radius of center.
// A sphere entirely behind the origin does not count; one containing the
// origin always does.
func IntersectSphere(ray Ray, center math3d.Vec3, radius float64) bool {
	el := center.Sub(ray.Origin)
	d := ray.Dir.Normalize()
	s := el.Dot(d)
	elSq := el.LenSq()
	rSq := radius * radius
	if s < 0 && elSq > rSq {
		return false
	}
	return elSq-s*s <= rSq
}
