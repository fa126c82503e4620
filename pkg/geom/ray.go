package geom

import (
	"math"

	"github.com/taigrr/bedeck/pkg/math3d"
)

// Ray is a half-line starting at Origin. Dir need not be normalized.
type Ray struct {
	Origin math3d.Vec3
	Dir    math3d.Vec3
}

// At returns Origin + t*Dir.
func (r Ray) At(t float64) math3d.Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Hit is the result of a ray query.
//
// When Hit is false, Point, T and Normal carry no meaning.
type Hit struct {
	Hit    bool
	Point  math3d.Vec3
	T      float64
	Normal math3d.Vec3
}

// Miss returns a non-hit whose T is +Inf, ready to be beaten by any real hit.
func Miss() Hit {
	return Hit{T: math.Inf(1)}
}

// Closer reports whether h is a valid hit in front of the ray origin and
// strictly nearer than other (or other is not a hit at all).
func (h Hit) Closer(other Hit) bool {
	if !h.Hit || h.T < 0 {
		return false
	}
	return !other.Hit || h.T < other.T
}
