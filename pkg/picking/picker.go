package picking

import (
	"github.com/taigrr/bedeck/pkg/geom"
	"github.com/taigrr/bedeck/pkg/math3d"
)

// Picker binds the intersection tolerances and the fixed canvas box.
type Picker struct {
	Tolerances geom.Tolerances
	Canvas     geom.AABB
}

// NewPicker creates a Picker for canvas using the default tolerances.
func NewPicker(canvas geom.AABB) *Picker {
	return &Picker{Tolerances: geom.DefaultTolerances, Canvas: canvas}
}

// Cast builds the cursor ray for the given camera matrices and picks the
// nearest surface among the canvas and cubes. A singular projView yields a miss.
func (p *Picker) Cast(screen math3d.Vec2, vp Viewport, projView math3d.Mat4, eye math3d.Vec3, cubes []geom.AABB) (geom.Ray, geom.Hit) {
	inv, ok := projView.Invert()
	if !ok || vp.Width <= 0 || vp.Height <= 0 {
		return geom.Ray{Origin: eye}, geom.Miss()
	}
	ray := ScreenToWorldRay(screen, vp, inv, eye)
	return ray, PickNearest(p.Tolerances, ray, p.Canvas, cubes)
}
