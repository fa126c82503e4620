package editor

import (
	"math"

	"github.com/taigrr/bedeck/pkg/math3d"
)

// OrbitLimits bounds the orbit when set. An unlimited orbit can flip over
// the poles and zoom through the target.
type OrbitLimits struct {
	MaxElevation float64 // absolute bound, radians
	MinRadius    float64
}

// DefaultOrbitLimits keeps the eye off the poles and outside the unit canvas.
func DefaultOrbitLimits() OrbitLimits {
	return OrbitLimits{MaxElevation: math.Pi/2 - 0.01, MinRadius: 1}
}

// Orbit is a camera on a sphere around Target.
type Orbit struct {
	Azimuth   float64
	Elevation float64
	Radius    float64
	Target    math3d.Vec3

	Gain     float64 // radians per scroll unit
	ZoomGain float64 // radius per scroll unit
	Limits   *OrbitLimits
}

// NewOrbit returns an orbit looking at the origin from +Z at the given radius.
func NewOrbit(radius float64) Orbit {
	return Orbit{Radius: radius, Gain: 0.05, ZoomGain: 0.05}
}

// Scroll moves the camera by a scroll delta. With zoom set only dy is used,
// changing the radius; otherwise dx turns the azimuth and dy the elevation.
func (o Orbit) Scroll(dx, dy float64, zoom bool) Orbit {
	if zoom {
		o.Radius += dy * o.ZoomGain
	} else {
		o.Azimuth -= dx * o.Gain
		o.Elevation += dy * o.Gain
	}
	if o.Limits != nil {
		o.Elevation = math.Max(-o.Limits.MaxElevation, math.Min(o.Limits.MaxElevation, o.Elevation))
		o.Radius = math.Max(o.Limits.MinRadius, o.Radius)
	}
	return o
}

// Eye returns the camera position.
func (o Orbit) Eye() math3d.Vec3 {
	cosEl := math.Cos(o.Elevation)
	return o.Target.Add(math3d.V3(
		o.Radius*math.Sin(o.Azimuth)*cosEl,
		o.Radius*math.Sin(o.Elevation),
		o.Radius*math.Cos(o.Azimuth)*cosEl,
	))
}
