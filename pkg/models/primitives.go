package models

import (
	"fmt"
	"math"

	"github.com/taigrr/bedeck/pkg/math3d"
)

// Primitive mesh names understood by NewPrimitive.
const (
	PrimitiveCube     = "cube"
	PrimitiveSphere   = "sphere"
	PrimitiveCone     = "cone"
	PrimitiveCylinder = "cylinder"
)

// Tessellation used for the round primitives.
const (
	primitiveSegments = 16
	primitiveRings    = 10
)

// IsPrimitive reports whether name is a built-in primitive.
func IsPrimitive(name string) bool {
	switch name {
	case PrimitiveCube, PrimitiveSphere, PrimitiveCone, PrimitiveCylinder:
		return true
	}
	return false
}

// NewPrimitive builds the named primitive. Every primitive fits the unit
// cube centred on the origin.
func NewPrimitive(name string) (*Mesh, error) {
	switch name {
	case PrimitiveCube:
		return NewCube(), nil
	case PrimitiveSphere:
		return NewSphere(primitiveSegments, primitiveRings), nil
	case PrimitiveCone:
		return NewCone(primitiveSegments), nil
	case PrimitiveCylinder:
		return NewCylinder(primitiveSegments), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMesh, name)
	}
}

// NewCube builds a unit cube with one quad per side so every face keeps a
// hard normal.
func NewCube() *Mesh {
	m := NewMesh(PrimitiveCube)
	sides := []struct {
		normal, u, v math3d.Vec3
	}{
		{math3d.V3(1, 0, 0), math3d.V3(0, 0, -1), math3d.V3(0, 1, 0)},
		{math3d.V3(-1, 0, 0), math3d.V3(0, 0, 1), math3d.V3(0, 1, 0)},
		{math3d.V3(0, 1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, -1)},
		{math3d.V3(0, -1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, 1)},
		{math3d.V3(0, 0, 1), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)},
		{math3d.V3(0, 0, -1), math3d.V3(-1, 0, 0), math3d.V3(0, 1, 0)},
	}
	for _, s := range sides {
		center := s.normal.Scale(0.5)
		corner := func(du, dv float64) math3d.Vec3 {
			return center.Add(s.u.Scale(du)).Add(s.v.Scale(dv))
		}
		a := m.AddVertex(corner(-0.5, -0.5), s.normal, math3d.V2(0, 0))
		b := m.AddVertex(corner(0.5, -0.5), s.normal, math3d.V2(1, 0))
		c := m.AddVertex(corner(0.5, 0.5), s.normal, math3d.V2(1, 1))
		d := m.AddVertex(corner(-0.5, 0.5), s.normal, math3d.V2(0, 1))
		m.AddTriangle(a, b, c)
		m.AddTriangle(a, c, d)
	}
	m.CalculateBounds()
	return m
}

// NewSphere builds a UV sphere of diameter 1.
func NewSphere(segments, rings int) *Mesh {
	segments = max(segments, 3)
	rings = max(rings, 2)

	m := NewMesh(PrimitiveSphere)
	for r := 0; r <= rings; r++ {
		v := float64(r) / float64(rings)
		phi := v * math.Pi
		for s := 0; s <= segments; s++ {
			u := float64(s) / float64(segments)
			theta := u * 2 * math.Pi
			n := math3d.V3(math.Sin(phi)*math.Cos(theta), math.Cos(phi), -math.Sin(phi)*math.Sin(theta))
			m.AddVertex(n.Scale(0.5), n, math3d.V2(u, 1-v))
		}
	}

	stride := segments + 1
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			top := r*stride + s
			bottom := top + stride
			m.AddTriangle(top, bottom, bottom+1)
			m.AddTriangle(top, bottom+1, top+1)
		}
	}
	m.CalculateBounds()
	return m
}

// NewCone builds a cone with its apex at +Y and a closed base at -Y.
func NewCone(segments int) *Mesh {
	segments = max(segments, 3)

	m := NewMesh(PrimitiveCone)
	// The side normal leans up by the slope of a cone of height 1 and radius 0.5.
	slope := math.Atan2(0.5, 1)
	for s := 0; s < segments; s++ {
		t0 := 2 * math.Pi * float64(s) / float64(segments)
		t1 := 2 * math.Pi * float64(s+1) / float64(segments)
		mid := (t0 + t1) / 2

		a := m.AddVertex(ringPoint(t0, 0.5, -0.5), sideNormal(t0, slope), math3d.V2(float64(s)/float64(segments), 0))
		b := m.AddVertex(ringPoint(t1, 0.5, -0.5), sideNormal(t1, slope), math3d.V2(float64(s+1)/float64(segments), 0))
		apex := m.AddVertex(math3d.V3(0, 0.5, 0), sideNormal(mid, slope), math3d.V2((float64(s)+0.5)/float64(segments), 1))
		m.AddTriangle(a, b, apex)
	}
	addCap(m, segments, -0.5, math3d.V3(0, -1, 0))
	m.CalculateBounds()
	return m
}

// NewCylinder builds a closed cylinder of height 1 and diameter 1.
func NewCylinder(segments int) *Mesh {
	segments = max(segments, 3)

	m := NewMesh(PrimitiveCylinder)
	for s := 0; s < segments; s++ {
		t0 := 2 * math.Pi * float64(s) / float64(segments)
		t1 := 2 * math.Pi * float64(s+1) / float64(segments)
		u0 := float64(s) / float64(segments)
		u1 := float64(s+1) / float64(segments)

		a := m.AddVertex(ringPoint(t0, 0.5, -0.5), sideNormal(t0, 0), math3d.V2(u0, 0))
		b := m.AddVertex(ringPoint(t1, 0.5, -0.5), sideNormal(t1, 0), math3d.V2(u1, 0))
		c := m.AddVertex(ringPoint(t1, 0.5, 0.5), sideNormal(t1, 0), math3d.V2(u1, 1))
		d := m.AddVertex(ringPoint(t0, 0.5, 0.5), sideNormal(t0, 0), math3d.V2(u0, 1))
		m.AddTriangle(a, b, c)
		m.AddTriangle(a, c, d)
	}
	addCap(m, segments, -0.5, math3d.V3(0, -1, 0))
	addCap(m, segments, 0.5, math3d.V3(0, 1, 0))
	m.CalculateBounds()
	return m
}

// ringPoint is the point at angle theta on the circle of the given radius at
// height y. Angles increase counter-clockwise seen from +Y.
func ringPoint(theta, radius, y float64) math3d.Vec3 {
	return math3d.V3(radius*math.Cos(theta), y, -radius*math.Sin(theta))
}

func sideNormal(theta, slope float64) math3d.Vec3 {
	c := math.Cos(slope)
	return math3d.V3(c*math.Cos(theta), math.Sin(slope), -c*math.Sin(theta))
}

// addCap closes a ring at height y with a fan facing normal.
func addCap(m *Mesh, segments int, y float64, normal math3d.Vec3) {
	center := m.AddVertex(math3d.V3(0, y, 0), normal, math3d.V2(0.5, 0.5))
	for s := 0; s < segments; s++ {
		t0 := 2 * math.Pi * float64(s) / float64(segments)
		t1 := 2 * math.Pi * float64(s+1) / float64(segments)
		p0 := ringPoint(t0, 0.5, y)
		p1 := ringPoint(t1, 0.5, y)
		a := m.AddVertex(p0, normal, math3d.V2(0.5+p0.X, 0.5-p0.Z))
		b := m.AddVertex(p1, normal, math3d.V2(0.5+p1.X, 0.5-p1.Z))
		if normal.Y > 0 {
			m.AddTriangle(center, a, b)
		} else {
			m.AddTriangle(center, b, a)
		}
	}
}
