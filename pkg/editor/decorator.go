package editor

import (
	"github.com/taigrr/bedeck/pkg/geom"
	"github.com/taigrr/bedeck/pkg/math3d"
)

// Decorator is a placed decoration, or the shape of the preview before it is placed.
//
// Rotation holds three angles that are applied as rotation about Z by
// Rotation.X, then about X by Rotation.Z, then about Y by Rotation.Y.
type Decorator struct {
	Kind     Kind
	Mesh     string
	Texture  string
	Position math3d.Vec3
	Rotation math3d.Vec3
	Scale    math3d.Vec3
	Color    math3d.Vec3
	Bounds   geom.AABB
}

// IsModel reports whether d draws a mesh rather than the cube primitive.
func (d Decorator) IsModel() bool {
	return d.Kind == KindModel
}

// Transformer receives the model transform of a decorator as a sequence of calls.
type Transformer interface {
	Translate(v math3d.Vec3)
	Rotate(angle float64, axis math3d.Vec3)
	Scale(v math3d.Vec3)
}

// ApplyTransform issues translate, the three rotations and scale to t.
func (d Decorator) ApplyTransform(t Transformer) {
	t.Translate(d.Position)
	t.Rotate(d.Rotation.X, math3d.V3(0, 0, 1))
	t.Rotate(d.Rotation.Z, math3d.V3(1, 0, 0))
	t.Rotate(d.Rotation.Y, math3d.V3(0, 1, 0))
	t.Scale(d.Scale)
}

// Matrix returns the model matrix ApplyTransform describes.
func (d Decorator) Matrix() math3d.Mat4 {
	var m matrixBuilder
	m.m = math3d.Identity()
	d.ApplyTransform(&m)
	return m.m
}

type matrixBuilder struct {
	m math3d.Mat4
}

func (b *matrixBuilder) Translate(v math3d.Vec3) { b.m = b.m.Mul(math3d.Translate(v)) }

func (b *matrixBuilder) Rotate(angle float64, axis math3d.Vec3) {
	b.m = b.m.Mul(math3d.Rotate(axis, angle))
}

func (b *matrixBuilder) Scale(v math3d.Vec3) { b.m = b.m.Mul(math3d.Scale(v)) }
