package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/bedeck/pkg/math3d"
)

var unitBox = NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))

func TestIntersectBoxAlongX(t *testing.T) {
	ray := Ray{Origin: math3d.V3(-5, 0, 0), Dir: math3d.V3(1, 0, 0)}

	entry, exit := DefaultTolerances.BoxSpan(ray, unitBox)
	assert.InDelta(t, 4.0, entry.T, 1e-12)
	assert.InDelta(t, 6.0, exit.T, 1e-12)

	hit := IntersectBox(ray, unitBox)
	require.True(t, hit.Hit)
	assert.InDelta(t, 4.0, hit.T, 1e-12)
	assert.Equal(t, math3d.V3(-1, 0, 0), hit.Normal)
	assert.True(t, hit.Point.ApproxEqual(math3d.V3(-1, 0, 0), 1e-12))
}

func TestIntersectBoxFromInside(t *testing.T) {
	tests := []struct {
		name string
		dir  math3d.Vec3
	}{
		{"plus x", math3d.V3(1, 0, 0)},
		{"minus y", math3d.V3(0, -1, 0)},
		{"diagonal", math3d.V3(1, 1, 1).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := Ray{Origin: math3d.V3(0, 0, 0), Dir: tt.dir}
			entry, exit := DefaultTolerances.BoxSpan(ray, unitBox)
			require.Less(t, entry.T, exit.T)

			hit := IntersectBox(ray, unitBox)
			assert.True(t, hit.Hit)
			assert.Less(t, hit.T, 0.0)
		})
	}
}

func TestIntersectBoxMiss(t *testing.T) {
	ray := Ray{Origin: math3d.V3(-5, 5, 0), Dir: math3d.V3(1, 0.1, 0)}

	entry, exit := DefaultTolerances.BoxSpan(ray, unitBox)
	assert.InDelta(t, 4.0, entry.T, 1e-9)
	assert.InDelta(t, -40.0, exit.T, 1e-9)
	assert.False(t, IntersectBox(ray, unitBox).Hit)
}

func TestIntersectBoxHitIffEntryBeforeExit(t *testing.T) {
	rays := []Ray{
		{Origin: math3d.V3(-5, 0.2, 0.3), Dir: math3d.V3(1, 0.05, -0.02)},
		{Origin: math3d.V3(3, 3, 3), Dir: math3d.V3(-1, -1, -1)},
		{Origin: math3d.V3(3, 3, 3), Dir: math3d.V3(1, 1, 1)},
		{Origin: math3d.V3(0, 4, 0.5), Dir: math3d.V3(0.3, -1, 0.1)},
		{Origin: math3d.V3(-2, 7, 1), Dir: math3d.V3(0.9, -0.2, 0.4)},
	}

	for _, ray := range rays {
		entry, exit := DefaultTolerances.BoxSpan(ray, unitBox)
		assert.Equal(t, entry.T < exit.T, IntersectBox(ray, unitBox).Hit, "ray %+v", ray)
	}
}

func TestIntersectBoxTieGoesToLaterAxis(t *testing.T) {
	// Enters through the bottom and left faces at the same t.
	ray := Ray{Origin: math3d.V3(-5, -5, 0), Dir: math3d.V3(1, 1, 0)}

	hit := IntersectBox(ray, unitBox)
	require.True(t, hit.Hit)
	assert.InDelta(t, 4.0, hit.T, 1e-12)
	assert.Equal(t, math3d.V3(-1, 0, 0), hit.Normal)
}

func TestIntersectPlane(t *testing.T) {
	up := math3d.V3(0, 1, 0)

	tests := []struct {
		name    string
		ray     Ray
		wantHit bool
		wantT   float64
	}{
		{"straight down", Ray{Origin: math3d.V3(0, 5, 0), Dir: math3d.V3(0, -1, 0)}, true, 5},
		{"from below", Ray{Origin: math3d.V3(1, -2, 1), Dir: math3d.V3(0, 1, 0)}, true, 2},
		{"behind origin", Ray{Origin: math3d.V3(0, 5, 0), Dir: math3d.V3(0, 1, 0)}, true, -5},
		{"parallel", Ray{Origin: math3d.V3(0, 5, 0), Dir: math3d.V3(1, 0, 0)}, false, 0},
		{"parallel in plane", Ray{Origin: math3d.V3(0, 0, 0), Dir: math3d.V3(0, 0, 1)}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := IntersectPlane(tt.ray, math3d.V3(0, 0, 0), up)
			require.Equal(t, tt.wantHit, hit.Hit)
			if !tt.wantHit {
				assert.Equal(t, math3d.V3(5, 5, 5), hit.Point)
				return
			}
			assert.InDelta(t, tt.wantT, hit.T, 1e-12)
			assert.Equal(t, up, hit.Normal)
		})
	}
}

func TestIntersectPlaneParallelTolerance(t *testing.T) {
	ray := Ray{Origin: math3d.V3(0, 5, 0), Dir: math3d.V3(1, -1e-4, 0)}
	point, normal := math3d.V3(0, 0, 0), math3d.V3(0, 1, 0)

	assert.True(t, IntersectPlane(ray, point, normal).Hit)

	loose := Tolerances{Parallel: 1e-3, Front: 1e-5}
	assert.False(t, loose.IntersectPlane(ray, point, normal).Hit)
}

func TestIntersectSphere(t *testing.T) {
	center := math3d.V3(0, 0, -5)

	tests := []struct {
		name string
		ray  Ray
		want bool
	}{
		{"through center", Ray{Origin: math3d.V3(0, 0, 0), Dir: math3d.V3(0, 0, -1)}, true},
		{"unnormalized dir", Ray{Origin: math3d.V3(0, 0, 0), Dir: math3d.V3(0, 0, -10)}, true},
		{"grazing", Ray{Origin: math3d.V3(1, 0, 0), Dir: math3d.V3(0, 0, -1)}, true},
		{"wide", Ray{Origin: math3d.V3(1.5, 0, 0), Dir: math3d.V3(0, 0, -1)}, false},
		{"behind", Ray{Origin: math3d.V3(0, 0, 0), Dir: math3d.V3(0, 0, 1)}, false},
		{"origin inside", Ray{Origin: math3d.V3(0, 0, -5.5), Dir: math3d.V3(0, 0, 1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntersectSphere(tt.ray, center, 1))
		})
	}
}

func TestHitCloser(t *testing.T) {
	near := Hit{Hit: true, T: 2}
	far := Hit{Hit: true, T: 5}
	behind := Hit{Hit: true, T: -1}

	assert.True(t, near.Closer(far))
	assert.False(t, far.Closer(near))
	assert.True(t, far.Closer(Miss()))
	assert.False(t, behind.Closer(Miss()))
	assert.False(t, Miss().Closer(far))
	assert.True(t, math.IsInf(Miss().T, 1))
}

func TestBoxAround(t *testing.T) {
	box := BoxAround(math3d.V3(1, 2, 3), math3d.Splat(0.5))
	assert.Equal(t, math3d.V3(0.75, 1.75, 2.75), box.Min)
	assert.Equal(t, math3d.V3(1.25, 2.25, 3.25), box.Max)
	assert.True(t, box.ContainsPoint(math3d.V3(1, 2, 3)))
	assert.Equal(t, math3d.V3(1, 2, 3), box.Center())
}

func TestAABBTransform(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))
	moved := box.Transform(math3d.Translate(math3d.V3(10, 0, 0)).Mul(math3d.Scale(math3d.Splat(2))))

	assert.True(t, moved.Min.ApproxEqual(math3d.V3(8, -2, -2), 1e-12))
	assert.True(t, moved.Max.ApproxEqual(math3d.V3(12, 2, 2), 1e-12))
}

func BenchmarkIntersectBox(b *testing.B) {
	ray := Ray{Origin: math3d.V3(-5, 0.2, 0.1), Dir: math3d.V3(1, 0.01, 0.02)}
	for b.Loop() {
		_ = IntersectBox(ray, unitBox)
	}
}
