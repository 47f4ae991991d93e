package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/material"
)

var forward = core.NewInterval(core.Epsilon, math.Inf(1))

func mustSphere(t testing.TB, center core.Vec3, radius float64, light *core.Light) *Sphere {
	t.Helper()
	sphere, err := NewSphere(center, radius, light, material.NewMirror())
	require.NoError(t, err)
	return sphere
}

func TestSphere_Hit_AlongZ(t *testing.T) {
	light := &core.Light{Color: core.NewVec3(1, 1, 1), Brightness: 2}
	sphere := mustSphere(t, core.Vec3{}, 1, light)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))

	hit, isHit := sphere.Hit(ray, forward)
	require.True(t, isHit)
	assert.Equal(t, 4.0, hit.Dist)
	assert.Equal(t, core.NewVec3(0, 0, -1), hit.Point)
	assert.Equal(t, core.NewVec3(0, 0, -1), hit.Normal)
	assert.Same(t, light, hit.Light)
	assert.Same(t, sphere.Material, hit.Material)
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := mustSphere(t, core.Vec3{}, 1, nil)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, forward)
	assert.False(t, isHit)
	assert.Nil(t, hit)
}

func TestSphere_Hit_Cases(t *testing.T) {
	sphere := mustSphere(t, core.Vec3{}, 1, nil)

	tests := []struct {
		name           string
		ray            core.Ray
		interval       core.Interval
		expectedHit    bool
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{
			name:           "tangent graze",
			ray:            core.NewRay(core.NewVec3(1, 0, -5), core.NewVec3(0, 0, 1)),
			interval:       forward,
			expectedHit:    true,
			expectedT:      5,
			expectedNormal: core.NewVec3(1, 0, 0),
		},
		{
			name:           "origin inside hits the far side",
			ray:            core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)),
			interval:       forward,
			expectedHit:    true,
			expectedT:      1,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "origin on surface skips the self hit",
			ray:            core.NewRay(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1)),
			interval:       forward,
			expectedHit:    true,
			expectedT:      2,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:        "leaving the surface outward",
			ray:         core.NewRay(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, -1)),
			interval:    forward,
			expectedHit: false,
		},
		{
			name:           "near root outside interval uses far root",
			ray:            core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)),
			interval:       core.NewInterval(4.5, math.Inf(1)),
			expectedHit:    true,
			expectedT:      6,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:        "both roots beyond interval",
			ray:         core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)),
			interval:    core.NewInterval(core.Epsilon, 3),
			expectedHit: false,
		},
		{
			name:        "root on the interval bound is excluded",
			ray:         core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)),
			interval:    core.NewInterval(core.Epsilon, 4),
			expectedHit: false,
		},
		{
			name:        "sphere behind the ray",
			ray:         core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1)),
			interval:    forward,
			expectedHit: false,
		},
		{
			name:           "non-unit direction",
			ray:            core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 2)),
			interval:       forward,
			expectedHit:    true,
			expectedT:      2,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(tt.ray, tt.interval)
			require.Equal(t, tt.expectedHit, isHit)
			if !tt.expectedHit {
				return
			}

			assert.InDelta(t, tt.expectedT, hit.Dist, 1e-9)
			assert.InDelta(t, tt.expectedNormal.X, hit.Normal.X, 1e-9)
			assert.InDelta(t, tt.expectedNormal.Y, hit.Normal.Y, 1e-9)
			assert.InDelta(t, tt.expectedNormal.Z, hit.Normal.Z, 1e-9)
			assert.InDelta(t, 1, hit.Normal.Length(), 1e-9)

			expectedPoint := tt.ray.At(tt.expectedT)
			assert.InDelta(t, 0, hit.Point.Subtract(expectedPoint).Length(), 1e-9)
		})
	}
}

func TestSphere_Hit_ZeroRadiusNeverHits(t *testing.T) {
	sphere := mustSphere(t, core.Vec3{}, 0, nil)
	_, isHit := sphere.Hit(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)), forward)
	assert.False(t, isHit)
}

func TestSphere_Hit_ZeroDirectionPanics(t *testing.T) {
	sphere := mustSphere(t, core.Vec3{}, 1, nil)
	assert.PanicsWithError(t, (&core.DegenerateGeometryError{Op: "sphere hit"}).Error(), func() {
		sphere.Hit(core.NewRay(core.NewVec3(0, 0, -5), core.Vec3{}), forward)
	})
}

func TestBVH_Hit_ZeroDirectionPanics(t *testing.T) {
	a := mustSphere(t, core.NewVec3(0, 0, 0), 1, nil)
	b := mustSphere(t, core.NewVec3(4, 0, 0), 1, nil)
	bvh, err := NewBVH([]core.Hittable{a, b})
	require.NoError(t, err)
	list := mustList(t, a, b)

	// The origin lies outside the root box, so no primitive is ever reached
	ray := core.NewRay(core.NewVec3(10, 0, 0), core.Vec3{})
	expected := (&core.DegenerateGeometryError{Op: "bvh hit"}).Error()
	assert.PanicsWithError(t, expected, func() { bvh.Hit(ray, forward) })
	assert.Panics(t, func() { list.Hit(ray, forward) })
}

func TestNewSphere_RejectsInvalidInput(t *testing.T) {
	mirror := material.NewMirror()
	tests := []struct {
		name     string
		center   core.Vec3
		radius   float64
		material core.Material
	}{
		{"negative radius", core.Vec3{}, -1, mirror},
		{"NaN radius", core.Vec3{}, math.NaN(), mirror},
		{"infinite radius", core.Vec3{}, math.Inf(1), mirror},
		{"infinite center", core.NewVec3(math.Inf(-1), 0, 0), 1, mirror},
		{"NaN center", core.NewVec3(0, math.NaN(), 0), 1, mirror},
		{"nil material", core.Vec3{}, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere, err := NewSphere(tt.center, tt.radius, nil, tt.material)
			assert.ErrorIs(t, err, core.ErrInvalidArgument)
			assert.Nil(t, sphere)
		})
	}
}

func TestSphere_BoundingBox(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(1, -2, 3), 0.5, nil)
	expected := core.NewAABB(
		core.NewInterval(0.5, 1.5),
		core.NewInterval(-2.5, -1.5),
		core.NewInterval(2.5, 3.5),
	)
	assert.Equal(t, expected, sphere.BoundingBox())
}
