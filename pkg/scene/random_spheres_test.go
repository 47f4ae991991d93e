package scene

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/geometry"
)

func TestSphereFieldConfig_Validate(t *testing.T) {
	valid := DefaultSphereFieldConfig()
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(*SphereFieldConfig)
	}{
		{"zero count", func(c *SphereFieldConfig) { c.Count = 0 }},
		{"negative extent", func(c *SphereFieldConfig) { c.Extent = -1 }},
		{"NaN extent", func(c *SphereFieldConfig) { c.Extent = math.NaN() }},
		{"infinite extent", func(c *SphereFieldConfig) { c.Extent = math.Inf(1) }},
		{"negative radius", func(c *SphereFieldConfig) { c.MinRadius = -1 }},
		{"inverted radius range", func(c *SphereFieldConfig) { c.MinRadius, c.MaxRadius = 2, 1 }},
		{"emissive fraction above one", func(c *SphereFieldConfig) { c.EmissiveFraction = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSphereFieldConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), core.ErrInvalidArgument)

			objects, err := RandomSpheres(cfg, rand.New(rand.NewPCG(1, 1)))
			assert.Error(t, err)
			assert.Nil(t, objects)
		})
	}
}

func TestRandomSpheres(t *testing.T) {
	cfg := SphereFieldConfig{Count: 500, Extent: 10, MinRadius: 0.5, MaxRadius: 1, EmissiveFraction: 0.25}
	objects, err := RandomSpheres(cfg, rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)
	require.Len(t, objects, cfg.Count)

	bounds := core.NewAABBFromPoints(core.NewVec3(-11, -11, -11), core.NewVec3(11, 11, 11))
	var light *core.Light
	var material core.Material
	emissive := 0
	for _, object := range objects {
		sphere, ok := object.(*geometry.Sphere)
		require.True(t, ok)

		assert.GreaterOrEqual(t, sphere.Radius, cfg.MinRadius)
		assert.LessOrEqual(t, sphere.Radius, cfg.MaxRadius)
		assert.True(t, bounds.Contains(sphere.BoundingBox()))

		// Materials and lights are shared, not copied
		if material == nil {
			material = sphere.Material
		}
		assert.Same(t, material, sphere.Material)
		if sphere.Light != nil {
			if light == nil {
				light = sphere.Light
			}
			assert.Same(t, light, sphere.Light)
			emissive++
		}
	}
	assert.InDelta(t, 125, emissive, 40)
}

func TestRandomSpheres_Deterministic(t *testing.T) {
	cfg := DefaultSphereFieldConfig()
	cfg.Count = 50

	first, err := RandomSpheres(cfg, rand.New(rand.NewPCG(9, 9)))
	require.NoError(t, err)
	second, err := RandomSpheres(cfg, rand.New(rand.NewPCG(9, 9)))
	require.NoError(t, err)

	for i := range first {
		a, b := first[i].(*geometry.Sphere), second[i].(*geometry.Sphere)
		assert.Equal(t, a.Center, b.Center)
		assert.Equal(t, a.Radius, b.Radius)
		assert.Equal(t, a.Light != nil, b.Light != nil)
	}
}
