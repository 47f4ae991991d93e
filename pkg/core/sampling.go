package core

import (
	"math"
)

// Generator is a source of uniform random numbers in [0, 1).
// Both *math/rand.Rand and *math/rand/v2.Rand satisfy it. Generators are
// owned by the caller: one per goroutine, never shared.
type Generator interface {
	Float64() float64
}

// RandUnitVec3 returns a direction uniformly distributed on the unit sphere.
// The cosine of the polar angle is drawn uniformly from [-1, 1] and the
// azimuth uniformly from [0, 2π).
func RandUnitVec3(g Generator) Vec3 {
	cosTheta := 2*g.Float64() - 1
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * g.Float64()
	sinPhi, cosPhi := math.Sincos(phi)
	return NewVec3(sinTheta*cosPhi, sinTheta*sinPhi, cosTheta)
}

// RandVec3OnUnitHemisphere returns a direction uniformly distributed on the
// hemisphere around normal, i.e. with a non-negative dot product with normal
func RandVec3OnUnitHemisphere(g Generator, normal Vec3) Vec3 {
	v := RandUnitVec3(g)
	if v.Dot(normal) < 0 {
		return v.Negate()
	}
	return v
}
