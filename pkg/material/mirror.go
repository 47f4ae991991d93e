package material

import (
	"github.com/df07/go-raykernel/pkg/core"
)

// Mirror is a perfect specular reflector. Its distribution is a Dirac delta:
// all light leaves along the ideal reflection, so Possibility is exactly 1
// there and 0 everywhere else. Estimators must treat a possibility of 1 as a
// delta rather than divide by it as a density.
type Mirror struct{}

// NewMirror creates a new mirror material
func NewMirror() *Mirror {
	return &Mirror{}
}

// Possibility returns 1 if real is exactly theoretic, otherwise 0
func (m *Mirror) Possibility(theoretic, real core.Vec3) float64 {
	if real.Equals(theoretic) {
		return 1
	}
	return 0
}

// Generate returns theoretic unchanged
func (m *Mirror) Generate(normal, theoretic core.Vec3, g core.Generator) core.Vec3 {
	return theoretic
}

// Reflect calculates the reflection of a vector v off a surface with normal n.
// It is the theoretic direction callers pass to Possibility and Generate.
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
