package geometry

import (
	"math"

	"github.com/pkg/errors"

	"github.com/df07/go-raykernel/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Light    *core.Light // nil for a sphere that does not emit
	Material core.Material
}

// NewSphere creates a new sphere. The center must be finite, the radius
// finite and non-negative, and the material non-nil.
func NewSphere(center core.Vec3, radius float64, light *core.Light, material core.Material) (*Sphere, error) {
	if !center.IsFinite() {
		return nil, errors.Wrapf(core.ErrInvalidArgument, "sphere center %v is not finite", center)
	}
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius < 0 {
		return nil, errors.Wrapf(core.ErrInvalidArgument, "sphere radius %v", radius)
	}
	if material == nil {
		return nil, errors.Wrap(core.ErrInvalidArgument, "sphere material is nil")
	}

	return &Sphere{
		Center:   center,
		Radius:   radius,
		Light:    light,
		Material: material,
	}, nil
}

// Hit tests if a ray intersects with the sphere. Roots below core.Epsilon are
// skipped so a ray leaving the surface does not hit it again.
func (s *Sphere) Hit(ray core.Ray, interval core.Interval) (*core.HitRecord, bool) {
	// Vector from sphere center to ray origin
	co := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2bt + c = 0
	a := ray.Direction.LengthSquared()
	if a == 0 {
		panic(&core.DegenerateGeometryError{Op: "sphere hit", Value: ray.Direction})
	}
	b := co.Dot(ray.Direction)
	c := co.LengthSquared() - s.Radius*s.Radius

	// A zero-radius sphere has no surface to hit
	discriminant := b*b - a*c
	if discriminant < 0 || s.Radius == 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-b - sqrtD) / a
	if !acceptRoot(root, interval) {
		root = (-b + sqrtD) / a
		if !acceptRoot(root, interval) {
			return nil, false
		}
	}

	point := ray.At(root)
	return &core.HitRecord{
		Point:    point,
		Normal:   point.Subtract(s.Center).Unit(),
		Light:    s.Light,
		Dist:     root,
		Material: s.Material,
	}, true
}

func acceptRoot(t float64, interval core.Interval) bool {
	return t >= core.Epsilon && interval.Surrounds(t)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABBFromPoints(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}
