package core

import (
	"math"
)

// Vec3 represents a 3D vector, used for positions, directions and colors
type Vec3 struct {
	X, Y, Z float64
}

// Color is a Vec3 holding linear RGB components
type Color = Vec3

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Divide returns the vector divided by a scalar
func (v Vec3) Divide(scalar float64) Vec3 {
	return Vec3{v.X / scalar, v.Y / scalar, v.Z / scalar}
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{
		X: -v.X,
		Y: -v.Y,
		Z: -v.Z,
	}
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Equals reports exact component-wise equality
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// IsFinite reports whether every component is neither NaN nor infinite
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// TryUnit returns a unit vector in the same direction, or an error when the
// vector has zero or non-finite length
func (v Vec3) TryUnit() (Vec3, error) {
	length := v.Length()
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return Vec3{}, &DegenerateGeometryError{Op: "unit", Value: v}
	}
	return v.Divide(length), nil
}

// Unit returns a unit vector in the same direction.
// It panics with a *DegenerateGeometryError on a zero-length vector.
func (v Vec3) Unit() Vec3 {
	u, err := v.TryUnit()
	if err != nil {
		panic(err)
	}
	return u
}

// Rotate rotates the vector about axis by angle radians using Rodrigues'
// formula, counter-clockwise when the axis points toward the viewer. The axis must
// be unit length.
func (v Vec3) Rotate(axis Vec3, angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	return v.Multiply(cos).
		Add(axis.Multiply((1 - cos) * v.Dot(axis))).
		Add(axis.Cross(v).Multiply(sin))
}

// RotateAround rotates the point about the line through origin along axis
func (v Vec3) RotateAround(origin, axis Vec3, angle float64) Vec3 {
	return v.Subtract(origin).Rotate(axis, angle).Add(origin)
}

// component returns the coordinate along axis 0=X, 1=Y, 2=Z
func (v Vec3) component(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
