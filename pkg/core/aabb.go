package core

import "math"

// AABB represents an axis-aligned bounding box as one interval per axis
type AABB struct {
	X, Y, Z Interval
}

// NewAABB creates a new AABB from per-axis intervals
func NewAABB(x, y, z Interval) AABB {
	return AABB{X: x, Y: y, Z: z}
}

// NewAABBFromPoints creates the AABB spanned by two opposite corners, given in
// any order
func NewAABBFromPoints(a, b Vec3) AABB {
	return AABB{
		X: Interval{Min: math.Min(a.X, b.X), Max: math.Max(a.X, b.X)},
		Y: Interval{Min: math.Min(a.Y, b.Y), Max: math.Max(a.Y, b.Y)},
		Z: Interval{Min: math.Min(a.Z, b.Z), Max: math.Max(a.Z, b.Z)},
	}
}

// NewAABBUnion creates the smallest AABB enclosing both a and b
func NewAABBUnion(a, b AABB) AABB {
	a.Unite(b)
	return a
}

// EmptyAABB returns the box that contains nothing, the identity for Unite
func EmptyAABB() AABB {
	return AABB{X: EmptyInterval, Y: EmptyInterval, Z: EmptyInterval}
}

// UniteAABBs returns the smallest AABB enclosing all boxes
func UniteAABBs(boxes ...AABB) AABB {
	result := EmptyAABB()
	for _, box := range boxes {
		result.Unite(box)
	}
	return result
}

// Unite grows the box to enclose other as well
func (aabb *AABB) Unite(other AABB) {
	aabb.X.Unite(other.X)
	aabb.Y.Unite(other.Y)
	aabb.Z.Unite(other.Z)
}

// Axis returns the interval along axis 0=X, 1=Y, 2=Z
func (aabb AABB) Axis(axis int) Interval {
	switch axis {
	case 0:
		return aabb.X
	case 1:
		return aabb.Y
	default:
		return aabb.Z
	}
}

// IsEmpty reports whether the box is empty along any axis
func (aabb AABB) IsEmpty() bool {
	return aabb.X.IsEmpty() || aabb.Y.IsEmpty() || aabb.Z.IsEmpty()
}

// Contains reports whether other lies entirely inside this box. The empty box
// is contained in every box.
func (aabb AABB) Contains(other AABB) bool {
	if other.IsEmpty() {
		return true
	}
	return aabb.X.Min <= other.X.Min && other.X.Max <= aabb.X.Max &&
		aabb.Y.Min <= other.Y.Min && other.Y.Max <= aabb.Y.Max &&
		aabb.Z.Min <= other.Z.Min && other.Z.Max <= aabb.Z.Max
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return NewVec3(
		(aabb.X.Min+aabb.X.Max)*0.5,
		(aabb.Y.Min+aabb.Y.Max)*0.5,
		(aabb.Z.Min+aabb.Z.Max)*0.5,
	)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
// Ties go to the lower axis.
func (aabb AABB) LongestAxis() int {
	x, y, z := aabb.X.Length(), aabb.Y.Length(), aabb.Z.Length()
	if x >= y && x >= z {
		return 0
	}
	if y >= z {
		return 1
	}
	return 2
}

// Hit tests if a ray intersects with this AABB within interval using the slab
// method. Axes are tested in order and the test stops at the first axis that
// empties the interval. A zero direction component divides to ±Inf, which
// accepts or rejects the whole slab depending on the origin.
func (aabb AABB) Hit(ray Ray, interval Interval) bool {
	for axis := 0; axis < 3; axis++ {
		slab := aabb.Axis(axis)
		origin := ray.Origin.component(axis)
		invDirection := 1.0 / ray.Direction.component(axis)

		t0 := (slab.Min - origin) * invDirection
		t1 := (slab.Max - origin) * invDirection
		if invDirection < 0 {
			t0, t1 = t1, t0
		}

		interval.Intersect(Interval{Min: t0, Max: t1})
		if interval.IsEmpty() {
			return false
		}
	}

	return true
}
