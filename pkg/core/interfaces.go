package core

// Epsilon is the self-intersection guard: hits closer to the ray origin than
// this are ignored so a ray leaving a surface does not hit it again
const Epsilon = 1e-8

// Light is the emission shared by every primitive that glows with it
type Light struct {
	Color      Color
	Brightness float64
}

// Material describes how a surface redirects light
type Material interface {
	// Possibility returns the probability in [0, 1] that the material sends
	// light along real when the ideal outgoing direction is theoretic
	Possibility(theoretic, real Vec3) float64

	// Generate samples one outgoing direction given the surface normal and
	// the ideal outgoing direction. Deterministic materials ignore g.
	Generate(normal, theoretic Vec3, g Generator) Vec3
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point    Vec3     // Point of intersection
	Normal   Vec3     // Outward unit surface normal
	Light    *Light   // Emission at the point, nil for none
	Dist     float64  // Parameter t along the ray
	Material Material // Material of the hit object
}

// Hittable is implemented by primitives and acceleration structures
type Hittable interface {
	// Hit returns the nearest intersection with t strictly inside interval,
	// or false when there is none
	Hit(ray Ray, interval Interval) (*HitRecord, bool)

	// BoundingBox returns the tight box around the object
	BoundingBox() AABB
}
