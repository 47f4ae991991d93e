package core

import "math"

// Interval represents the closed range [Min, Max] of float64 values
type Interval struct {
	Min, Max float64
}

var (
	// EmptyInterval contains nothing and is the identity for Unite
	EmptyInterval = Interval{Min: math.Inf(1), Max: math.Inf(-1)}

	// UniverseInterval contains every value and is the identity for Intersect
	UniverseInterval = Interval{Min: math.Inf(-1), Max: math.Inf(1)}
)

// NewInterval creates a new interval
func NewInterval(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}

// Clamp returns Min if a <= Min, Max if a >= Max, otherwise a
func (i Interval) Clamp(a float64) float64 {
	if a <= i.Min {
		return i.Min
	}
	if a >= i.Max {
		return i.Max
	}
	return a
}

// Contains reports whether Min <= a <= Max
func (i Interval) Contains(a float64) bool {
	return i.Min <= a && a <= i.Max
}

// Surrounds reports whether Min < a < Max
func (i Interval) Surrounds(a float64) bool {
	return i.Min < a && a < i.Max
}

// IsEmpty reports whether Min > Max
func (i Interval) IsEmpty() bool {
	return i.Min > i.Max
}

// Length returns Max - Min, negative for an empty interval
func (i Interval) Length() float64 {
	return i.Max - i.Min
}

// Intersect narrows the interval to its overlap with other.
// A NaN bound in other never replaces a bound of i.
func (i *Interval) Intersect(other Interval) {
	if other.Min > i.Min {
		i.Min = other.Min
	}
	if other.Max < i.Max {
		i.Max = other.Max
	}
}

// Unite widens the interval to the envelope of itself and other. Disjoint
// ranges produce the envelope including the gap between them.
func (i *Interval) Unite(other Interval) {
	if other.Min < i.Min {
		i.Min = other.Min
	}
	if other.Max > i.Max {
		i.Max = other.Max
	}
}

// UniteIntervals returns the envelope of a and b
func UniteIntervals(a, b Interval) Interval {
	a.Unite(b)
	return a
}
