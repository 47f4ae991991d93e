package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a primitive or acceleration
	// structure is constructed from unusable input
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDegenerateGeometry marks a violated geometric precondition such as
	// normalizing a zero-length vector
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

// DegenerateGeometryError records the operation and the offending vector
type DegenerateGeometryError struct {
	Op    string
	Value Vec3
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrDegenerateGeometry, e.Value)
}

func (e *DegenerateGeometryError) Unwrap() error {
	return ErrDegenerateGeometry
}
