package geometry

import (
	"github.com/pkg/errors"

	"github.com/df07/go-raykernel/pkg/core"
)

// HittableList tests every object in turn. It is the brute-force counterpart
// of BVH and gives identical answers.
type HittableList struct {
	Objects []core.Hittable
	box     core.AABB
}

// NewHittableList creates a list over objects, which must not be nil
func NewHittableList(objects ...core.Hittable) (*HittableList, error) {
	box := core.EmptyAABB()
	for i, object := range objects {
		if object == nil {
			return nil, errors.Wrapf(core.ErrInvalidArgument, "list object %d is nil", i)
		}
		box.Unite(object.BoundingBox())
	}
	return &HittableList{Objects: objects, box: box}, nil
}

// Hit returns the nearest intersection with any object in the list
func (l *HittableList) Hit(ray core.Ray, interval core.Interval) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	hitAnything := false

	for _, object := range l.Objects {
		if hit, isHit := object.Hit(ray, interval); isHit {
			hitAnything = true
			interval.Max = hit.Dist
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// BoundingBox returns the box enclosing every object, empty for an empty list
func (l *HittableList) BoundingBox() core.AABB {
	return l.box
}
