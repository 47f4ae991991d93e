package geometry

import (
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/log"
)

var logger = log.New("bvh")

// maxPrimitives bounds the input size so primitive indices fit a childRef
var maxPrimitives = math.MaxInt32

type refKind uint8

const (
	refNone refKind = iota
	refNode
	refPrimitive
)

// childRef addresses either a node in the arena or a primitive
type childRef struct {
	kind  refKind
	index int32
}

// bvhNode is an arena entry. right is absent only for the root of a
// single-primitive tree.
type bvhNode struct {
	box         core.AABB
	left, right childRef
	axis        uint8 // split axis, used to visit the nearer child first
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// Nodes live in a flat arena and refer to the primitives by index, so the
// primitives are shared rather than copied. A BVH is immutable once built and
// safe for concurrent queries.
type BVH struct {
	nodes      []bvhNode
	primitives []core.Hittable
}

// NewBVH constructs a BVH over objects. The slice itself is not modified.
func NewBVH(objects []core.Hittable) (*BVH, error) {
	if len(objects) == 0 {
		return nil, errors.Wrap(core.ErrInvalidArgument, "bvh needs at least one object")
	}
	if len(objects) > maxPrimitives {
		return nil, errors.Wrapf(core.ErrInvalidArgument, "bvh holds at most %d objects, got %d", maxPrimitives, len(objects))
	}

	start := time.Now()
	b := &bvhBuilder{
		primitives: make([]core.Hittable, len(objects)),
		boxes:      make([]core.AABB, len(objects)),
		centers:    make([]core.Vec3, len(objects)),
		nodes:      make([]bvhNode, 0, len(objects)),
	}
	items := make([]int32, len(objects))
	for i, object := range objects {
		if object == nil {
			return nil, errors.Wrapf(core.ErrInvalidArgument, "bvh object %d is nil", i)
		}
		b.primitives[i] = object
		b.boxes[i] = object.BoundingBox()
		b.centers[i] = b.boxes[i].Center()
		items[i] = int32(i)
	}

	if len(items) == 1 {
		// Single object: a pass-through node with no right child
		b.nodes = append(b.nodes, bvhNode{
			box:  b.boxes[0],
			left: childRef{kind: refPrimitive, index: 0},
		})
	} else {
		b.build(items)
	}

	bvh := &BVH{nodes: b.nodes, primitives: b.primitives}
	if log.Enabled(log.Debug) {
		stats := bvh.Stats()
		logger.Debugf(
			"BVH build time: %s, primitives: %d, nodes: %d, maxDepth: %d, avgDepth: %.2f",
			time.Since(start), stats.Primitives, stats.Nodes, stats.MaxDepth, stats.AvgDepth,
		)
	}
	return bvh, nil
}

type bvhBuilder struct {
	primitives []core.Hittable
	boxes      []core.AABB
	centers    []core.Vec3
	nodes      []bvhNode
}

// build appends a node for items (at least two) and returns its index
func (b *bvhBuilder) build(items []int32) int32 {
	index := int32(len(b.nodes))
	b.nodes = append(b.nodes, bvhNode{})

	box := core.EmptyAABB()
	for _, item := range items {
		box.Unite(b.boxes[item])
	}

	// Median split along the longest axis of the combined box
	axis := box.LongestAxis()
	if len(items) > 2 {
		b.sortByAxis(items, axis)
	}
	mid := len(items) / 2
	left := b.child(items[:mid])
	right := b.child(items[mid:])

	// Recursion may have grown the arena, so write through the index
	b.nodes[index] = bvhNode{
		box:   box,
		left:  left,
		right: right,
		axis:  uint8(axis),
	}
	return index
}

func (b *bvhBuilder) child(items []int32) childRef {
	if len(items) == 1 {
		return childRef{kind: refPrimitive, index: items[0]}
	}
	return childRef{kind: refNode, index: b.build(items)}
}

// sortByAxis orders items by their bounding box center along axis. The sort
// is stable so equal centers keep input order and builds are deterministic.
func (b *bvhBuilder) sortByAxis(items []int32, axis int) {
	sort.SliceStable(items, func(i, j int) bool {
		ci := b.centers[items[i]]
		cj := b.centers[items[j]]

		switch axis {
		case 0:
			return ci.X < cj.X
		case 1:
			return ci.Y < cj.Y
		default:
			return ci.Z < cj.Z
		}
	})
}

// Hit returns the nearest intersection with any primitive in the BVH.
// It panics with a *core.DegenerateGeometryError if the ray has no direction,
// even when the ray misses every box.
func (bvh *BVH) Hit(ray core.Ray, interval core.Interval) (*core.HitRecord, bool) {
	if ray.Direction.LengthSquared() == 0 {
		panic(&core.DegenerateGeometryError{Op: "bvh hit", Value: ray.Direction})
	}
	return bvh.hitNode(0, ray, interval)
}

// BoundingBox returns the box enclosing every primitive
func (bvh *BVH) BoundingBox() core.AABB {
	return bvh.nodes[0].box
}

// Len returns the number of primitives in the BVH
func (bvh *BVH) Len() int {
	return len(bvh.primitives)
}

func (bvh *BVH) hitNode(index int32, ray core.Ray, interval core.Interval) (*core.HitRecord, bool) {
	node := &bvh.nodes[index]
	if !node.box.Hit(ray, interval) {
		return nil, false
	}

	// Visit the child on the ray's near side of the split first so its hit
	// can shrink the interval for the far child
	first, second := node.left, node.right
	if second.kind != refNone && rayComponent(ray, node.axis) < 0 {
		first, second = second, first
	}

	closest, hitAnything := bvh.hitChild(first, ray, interval)
	if hitAnything {
		interval.Max = closest.Dist
	}
	if hit, isHit := bvh.hitChild(second, ray, interval); isHit {
		closest, hitAnything = hit, true
	}
	return closest, hitAnything
}

func (bvh *BVH) hitChild(ref childRef, ray core.Ray, interval core.Interval) (*core.HitRecord, bool) {
	switch ref.kind {
	case refNode:
		return bvh.hitNode(ref.index, ray, interval)
	case refPrimitive:
		return bvh.primitives[ref.index].Hit(ray, interval)
	default:
		return nil, false
	}
}

func rayComponent(ray core.Ray, axis uint8) float64 {
	switch axis {
	case 0:
		return ray.Direction.X
	case 1:
		return ray.Direction.Y
	default:
		return ray.Direction.Z
	}
}
