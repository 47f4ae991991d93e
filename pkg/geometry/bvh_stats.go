package geometry

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	Nodes      int     // Arena nodes
	Primitives int     // Primitive references reachable from the root
	MaxDepth   int     // Deepest primitive, the root's children are at depth 1
	AvgDepth   float64 // Mean primitive depth
}

// Stats walks the tree and returns statistics about its shape
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{Nodes: len(bvh.nodes)}
	bvh.collectStats(childRef{kind: refNode, index: 0}, 0, &stats)

	// Calculate average depth after collecting all data
	if stats.Primitives > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.Primitives)
	}

	return stats
}

// collectStats recursively collects statistics about the BVH
func (bvh *BVH) collectStats(ref childRef, depth int, stats *BVHStats) {
	switch ref.kind {
	case refPrimitive:
		stats.Primitives++
		stats.AvgDepth += float64(depth) // Accumulate depth for average calculation
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
	case refNode:
		node := &bvh.nodes[ref.index]
		bvh.collectStats(node.left, depth+1, stats)
		bvh.collectStats(node.right, depth+1, stats)
	}
}
