package bvh

// Stats summarizes the shape of a tree.
type Stats struct {
	Nodes        int
	Leaves       int
	Prims        int
	MaxDepth     int
	MaxLeafPrims int
}

// Stats walks the tree and returns its shape. The root is at depth 0.
func (b *BVH) Stats() Stats {
	s := Stats{Nodes: len(b.Nodes), Prims: len(b.Prims)}
	if b.Empty() {
		return s
	}
	b.statsRecursive(0, 0, &s)
	return s
}

func (b *BVH) statsRecursive(idx int32, depth int, s *Stats) {
	s.MaxDepth = max(s.MaxDepth, depth)

	node := b.Nodes[idx]
	if node.IsLeaf() {
		s.Leaves++
		s.MaxLeafPrims = max(s.MaxLeafPrims, int(node.NumPrims))
		return
	}
	b.statsRecursive(node.LHS, depth+1, s)
	b.statsRecursive(node.RHS, depth+1, s)
}
