package graph

// ReconstructPath rebuilds the source-to-sink path from a BFS parent map.
// Returns nil if the sink was never reached.
func ReconstructPath(parent map[int64]int64, source, sink int64) []int64 {
	if _, exists := parent[sink]; !exists {
		return nil
	}

	var reversed []int64
	current := sink

	for current != source {
		reversed = append(reversed, current)
		p, exists := parent[current]
		if !exists || p == -1 {
			return nil
		}
		current = p
	}
	reversed = append(reversed, source)

	// Reverse in place
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}

	return reversed
}

// FindMinCapacityOnPath returns the bottleneck residual capacity along a path.
func FindMinCapacityOnPath(g *ResidualGraph, path []int64) float64 {
	if len(path) < 2 {
		return 0
	}

	minCapacity := Infinity

	for i := 0; i < len(path)-1; i++ {
		edge := g.GetEdge(path[i], path[i+1])
		if edge == nil {
			return 0
		}

		if edge.Capacity < minCapacity {
			minCapacity = edge.Capacity
		}
	}

	if minCapacity == Infinity {
		return 0
	}

	return minCapacity
}

// AugmentPath pushes flow along every edge of the path.
func AugmentPath(g *ResidualGraph, path []int64, flow float64) {
	for i := 0; i < len(path)-1; i++ {
		g.UpdateFlow(path[i], path[i+1], flow)
	}
}
