// This file implements the BFS used to find augmenting paths for the
// Edmonds-Karp max-flow computation. The traversal uses deterministic
// neighbor ordering so results are reproducible regardless of map
// iteration order.
package graph

// BFSResult encapsulates the result of a BFS traversal.
type BFSResult struct {
	Found   bool
	Parent  map[int64]int64
	Visited map[int64]bool
}

// =============================================================================
// Queue Implementation
// =============================================================================

// Queue provides an efficient FIFO queue for BFS traversal.
// It uses a slice with a head pointer to avoid repeated allocations.
type Queue struct {
	data []int64
	head int
}

// NewQueue creates a new Queue with the specified initial capacity.
// The capacity should be the expected maximum queue size (typically
// the number of nodes in the graph).
func NewQueue(capacity int) *Queue {
	return &Queue{
		data: make([]int64, 0, capacity),
		head: 0,
	}
}

// Push adds an element to the end of the queue. Amortized O(1).
func (q *Queue) Push(v int64) {
	q.data = append(q.data, v)
}

// Pop removes and returns the element at the front of the queue.
//
// Panics if the queue is empty. Always check Empty() before calling Pop().
func (q *Queue) Pop() int64 {
	v := q.data[q.head]
	q.head++
	return v
}

// Empty returns true if the queue contains no elements.
func (q *Queue) Empty() bool {
	return q.head >= len(q.data)
}

// Len returns the number of elements currently in the queue.
func (q *Queue) Len() int {
	return len(q.data) - q.head
}

// Reset clears the queue for reuse, keeping the underlying capacity.
func (q *Queue) Reset() {
	q.data = q.data[:0]
	q.head = 0
}

// =============================================================================
// Standard BFS
// =============================================================================

// BFS performs breadth-first search from source to sink over edges with
// positive residual capacity, terminating early once the sink is found.
func BFS(g *ResidualGraph, source, sink int64) *BFSResult {
	return BFSDeterministic(g, source, sink)
}

// BFSDeterministic performs BFS with deterministic neighbor ordering.
//
// The algorithm uses EdgesList (which maintains insertion order) rather
// than iterating over maps, ensuring the same augmenting path is found
// on every run.
//
// Time Complexity: O(V + E)
// Space Complexity: O(V)
func BFSDeterministic(g *ResidualGraph, source, sink int64) *BFSResult {
	parent := make(map[int64]int64, len(g.Nodes))
	visited := make(map[int64]bool, len(g.Nodes))

	queue := NewQueue(len(g.Nodes))
	queue.Push(source)
	visited[source] = true
	parent[source] = -1

	for !queue.Empty() {
		u := queue.Pop()

		// Use EdgesList for deterministic ordering
		neighbors := g.GetNeighborsList(u)
		for _, edge := range neighbors {
			v := edge.To

			// Only traverse edges with positive residual capacity
			if !visited[v] && edge.Capacity > Epsilon {
				parent[v] = u
				visited[v] = true
				queue.Push(v)

				// Early termination when sink is found
				if v == sink {
					return &BFSResult{
						Found:   true,
						Parent:  parent,
						Visited: visited,
					}
				}
			}
		}
	}

	return &BFSResult{
		Found:   false,
		Parent:  parent,
		Visited: visited,
	}
}
