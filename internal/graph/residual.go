// Package graph provides data structures and utilities for network flow
// computations over road networks.
package graph

import (
	"sort"

	"evacsim/pkg/domain"
)

// =============================================================================
// Constants
// =============================================================================

// Epsilon is the tolerance for floating-point comparisons.
// Values smaller than Epsilon are considered zero.
const Epsilon = domain.Epsilon

// Infinity represents an unreachable distance or unlimited capacity.
const Infinity = domain.Infinity

// =============================================================================
// Residual Edge
// =============================================================================

// ResidualEdge represents an edge in the residual graph.
//
// In the residual graph, each original edge (u, v) with capacity c
// is represented by two edges:
//   - Forward edge (u, v) with capacity c
//   - Backward edge (v, u) with capacity 0
//
// When flow f is pushed along (u, v):
//   - Forward edge capacity becomes c - f
//   - Backward edge capacity becomes f
//
// This allows the algorithm to "undo" flow decisions.
type ResidualEdge struct {
	// To is the destination node ID.
	To int64

	// Capacity is the current residual capacity.
	Capacity float64

	// Flow is the amount of flow currently on this edge.
	// Only meaningful for forward edges.
	Flow float64

	// OriginalCapacity is the initial capacity of the edge.
	// Used for reset operations.
	OriginalCapacity float64

	// IsReverse indicates whether this is a backward (reverse) edge.
	IsReverse bool

	// Index is the position of this edge in the EdgesList slice.
	Index int
}

// HasCapacity returns true if the edge has positive residual capacity.
func (e *ResidualEdge) HasCapacity() bool {
	return e.Capacity > Epsilon
}

// =============================================================================
// Residual Graph
// =============================================================================

// ResidualGraph is the core data structure for the max-flow computation.
//
// Edges are stored in two complementary structures:
//   - Edges: map for O(1) lookup by (from, to)
//   - EdgesList: slice for deterministic iteration order
//
// Network flow algorithms can find different valid solutions depending on
// the order of edge traversal. To ensure deterministic results, iterate
// with GetNeighborsList() and GetSortedNodes().
//
// ResidualGraph is NOT thread-safe; clone it per goroutine if needed.
type ResidualGraph struct {
	// Nodes contains all node IDs in the graph (used as a set).
	Nodes map[int64]bool

	// Edges provides O(1) edge lookup by (from, to) pair.
	Edges map[int64]map[int64]*ResidualEdge

	// EdgesList provides deterministic edge iteration in insertion order.
	EdgesList map[int64][]*ResidualEdge

	sortedNodes      []int64
	sortedNodesDirty bool
}

// NewResidualGraph creates a new empty residual graph.
func NewResidualGraph() *ResidualGraph {
	return &ResidualGraph{
		Nodes:            make(map[int64]bool),
		Edges:            make(map[int64]map[int64]*ResidualEdge),
		EdgesList:        make(map[int64][]*ResidualEdge),
		sortedNodesDirty: true,
	}
}

// FromDomain builds a residual graph from a road network graph.
// Edges are added in the network's insertion order, so the resulting
// traversal order is deterministic for a given segment set.
func FromDomain(g *domain.Graph) *ResidualGraph {
	rg := NewResidualGraph()
	for _, edge := range g.EdgesInOrder() {
		rg.AddEdgeWithReverse(edge.From, edge.To, edge.CapacityVPH)
	}
	return rg
}

// AddNode adds a node to the graph. No-op if the node exists.
func (rg *ResidualGraph) AddNode(id int64) {
	if !rg.Nodes[id] {
		rg.Nodes[id] = true
		rg.sortedNodesDirty = true
	}
}

// AddEdge adds a forward edge to the graph.
//
// If an edge already exists between the same nodes:
//   - If the existing edge is a reverse edge, it is converted to a forward edge
//   - Otherwise, the capacity is accumulated
//
// For most use cases, prefer AddEdgeWithReverse() which handles both directions.
func (rg *ResidualGraph) AddEdge(from, to int64, capacity float64) {
	rg.AddNode(from)
	rg.AddNode(to)

	if rg.Edges[from] == nil {
		rg.Edges[from] = make(map[int64]*ResidualEdge)
	}

	if existing := rg.Edges[from][to]; existing != nil {
		if existing.IsReverse {
			// The reverse edge was created first; convert it
			existing.OriginalCapacity = capacity
			existing.Capacity = capacity
			existing.IsReverse = false
			return
		}
		existing.Capacity += capacity
		existing.OriginalCapacity += capacity
		return
	}

	edge := &ResidualEdge{
		To:               to,
		Capacity:         capacity,
		OriginalCapacity: capacity,
		Index:            len(rg.EdgesList[from]),
	}

	rg.Edges[from][to] = edge
	rg.EdgesList[from] = append(rg.EdgesList[from], edge)
}

// AddReverseEdge adds a backward edge for flow cancellation.
// Reverse edges start with zero capacity which grows as flow is pushed.
func (rg *ResidualGraph) AddReverseEdge(from, to int64) {
	rg.AddNode(from)
	rg.AddNode(to)

	if rg.Edges[from] == nil {
		rg.Edges[from] = make(map[int64]*ResidualEdge)
	}

	// Don't overwrite existing edge
	if existing := rg.Edges[from][to]; existing != nil {
		return
	}

	edge := &ResidualEdge{
		To:        to,
		IsReverse: true,
		Index:     len(rg.EdgesList[from]),
	}

	rg.Edges[from][to] = edge
	rg.EdgesList[from] = append(rg.EdgesList[from], edge)
}

// AddEdgeWithReverse adds both forward and backward edges.
//
// This is the recommended method for adding edges to a flow network.
func (rg *ResidualGraph) AddEdgeWithReverse(from, to int64, capacity float64) {
	rg.AddEdge(from, to, capacity)
	rg.AddReverseEdge(to, from)
}

// GetEdge returns the edge from 'from' to 'to', or nil if not found.
func (rg *ResidualGraph) GetEdge(from, to int64) *ResidualEdge {
	if rg.Edges[from] == nil {
		return nil
	}
	return rg.Edges[from][to]
}

// GetNeighborsList returns all outgoing edges from a node as a slice
// in insertion order, providing deterministic iteration.
func (rg *ResidualGraph) GetNeighborsList(node int64) []*ResidualEdge {
	return rg.EdgesList[node]
}

// GetSortedNodes returns node IDs sorted in ascending order.
// The result is cached until the node set changes.
func (rg *ResidualGraph) GetSortedNodes() []int64 {
	if rg.sortedNodesDirty || len(rg.sortedNodes) != len(rg.Nodes) {
		rg.sortedNodes = make([]int64, 0, len(rg.Nodes))
		for node := range rg.Nodes {
			rg.sortedNodes = append(rg.sortedNodes, node)
		}
		sort.Slice(rg.sortedNodes, func(i, j int) bool {
			return rg.sortedNodes[i] < rg.sortedNodes[j]
		})
		rg.sortedNodesDirty = false
	}
	return rg.sortedNodes
}

// NodeCount returns the number of nodes in the graph.
func (rg *ResidualGraph) NodeCount() int {
	return len(rg.Nodes)
}

// EdgeCount returns the total number of edges (including reverse edges).
func (rg *ResidualGraph) EdgeCount() int {
	count := 0
	for _, edges := range rg.EdgesList {
		count += len(edges)
	}
	return count
}

// UpdateFlow pushes flow along an edge and updates the residual graph:
// the forward edge loses capacity, the backward edge gains it.
func (rg *ResidualGraph) UpdateFlow(from, to int64, flow float64) {
	if edge := rg.GetEdge(from, to); edge != nil {
		edge.Flow += flow
		edge.Capacity -= flow
	}

	if backEdge := rg.GetEdge(to, from); backEdge != nil {
		backEdge.Capacity += flow
	} else {
		rg.AddReverseEdge(to, from)
		rg.Edges[to][from].Capacity = flow
	}
}

// GetTotalFlow computes the total flow leaving the source node.
func (rg *ResidualGraph) GetTotalFlow(source int64) float64 {
	totalFlow := 0.0
	for _, edge := range rg.EdgesList[source] {
		if !edge.IsReverse && edge.Flow > 0 {
			totalFlow += edge.Flow
		}
	}
	return totalFlow
}

// Reset clears all flow and restores original capacities.
func (rg *ResidualGraph) Reset() {
	for _, edges := range rg.EdgesList {
		for _, edge := range edges {
			if edge.IsReverse {
				edge.Capacity = 0
			} else {
				edge.Capacity = edge.OriginalCapacity
			}
			edge.Flow = 0
		}
	}
}
