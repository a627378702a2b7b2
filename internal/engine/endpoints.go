package engine

import (
	"math/rand/v2"

	"evacsim/pkg/apperror"
	"evacsim/pkg/domain"
)

// =============================================================================
// Endpoint Selection
// =============================================================================
//
// Real road extracts have no designated "evacuation origin" node, so the
// engine samples one. A candidate is accepted when it can reach a meaningful
// chunk of the network; the sink is the node discovered last by BFS, which
// tends to sit at the far edge of the reachable region. Everything is
// deterministic given the picker, which is injectable for tests.
// =============================================================================

// PickFunc selects an index in [0, n). Production code passes a seeded
// random picker; tests pass a deterministic one.
type PickFunc func(n int) int

// RandomPick is the default production picker.
func RandomPick(n int) int {
	return rand.IntN(n)
}

// SelectEndpoints chooses a source and sink for the max-flow computation.
//
// When the network is disconnected, only the largest weakly-connected
// component is considered; on a size tie, the component containing the
// smallest node ID wins. Up to EndpointTrials random candidates are probed
// and the first one reaching more than MinReachableNodes nodes is taken,
// with its BFS-last node as the sink. If no candidate qualifies, the first
// and last nodes of the sorted node list are used.
//
// Returns the (possibly restricted) graph actually used, the source and the
// sink. An empty network yields apperror.ErrEmptyGraph.
func SelectEndpoints(g *domain.Graph, pick PickFunc) (*domain.Graph, int64, int64, error) {
	if g == nil || g.NodeCount() == 0 {
		return nil, 0, 0, apperror.ErrEmptyGraph
	}

	if pick == nil {
		pick = RandomPick
	}

	keep := domain.LargestComponent(g)
	if len(keep) < g.NodeCount() {
		g = g.Subgraph(keep)
	}

	nodes := g.SortedNodes()

	for trial := 0; trial < domain.EndpointTrials; trial++ {
		idx := pick(len(nodes))
		if idx < 0 || idx >= len(nodes) {
			continue
		}

		candidate := nodes[idx]
		order := domain.ReachableOrder(g, candidate)
		if len(order) > domain.MinReachableNodes {
			return g, candidate, order[len(order)-1], nil
		}
	}

	// No candidate reached enough of the network; fall back to the extremes
	// of the sorted node listing.
	return g, nodes[0], nodes[len(nodes)-1], nil
}
