package engine

import (
	"evacsim/pkg/domain"
)

// =============================================================================
// Network Builder
// =============================================================================
//
// Translates raw road segments into a directed capacitated graph. Segments
// without both endpoints are dropped (orphan geometry happens in real OSM
// extracts). Parallel segments between the same pair of nodes merge into a
// single edge with summed capacity.
//
// Under the contraflow scenario, major-highway segments whose heading falls
// into the region's reversal set are inserted in the opposite direction,
// modelling lane reversal toward the evacuation routes.
// =============================================================================

// BuildResult carries the constructed graph together with build statistics.
type BuildResult struct {
	// Graph is the directed evacuation network.
	Graph *domain.Graph

	// ReversedEdges counts segments inserted in reversed orientation.
	ReversedEdges int

	// SkippedSegments counts segments dropped for missing endpoints.
	SkippedSegments int
}

// BuildGraph constructs the evacuation network for the given scenario and
// region. Reversal applies only when scenario is contraflow, and only to
// major-highway segments whose heading matches the region's reversal table.
// Segments with degenerate geometry keep their original orientation.
func BuildGraph(segments []domain.RoadSegment, scenario domain.Scenario, region string) *BuildResult {
	result := &BuildResult{Graph: domain.NewGraph()}

	contraflow := scenario == domain.ScenarioContraflow
	reversalSet := ReversalDirections(region)

	for i := range segments {
		seg := &segments[i]
		if !seg.HasEndpoints() {
			result.SkippedSegments++
			continue
		}

		from := *seg.Source
		to := *seg.Target
		reversed := false

		if contraflow && seg.IsMajorHighway() {
			heading := HeadingDirections(seg.Heading())
			if heading.Has(reversalSet) {
				from, to = to, from
				reversed = true
				result.ReversedEdges++
			}
		}

		result.Graph.AddEdge(from, to, seg.EffectiveCapacity(), seg.CostTime, reversed)
	}

	return result
}
