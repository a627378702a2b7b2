package graph

import (
	"reflect"
	"testing"
)

func TestReconstructPath(t *testing.T) {
	parent := map[int64]int64{1: -1, 2: 1, 3: 2}

	path := ReconstructPath(parent, 1, 3)
	want := []int64{1, 2, 3}
	if !reflect.DeepEqual(path, want) {
		t.Errorf("path = %v, want %v", path, want)
	}
}

func TestReconstructPath_SinkUnreached(t *testing.T) {
	parent := map[int64]int64{1: -1, 2: 1}

	if path := ReconstructPath(parent, 1, 99); path != nil {
		t.Errorf("path = %v, want nil", path)
	}
}

func TestFindMinCapacityOnPath(t *testing.T) {
	g := NewResidualGraph()
	g.AddEdgeWithReverse(1, 2, 10)
	g.AddEdgeWithReverse(2, 3, 3)
	g.AddEdgeWithReverse(3, 4, 7)

	if got := FindMinCapacityOnPath(g, []int64{1, 2, 3, 4}); got != 3 {
		t.Errorf("bottleneck = %v, want 3", got)
	}
}

func TestFindMinCapacityOnPath_MissingEdge(t *testing.T) {
	g := NewResidualGraph()
	g.AddEdgeWithReverse(1, 2, 10)

	if got := FindMinCapacityOnPath(g, []int64{1, 2, 99}); got != 0 {
		t.Errorf("bottleneck = %v, want 0 for missing edge", got)
	}
}

func TestFindMinCapacityOnPath_ShortPath(t *testing.T) {
	g := NewResidualGraph()
	if got := FindMinCapacityOnPath(g, []int64{1}); got != 0 {
		t.Errorf("bottleneck = %v, want 0 for degenerate path", got)
	}
}

func TestAugmentPath(t *testing.T) {
	g := NewResidualGraph()
	g.AddEdgeWithReverse(1, 2, 10)
	g.AddEdgeWithReverse(2, 3, 10)

	AugmentPath(g, []int64{1, 2, 3}, 4)

	if edge := g.GetEdge(1, 2); edge.Capacity != 6 {
		t.Errorf("edge 1->2 capacity = %v, want 6", edge.Capacity)
	}
	if edge := g.GetEdge(2, 3); edge.Capacity != 6 {
		t.Errorf("edge 2->3 capacity = %v, want 6", edge.Capacity)
	}
	if edge := g.GetEdge(3, 2); edge.Capacity != 4 {
		t.Errorf("reverse edge 3->2 capacity = %v, want 4", edge.Capacity)
	}
}
