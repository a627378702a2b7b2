package graph

import (
	"reflect"
	"testing"
)

func TestQueue(t *testing.T) {
	q := NewQueue(4)

	if !q.Empty() {
		t.Error("new queue should be empty")
	}

	q.Push(1)
	q.Push(2)
	q.Push(3)

	if q.Len() != 3 {
		t.Errorf("Len() = %d, want 3", q.Len())
	}
	if got := q.Pop(); got != 1 {
		t.Errorf("Pop() = %d, want 1", got)
	}
	if got := q.Pop(); got != 2 {
		t.Errorf("Pop() = %d, want 2", got)
	}

	q.Reset()
	if !q.Empty() {
		t.Error("queue should be empty after Reset")
	}
}

func TestBFSDeterministic_FindsPath(t *testing.T) {
	g := NewResidualGraph()
	g.AddEdgeWithReverse(1, 2, 10)
	g.AddEdgeWithReverse(2, 3, 10)

	result := BFSDeterministic(g, 1, 3)
	if !result.Found {
		t.Fatal("path 1->3 should be found")
	}

	path := ReconstructPath(result.Parent, 1, 3)
	want := []int64{1, 2, 3}
	if !reflect.DeepEqual(path, want) {
		t.Errorf("path = %v, want %v", path, want)
	}
}

func TestBFSDeterministic_NoPath(t *testing.T) {
	g := NewResidualGraph()
	g.AddEdgeWithReverse(1, 2, 10)
	g.AddEdgeWithReverse(3, 4, 10)

	result := BFSDeterministic(g, 1, 4)
	if result.Found {
		t.Error("no path from 1 to 4 should exist")
	}
}

func TestBFSDeterministic_SkipsSaturatedEdges(t *testing.T) {
	g := NewResidualGraph()
	g.AddEdgeWithReverse(1, 2, 10)
	g.AddEdgeWithReverse(2, 3, 10)

	// Насыщаем ребро 2->3
	g.UpdateFlow(2, 3, 10)

	result := BFSDeterministic(g, 1, 3)
	if result.Found {
		t.Error("saturated edge should block the path")
	}
}

func TestBFSDeterministic_PrefersShortestPath(t *testing.T) {
	g := NewResidualGraph()
	// Короткий путь 1->4 и длинный 1->2->3->4
	g.AddEdgeWithReverse(1, 2, 10)
	g.AddEdgeWithReverse(2, 3, 10)
	g.AddEdgeWithReverse(3, 4, 10)
	g.AddEdgeWithReverse(1, 4, 10)

	result := BFSDeterministic(g, 1, 4)
	path := ReconstructPath(result.Parent, 1, 4)

	want := []int64{1, 4}
	if !reflect.DeepEqual(path, want) {
		t.Errorf("path = %v, want shortest %v", path, want)
	}
}
