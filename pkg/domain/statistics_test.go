package domain

import "testing"

func TestCalculateGraphStatistics(t *testing.T) {
	g := NewGraph()
	g.AddEdge(1, 2, 1800, 1, false)
	g.AddEdge(2, 3, 1200, 1, true)
	g.AddEdge(10, 11, 600, 1, false)

	stats := CalculateGraphStatistics(g)

	if stats.NodeCount != 5 {
		t.Errorf("NodeCount = %d, want 5", stats.NodeCount)
	}
	if stats.EdgeCount != 3 {
		t.Errorf("EdgeCount = %d, want 3", stats.EdgeCount)
	}
	if stats.ReversedEdges != 1 {
		t.Errorf("ReversedEdges = %d, want 1", stats.ReversedEdges)
	}
	if stats.TotalCapacity != 3600 {
		t.Errorf("TotalCapacity = %v, want 3600", stats.TotalCapacity)
	}
	if stats.ComponentCount != 2 {
		t.Errorf("ComponentCount = %d, want 2", stats.ComponentCount)
	}
	if stats.MaxDegree != 2 {
		t.Errorf("MaxDegree = %d, want 2", stats.MaxDegree)
	}
	if stats.MinDegree != 1 {
		t.Errorf("MinDegree = %d, want 1", stats.MinDegree)
	}
}

func TestCalculateGraphStatistics_Empty(t *testing.T) {
	stats := CalculateGraphStatistics(NewGraph())

	if stats.NodeCount != 0 || stats.EdgeCount != 0 {
		t.Error("empty graph should have zero counts")
	}
	if stats.MinDegree != 0 {
		t.Errorf("MinDegree = %d, want 0 for empty graph", stats.MinDegree)
	}
	if stats.ComponentCount != 0 {
		t.Errorf("ComponentCount = %d, want 0", stats.ComponentCount)
	}
}
