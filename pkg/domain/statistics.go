package domain

// GraphStatistics статистика дорожного графа
type GraphStatistics struct {
	NodeCount      int64
	EdgeCount      int64
	ReversedEdges  int64
	TotalCapacity  float64
	Density        float64
	AverageDegree  float64
	MaxDegree      int
	MinDegree      int
	ComponentCount int
}

// CalculateGraphStatistics вычисляет статистику графа
func CalculateGraphStatistics(g *Graph) *GraphStatistics {
	stats := &GraphStatistics{
		NodeCount: int64(g.NodeCount()),
		EdgeCount: int64(g.EdgeCount()),
		MinDegree: int(^uint(0) >> 1), // MaxInt
	}

	degree := make(map[int64]int)
	for _, edge := range g.EdgesInOrder() {
		stats.TotalCapacity += edge.CapacityVPH
		if edge.Reversed {
			stats.ReversedEdges++
		}
		degree[edge.From]++
		degree[edge.To]++
	}

	for _, id := range g.SortedNodes() {
		d := degree[id]
		if d > stats.MaxDegree {
			stats.MaxDegree = d
		}
		if d < stats.MinDegree {
			stats.MinDegree = d
		}
	}

	if stats.NodeCount > 0 {
		stats.AverageDegree = 2 * float64(stats.EdgeCount) / float64(stats.NodeCount)
	}
	if stats.NodeCount > 1 {
		// Плотность направленного графа без петель
		maxEdges := float64(stats.NodeCount) * float64(stats.NodeCount-1)
		stats.Density = float64(stats.EdgeCount) / maxEdges
	}
	if stats.NodeCount == 0 {
		stats.MinDegree = 0
	}

	stats.ComponentCount = len(WeaklyConnectedComponents(g))

	return stats
}
