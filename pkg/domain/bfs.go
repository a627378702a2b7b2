package domain

// ReachableOrder выполняет BFS по направленным рёбрам от start и
// возвращает вершины в порядке обхода (включая start). Соседи
// обходятся в порядке вставки рёбер.
func ReachableOrder(g *Graph, start int64) []int64 {
	if !g.HasNode(start) {
		return nil
	}

	visited := map[int64]bool{start: true}
	order := []int64{start}
	queue := []int64{start}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		for _, v := range g.GetOutgoing(u) {
			if visited[v] {
				continue
			}
			visited[v] = true
			order = append(order, v)
			queue = append(queue, v)
		}
	}

	return order
}

// ReachableSet возвращает множество вершин, достижимых из start
func ReachableSet(g *Graph, start int64) map[int64]bool {
	visited := make(map[int64]bool)
	for _, id := range ReachableOrder(g, start) {
		visited[id] = true
	}
	return visited
}

// WeaklyConnectedComponents находит компоненты слабой связности:
// направление рёбер игнорируется. Компоненты перечисляются начиная
// с минимального ID узла, состав каждой — в порядке BFS обхода.
func WeaklyConnectedComponents(g *Graph) [][]int64 {
	// Неориентированная смежность в порядке вставки рёбер
	adj := make(map[int64][]int64)
	for _, edge := range g.EdgesInOrder() {
		adj[edge.From] = append(adj[edge.From], edge.To)
		adj[edge.To] = append(adj[edge.To], edge.From)
	}

	visited := make(map[int64]bool)
	var components [][]int64

	for _, nodeID := range g.SortedNodes() {
		if visited[nodeID] {
			continue
		}

		var component []int64
		queue := []int64{nodeID}
		visited[nodeID] = true

		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			component = append(component, u)

			for _, v := range adj[u] {
				if !visited[v] {
					visited[v] = true
					queue = append(queue, v)
				}
			}
		}

		components = append(components, component)
	}

	return components
}

// LargestComponent возвращает множество узлов наибольшей компоненты
// слабой связности. При равенстве размеров побеждает компонента,
// встреченная первой при переборе узлов по возрастанию ID.
func LargestComponent(g *Graph) map[int64]bool {
	components := WeaklyConnectedComponents(g)
	if len(components) == 0 {
		return map[int64]bool{}
	}

	best := components[0]
	for _, c := range components[1:] {
		if len(c) > len(best) {
			best = c
		}
	}

	keep := make(map[int64]bool, len(best))
	for _, id := range best {
		keep[id] = true
	}
	return keep
}
