package domain

import (
	"fmt"
	"sort"
	"sync"
)

// EdgeKey уникальный ключ ребра
type EdgeKey struct {
	From int64
	To   int64
}

// String возвращает строковое представление ключа ребра
func (e EdgeKey) String() string {
	return fmt.Sprintf("%d->%d", e.From, e.To)
}

// Edge представляет направленное ребро дорожного графа
type Edge struct {
	From        int64
	To          int64
	CapacityVPH float64
	CostTime    float64
	Reversed    bool // ребро добавлено реверсом при контрафлоу
}

// Clone создаёт копию ребра
func (e *Edge) Clone() *Edge {
	return &Edge{
		From:        e.From,
		To:          e.To,
		CapacityVPH: e.CapacityVPH,
		CostTime:    e.CostTime,
		Reversed:    e.Reversed,
	}
}

// Key возвращает ключ ребра
func (e *Edge) Key() EdgeKey {
	return EdgeKey{From: e.From, To: e.To}
}

// Graph представляет направленный граф дорожной сети.
// Параллельные рёбра между одной парой узлов сливаются суммированием
// пропускной способности. Списки смежности хранят порядок вставки —
// обходы по ним детерминированы для одного и того же набора сегментов.
type Graph struct {
	Edges map[EdgeKey]*Edge

	nodes    map[int64]struct{}
	outgoing map[int64][]int64 // node -> соседи в порядке вставки
	incoming map[int64][]int64
	order    []EdgeKey // уникальные рёбра в порядке вставки

	mu sync.RWMutex
}

// NewGraph создаёт новый пустой граф
func NewGraph() *Graph {
	return &Graph{
		Edges:    make(map[EdgeKey]*Edge),
		nodes:    make(map[int64]struct{}),
		outgoing: make(map[int64][]int64),
		incoming: make(map[int64][]int64),
	}
}

// AddEdge добавляет ребро. Повторное ребро (from, to) суммирует
// пропускную способность, CostTime остаётся от первого вхождения.
func (g *Graph) AddEdge(from, to int64, capacityVPH, costTime float64, reversed bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nodes[from] = struct{}{}
	g.nodes[to] = struct{}{}

	key := EdgeKey{From: from, To: to}
	if existing, ok := g.Edges[key]; ok {
		existing.CapacityVPH += capacityVPH
		return
	}

	g.Edges[key] = &Edge{
		From:        from,
		To:          to,
		CapacityVPH: capacityVPH,
		CostTime:    costTime,
		Reversed:    reversed,
	}
	g.order = append(g.order, key)
	g.outgoing[from] = append(g.outgoing[from], to)
	g.incoming[to] = append(g.incoming[to], from)
}

// HasNode проверяет наличие узла
func (g *Graph) HasNode(id int64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.nodes[id]
	return ok
}

// GetEdge возвращает ребро между двумя узлами
func (g *Graph) GetEdge(from, to int64) (*Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	edge, ok := g.Edges[EdgeKey{From: from, To: to}]
	return edge, ok
}

// GetOutgoing возвращает исходящих соседей узла в порядке вставки
func (g *Graph) GetOutgoing(nodeID int64) []int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.outgoing[nodeID]
}

// GetIncoming возвращает входящих соседей узла в порядке вставки
func (g *Graph) GetIncoming(nodeID int64) []int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.incoming[nodeID]
}

// NodeCount возвращает количество узлов
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.nodes)
}

// EdgeCount возвращает количество рёбер
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.Edges)
}

// SortedNodes возвращает узлы по возрастанию ID
func (g *Graph) SortedNodes() []int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := make([]int64, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// EdgesInOrder возвращает рёбра в порядке вставки
func (g *Graph) EdgesInOrder() []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	edges := make([]*Edge, 0, len(g.order))
	for _, key := range g.order {
		edges = append(edges, g.Edges[key])
	}
	return edges
}

// Subgraph возвращает новый граф, ограниченный узлами из keep.
// Рёбра переносятся в исходном порядке вставки.
func (g *Graph) Subgraph(keep map[int64]bool) *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	sub := NewGraph()
	for _, key := range g.order {
		if !keep[key.From] || !keep[key.To] {
			continue
		}
		edge := g.Edges[key]
		sub.AddEdge(edge.From, edge.To, edge.CapacityVPH, edge.CostTime, edge.Reversed)
	}
	return sub
}

// Clone создаёт глубокую копию графа
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	clone := NewGraph()
	for _, key := range g.order {
		edge := g.Edges[key]
		clone.AddEdge(edge.From, edge.To, edge.CapacityVPH, edge.CostTime, edge.Reversed)
	}
	return clone
}

// TotalCapacity возвращает суммарную пропускную способность рёбер
func (g *Graph) TotalCapacity() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var total float64
	for _, edge := range g.Edges {
		total += edge.CapacityVPH
	}
	return total
}

// Validate проверяет корректность графа
func (g *Graph) Validate() []error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var errs []error
	for key, edge := range g.Edges {
		if edge.From == edge.To {
			errs = append(errs, fmt.Errorf("self-loop detected at node %d", edge.From))
		}
		if edge.CapacityVPH < 0 {
			errs = append(errs, fmt.Errorf("edge %s has negative capacity", key))
		}
	}
	return errs
}
