// Package path finds shortest routes through an explored visibility graph.
package path

import (
	"container/heap"
	"math"
	"slices"

	"github.com/matzehuels/arranger/pkg/arrange/visibility"
	"github.com/matzehuels/arranger/pkg/geom"
)

// Path is a route through the graph.
type Path struct {
	IDs    []visibility.PointID
	Points []geom.Point

	// Cost[i] is the cumulative squared edge length from the start to IDs[i].
	Cost []float64
}

// step is the relaxation record of one reached point.
type step struct {
	prev visibility.PointID
	cost float64
}

type queueItem struct {
	id   visibility.PointID
	cost float64
}

type queue []queueItem

func (q queue) Len() int           { return len(q) }
func (q queue) Less(i, j int) bool { return q[i].cost < q[j].cost }
func (q queue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any)        { *q = append(*q, x.(queueItem)) }
func (q *queue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// Find returns the cheapest route from -> to over established edges, where an
// edge costs its squared length. ok is false when to is unreachable.
func Find(g *visibility.Graph, from, to visibility.PointID) (p Path, ok bool) {
	steps := map[visibility.PointID]step{from: {prev: -1}}

	q := &queue{{id: from}}
	for q.Len() > 0 {
		cur := heap.Pop(q).(queueItem)
		if cur.cost > steps[cur.id].cost {
			continue
		}
		if cur.id == to {
			break
		}
		pos := g.Point(cur.id).Pos
		for _, n := range g.Neighbors(cur.id) {
			cost := cur.cost + pos.SquaredDistance(g.Point(n).Pos)
			if s, seen := steps[n]; seen && s.cost <= cost {
				continue
			}
			steps[n] = step{prev: cur.id, cost: cost}
			heap.Push(q, queueItem{id: n, cost: cost})
		}
	}

	if _, reached := steps[to]; !reached {
		return Path{}, false
	}
	for id := to; id != -1; id = steps[id].prev {
		p.IDs = append(p.IDs, id)
		p.Points = append(p.Points, g.Point(id).Pos)
		p.Cost = append(p.Cost, steps[id].cost)
	}
	slices.Reverse(p.IDs)
	slices.Reverse(p.Points)
	slices.Reverse(p.Cost)
	return p, true
}

// Length returns the Euclidean length of the route.
func (p Path) Length() float64 {
	var l float64
	for i := 1; i < len(p.Points); i++ {
		l += math.Sqrt(p.Points[i-1].SquaredDistance(p.Points[i]))
	}
	return l
}
