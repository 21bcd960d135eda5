package visibility

import (
	"github.com/matzehuels/arranger/pkg/scene"
)

type obstacleKey struct {
	from     PointID
	obstacle *scene.Item
}

type explorer struct {
	g         *Graph
	queue     []PointID
	processed map[obstacleKey]bool
}

// Explore discovers the edges a route from -> to can use and returns the
// handles of both connect points.
//
// The search expands breadth-first from from. Every visited point is tested
// against the target set: to itself and the four corners of to's item. When
// an edge is blocked, the corners of the blocking item are tested and queued
// next, so the frontier grows around each obstacle it meets. Established
// neighbors of visited points are queued as well.
//
// Containers of either endpoint are transparent: a route between two children
// never has to leave their container.
func (g *Graph) Explore(from, to *scene.Connector) (src, dst PointID) {
	src, ok := g.connectors[from]
	if !ok {
		panic("visibility: connector " + from.ID + " is not part of the graph")
	}
	dst, ok = g.connectors[to]
	if !ok {
		panic("visibility: connector " + to.ID + " is not part of the graph")
	}

	g.skip = func(it *scene.Item) bool {
		return it.IsAncestorOf(from.Item) || it.IsAncestorOf(to.Item)
	}

	corners := g.corners[to.Item]
	targets := append([]PointID{dst}, corners[:]...)

	e := &explorer{g: g, queue: []PointID{src}, processed: make(map[obstacleKey]bool)}
	visited := make(map[PointID]bool)
	for len(e.queue) > 0 {
		p := e.queue[0]
		e.queue = e.queue[1:]
		if visited[p] || p == dst {
			continue
		}
		visited[p] = true

		for _, t := range targets {
			e.tryAddEdge(p, t)
		}
		for _, n := range g.Neighbors(p) {
			if !visited[n] {
				e.queue = append(e.queue, n)
			}
		}
	}
	return src, dst
}

// tryAddEdge tests a-b once. A blocked edge pulls in the obstacle's corners.
func (e *explorer) tryAddEdge(a, b PointID) {
	g := e.g
	if a == b {
		return
	}
	pa, pb := &g.points[a], &g.points[b]
	if !pa.Angle.Sees(pa.Pos, pb.Pos) || !pb.Angle.Sees(pb.Pos, pa.Pos) {
		return
	}
	if _, known := g.Status(a, b); known {
		return
	}

	g.tested++
	hit, blocked := g.index.FirstObstacle(pa.Pos, pb.Pos, g.skip)
	if !blocked || hit.Item == pa.Owner || hit.Item == pb.Owner {
		g.SetEdge(a, b, Established)
		return
	}
	g.SetEdge(a, b, Forbidden)
	e.enqueueWithObstacleEdges(a, hit.Item)
}

func (e *explorer) enqueueWithObstacleEdges(from PointID, obstacle *scene.Item) {
	key := obstacleKey{from: from, obstacle: obstacle}
	if e.processed[key] {
		return
	}
	e.processed[key] = true

	for _, c := range e.g.corners[obstacle] {
		e.tryAddEdge(from, c)
		e.queue = append(e.queue, c)
	}
}
