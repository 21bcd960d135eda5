// Package visibility builds the graph of navigable route points.
//
// Every item contributes its four corners and every connector its connect
// point. Edges are discovered lazily by [Graph.Explore]: only the points a
// route might touch are ever tested against the spatial index.
package visibility

import (
	"slices"

	"github.com/matzehuels/arranger/pkg/arrange/spatial"
	"github.com/matzehuels/arranger/pkg/geom"
	"github.com/matzehuels/arranger/pkg/scene"
)

// PointID is a handle into a Graph's point arena.
type PointID int

// EdgeStatus records the outcome of testing an edge. Untested edges have no
// status.
type EdgeStatus uint8

const (
	Established EdgeStatus = iota + 1
	Forbidden
)

func (s EdgeStatus) String() string {
	switch s {
	case Established:
		return "established"
	case Forbidden:
		return "forbidden"
	}
	return "unexplored"
}

// Corner order of [Graph.Corners], matching geom.Rect.Corners.
const (
	topLeft = iota
	topRight
	bottomRight
	bottomLeft
)

// Point is a node of the graph.
type Point struct {
	Pos       geom.Point
	Angle     ViewAngle
	Owner     *scene.Item
	Connector *scene.Connector // nil for corners

	edges map[PointID]EdgeStatus
}

// IsCorner reports whether p is an item corner.
func (p *Point) IsCorner() bool { return p.Connector == nil }

// Graph is the visibility graph of one scene snapshot. It is scratch state
// for a single routing query: edge statuses depend on which containers the
// query treats as transparent.
type Graph struct {
	points     []Point
	corners    map[*scene.Item][4]PointID
	connectors map[*scene.Connector]PointID

	index *spatial.Index
	skip  func(*scene.Item) bool

	tested int
}

// New creates the corner and connector points of every item in s and links
// each item's boundary. ix must be built from the same positions.
func New(s *scene.Scene, ix *spatial.Index) *Graph {
	g := &Graph{
		corners:    make(map[*scene.Item][4]PointID, len(s.Items)),
		connectors: make(map[*scene.Connector]PointID),
		index:      ix,
	}
	for _, it := range s.Items {
		g.addItem(it)
	}
	return g
}

func (g *Graph) add(p Point) PointID {
	p.edges = make(map[PointID]EdgeStatus)
	g.points = append(g.points, p)
	return PointID(len(g.points) - 1)
}

func (g *Graph) addItem(it *scene.Item) {
	var ids [4]PointID
	for i, c := range it.Rect().Corners() {
		ids[i] = g.add(Point{Pos: c, Angle: cornerAngle(i), Owner: it})
	}
	for i := range ids {
		g.SetEdge(ids[i], ids[(i+1)%4], Established)
	}
	g.corners[it] = ids

	for _, c := range it.Connectors {
		id := g.add(Point{Pos: c.Point(), Angle: Cone(c.Side), Owner: it, Connector: c})
		g.connectors[c] = id
		for _, corner := range sideCorners(c.Side) {
			g.SetEdge(id, ids[corner], Established)
		}
	}
}

func sideCorners(side scene.Side) [2]int {
	switch side {
	case scene.Top:
		return [2]int{topLeft, topRight}
	case scene.Bottom:
		return [2]int{bottomLeft, bottomRight}
	case scene.Left:
		return [2]int{topLeft, bottomLeft}
	default:
		return [2]int{topRight, bottomRight}
	}
}

// Len returns the number of points.
func (g *Graph) Len() int { return len(g.points) }

// Point returns the point with handle id.
func (g *Graph) Point(id PointID) *Point { return &g.points[id] }

// Corners returns the corner handles of it in TL, TR, BR, BL order.
func (g *Graph) Corners(it *scene.Item) ([4]PointID, bool) {
	ids, ok := g.corners[it]
	return ids, ok
}

// ConnectorPoint returns the handle of c's connect point.
func (g *Graph) ConnectorPoint(c *scene.Connector) (PointID, bool) {
	id, ok := g.connectors[c]
	return id, ok
}

// SetEdge records status on both endpoints.
func (g *Graph) SetEdge(a, b PointID, status EdgeStatus) {
	g.points[a].edges[b] = status
	g.points[b].edges[a] = status
}

// Status returns the recorded status of edge a-b.
func (g *Graph) Status(a, b PointID) (EdgeStatus, bool) {
	s, ok := g.points[a].edges[b]
	return s, ok
}

// Neighbors returns the points joined to id by established edges, in handle
// order.
func (g *Graph) Neighbors(id PointID) []PointID {
	var out []PointID
	for n, s := range g.points[id].edges {
		if s == Established {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return out
}

// Edge is an undirected edge with a known status.
type Edge struct {
	A, B   PointID
	Status EdgeStatus
}

// Edges returns every recorded edge once, with A < B.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for a := range g.points {
		for b, s := range g.points[a].edges {
			if PointID(a) < b {
				out = append(out, Edge{A: PointID(a), B: b, Status: s})
			}
		}
	}
	slices.SortFunc(out, func(x, y Edge) int {
		if x.A != y.A {
			return int(x.A - y.A)
		}
		return int(x.B - y.B)
	})
	return out
}

// Tested returns how many edges were checked against the spatial index.
func (g *Graph) Tested() int { return g.tested }
