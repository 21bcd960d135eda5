package spatial

import (
	"github.com/matzehuels/arranger/pkg/geom"
	"github.com/matzehuels/arranger/pkg/scene"
)

// Hit is an obstacle found along a ray.
type Hit struct {
	Item  *scene.Item
	Point geom.Point // where the ray enters the item's border
}

// Index holds the four plane collections built from one snapshot of item
// rectangles.
type Index struct {
	right *Planes // left edges
	left  *Planes // right edges
	down  *Planes // top edges
	up    *Planes // bottom edges
	items int
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		right: NewPlanes(true, true),
		left:  NewPlanes(true, false),
		down:  NewPlanes(false, true),
		up:    NewPlanes(false, false),
	}
}

// Build indexes the current global rectangle of every item.
func Build(items []*scene.Item) *Index {
	ix := NewIndex()
	for _, it := range items {
		ix.Add(it, it.Rect())
	}
	return ix
}

// Add indexes the four edges of r as belonging to it.
func (ix *Index) Add(it *scene.Item, r geom.Rect) {
	c := r.Corners() // TL, TR, BR, BL
	ix.down.AddSegment(it, c[0], c[1])
	ix.up.AddSegment(it, c[3], c[2])
	ix.right.AddSegment(it, c[0], c[3])
	ix.left.AddSegment(it, c[1], c[2])
	ix.items++
}

// Len returns the number of indexed items.
func (ix *Index) Len() int { return ix.items }

// FirstObstacle returns the item nearest to from whose border the ray
// from -> to enters. The vertical and horizontal planes are queried
// independently and the hit with the smaller Manhattan distance to from wins.
// Items for which skip returns true are ignored; skip may be nil.
func (ix *Index) FirstObstacle(from, to geom.Point, skip func(*scene.Item) bool) (Hit, bool) {
	if from == to {
		return Hit{}, false
	}

	var hits []Hit
	if vp := ix.verticalFor(from, to); vp != nil {
		if it, pt, ok := vp.IntersectedItem(from, to, skip); ok {
			hits = append(hits, Hit{Item: it, Point: pt})
		}
	}
	if hp := ix.horizontalFor(from, to); hp != nil {
		if it, pt, ok := hp.IntersectedItem(from, to, skip); ok {
			hits = append(hits, Hit{Item: it, Point: pt})
		}
	}

	switch len(hits) {
	case 0:
		return Hit{}, false
	case 1:
		return hits[0], true
	}
	if hits[1].Point.ManhattanDistance(from) < hits[0].Point.ManhattanDistance(from) {
		return hits[1], true
	}
	return hits[0], true
}

func (ix *Index) verticalFor(from, to geom.Point) *Planes {
	switch {
	case to.X > from.X:
		return ix.right
	case to.X < from.X:
		return ix.left
	}
	return nil
}

func (ix *Index) horizontalFor(from, to geom.Point) *Planes {
	switch {
	case to.Y > from.Y:
		return ix.down
	case to.Y < from.Y:
		return ix.up
	}
	return nil
}
