package spatial

import (
	"fmt"
	"slices"

	"github.com/matzehuels/arranger/pkg/geom"
	"github.com/matzehuels/arranger/pkg/scene"
)

// Plane holds the segments that lie on one axis-parallel line. Key is the
// fixed coordinate: x for vertical planes, y for horizontal ones. Segment i
// spans [starts[i], ends[i]] on the orthogonal axis and belongs to owners[i].
type Plane struct {
	Vertical bool
	Key      float64

	starts []float64
	ends   []float64
	owners []*scene.Item
}

// Len returns the number of segments on the plane.
func (p *Plane) Len() int { return len(p.owners) }

// Segment returns the normalized extent and owner of segment i.
func (p *Plane) Segment(i int) (start, end float64, owner *scene.Item) {
	return p.starts[i], p.ends[i], p.owners[i]
}

func (p *Plane) add(owner *scene.Item, a, b float64) {
	if a > b {
		a, b = b, a
	}
	p.starts = append(p.starts, a)
	p.ends = append(p.ends, b)
	p.owners = append(p.owners, owner)
}

// hit returns the first segment owner whose closed range contains v.
func (p *Plane) hit(v float64, skip func(*scene.Item) bool) *scene.Item {
	for i, owner := range p.owners {
		if v < p.starts[i] || v > p.ends[i] {
			continue
		}
		if skip != nil && skip(owner) {
			continue
		}
		return owner
	}
	return nil
}

// Planes is a key-sorted collection of planes on one axis, scanned in one
// direction.
type Planes struct {
	vertical  bool
	ascending bool
	planes    []*Plane // sorted by ascending key regardless of scan direction
}

// NewPlanes returns an empty collection. Vertical collections answer rays
// along x; ascending collections answer rays towards larger coordinates.
func NewPlanes(vertical, ascending bool) *Planes {
	return &Planes{vertical: vertical, ascending: ascending}
}

// Len returns the number of planes.
func (ps *Planes) Len() int { return len(ps.planes) }

// Plane returns the plane at key, if any.
func (ps *Planes) Plane(key float64) (*Plane, bool) {
	i, ok := ps.search(key)
	if !ok {
		return nil, false
	}
	return ps.planes[i], true
}

func (ps *Planes) search(key float64) (int, bool) {
	return slices.BinarySearchFunc(ps.planes, key, func(p *Plane, k float64) int {
		switch {
		case p.Key < k:
			return -1
		case p.Key > k:
			return 1
		}
		return 0
	})
}

// AddSegment records the edge p1-p2 of owner. The two points must share the
// collection's fixed coordinate.
func (ps *Planes) AddSegment(owner *scene.Item, p1, p2 geom.Point) {
	key, a, b := p1.Y, p1.X, p2.X
	if ps.vertical {
		key, a, b = p1.X, p1.Y, p2.Y
	}
	if (ps.vertical && p1.X != p2.X) || (!ps.vertical && p1.Y != p2.Y) {
		panic(fmt.Sprintf("spatial: segment %v-%v is not on a single plane", p1, p2))
	}

	i, ok := ps.search(key)
	if !ok {
		ps.planes = slices.Insert(ps.planes, i, &Plane{Vertical: ps.vertical, Key: key})
	}
	ps.planes[i].add(owner, a, b)
}

// IntersectedItem returns the first item whose segment is crossed by the ray
// from -> to, together with the crossing point. Planes at from's own
// coordinate are ignored; planes at to's coordinate are included. Items for
// which skip returns true are transparent.
//
// The ray must point in the collection's scan direction; otherwise nothing is
// reported.
func (ps *Planes) IntersectedItem(from, to geom.Point, skip func(*scene.Item) bool) (*scene.Item, geom.Point, bool) {
	start, end := from.Y, to.Y
	if ps.vertical {
		start, end = from.X, to.X
	}
	if (ps.ascending && end <= start) || (!ps.ascending && end >= start) {
		return nil, geom.Point{}, false
	}

	i, found := ps.search(start)
	if ps.ascending {
		if found {
			i++
		}
		for ; i < len(ps.planes) && ps.planes[i].Key <= end; i++ {
			if it, pt, ok := ps.cross(ps.planes[i], from, to, skip); ok {
				return it, pt, true
			}
		}
		return nil, geom.Point{}, false
	}

	for i--; i >= 0 && ps.planes[i].Key >= end; i-- {
		if it, pt, ok := ps.cross(ps.planes[i], from, to, skip); ok {
			return it, pt, true
		}
	}
	return nil, geom.Point{}, false
}

func (ps *Planes) cross(p *Plane, from, to geom.Point, skip func(*scene.Item) bool) (*scene.Item, geom.Point, bool) {
	var pt geom.Point
	if ps.vertical {
		t := (p.Key - from.X) / (to.X - from.X)
		pt = geom.Point{X: p.Key, Y: from.Y + t*(to.Y-from.Y)}
		if it := p.hit(pt.Y, skip); it != nil {
			return it, pt, true
		}
		return nil, pt, false
	}
	t := (p.Key - from.Y) / (to.Y - from.Y)
	pt = geom.Point{X: from.X + t*(to.X-from.X), Y: p.Key}
	if it := p.hit(pt.X, skip); it != nil {
		return it, pt, true
	}
	return nil, pt, false
}
