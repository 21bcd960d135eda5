// Package placement assigns default positions to items that have none.
//
// Items are packed by a flow cursor: the largest item decides the initial
// flow axis, following items are appended along that axis while they fit the
// current bounding box, and an item that does not fit opens a new line
// outside the box on the other axis. The box only ever grows.
package placement

import (
	"slices"

	"github.com/matzehuels/arranger/pkg/arrange/collision"
	"github.com/matzehuels/arranger/pkg/geom"
	"github.com/matzehuels/arranger/pkg/scene"
)

// DefaultMargin is the gap kept between placed items.
const DefaultMargin = 20.0

// Cursor hands out non-overlapping positions.
type Cursor struct {
	margin   float64
	extent   geom.Rect
	empty    bool
	started  bool
	vertical bool      // current flow runs along y
	last     geom.Rect // previous placement on the current line
}

// NewCursor returns a cursor that places around extent. A zero extent starts
// packing at the origin; otherwise the first item opens a new line outside
// extent.
func NewCursor(margin float64, extent geom.Rect) *Cursor {
	return &Cursor{margin: margin, extent: extent, empty: extent == geom.Rect{}}
}

// Extent returns the bounding box of everything placed so far, including the
// initial extent.
func (c *Cursor) Extent() geom.Rect { return c.extent }

// Next returns the position for an item of size s and grows the extent.
func (c *Cursor) Next(s geom.Size) geom.Point {
	if !c.started {
		c.started = true
		c.vertical = s.W >= s.H // wide items stack, tall items line up
		if c.empty {
			return c.place(geom.RectAt(geom.Point{}, s))
		}
		return c.openLine(s)
	}

	var r geom.Rect
	if c.vertical {
		r = geom.RectAt(geom.Point{X: c.last.X, Y: c.last.Bottom() + c.margin}, s)
		if r.Bottom() > c.extent.Bottom() {
			return c.openLine(s)
		}
	} else {
		r = geom.RectAt(geom.Point{X: c.last.Right() + c.margin, Y: c.last.Y}, s)
		if r.Right() > c.extent.Right() {
			return c.openLine(s)
		}
	}
	return c.place(r)
}

// openLine starts a new line beyond the extent and flips the flow axis: a
// vertical flow continues with a row below the box, a horizontal one with a
// column to its right.
func (c *Cursor) openLine(s geom.Size) geom.Point {
	var origin geom.Point
	if c.vertical {
		origin = geom.Point{X: c.extent.X, Y: c.extent.Bottom() + c.margin}
	} else {
		origin = geom.Point{X: c.extent.Right() + c.margin, Y: c.extent.Y}
	}
	c.vertical = !c.vertical
	return c.place(geom.RectAt(origin, s))
}

func (c *Cursor) place(r geom.Rect) geom.Point {
	if c.empty {
		c.extent, c.empty = r, false
	} else {
		c.extent = c.extent.Union(r)
	}
	c.last = r
	return r.Position()
}

// Place positions every unplaced item in siblings, which share one parent.
// Placed siblings seed the cursor extent so new items land outside them.
// Items are packed largest first; the returned slice lists them in that
// order.
func Place(siblings []*scene.Item, margin float64) []*scene.Item {
	var extent geom.Rect
	var pending []*scene.Item
	for _, it := range siblings {
		if it.Placed {
			extent = extent.Union(it.LocalRect())
			continue
		}
		pending = append(pending, it)
	}
	if len(pending) == 0 {
		return nil
	}

	slices.SortStableFunc(pending, func(a, b *scene.Item) int {
		switch ma, mb := a.Size.Max(), b.Size.Max(); {
		case ma > mb:
			return -1
		case ma < mb:
			return 1
		}
		return 0
	})

	cur := NewCursor(margin, extent)
	for _, it := range pending {
		it.Position = cur.Next(it.Size)
		it.Placed = true
	}
	return pending
}

// PlaceScene places the unplaced items of every sibling group in s. It
// returns the number of items placed and of containers grown to fit.
//
// Containers are filled deepest first and stretched to their content before
// their own siblings are placed, so every group is packed with the sizes its
// members end up with.
func PlaceScene(s *scene.Scene, margin float64) (placed, stretched int) {
	for _, c := range s.Containers() {
		placed += len(Place(c.Children, margin))
		if collision.Stretch(c) {
			stretched++
		}
	}
	placed += len(Place(s.Children(nil), margin))
	return placed, stretched
}
