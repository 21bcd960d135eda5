package scene

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/arranger/pkg/geom"
)

// Side identifies the border of an item a connector sits on.
type Side int

const (
	Top Side = iota
	Bottom
	Left
	Right
)

// ParseSide converts a document side name. Matching is case-insensitive.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return Top, nil
	case "bottom":
		return Bottom, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown side %q", s)
}

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("side(%d)", int(s))
}

// Item is a rectangular diagram element.
type Item struct {
	ID string

	// Position is relative to the parent's content origin. It is only
	// meaningful when Placed is true.
	Position geom.Point
	Placed   bool

	Size    geom.Size
	Z       int
	Padding float64

	Parent     *Item
	Children   []*Item
	Connectors []*Connector
}

// IsRoot reports whether the item sits directly on the canvas.
func (it *Item) IsRoot() bool { return it.Parent == nil }

// IsContainer reports whether the item has children.
func (it *Item) IsContainer() bool { return len(it.Children) > 0 }

// ContentOrigin returns the global position that children are relative to.
func (it *Item) ContentOrigin() geom.Point {
	g := it.Global()
	return geom.Point{X: g.X + it.Padding, Y: g.Y + it.Padding}
}

// ContentSize returns the size of the area available to children.
func (it *Item) ContentSize() geom.Size {
	return geom.Size{W: it.Size.W - 2*it.Padding, H: it.Size.H - 2*it.Padding}
}

// Global returns the item's top-left corner in canvas coordinates.
func (it *Item) Global() geom.Point {
	if it.Parent == nil {
		return it.Position
	}
	return it.Parent.ContentOrigin().Add(it.Position)
}

// Rect returns the item's rectangle in canvas coordinates.
func (it *Item) Rect() geom.Rect { return geom.RectAt(it.Global(), it.Size) }

// LocalRect returns the item's rectangle relative to its parent's content origin.
func (it *Item) LocalRect() geom.Rect { return geom.RectAt(it.Position, it.Size) }

// Depth returns the nesting depth; root items have depth 0.
func (it *Item) Depth() int {
	d := 0
	for p := it.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// IsAncestorOf reports whether it contains o at any nesting level.
func (it *Item) IsAncestorOf(o *Item) bool {
	for p := o.Parent; p != nil; p = p.Parent {
		if p == it {
			return true
		}
	}
	return false
}

func (it *Item) String() string { return it.ID }

// Connector is an attachment point on an item's border.
type Connector struct {
	ID   string
	Item *Item
	Side Side

	// Offset is the fractional position along the side, measured from the
	// top or left end.
	Offset float64
}

// Point returns the connect point in canvas coordinates.
func (c *Connector) Point() geom.Point {
	r := c.Item.Rect()
	switch c.Side {
	case Top:
		return geom.Point{X: r.Left() + c.Offset*r.W, Y: r.Top()}
	case Bottom:
		return geom.Point{X: r.Left() + c.Offset*r.W, Y: r.Bottom()}
	case Left:
		return geom.Point{X: r.Left(), Y: r.Top() + c.Offset*r.H}
	case Right:
		return geom.Point{X: r.Right(), Y: r.Top() + c.Offset*r.H}
	}
	panic(fmt.Sprintf("scene: unsupported side %d", int(c.Side)))
}

// Join is a requested route between two connectors.
type Join struct {
	ID       string
	From, To *Connector
}

// Scene is the set of items and joins arranged by one layout pass.
type Scene struct {
	Items []*Item
	Joins []*Join

	items      map[string]*Item
	connectors map[string]*Connector
	joins      map[string]*Join
}

// Item looks up an item by ID.
func (s *Scene) Item(id string) (*Item, bool) {
	it, ok := s.items[id]
	return it, ok
}

// Connector looks up a connector by ID.
func (s *Scene) Connector(id string) (*Connector, bool) {
	c, ok := s.connectors[id]
	return c, ok
}

// Join looks up a join by ID.
func (s *Scene) Join(id string) (*Join, bool) {
	j, ok := s.joins[id]
	return j, ok
}

// Children returns the items directly inside parent, or the root items when
// parent is nil, in document order.
func (s *Scene) Children(parent *Item) []*Item {
	if parent != nil {
		return parent.Children
	}
	var roots []*Item
	for _, it := range s.Items {
		if it.Parent == nil {
			roots = append(roots, it)
		}
	}
	return roots
}

// Containers returns every item with children, deepest first.
func (s *Scene) Containers() []*Item {
	var out []*Item
	for _, it := range s.Items {
		if it.IsContainer() {
			out = append(out, it)
		}
	}
	slices.SortStableFunc(out, func(a, b *Item) int { return b.Depth() - a.Depth() })
	return out
}

// Bounds returns the union of all root item rectangles.
func (s *Scene) Bounds() geom.Rect {
	var r geom.Rect
	for _, it := range s.Children(nil) {
		r = r.Union(it.Rect())
	}
	return r
}

// SortByZ returns a copy of items sorted by ascending z-order. Items with equal
// z keep their relative order.
func SortByZ(items []*Item) []*Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b *Item) int { return a.Z - b.Z })
	return out
}
