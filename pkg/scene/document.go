package scene

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/arranger/pkg/geom"
)

// =============================================================================
// Document - Scene Serialization
// =============================================================================

// Document is the serialized form of a scene.
type Document struct {
	Items []ItemDocument `json:"items" yaml:"items" validate:"dive"`
	Joins []JoinDocument `json:"joins,omitempty" yaml:"joins,omitempty" validate:"dive"`
}

// ItemDocument describes one item. X and Y are relative to the parent's
// content origin; leaving both unset marks the item as unplaced.
type ItemDocument struct {
	ID         string              `json:"id,omitempty" yaml:"id,omitempty"`
	X          *float64            `json:"x,omitempty" yaml:"x,omitempty"`
	Y          *float64            `json:"y,omitempty" yaml:"y,omitempty"`
	Width      float64             `json:"width" yaml:"width" validate:"gt=0"`
	Height     float64             `json:"height" yaml:"height" validate:"gt=0"`
	Z          int                 `json:"z,omitempty" yaml:"z,omitempty"`
	Parent     string              `json:"parent,omitempty" yaml:"parent,omitempty"`
	Padding    *float64            `json:"padding,omitempty" yaml:"padding,omitempty" validate:"omitempty,gte=0"`
	Connectors []ConnectorDocument `json:"connectors,omitempty" yaml:"connectors,omitempty" validate:"dive"`
}

// ConnectorDocument describes a connector on its owning item.
type ConnectorDocument struct {
	ID     string   `json:"id" yaml:"id" validate:"required"`
	Side   string   `json:"side" yaml:"side" validate:"required,oneof=top bottom left right"`
	Offset *float64 `json:"offset,omitempty" yaml:"offset,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// JoinDocument requests a route between two connectors.
type JoinDocument struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	From string `json:"from" yaml:"from" validate:"required"`
	To   string `json:"to" yaml:"to" validate:"required"`
}

// DefaultConnectorOffset places connectors at the middle of their side.
const DefaultConnectorOffset = 0.5

// =============================================================================
// Document → Scene
// =============================================================================

// Build validates doc and resolves its references into a Scene.
// Items and joins without an ID receive a random UUID. defaultPadding applies
// to items that do not set one.
func Build(doc Document, defaultPadding float64) (*Scene, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}

	s := &Scene{
		items:      make(map[string]*Item, len(doc.Items)),
		connectors: make(map[string]*Connector),
		joins:      make(map[string]*Join, len(doc.Joins)),
	}

	for _, d := range doc.Items {
		it := &Item{
			ID:      d.ID,
			Size:    geom.Size{W: d.Width, H: d.Height},
			Z:       d.Z,
			Padding: defaultPadding,
		}
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		if d.X != nil || d.Y != nil {
			it.Placed = true
			it.Position = geom.Point{X: deref(d.X), Y: deref(d.Y)}
		}
		if d.Padding != nil {
			it.Padding = *d.Padding
		}
		for _, cd := range d.Connectors {
			side, _ := ParseSide(cd.Side) // checked by Validate
			c := &Connector{ID: cd.ID, Item: it, Side: side, Offset: DefaultConnectorOffset}
			if cd.Offset != nil {
				c.Offset = *cd.Offset
			}
			it.Connectors = append(it.Connectors, c)
			s.connectors[c.ID] = c
		}
		s.Items = append(s.Items, it)
		s.items[it.ID] = it
	}

	for i, d := range doc.Items {
		if d.Parent == "" {
			continue
		}
		child, parent := s.Items[i], s.items[d.Parent]
		child.Parent = parent
		parent.Children = append(parent.Children, child)
	}

	for _, d := range doc.Joins {
		j := &Join{ID: d.ID, From: s.connectors[d.From], To: s.connectors[d.To]}
		if j.ID == "" {
			j.ID = uuid.NewString()
		}
		s.Joins = append(s.Joins, j)
		s.joins[j.ID] = j
	}

	return s, nil
}

// ToDocument converts a scene back to its serialized form. Unplaced items keep
// no coordinates.
func ToDocument(s *Scene) Document {
	doc := Document{
		Items: make([]ItemDocument, 0, len(s.Items)),
		Joins: make([]JoinDocument, 0, len(s.Joins)),
	}
	for _, it := range s.Items {
		d := ItemDocument{
			ID:      it.ID,
			Width:   it.Size.W,
			Height:  it.Size.H,
			Z:       it.Z,
			Padding: ptr(it.Padding),
		}
		if it.Parent != nil {
			d.Parent = it.Parent.ID
		}
		if it.Placed {
			d.X, d.Y = ptr(it.Position.X), ptr(it.Position.Y)
		}
		for _, c := range it.Connectors {
			d.Connectors = append(d.Connectors, ConnectorDocument{
				ID:     c.ID,
				Side:   c.Side.String(),
				Offset: ptr(c.Offset),
			})
		}
		doc.Items = append(doc.Items, d)
	}
	for _, j := range s.Joins {
		doc.Joins = append(doc.Joins, JoinDocument{ID: j.ID, From: j.From.ID, To: j.To.ID})
	}
	return doc
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func ptr(v float64) *float64 { return &v }

// =============================================================================
// ResultDocument - Arrangement Results
// =============================================================================

// ResultDocument is the serialized result of a layout pass.
type ResultDocument struct {
	Items  []PlacedItem `json:"items" yaml:"items"`
	Routes []Route      `json:"routes,omitempty" yaml:"routes,omitempty"`
	Bounds Bounds       `json:"bounds" yaml:"bounds"`
	Stats  Stats        `json:"stats" yaml:"stats"`
}

// Stats summarizes the work of a layout pass.
type Stats struct {
	Items      int   `json:"items" yaml:"items"`
	Joins      int   `json:"joins" yaml:"joins"`
	Placed     int   `json:"placed" yaml:"placed"`
	Moves      int   `json:"moves" yaml:"moves"`
	Stretched  int   `json:"stretched" yaml:"stretched"`
	Routed     int   `json:"routed" yaml:"routed"`
	Unrouted   int   `json:"unrouted" yaml:"unrouted"`
	DurationMS int64 `json:"duration_ms" yaml:"duration_ms"`
}

// PlacedItem is an item's final placement. X/Y are local to the parent's
// content origin, GlobalX/GlobalY are canvas coordinates.
type PlacedItem struct {
	ID      string  `json:"id" yaml:"id"`
	Parent  string  `json:"parent,omitempty" yaml:"parent,omitempty"`
	X       float64 `json:"x" yaml:"x"`
	Y       float64 `json:"y" yaml:"y"`
	GlobalX float64 `json:"global_x" yaml:"global_x"`
	GlobalY float64 `json:"global_y" yaml:"global_y"`
	Width   float64 `json:"width" yaml:"width"`
	Height  float64 `json:"height" yaml:"height"`
}

// Route is the polyline computed for one join.
type Route struct {
	Join   string       `json:"join" yaml:"join"`
	From   string       `json:"from" yaml:"from"`
	To     string       `json:"to" yaml:"to"`
	Points []geom.Point `json:"points" yaml:"points"`

	// Routed is false when the route fell back to a direct line.
	Routed bool `json:"routed" yaml:"routed"`
}

// Bounds is the bounding box of all root items.
type Bounds struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Placements captures the current position of every item in s.
func Placements(s *Scene) []PlacedItem {
	out := make([]PlacedItem, 0, len(s.Items))
	for _, it := range s.Items {
		g := it.Global()
		p := PlacedItem{
			ID:      it.ID,
			X:       it.Position.X,
			Y:       it.Position.Y,
			GlobalX: g.X,
			GlobalY: g.Y,
			Width:   it.Size.W,
			Height:  it.Size.H,
		}
		if it.Parent != nil {
			p.Parent = it.Parent.ID
		}
		out = append(out, p)
	}
	return out
}

// BoundsOf converts a rectangle to its serialized form.
func BoundsOf(r geom.Rect) Bounds {
	return Bounds{X: r.X, Y: r.Y, Width: r.W, Height: r.H}
}

func (r Route) String() string {
	return fmt.Sprintf("%s: %v", r.Join, r.Points)
}
