package export

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/arranger/pkg/arrange/visibility"
	"github.com/matzehuels/arranger/pkg/errors"
	"github.com/matzehuels/arranger/pkg/geom"
)

// Format is an export encoding.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
	FormatJSON Format = "json"
)

// ValidFormats is the set of supported export formats.
var ValidFormats = map[Format]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatJSON: true,
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(f Format) error {
	if !ValidFormats[f] {
		return errors.New(errors.ErrCodeUnsupported, "invalid graph format: %q (must be one of: dot, svg, json)", f)
	}
	return nil
}

// GraphDocument is the JSON form of an explored graph.
type GraphDocument struct {
	Points []PointDocument `json:"points"`
	Edges  []EdgeDocument  `json:"edges"`
	Path   []int           `json:"path,omitempty"`
}

// PointDocument is one graph point.
type PointDocument struct {
	ID        int        `json:"id"`
	Pos       geom.Point `json:"pos"`
	Label     string     `json:"label"`
	Owner     string     `json:"owner"`
	Connector string     `json:"connector,omitempty"`
}

// EdgeDocument is one tested edge.
type EdgeDocument struct {
	A      int    `json:"a"`
	B      int    `json:"b"`
	Status string `json:"status"`
}

// ToDocument converts g to its JSON form.
func ToDocument(g *visibility.Graph, opts Options) GraphDocument {
	doc := GraphDocument{
		Points: make([]PointDocument, 0, g.Len()),
		Edges:  []EdgeDocument{},
	}
	for i := range g.Len() {
		id := visibility.PointID(i)
		p := g.Point(id)
		d := PointDocument{ID: i, Pos: p.Pos, Label: pointLabel(g, id), Owner: p.Owner.ID}
		if p.Connector != nil {
			d.Connector = p.Connector.ID
		}
		doc.Points = append(doc.Points, d)
	}
	for _, e := range g.Edges() {
		if opts.HideForbidden && e.Status == visibility.Forbidden {
			continue
		}
		doc.Edges = append(doc.Edges, EdgeDocument{A: int(e.A), B: int(e.B), Status: e.Status.String()})
	}
	for _, id := range opts.Path {
		doc.Path = append(doc.Path, int(id))
	}
	return doc
}

// Render encodes g in format.
func Render(ctx context.Context, g *visibility.Graph, format Format, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(ToDocument(g, opts), "", "  ")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode graph")
		}
		return append(data, '\n'), nil
	case FormatSVG:
		svg, err := RenderSVG(ctx, ToDOT(g, opts))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render graph")
		}
		return svg, nil
	default:
		return []byte(ToDOT(g, opts)), nil
	}
}
