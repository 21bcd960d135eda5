// Package export writes explored visibility graphs for debugging routes.
//
// Graphs are written as Graphviz DOT with every point pinned to its diagram
// position, so rendering through neato reproduces the scene geometry.
// Established edges are solid, forbidden edges dashed red, and the edges of
// a highlighted path bold blue.
package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/arranger/pkg/arrange/visibility"
)

// Options configures graph export.
type Options struct {
	// Path is highlighted when set, typically the result of path.Find.
	Path []visibility.PointID

	// HideForbidden drops edges that failed the obstacle test.
	HideForbidden bool
}

var cornerNames = [4]string{"tl", "tr", "br", "bl"}

// ToDOT converts an explored graph to Graphviz DOT. Diagram y grows downward,
// DOT y upward, so y is negated.
func ToDOT(g *visibility.Graph, opts Options) string {
	onPath := pathEdges(opts.Path)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  notranslate=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=point, width=0.06, fontsize=8, xlabel=\"\"];\n")
	buf.WriteString("\n")

	for i := range g.Len() {
		id := visibility.PointID(i)
		p := g.Point(id)
		attrs := []string{
			fmt.Sprintf("pos=\"%g,%g!\"", p.Pos.X, -p.Pos.Y),
			fmt.Sprintf("xlabel=%q", pointLabel(g, id)),
		}
		if !p.IsCorner() {
			attrs = append(attrs, "color=darkgreen", "width=0.1")
		}
		fmt.Fprintf(&buf, "  p%d [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		var attrs []string
		switch {
		case onPath[edgeKey(e.A, e.B)]:
			attrs = append(attrs, "color=blue", "penwidth=2.5")
		case e.Status == visibility.Forbidden:
			if opts.HideForbidden {
				continue
			}
			attrs = append(attrs, "color=red", "style=dashed")
		default:
			attrs = append(attrs, "color=gray40")
		}
		fmt.Fprintf(&buf, "  p%d -- p%d [%s];\n", e.A, e.B, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func pointLabel(g *visibility.Graph, id visibility.PointID) string {
	p := g.Point(id)
	if !p.IsCorner() {
		return p.Connector.ID
	}
	corners, _ := g.Corners(p.Owner)
	for i, c := range corners {
		if c == id {
			return p.Owner.ID + "." + cornerNames[i]
		}
	}
	return p.Owner.ID
}

type edge struct{ a, b visibility.PointID }

func edgeKey(a, b visibility.PointID) edge {
	if b < a {
		a, b = b, a
	}
	return edge{a, b}
}

func pathEdges(ids []visibility.PointID) map[edge]bool {
	out := make(map[edge]bool, len(ids))
	for i := 1; i < len(ids); i++ {
		out[edgeKey(ids[i-1], ids[i])] = true
	}
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz with the neato engine,
// which honors pinned positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
