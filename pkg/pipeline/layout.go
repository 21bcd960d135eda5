package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/arranger/pkg/arrange/collision"
	"github.com/matzehuels/arranger/pkg/arrange/path"
	"github.com/matzehuels/arranger/pkg/arrange/placement"
	"github.com/matzehuels/arranger/pkg/arrange/spatial"
	"github.com/matzehuels/arranger/pkg/arrange/visibility"
	"github.com/matzehuels/arranger/pkg/errors"
	"github.com/matzehuels/arranger/pkg/geom"
	"github.com/matzehuels/arranger/pkg/observability"
	"github.com/matzehuels/arranger/pkg/scene"
)

// =============================================================================
// Layout Pass
// =============================================================================

// Arrange runs a complete pass over s without caching. Item positions and
// container sizes are updated in place.
func Arrange(ctx context.Context, s *scene.Scene, opts Options) (scene.ResultDocument, error) {
	opts.SetDefaults()
	start := time.Now()

	stats, err := Prepare(ctx, s, opts)
	if err != nil {
		return scene.ResultDocument{}, err
	}

	ix := spatial.Build(s.Items)
	doc := scene.ResultDocument{Items: scene.Placements(s)}
	for _, j := range s.Joins {
		if !opts.routes(j.ID) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return scene.ResultDocument{}, err
		}
		rt := routeJoin(ctx, s, ix, j, opts)
		if rt.Routed {
			stats.Routed++
		} else {
			stats.Unrouted++
		}
		doc.Routes = append(doc.Routes, rt)
	}

	doc.Bounds = scene.BoundsOf(s.Bounds())
	stats.Items = len(s.Items)
	stats.Joins = len(s.Joins)
	stats.DurationMS = time.Since(start).Milliseconds()
	doc.Stats = stats
	return doc, nil
}

// Prepare runs the item stages of a pass: placement with container
// stretching, then collision repair when enabled. Routing is left to the caller.
func Prepare(ctx context.Context, s *scene.Scene, opts Options) (scene.Stats, error) {
	opts.SetDefaults()
	var stats scene.Stats

	// Placement already fits every container to its children.
	stats.Placed, stats.Stretched = placement.PlaceScene(s, opts.Margin)
	opts.Logger.Debug("placed items", "placed", stats.Placed, "stretched", stats.Stretched, "margin", opts.Margin)

	if err := ctx.Err(); err != nil {
		return stats, err
	}

	if !opts.ItemAvoidance {
		return stats, nil
	}

	repairStart := time.Now()
	rep := &collision.Repairer{Logger: opts.Logger}
	if err := rep.Repair(s); err != nil {
		return stats, err
	}
	rs := rep.Stats()
	stats.Moves = rs.Moves
	stats.Stretched += rs.Stretched
	duration := time.Since(repairStart)
	observability.Pipeline().OnRepairComplete(ctx, rs.Moves, duration)
	opts.Logger.Debug("repaired collisions",
		"groups", rs.Groups,
		"moves", rs.Moves,
		"retries", rs.Retries,
		"duration", duration)
	return stats, nil
}

// routeJoin computes the route of j. A join without a path through the
// visibility graph falls back to the direct line with Routed unset.
func routeJoin(ctx context.Context, s *scene.Scene, ix *spatial.Index, j *scene.Join, opts Options) scene.Route {
	start := time.Now()
	from, to := j.From.Point(), j.To.Point()
	rt := scene.Route{
		Join:   j.ID,
		From:   j.From.ID,
		To:     j.To.ID,
		Points: []geom.Point{from, to},
	}
	defer func() {
		observability.Pipeline().OnRouteComplete(ctx, j.ID, rt.Routed, len(rt.Points), time.Since(start))
	}()

	if !opts.JoinAvoidance {
		return rt
	}

	g := visibility.New(s, ix)
	src, dst := g.Explore(j.From, j.To)
	p, ok := path.Find(g, src, dst)
	if !ok {
		opts.Logger.Debug("no route, using direct line", "join", j.ID, "points", g.Len(), "tested", g.Tested())
		return rt
	}

	pts := p.Points
	if len(pts) == 1 {
		pts = append(pts, pts[0])
	}
	rt.Points = pts
	rt.Routed = true
	opts.Logger.Debug("routed join", "join", j.ID, "points", len(pts), "length", p.Length())
	return rt
}

// ExploreJoin runs the item stages on s and returns the visibility graph
// explored for join id, together with the handles of its endpoints.
func ExploreJoin(ctx context.Context, s *scene.Scene, id string, opts Options) (*visibility.Graph, visibility.PointID, visibility.PointID, error) {
	j, ok := s.Join(id)
	if !ok {
		return nil, 0, 0, errors.New(errors.ErrCodeNotFound, "join %q not found", id)
	}
	if _, err := Prepare(ctx, s, opts); err != nil {
		return nil, 0, 0, err
	}
	g := visibility.New(s, spatial.Build(s.Items))
	src, dst := g.Explore(j.From, j.To)
	return g, src, dst, nil
}
