package spatial

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/arranger/pkg/geom"
	"github.com/matzehuels/arranger/pkg/scene"
)

func item(id string, x, y, w, h float64) *scene.Item {
	return &scene.Item{ID: id, Placed: true, Position: geom.Point{X: x, Y: y}, Size: geom.Size{W: w, H: h}}
}

func TestAddSegmentNormalizes(t *testing.T) {
	ps := NewPlanes(true, true)
	a := item("a", 0, 0, 1, 1)
	ps.AddSegment(a, geom.Point{X: 5, Y: 30}, geom.Point{X: 5, Y: 10})
	ps.AddSegment(a, geom.Point{X: 2, Y: 0}, geom.Point{X: 2, Y: 1})
	ps.AddSegment(a, geom.Point{X: 5, Y: -4}, geom.Point{X: 5, Y: -8})

	if ps.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ps.Len())
	}
	p, ok := ps.Plane(5)
	if !ok {
		t.Fatal("Plane(5) not found")
	}
	if p.Len() != 2 {
		t.Fatalf("plane 5 Len() = %d, want 2", p.Len())
	}
	for i := range p.Len() {
		start, end, _ := p.Segment(i)
		if start > end {
			t.Errorf("segment %d = [%v, %v], want start <= end", i, start, end)
		}
	}
	if s, e, _ := p.Segment(0); s != 10 || e != 30 {
		t.Errorf("Segment(0) = [%v, %v], want [10, 30]", s, e)
	}
}

func TestAddSegmentOffPlanePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("AddSegment() did not panic for a diagonal segment")
		}
	}()
	NewPlanes(false, true).AddSegment(nil, geom.Point{X: 0, Y: 0}, geom.Point{X: 1, Y: 1})
}

func TestIntersectedItem(t *testing.T) {
	near := item("near", 40, -10, 20, 20)
	far := item("far", 80, -10, 20, 20)
	ix := Build([]*scene.Item{far, near})

	tests := []struct {
		name     string
		from, to geom.Point
		want     *scene.Item
		wantPt   geom.Point
	}{
		{"nearest first", geom.Point{X: 0, Y: 0}, geom.Point{X: 200, Y: 0}, near, geom.Point{X: 40, Y: 0}},
		{"stops at to", geom.Point{X: 0, Y: 0}, geom.Point{X: 30, Y: 0}, nil, geom.Point{}},
		{"to on plane", geom.Point{X: 0, Y: 0}, geom.Point{X: 40, Y: 0}, near, geom.Point{X: 40, Y: 0}},
		{"skip own plane", geom.Point{X: 40, Y: 0}, geom.Point{X: 200, Y: 0}, far, geom.Point{X: 80, Y: 0}},
		{"leftward", geom.Point{X: 200, Y: 0}, geom.Point{X: 0, Y: 0}, far, geom.Point{X: 100, Y: 0}},
		{"grazing corner", geom.Point{X: 0, Y: 10}, geom.Point{X: 50, Y: 10}, near, geom.Point{X: 40, Y: 10}},
		{"passes above", geom.Point{X: 0, Y: -11}, geom.Point{X: 200, Y: -11}, nil, geom.Point{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := ix.verticalFor(tt.from, tt.to)
			got, pt, ok := dir.IntersectedItem(tt.from, tt.to, nil)
			if got != tt.want {
				t.Fatalf("IntersectedItem() = %v, want %v", got, tt.want)
			}
			if ok && pt != tt.wantPt {
				t.Errorf("IntersectedItem() point = %v, want %v", pt, tt.wantPt)
			}
		})
	}
}

func TestIntersectedItemWrongDirection(t *testing.T) {
	ix := Build([]*scene.Item{item("a", 10, 10, 10, 10)})
	if _, _, ok := ix.right.IntersectedItem(geom.Point{X: 100, Y: 15}, geom.Point{X: 0, Y: 15}, nil); ok {
		t.Error("ascending collection answered a descending ray")
	}
}

func TestFirstObstacle(t *testing.T) {
	box := item("box", 40, -10, 20, 20)
	wall := item("wall", -50, 30, 200, 5)
	ix := Build([]*scene.Item{box, wall})

	tests := []struct {
		name     string
		from, to geom.Point
		skip     func(*scene.Item) bool
		want     *scene.Item
	}{
		{"horizontal ray", geom.Point{X: 0, Y: 0}, geom.Point{X: 100, Y: 0}, nil, box},
		{"vertical ray", geom.Point{X: 50, Y: 100}, geom.Point{X: 50, Y: -100}, nil, wall},
		{"diagonal nearer wall", geom.Point{X: 0, Y: 0}, geom.Point{X: 100, Y: 100}, nil, wall},
		{"diagonal through box", geom.Point{X: 0, Y: -30}, geom.Point{X: 100, Y: 20}, nil, box},
		{"zero length", geom.Point{X: 50, Y: 0}, geom.Point{X: 50, Y: 0}, nil, nil},
		{"clear", geom.Point{X: 0, Y: -20}, geom.Point{X: 100, Y: -20}, nil, nil},
		{
			"skipped", geom.Point{X: 0, Y: 0}, geom.Point{X: 100, Y: 0},
			func(it *scene.Item) bool { return it == box }, nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := ix.FirstObstacle(tt.from, tt.to, tt.skip)
			if tt.want == nil {
				if ok {
					t.Errorf("FirstObstacle() = %v, want none", hit.Item)
				}
				return
			}
			if !ok || hit.Item != tt.want {
				t.Errorf("FirstObstacle() = %v (ok=%v), want %v", hit.Item, ok, tt.want)
			}
		})
	}
}

// entry returns the nearest point where the ray enters r through one of the
// edges facing from, mirroring the plane semantics on a single rectangle.
func entry(r geom.Rect, from, to geom.Point) (geom.Point, bool) {
	best, found := geom.Point{}, false
	consider := func(pt geom.Point) {
		if !found || pt.ManhattanDistance(from) < best.ManhattanDistance(from) {
			best, found = pt, true
		}
	}
	dx, dy := to.X-from.X, to.Y-from.Y
	if dx != 0 {
		key := r.Left()
		if dx < 0 {
			key = r.Right()
		}
		if t := (key - from.X) / dx; t > 0 && t <= 1 {
			y := from.Y + t*dy
			if y >= r.Top() && y <= r.Bottom() {
				consider(geom.Point{X: key, Y: y})
			}
		}
	}
	if dy != 0 {
		key := r.Top()
		if dy < 0 {
			key = r.Bottom()
		}
		if t := (key - from.Y) / dy; t > 0 && t <= 1 {
			x := from.X + t*dx
			if x >= r.Left() && x <= r.Right() {
				consider(geom.Point{X: x, Y: key})
			}
		}
	}
	return best, found
}

func TestFirstObstacleNearness(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	coord := gen.IntRange(-100, 100).Map(func(v int) float64 { return float64(v) })
	extent := gen.IntRange(1, 40).Map(func(v int) float64 { return float64(v) })
	rect := gopter.CombineGens(coord, coord, extent, extent).Map(func(v []any) geom.Rect {
		return geom.Rect{X: v[0].(float64), Y: v[1].(float64), W: v[2].(float64), H: v[3].(float64)}
	})

	properties.Property("no obstacle is nearer than the reported one", prop.ForAll(
		func(rects []geom.Rect, fx, fy, tx, ty float64) bool {
			items := make([]*scene.Item, len(rects))
			for i, r := range rects {
				items[i] = item("r", r.X, r.Y, r.W, r.H)
			}
			from, to := geom.Point{X: fx, Y: fy}, geom.Point{X: tx, Y: ty}
			hit, ok := Build(items).FirstObstacle(from, to, nil)

			nearest := math.Inf(1)
			for _, it := range items {
				if pt, ok := entry(it.Rect(), from, to); ok {
					nearest = math.Min(nearest, pt.ManhattanDistance(from))
				}
			}
			if !ok {
				return math.IsInf(nearest, 1)
			}
			return hit.Point.ManhattanDistance(from) <= nearest+1e-9
		},
		gen.SliceOfN(6, rect),
		coord, coord, coord, coord,
	))

	properties.TestingRun(t)
}
