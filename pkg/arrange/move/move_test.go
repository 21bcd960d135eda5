package move

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/arranger/pkg/geom"
)

func TestNewClampsLength(t *testing.T) {
	tests := []struct {
		name   string
		length float64
		want   float64
	}{
		{"positive", 12.5, 12.5},
		{"zero", 0, 0},
		{"negative", -3, 0},
		{"nan", math.NaN(), 0},
		{"infinite", math.Inf(1), math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(Right, tt.length).Length; got != tt.want {
				t.Errorf("New().Length = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsSatisfiedBy(t *testing.T) {
	tests := []struct {
		name  string
		need  Move
		other Move
		want  bool
	}{
		{"shorter same direction", New(Up, 5), New(Up, 10), true},
		{"equal", New(Up, 10), New(Up, 10), true},
		{"longer", New(Up, 11), New(Up, 10), false},
		{"other direction", New(Up, 1), New(Down, 10), false},
		{"stretchable", New(Right, 1e9), Stretchable(Right), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.need.IsSatisfiedBy(tt.other); got != tt.want {
				t.Errorf("IsSatisfiedBy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	p := geom.Point{X: 10, Y: 20}
	tests := []struct {
		dir  Direction
		want geom.Point
	}{
		{Up, geom.Point{X: 10, Y: 15}},
		{Down, geom.Point{X: 10, Y: 25}},
		{Left, geom.Point{X: 5, Y: 20}},
		{Right, geom.Point{X: 15, Y: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			if got := New(tt.dir, 5).Apply(p); got != tt.want {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnsupportedDirectionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Apply with an unsupported direction should panic")
		}
	}()
	New(Direction(9), 1).Apply(geom.Point{})
}

func TestNeedsIdenticalRectangles(t *testing.T) {
	r := geom.Rect{X: 0, Y: 0, W: 100, H: 50}
	needs := Needs(r, r)

	want := map[Direction]float64{Up: 51, Down: 51, Left: 101, Right: 101}
	for d, length := range want {
		if got := needs.Get(d).Length; got != length {
			t.Errorf("Needs().Get(%s) = %v, want %v", d, got, length)
		}
	}

	best, ok := needs.Minimal(Unbounded())
	if !ok {
		t.Fatal("Minimal() found no satisfiable move")
	}
	if best != New(Down, 51) {
		t.Errorf("Minimal() = %v, want down 51", best)
	}
}

func TestNeedsClearsOverlap(t *testing.T) {
	fixed := geom.Rect{X: 10, Y: 10, W: 30, H: 30}
	moving := geom.Rect{X: 25, Y: 0, W: 20, H: 20}
	needs := Needs(moving, fixed)

	for _, d := range Directions {
		moved := geom.RectAt(needs.Get(d).Apply(moving.Position()), moving.Size())
		if moved.Overlaps(fixed) {
			t.Errorf("moving %s by need %v still overlaps", d, needs.Get(d))
		}
	}
}

func TestMinimalRespectsAllowed(t *testing.T) {
	needs := NewMoveability(5, 50, 10, 80)
	allowed := NewMoveability(2, math.Inf(1), 3, math.Inf(1))

	best, ok := needs.Minimal(allowed)
	if !ok || best != New(Down, 50) {
		t.Errorf("Minimal() = %v, %v, want down 50", best, ok)
	}

	if _, ok := needs.Minimal(NewMoveability(0, 0, 0, 0)); ok {
		t.Error("Minimal() with nothing allowed should fail")
	}
}

func TestMoveProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	direction := gen.IntRange(int(Up), int(Right)).Map(func(v int) Direction { return Direction(v) })

	properties.Property("length is never negative", prop.ForAll(
		func(d Direction, length float64) bool {
			return New(d, length).Length >= 0
		},
		direction,
		gen.Float64Range(-1e6, 1e6),
	))

	properties.Property("inverse undoes apply", prop.ForAll(
		func(d Direction, length, x, y float64) bool {
			m := New(d, length)
			p := geom.Point{X: x, Y: y}
			back := m.Inverse().Apply(m.Apply(p))
			return math.Abs(back.X-p.X) < 1e-6 && math.Abs(back.Y-p.Y) < 1e-6
		},
		direction,
		gen.Float64Range(0, 1e4),
		gen.Float64Range(-1e4, 1e4),
		gen.Float64Range(-1e4, 1e4),
	))

	properties.Property("apply is a pure translation along one axis", prop.ForAll(
		func(d Direction, length, x, y float64) bool {
			p := geom.Point{X: x, Y: y}
			q := New(d, length).Apply(p)
			if d.IsVertical() {
				return q.X == p.X
			}
			return q.Y == p.Y
		},
		direction,
		gen.Float64Range(0, 1e4),
		gen.Float64Range(-1e4, 1e4),
		gen.Float64Range(-1e4, 1e4),
	))

	properties.TestingRun(t)
}
