package geom

import (
	"math"
	"testing"
)

func TestRectOverlaps(t *testing.T) {
	base := Rect{X: 0, Y: 0, W: 100, H: 50}
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"identical", base, true},
		{"inside", Rect{X: 10, Y: 10, W: 10, H: 10}, true},
		{"touching right edge", Rect{X: 100, Y: 0, W: 10, H: 10}, false},
		{"touching bottom edge", Rect{X: 0, Y: 50, W: 10, H: 10}, false},
		{"touching corner", Rect{X: 100, Y: 50, W: 10, H: 10}, false},
		{"one unit gap", Rect{X: 101, Y: 0, W: 10, H: 10}, false},
		{"partial", Rect{X: 90, Y: 40, W: 20, H: 20}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Errorf("Overlaps() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 20, Y: -5, W: 5, H: 5}

	got := a.Union(b)
	want := Rect{X: 0, Y: -5, W: 25, H: 15}
	if got != want {
		t.Errorf("Union() = %v, want %v", got, want)
	}
	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty Union() = %v, want %v", got, b)
	}
}

func TestRectIsWellFormed(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want bool
	}{
		{"valid", Rect{W: 1, H: 1}, true},
		{"zero width", Rect{W: 0, H: 1}, false},
		{"negative height", Rect{W: 1, H: -1}, false},
		{"nan x", Rect{X: math.NaN(), W: 1, H: 1}, false},
		{"inf width", Rect{W: math.Inf(1), H: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.IsWellFormed(); got != tt.want {
				t.Errorf("IsWellFormed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentCrossesInterior(t *testing.T) {
	obstacle := Rect{X: 40, Y: -10, W: 20, H: 20}
	tests := []struct {
		name string
		a, b Point
		want bool
	}{
		{"straight through", Point{0, 0}, Point{100, 0}, true},
		{"above", Point{0, -20}, Point{100, -20}, false},
		{"along top edge", Point{40, -10}, Point{60, -10}, false},
		{"to corner", Point{0, 0}, Point{40, -10}, false},
		{"corner to corner diagonal", Point{40, -10}, Point{60, 10}, true},
		{"ends inside", Point{0, 0}, Point{50, 0}, true},
		{"grazes corner", Point{30, -20}, Point{50, 0}, true},
		{"touches corner only", Point{30, -20}, Point{40, -10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := obstacle.SegmentCrossesInterior(tt.a, tt.b); got != tt.want {
				t.Errorf("SegmentCrossesInterior(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPointDistances(t *testing.T) {
	p := Point{X: 0, Y: 0}
	q := Point{X: 3, Y: -4}
	if got := p.SquaredDistance(q); got != 25 {
		t.Errorf("SquaredDistance() = %v, want 25", got)
	}
	if got := p.ManhattanDistance(q); got != 7 {
		t.Errorf("ManhattanDistance() = %v, want 7", got)
	}
}
