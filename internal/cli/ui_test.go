package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/arranger/pkg/scene"
)

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name   string
		stats  scene.Stats
		cached bool
		want   []string
		skip   []string
	}{
		{
			name:  "fresh",
			stats: scene.Stats{Items: 3, Joins: 1, Moves: 2, Routed: 1},
			want:  []string{"3 items", "1 join", "2 moves", "1 routed", iconFresh},
			skip:  []string{"direct"},
		},
		{
			name:   "cached",
			stats:  scene.Stats{Items: 1},
			cached: true,
			want:   []string{"1 item", "0 joins", iconCached},
			skip:   []string{"routed", "moves"},
		},
		{
			name:  "fallback",
			stats: scene.Stats{Items: 2, Joins: 2, Routed: 1, Unrouted: 1},
			want:  []string{"1 routed", "1 direct"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printStats(&buf, tt.stats, tt.cached)
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("printStats() = %q, should contain %q", out, w)
				}
			}
			for _, s := range tt.skip {
				if strings.Contains(out, s) {
					t.Errorf("printStats() = %q, should not contain %q", out, s)
				}
			}
		})
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 joins"},
		{1, "1 join"},
		{7, "7 joins"},
	}
	for _, tt := range tests {
		if got := plural(tt.n, "join"); got != tt.want {
			t.Errorf("plural(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
