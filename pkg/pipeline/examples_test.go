package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matzehuels/arranger/pkg/scene"
)

func TestExampleScenes(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "scenes", "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no example scenes found")
	}

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			opts := DefaultOptions()
			s, err := LoadScene(path, opts)
			if err != nil {
				t.Fatalf("LoadScene() error: %v", err)
			}
			doc, err := Arrange(context.Background(), s, opts)
			if err != nil {
				t.Fatalf("Arrange() error: %v", err)
			}
			if len(doc.Items) != len(s.Items) {
				t.Errorf("placed %d items, want %d", len(doc.Items), len(s.Items))
			}
			if len(doc.Routes) != len(s.Joins) {
				t.Errorf("computed %d routes, want %d", len(doc.Routes), len(s.Joins))
			}
			groups := [][]*scene.Item{s.Children(nil)}
			for _, c := range s.Containers() {
				groups = append(groups, c.Children)
			}
			for _, siblings := range groups {
				for i, a := range siblings {
					for _, b := range siblings[i+1:] {
						if a.Rect().Overlaps(b.Rect()) {
							t.Errorf("%s overlaps %s after the pass", a.ID, b.ID)
						}
					}
				}
			}
		})
	}
}
