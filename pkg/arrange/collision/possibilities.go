package collision

import (
	"math"

	"github.com/matzehuels/arranger/pkg/arrange/move"
	"github.com/matzehuels/arranger/pkg/geom"
	"github.com/matzehuels/arranger/pkg/scene"
)

// Possibilities returns how far an item at local rectangle r may move inside
// parent. bounded keeps the item within the parent's current content box;
// stretched additionally lets the parent grow on its bottom and right edges.
// Root items (nil parent) are unbounded in every direction.
func Possibilities(r geom.Rect, parent *scene.Item) (bounded, stretched move.Moveability) {
	if parent == nil {
		return move.Unbounded(), move.Unbounded()
	}
	content := parent.ContentSize()
	bounded = move.NewMoveability(
		r.Top(),
		content.H-r.Bottom(),
		r.Left(),
		content.W-r.Right(),
	)
	stretched = bounded.
		With(move.Stretchable(move.Down)).
		With(move.Stretchable(move.Right))
	return bounded, stretched
}

// Stretch grows container so its content box holds every child at its
// current local position. It never shrinks the container and reports whether
// the size changed.
func Stretch(container *scene.Item) bool {
	w, h := container.Size.W, container.Size.H
	for _, c := range container.Children {
		r := c.LocalRect()
		w = math.Max(w, r.Right()+2*container.Padding)
		h = math.Max(h, r.Bottom()+2*container.Padding)
	}
	if w == container.Size.W && h == container.Size.H {
		return false
	}
	container.Size = geom.Size{W: w, H: h}
	return true
}
