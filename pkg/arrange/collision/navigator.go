package collision

import (
	"github.com/matzehuels/arranger/pkg/geom"
	"github.com/matzehuels/arranger/pkg/scene"
)

// Navigator answers overlap queries over the processed items of one sibling
// group, reading positions through a transaction.
type Navigator struct {
	tx    *Transaction
	items []*scene.Item
}

// NewNavigator returns a navigator over no items.
func NewNavigator(tx *Transaction) *Navigator {
	return &Navigator{tx: tx}
}

// Add makes it visible to subsequent queries.
func (n *Navigator) Add(it *scene.Item) { n.items = append(n.items, it) }

// Items returns the processed items in insertion order.
func (n *Navigator) Items() []*scene.Item { return n.items }

// Colliding returns every processed item other than it whose rectangle
// overlaps r.
func (n *Navigator) Colliding(it *scene.Item, r geom.Rect) []*scene.Item {
	var out []*scene.Item
	for _, o := range n.items {
		if o == it {
			continue
		}
		if n.tx.Rect(o).Overlaps(r) {
			out = append(out, o)
		}
	}
	return out
}
