package collision

import (
	"github.com/matzehuels/arranger/pkg/geom"
	"github.com/matzehuels/arranger/pkg/scene"
)

// Transaction stages item positions during one move attempt. Reads through
// the transaction see staged positions first and fall back to the item's
// committed position.
type Transaction struct {
	staged map[*scene.Item]geom.Point
}

// NewTransaction returns an empty transaction.
func NewTransaction() *Transaction {
	return &Transaction{staged: make(map[*scene.Item]geom.Point)}
}

// Stage records a pending local position for it.
func (tx *Transaction) Stage(it *scene.Item, pos geom.Point) { tx.staged[it] = pos }

// Position returns the staged position of it, or its committed one.
func (tx *Transaction) Position(it *scene.Item) geom.Point {
	if p, ok := tx.staged[it]; ok {
		return p
	}
	return it.Position
}

// Rect returns the local rectangle of it at its staged position.
func (tx *Transaction) Rect(it *scene.Item) geom.Rect {
	return geom.RectAt(tx.Position(it), it.Size)
}

// Pending returns the number of staged items.
func (tx *Transaction) Pending() int { return len(tx.staged) }

// Commit writes every staged position to its item and clears the stage. It
// returns the items that moved.
func (tx *Transaction) Commit() []*scene.Item {
	moved := make([]*scene.Item, 0, len(tx.staged))
	for it, p := range tx.staged {
		it.Position = p
		moved = append(moved, it)
	}
	clear(tx.staged)
	return moved
}

// Rollback discards every staged position.
func (tx *Transaction) Rollback() { clear(tx.staged) }
