package collision

import (
	stderrors "errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arranger/pkg/arrange/move"
	"github.com/matzehuels/arranger/pkg/errors"
	"github.com/matzehuels/arranger/pkg/scene"
)

// ErrUnresolvable is wrapped by errors returned when a collision cannot be
// repaired in either direction.
var ErrUnresolvable = stderrors.New("collision cannot be resolved")

// Stats counts the work done by a [Repairer].
type Stats struct {
	Groups    int // sibling groups repaired
	Moves     int // committed top-level moves
	Displaced int // item positions written by commits
	Retries   int // attempts rolled back and retried in the inverse direction
	Stretched int // containers grown to fit their children
}

// Repairer removes overlaps from a scene.
type Repairer struct {
	// Logger receives one debug line per committed move. Nil discards.
	Logger *log.Logger

	// MaxIterations caps the collisions resolved for a single item. Zero
	// selects a limit proportional to the group size.
	MaxIterations int

	stats Stats
}

// Stats returns the counters accumulated since the repairer was created.
func (r *Repairer) Stats() Stats { return r.stats }

func (r *Repairer) logger() *log.Logger {
	if r.Logger == nil {
		r.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return r.Logger
}

// Repair arranges every sibling group of s, deepest containers first, and
// stretches each container to fit its children afterwards. Root items are
// repaired last.
func (r *Repairer) Repair(s *scene.Scene) error {
	for _, c := range s.Containers() {
		if err := r.RepairGroup(c, c.Children); err != nil {
			return err
		}
		if Stretch(c) {
			r.stats.Stretched++
		}
	}
	return r.RepairGroup(nil, s.Children(nil))
}

// RepairGroup removes overlaps among items, which must all share parent (nil
// for root items). Higher z-order items yield to lower ones.
func (r *Repairer) RepairGroup(parent *scene.Item, items []*scene.Item) error {
	r.stats.Groups++
	tx := NewTransaction()
	nav := NewNavigator(tx)

	limit := r.MaxIterations
	if limit <= 0 {
		limit = 4*len(items) + 16
	}

	sorted := scene.SortByZ(items)
	for i := len(sorted) - 1; i >= 0; i-- {
		fixed := sorted[i]
		for iter := 0; ; iter++ {
			colliding := nav.Colliding(fixed, tx.Rect(fixed))
			if len(colliding) == 0 {
				break
			}
			if iter >= limit {
				return errors.Wrap(errors.ErrCodeUnresolvableCollision, ErrUnresolvable,
					"item %s still collides after %d moves", fixed.ID, limit)
			}
			if err := r.moveColliding(tx, nav, parent, fixed, colliding[0]); err != nil {
				return err
			}
		}
		nav.Add(fixed)
	}
	return nil
}

// moveColliding pushes c out of fixed with a single committed move.
func (r *Repairer) moveColliding(tx *Transaction, nav *Navigator, parent, fixed, c *scene.Item) error {
	needs := move.Needs(tx.Rect(c), tx.Rect(fixed))
	bounded, stretched := Possibilities(tx.Rect(c), parent)

	first, ok := needs.Minimal(bounded)
	if !ok {
		first, ok = needs.Minimal(stretched)
	}
	if !ok {
		return errors.Wrap(errors.ErrCodeUnresolvableCollision, ErrUnresolvable,
			"item %s has no room to clear %s", c.ID, fixed.ID)
	}

	attempts := []move.Move{first, needs.Get(first.Direction.Inverse())}
	for n, mv := range attempts {
		visited := map[*scene.Item]bool{fixed: true}
		if r.propagate(tx, nav, parent, c, mv, visited) {
			moved := tx.Commit()
			r.stats.Moves++
			r.stats.Displaced += len(moved)
			r.logger().Debug("moved", "item", c.ID, "clears", fixed.ID, "move", mv, "items", len(moved))
			return nil
		}
		tx.Rollback()
		if n == 0 {
			r.stats.Retries++
		}
	}
	return errors.Wrap(errors.ErrCodeUnresolvableCollision, ErrUnresolvable,
		"item %s cannot clear %s moving %s or %s", c.ID, fixed.ID, first.Direction, first.Direction.Inverse())
}

// propagate stages mv for it and, transitively, for every item it bumps
// into at its new position. It reports false when some item in the chain
// cannot move that far.
func (r *Repairer) propagate(tx *Transaction, nav *Navigator, parent, it *scene.Item, mv move.Move, visited map[*scene.Item]bool) bool {
	if visited[it] {
		return true
	}
	visited[it] = true

	_, stretched := Possibilities(tx.Rect(it), parent)
	if !mv.IsSatisfiedBy(stretched.Get(mv.Direction)) {
		return false
	}
	tx.Stage(it, mv.Apply(tx.Position(it)))

	for _, o := range nav.Colliding(it, tx.Rect(it)) {
		if !r.propagate(tx, nav, parent, o, mv, visited) {
			return false
		}
	}
	return true
}
