// Package move implements directional distance values used when repairing
// item collisions.
//
// A [Move] is a direction plus a non-negative length. A [Moveability] holds one
// move per direction and describes either how far an item needs to move to
// clear another item ([Needs]) or how far it is allowed to move inside its
// container. An infinite length marks a stretchable direction: any finite
// need in that direction is satisfied.
package move

import (
	"fmt"
	"math"

	"github.com/matzehuels/arranger/pkg/geom"
)

// Epsilon is the margin kept between two items after a collision is repaired.
const Epsilon = 1.0

// Direction is one of the four axis-aligned move directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in lookup order. Ties between equally long
// needs are broken by this order, which favors growing down and right.
var Directions = [4]Direction{Down, Right, Up, Left}

// Inverse returns the opposite direction.
func (d Direction) Inverse() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	panic(fmt.Sprintf("move: unsupported direction %d", int(d)))
}

// IsVertical reports whether d moves along the y axis.
func (d Direction) IsVertical() bool {
	switch d {
	case Up, Down:
		return true
	case Left, Right:
		return false
	}
	panic(fmt.Sprintf("move: unsupported direction %d", int(d)))
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Move is a translation of Length units along Direction.
// The zero value is a zero-length move up.
type Move struct {
	Direction Direction
	Length    float64
}

// New creates a move, clamping negative and NaN lengths to zero.
func New(d Direction, length float64) Move {
	if !(length > 0) {
		length = 0
	}
	return Move{Direction: d, Length: length}
}

// Stretchable returns an unconditionally satisfiable move in direction d.
func Stretchable(d Direction) Move { return Move{Direction: d, Length: math.Inf(1)} }

// IsStretchable reports whether m has infinite length.
func (m Move) IsStretchable() bool { return math.IsInf(m.Length, 1) }

// IsSatisfiedBy reports whether other allows m: same direction and at least
// as long.
func (m Move) IsSatisfiedBy(other Move) bool {
	return m.Direction == other.Direction && m.Length <= other.Length
}

// Inverse returns a move of the same length in the opposite direction.
func (m Move) Inverse() Move { return Move{Direction: m.Direction.Inverse(), Length: m.Length} }

// Apply translates p by the move.
func (m Move) Apply(p geom.Point) geom.Point {
	switch m.Direction {
	case Up:
		return geom.Point{X: p.X, Y: p.Y - m.Length}
	case Down:
		return geom.Point{X: p.X, Y: p.Y + m.Length}
	case Left:
		return geom.Point{X: p.X - m.Length, Y: p.Y}
	case Right:
		return geom.Point{X: p.X + m.Length, Y: p.Y}
	}
	panic(fmt.Sprintf("move: unsupported direction %d", int(m.Direction)))
}

func (m Move) String() string { return fmt.Sprintf("%s %g", m.Direction, m.Length) }

// Moveability packs exactly one move per direction.
type Moveability struct {
	moves [4]Move
}

// NewMoveability builds a moveability from per-direction lengths.
func NewMoveability(up, down, left, right float64) Moveability {
	return Moveability{moves: [4]Move{
		Up:    New(Up, up),
		Down:  New(Down, down),
		Left:  New(Left, left),
		Right: New(Right, right),
	}}
}

// Unbounded returns a moveability that is stretchable in every direction.
func Unbounded() Moveability {
	inf := math.Inf(1)
	return NewMoveability(inf, inf, inf, inf)
}

// Get returns the move for direction d.
func (m Moveability) Get(d Direction) Move {
	if d < Up || d > Right {
		panic(fmt.Sprintf("move: unsupported direction %d", int(d)))
	}
	return m.moves[d]
}

// With returns a copy of m with the move for mv.Direction replaced.
func (m Moveability) With(mv Move) Moveability {
	m.moves[mv.Direction] = mv
	return m
}

// Minimal returns the shortest move whose length is satisfied by allowed in
// the same direction. ok is false when no direction is satisfiable.
func (m Moveability) Minimal(allowed Moveability) (best Move, ok bool) {
	for _, d := range Directions {
		need := m.Get(d)
		if !need.IsSatisfiedBy(allowed.Get(d)) {
			continue
		}
		if !ok || need.Length < best.Length {
			best, ok = need, true
		}
	}
	return best, ok
}

// Needs computes how far moving has to travel in each direction so that it no
// longer overlaps fixed, keeping Epsilon units of clearance.
func Needs(moving, fixed geom.Rect) Moveability {
	return NewMoveability(
		moving.Bottom()-fixed.Top()+Epsilon,
		fixed.Bottom()-moving.Top()+Epsilon,
		moving.Right()-fixed.Left()+Epsilon,
		fixed.Right()-moving.Left()+Epsilon,
	)
}
