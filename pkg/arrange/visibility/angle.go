package visibility

import (
	"fmt"
	"math"

	"github.com/matzehuels/arranger/pkg/geom"
	"github.com/matzehuels/arranger/pkg/scene"
)

// Quadrant names a quarter plane around a point. y grows downward, so North
// is towards smaller y.
type Quadrant uint8

const (
	NE Quadrant = 1 << iota
	NW
	SW
	SE
)

type angleKind uint8

const (
	quadrantAngle angleKind = iota
	coneAngle
)

// ViewAngle restricts which candidates a graph point may connect to. It is
// either a set of quadrants (item corners) or a 45 degree cone around one
// outward axis (connectors).
type ViewAngle struct {
	kind     angleKind
	accepted Quadrant   // quadrant angles
	side     scene.Side // cone angles
}

// Quadrants returns an angle accepting candidates in any of qs. A candidate on
// the boundary between two quadrants is accepted when either is.
func Quadrants(qs ...Quadrant) ViewAngle {
	var mask Quadrant
	for _, q := range qs {
		mask |= q
	}
	return ViewAngle{kind: quadrantAngle, accepted: mask}
}

// Cone returns an angle accepting candidates within 45 degrees of the outward
// normal of side.
func Cone(side scene.Side) ViewAngle {
	return ViewAngle{kind: coneAngle, side: side}
}

// cornerAngle excludes the quadrant covering the item interior.
func cornerAngle(corner int) ViewAngle {
	switch corner {
	case topLeft:
		return Quadrants(NE, NW, SW)
	case topRight:
		return Quadrants(NE, NW, SE)
	case bottomRight:
		return Quadrants(NE, SW, SE)
	case bottomLeft:
		return Quadrants(NW, SW, SE)
	}
	panic(fmt.Sprintf("visibility: unsupported corner %d", corner))
}

// Sees reports whether a point at self may connect to candidate.
func (a ViewAngle) Sees(self, candidate geom.Point) bool {
	dx, dy := candidate.X-self.X, candidate.Y-self.Y
	if dx == 0 && dy == 0 {
		return false
	}

	if a.kind == coneAngle {
		switch a.side {
		case scene.Top:
			return dy < 0 && math.Abs(dx) <= -dy
		case scene.Bottom:
			return dy > 0 && math.Abs(dx) <= dy
		case scene.Left:
			return dx < 0 && math.Abs(dy) <= -dx
		case scene.Right:
			return dx > 0 && math.Abs(dy) <= dx
		}
		panic(fmt.Sprintf("visibility: unsupported side %d", int(a.side)))
	}

	var touched Quadrant
	switch {
	case dx > 0 && dy < 0:
		touched = NE
	case dx < 0 && dy < 0:
		touched = NW
	case dx < 0 && dy > 0:
		touched = SW
	case dx > 0 && dy > 0:
		touched = SE
	case dx > 0: // due east
		touched = NE | SE
	case dx < 0:
		touched = NW | SW
	case dy < 0:
		touched = NE | NW
	default:
		touched = SW | SE
	}
	return a.accepted&touched != 0
}

func (a ViewAngle) String() string {
	if a.kind == coneAngle {
		return "cone(" + a.side.String() + ")"
	}
	return fmt.Sprintf("quadrants(%04b)", a.accepted)
}
