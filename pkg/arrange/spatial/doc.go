// Package spatial answers "first obstacle along a ray" queries over item
// borders.
//
// Every item edge is stored as a segment on a [Plane], the line that holds the
// edge's fixed coordinate. Planes are grouped into four [Planes] collections,
// one per ray direction:
//
//	top edges    -> Down  (rays with increasing y)
//	bottom edges -> Up    (rays with decreasing y)
//	left edges   -> Right (rays with increasing x)
//	right edges  -> Left  (rays with decreasing x)
//
// A ray only tests the edges it can enter an item through, so a ray leaving an
// item through its own border never reports that item.
//
// An [Index] is built from a snapshot of item rectangles and is discarded at
// the end of a layout pass; it never writes back to the items.
package spatial
