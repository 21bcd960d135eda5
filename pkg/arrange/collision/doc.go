// Package collision removes overlaps between sibling items.
//
// Items are processed from the top of the z-stack down. Each newly processed
// item keeps its position and pushes every already processed item it
// overlaps; the pushed item travels by the shortest move its container
// allows, and the same move is propagated to whatever it bumps into. Moves are
// staged on a [Transaction] and either committed as a whole or rolled back and
// retried in the opposite direction.
//
// Nested scenes are repaired bottom-up: the deepest containers first, each
// stretched to fit its children afterwards, so a container that is pushed
// later carries its already arranged content with it.
package collision
