// Package scene holds the diagram model consumed by the arrangement engine and
// its serialization formats.
//
// # Model
//
// A [Scene] owns [Item]s, their [Connector]s and the [Join]s between
// connectors. Items are referenced by pointer and never compared by value.
// Each item stores its position relative to the content origin of its parent
// (the parent's top-left corner inset by the parent's padding); root items are
// positioned on the canvas. [Item.Rect] derives the global rectangle.
//
// # Documents
//
// Scenes are read from JSON or YAML [Document]s:
//
//	items:
//	  - id: a
//	    x: 0
//	    y: 0
//	    width: 100
//	    height: 50
//	    connectors:
//	      - {id: a-out, side: right}
//	  - id: b
//	    width: 80        # no x/y: placed by the initial placer
//	    height: 40
//	    connectors:
//	      - {id: b-in, side: left}
//	joins:
//	  - {id: j1, from: a-out, to: b-in}
//
// [Validate] rejects malformed input (non-positive sizes, non-finite
// coordinates, dangling references, parent cycles) before any engine code
// runs. Arrangement results are written as a [ResultDocument].
package scene
