// Package pkg provides the libraries behind the arranger diagram layout engine.
//
// # Overview
//
// Arranger takes a scene of rectangular items, some nested inside others,
// and produces a layout in which no two siblings overlap and every join
// between two connectors follows the shortest path that avoids the items in
// its way.
//
// # Architecture
//
// The typical data flow through a pass:
//
//	Scene document (JSON/YAML)
//	         ↓
//	    [scene] package (decode, validate, resolve references)
//	         ↓
//	    [arrange/placement] (position unplaced items)
//	         ↓
//	    [arrange/collision] (push overlapping siblings apart, stretch containers)
//	         ↓
//	    [arrange/visibility] + [arrange/path] (visibility graph, shortest route)
//	         ↓
//	    Result document / DOT, SVG, JSON graph export
//
// # Main Packages
//
// ## Geometry and Scene
//
//   - [geom]: points, sizes, rectangles and segment tests
//   - [scene]: items, connectors, joins and their serialized documents
//
// ## Arrangement
//
//   - [arrange/spatial]: sorted planes for range queries over item edges
//   - [arrange/move]: enumerating the four axis-aligned escapes of an item
//   - [arrange/collision]: transactional collision repair per container
//   - [arrange/placement]: rightward placement of new items
//   - [arrange/visibility]: lazily explored visibility graph
//   - [arrange/path]: Dijkstra over the visibility graph
//
// ## Orchestration and Outputs
//
//   - [pipeline]: the pass and the caching [pipeline.Runner]
//   - [export]: DOT, SVG and JSON renderings of a visibility graph
//   - [server]: HTTP API over the runner
//
// ## Infrastructure
//
//   - [cache]: file, Redis and null result caches
//   - [metrics]: Prometheus collectors behind the observability hooks
//   - [observability]: hook interfaces for passes, caches and HTTP
//   - [errors]: coded errors shared by every layer
//   - [buildinfo]: version information set at link time
//
// # Quick Start
//
//	s, err := pipeline.LoadScene("diagram.yaml", pipeline.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	doc, err := pipeline.Arrange(ctx, s, pipeline.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	for _, r := range doc.Routes {
//	    fmt.Println(r)
//	}
package pkg
