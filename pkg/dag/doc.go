// Package dag provides the dependency graph consumed by the scheduler.
//
// # Overview
//
// A [Graph] is created with a fixed number of vertices. Vertex identities are
// the dense integers 0..n-1, so callers index their own tables (task
// callbacks, stage names) by the same integer. Edges are added with
// [Graph.AddEdge]; an edge A→B means "A must run before B".
//
// # Basic Usage
//
//	g, _ := dag.New(4)
//	_ = g.AddEdge(0, 1) // input -> update
//	_ = g.AddEdge(1, 2) // update -> collide
//	_ = g.AddEdge(2, 3) // collide -> render
//
// # Ordering
//
// Each vertex keeps its successors newest-first: AddEdge prepends. The
// scheduler walks successors in exactly this order, which matters when a
// graph admits more than one valid topological order. In-degrees are tracked
// incrementally as edges arrive and duplicate edges are counted, never
// merged.
//
// # Lifecycle
//
// A graph is built once, read by one scheduling pass and then released with
// [Graph.Release]. There is no edge or vertex removal.
//
// # Concurrency
//
// Graph is not safe for concurrent use. Build and read it from a single
// goroutine.
package dag
