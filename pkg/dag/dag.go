package dag

import (
	"errors"
	"slices"
)

var (
	// ErrNegativeVertexCount is returned by [New] when the requested vertex
	// count is below zero.
	ErrNegativeVertexCount = errors.New("vertex count must not be negative")

	// ErrVertexOutOfRange is returned by [Graph.AddEdge] when either endpoint
	// lies outside [0, VertexCount). The graph is left unchanged.
	ErrVertexOutOfRange = errors.New("vertex index out of range")

	// ErrGraphReleased is returned by [Graph.AddEdge] after [Graph.Release]
	// has dropped the graph's storage.
	ErrGraphReleased = errors.New("graph has been released")
)

// Edge is a directed dependency: From must run before To.
type Edge struct {
	From int
	To   int
}

// Graph is a dependency graph over a fixed, dense set of integer vertices.
// Vertex identities are the integers in [0, VertexCount).
//
// Each vertex keeps an ordered successor list and an in-degree counter.
// AddEdge prepends to the successor list, so [Graph.Successors] yields the
// most recently added edge first. Duplicate edges are kept and counted.
//
// The zero value is not usable - use New to create a Graph.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	adjacency [][]int // vertex -> successors, newest first
	inDegree  []int   // vertex -> incoming edge count
	edges     []Edge  // insertion order
	vertices  int
	released  bool
}

// New creates a graph with the given number of vertices and no edges.
// Returns ErrNegativeVertexCount if vertices < 0. A graph with zero vertices
// is valid and sorts to an empty order.
func New(vertices int) (*Graph, error) {
	if vertices < 0 {
		return nil, ErrNegativeVertexCount
	}
	return &Graph{
		adjacency: make([][]int, vertices),
		inDegree:  make([]int, vertices),
		vertices:  vertices,
	}, nil
}

// AddEdge records that src must run before dest.
// Returns ErrVertexOutOfRange if either endpoint is not a vertex of the graph,
// or ErrGraphReleased if the graph was released.
//
// Self-loops are accepted; they make the graph cyclic. Adding the same edge
// twice increments dest's in-degree twice.
func (g *Graph) AddEdge(src, dest int) error {
	if g.released {
		return ErrGraphReleased
	}
	if !g.contains(src) || !g.contains(dest) {
		return ErrVertexOutOfRange
	}
	g.adjacency[src] = slices.Insert(g.adjacency[src], 0, dest)
	g.inDegree[dest]++
	g.edges = append(g.edges, Edge{From: src, To: dest})
	return nil
}

func (g *Graph) contains(id int) bool { return id >= 0 && id < g.vertices }

// Release drops the successor lists and in-degree table. The graph keeps its
// vertex count but reports no edges, and AddEdge fails afterwards.
func (g *Graph) Release() {
	g.adjacency = nil
	g.inDegree = nil
	g.edges = nil
	g.released = true
}

// Released reports whether Release has been called.
func (g *Graph) Released() bool { return g.released }

// VertexCount returns the number of vertices the graph was created with.
func (g *Graph) VertexCount() int { return g.vertices }

// EdgeCount returns the number of AddEdge calls that succeeded, counting
// duplicates.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Successors returns the vertices id has edges to, most recently added first.
// Returns nil for an out-of-range id or a released graph. The returned slice
// should not be modified - use it as a read-only view.
func (g *Graph) Successors(id int) []int {
	if g.released || !g.contains(id) {
		return nil
	}
	return g.adjacency[id]
}

// InDegree returns the number of edges pointing at id.
// Returns 0 for an out-of-range id or a released graph.
func (g *Graph) InDegree(id int) int {
	if g.released || !g.contains(id) {
		return 0
	}
	return g.inDegree[id]
}

// InDegrees returns a copy of the in-degree table indexed by vertex.
// Schedulers decrement the copy, leaving the graph intact.
func (g *Graph) InDegrees() []int { return slices.Clone(g.inDegree) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Sources returns the vertices with no incoming edges, ascending.
func (g *Graph) Sources() []int {
	var sources []int
	for id, d := range g.inDegree {
		if d == 0 {
			sources = append(sources, id)
		}
	}
	return sources
}

// PosMap creates a position lookup map from an ordering of vertex IDs.
// The returned map maps each ID to its index in the slice.
func PosMap(order []int) map[int]int {
	m := make(map[int]int, len(order))
	for i, id := range order {
		m[id] = i
	}
	return m
}
