package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/taskloop/pkg/dag"
)

// ReadJSON decodes a graph written by [WriteJSON].
//
// Node ids must be exactly 0..n-1, in any order. Steps, when present, must
// be distinct and run 1..k without gaps. Edges are added in the order they
// appear. Unknown fields are rejected. Step and blocked annotations are
// returned as read; they are not recomputed.
func ReadJSON(r io.Reader) (*dag.Graph, Stages, error) {
	var data graph
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return nil, Stages{}, fmt.Errorf("decode: %w", err)
	}

	n := len(data.Nodes)
	s := Stages{
		Loop:     data.Name,
		Player:   data.Player,
		Names:    make([]string, n),
		Handlers: make([]string, n),
	}
	seen := make([]bool, n)
	steps := make(map[int]int, n) // position -> vertex
	for _, nd := range data.Nodes {
		if nd.ID < 0 || nd.ID >= n {
			return nil, Stages{}, fmt.Errorf("node %d: %w", nd.ID, dag.ErrVertexOutOfRange)
		}
		if seen[nd.ID] {
			return nil, Stages{}, fmt.Errorf("node %d: duplicate id", nd.ID)
		}
		seen[nd.ID] = true
		s.Names[nd.ID] = nd.Name
		s.Handlers[nd.ID] = nd.Handler
		if nd.Step < 0 || nd.Step > n {
			return nil, Stages{}, fmt.Errorf("node %d: step %d out of range 1..%d", nd.ID, nd.Step, n)
		}
		if nd.Step > 0 {
			if other, dup := steps[nd.Step-1]; dup {
				return nil, Stages{}, fmt.Errorf("node %d: step %d already taken by node %d", nd.ID, nd.Step, other)
			}
			steps[nd.Step-1] = nd.ID
		}
		if nd.Blocked {
			s.Unresolved = append(s.Unresolved, nd.ID)
		}
	}
	for i := range len(steps) {
		id, ok := steps[i]
		if !ok {
			return nil, Stages{}, fmt.Errorf("step %d missing", i+1)
		}
		s.Order = append(s.Order, id)
	}

	g, err := dag.New(n)
	if err != nil {
		return nil, Stages{}, err
	}
	for _, e := range data.Edges {
		if err := g.AddEdge(e.From, e.To); err != nil {
			return nil, Stages{}, fmt.Errorf("edge %d->%d: %w", e.From, e.To, err)
		}
	}
	return g, s, nil
}

// ImportJSON reads a JSON graph file at path.
func ImportJSON(path string) (*dag.Graph, Stages, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stages{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
