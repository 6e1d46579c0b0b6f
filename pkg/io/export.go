package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/taskloop/pkg/dag"
)

type graph struct {
	Name   string  `json:"name,omitempty"`
	Player *Player `json:"player,omitempty"`
	Nodes  []node  `json:"nodes"`
	Edges  []edge  `json:"edges"`
}

type node struct {
	ID      int    `json:"id"`
	Name    string `json:"name,omitempty"`
	Handler string `json:"handler,omitempty"`
	Step    int    `json:"step,omitempty"`
	Blocked bool   `json:"blocked,omitempty"`
}

type edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Player is the start position and input step of a loop. A nil Step means
// the loop's default.
type Player struct {
	X    int  `json:"x"`
	Y    int  `json:"y"`
	Step *int `json:"step,omitempty"`
}

// Stages annotates exported vertices. All slices are indexed by vertex id
// except Order and Unresolved, which list vertex ids.
type Stages struct {
	Loop       string  // loop name
	Player     *Player // omitted when nil
	Names      []string
	Handlers   []string
	Order      []int
	Unresolved []int
}

// WriteJSON encodes g and its stage annotations as indented JSON.
func WriteJSON(g *dag.Graph, s Stages, w io.Writer) error {
	pos := dag.PosMap(s.Order)
	out := graph{
		Name:   s.Loop,
		Player: s.Player,
		Nodes:  make([]node, g.VertexCount()),
		Edges: make([]edge, 0, g.EdgeCount()),
	}
	for id := range out.Nodes {
		nd := node{ID: id, Name: at(s.Names, id), Handler: at(s.Handlers, id)}
		if p, ok := pos[id]; ok {
			nd.Step = p + 1
		}
		out.Nodes[id] = nd
	}
	for _, id := range s.Unresolved {
		if id >= 0 && id < len(out.Nodes) {
			out.Nodes[id].Blocked = true
		}
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edge{From: e.From, To: e.To})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *dag.Graph, s Stages, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, s, f)
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
