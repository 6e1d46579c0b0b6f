package scheduler

import (
	"errors"

	"github.com/matzehuels/taskloop/pkg/dag"
)

// ErrCycleDetected is returned when the graph is not acyclic.
var ErrCycleDetected = errors.New("graph contains a cycle")

// Sorted is the outcome of a Kahn pass over a graph.
type Sorted struct {
	// Order lists the vertices in emission order. On a cycle it holds the
	// vertices emitted before the ready-set ran dry.
	Order []int
	// Unresolved lists, ascending, the vertices whose in-degree never reached
	// zero. Empty when the graph is acyclic.
	Unresolved []int
	// Trail is the sequence of states the pass went through.
	Trail []State
}

// State returns the terminal state of the pass.
func (s *Sorted) State() State { return s.Trail[len(s.Trail)-1] }

// Sort computes a topological order of g with Kahn's algorithm and a LIFO
// ready-set. The graph is read but not modified: the pass works on a copy of
// the in-degree table.
//
// Returns dag.ErrGraphReleased for a released graph. When fewer than
// VertexCount vertices can be emitted, Sort returns the partial result
// together with ErrCycleDetected.
func Sort(g *dag.Graph) (*Sorted, error) {
	if g.Released() {
		return nil, dag.ErrGraphReleased
	}

	n := g.VertexCount()
	res := &Sorted{
		Order: make([]int, 0, n),
		Trail: []State{StateInitialized, StateSeeding},
	}

	inDegree := g.InDegrees()
	stack := append(make([]int, 0, n), g.Sources()...)

	res.Trail = append(res.Trail, StateDraining)
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		res.Order = append(res.Order, u)

		for _, v := range g.Successors(u) {
			inDegree[v]--
			if inDegree[v] == 0 {
				stack = append(stack, v)
			}
		}
	}

	if len(res.Order) != n {
		for id, d := range inDegree {
			if d > 0 {
				res.Unresolved = append(res.Unresolved, id)
			}
		}
		res.Trail = append(res.Trail, StateCycleDetected)
		return res, ErrCycleDetected
	}

	res.Trail = append(res.Trail, StateCompleted)
	return res, nil
}
