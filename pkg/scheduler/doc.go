// Package scheduler orders the vertices of a [dag.Graph] topologically and
// dispatches one task per vertex in that order.
//
// # Overview
//
// The scheduler never learns what a task does. It receives a [Table] of
// tasks indexed by vertex id and a caller-owned state value, computes an
// execution order with Kahn's algorithm and calls each task with the state,
// one after another, on the calling goroutine.
//
// # Ordering
//
// The ready-set is a stack. [Sort] seeds it by scanning vertex ids in
// ascending order and then repeatedly pops the most recently pushed vertex.
// Successors are visited in the graph's stored order (newest edge first) and
// pushed as their in-degree reaches zero. For a graph with edges 0→2, 1→2,
// 2→3 the order is therefore [1 0 2 3]: vertex 1 is seeded after vertex 0
// and popped first.
//
// The same graph always produces the same order.
//
// # Cycles
//
// If the stack empties before every vertex was emitted, the graph has a
// cycle. The run stops there and no task is called, even when part of the
// graph could have been ordered. The error wraps [ErrCycleDetected].
//
// # States
//
// A run moves through Initialized → Seeding → Draining and ends in either
// Completed or CycleDetected. The [Report] records the terminal state and
// the trail of states visited.
//
// # Usage
//
//	tasks := scheduler.Table[*Player]{
//	    scheduler.TaskFunc[*Player](handleInput),
//	    scheduler.TaskFunc[*Player](render),
//	}
//	report, err := scheduler.NewRunner[*Player](logger).Run(ctx, g, tasks, player)
package scheduler
