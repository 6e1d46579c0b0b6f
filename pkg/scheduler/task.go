package scheduler

// Task is one unit of work bound to a vertex. Run mutates the shared state
// and has no result; a task that cannot continue should panic.
type Task[S any] interface {
	Run(state S)
}

// TaskFunc adapts an ordinary function to the Task interface.
type TaskFunc[S any] func(state S)

// Run calls f(state).
func (f TaskFunc[S]) Run(state S) { f(state) }

// Table maps vertex ids to tasks: tasks[id] runs for vertex id.
type Table[S any] []Task[S]

// Observe returns a copy of tasks in which before(id) is called right before
// each task runs. Nil entries stay nil so the runner still rejects them.
func Observe[S any](tasks Table[S], before func(id int)) Table[S] {
	out := make(Table[S], len(tasks))
	for id, t := range tasks {
		if isNil(t) {
			continue
		}
		out[id] = TaskFunc[S](func(state S) {
			before(id)
			t.Run(state)
		})
	}
	return out
}

// isNil reports an empty slot or a nil TaskFunc stored in one.
func isNil[S any](t Task[S]) bool {
	if t == nil {
		return true
	}
	f, ok := t.(TaskFunc[S])
	return ok && f == nil
}
