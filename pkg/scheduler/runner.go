package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/taskloop/pkg/dag"
	apperrors "github.com/matzehuels/taskloop/pkg/errors"
	"github.com/matzehuels/taskloop/pkg/observability"
)

var (
	// ErrTaskTableTooShort is returned by [Runner.Run] when the task table has
	// fewer entries than the graph has vertices.
	ErrTaskTableTooShort = errors.New("task table shorter than vertex count")

	// ErrNilTask is returned by [Runner.Run] when a vertex has no task.
	ErrNilTask = errors.New("nil task")
)

// Report describes one scheduling run.
type Report struct {
	RunID string // Unique per Run call

	State State   // Terminal state
	Trail []State // States visited, in order

	// Order is the dispatch order. Empty when a cycle was detected.
	Order []int
	// Executed counts tasks that ran to completion.
	Executed int
	// Unresolved lists the vertices stuck behind a cycle.
	Unresolved []int

	Started  time.Time
	Duration time.Duration
}

// Completed reports whether every vertex ran.
func (r *Report) Completed() bool { return r.State == StateCompleted }

// Runner dispatches a task table against a graph.
//
// The Runner holds no per-run state, so one Runner can serve many runs as
// long as each run gets its own graph.
type Runner[S any] struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner[S any](logger *log.Logger) *Runner[S] {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner[S]{Logger: logger}
}

// Run sorts g and calls tasks[id].Run(state) for every vertex in order.
//
// The table is checked before anything else: a table shorter than the vertex
// count or with a nil entry for a vertex fails with an OUT_OF_RANGE error
// and a nil report. Entries beyond the vertex count are ignored.
//
// If g contains a cycle, no task runs; the returned report has State
// StateCycleDetected and the error wraps ErrCycleDetected with code
// CYCLE_DETECTED.
//
// ctx carries logging and hook context only. A run cannot be cancelled, and
// a panicking task aborts the run by propagating the panic.
func (r *Runner[S]) Run(ctx context.Context, g *dag.Graph, tasks Table[S], state S) (*Report, error) {
	if err := validateTable(g, tasks); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}
	hooks := observability.Scheduler()
	logger := r.Logger.With("run", report.RunID)

	hooks.OnRunStart(ctx, report.RunID, g.VertexCount())
	logger.Debug("scheduling", "vertices", g.VertexCount(), "edges", g.EdgeCount())

	sorted, err := Sort(g)
	if err != nil && !errors.Is(err, ErrCycleDetected) {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "sort graph")
	}
	report.Trail = sorted.Trail
	report.State = sorted.State()

	if err != nil {
		report.Unresolved = sorted.Unresolved
		report.Duration = time.Since(report.Started)
		err = apperrors.Wrap(apperrors.ErrCodeCycleDetected, err,
			"%d of %d tasks blocked", len(sorted.Unresolved), g.VertexCount())
		logger.Warn("cycle detected, nothing executed", "unresolved", sorted.Unresolved)
		hooks.OnRunComplete(ctx, report.RunID, report.State.String(), 0, report.Duration, err)
		return report, err
	}

	report.Order = sorted.Order
	for _, id := range report.Order {
		hooks.OnTaskStart(ctx, report.RunID, id)
		start := time.Now()
		tasks[id].Run(state)
		report.Executed++
		hooks.OnTaskComplete(ctx, report.RunID, id, time.Since(start))
	}
	report.Duration = time.Since(report.Started)

	logger.Debug("run completed", "executed", report.Executed, "duration", report.Duration)
	hooks.OnRunComplete(ctx, report.RunID, report.State.String(), report.Executed, report.Duration, nil)
	return report, nil
}

func validateTable[S any](g *dag.Graph, tasks Table[S]) error {
	n := g.VertexCount()
	if len(tasks) < n {
		return apperrors.Wrap(apperrors.ErrCodeOutOfRange, ErrTaskTableTooShort,
			"%d tasks for %d vertices", len(tasks), n)
	}
	for id := range n {
		if isNil(tasks[id]) {
			return apperrors.Wrap(apperrors.ErrCodeOutOfRange, ErrNilTask, "vertex %d", id)
		}
	}
	return nil
}
