package scheduler

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/taskloop/pkg/dag"
	apperrors "github.com/matzehuels/taskloop/pkg/errors"
	"github.com/matzehuels/taskloop/pkg/observability"
)

type point struct{ x, y int }

// recordingTable returns n tasks that append their id to *calls.
func recordingTable(n int, calls *[]int) Table[*point] {
	tasks := make(Table[*point], n)
	for id := range n {
		tasks[id] = TaskFunc[*point](func(*point) { *calls = append(*calls, id) })
	}
	return tasks
}

func quietRunner() *Runner[*point] {
	return NewRunner[*point](log.New(&bytes.Buffer{}))
}

func TestRunChainMutatesState(t *testing.T) {
	g := buildGraph(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}})

	var calls []int
	var seen []point
	tasks := make(Table[*point], 4)
	tasks[0] = TaskFunc[*point](func(p *point) {
		calls = append(calls, 0)
		p.x++
		seen = append(seen, *p)
	})
	for id := 1; id < 4; id++ {
		tasks[id] = TaskFunc[*point](func(p *point) {
			calls = append(calls, id)
			seen = append(seen, *p)
		})
	}

	p := &point{x: 5, y: 5}
	report, err := quietRunner().Run(context.Background(), g, tasks, p)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 3}, report.Order)
	assert.Equal(t, []int{0, 1, 2, 3}, calls)
	assert.Equal(t, 4, report.Executed)
	assert.True(t, report.Completed())
	assert.Equal(t, StateCompleted, report.State)
	assert.Equal(t, point{6, 5}, *p)
	for _, s := range seen {
		assert.Equal(t, point{6, 5}, s)
	}
	assert.NotEmpty(t, report.RunID)
}

func TestRunCycleExecutesNothing(t *testing.T) {
	g := buildGraph(t, 3, [][2]int{{0, 1}, {1, 2}, {2, 0}})

	var calls []int
	report, err := quietRunner().Run(context.Background(), g, recordingTable(3, &calls), &point{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCycleDetected)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeCycleDetected))
	require.NotNil(t, report)
	assert.Equal(t, StateCycleDetected, report.State)
	assert.Empty(t, report.Order)
	assert.Zero(t, report.Executed)
	assert.Empty(t, calls)
	assert.Equal(t, []int{0, 1, 2}, report.Unresolved)
}

func TestRunPartialCycleExecutesNothing(t *testing.T) {
	// 0 and 3 are orderable, 1↔2 is not
	g := buildGraph(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 1}, {0, 3}})

	var calls []int
	report, err := quietRunner().Run(context.Background(), g, recordingTable(4, &calls), &point{})

	assert.ErrorIs(t, err, ErrCycleDetected)
	assert.Empty(t, calls)
	assert.Empty(t, report.Order)
	assert.Equal(t, []int{1, 2}, report.Unresolved)
}

func TestRunLIFOOrder(t *testing.T) {
	g := buildGraph(t, 4, [][2]int{{0, 2}, {1, 2}, {2, 3}})

	var calls []int
	report, err := quietRunner().Run(context.Background(), g, recordingTable(4, &calls), &point{})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 0, 2, 3}, report.Order)
	assert.Equal(t, report.Order, calls)
}

func TestRunDeterministic(t *testing.T) {
	build := func() *dag.Graph {
		return buildGraph(t, 6, [][2]int{{0, 3}, {1, 3}, {2, 4}, {3, 5}, {4, 5}, {0, 4}})
	}

	var first, second []int
	r1, err := quietRunner().Run(context.Background(), build(), recordingTable(6, &first), &point{})
	require.NoError(t, err)
	r2, err := quietRunner().Run(context.Background(), build(), recordingTable(6, &second), &point{})
	require.NoError(t, err)

	assert.Equal(t, r1.Order, r2.Order)
	assert.Equal(t, first, second)
	assert.NotEqual(t, r1.RunID, r2.RunID)
}

func TestRunTableValidation(t *testing.T) {
	g := buildGraph(t, 3, [][2]int{{0, 1}})

	var calls []int
	short := recordingTable(2, &calls)
	report, err := quietRunner().Run(context.Background(), g, short, &point{})
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrTaskTableTooShort)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeOutOfRange))

	holey := recordingTable(3, &calls)
	holey[1] = nil
	report, err = quietRunner().Run(context.Background(), g, holey, &point{})
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrNilTask)

	nilFunc := recordingTable(3, &calls)
	nilFunc[2] = TaskFunc[*point](nil)
	report, err = quietRunner().Run(context.Background(), g, nilFunc, &point{})
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrNilTask)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeOutOfRange))

	observed := Observe(nilFunc, func(int) {})
	assert.Nil(t, observed[2])
	_, err = quietRunner().Run(context.Background(), g, observed, &point{})
	assert.ErrorIs(t, err, ErrNilTask)

	assert.Empty(t, calls)
}

func TestRunIgnoresExtraTasks(t *testing.T) {
	g := buildGraph(t, 2, [][2]int{{0, 1}})

	var calls []int
	report, err := quietRunner().Run(context.Background(), g, recordingTable(5, &calls), &point{})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, calls)
	assert.Equal(t, 2, report.Executed)
}

func TestRunReleasedGraph(t *testing.T) {
	g := buildGraph(t, 1, nil)
	g.Release()

	var calls []int
	_, err := quietRunner().Run(context.Background(), g, recordingTable(1, &calls), &point{})
	assert.ErrorIs(t, err, dag.ErrGraphReleased)
	assert.Empty(t, calls)
}

func TestRunPanicPropagates(t *testing.T) {
	g := buildGraph(t, 2, [][2]int{{0, 1}})

	ran := false
	tasks := Table[*point]{
		TaskFunc[*point](func(*point) { panic("boom") }),
		TaskFunc[*point](func(*point) { ran = true }),
	}

	assert.PanicsWithValue(t, "boom", func() {
		_, _ = quietRunner().Run(context.Background(), g, tasks, &point{})
	})
	assert.False(t, ran)
}

func TestRunEmitsHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetSchedulerHooks(hooks)
	t.Cleanup(observability.Reset)

	g := buildGraph(t, 2, [][2]int{{0, 1}})
	var calls []int
	report, err := quietRunner().Run(context.Background(), g, recordingTable(2, &calls), &point{})
	require.NoError(t, err)

	assert.Equal(t, []string{"start", "task 0", "done 0", "task 1", "done 1", "complete completed 2"}, hooks.events)
	assert.Equal(t, report.RunID, hooks.runID)
}

func TestNewRunnerDefaultLogger(t *testing.T) {
	r := NewRunner[*point](nil)
	assert.NotNil(t, r.Logger)
}

func TestObserve(t *testing.T) {
	var events []string
	tasks := Table[*point]{
		TaskFunc[*point](func(*point) { events = append(events, "run 0") }),
		nil,
	}

	observed := Observe(tasks, func(id int) { events = append(events, "before "+string(rune('0'+id))) })
	require.Len(t, observed, 2)
	assert.Nil(t, observed[1])

	observed[0].Run(&point{})
	assert.Equal(t, []string{"before 0", "run 0"}, events)
}

type recordingHooks struct {
	observability.NoopSchedulerHooks
	runID  string
	events []string
}

func (h *recordingHooks) OnRunStart(_ context.Context, runID string, _ int) {
	h.runID = runID
	h.events = append(h.events, "start")
}

func (h *recordingHooks) OnTaskStart(_ context.Context, _ string, id int) {
	h.events = append(h.events, "task "+string(rune('0'+id)))
}

func (h *recordingHooks) OnTaskComplete(_ context.Context, _ string, id int, _ time.Duration) {
	h.events = append(h.events, "done "+string(rune('0'+id)))
}

func (h *recordingHooks) OnRunComplete(_ context.Context, _ string, state string, executed int, _ time.Duration, _ error) {
	h.events = append(h.events, "complete "+state+" "+string(rune('0'+executed)))
}
