package cli

import (
	"context"
	"time"
)

// logHooks reports scheduler and loop events at debug level using the
// logger carried by ctx.
type logHooks struct{}

func (logHooks) OnRunStart(ctx context.Context, runID string, vertices int) {
	loggerFromContext(ctx).Debug("run started", "run", runID, "vertices", vertices)
}

func (logHooks) OnRunComplete(ctx context.Context, runID, state string, executed int, duration time.Duration, err error) {
	l := loggerFromContext(ctx)
	if err != nil {
		l.Debug("run finished", "run", runID, "state", state, "executed", executed, "duration", duration, "err", err)
		return
	}
	l.Debug("run finished", "run", runID, "state", state, "executed", executed, "duration", duration)
}

func (logHooks) OnTaskStart(ctx context.Context, runID string, id int) {
	loggerFromContext(ctx).Debug("task started", "run", runID, "task", id)
}

func (logHooks) OnTaskComplete(ctx context.Context, runID string, id int, duration time.Duration) {
	loggerFromContext(ctx).Debug("task finished", "run", runID, "task", id, "duration", duration)
}

func (logHooks) OnConfigLoaded(ctx context.Context, source string, stages int) {
	loggerFromContext(ctx).Debug("loop definition loaded", "source", source, "stages", stages)
}

func (logHooks) OnGraphBuilt(ctx context.Context, vertices, edges int) {
	loggerFromContext(ctx).Debug("dependency graph built", "vertices", vertices, "edges", edges)
}
