// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup
// to receive events about scheduling runs and loop construction.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSchedulerHooks(&mySchedulerHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Scheduler().OnRunStart(ctx, runID, vertexCount)
//	// ... sort and dispatch ...
//	observability.Scheduler().OnRunComplete(ctx, runID, state, executed, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Scheduler Hooks
// =============================================================================

// SchedulerHooks receives events from a scheduling run.
type SchedulerHooks interface {
	// Run events
	OnRunStart(ctx context.Context, runID string, vertices int)
	OnRunComplete(ctx context.Context, runID, state string, executed int, duration time.Duration, err error)

	// Task events, emitted once per dispatched vertex
	OnTaskStart(ctx context.Context, runID string, id int)
	OnTaskComplete(ctx context.Context, runID string, id int, duration time.Duration)
}

// =============================================================================
// Loop Hooks
// =============================================================================

// LoopHooks receives events from loop-definition loading and graph building.
type LoopHooks interface {
	// OnConfigLoaded records a loop definition read from disk or defaults.
	OnConfigLoaded(ctx context.Context, source string, stages int)

	// OnGraphBuilt records a dependency graph built from a loop definition.
	OnGraphBuilt(ctx context.Context, vertices, edges int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSchedulerHooks is a no-op implementation of SchedulerHooks.
type NoopSchedulerHooks struct{}

func (NoopSchedulerHooks) OnRunStart(context.Context, string, int) {}
func (NoopSchedulerHooks) OnRunComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopSchedulerHooks) OnTaskStart(context.Context, string, int)                   {}
func (NoopSchedulerHooks) OnTaskComplete(context.Context, string, int, time.Duration) {}

// NoopLoopHooks is a no-op implementation of LoopHooks.
type NoopLoopHooks struct{}

func (NoopLoopHooks) OnConfigLoaded(context.Context, string, int) {}
func (NoopLoopHooks) OnGraphBuilt(context.Context, int, int)      {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	schedulerHooks SchedulerHooks = NoopSchedulerHooks{}
	loopHooks      LoopHooks      = NoopLoopHooks{}
	hooksMu        sync.RWMutex
)

// SetSchedulerHooks registers custom scheduler hooks.
// This should be called once at application startup before any run.
func SetSchedulerHooks(h SchedulerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		schedulerHooks = h
	}
}

// SetLoopHooks registers custom loop hooks.
// This should be called once at application startup before any config is loaded.
func SetLoopHooks(h LoopHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		loopHooks = h
	}
}

// Scheduler returns the registered scheduler hooks.
func Scheduler() SchedulerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return schedulerHooks
}

// Loop returns the registered loop hooks.
func Loop() LoopHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return loopHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	schedulerHooks = NoopSchedulerHooks{}
	loopHooks = NoopLoopHooks{}
}
