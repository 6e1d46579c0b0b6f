// Package cli implements the taskloop command-line interface.
//
// This package provides commands for running a loop definition in
// dependency order, inspecting the computed order and exporting the
// dependency graph. The CLI is built using cobra and logs via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - run: Execute every stage in topological order (also the default)
//   - order: Print the execution order without running anything
//   - graph: Export the dependency graph as DOT, SVG or JSON
//
// # Output
//
// Stage progress goes to standard output. Logs go to standard error at
// info level, or debug level with --verbose (-v).
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/taskloop/pkg/config"
	"github.com/matzehuels/taskloop/pkg/observability"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer // stage progress and command output
}

// New creates a CLI writing command output to out and logs to logw.
func New(out, logw io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(logw, level),
		Out:    out,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// installHooks routes scheduler and loop events to the debug log.
func (c *CLI) installHooks() {
	observability.SetSchedulerHooks(logHooks{})
	observability.SetLoopHooks(logHooks{})
}

// loadLoop reads the loop definition at path, or returns the built-in loop
// when path is empty.
func (c *CLI) loadLoop(ctx context.Context, path string) (*config.Loop, error) {
	if path == "" {
		loop := config.Default()
		observability.Loop().OnConfigLoaded(ctx, "default", len(loop.Stages))
		return loop, nil
	}
	c.Logger.Debug("loading loop definition", "path", path)
	return config.Load(ctx, path)
}

// stageNames maps vertex ids to stage names for messages.
func stageNames(loop *config.Loop, ids []int) []string {
	names := loop.StageNames()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = names[id]
	}
	return out
}
