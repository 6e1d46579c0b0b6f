package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/taskloop/pkg/gameloop"
	"github.com/matzehuels/taskloop/pkg/scheduler"
)

// runCommand creates the run command.
func (c *CLI) runCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run every stage once in topological order",
		Long: `Run builds the dependency graph, orders it with Kahn's algorithm and runs
each stage once. If the graph has a cycle nothing runs; the cycle is reported
and the exit code is 0 unless --strict is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLoop(cmd.Context(), *root)
		},
	}
}

func (c *CLI) runLoop(ctx context.Context, opts rootOptions) error {
	loop, err := c.loadLoop(ctx, opts.configPath)
	if err != nil {
		return err
	}

	g, err := loop.Build(ctx)
	if err != nil {
		return err
	}
	defer g.Release()

	stages := gameloop.NewStages(c.Out)
	stages.Step = loop.Step()
	tasks, err := stages.Table(loop.Handlers())
	if err != nil {
		return err
	}
	tasks = scheduler.Observe(tasks, func(id int) {
		fmt.Fprintf(c.Out, "Executing task %d\n", id)
	})

	player := loop.StartPlayer()
	fmt.Fprintln(c.Out, "Executing game loop tasks in topological order:")

	prog := newProgress(c.Logger)
	report, err := scheduler.NewRunner[*gameloop.Player](c.Logger).Run(ctx, g, tasks, player)
	if errors.Is(err, scheduler.ErrCycleDetected) {
		fmt.Fprintln(c.Out, "There exists a cycle in the graph")
		c.Logger.Warn("stages blocked by a cycle", "loop", loop.Name, "stages", stageNames(loop, report.Unresolved))
		if opts.strict {
			return err
		}
		return nil
	}
	if err != nil {
		return err
	}

	c.Logger.Debug("final player position", "position", player.String())
	prog.done("loop completed", "loop", loop.Name, "executed", report.Executed, "run", report.RunID)
	return nil
}
