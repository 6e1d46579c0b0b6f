package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/taskloop/pkg/errors"
	"github.com/matzehuels/taskloop/pkg/scheduler"
)

// orderCommand creates the order command, which prints the execution order
// without running any stage.
func (c *CLI) orderCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "order",
		Short: "Print the execution order without running it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			loop, err := c.loadLoop(ctx, root.configPath)
			if err != nil {
				return err
			}
			g, err := loop.Build(ctx)
			if err != nil {
				return err
			}
			defer g.Release()

			sorted, err := scheduler.Sort(g)
			if errors.Is(err, scheduler.ErrCycleDetected) {
				printError(c.Out, "%s has a cycle", loop.Name)
				printDetail(c.Out, "blocked: %v", stageNames(loop, sorted.Unresolved))
				return apperrors.Wrap(apperrors.ErrCodeCycleDetected, err, "order %s", loop.Name)
			}
			if err != nil {
				return err
			}

			printSuccess(c.Out, "Order for %s (%d stages, %d dependencies)", loop.Name, g.VertexCount(), g.EdgeCount())
			names := loop.StageNames()
			handlers := loop.Handlers()
			for i, id := range sorted.Order {
				printKeyValue(c.Out, fmt.Sprintf("%d. %s", i+1, names[id]), fmt.Sprintf("task %d · %s", id, handlers[id]))
			}
			return nil
		},
	}
}
