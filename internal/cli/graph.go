package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/taskloop/pkg/config"
	"github.com/matzehuels/taskloop/pkg/dag"
	apperrors "github.com/matzehuels/taskloop/pkg/errors"
	pkgio "github.com/matzehuels/taskloop/pkg/io"
	"github.com/matzehuels/taskloop/pkg/render/nodelink"
	"github.com/matzehuels/taskloop/pkg/scheduler"
)

const (
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatJSON = "json"
)

type graphOptions struct {
	format string
	output string
}

// graphCommand creates the graph command, which exports the dependency graph.
func (c *CLI) graphCommand(root *rootOptions) *cobra.Command {
	var opts graphOptions

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the dependency graph as DOT, SVG or JSON",
		Long: `Graph writes the loop's dependency graph. Vertices are labelled with stage
names and execution steps; stages blocked by a cycle are drawn in red.

Without --format, the format follows the extension of --output and
defaults to dot. A JSON export can be run again with --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				if f := formatFromExt(opts.output); f != "" {
					opts.format = f
				}
			}
			return c.exportGraph(cmd.Context(), root.configPath, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatDOT, "output format: dot, svg or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func formatFromExt(path string) string {
	switch ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."); ext {
	case formatDOT, formatSVG, formatJSON:
		return ext
	case "gv":
		return formatDOT
	}
	return ""
}

func (c *CLI) exportGraph(ctx context.Context, configPath string, opts graphOptions) error {
	switch opts.format {
	case formatDOT, formatSVG, formatJSON:
	default:
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported graph format %q (want dot, svg or json)", opts.format)
	}

	loop, err := c.loadLoop(ctx, configPath)
	if err != nil {
		return err
	}
	g, err := loop.Build(ctx)
	if err != nil {
		return err
	}
	defer g.Release()

	order, unresolved, err := c.schedule(g, loop)
	if err != nil {
		return err
	}

	if opts.format == formatJSON && opts.output != "" {
		stages := loop.Export()
		stages.Order, stages.Unresolved = order, unresolved
		if err := pkgio.ExportJSON(g, stages, opts.output); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInternal, err, "export json")
		}
		c.printWritten(opts)
		return nil
	}

	data, err := c.renderGraph(ctx, g, loop, opts.format, order, unresolved)
	if err != nil {
		return err
	}
	if opts.output == "" {
		_, err = c.Out.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	c.printWritten(opts)
	return nil
}

// schedule returns the execution order, or the stages blocked by a cycle.
func (c *CLI) schedule(g *dag.Graph, loop *config.Loop) (order, unresolved []int, err error) {
	sorted, err := scheduler.Sort(g)
	switch {
	case errors.Is(err, scheduler.ErrCycleDetected):
		c.Logger.Warn("graph has a cycle; highlighting blocked stages", "stages", stageNames(loop, sorted.Unresolved))
		return nil, sorted.Unresolved, nil
	case err != nil:
		return nil, nil, err
	}
	return sorted.Order, nil, nil
}

func (c *CLI) renderGraph(ctx context.Context, g *dag.Graph, loop *config.Loop, format string, order, unresolved []int) ([]byte, error) {
	if format == formatJSON {
		var buf strings.Builder
		stages := loop.Export()
		stages.Order, stages.Unresolved = order, unresolved
		if err := pkgio.WriteJSON(g, stages, &buf); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode json")
		}
		return []byte(buf.String()), nil
	}

	dot := nodelink.ToDOT(g, nodelink.Options{
		Names:      loop.StageNames(),
		Handlers:   loop.Handlers(),
		Order:      order,
		Unresolved: unresolved,
	})
	if format == formatDOT {
		return []byte(dot), nil
	}
	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "render svg")
	}
	return svg, nil
}

func (c *CLI) printWritten(opts graphOptions) {
	printSuccess(c.Out, "Wrote %s graph", opts.format)
	printFile(c.Out, opts.output)
}
