package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/taskloop/pkg/buildinfo"
)

// rootOptions are flags shared by every command.
type rootOptions struct {
	configPath string
	strict     bool
}

// RootCommand creates the root cobra command with all subcommands registered.
// Running the root command without a subcommand runs the loop.
func (c *CLI) RootCommand() *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:   "taskloop",
		Short: "Taskloop runs game-loop stages in dependency order",
		Long: `Taskloop builds a dependency graph from a loop definition, orders it
topologically and runs each stage once, in order, against a shared player.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.installHooks()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLoop(cmd.Context(), opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "loop definition file (.toml, .yaml, .json); built-in game loop if empty")
	root.PersistentFlags().BoolVar(&opts.strict, "strict", false, "exit non-zero when the graph has a cycle")

	root.AddCommand(c.runCommand(&opts))
	root.AddCommand(c.orderCommand(&opts))
	root.AddCommand(c.graphCommand(&opts))
	root.AddCommand(c.completionCommand())

	return root
}
