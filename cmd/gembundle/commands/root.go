// Package commands implements the CLI for the gembundle companion binary
// (spec.md §6): install/update/check/help subcommands layered over the same
// orchestrator supergemlock uses directly.
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/trailib/supergemlock/internal/app"
	"github.com/trailib/supergemlock/internal/build"
)

// CLI represents the command-line interface for gembundle.
type CLI struct {
	orchestrator *app.Orchestrator
	rootCmd      *cobra.Command
}

// New creates a CLI wrapping orch.
func New(orch *app.Orchestrator) *CLI {
	c := &CLI{orchestrator: orch}

	rootCmd := &cobra.Command{
		Use:           "gembundle",
		Short:         "Manage a Gemfile.lock via install/update/check",
		Version:       build.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newUpdateCmd())
	rootCmd.AddCommand(c.newCheckCmd())

	c.rootCmd = rootCmd
	return c
}

// Execute runs the root command with ctx.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}
