// Package commands implements the CLI for the supergemlock binary.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trailib/supergemlock/internal/app"
	"github.com/trailib/supergemlock/internal/build"
)

// CLI represents the command-line interface for supergemlock.
type CLI struct {
	orchestrator *app.Orchestrator
	rootCmd      *cobra.Command
}

// New creates a CLI whose default (no-argument) action runs orch.
func New(orch *app.Orchestrator) *CLI {
	c := &CLI{orchestrator: orch}

	rootCmd := &cobra.Command{
		Use:           "supergemlock",
		Short:         "Resolve a Gemfile into a Gemfile.lock",
		Version:       build.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runDefault(cmd.Context())
		},
	}
	rootCmd.SetVersionTemplate("supergemlock {{.Version}}\n")
	rootCmd.Flags().Bool("force", false, "ignore the fast-path gate and re-resolve")

	c.rootCmd = rootCmd
	return c
}

func (c *CLI) runDefault(ctx context.Context) error {
	force, _ := c.rootCmd.Flags().GetBool("force")

	result, err := c.orchestrator.Run(ctx, force)
	if err != nil {
		return err
	}

	if result.Skipped {
		fmt.Println("cached resolution (fast-path hit)")
		return nil
	}

	fmt.Printf("%d gems resolved\n", len(result.Libraries))
	return nil
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
