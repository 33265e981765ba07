package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Reuse an existing lock file, or resolve one if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := c.orchestrator.Install(cmd.Context())
			if err != nil {
				return err
			}

			if result.Reused {
				fmt.Println("using existing Gemfile.lock:")
				for _, lib := range result.Libraries {
					fmt.Printf("  %s\n", lib)
				}
				return nil
			}

			fmt.Printf("%d gems resolved\n", len(result.Result.Libraries))
			return nil
		},
	}
}
