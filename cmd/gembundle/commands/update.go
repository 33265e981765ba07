package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update [names...]",
		Short: "Ignore any existing lock file and re-resolve",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.orchestrator.Update(cmd.Context(), args)
			if err != nil {
				return err
			}
			fmt.Printf("%d gems resolved\n", len(result.Libraries))
			return nil
		},
	}
}
