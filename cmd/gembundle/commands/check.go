package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report whether a lock file exists",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			if c.orchestrator.Check().LockFileExists {
				fmt.Println("Gemfile.lock found")
				return
			}
			fmt.Println("Gemfile.lock not found")
		},
	}
}
