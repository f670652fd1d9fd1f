package commands

import "github.com/spf13/cobra"

func (c *CLI) newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "plan",
		Aliases: []string{"dry-run"},
		Short:   "Print the tasks a run would perform without performing them",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Plan(cmd.Context(), configPath(cmd), cmd.OutOrStdout())
		},
	}
}
