package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile all stylesheets and bundle scripts once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, _ := cmd.Flags().GetString("dir")
			return c.app.Build(cmd.Context(), cwd)
		},
	}
	cmd.Flags().StringP("dir", "d", ".", "Directory to locate the project configuration from")
	return cmd
}
