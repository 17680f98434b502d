package commands

import (
	"fmt"

	"github.com/ripplebuild/ripple/internal/build"
	"github.com/ripplebuild/ripple/internal/ui/style"
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Build once, then rebuild and push live updates on change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), style.Banner.Render("ripple "+build.Version))
			cwd, _ := cmd.Flags().GetString("dir")
			return c.app.Watch(cmd.Context(), cwd)
		},
	}
	cmd.Flags().StringP("dir", "d", ".", "Directory to locate the project configuration from")
	return cmd
}
