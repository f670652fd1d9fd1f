package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/mirror/internal/adapters/watcher"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Mirror the input tree, then again whenever it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			window, _ := cmd.Flags().GetDuration("debounce")
			return c.app.Watch(cmd.Context(), configPath(cmd), window)
		},
	}
	cmd.Flags().Duration("debounce", watcher.DefaultDebounceWindow, "Quiet period after the last change before mirroring")
	return cmd
}
