package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/envy/internal/app"
)

func (c *CLI) newUpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Create, lock and sync the environment, then open a shell in it",
		Long: `Create the environment if it does not exist, compile the manifest into the
lock file, sync the environment to it and install the accelerator runtime.

Set DRY_RUN=1 to skip the accelerator install.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noShell, err := cmd.Flags().GetBool("no-shell")
			if err != nil {
				return err
			}
			return c.app.Up(cmd.Context(), app.UpOptions{NoShell: noShell})
		},
	}
	cmd.Flags().Bool("no-shell", false, "Print activation instructions instead of starting a subshell")
	return cmd
}
