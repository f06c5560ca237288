package cli

import (
	"github.com/spf13/cobra"

	"github.com/lojacapivara/catalog/internal/screens"
)

// NewTUICommand creates the tui command.
func NewTUICommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the catalog in an interactive terminal UI",
		Long: `Open the interactive catalog. The welcome prompt is shown first when no
nickname is stored. Logs go to the log file only (logger.file_enable).`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnvWith(cmd.Context(), rootOpts, false)
			if err != nil {
				return err
			}
			defer e.Close()

			sess, err := e.sessions()
			if err != nil {
				return err
			}
			if err := screens.Run(cmd.Context(), e.catalog, sess, e.credentials()); err != nil {
				return WrapExitError(ExitFailure, "terminal UI error", err)
			}
			return nil
		},
	}
}
