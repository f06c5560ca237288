package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lojacapivara/catalog/internal/catalog"
)

type databaseStatus struct {
	Path     string `json:"path"`
	Products int    `json:"products"`
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database and seed the default products",
		Long: `Create the database if needed and insert the default products when the
table is empty. Running init again never duplicates rows.

Example:
  catalog init --db ./catalog.db`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer e.Close()

			// seed even when database.seed is off
			if !e.cfg.Database.Seed {
				if err := e.seed(cmd.Context()); err != nil {
					return err
				}
			}
			return reportDatabase(cmd, rootOpts, e, "Database ready")
		},
	}
}

// ResetOptions holds flags for the reset command.
type ResetOptions struct {
	*RootOptions
	Yes bool
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every product and restore the defaults",
		Long: `Delete every product, restart ids at 1 and insert the default products.
Meant for development; it requires --yes.

Example:
  catalog reset --yes`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.Yes {
				return NewExitError(ExitCommandError, "reset deletes every product; pass --yes to confirm")
			}
			e, err := openEnv(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer e.Close()

			seeds, err := catalog.DefaultProducts()
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load default products", err)
			}
			if err := e.store.Reset(cmd.Context(), seeds); err != nil {
				return WrapExitError(ExitFailure, "failed to reset database", err)
			}
			e.log.Info("catalog reset", zap.Int("products", len(seeds)))
			return reportDatabase(cmd, rootOpts, e, "Catalog reset")
		},
	}

	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "confirm deleting every product")

	return cmd
}

func reportDatabase(cmd *cobra.Command, opts *RootOptions, e *env, message string) error {
	n, err := e.store.Count(cmd.Context())
	if err != nil {
		return WrapExitError(ExitFailure, "failed to count products", err)
	}
	status := databaseStatus{Path: e.cfg.Database.Path, Products: n}
	return newFormatter(cmd, opts).Render(status, func(w io.Writer) {
		fmt.Fprintf(w, "%s at %s (%d products)\n", message, status.Path, status.Products)
	})
}
