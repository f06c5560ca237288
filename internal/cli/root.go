package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lojacapivara/catalog/internal/product"
	"github.com/lojacapivara/catalog/internal/session"
	"github.com/lojacapivara/catalog/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Database   string // overrides database.path when set
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the catalog CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Capybara shop product catalog",
		Long: `Manage the capybara shop product catalog.

Products live in a local SQLite database that is created and seeded with the
default products on first use. Browse them interactively with "catalog tui",
serve them over HTTP with "catalog serve", or use the subcommands below.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "catalog.yaml", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (overrides config)")

	// Add subcommands
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewNicknameCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewTUICommand(opts))

	return cmd
}

// Execute runs the CLI with args and returns the process exit code.
// Errors are reported on the command's error writer in the selected format.
func Execute(ctx context.Context, args []string) int {
	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	return report(cmd, opts, cmd.ExecuteContext(ctx))
}

func report(cmd *cobra.Command, opts *RootOptions, err error) int {
	if err == nil {
		return ExitSuccess
	}
	format := opts.Format
	if !isValidFormat(format) {
		format = "text"
	}
	formatter := &OutputFormatter{Format: format, Writer: cmd.ErrOrStderr(), Verbose: opts.Verbose}
	_ = formatter.Error(errorCode(err), err.Error(), nil)
	return GetExitCode(err)
}

// Error codes reported by the CLI.
const (
	CodeCommand        = "E001" // bad arguments or configuration
	CodeNotFound       = "E002"
	CodeStorage        = "E003"
	CodeInvalidProduct = "E004"
	CodeInvalidWelcome = "E005"
)

func errorCode(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, product.ErrEmptyName):
		return CodeInvalidProduct
	case errors.Is(err, session.ErrInvalidWelcome):
		return CodeInvalidWelcome
	case GetExitCode(err) == ExitCommandError:
		return CodeCommand
	default:
		return CodeStorage
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
