package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lojacapivara/catalog/internal/logging"
	"github.com/lojacapivara/catalog/internal/session"
)

type nicknameStatus struct {
	Nickname string `json:"nickname"`
	Prompt   bool   `json:"prompt"`
}

// NewNicknameCommand creates the nickname command and its set subcommand.
func NewNicknameCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nickname",
		Short: "Show the stored nickname",
		Long: `Show the nickname greeted on the home screen. When none is stored the
welcome prompt is shown on the next start of the interactive UI.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openSessionEnv(rootOpts)
			if err != nil {
				return err
			}
			defer e.Close()

			sess, err := e.sessions()
			if err != nil {
				return err
			}
			nick, err := sess.Nickname()
			if err != nil {
				return WrapExitError(ExitFailure, "failed to read nickname", err)
			}
			status := nicknameStatus{Nickname: nick, Prompt: session.NeedsPrompt(nick)}
			return newFormatter(cmd, rootOpts).Render(status, func(w io.Writer) {
				if status.Prompt {
					fmt.Fprintln(w, "No nickname set.")
					return
				}
				fmt.Fprintln(w, nick)
			})
		},
	}

	cmd.AddCommand(newNicknameSetCommand(rootOpts))

	return cmd
}

// NicknameSetOptions holds the welcome credentials flags.
type NicknameSetOptions struct {
	*RootOptions
	Name     string
	Password string
}

func newNicknameSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NicknameSetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set <nickname>",
		Short: "Answer the welcome prompt and store a nickname",
		Long: `Store a nickname. Like the welcome prompt, it requires the configured
name and password.

Example:
  catalog nickname set capi --name Aluno --password 123`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openSessionEnv(rootOpts)
			if err != nil {
				return err
			}
			defer e.Close()

			sess, err := e.sessions()
			if err != nil {
				return err
			}
			nick, err := sess.Confirm(e.credentials(), session.Welcome{
				Name:     opts.Name,
				Password: opts.Password,
				Nickname: args[0],
			})
			if err != nil {
				return WrapExitError(ExitFailure, "welcome rejected", err)
			}
			status := nicknameStatus{Nickname: nick}
			return newFormatter(cmd, rootOpts).Render(status, func(w io.Writer) {
				fmt.Fprintf(w, "Hello, %s!\n", nick)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "welcome name")
	cmd.Flags().StringVar(&opts.Password, "password", "", "welcome password")

	return cmd
}

// openSessionEnv prepares config and logging without opening the database.
func openSessionEnv(opts *RootOptions) (*env, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg}
	e.log, e.restore, err = logging.Install(cfg.Logger, opts.Verbose)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to build logger", err)
	}
	return e, nil
}
