package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mediapulse/pulse/api"
	"github.com/mediapulse/pulse/cli"
	"github.com/mediapulse/pulse/state"
)

// NewLoginCmd creates the `login` command.
func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the backend and store the session token",
		Long: `Logs in to a password-protected backend. The password is taken from
backend.password in pulse.yml when set, otherwise prompted without echo.
The session token is stored in ~/.mediapulse/state.yml for later commands.

Examples:
  pulse login
  pulse logout
`,
		RunE: runLoginE,
	}
	return cmd
}

func runLoginE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return handler.Handle(err)
	}

	password := cfg.Backend.Password
	if password == "" {
		password, err = cli.ReadPassword("Password: ")
		if err != nil {
			return handler.Handle(err)
		}
	}

	client := api.NewClient(cfg.Backend)
	if err := login(cmd.Context(), client, password); err != nil {
		return handler.Handle(err)
	}

	fmt.Println("Logged in.")
	return nil
}

// NewLogoutCmd creates the `logout` command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			_, client, err := newClient(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			// Best effort server-side; the local token is dropped regardless.
			_ = client.Logout(cmd.Context())
			if err := state.ClearAuthToken(); err != nil {
				return handler.Handle(err)
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}
