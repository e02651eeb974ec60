package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mediapulse/pulse/api"
	"github.com/mediapulse/pulse/cli"
	"github.com/mediapulse/pulse/config"
	"github.com/mediapulse/pulse/dashboard"
	"github.com/mediapulse/pulse/errors"
	"github.com/mediapulse/pulse/state"
	"github.com/mediapulse/pulse/tui/theme"
	"github.com/mediapulse/pulse/version"
)

// NewRootCmd builds the pulse root command. Running it without a subcommand
// opens the dashboard TUI.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		"pulse",
		"Press and social monitoring console for the MediaPulse backend",
	)
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return runDashboardE(cmd, args)
	}

	root.AddCommand(NewDashboardCmd())
	root.AddCommand(NewScanCmd())
	root.AddCommand(NewPlayersCmd())
	root.AddCommand(NewPortfolioCmd())
	root.AddCommand(NewCompareCmd())
	root.AddCommand(NewExportCmd())
	root.AddCommand(NewReportCmd())
	root.AddCommand(NewAlertsCmd())
	root.AddCommand(NewStatusCmd())
	root.AddCommand(NewLoginCmd())
	root.AddCommand(NewLogoutCmd())
	root.AddCommand(NewLogsCmd())
	root.AddCommand(NewConfigCmd())
	root.AddCommand(NewVersionCmd())

	cli.SetVersionTemplate(root, version.GetInfo())
	cli.SetStyledHelpWithExtras(root, func(t *theme.Theme) {
		fmt.Println("\n " + t.Title.Render("ENVIRONMENT"))
		fmt.Println("  PULSE_LOG_LEVEL   trace|debug|info|warning|error")
		fmt.Println("  PULSE_LOG_CALLER  include caller file:line in log output")
	})

	// Run errors are printed by the per-command error handlers; cobra's own
	// parse errors go through the styled printer instead.
	root.SilenceErrors = true
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		cli.PrintError(cmd, err)
		return err
	})

	cli.ApplyStyledHelpRecursive(root)
	return root
}

// newClient loads configuration and builds an authenticated API client. A
// token persisted by a previous login is reused; when the config carries a
// password and no token is stored, a fresh login runs first.
func newClient(cmd *cobra.Command) (*config.Config, *api.Client, error) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	client := api.NewClient(cfg.Backend)
	if token, err := state.AuthToken(); err == nil && token != "" {
		client.SetToken(token)
	}

	if client.Token() == "" && cfg.Backend.Password != "" {
		if err := login(cmd.Context(), client, cfg.Backend.Password); err != nil {
			return nil, nil, err
		}
	}

	return cfg, client, nil
}

// dashboardPoller builds a scan poller with the configured interval.
func dashboardPoller(cfg *config.Config, client *api.Client) *dashboard.ScanPoller {
	return dashboard.NewScanPoller(client, cfg.Scan.PollInterval.Std())
}

// lastSubject resolves the subject remembered from the previous session.
func lastSubject() (int, error) {
	id, err := state.LastSubject()
	if err != nil || id <= 0 {
		return 0, errors.InvalidInput("no subject selected; pass --player or run a scan first")
	}
	return id, nil
}

// login authenticates against the backend and persists the session token.
func login(ctx context.Context, client *api.Client, password string) error {
	token, err := client.Login(ctx, password)
	if err != nil {
		return err
	}
	return state.SetAuthToken(token)
}
