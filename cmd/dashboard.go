package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mediapulse/pulse/cli"
	"github.com/mediapulse/pulse/config"
	"github.com/mediapulse/pulse/logging"
	"github.com/mediapulse/pulse/tui"
	"github.com/mediapulse/pulse/tui/dashboard"
)

// NewDashboardCmd creates the `dashboard` command, the interactive console.
func NewDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive monitoring dashboard",
		Long: `Opens the full-screen terminal dashboard. With no prior session it asks for
a subject to track and starts a scan; afterwards it resumes the last subject.

Examples:
  # Open the dashboard
  pulse

  # Open with a specific config file
  pulse dashboard -c ./pulse.yml
`,
		RunE: runDashboardE,
	}
	return cmd
}

func runDashboardE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	cfg, client, err := newClient(cmd)
	if err != nil {
		return handler.Handle(err)
	}

	tui.InitializeTUI()
	p := tea.NewProgram(dashboard.New(cfg, client), tea.WithAltScreen())

	watchCtx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	startConfigWatch(watchCtx, opts.ConfigFile, p)

	if _, err := p.Run(); err != nil {
		return handler.Handle(err)
	}
	return nil
}

// startConfigWatch feeds config file changes into the running program.
// Watching is best effort: a missing config file just means no watcher.
func startConfigWatch(ctx context.Context, configFile string, p *tea.Program) {
	log := logging.NewLogger("config-watch")

	path, err := cli.InitConfig(configFile)
	if err != nil || path == "" {
		return
	}

	go func() {
		err := config.Watch(ctx, path, log, func(*config.Config) {
			p.Send(dashboard.ConfigReloaded())
		})
		if err != nil && ctx.Err() == nil {
			log.Warnf("Config watcher stopped: %v", err)
		}
	}()
}
