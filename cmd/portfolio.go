package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mediapulse/pulse/cli"
	core "github.com/mediapulse/pulse/dashboard"
	"github.com/mediapulse/pulse/tui/theme"
)

// NewPortfolioCmd creates the `portfolio` command.
func NewPortfolioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Show the portfolio overview of all tracked subjects",
		Long: `Prints every tracked subject with its image index, headline counters and
an image-index sparkline.

Examples:
  pulse portfolio
  pulse portfolio --json
`,
		RunE: runPortfolioE,
	}
	return cmd
}

func runPortfolioE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	_, client, err := newClient(cmd)
	if err != nil {
		return handler.Handle(err)
	}

	ctx := cmd.Context()
	entries, err := client.Portfolio(ctx)
	if err != nil {
		return handler.Handle(err)
	}

	if opts.JSONOutput {
		return json.NewEncoder(os.Stdout).Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No subjects tracked yet.")
		return nil
	}

	// Sparklines are a separate, best-effort endpoint.
	sparklines, err := client.PortfolioSparklines(ctx)
	if err != nil {
		sparklines = nil
	}

	t := theme.DefaultTheme
	for _, entry := range entries {
		line := fmt.Sprintf("%4d  %-24s index %5.1f  %d press, %d mentions, %d alerts",
			entry.ID, entry.Name, entry.ImageIndex,
			entry.Summary.PressCount, entry.Summary.MentionsCount, entry.Summary.AlertsCount)
		if spark, ok := sparklines[fmt.Sprintf("%d", entry.ID)]; ok && len(spark) > 0 {
			line += "  " + t.Accent.Render(core.Sparkline(spark))
		}
		fmt.Println(line)
	}
	return nil
}
