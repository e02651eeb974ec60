package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mediapulse/pulse/api"
	"github.com/mediapulse/pulse/cli"
	core "github.com/mediapulse/pulse/dashboard"
	"github.com/mediapulse/pulse/tui/theme"
)

// NewStatusCmd creates the `status` command.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show backend health, scan state and scheduler info",
		RunE:  runStatusE,
	}
}

type statusReport struct {
	Backend   string               `json:"backend"`
	Healthy   bool                 `json:"healthy"`
	Scan      *api.ScanStatus      `json:"scan,omitempty"`
	Scheduler *api.SchedulerStatus `json:"scheduler,omitempty"`
	LastScan  *api.ScanRecord      `json:"last_scan,omitempty"`
	Costs     *api.Costs           `json:"costs,omitempty"`
}

func runStatusE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	_, client, err := newClient(cmd)
	if err != nil {
		return handler.Handle(err)
	}
	ctx := cmd.Context()
	t := theme.DefaultTheme

	report := statusReport{Backend: client.BaseURL()}

	health, err := client.Health(ctx)
	if err != nil {
		if opts.JSONOutput {
			return json.NewEncoder(os.Stdout).Encode(report)
		}
		fmt.Printf("Backend %s: %s\n", client.BaseURL(), t.Error.Render("unreachable"))
		return handler.Handle(err)
	}
	report.Healthy = health.Status == "ok"

	if scan, err := client.ScanStatus(ctx); err == nil {
		report.Scan = &scan
	}

	// The remaining indicators are best-effort; older backends lack these
	// endpoints.
	if scheduler, err := client.SchedulerStatus(ctx); err == nil {
		report.Scheduler = &scheduler
	}
	if costs, err := client.Costs(ctx); err == nil && costs.Total > 0 {
		report.Costs = &costs
	}
	subjectID, subjectErr := lastSubject()
	if subjectErr == nil {
		if last, err := client.LastScan(ctx, subjectID); err == nil {
			report.LastScan = last
		}
	}

	if opts.JSONOutput {
		return json.NewEncoder(os.Stdout).Encode(report)
	}

	fmt.Printf("Backend %s: %s\n", client.BaseURL(), t.Success.Render("ok"))

	if report.Scan != nil {
		if report.Scan.Running {
			progress := report.Scan.Progress
			if progress == "" {
				progress = "running"
			}
			fmt.Printf("Scan: %s\n", t.Info.Render(progress))
		} else {
			fmt.Println("Scan: idle")
		}
	}

	if s := report.Scheduler; s != nil {
		if s.Enabled {
			line := "Scheduler: enabled"
			if s.NextRun != "" {
				line += ", next run " + s.NextRun
			}
			fmt.Println(line)
		} else {
			fmt.Println("Scheduler: disabled")
		}
	}

	if report.Costs != nil {
		fmt.Printf("Estimated API spend: $%.2f\n", report.Costs.Total)
	}

	if report.LastScan != nil && report.LastScan.FinishedAt != "" {
		fmt.Printf("Last scan for subject %d: %s\n",
			subjectID, core.TimeAgo(report.LastScan.FinishedAt, time.Now()))
	}
	return nil
}
