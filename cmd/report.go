package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mediapulse/pulse/cli"
	"github.com/mediapulse/pulse/tui/theme"
)

// NewReportCmd creates the `report` command group.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate and list weekly reports",
	}
	cmd.PersistentFlags().IntP("player", "p", 0, "Subject id (defaults to the last used subject)")

	cmd.AddCommand(newReportGenerateCmd())
	cmd.AddCommand(newReportListCmd())
	cmd.AddCommand(newReportPDFCmd())
	return cmd
}

func newReportGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate a new weekly report",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			_, client, err := newClient(cmd)
			if err != nil {
				return handler.Handle(err)
			}
			subjectID, err := resolveSubject(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			report, err := client.GenerateWeeklyReport(cmd.Context(), subjectID)
			if err != nil {
				return handler.Handle(err)
			}

			if opts.JSONOutput {
				return json.NewEncoder(os.Stdout).Encode(report)
			}
			fmt.Println(theme.DefaultTheme.Title.Render(fmt.Sprintf("Weekly report #%d", report.ID)))
			fmt.Println(report.ReportText)
			if report.Recommendation != "" {
				fmt.Println()
				fmt.Println(theme.DefaultTheme.Info.Render("Recommendation: " + report.Recommendation))
			}
			return nil
		},
	}
}

func newReportListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List previously generated weekly reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			_, client, err := newClient(cmd)
			if err != nil {
				return handler.Handle(err)
			}
			subjectID, err := resolveSubject(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			limit, _ := cmd.Flags().GetInt("limit")
			reports, err := client.WeeklyReports(cmd.Context(), subjectID, limit)
			if err != nil {
				return handler.Handle(err)
			}

			if opts.JSONOutput {
				return json.NewEncoder(os.Stdout).Encode(reports)
			}
			if len(reports) == 0 {
				fmt.Println("No weekly reports yet. Generate one with 'pulse report generate'.")
				return nil
			}
			for _, r := range reports {
				line := fmt.Sprintf("#%-4d %s", r.ID, r.CreatedAt)
				if r.ImageIndex != nil {
					line += fmt.Sprintf("  index %.1f", *r.ImageIndex)
				}
				fmt.Println(line)
				if r.Recommendation != "" {
					fmt.Println("      " + theme.DefaultTheme.Muted.Render(truncateLine(r.Recommendation, 100)))
				}
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 10, "Maximum number of reports to list")
	return cmd
}

func newReportPDFCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Download the latest weekly report as PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			_, client, err := newClient(cmd)
			if err != nil {
				return handler.Handle(err)
			}
			subjectID, err := resolveSubject(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			out, _ := cmd.Flags().GetString("output")
			if out == "" {
				out = fmt.Sprintf("weekly-report-%d.pdf", subjectID)
			}
			if err := client.WeeklyReportPDF(cmd.Context(), subjectID, out); err != nil {
				return handler.Handle(err)
			}
			fmt.Printf("Saved weekly report PDF to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Destination file")
	return cmd
}

func truncateLine(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
