package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mediapulse/pulse/cli"
	"github.com/mediapulse/pulse/errors"
	"github.com/mediapulse/pulse/tui/theme"
)

// NewAlertsCmd creates the `alerts` command group.
func NewAlertsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List and manage alerts",
		Long: `Lists alerts for a subject, newest first. Unread alerts are marked with a
dot.

Examples:
  # All alerts for the last used subject
  pulse alerts

  # Only unread high-severity alerts
  pulse alerts --severity high --unread

  # Mark an alert read, or dismiss it
  pulse alerts read 12
  pulse alerts dismiss 12
`,
		RunE: runAlertsListE,
	}

	cmd.PersistentFlags().IntP("player", "p", 0, "Subject id (defaults to the last used subject)")
	cmd.Flags().StringP("severity", "s", "", "Filter by severity: high, medium, low")
	cmd.Flags().BoolP("unread", "u", false, "Show unread alerts only")
	cmd.Flags().Int("limit", 50, "Maximum number of alerts")

	cmd.AddCommand(newAlertsReadCmd())
	cmd.AddCommand(newAlertsDismissCmd())
	return cmd
}

func runAlertsListE(cmd *cobra.Command, args []string) error {
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

	severity, _ := cmd.Flags().GetString("severity")
	unread, _ := cmd.Flags().GetBool("unread")
	limit, _ := cmd.Flags().GetInt("limit")

	alerts, err := client.Alerts(cmd.Context(), subjectID, limit, severity, unread)
	if err != nil {
		return handler.Handle(err)
	}

	if opts.JSONOutput {
		return json.NewEncoder(os.Stdout).Encode(alerts)
	}
	if len(alerts) == 0 {
		fmt.Println("No alerts.")
		return nil
	}

	t := theme.DefaultTheme
	for _, alert := range alerts {
		marker := "●"
		if alert.IsRead() {
			marker = " "
		}
		var sevStyle = t.SeverityLow
		switch alert.Severity {
		case "high":
			sevStyle = t.SeverityHigh
		case "medium":
			sevStyle = t.SeverityMedium
		}
		fmt.Printf("%s #%-4d %s %s\n      %s\n",
			marker, alert.ID,
			sevStyle.Render(strings.ToUpper(alert.Severity)),
			alert.Title,
			t.Muted.Render(alert.Message))
	}
	return nil
}

func newAlertsReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark an alert as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			_, client, err := newClient(cmd)
			if err != nil {
				return handler.Handle(err)
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return handler.Handle(errors.InvalidInput("alert id must be a number"))
			}
			if err := client.MarkAlertRead(cmd.Context(), id); err != nil {
				return handler.Handle(err)
			}
			fmt.Printf("Alert %d marked read\n", id)
			return nil
		},
	}
}

func newAlertsDismissCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dismiss <id>",
		Short: "Dismiss an alert permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			_, client, err := newClient(cmd)
			if err != nil {
				return handler.Handle(err)
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return handler.Handle(errors.InvalidInput("alert id must be a number"))
			}

			force, _ := cmd.Flags().GetBool("yes")
			if !force && !cli.Confirm(fmt.Sprintf("Dismiss alert %d? This cannot be undone.", id)) {
				fmt.Println("Aborted.")
				return nil
			}

			if err := client.DismissAlert(cmd.Context(), id); err != nil {
				return handler.Handle(err)
			}
			fmt.Printf("Alert %d dismissed\n", id)
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
