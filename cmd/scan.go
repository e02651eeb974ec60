package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mediapulse/pulse/api"
	"github.com/mediapulse/pulse/cli"
	"github.com/mediapulse/pulse/state"
)

// NewScanCmd creates the `scan` command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <name>",
		Short: "Start a monitoring scan for a subject",
		Long: `Starts a backend scan for the named subject. Scans run server-side; by
default the command returns immediately. With --wait it polls the scan status
and prints progress until the scan finishes.

Examples:
  # Fire and forget
  pulse scan "Jude Bellingham" --club "Real Madrid"

  # Start with social handles and wait for completion
  pulse scan "Jude Bellingham" --twitter judebellingham --wait
`,
		Args: cobra.ExactArgs(1),
		RunE: runScanE,
	}

	cmd.Flags().String("twitter", "", "Twitter/X handle")
	cmd.Flags().String("instagram", "", "Instagram handle")
	cmd.Flags().String("tiktok", "", "TikTok handle")
	cmd.Flags().String("transfermarkt", "", "Transfermarkt player id")
	cmd.Flags().String("club", "", "Current club")
	cmd.Flags().BoolP("wait", "w", false, "Wait for the scan to finish, printing progress")

	return cmd
}

func runScanE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	cfg, client, err := newClient(cmd)
	if err != nil {
		return handler.Handle(err)
	}

	input := api.SubjectInput{Name: args[0]}
	input.Twitter, _ = cmd.Flags().GetString("twitter")
	input.Instagram, _ = cmd.Flags().GetString("instagram")
	input.TikTok, _ = cmd.Flags().GetString("tiktok")
	input.TransfermarktID, _ = cmd.Flags().GetString("transfermarkt")
	input.Club, _ = cmd.Flags().GetString("club")

	ctx := cmd.Context()
	if err := client.StartScan(ctx, input); err != nil {
		return handler.Handle(err)
	}

	wait, _ := cmd.Flags().GetBool("wait")
	if !wait {
		fmt.Printf("Scan started for %q. Watch it with 'pulse scan --wait' or open the dashboard.\n", input.Name)
		return nil
	}

	reporter := cli.NewScanProgressReporter(os.Stdout)
	done := make(chan int, 1)

	poller := dashboardPoller(cfg, client)
	poller.Start(ctx,
		func(status api.ScanStatus) { reporter.Update(status.Progress) },
		func(subjectID int) { done <- subjectID },
	)
	defer poller.Stop()

	select {
	case subjectID := <-done:
		reporter.Done(subjectID)
		if err := state.SetLastSubject(subjectID); err != nil {
			return handler.Handle(err)
		}
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
