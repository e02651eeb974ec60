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
)

// NewCompareCmd creates the `compare` command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <id> <id> [id...]",
		Short: "Compare tracked subjects side by side",
		Long: `Compares two or more subjects by id, printing each one's headline counters
and image index. With --scans, compares two scan reports of the same subject
instead.

Examples:
  # Compare two subjects
  pulse compare 3 7

  # Compare two scans by scan id
  pulse compare --scans 41,57
`,
		RunE: runCompareE,
	}

	cmd.Flags().String("scans", "", "Compare two scan ids instead (comma-separated pair)")
	return cmd
}

func runCompareE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	_, client, err := newClient(cmd)
	if err != nil {
		return handler.Handle(err)
	}
	ctx := cmd.Context()

	if scans, _ := cmd.Flags().GetString("scans"); scans != "" {
		parts := strings.Split(scans, ",")
		if len(parts) != 2 {
			return handler.Handle(errors.InvalidInput("--scans takes exactly two ids, e.g. --scans 41,57"))
		}
		a, errA := strconv.Atoi(strings.TrimSpace(parts[0]))
		b, errB := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errA != nil || errB != nil {
			return handler.Handle(errors.InvalidInput("scan ids must be numbers"))
		}

		comparison, err := client.CompareScans(ctx, a, b)
		if err != nil {
			return handler.Handle(err)
		}
		return json.NewEncoder(os.Stdout).Encode(comparison)
	}

	if len(args) < 2 {
		return handler.Handle(errors.InvalidInput("need at least two subject ids to compare"))
	}
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return handler.Handle(errors.InvalidInput(fmt.Sprintf("invalid subject id %q", arg)))
		}
		ids = append(ids, id)
	}

	entries, err := client.CompareSubjects(ctx, ids)
	if err != nil {
		return handler.Handle(err)
	}

	if opts.JSONOutput {
		return json.NewEncoder(os.Stdout).Encode(entries)
	}

	for _, entry := range entries {
		fmt.Printf("%-24s index %5.1f  %d press, %d mentions, %d posts, %d alerts\n",
			entry.Subject.Name, entry.ImageIndex.Index,
			entry.Summary.PressCount, entry.Summary.MentionsCount,
			entry.Summary.PostsCount, entry.Summary.AlertsCount)
	}
	return nil
}
