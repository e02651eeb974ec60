package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mediapulse/pulse/cli"
)

// NewExportCmd creates the `export` command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <press|social|activity|pdf>",
		Short: "Export a subject's data to a CSV or PDF file",
		Long: `Exports one data set as CSV, or the full report as PDF, into a local file.
The subject defaults to the last one used; override with --player.

Examples:
  # Press articles as CSV
  pulse export press -o press.csv

  # Full report as PDF for a specific subject
  pulse export pdf --player 7 -o report.pdf
`,
		Args: cobra.ExactArgs(1),
		RunE: runExportE,
	}

	cmd.Flags().IntP("player", "p", 0, "Subject id (defaults to the last used subject)")
	cmd.Flags().StringP("output", "o", "", "Destination file (defaults to <type>-<id>.<ext>)")
	return cmd
}

func runExportE(cmd *cobra.Command, args []string) error {
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

	kind := strings.ToLower(args[0])
	out, _ := cmd.Flags().GetString("output")

	ctx := cmd.Context()
	switch kind {
	case "pdf":
		if out == "" {
			out = fmt.Sprintf("report-%d.pdf", subjectID)
		}
		err = client.ExportPDF(ctx, subjectID, out)
	default:
		if out == "" {
			out = fmt.Sprintf("%s-%d.csv", kind, subjectID)
		}
		err = client.ExportCSV(ctx, subjectID, kind, out)
	}
	if err != nil {
		return handler.Handle(err)
	}

	fmt.Printf("Exported %s for subject %d to %s\n", kind, subjectID, out)
	return nil
}

// resolveSubject reads --player, falling back to the remembered last subject.
func resolveSubject(cmd *cobra.Command) (int, error) {
	if id, _ := cmd.Flags().GetInt("player"); id > 0 {
		return id, nil
	}
	return lastSubject()
}
