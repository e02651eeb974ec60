package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mediapulse/pulse/api"
	"github.com/mediapulse/pulse/cli"
	"github.com/mediapulse/pulse/tui/theme"
)

// NewPlayersCmd creates the `players` command listing tracked subjects.
func NewPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "List tracked subjects",
		Long: `Lists every subject the backend tracks, with their ids for use in other
commands.

Examples:
  # Human readable table
  pulse players

  # Machine readable
  pulse players --json
`,
		RunE: runPlayersE,
	}
	cmd.AddCommand(newPlayersAddCmd())
	return cmd
}

func newPlayersAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a subject without scanning it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			_, client, err := newClient(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			input := api.SubjectInput{Name: args[0]}
			input.Club, _ = cmd.Flags().GetString("club")
			input.Twitter, _ = cmd.Flags().GetString("twitter")
			input.Instagram, _ = cmd.Flags().GetString("instagram")

			subject, err := client.CreateSubject(cmd.Context(), input)
			if err != nil {
				return handler.Handle(err)
			}

			if opts.JSONOutput {
				return json.NewEncoder(os.Stdout).Encode(subject)
			}
			fmt.Printf("Registered %s (id %d). Scan it with 'pulse scan %q'.\n", subject.Name, subject.ID, subject.Name)
			return nil
		},
	}
	cmd.Flags().String("club", "", "Current club")
	cmd.Flags().String("twitter", "", "Twitter/X handle")
	cmd.Flags().String("instagram", "", "Instagram handle")
	return cmd
}

func runPlayersE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	_, client, err := newClient(cmd)
	if err != nil {
		return handler.Handle(err)
	}

	subjects, err := client.ListSubjects(cmd.Context())
	if err != nil {
		return handler.Handle(err)
	}

	if opts.JSONOutput {
		return json.NewEncoder(os.Stdout).Encode(subjects)
	}

	if len(subjects) == 0 {
		fmt.Println("No subjects tracked yet. Start one with 'pulse scan <name>'.")
		return nil
	}

	t := theme.DefaultTheme
	fmt.Printf("%s  %s\n", t.TableHeader.Render(fmt.Sprintf("%4s", "ID")), t.TableHeader.Render("NAME"))
	for _, s := range subjects {
		line := fmt.Sprintf("%4d  %s", s.ID, s.Name)
		if s.Club != "" {
			line += t.Muted.Render("  " + s.Club)
		}
		fmt.Println(line)
	}
	return nil
}
