package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mediapulse/pulse/cli"
	"github.com/mediapulse/pulse/config"
)

// NewConfigCmd creates the `config` command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate the pulse configuration",
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSchemaCmd())
	cmd.AddCommand(newConfigValidateCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective merged configuration",
		Long: `Prints the final configuration after merging the global config, the project
pulse.yml and any pulse.override.yml, with defaults applied.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return handler.Handle(err)
			}
			fmt.Print(string(data))
			return nil
		},
	}
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for pulse.yml",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.GenerateSchema()
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a config file against the embedded schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				var err error
				if path, err = cli.InitConfig(opts.ConfigFile); err != nil || path == "" {
					fmt.Fprintln(os.Stderr, "No config file found; defaults apply.")
					return nil
				}
			}

			validator, err := config.NewSchemaValidator()
			if err != nil {
				return handler.Handle(err)
			}
			if err := validator.ValidateFile(path); err != nil {
				return handler.Handle(err)
			}

			// Schema-valid files can still fail semantic validation.
			if _, err := config.Load(path); err != nil {
				return handler.Handle(err)
			}

			fmt.Printf("%s is valid\n", path)
			return nil
		},
	}
}
