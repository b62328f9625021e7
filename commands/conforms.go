package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/c360studio/semshacl/validation"
)

func newConformsCommand(logger *slog.Logger) *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "conforms [data files...]",
		Short: "Check whether data graphs conform, without a report",
		Long: `Check data files against SHACL shapes and print a single
conforms / does-not-conform line.

Exit codes: 0 when the data conforms, 1 when it does not, 2 on error.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := resolveLogger(logger)
			cfg, err := flags.loadConfig(logger)
			if err != nil {
				return err
			}

			schema, _, err := loadSchema(cfg, flags.shapesPatterns)
			if err != nil {
				return err
			}
			data, _, err := loadGraphFiles(args)
			if err != nil {
				return err
			}

			validator := validation.New(schema, cfg.ValidatorOptions(), logger)
			report, err := validator.Validate(cmd.Context(), data)
			if err != nil {
				return err
			}

			if report.Conforms {
				fmt.Fprintln(cmd.OutOrStdout(), "conforms")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "does not conform (%d results)\n", len(report.Results))
			return ErrNotConforming
		},
	}

	flags.register(cmd)
	return cmd
}
