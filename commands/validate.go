package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/c360studio/semshacl/config"
	"github.com/c360studio/semshacl/validation"
)

func newValidateCommand(logger *slog.Logger) *cobra.Command {
	var (
		flags  commonFlags
		format string
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "validate [data files...]",
		Short: "Validate data graphs against SHACL shapes",
		Long: `Validate one or more RDF data files against a set of SHACL shapes.

Data and shapes files may be given as glob patterns (** is supported).
Turtle and JSON-LD inputs are detected by file extension.

Exit codes: 0 when the data conforms, 1 when it does not, 2 on error.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := resolveLogger(logger)
			cfg, err := flags.loadConfig(logger)
			if err != nil {
				return err
			}
			if format != "" {
				cfg.Output.Format = format
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			if watch {
				return watchAndValidate(cmd, cfg, logger, flags.shapesPatterns, args)
			}

			report, err := runValidate(cmd, cfg, logger, flags.shapesPatterns, args)
			if err != nil {
				return err
			}
			if !report.Conforms {
				return ErrNotConforming
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "", "Report format (text, json, turtle, jsonld)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-validate whenever an input file changes")

	return cmd
}

// runValidate performs one load-build-validate cycle and writes the
// rendered report to the command's stdout.
func runValidate(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, shapesPatterns, dataPatterns []string) (*validation.Report, error) {
	schema, shapesFiles, err := loadSchema(cfg, shapesPatterns)
	if err != nil {
		return nil, err
	}
	data, dataFiles, err := loadGraphFiles(dataPatterns)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded graphs",
		"shapes_files", len(shapesFiles),
		"data_files", len(dataFiles),
		"shapes", schema.Len(),
		"triples", data.Len())

	validator := validation.New(schema, cfg.ValidatorOptions(), logger)
	report, err := validator.Validate(cmd.Context(), data)
	if err != nil {
		return nil, err
	}
	if err := writeReport(cmd.OutOrStdout(), report, cfg.Output.Format); err != nil {
		return nil, err
	}
	return report, nil
}
