// Package commands provides the semshacl CLI commands.
package commands

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
)

// ErrNotConforming is returned by the validate and conforms commands when
// the data graph fails validation. The caller maps it to a distinct exit
// code.
var ErrNotConforming = errors.New("data does not conform to shapes")

// Register attaches every semshacl command to the root command. A nil
// logger defers to slog.Default at execution time, after the root
// command has configured logging.
func Register(root *cobra.Command, logger *slog.Logger) {
	root.AddCommand(
		newValidateCommand(logger),
		newConformsCommand(logger),
		newShapesCommand(logger),
		newServeCommand(logger),
	)
}

// resolveLogger picks the registered logger or the process default.
func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
