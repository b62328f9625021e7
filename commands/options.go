package commands

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/c360studio/semshacl/config"
	"github.com/c360studio/semshacl/graph"
	"github.com/c360studio/semshacl/shapes"
	"github.com/c360studio/semshacl/validation"
)

// commonFlags are the validation flags shared by validate and conforms.
// Zero values mean "use the configured default".
type commonFlags struct {
	shapesPatterns []string
	severity       string
	maxDepth       int
	maxResults     int
	workers        int
	strict         bool
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.shapesPatterns, "shapes", "s", nil, "Shapes graph files (glob patterns allowed, repeatable)")
	cmd.Flags().StringVar(&f.severity, "severity", "", "Lowest severity that fails validation (info, warning, violation)")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "Maximum shape nesting depth")
	cmd.Flags().IntVar(&f.maxResults, "max-results", 0, "Maximum number of results to collect")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Number of concurrent validation workers")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Reject shapes graphs with unknown sh: parameters")
}

// loadConfig layers flag overrides on top of the file-based configuration.
func (f *commonFlags) loadConfig(logger *slog.Logger) (*config.Config, error) {
	cfg, err := config.NewLoader(logger).Load()
	if err != nil {
		return nil, err
	}
	if f.severity != "" {
		cfg.Validation.SeverityThreshold = f.severity
	}
	if f.maxDepth > 0 {
		cfg.Validation.MaxDepth = f.maxDepth
	}
	if f.maxResults > 0 {
		cfg.Validation.MaxResults = f.maxResults
	}
	if f.workers > 0 {
		cfg.Validation.Workers = f.workers
	}
	if f.strict {
		cfg.Shapes.Strict = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expandGlobs resolves glob patterns to a sorted, deduplicated file list.
// Plain paths pass through so a missing file is reported by the loader
// rather than silently matching nothing.
func expandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			matches = []string{pattern}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// loadGraphFiles merges every file into a single store.
func loadGraphFiles(patterns []string) (*graph.Store, []string, error) {
	files, err := expandGlobs(patterns)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no input files given")
	}
	store := graph.NewStore("")
	for _, file := range files {
		if err := graph.LoadFileInto(store, file); err != nil {
			return nil, nil, err
		}
	}
	return store, files, nil
}

// loadSchema loads the shapes files named by flags or configuration.
func loadSchema(cfg *config.Config, flagPatterns []string) (*shapes.Schema, []string, error) {
	patterns := flagPatterns
	if len(patterns) == 0 {
		patterns = cfg.Shapes.Paths
	}
	if len(patterns) == 0 {
		return nil, nil, fmt.Errorf("no shapes files given (use --shapes or configure shapes.paths)")
	}
	store, files, err := loadGraphFiles(patterns)
	if err != nil {
		return nil, nil, err
	}
	schema, err := shapes.BuildWith(store, shapes.BuildOptions{Strict: cfg.Shapes.Strict})
	if err != nil {
		return nil, nil, err
	}
	return schema, files, nil
}

// writeReport renders a report to w in the named format.
func writeReport(w io.Writer, report *validation.Report, format string) error {
	switch format {
	case "text":
		_, err := io.WriteString(w, report.Text())
		return err
	case "json":
		raw, err := report.MarshalJSON()
		if err != nil {
			return err
		}
		if _, err := w.Write(raw); err != nil {
			return err
		}
		_, err = io.WriteString(w, "\n")
		return err
	case "turtle", "jsonld":
		return report.Graph().Serialize(w, format)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
