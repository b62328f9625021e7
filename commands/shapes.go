package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/semshacl/shapes"
	"github.com/c360studio/semshacl/validation"
)

func newShapesCommand(logger *slog.Logger) *cobra.Command {
	var (
		flags  commonFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "shapes",
		Short: "Summarize the shapes in a shapes graph",
		Long: `Parse a shapes graph and print each shape with its targets,
severity, path and constraints. Useful for checking what a shapes file
actually declares before validating against it.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := resolveLogger(logger)
			cfg, err := flags.loadConfig(logger)
			if err != nil {
				return err
			}
			schema, files, err := loadSchema(cfg, flags.shapesPatterns)
			if err != nil {
				return err
			}
			logger.Debug("loaded shapes", "files", len(files), "shapes", schema.Len())

			if asJSON {
				return writeShapesJSON(cmd.OutOrStdout(), schema)
			}
			writeShapesText(cmd.OutOrStdout(), schema)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the summary as JSON")
	return cmd
}

func writeShapesText(w io.Writer, schema *shapes.Schema) {
	nodeCount := 0
	propCount := 0
	for _, shape := range schema.Shapes() {
		if shape.IsPropertyShape {
			propCount++
		} else {
			nodeCount++
		}
	}
	fmt.Fprintf(w, "Shapes: %d (%d node, %d property)\n", schema.Len(), nodeCount, propCount)

	for _, shape := range schema.TargetedShapes() {
		fmt.Fprintf(w, "\n%s\n", shape.ID)
		if shape.Name != "" {
			fmt.Fprintf(w, "  Name: %s\n", shape.Name)
		}
		if shape.Description != "" {
			fmt.Fprintf(w, "  Description: %s\n", shape.Description)
		}
		for _, target := range shape.Targets {
			fmt.Fprintf(w, "  Target: %s %s\n", target.Kind, target.Value.String())
		}
		fmt.Fprintf(w, "  Severity: %s\n", validation.SeverityLabel(shape.EffectiveSeverity()))
		if shape.Deactivated {
			fmt.Fprintln(w, "  Deactivated: true")
		}
		if shape.Closed {
			fmt.Fprintln(w, "  Closed: true")
		}
		if comps := componentNames(shape, false); len(comps) > 0 {
			fmt.Fprintf(w, "  Constraints: %s\n", strings.Join(comps, ", "))
		}
		for _, prop := range shape.PropertyShapes() {
			fmt.Fprintf(w, "  Property %s\n", prop.Path.String())
			if comps := componentNames(prop, false); len(comps) > 0 {
				fmt.Fprintf(w, "    Constraints: %s\n", strings.Join(comps, ", "))
			}
		}
	}
}

type shapeJSON struct {
	ID          string       `json:"id"`
	Kind        string       `json:"kind"`
	Name        string       `json:"name,omitempty"`
	Description string       `json:"description,omitempty"`
	Severity    string       `json:"severity"`
	Deactivated bool         `json:"deactivated,omitempty"`
	Closed      bool         `json:"closed,omitempty"`
	Targets     []targetJSON `json:"targets,omitempty"`
	Path        string       `json:"path,omitempty"`
	Constraints []string     `json:"constraints,omitempty"`
	Properties  []*shapeJSON `json:"properties,omitempty"`
}

type targetJSON struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func writeShapesJSON(w io.Writer, schema *shapes.Schema) error {
	var out []*shapeJSON
	for _, shape := range schema.TargetedShapes() {
		out = append(out, toShapeJSON(shape))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toShapeJSON(shape *shapes.Shape) *shapeJSON {
	out := &shapeJSON{
		ID:          shape.ID,
		Kind:        "node",
		Name:        shape.Name,
		Description: shape.Description,
		Severity:    shape.EffectiveSeverity(),
		Deactivated: shape.Deactivated,
		Closed:      shape.Closed,
		Constraints: componentNames(shape, false),
	}
	if shape.IsPropertyShape {
		out.Kind = "property"
		out.Path = shape.Path.String()
	}
	for _, target := range shape.Targets {
		out.Targets = append(out.Targets, targetJSON{
			Kind:  target.Kind.String(),
			Value: target.Value.String(),
		})
	}
	for _, prop := range shape.PropertyShapes() {
		out.Properties = append(out.Properties, toShapeJSON(prop))
	}
	return out
}

// componentNames lists a shape's constraint component IRIs, compacted to
// their local names. Property constraints are listed separately.
func componentNames(shape *shapes.Shape, includeProperties bool) []string {
	var out []string
	for _, c := range shape.Constraints {
		if _, ok := c.(*shapes.PropertyConstraint); ok && !includeProperties {
			continue
		}
		name := c.Component()
		if idx := strings.LastIndex(name, "#"); idx >= 0 {
			name = name[idx+1:]
		}
		out = append(out, name)
	}
	return out
}
