package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/deiu/rdf2go"
	"github.com/google/uuid"

	"github.com/c360studio/semshacl/graph"
	"github.com/c360studio/semshacl/shapes"
	"github.com/c360studio/semshacl/vocabulary/rdf"
	"github.com/c360studio/semshacl/vocabulary/sh"
	"github.com/c360studio/semshacl/vocabulary/xsd"
)

// Text renders the report for terminal output.
func (r *Report) Text() string {
	var b strings.Builder
	bar := strings.Repeat("=", 80)

	fmt.Fprintf(&b, "\n%s\n", bar)
	b.WriteString("SHACL Validation Report\n")
	fmt.Fprintf(&b, "%s\n", bar)

	if r.Conforms {
		b.WriteString("\n✓ Data conforms to all shapes")
	} else {
		b.WriteString("\n✗ Data does NOT conform to all shapes")
		fmt.Fprintf(&b, "\nResults: %d", len(r.Results))

		if n := r.CountBySeverity(sh.Violation); n > 0 {
			fmt.Fprintf(&b, "\n  - Violations: %d", n)
		}
		if n := r.CountBySeverity(sh.Warning); n > 0 {
			fmt.Fprintf(&b, "\n  - Warnings: %d", n)
		}
		if n := r.CountBySeverity(sh.Info); n > 0 {
			fmt.Fprintf(&b, "\n  - Info: %d", n)
		}

		fmt.Fprintf(&b, "\n\n%s\n", strings.Repeat("-", 80))
		b.WriteString("Validation Results:\n")
		fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 80))

		for i, result := range r.Results {
			fmt.Fprintf(&b, "\n[%d] Severity: %s\n", i+1, SeverityLabel(result.Severity))
			writeResultText(&b, result, "  ")
		}
	}
	fmt.Fprintf(&b, "\n%s\n", bar)
	return b.String()
}

func writeResultText(b *strings.Builder, result *Result, indent string) {
	fmt.Fprintf(b, "%sFocus Node: %s\n", indent, result.FocusNode.String())
	fmt.Fprintf(b, "%sSource Shape: %s\n", indent, result.SourceShape.Label())
	if result.Component != "" {
		fmt.Fprintf(b, "%sSource Constraint Component: %s\n", indent, result.Component)
	}
	if result.Path != nil {
		fmt.Fprintf(b, "%sResult Path: %s\n", indent, result.Path.String())
	}
	if result.Value != nil {
		fmt.Fprintf(b, "%sValue: %s\n", indent, result.Value.String())
	}
	if len(result.Messages) > 0 {
		fmt.Fprintf(b, "%sMessages:\n", indent)
		for _, msg := range result.Messages {
			fmt.Fprintf(b, "%s  - %s\n", indent, msg)
		}
	}
	if len(result.Details) > 0 {
		fmt.Fprintf(b, "%sDetails:\n", indent)
		for _, detail := range result.Details {
			fmt.Fprintf(b, "%s  Severity: %s\n", indent+"  ", SeverityLabel(detail.Severity))
			writeResultText(b, detail, indent+"    ")
		}
	}
}

type resultJSON struct {
	FocusNode                 string        `json:"focusNode"`
	SourceShape               string        `json:"sourceShape"`
	Severity                  string        `json:"severity"`
	SourceConstraintComponent string        `json:"sourceConstraintComponent,omitempty"`
	ResultPath                string        `json:"resultPath,omitempty"`
	Value                     string        `json:"value,omitempty"`
	Messages                  []string      `json:"messages,omitempty"`
	Details                   []*resultJSON `json:"details,omitempty"`
}

type reportJSON struct {
	Conforms bool          `json:"conforms"`
	Results  []*resultJSON `json:"results"`
}

// MarshalJSON renders the report as a JSON document with a conforms flag
// and one object per result.
func (r *Report) MarshalJSON() ([]byte, error) {
	out := reportJSON{
		Conforms: r.Conforms,
		Results:  make([]*resultJSON, 0, len(r.Results)),
	}
	for _, result := range r.Results {
		out.Results = append(out.Results, toResultJSON(result))
	}
	return json.Marshal(out)
}

func toResultJSON(result *Result) *resultJSON {
	out := &resultJSON{
		FocusNode:                 result.FocusNode.String(),
		SourceShape:               result.SourceShape.ID,
		Severity:                  result.Severity,
		SourceConstraintComponent: result.Component,
		Messages:                  result.Messages,
	}
	if result.Path != nil {
		out.ResultPath = result.Path.String()
	}
	if result.Value != nil {
		out.Value = result.Value.String()
	}
	for _, detail := range result.Details {
		out.Details = append(out.Details, toResultJSON(detail))
	}
	return out
}

// Graph renders the report as an RDF graph using the SHACL validation
// report vocabulary.
func (r *Report) Graph() *graph.Store {
	store := graph.NewStore("")
	report := freshBlankNode("report")

	store.Add(report, rdf2go.NewResource(rdf.Type), rdf2go.NewResource(sh.ValidationReport))
	store.Add(report, rdf2go.NewResource(sh.Conforms),
		rdf2go.NewLiteralWithDatatype(fmt.Sprintf("%t", r.Conforms), rdf2go.NewResource(xsd.Boolean)))

	for _, result := range r.Results {
		node := addResultTriples(store, result)
		store.Add(report, rdf2go.NewResource(sh.Result), node)
	}
	return store
}

func addResultTriples(store *graph.Store, result *Result) rdf2go.Term {
	node := freshBlankNode("result")
	store.Add(node, rdf2go.NewResource(rdf.Type), rdf2go.NewResource(sh.ValidationResult))
	store.Add(node, rdf2go.NewResource(sh.FocusNode), result.FocusNode)
	store.Add(node, rdf2go.NewResource(sh.ResultSeverity), rdf2go.NewResource(result.Severity))
	store.Add(node, rdf2go.NewResource(sh.SourceShape), result.SourceShape.Node)
	if result.Component != "" {
		store.Add(node, rdf2go.NewResource(sh.SourceConstraintComponent), rdf2go.NewResource(result.Component))
	}
	if result.Value != nil {
		store.Add(node, rdf2go.NewResource(sh.Value), result.Value)
	}
	if p, ok := result.Path.(*shapes.PredicatePath); ok {
		store.Add(node, rdf2go.NewResource(sh.ResultPath), rdf2go.NewResource(p.IRI))
	}
	for _, msg := range result.Messages {
		store.Add(node, rdf2go.NewResource(sh.ResultMessage), rdf2go.NewLiteral(msg))
	}
	for _, detail := range result.Details {
		detailNode := addResultTriples(store, detail)
		store.Add(node, rdf2go.NewResource(sh.Detail), detailNode)
	}
	return node
}

func freshBlankNode(prefix string) rdf2go.Term {
	return rdf2go.NewBlankNode(prefix + "-" + uuid.NewString())
}
