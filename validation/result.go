package validation

import (
	"sort"
	"strings"

	"github.com/deiu/rdf2go"

	"github.com/c360studio/semshacl/shapes"
	"github.com/c360studio/semshacl/vocabulary/sh"
)

// Result is one validation result. Nested results produced by shape-based
// constraints are attached through Details.
type Result struct {
	// FocusNode is the node being validated when the result was produced.
	FocusNode rdf2go.Term

	// SourceShape is the shape whose constraint failed.
	SourceShape *shapes.Shape

	// Component is the sh:sourceConstraintComponent IRI.
	Component string

	// Detail is a short rendering of the failing constraint declaration.
	Detail string

	// Severity is the sh:resultSeverity IRI, inherited from the shape.
	Severity string

	// Path is the property path of the source shape, nil for node shapes.
	Path shapes.Path

	// Value is the offending value node when one is identifiable.
	Value rdf2go.Term

	// Messages holds the constraint message followed by the shape's own
	// messages, deduplicated in order.
	Messages []string

	// Details carries nested results from sh:node, sh:and, sh:or and
	// sh:xone evaluation.
	Details []*Result

	// note marks informational results that do not indicate
	// non-conformance, such as recursion cutoff notices.
	note bool
}

// hasViolations reports whether any result is an actual constraint
// failure rather than an informational note.
func hasViolations(results []*Result) bool {
	for _, r := range results {
		if !r.note {
			return true
		}
	}
	return false
}

// Report is the outcome of a validation run.
type Report struct {
	// Conforms is true when no result reaches the severity threshold the
	// run was configured with.
	Conforms bool

	// Results are sorted deterministically regardless of evaluation order.
	Results []*Result
}

// CountBySeverity returns the number of results carrying the severity IRI.
func (r *Report) CountBySeverity(severity string) int {
	n := 0
	for _, res := range r.Results {
		if res.Severity == severity {
			n++
		}
	}
	return n
}

// severityRank orders severities for threshold comparison. Custom
// severity IRIs rank with sh:Violation so they always count.
func severityRank(severity string) int {
	switch severity {
	case sh.Warning:
		return 2
	case sh.Info:
		return 1
	default:
		return 3
	}
}

// sortResults orders results by shape, focus node, path, component, value,
// and first message. Evaluation may run concurrently, sorting restores a
// stable output order.
func sortResults(results []*Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.SourceShape.ID != b.SourceShape.ID {
			return a.SourceShape.ID < b.SourceShape.ID
		}
		if fa, fb := a.FocusNode.String(), b.FocusNode.String(); fa != fb {
			return fa < fb
		}
		if pa, pb := pathString(a.Path), pathString(b.Path); pa != pb {
			return pa < pb
		}
		if a.Component != b.Component {
			return a.Component < b.Component
		}
		if va, vb := termString(a.Value), termString(b.Value); va != vb {
			return va < vb
		}
		return firstMessage(a) < firstMessage(b)
	})
}

func pathString(p shapes.Path) string {
	if p == nil {
		return ""
	}
	return p.String()
}

func termString(t rdf2go.Term) string {
	if t == nil {
		return ""
	}
	return t.String()
}

func firstMessage(r *Result) string {
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[0]
}

// newResult builds a result for a shape, merging constraint messages with
// the shape's declared messages and dropping duplicates.
func newResult(shape *shapes.Shape, focus rdf2go.Term, component, detail string, value rdf2go.Term, messages []string, details []*Result) *Result {
	merged := make([]string, 0, len(messages)+len(shape.Messages))
	seen := make(map[string]bool)
	for _, m := range messages {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		merged = append(merged, m)
	}
	for _, m := range shape.Messages {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		merged = append(merged, m)
	}
	return &Result{
		FocusNode:   focus,
		SourceShape: shape,
		Component:   component,
		Detail:      detail,
		Severity:    shape.EffectiveSeverity(),
		Path:        shape.Path,
		Value:       value,
		Messages:    merged,
		Details:     details,
	}
}

// SeverityLabel shortens a severity IRI for human-readable output.
func SeverityLabel(severity string) string {
	if idx := strings.LastIndex(severity, "#"); idx >= 0 {
		return severity[idx+1:]
	}
	return severity
}
