// Package shapes builds an executable shape model from a SHACL shapes
// graph: shape discovery, property path parsing, target declarations, and
// the full constraint vocabulary.
package shapes

import (
	"github.com/deiu/rdf2go"

	"github.com/c360studio/semshacl/vocabulary/sh"
)

// Shape is one node or property shape from the shapes graph. Shapes are
// built once and shared read-only across validation runs.
type Shape struct {
	// ID is the canonical string form of the shape node, used as the
	// schema key and in result ordering.
	ID string

	// Node is the shape's term in the shapes graph.
	Node rdf2go.Term

	// IsPropertyShape marks shapes with an sh:path. Their constraints
	// apply to path values rather than the focus node itself.
	IsPropertyShape bool

	// Path is set for property shapes only.
	Path Path

	Targets     []Target
	Constraints []Constraint

	// Severity is the sh:severity IRI, sh:Violation when undeclared.
	Severity string

	// Messages are the shape's sh:message values, merged into every
	// result the shape produces.
	Messages []string

	Name        string
	Description string

	// Deactivated shapes always conform and produce no results.
	Deactivated bool

	// Closed marks shapes carrying sh:closed true.
	Closed bool

	// order is the discovery position, used for deterministic iteration.
	order int
}

// Label returns the sh:name when present, else the shape node.
func (s *Shape) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

// EffectiveSeverity returns the declared severity or sh:Violation.
func (s *Shape) EffectiveSeverity() string {
	if s.Severity == "" {
		return sh.Violation
	}
	return s.Severity
}

// PropertyShapes returns the shapes attached through sh:property, in
// declaration order.
func (s *Shape) PropertyShapes() []*Shape {
	var out []*Shape
	for _, c := range s.Constraints {
		if pc, ok := c.(*PropertyConstraint); ok {
			out = append(out, pc.Shape)
		}
	}
	return out
}

// Schema is the complete shape model built from a shapes graph.
type Schema struct {
	byID    map[string]*Shape
	ordered []*Shape
}

// Shapes returns every shape in discovery order, nested shapes included.
func (s *Schema) Shapes() []*Shape {
	return s.ordered
}

// Shape looks up a shape by its node's string form.
func (s *Schema) Shape(id string) *Shape {
	return s.byID[id]
}

// TargetedShapes returns the shapes that declare at least one target, in
// discovery order. These are the validation entry points.
func (s *Schema) TargetedShapes() []*Shape {
	var out []*Shape
	for _, shape := range s.ordered {
		if len(shape.Targets) > 0 {
			out = append(out, shape)
		}
	}
	return out
}

// Len returns the number of shapes in the schema.
func (s *Schema) Len() int {
	return len(s.ordered)
}
