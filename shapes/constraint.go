package shapes

import (
	"regexp"

	"github.com/deiu/rdf2go"

	"github.com/c360studio/semshacl/vocabulary/sh"
)

// Constraint is one constraint declaration on a shape. Component returns
// the IRI reported as sh:sourceConstraintComponent for its violations.
type Constraint interface {
	Component() string
}

// ClassConstraint requires value nodes to be instances of a class.
type ClassConstraint struct {
	Class rdf2go.Term
}

// DatatypeConstraint requires literal value nodes with an exact datatype.
type DatatypeConstraint struct {
	Datatype string
}

// NodeKindConstraint restricts the term kind of value nodes. Kind is one
// of the six sh:NodeKind IRIs.
type NodeKindConstraint struct {
	Kind string
}

// MinCountConstraint requires at least Count value nodes.
type MinCountConstraint struct {
	Count int
}

// MaxCountConstraint allows at most Count value nodes.
type MaxCountConstraint struct {
	Count int
}

// MinExclusiveConstraint requires value > Value.
type MinExclusiveConstraint struct {
	Value rdf2go.Term
}

// MinInclusiveConstraint requires value >= Value.
type MinInclusiveConstraint struct {
	Value rdf2go.Term
}

// MaxExclusiveConstraint requires value < Value.
type MaxExclusiveConstraint struct {
	Value rdf2go.Term
}

// MaxInclusiveConstraint requires value <= Value.
type MaxInclusiveConstraint struct {
	Value rdf2go.Term
}

// MinLengthConstraint requires a lexical form of at least Length characters.
type MinLengthConstraint struct {
	Length int
}

// MaxLengthConstraint requires a lexical form of at most Length characters.
type MaxLengthConstraint struct {
	Length int
}

// PatternConstraint requires lexical forms to match a regular expression.
// The expression is compiled once at build time with sh:flags folded in.
type PatternConstraint struct {
	Pattern string
	Flags   string
	Regexp  *regexp.Regexp
}

// LanguageInConstraint restricts language tags to an allowed set. Matching
// includes subtag prefixes, so "en" admits "en-US".
type LanguageInConstraint struct {
	Tags []string
}

// UniqueLangConstraint forbids two value nodes sharing a language tag.
type UniqueLangConstraint struct{}

// EqualsConstraint requires the value set to equal the values of another
// property at the same focus node.
type EqualsConstraint struct {
	Property rdf2go.Term
}

// DisjointConstraint forbids shared values with another property.
type DisjointConstraint struct {
	Property rdf2go.Term
}

// LessThanConstraint requires each value to be strictly less than each
// value of another property.
type LessThanConstraint struct {
	Property rdf2go.Term
}

// LessThanOrEqualsConstraint is the non-strict variant of LessThanConstraint.
type LessThanOrEqualsConstraint struct {
	Property rdf2go.Term
}

// HasValueConstraint requires Value to appear among the value nodes.
type HasValueConstraint struct {
	Value rdf2go.Term
}

// InConstraint requires every value node to be one of Values.
type InConstraint struct {
	Values []rdf2go.Term
}

// NodeConstraint requires value nodes to conform to another node shape.
type NodeConstraint struct {
	Shape *Shape
}

// PropertyConstraint attaches a property shape evaluated at each value node.
type PropertyConstraint struct {
	Shape *Shape
}

// ClosedConstraint forbids predicates outside the shape's declared property
// paths and the ignored list.
type ClosedConstraint struct {
	Ignored []string
}

// QualifiedValueShapeConstraint bounds how many value nodes conform to a
// shape. Min or Max is -1 when the corresponding bound is absent. Disjoint
// prevents sibling qualified shapes from counting the same value node.
type QualifiedValueShapeConstraint struct {
	Shape    *Shape
	Min      int
	Max      int
	Disjoint bool
}

// AndConstraint requires conformance to every member shape.
type AndConstraint struct {
	Shapes []*Shape
}

// OrConstraint requires conformance to at least one member shape.
type OrConstraint struct {
	Shapes []*Shape
}

// XoneConstraint requires conformance to exactly one member shape.
type XoneConstraint struct {
	Shapes []*Shape
}

// NotConstraint forbids conformance to a shape.
type NotConstraint struct {
	Shape *Shape
}

// SPARQLConstraint runs a query against the data graph when the data
// source supports it. Either Select or Ask is set, never both.
type SPARQLConstraint struct {
	Select   string
	Ask      string
	Message  string
	Prefixes string
}

func (c *ClassConstraint) Component() string        { return sh.ClassConstraintComponent }
func (c *DatatypeConstraint) Component() string     { return sh.DatatypeConstraintComponent }
func (c *NodeKindConstraint) Component() string     { return sh.NodeKindConstraintComponent }
func (c *MinCountConstraint) Component() string     { return sh.MinCountConstraintComponent }
func (c *MaxCountConstraint) Component() string     { return sh.MaxCountConstraintComponent }
func (c *MinExclusiveConstraint) Component() string { return sh.MinExclusiveConstraintComponent }
func (c *MinInclusiveConstraint) Component() string { return sh.MinInclusiveConstraintComponent }
func (c *MaxExclusiveConstraint) Component() string { return sh.MaxExclusiveConstraintComponent }
func (c *MaxInclusiveConstraint) Component() string { return sh.MaxInclusiveConstraintComponent }
func (c *MinLengthConstraint) Component() string    { return sh.MinLengthConstraintComponent }
func (c *MaxLengthConstraint) Component() string    { return sh.MaxLengthConstraintComponent }
func (c *PatternConstraint) Component() string      { return sh.PatternConstraintComponent }
func (c *LanguageInConstraint) Component() string   { return sh.LanguageInConstraintComponent }
func (c *UniqueLangConstraint) Component() string   { return sh.UniqueLangConstraintComponent }
func (c *EqualsConstraint) Component() string       { return sh.EqualsConstraintComponent }
func (c *DisjointConstraint) Component() string     { return sh.DisjointConstraintComponent }
func (c *LessThanConstraint) Component() string     { return sh.LessThanConstraintComponent }
func (c *LessThanOrEqualsConstraint) Component() string {
	return sh.LessThanOrEqualsConstraintComponent
}
func (c *HasValueConstraint) Component() string { return sh.HasValueConstraintComponent }
func (c *InConstraint) Component() string       { return sh.InConstraintComponent }
func (c *NodeConstraint) Component() string     { return sh.NodeConstraintComponent }
func (c *PropertyConstraint) Component() string { return sh.PropertyConstraintComponent }
func (c *ClosedConstraint) Component() string   { return sh.ClosedConstraintComponent }
func (c *QualifiedValueShapeConstraint) Component() string {
	if c.Max >= 0 {
		return sh.QualifiedMaxCountConstraintComponent
	}
	return sh.QualifiedMinCountConstraintComponent
}
func (c *AndConstraint) Component() string    { return sh.AndConstraintComponent }
func (c *OrConstraint) Component() string     { return sh.OrConstraintComponent }
func (c *XoneConstraint) Component() string   { return sh.XoneConstraintComponent }
func (c *NotConstraint) Component() string    { return sh.NotConstraintComponent }
func (c *SPARQLConstraint) Component() string { return sh.SPARQLConstraintComponent }
