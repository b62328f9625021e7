package validation

import (
	"fmt"
	"strings"

	"github.com/deiu/rdf2go"

	"github.com/c360studio/semshacl/shapes"
	"github.com/c360studio/semshacl/vocabulary/sh"
)

// evalValueConstraint handles the constraints that inspect value nodes
// directly, without nested shape evaluation.
func (rc *run) evalValueConstraint(constraint shapes.Constraint, shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term) []*Result {
	switch c := constraint.(type) {
	case *shapes.ClassConstraint:
		return rc.evalClass(c, shape, focus, valueNodes)
	case *shapes.DatatypeConstraint:
		return rc.evalDatatype(c, shape, focus, valueNodes)
	case *shapes.NodeKindConstraint:
		return rc.evalNodeKind(c, shape, focus, valueNodes)
	case *shapes.MinCountConstraint:
		return rc.evalMinCount(c, shape, focus, valueNodes)
	case *shapes.MaxCountConstraint:
		return rc.evalMaxCount(c, shape, focus, valueNodes)
	case *shapes.MinExclusiveConstraint:
		return rc.evalRange(shape, focus, valueNodes, c.Value, c.Component(),
			fmt.Sprintf("sh:minExclusive %s", c.Value.String()),
			func(cmp int) bool { return cmp > 0 },
			"Value %s is not greater than %s")
	case *shapes.MinInclusiveConstraint:
		return rc.evalRange(shape, focus, valueNodes, c.Value, c.Component(),
			fmt.Sprintf("sh:minInclusive %s", c.Value.String()),
			func(cmp int) bool { return cmp >= 0 },
			"Value %s is less than minimum %s")
	case *shapes.MaxExclusiveConstraint:
		return rc.evalRange(shape, focus, valueNodes, c.Value, c.Component(),
			fmt.Sprintf("sh:maxExclusive %s", c.Value.String()),
			func(cmp int) bool { return cmp < 0 },
			"Value %s is not less than %s")
	case *shapes.MaxInclusiveConstraint:
		return rc.evalRange(shape, focus, valueNodes, c.Value, c.Component(),
			fmt.Sprintf("sh:maxInclusive %s", c.Value.String()),
			func(cmp int) bool { return cmp <= 0 },
			"Value %s exceeds maximum %s")
	case *shapes.MinLengthConstraint:
		return rc.evalMinLength(c, shape, focus, valueNodes)
	case *shapes.MaxLengthConstraint:
		return rc.evalMaxLength(c, shape, focus, valueNodes)
	case *shapes.PatternConstraint:
		return rc.evalPattern(c, shape, focus, valueNodes)
	case *shapes.LanguageInConstraint:
		return rc.evalLanguageIn(c, shape, focus, valueNodes)
	case *shapes.UniqueLangConstraint:
		return rc.evalUniqueLang(shape, focus, valueNodes)
	case *shapes.EqualsConstraint:
		return rc.evalEquals(c, shape, focus, valueNodes)
	case *shapes.DisjointConstraint:
		return rc.evalDisjoint(c, shape, focus, valueNodes)
	case *shapes.LessThanConstraint:
		return rc.evalLessThan(shape, focus, valueNodes, c.Property, c.Component(),
			fmt.Sprintf("sh:lessThan %s", c.Property.String()),
			func(cmp int) bool { return cmp < 0 },
			"Value is not less than values of property %s")
	case *shapes.LessThanOrEqualsConstraint:
		return rc.evalLessThan(shape, focus, valueNodes, c.Property, c.Component(),
			fmt.Sprintf("sh:lessThanOrEquals %s", c.Property.String()),
			func(cmp int) bool { return cmp <= 0 },
			"Value is not less than or equal to values of property %s")
	case *shapes.HasValueConstraint:
		return rc.evalHasValue(c, shape, focus, valueNodes)
	case *shapes.InConstraint:
		return rc.evalIn(c, shape, focus, valueNodes)
	default:
		rc.v.log.Debug("unhandled constraint", "component", constraint.Component(), "shape", shape.ID)
		return nil
	}
}

func (rc *run) evalClass(c *shapes.ClassConstraint, shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term) []*Result {
	detail := fmt.Sprintf("sh:class %s", c.Class.String())
	var out []*Result
	for _, vn := range valueNodes {
		if !isNode(vn) {
			out = append(out, newResult(shape, focus, c.Component(), detail, vn,
				[]string{"Value must be a node to check class membership"}, nil))
			continue
		}
		if !rc.data.IsInstance(vn, c.Class) {
			out = append(out, newResult(shape, focus, c.Component(), detail, vn,
				[]string{fmt.Sprintf("Value is not an instance of class %s", c.Class.String())}, nil))
		}
	}
	return out
}

func (rc *run) evalDatatype(c *shapes.DatatypeConstraint, shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term) []*Result {
	detail := fmt.Sprintf("sh:datatype %s", c.Datatype)
	var out []*Result
	for _, vn := range valueNodes {
		lit, ok := asLiteral(vn)
		if !ok {
			out = append(out, newResult(shape, focus, c.Component(), detail, vn,
				[]string{"Value is not a literal"}, nil))
			continue
		}
		if datatypeOf(lit) != c.Datatype {
			out = append(out, newResult(shape, focus, c.Component(), detail, vn,
				[]string{fmt.Sprintf("Value does not have datatype: %s", c.Datatype)}, nil))
		}
	}
	return out
}

func (rc *run) evalNodeKind(c *shapes.NodeKindConstraint, shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term) []*Result {
	detail := fmt.Sprintf("sh:nodeKind %s", c.Kind)
	var out []*Result
	for _, vn := range valueNodes {
		if !nodeKindMatches(c.Kind, vn) {
			out = append(out, newResult(shape, focus, c.Component(), detail, vn,
				[]string{fmt.Sprintf("Value does not have node kind: %s", c.Kind)}, nil))
		}
	}
	return out
}

func (rc *run) evalMinCount(c *shapes.MinCountConstraint, shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term) []*Result {
	if len(valueNodes) >= c.Count {
		return nil
	}
	return []*Result{newResult(shape, focus, c.Component(),
		fmt.Sprintf("sh:minCount %d", c.Count),
		nil,
		[]string{fmt.Sprintf("Property has %d values (min: %d)", len(valueNodes), c.Count)},
		nil)}
}

func (rc *run) evalMaxCount(c *shapes.MaxCountConstraint, shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term) []*Result {
	if len(valueNodes) <= c.Count {
		return nil
	}
	return []*Result{newResult(shape, focus, c.Component(),
		fmt.Sprintf("sh:maxCount %d", c.Count),
		nil,
		[]string{fmt.Sprintf("Property has %d values (max: %d)", len(valueNodes), c.Count)},
		nil)}
}

func (rc *run) evalRange(shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term, bound rdf2go.Term, component, detail string, ok func(int) bool, msgFormat string) []*Result {
	var out []*Result
	for _, vn := range valueNodes {
		cmp, comparable := compareTerms(vn, bound)
		if comparable && ok(cmp) {
			continue
		}
		out = append(out, newResult(shape, focus, component, detail, vn,
			[]string{fmt.Sprintf(msgFormat, vn.String(), bound.String())}, nil))
	}
	return out
}

func (rc *run) evalMinLength(c *shapes.MinLengthConstraint, shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term) []*Result {
	detail := fmt.Sprintf("sh:minLength %d", c.Length)
	var out []*Result
	for _, vn := range valueNodes {
		lit, ok := asLiteral(vn)
		if !ok {
			continue
		}
		if n := len(lit.Value); n < c.Length {
			out = append(out, newResult(shape, focus, c.Component(), detail, vn,
				[]string{fmt.Sprintf("String length %d is less than minimum %d", n, c.Length)}, nil))
		}
	}
	return out
}

func (rc *run) evalMaxLength(c *shapes.MaxLengthConstraint, shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term) []*Result {
	detail := fmt.Sprintf("sh:maxLength %d", c.Length)
	var out []*Result
	for _, vn := range valueNodes {
		lit, ok := asLiteral(vn)
		if !ok {
			continue
		}
		if n := len(lit.Value); n > c.Length {
			out = append(out, newResult(shape, focus, c.Component(), detail, vn,
				[]string{fmt.Sprintf("String length %d exceeds maximum %d", n, c.Length)}, nil))
		}
	}
	return out
}

func (rc *run) evalPattern(c *shapes.PatternConstraint, shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term) []*Result {
	detail := fmt.Sprintf("sh:pattern %s", c.Pattern)
	var out []*Result
	for _, vn := range valueNodes {
		lit, ok := asLiteral(vn)
		if !ok {
			out = append(out, newResult(shape, focus, c.Component(), detail, vn,
				[]string{"Value is not a literal"}, nil))
			continue
		}
		if !c.Regexp.MatchString(lit.Value) {
			out = append(out, newResult(shape, focus, c.Component(), detail, vn,
				[]string{fmt.Sprintf("Value does not match pattern: %s", c.Pattern)}, nil))
		}
	}
	return out
}

func (rc *run) evalLanguageIn(c *shapes.LanguageInConstraint, shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term) []*Result {
	detail := fmt.Sprintf("sh:languageIn [%s]", strings.Join(c.Tags, ", "))
	var out []*Result
	for _, vn := range valueNodes {
		lit, ok := asLiteral(vn)
		if !ok {
			continue
		}
		if lit.Language == "" {
			out = append(out, newResult(shape, focus, c.Component(), detail, vn,
				[]string{"Value has no language tag"}, nil))
			continue
		}
		allowed := false
		for _, tag := range c.Tags {
			if languageMatches(tag, lit.Language) {
				allowed = true
				break
			}
		}
		if !allowed {
			out = append(out, newResult(shape, focus, c.Component(), detail, vn,
				[]string{fmt.Sprintf("Language '%s' not in allowed list", lit.Language)}, nil))
		}
	}
	return out
}

func (rc *run) evalUniqueLang(shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term) []*Result {
	seen := make(map[string]string)
	var out []*Result
	for _, vn := range valueNodes {
		lit, ok := asLiteral(vn)
		if !ok || lit.Language == "" {
			continue
		}
		lang := strings.ToLower(lit.Language)
		if first, dup := seen[lang]; dup {
			out = append(out, newResult(shape, focus,
				sh.UniqueLangConstraintComponent,
				"sh:uniqueLang true",
				vn,
				[]string{fmt.Sprintf("Duplicate language tag '%s' (first seen: %s)", lit.Language, first)},
				nil))
		} else {
			seen[lang] = lit.Value
		}
	}
	return out
}

func (rc *run) evalEquals(c *shapes.EqualsConstraint, shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term) []*Result {
	if !isNode(focus) {
		return nil
	}
	detail := fmt.Sprintf("sh:equals %s", c.Property.String())
	other := rc.data.Objects(focus, c.Property)

	if shape.IsPropertyShape {
		if sameTermSet(valueNodes, other) {
			return nil
		}
		return []*Result{newResult(shape, focus, c.Component(), detail, nil,
			[]string{fmt.Sprintf("Values do not equal values of property %s", c.Property.String())}, nil)}
	}

	if len(other) == 0 {
		return []*Result{newResult(shape, focus, c.Component(), detail, nil,
			[]string{fmt.Sprintf("Focus node does not equal (no values of property %s)", c.Property.String())}, nil)}
	}
	var out []*Result
	for _, o := range other {
		if !o.Equal(focus) {
			out = append(out, newResult(shape, focus, c.Component(), detail, o,
				[]string{fmt.Sprintf("Focus node does not equal value of property %s", c.Property.String())}, nil))
		}
	}
	return out
}

func (rc *run) evalDisjoint(c *shapes.DisjointConstraint, shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term) []*Result {
	if !isNode(focus) {
		return nil
	}
	other := make(map[string]bool)
	for _, o := range rc.data.Objects(focus, c.Property) {
		other[o.String()] = true
	}

	nodes := valueNodes
	if !shape.IsPropertyShape {
		nodes = []rdf2go.Term{focus}
	}
	var out []*Result
	for _, n := range nodes {
		if other[n.String()] {
			out = append(out, newResult(shape, focus, c.Component(),
				fmt.Sprintf("sh:disjoint %s", c.Property.String()),
				n,
				[]string{"Value appears in both properties (not disjoint)"},
				nil))
		}
	}
	return out
}

func (rc *run) evalLessThan(shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term, property rdf2go.Term, component, detail string, ok func(int) bool, msgFormat string) []*Result {
	if !isNode(focus) {
		return nil
	}
	other := rc.data.Objects(focus, property)
	if len(other) == 0 {
		return nil
	}

	nodes := valueNodes
	if !shape.IsPropertyShape {
		nodes = []rdf2go.Term{focus}
	}
	var out []*Result
	for _, n := range nodes {
		valid := false
		for _, o := range other {
			if cmp, comparable := compareTerms(n, o); comparable && ok(cmp) {
				valid = true
				break
			}
		}
		if !valid {
			out = append(out, newResult(shape, focus, component, detail, n,
				[]string{fmt.Sprintf(msgFormat, property.String())}, nil))
		}
	}
	return out
}

func (rc *run) evalHasValue(c *shapes.HasValueConstraint, shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term) []*Result {
	for _, vn := range valueNodes {
		if vn.Equal(c.Value) {
			return nil
		}
	}
	return []*Result{newResult(shape, focus, c.Component(),
		fmt.Sprintf("sh:hasValue %s", c.Value.String()),
		nil,
		[]string{fmt.Sprintf("Required value %s is not present", c.Value.String())},
		nil)}
}

func (rc *run) evalIn(c *shapes.InConstraint, shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term) []*Result {
	var out []*Result
	for _, vn := range valueNodes {
		allowed := false
		for _, v := range c.Values {
			if vn.Equal(v) {
				allowed = true
				break
			}
		}
		if !allowed {
			out = append(out, newResult(shape, focus, c.Component(),
				"sh:in constraint",
				vn,
				[]string{"Value is not in the allowed list"},
				nil))
		}
	}
	return out
}

func nodeKindMatches(kind string, t rdf2go.Term) bool {
	switch kind {
	case sh.BlankNode:
		return isBlankNode(t)
	case sh.IRI:
		return isResource(t)
	case sh.Literal:
		return isLiteralTerm(t)
	case sh.BlankNodeOrIRI:
		return isBlankNode(t) || isResource(t)
	case sh.BlankNodeOrLiteral:
		return isBlankNode(t) || isLiteralTerm(t)
	case sh.IRIOrLiteral:
		return isResource(t) || isLiteralTerm(t)
	default:
		return false
	}
}

// sameTermSet compares two term slices as sets.
func sameTermSet(a, b []rdf2go.Term) bool {
	setA := make(map[string]bool, len(a))
	for _, t := range a {
		setA[t.String()] = true
	}
	setB := make(map[string]bool, len(b))
	for _, t := range b {
		setB[t.String()] = true
	}
	if len(setA) != len(setB) {
		return false
	}
	for k := range setA {
		if !setB[k] {
			return false
		}
	}
	return true
}
