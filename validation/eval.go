package validation

import (
	"fmt"
	"sort"

	"github.com/deiu/rdf2go"

	"github.com/c360studio/semshacl/shapes"
	"github.com/c360studio/semshacl/vocabulary/sh"
)

// validateShape evaluates every constraint of a shape at a focus node.
// claimed carries the value nodes already counted by earlier disjoint
// qualified shapes under the same parent, nil outside that context.
func (rc *run) validateShape(shape *shapes.Shape, focus rdf2go.Term, st *state, claimed map[string]bool) ([]*Result, error) {
	if shape.Deactivated {
		return nil, nil
	}

	key := focus.String() + "|" + shape.ID
	if st.inProgress[key] {
		st.cycles++
		if rc.v.opts.RecursionPolicy == RecursionWarn {
			note := &Result{
				FocusNode:   focus,
				SourceShape: shape,
				Severity:    sh.Info,
				Path:        shape.Path,
				Messages:    []string{fmt.Sprintf("Recursive reference to shape %s skipped", shape.ID)},
				note:        true,
			}
			return []*Result{note}, nil
		}
		return nil, nil
	}
	if st.depth >= rc.v.opts.MaxDepth {
		return nil, fmt.Errorf("shape %s at depth %d: %w", shape.ID, st.depth, ErrMaxDepth)
	}
	st.inProgress[key] = true
	st.depth++
	defer func() {
		delete(st.inProgress, key)
		st.depth--
	}()

	valueNodes := rc.valueNodes(shape, focus)

	var out []*Result
	claimsByValue := make(map[string]map[string]bool)
	for _, constraint := range shape.Constraints {
		var (
			results []*Result
			err     error
		)
		switch c := constraint.(type) {
		case *shapes.PropertyConstraint:
			for _, vn := range valueNodes {
				vnKey := vn.String()
				if claimsByValue[vnKey] == nil {
					claimsByValue[vnKey] = make(map[string]bool)
				}
				nested, nerr := rc.validateShape(c.Shape, vn, st, claimsByValue[vnKey])
				if nerr != nil {
					return nil, nerr
				}
				results = append(results, nested...)
			}
		case *shapes.ClosedConstraint:
			results = rc.evalClosed(c, shape, focus)
		case *shapes.QualifiedValueShapeConstraint:
			results, err = rc.evalQualified(c, shape, focus, valueNodes, st, claimed)
		case *shapes.NodeConstraint:
			results, err = rc.evalNode(c, shape, focus, valueNodes, st)
		case *shapes.NotConstraint:
			results, err = rc.evalNot(c, shape, focus, valueNodes, st)
		case *shapes.AndConstraint:
			results, err = rc.evalAnd(c, shape, focus, valueNodes, st)
		case *shapes.OrConstraint:
			results, err = rc.evalOr(c, shape, focus, valueNodes, st)
		case *shapes.XoneConstraint:
			results, err = rc.evalXone(c, shape, focus, valueNodes, st)
		case *shapes.SPARQLConstraint:
			results, err = rc.evalSPARQL(c, shape, focus)
		default:
			results = rc.evalValueConstraint(constraint, shape, focus, valueNodes)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, results...)
	}
	return out, nil
}

// valueNodes resolves the nodes a shape's constraints apply to: the path
// values for property shapes, the focus node itself otherwise. Literals
// have no outgoing triples, so a literal focus under a path yields nothing.
func (rc *run) valueNodes(shape *shapes.Shape, focus rdf2go.Term) []rdf2go.Term {
	if !shape.IsPropertyShape {
		return []rdf2go.Term{focus}
	}
	if !isNode(focus) {
		return nil
	}
	return shape.Path.Resolve(rc.data, focus)
}

// evalClosed reports each predicate on the focus node that is neither
// ignored nor reachable as the first step of a declared property path.
// One result is produced per offending predicate.
func (rc *run) evalClosed(c *shapes.ClosedConstraint, shape *shapes.Shape, focus rdf2go.Term) []*Result {
	if !isNode(focus) {
		return nil
	}

	allowed := make(map[string]bool, len(c.Ignored))
	for _, iri := range c.Ignored {
		allowed[iri] = true
	}
	for _, prop := range shape.PropertyShapes() {
		for _, iri := range shapes.DirectPredicates(prop.Path) {
			allowed[iri] = true
		}
	}

	offending := make(map[string]rdf2go.Term)
	for _, t := range rc.data.Match(focus, nil, nil) {
		iri := t.Predicate.RawValue()
		if !allowed[iri] {
			if _, ok := offending[iri]; !ok {
				offending[iri] = t.Predicate
			}
		}
	}
	if len(offending) == 0 {
		return nil
	}

	iris := make([]string, 0, len(offending))
	for iri := range offending {
		iris = append(iris, iri)
	}
	sort.Strings(iris)

	out := make([]*Result, 0, len(iris))
	for _, iri := range iris {
		out = append(out, newResult(shape, focus,
			sh.ClosedConstraintComponent,
			"sh:closed true",
			offending[iri],
			[]string{fmt.Sprintf("Property %s is not allowed (closed shape)", offending[iri].String())},
			nil))
	}
	return out
}

// evalQualified counts the value nodes conforming to the qualified shape
// and checks the declared bounds. Under a disjoint group, value nodes
// already claimed by an earlier sibling do not count, and newly counted
// nodes are claimed.
func (rc *run) evalQualified(c *shapes.QualifiedValueShapeConstraint, shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term, st *state, claimed map[string]bool) ([]*Result, error) {
	conforming := 0
	for _, vn := range valueNodes {
		ok, err := rc.conformsTo(c.Shape, vn, st)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if c.Disjoint && claimed != nil {
			vnKey := vn.String()
			if claimed[vnKey] {
				continue
			}
			claimed[vnKey] = true
		}
		conforming++
	}

	var out []*Result
	if c.Min >= 0 && conforming < c.Min {
		out = append(out, newResult(shape, focus,
			sh.QualifiedMinCountConstraintComponent,
			fmt.Sprintf("sh:qualifiedMinCount %d", c.Min),
			nil,
			[]string{fmt.Sprintf("Qualified value shape: %d values conform (min: %d)", conforming, c.Min)},
			nil))
	}
	if c.Max >= 0 && conforming > c.Max {
		out = append(out, newResult(shape, focus,
			sh.QualifiedMaxCountConstraintComponent,
			fmt.Sprintf("sh:qualifiedMaxCount %d", c.Max),
			nil,
			[]string{fmt.Sprintf("Qualified value shape: %d values conform (max: %d)", conforming, c.Max)},
			nil))
	}
	return out, nil
}
