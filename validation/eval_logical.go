package validation

import (
	"fmt"
	"strings"

	"github.com/deiu/rdf2go"

	"github.com/c360studio/semshacl/shapes"
)

func (rc *run) evalNode(c *shapes.NodeConstraint, shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term, st *state) ([]*Result, error) {
	detail := fmt.Sprintf("sh:node constraint referencing shape %s", c.Shape.ID)
	var out []*Result
	for _, vn := range valueNodes {
		if !isNode(vn) {
			out = append(out, newResult(shape, focus, c.Component(), detail, vn,
				[]string{"Value is not a node (is a literal)"}, nil))
			continue
		}
		nested, err := rc.nested(c.Shape, vn, st)
		if err != nil {
			return nil, err
		}
		if !hasViolations(nested) {
			out = append(out, nested...)
			continue
		}
		msg := "Value does not conform to sh:node constraint"
		if vn.Equal(focus) {
			msg = "Focus node does not conform to sh:node constraint"
		}
		out = append(out, newResult(shape, focus, c.Component(), detail, vn,
			[]string{msg}, nested))
	}
	return out, nil
}

func (rc *run) evalNot(c *shapes.NotConstraint, shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term, st *state) ([]*Result, error) {
	detail := fmt.Sprintf("sh:not constraint referencing shape %s", c.Shape.ID)
	var out []*Result
	for _, vn := range valueNodes {
		conforms, err := rc.conformsTo(c.Shape, vn, st)
		if err != nil {
			return nil, err
		}
		if conforms {
			out = append(out, newResult(shape, focus, c.Component(), detail, vn,
				[]string{"Value conforms to shape in sh:not (should not conform)"}, nil))
		}
	}
	return out, nil
}

func (rc *run) evalAnd(c *shapes.AndConstraint, shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term, st *state) ([]*Result, error) {
	detail := fmt.Sprintf("sh:and with %d shapes", len(c.Shapes))
	var out []*Result
	for _, vn := range valueNodes {
		var failed []string
		var nestedAll []*Result
		for _, member := range c.Shapes {
			nested, err := rc.nested(member, vn, st)
			if err != nil {
				return nil, err
			}
			if hasViolations(nested) {
				failed = append(failed, member.ID)
				nestedAll = append(nestedAll, nested...)
			}
		}
		if len(failed) > 0 {
			out = append(out, newResult(shape, focus, c.Component(), detail, vn,
				[]string{fmt.Sprintf("Value does not conform to all shapes in sh:and (failed: %s)", strings.Join(failed, ", "))},
				nestedAll))
		}
	}
	return out, nil
}

func (rc *run) evalOr(c *shapes.OrConstraint, shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term, st *state) ([]*Result, error) {
	detail := fmt.Sprintf("sh:or with %d shapes", len(c.Shapes))
	var out []*Result
	for _, vn := range valueNodes {
		anyConforms := false
		var nestedAll []*Result
		for _, member := range c.Shapes {
			nested, err := rc.nested(member, vn, st)
			if err != nil {
				return nil, err
			}
			if !hasViolations(nested) {
				anyConforms = true
				break
			}
			nestedAll = append(nestedAll, nested...)
		}
		if !anyConforms {
			out = append(out, newResult(shape, focus, c.Component(), detail, vn,
				[]string{"Value does not conform to any shape in sh:or"},
				nestedAll))
		}
	}
	return out, nil
}

func (rc *run) evalXone(c *shapes.XoneConstraint, shape *shapes.Shape, focus rdf2go.Term, valueNodes []rdf2go.Term, st *state) ([]*Result, error) {
	var out []*Result
	for _, vn := range valueNodes {
		conforming := 0
		var conformingShapes []string
		var nestedAll []*Result
		for _, member := range c.Shapes {
			nested, err := rc.nested(member, vn, st)
			if err != nil {
				return nil, err
			}
			if !hasViolations(nested) {
				conforming++
				conformingShapes = append(conformingShapes, member.ID)
			} else {
				nestedAll = append(nestedAll, nested...)
			}
		}
		if conforming == 1 {
			continue
		}
		var msg string
		if conforming == 0 {
			msg = "Value does not conform to exactly one shape in sh:xone (conforms to none)"
		} else {
			msg = fmt.Sprintf("Value does not conform to exactly one shape in sh:xone (conforms to %d shapes: %s)",
				conforming, strings.Join(conformingShapes, ", "))
		}
		out = append(out, newResult(shape, focus, c.Component(),
			fmt.Sprintf("sh:xone with %d shapes, %d conforming", len(c.Shapes), conforming),
			vn,
			[]string{msg},
			nestedAll))
	}
	return out, nil
}

// evalSPARQL runs an attached query through the data source's query
// capability. Without one the constraint is skipped.
func (rc *run) evalSPARQL(c *shapes.SPARQLConstraint, shape *shapes.Shape, focus rdf2go.Term) ([]*Result, error) {
	if rc.query == nil {
		rc.v.log.Debug("skipping SPARQL constraint, data source has no query support", "shape", shape.ID)
		return nil, nil
	}
	if !isResource(focus) {
		return nil, nil
	}

	if c.Ask != "" {
		query := c.Prefixes + bindThis(c.Ask, focus)
		ok, err := rc.query.Ask(query)
		if err != nil {
			return []*Result{newResult(shape, focus, c.Component(),
				fmt.Sprintf("SPARQL ASK: %s", flattenQuery(query)),
				nil,
				[]string{fmt.Sprintf("SPARQL execution error: %v", err)},
				nil)}, nil
		}
		if ok {
			return nil, nil
		}
		msg := c.Message
		if msg == "" {
			msg = "SPARQL ASK constraint violation"
		}
		return []*Result{newResult(shape, focus, c.Component(),
			fmt.Sprintf("SPARQL ASK: %s", flattenQuery(query)),
			nil,
			[]string{bindMessage(msg, focus, nil)},
			nil)}, nil
	}

	query := c.Prefixes + bindThis(c.Select, focus)
	rows, err := rc.query.Select(query)
	if err != nil {
		return []*Result{newResult(shape, focus, c.Component(),
			fmt.Sprintf("SPARQL SELECT: %s", flattenQuery(query)),
			nil,
			[]string{fmt.Sprintf("SPARQL execution error: %v", err)},
			nil)}, nil
	}

	var out []*Result
	for _, row := range rows {
		msg := c.Message
		if msg == "" {
			msg = "SPARQL SELECT constraint violation"
		}
		var value rdf2go.Term
		if v, ok := row["value"]; ok {
			value = v
		}
		out = append(out, newResult(shape, focus, c.Component(),
			fmt.Sprintf("SPARQL SELECT: %s", flattenQuery(query)),
			value,
			[]string{bindMessage(msg, focus, row)},
			nil))
	}
	return out, nil
}

// bindThis substitutes the $this and ?this variables with the focus node.
func bindThis(query string, focus rdf2go.Term) string {
	bound := focus.String()
	query = strings.ReplaceAll(query, "$this", bound)
	return strings.ReplaceAll(query, "?this", bound)
}

// bindMessage substitutes {$var} and {?var} placeholders in a message
// template with the focus node and the row's bindings.
func bindMessage(template string, focus rdf2go.Term, row map[string]rdf2go.Term) string {
	out := template
	substitute := func(name, value string) {
		out = strings.ReplaceAll(out, "{$"+name+"}", value)
		out = strings.ReplaceAll(out, "{?"+name+"}", value)
	}
	substitute("this", focus.RawValue())
	for name, value := range row {
		substitute(name, value.RawValue())
	}
	return out
}

func flattenQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
