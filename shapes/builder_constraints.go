package shapes

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/deiu/rdf2go"

	"github.com/c360studio/semshacl/vocabulary/sh"
)

// knownParameters lists every SHACL predicate the builder understands on a
// shape node. Strict mode rejects anything else in the sh: namespace.
var knownParameters = map[string]bool{
	sh.Path: true, sh.Property: true, sh.Deactivated: true,
	sh.Name: true, sh.Description: true, sh.Message: true, sh.Severity: true,
	sh.TargetClass: true, sh.TargetNode: true, sh.TargetSubjectsOf: true, sh.TargetObjectsOf: true,
	sh.Class: true, sh.Datatype: true, sh.NodeKindParam: true,
	sh.MinCount: true, sh.MaxCount: true,
	sh.MinExclusive: true, sh.MinInclusive: true, sh.MaxExclusive: true, sh.MaxInclusive: true,
	sh.MinLength: true, sh.MaxLength: true, sh.Pattern: true, sh.Flags: true,
	sh.LanguageIn: true, sh.UniqueLang: true,
	sh.Equals: true, sh.Disjoint: true, sh.LessThan: true, sh.LessThanOrEquals: true,
	sh.HasValue: true, sh.In: true, sh.Node: true,
	sh.Closed: true, sh.IgnoredProperties: true,
	sh.QualifiedValueShape: true, sh.QualifiedMinCount: true, sh.QualifiedMaxCount: true,
	sh.QualifiedValueShapesDisjoint: true,
	sh.And: true, sh.Or: true, sh.Not: true, sh.Xone: true,
	sh.SPARQL: true,
}

func (b *builder) checkKnownParameters(node rdf2go.Term) error {
	for _, t := range b.store.Match(node, nil, nil) {
		pred := t.Predicate.RawValue()
		if strings.HasPrefix(pred, sh.Namespace) && !knownParameters[pred] {
			return fmt.Errorf("shape %s uses %s: %w", node.String(), pred, ErrUnknownParameter)
		}
	}
	return nil
}

func (b *builder) buildConstraints(s *Shape) error {
	node := s.Node
	add := func(c Constraint) {
		s.Constraints = append(s.Constraints, c)
	}

	for _, v := range b.objects(node, sh.Class) {
		add(&ClassConstraint{Class: v})
	}
	for _, v := range b.objects(node, sh.Datatype) {
		add(&DatatypeConstraint{Datatype: v.RawValue()})
	}
	for _, v := range b.objects(node, sh.NodeKindParam) {
		kind := v.RawValue()
		switch kind {
		case sh.BlankNode, sh.IRI, sh.Literal, sh.BlankNodeOrIRI, sh.BlankNodeOrLiteral, sh.IRIOrLiteral:
			add(&NodeKindConstraint{Kind: kind})
		default:
			return fmt.Errorf("shape %s: %s is not a node kind: %w", s.ID, kind, ErrShapesGraph)
		}
	}

	if n, ok, err := b.intValue(node, sh.MinCount); err != nil {
		return fmt.Errorf("shape %s: %w", s.ID, err)
	} else if ok {
		add(&MinCountConstraint{Count: n})
	}
	if n, ok, err := b.intValue(node, sh.MaxCount); err != nil {
		return fmt.Errorf("shape %s: %w", s.ID, err)
	} else if ok {
		add(&MaxCountConstraint{Count: n})
	}

	for _, v := range b.objects(node, sh.MinExclusive) {
		add(&MinExclusiveConstraint{Value: v})
	}
	for _, v := range b.objects(node, sh.MinInclusive) {
		add(&MinInclusiveConstraint{Value: v})
	}
	for _, v := range b.objects(node, sh.MaxExclusive) {
		add(&MaxExclusiveConstraint{Value: v})
	}
	for _, v := range b.objects(node, sh.MaxInclusive) {
		add(&MaxInclusiveConstraint{Value: v})
	}

	if n, ok, err := b.intValue(node, sh.MinLength); err != nil {
		return fmt.Errorf("shape %s: %w", s.ID, err)
	} else if ok {
		add(&MinLengthConstraint{Length: n})
	}
	if n, ok, err := b.intValue(node, sh.MaxLength); err != nil {
		return fmt.Errorf("shape %s: %w", s.ID, err)
	} else if ok {
		add(&MaxLengthConstraint{Length: n})
	}

	if v := b.store.Object(node, rdf2go.NewResource(sh.Pattern)); v != nil {
		flags := ""
		if f := b.store.Object(node, rdf2go.NewResource(sh.Flags)); f != nil {
			flags = f.RawValue()
		}
		c, err := compilePattern(v.RawValue(), flags)
		if err != nil {
			return fmt.Errorf("shape %s: %w", s.ID, err)
		}
		add(c)
	}

	if list := b.store.Object(node, rdf2go.NewResource(sh.LanguageIn)); list != nil {
		elems, err := b.store.ListElements(list)
		if err != nil {
			return fmt.Errorf("shape %s sh:languageIn: %v: %w", s.ID, err, ErrShapesGraph)
		}
		tags := make([]string, 0, len(elems))
		for _, e := range elems {
			tags = append(tags, e.RawValue())
		}
		add(&LanguageInConstraint{Tags: tags})
	}
	if v := b.store.Object(node, rdf2go.NewResource(sh.UniqueLang)); v != nil && v.RawValue() == "true" {
		add(&UniqueLangConstraint{})
	}

	for _, v := range b.objects(node, sh.Equals) {
		add(&EqualsConstraint{Property: v})
	}
	for _, v := range b.objects(node, sh.Disjoint) {
		add(&DisjointConstraint{Property: v})
	}
	for _, v := range b.objects(node, sh.LessThan) {
		add(&LessThanConstraint{Property: v})
	}
	for _, v := range b.objects(node, sh.LessThanOrEquals) {
		add(&LessThanOrEqualsConstraint{Property: v})
	}

	for _, v := range b.objects(node, sh.HasValue) {
		add(&HasValueConstraint{Value: v})
	}
	if list := b.store.Object(node, rdf2go.NewResource(sh.In)); list != nil {
		elems, err := b.store.ListElements(list)
		if err != nil {
			return fmt.Errorf("shape %s sh:in: %v: %w", s.ID, err, ErrShapesGraph)
		}
		add(&InConstraint{Values: elems})
	}

	for _, v := range b.objects(node, sh.Node) {
		add(&NodeConstraint{Shape: b.shapeFor(v)})
	}
	for _, v := range b.objects(node, sh.Property) {
		add(&PropertyConstraint{Shape: b.propertyShapeFor(v)})
	}

	if err := b.buildClosed(s, add); err != nil {
		return err
	}
	if err := b.buildQualified(s, add); err != nil {
		return err
	}
	if err := b.buildLogical(s, add); err != nil {
		return err
	}
	return b.buildSPARQL(s, add)
}

func (b *builder) buildClosed(s *Shape, add func(Constraint)) error {
	v := b.store.Object(s.Node, rdf2go.NewResource(sh.Closed))
	if v == nil || v.RawValue() != "true" {
		return nil
	}
	s.Closed = true

	var ignored []string
	if list := b.store.Object(s.Node, rdf2go.NewResource(sh.IgnoredProperties)); list != nil {
		elems, err := b.store.ListElements(list)
		if err != nil {
			return fmt.Errorf("shape %s sh:ignoredProperties: %v: %w", s.ID, err, ErrShapesGraph)
		}
		for _, e := range elems {
			ignored = append(ignored, e.RawValue())
		}
	}
	add(&ClosedConstraint{Ignored: ignored})
	return nil
}

func (b *builder) buildQualified(s *Shape, add func(Constraint)) error {
	shapeNode := b.store.Object(s.Node, rdf2go.NewResource(sh.QualifiedValueShape))
	minVal, hasMin, err := b.intValue(s.Node, sh.QualifiedMinCount)
	if err != nil {
		return fmt.Errorf("shape %s: %w", s.ID, err)
	}
	maxVal, hasMax, err := b.intValue(s.Node, sh.QualifiedMaxCount)
	if err != nil {
		return fmt.Errorf("shape %s: %w", s.ID, err)
	}
	if shapeNode == nil {
		if hasMin || hasMax {
			return fmt.Errorf("shape %s has qualified counts without sh:qualifiedValueShape: %w", s.ID, ErrShapesGraph)
		}
		return nil
	}
	if !hasMin && !hasMax {
		return fmt.Errorf("shape %s has sh:qualifiedValueShape without counts: %w", s.ID, ErrShapesGraph)
	}

	q := &QualifiedValueShapeConstraint{
		Shape: b.shapeFor(shapeNode),
		Min:   -1,
		Max:   -1,
	}
	if hasMin {
		q.Min = minVal
	}
	if hasMax {
		q.Max = maxVal
	}
	if v := b.store.Object(s.Node, rdf2go.NewResource(sh.QualifiedValueShapesDisjoint)); v != nil {
		q.Disjoint = v.RawValue() == "true"
	}
	add(q)
	return nil
}

func (b *builder) buildLogical(s *Shape, add func(Constraint)) error {
	shapeList := func(predicate string) ([]*Shape, error) {
		list := b.store.Object(s.Node, rdf2go.NewResource(predicate))
		if list == nil {
			return nil, nil
		}
		elems, err := b.store.ListElements(list)
		if err != nil {
			return nil, fmt.Errorf("shape %s %s: %v: %w", s.ID, predicate, err, ErrShapesGraph)
		}
		members := make([]*Shape, 0, len(elems))
		for _, e := range elems {
			members = append(members, b.shapeFor(e))
		}
		return members, nil
	}

	if members, err := shapeList(sh.And); err != nil {
		return err
	} else if members != nil {
		add(&AndConstraint{Shapes: members})
	}
	if members, err := shapeList(sh.Or); err != nil {
		return err
	} else if members != nil {
		add(&OrConstraint{Shapes: members})
	}
	if members, err := shapeList(sh.Xone); err != nil {
		return err
	} else if members != nil {
		add(&XoneConstraint{Shapes: members})
	}
	for _, v := range b.objects(s.Node, sh.Not) {
		add(&NotConstraint{Shape: b.shapeFor(v)})
	}
	return nil
}

func (b *builder) buildSPARQL(s *Shape, add func(Constraint)) error {
	for _, node := range b.objects(s.Node, sh.SPARQL) {
		c := &SPARQLConstraint{}
		if v := b.store.Object(node, rdf2go.NewResource(sh.Select)); v != nil {
			c.Select = v.RawValue()
		}
		if v := b.store.Object(node, rdf2go.NewResource(sh.Ask)); v != nil {
			c.Ask = v.RawValue()
		}
		if c.Select == "" && c.Ask == "" {
			return fmt.Errorf("shape %s: sh:sparql node has neither sh:select nor sh:ask: %w", s.ID, ErrShapesGraph)
		}
		if c.Select != "" && c.Ask != "" {
			return fmt.Errorf("shape %s: sh:sparql node has both sh:select and sh:ask: %w", s.ID, ErrShapesGraph)
		}
		if v := b.store.Object(node, rdf2go.NewResource(sh.Message)); v != nil {
			c.Message = v.RawValue()
		}
		prefixes, err := b.renderPrefixes(node)
		if err != nil {
			return fmt.Errorf("shape %s: %w", s.ID, err)
		}
		c.Prefixes = prefixes
		add(c)
	}
	return nil
}

// renderPrefixes turns sh:prefixes declarations into PREFIX lines ready to
// prepend to the query text.
func (b *builder) renderPrefixes(node rdf2go.Term) (string, error) {
	owner := b.store.Object(node, rdf2go.NewResource(sh.Prefixes))
	if owner == nil {
		return "", nil
	}
	var lines []string
	for _, decl := range b.objects(owner, sh.Declare) {
		prefix := b.store.Object(decl, rdf2go.NewResource(sh.Prefix))
		ns := b.store.Object(decl, rdf2go.NewResource(sh.NamespaceDecl))
		if prefix == nil || ns == nil {
			return "", fmt.Errorf("incomplete sh:declare on %s: %w", owner.String(), ErrShapesGraph)
		}
		lines = append(lines, fmt.Sprintf("PREFIX %s: <%s>", prefix.RawValue(), ns.RawValue()))
	}
	if len(lines) == 0 {
		return "", nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// compilePattern folds SHACL regex flags into the expression. The i, m,
// and s flags map onto inline flag groups. The x flag strips unescaped
// whitespace, which Go's regexp has no inline form for, so it is rejected.
func compilePattern(pattern, flags string) (*PatternConstraint, error) {
	var inline []byte
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			inline = append(inline, byte(f))
		default:
			return nil, fmt.Errorf("unsupported sh:flags value %q: %w", string(f), ErrShapesGraph)
		}
	}
	expr := pattern
	if len(inline) > 0 {
		expr = "(?" + string(inline) + ")" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("sh:pattern %q does not compile: %v: %w", pattern, err, ErrShapesGraph)
	}
	return &PatternConstraint{Pattern: pattern, Flags: flags, Regexp: re}, nil
}
