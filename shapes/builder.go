package shapes

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/deiu/rdf2go"

	"github.com/c360studio/semshacl/graph"
	"github.com/c360studio/semshacl/vocabulary/rdf"
	"github.com/c360studio/semshacl/vocabulary/sh"
)

// BuildOptions tunes shape building.
type BuildOptions struct {
	// Strict rejects shape nodes carrying SHACL predicates the builder
	// does not recognize. The default is to ignore them.
	Strict bool
}

// Build constructs the shape schema from a shapes graph with default
// options.
func Build(store *graph.Store) (*Schema, error) {
	return BuildWith(store, BuildOptions{})
}

// BuildWith constructs the shape schema from a shapes graph.
//
// Building is two-phase: every reachable shape node first gets a stub
// entry in the schema, then stubs are populated in turn. Shape-valued
// parameters resolve through the stub table, so mutually recursive shape
// references build without recursing.
func BuildWith(store *graph.Store, opts BuildOptions) (*Schema, error) {
	b := &builder{
		store:  store,
		opts:   opts,
		schema: &Schema{byID: make(map[string]*Shape)},
	}

	for _, root := range b.discoverRoots() {
		b.shapeFor(root)
	}

	for len(b.queue) > 0 {
		s := b.queue[0]
		b.queue = b.queue[1:]
		if err := b.populate(s); err != nil {
			return nil, err
		}
	}

	for _, s := range b.schema.ordered {
		if b.needsPath[s.ID] && s.Path == nil {
			return nil, fmt.Errorf("property shape %s has no sh:path: %w", s.ID, ErrShapesGraph)
		}
	}
	return b.schema, nil
}

type builder struct {
	store  *graph.Store
	opts   BuildOptions
	schema *Schema
	queue  []*Shape

	// needsPath marks shapes referenced through sh:property, which must
	// declare a path.
	needsPath map[string]bool
}

// discoverRoots finds the entry shape nodes: anything typed as a shape
// class, carrying a target declaration, or declaring sh:path. Nested
// shapes are discovered during population. Roots are sorted for
// deterministic shape order.
func (b *builder) discoverRoots() []rdf2go.Term {
	typeTerm := rdf2go.NewResource(rdf.Type)
	seen := make(map[string]rdf2go.Term)

	for _, class := range []string{sh.NodeShape, sh.PropertyShape, sh.Shape} {
		for _, t := range b.store.Match(nil, typeTerm, rdf2go.NewResource(class)) {
			seen[t.Subject.String()] = t.Subject
		}
	}
	for _, pred := range []string{sh.TargetClass, sh.TargetNode, sh.TargetSubjectsOf, sh.TargetObjectsOf} {
		for _, t := range b.store.Match(nil, rdf2go.NewResource(pred), nil) {
			seen[t.Subject.String()] = t.Subject
		}
	}
	// Declaring sh:path makes a node a property shape even when nothing
	// references it, so malformed orphans are still caught.
	for _, t := range b.store.Match(nil, rdf2go.NewResource(sh.Path), nil) {
		seen[t.Subject.String()] = t.Subject
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]rdf2go.Term, 0, len(keys))
	for _, k := range keys {
		out = append(out, seen[k])
	}
	return out
}

// shapeFor returns the shape for a node, creating and queueing a stub on
// first reference.
func (b *builder) shapeFor(node rdf2go.Term) *Shape {
	key := node.String()
	if s, ok := b.schema.byID[key]; ok {
		return s
	}
	s := &Shape{
		ID:    key,
		Node:  node,
		order: len(b.schema.ordered),
	}
	b.schema.byID[key] = s
	b.schema.ordered = append(b.schema.ordered, s)
	b.queue = append(b.queue, s)
	return s
}

func (b *builder) propertyShapeFor(node rdf2go.Term) *Shape {
	if b.needsPath == nil {
		b.needsPath = make(map[string]bool)
	}
	s := b.shapeFor(node)
	b.needsPath[s.ID] = true
	return s
}

func (b *builder) populate(s *Shape) error {
	node := s.Node

	if b.opts.Strict {
		if err := b.checkKnownParameters(node); err != nil {
			return err
		}
	}

	paths := b.objects(node, sh.Path)
	if len(paths) > 1 {
		return fmt.Errorf("shape %s has %d sh:path values: %w", s.ID, len(paths), ErrShapesGraph)
	}
	if len(paths) == 1 {
		p, err := b.parsePath(paths[0])
		if err != nil {
			return fmt.Errorf("shape %s: %w", s.ID, err)
		}
		s.Path = p
		s.IsPropertyShape = true
	}

	if err := b.buildTargets(s); err != nil {
		return err
	}
	if err := b.buildMetadata(s); err != nil {
		return err
	}
	return b.buildConstraints(s)
}

func (b *builder) buildTargets(s *Shape) error {
	node := s.Node
	for _, v := range b.objects(node, sh.TargetClass) {
		s.Targets = append(s.Targets, Target{Kind: TargetClass, Value: v})
	}
	for _, v := range b.objects(node, sh.TargetNode) {
		s.Targets = append(s.Targets, Target{Kind: TargetNode, Value: v})
	}
	for _, v := range b.objects(node, sh.TargetSubjectsOf) {
		s.Targets = append(s.Targets, Target{Kind: TargetSubjectsOf, Value: v})
	}
	for _, v := range b.objects(node, sh.TargetObjectsOf) {
		s.Targets = append(s.Targets, Target{Kind: TargetObjectsOf, Value: v})
	}
	if isImplicitClassShape(b.store, node) {
		s.Targets = append(s.Targets, Target{Kind: TargetImplicitClass, Value: node})
	}
	return nil
}

func (b *builder) buildMetadata(s *Shape) error {
	node := s.Node

	if v := b.store.Object(node, rdf2go.NewResource(sh.Severity)); v != nil {
		s.Severity = v.RawValue()
	}
	for _, v := range b.objects(node, sh.Message) {
		s.Messages = append(s.Messages, v.RawValue())
	}
	if v := b.store.Object(node, rdf2go.NewResource(sh.Name)); v != nil {
		s.Name = v.RawValue()
	}
	if v := b.store.Object(node, rdf2go.NewResource(sh.Description)); v != nil {
		s.Description = v.RawValue()
	}
	if v := b.store.Object(node, rdf2go.NewResource(sh.Deactivated)); v != nil {
		s.Deactivated = v.RawValue() == "true"
	}
	return nil
}

// parsePath builds a path from its shapes graph encoding. IRIs are
// predicate paths; blank nodes carry either a path operator predicate or
// an rdf:first chain encoding a sequence.
func (b *builder) parsePath(node rdf2go.Term) (Path, error) {
	if _, ok := node.(*rdf2go.Literal); ok {
		return nil, fmt.Errorf("literal %s is not a path: %w", node.String(), ErrShapesGraph)
	}

	if inner := b.store.Object(node, rdf2go.NewResource(sh.InversePath)); inner != nil {
		p, err := b.parsePath(inner)
		if err != nil {
			return nil, err
		}
		return invert(p), nil
	}
	if list := b.store.Object(node, rdf2go.NewResource(sh.AlternativePath)); list != nil {
		options, err := b.parsePathList(list)
		if err != nil {
			return nil, err
		}
		return &AlternativePath{Options: options}, nil
	}
	if inner := b.store.Object(node, rdf2go.NewResource(sh.ZeroOrMorePath)); inner != nil {
		p, err := b.parsePath(inner)
		if err != nil {
			return nil, err
		}
		return &ZeroOrMorePath{Inner: p}, nil
	}
	if inner := b.store.Object(node, rdf2go.NewResource(sh.OneOrMorePath)); inner != nil {
		p, err := b.parsePath(inner)
		if err != nil {
			return nil, err
		}
		return &OneOrMorePath{Inner: p}, nil
	}
	if inner := b.store.Object(node, rdf2go.NewResource(sh.ZeroOrOnePath)); inner != nil {
		p, err := b.parsePath(inner)
		if err != nil {
			return nil, err
		}
		return &ZeroOrOnePath{Inner: p}, nil
	}
	if b.store.Object(node, rdf2go.NewResource(rdf.First)) != nil {
		elements, err := b.parsePathList(node)
		if err != nil {
			return nil, err
		}
		if len(elements) < 2 {
			return nil, fmt.Errorf("sequence path needs at least 2 elements: %w", ErrShapesGraph)
		}
		return &SequencePath{Elements: elements}, nil
	}
	if res, ok := node.(*rdf2go.Resource); ok {
		return &PredicatePath{IRI: res.URI}, nil
	}
	return nil, fmt.Errorf("blank node %s encodes no path operator: %w", node.String(), ErrShapesGraph)
}

func (b *builder) parsePathList(head rdf2go.Term) ([]Path, error) {
	elems, err := b.store.ListElements(head)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrShapesGraph)
	}
	out := make([]Path, 0, len(elems))
	for _, e := range elems {
		p, err := b.parsePath(e)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// invert pushes an inversion down to the predicate level, so resolution
// only ever inverts direct predicate steps.
func invert(p Path) Path {
	switch v := p.(type) {
	case *PredicatePath:
		return &InversePath{Inner: v}
	case *InversePath:
		return v.Inner
	case *SequencePath:
		reversed := make([]Path, len(v.Elements))
		for i, e := range v.Elements {
			reversed[len(v.Elements)-1-i] = invert(e)
		}
		return &SequencePath{Elements: reversed}
	case *AlternativePath:
		options := make([]Path, len(v.Options))
		for i, o := range v.Options {
			options[i] = invert(o)
		}
		return &AlternativePath{Options: options}
	case *ZeroOrMorePath:
		return &ZeroOrMorePath{Inner: invert(v.Inner)}
	case *OneOrMorePath:
		return &OneOrMorePath{Inner: invert(v.Inner)}
	case *ZeroOrOnePath:
		return &ZeroOrOnePath{Inner: invert(v.Inner)}
	default:
		return p
	}
}

// objects returns the parameter values for a predicate, sorted by term
// string. Graph iteration order is not stable, sorting keeps builds
// reproducible.
func (b *builder) objects(node rdf2go.Term, predicate string) []rdf2go.Term {
	values := b.store.Objects(node, rdf2go.NewResource(predicate))
	sort.Slice(values, func(i, j int) bool {
		return values[i].String() < values[j].String()
	})
	return values
}

// intValue reads an integer parameter. Every caller is a count or length
// bound, so negative values are rejected.
func (b *builder) intValue(node rdf2go.Term, predicate string) (int, bool, error) {
	v := b.store.Object(node, rdf2go.NewResource(predicate))
	if v == nil {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v.RawValue())
	if err != nil {
		return 0, false, fmt.Errorf("%s value %q is not an integer: %w", predicate, v.RawValue(), ErrShapesGraph)
	}
	if n < 0 {
		return 0, false, fmt.Errorf("%s value %d is negative: %w", predicate, n, ErrShapesGraph)
	}
	return n, true, nil
}
