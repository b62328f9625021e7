package shapes

import (
	"strings"

	"github.com/deiu/rdf2go"

	"github.com/c360studio/semshacl/graph"
)

// Path is a SHACL property path. Implementations are the seven path
// kinds from the SHACL path algebra.
type Path interface {
	// Resolve returns the value nodes reachable from focus over the path,
	// deduplicated in discovery order.
	Resolve(store *graph.Store, focus rdf2go.Term) []rdf2go.Term

	// String renders the path in SPARQL property path syntax.
	String() string
}

// PredicatePath follows a single predicate from subject to object.
type PredicatePath struct {
	IRI string
}

// InversePath follows the inner path from object to subject.
type InversePath struct {
	Inner Path
}

// SequencePath applies each element path to the results of the previous one.
type SequencePath struct {
	Elements []Path
}

// AlternativePath unions the results of its option paths.
type AlternativePath struct {
	Options []Path
}

// ZeroOrMorePath is the reflexive transitive closure of the inner path.
type ZeroOrMorePath struct {
	Inner Path
}

// OneOrMorePath is the transitive closure of the inner path.
type OneOrMorePath struct {
	Inner Path
}

// ZeroOrOnePath yields the focus node plus one step of the inner path.
type ZeroOrOnePath struct {
	Inner Path
}

func (p *PredicatePath) Resolve(store *graph.Store, focus rdf2go.Term) []rdf2go.Term {
	return dedup(store.Objects(focus, rdf2go.NewResource(p.IRI)))
}

func (p *PredicatePath) String() string {
	return "<" + p.IRI + ">"
}

func (p *InversePath) Resolve(store *graph.Store, focus rdf2go.Term) []rdf2go.Term {
	// Only predicate inversion has a direct index. Other inner paths are
	// inverted by rewriting, which the builder guarantees never produces.
	if pred, ok := p.Inner.(*PredicatePath); ok {
		return store.Subjects(rdf2go.NewResource(pred.IRI), focus)
	}
	return nil
}

func (p *InversePath) String() string {
	return "^" + p.Inner.String()
}

func (p *SequencePath) Resolve(store *graph.Store, focus rdf2go.Term) []rdf2go.Term {
	current := []rdf2go.Term{focus}
	for _, elem := range p.Elements {
		var next []rdf2go.Term
		seen := make(map[string]bool)
		for _, node := range current {
			for _, v := range elem.Resolve(store, node) {
				key := v.String()
				if seen[key] {
					continue
				}
				seen[key] = true
				next = append(next, v)
			}
		}
		current = next
		if len(current) == 0 {
			return nil
		}
	}
	return current
}

func (p *SequencePath) String() string {
	parts := make([]string, len(p.Elements))
	for i, e := range p.Elements {
		parts[i] = e.String()
	}
	return strings.Join(parts, "/")
}

func (p *AlternativePath) Resolve(store *graph.Store, focus rdf2go.Term) []rdf2go.Term {
	var out []rdf2go.Term
	seen := make(map[string]bool)
	for _, opt := range p.Options {
		for _, v := range opt.Resolve(store, focus) {
			key := v.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, v)
		}
	}
	return out
}

func (p *AlternativePath) String() string {
	parts := make([]string, len(p.Options))
	for i, o := range p.Options {
		parts[i] = o.String()
	}
	return "(" + strings.Join(parts, "|") + ")"
}

func (p *ZeroOrMorePath) Resolve(store *graph.Store, focus rdf2go.Term) []rdf2go.Term {
	out := []rdf2go.Term{focus}
	seen := map[string]bool{focus.String(): true}
	queue := []rdf2go.Term{focus}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, v := range p.Inner.Resolve(store, cur) {
			key := v.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, v)
			queue = append(queue, v)
		}
	}
	return out
}

func (p *ZeroOrMorePath) String() string {
	return p.Inner.String() + "*"
}

func (p *OneOrMorePath) Resolve(store *graph.Store, focus rdf2go.Term) []rdf2go.Term {
	var out []rdf2go.Term
	seen := make(map[string]bool)
	var queue []rdf2go.Term
	for _, v := range p.Inner.Resolve(store, focus) {
		key := v.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
		queue = append(queue, v)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, v := range p.Inner.Resolve(store, cur) {
			key := v.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, v)
			queue = append(queue, v)
		}
	}
	return out
}

func (p *OneOrMorePath) String() string {
	return p.Inner.String() + "+"
}

func (p *ZeroOrOnePath) Resolve(store *graph.Store, focus rdf2go.Term) []rdf2go.Term {
	out := []rdf2go.Term{focus}
	seen := map[string]bool{focus.String(): true}
	for _, v := range p.Inner.Resolve(store, focus) {
		key := v.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

func (p *ZeroOrOnePath) String() string {
	return p.Inner.String() + "?"
}

// DirectPredicates returns the predicate IRIs a path can emit as the first
// forward step from a focus node. Closed shapes use these to build the
// allowed-property set.
func DirectPredicates(p Path) []string {
	switch v := p.(type) {
	case *PredicatePath:
		return []string{v.IRI}
	case *SequencePath:
		if len(v.Elements) > 0 {
			return DirectPredicates(v.Elements[0])
		}
	case *AlternativePath:
		var out []string
		for _, o := range v.Options {
			out = append(out, DirectPredicates(o)...)
		}
		return out
	case *ZeroOrMorePath:
		return DirectPredicates(v.Inner)
	case *OneOrMorePath:
		return DirectPredicates(v.Inner)
	case *ZeroOrOnePath:
		return DirectPredicates(v.Inner)
	}
	return nil
}

func dedup(terms []rdf2go.Term) []rdf2go.Term {
	if len(terms) < 2 {
		return terms
	}
	out := terms[:0]
	seen := make(map[string]bool, len(terms))
	for _, t := range terms {
		key := t.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}
