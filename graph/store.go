// Package graph wraps an rdf2go graph with the traversal operations the
// validator needs: pattern matching, RDF list walking, and reflexive
// class and property hierarchy closures.
package graph

import (
	"fmt"
	"sort"

	"github.com/deiu/rdf2go"

	"github.com/c360studio/semshacl/vocabulary/rdf"
)

// Store holds an RDF graph and answers the read-only queries used during
// shape building and validation. A Store is safe for concurrent readers
// once loading is complete.
type Store struct {
	g *rdf2go.Graph
}

// NewStore returns an empty store with the given base URI.
func NewStore(baseURI string) *Store {
	return &Store{g: rdf2go.NewGraph(baseURI)}
}

// Wrap adopts an existing rdf2go graph.
func Wrap(g *rdf2go.Graph) *Store {
	return &Store{g: g}
}

// Graph exposes the underlying rdf2go graph.
func (s *Store) Graph() *rdf2go.Graph {
	return s.g
}

// Len returns the number of triples in the store.
func (s *Store) Len() int {
	return s.g.Len()
}

// Add inserts a triple.
func (s *Store) Add(subject, predicate, object rdf2go.Term) {
	s.g.AddTriple(subject, predicate, object)
}

// Match returns all triples matching the pattern. Nil terms are wildcards.
func (s *Store) Match(subject, predicate, object rdf2go.Term) []*rdf2go.Triple {
	return s.g.All(subject, predicate, object)
}

// One returns a single triple matching the pattern, or nil.
func (s *Store) One(subject, predicate, object rdf2go.Term) *rdf2go.Triple {
	return s.g.One(subject, predicate, object)
}

// Objects returns the objects of all triples with the given subject and
// predicate, in graph order.
func (s *Store) Objects(subject, predicate rdf2go.Term) []rdf2go.Term {
	triples := s.g.All(subject, predicate, nil)
	out := make([]rdf2go.Term, 0, len(triples))
	for _, t := range triples {
		out = append(out, t.Object)
	}
	return out
}

// Object returns the object of one triple with the given subject and
// predicate, or nil when absent.
func (s *Store) Object(subject, predicate rdf2go.Term) rdf2go.Term {
	if t := s.g.One(subject, predicate, nil); t != nil {
		return t.Object
	}
	return nil
}

// Subjects returns the deduplicated subjects of all triples with the given
// predicate and object.
func (s *Store) Subjects(predicate, object rdf2go.Term) []rdf2go.Term {
	triples := s.g.All(nil, predicate, object)
	out := make([]rdf2go.Term, 0, len(triples))
	seen := make(map[string]bool, len(triples))
	for _, t := range triples {
		key := t.Subject.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t.Subject)
	}
	return out
}

// ListElements walks the RDF collection rooted at head and returns its
// elements in order. The empty list rdf:nil yields no elements. A node
// missing rdf:first or rdf:rest, or a cycle in the rest chain, returns
// ErrMalformedList.
func (s *Store) ListElements(head rdf2go.Term) ([]rdf2go.Term, error) {
	first := rdf2go.NewResource(rdf.First)
	rest := rdf2go.NewResource(rdf.Rest)
	nilTerm := rdf2go.NewResource(rdf.Nil)

	var out []rdf2go.Term
	visited := make(map[string]bool)
	cur := head
	for !cur.Equal(nilTerm) {
		key := cur.String()
		if visited[key] {
			return nil, fmt.Errorf("cycle at %s: %w", key, ErrMalformedList)
		}
		visited[key] = true

		elem := s.Object(cur, first)
		if elem == nil {
			return nil, fmt.Errorf("node %s has no rdf:first: %w", key, ErrMalformedList)
		}
		out = append(out, elem)

		next := s.Object(cur, rest)
		if next == nil {
			return nil, fmt.Errorf("node %s has no rdf:rest: %w", key, ErrMalformedList)
		}
		cur = next
	}
	return out, nil
}

// SubclassesOf returns the reflexive transitive closure of rdfs:subClassOf
// below class, sorted for determinism.
func (s *Store) SubclassesOf(class rdf2go.Term) []rdf2go.Term {
	return s.closure(class, rdf2go.NewResource(rdf.SubClassOf))
}

// SubpropertiesOf returns the reflexive transitive closure of
// rdfs:subPropertyOf below property, sorted for determinism.
func (s *Store) SubpropertiesOf(property rdf2go.Term) []rdf2go.Term {
	return s.closure(property, rdf2go.NewResource(rdf.SubPropertyOf))
}

func (s *Store) closure(root, predicate rdf2go.Term) []rdf2go.Term {
	seen := map[string]rdf2go.Term{root.String(): root}
	queue := []rdf2go.Term{root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, t := range s.g.All(nil, predicate, cur) {
			key := t.Subject.String()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = t.Subject
			queue = append(queue, t.Subject)
		}
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

// IsInstance reports whether node has an rdf:type that is class or any
// subclass of it.
func (s *Store) IsInstance(node, class rdf2go.Term) bool {
	typeTerm := rdf2go.NewResource(rdf.Type)
	for _, c := range s.SubclassesOf(class) {
		if s.g.One(node, typeTerm, c) != nil {
			return true
		}
	}
	return false
}

// InstancesOf returns the deduplicated subjects typed as class or any of
// its subclasses.
func (s *Store) InstancesOf(class rdf2go.Term) []rdf2go.Term {
	typeTerm := rdf2go.NewResource(rdf.Type)
	var out []rdf2go.Term
	seen := make(map[string]bool)
	for _, c := range s.SubclassesOf(class) {
		for _, t := range s.g.All(nil, typeTerm, c) {
			key := t.Subject.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, t.Subject)
		}
	}
	return out
}
