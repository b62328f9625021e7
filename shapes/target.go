package shapes

import (
	"github.com/deiu/rdf2go"

	"github.com/c360studio/semshacl/graph"
	"github.com/c360studio/semshacl/vocabulary/rdf"
)

// TargetKind discriminates the target declarations a shape can carry.
type TargetKind int

const (
	// TargetClass selects all instances of a class, including instances
	// of its rdfs:subClassOf descendants.
	TargetClass TargetKind = iota

	// TargetNode selects a single named node, present in the data or not.
	TargetNode

	// TargetSubjectsOf selects the subjects of triples with a predicate or
	// any of its rdfs:subPropertyOf descendants.
	TargetSubjectsOf

	// TargetObjectsOf selects the objects of triples with a predicate or
	// any of its rdfs:subPropertyOf descendants.
	TargetObjectsOf

	// TargetImplicitClass selects instances of the shape itself, used when
	// a shape is also declared an rdfs:Class.
	TargetImplicitClass
)

func (k TargetKind) String() string {
	switch k {
	case TargetClass:
		return "targetClass"
	case TargetNode:
		return "targetNode"
	case TargetSubjectsOf:
		return "targetSubjectsOf"
	case TargetObjectsOf:
		return "targetObjectsOf"
	case TargetImplicitClass:
		return "implicitClass"
	default:
		return "unknown"
	}
}

// Target is one target declaration on a shape.
type Target struct {
	Kind TargetKind

	// Value is the class, node, or predicate term the declaration names.
	Value rdf2go.Term
}

// Resolve returns the focus nodes the target selects in the data graph,
// deduplicated in discovery order.
func (t Target) Resolve(store *graph.Store) []rdf2go.Term {
	switch t.Kind {
	case TargetClass, TargetImplicitClass:
		return store.InstancesOf(t.Value)
	case TargetNode:
		return []rdf2go.Term{t.Value}
	case TargetSubjectsOf:
		var out []rdf2go.Term
		seen := make(map[string]bool)
		for _, pred := range store.SubpropertiesOf(t.Value) {
			for _, s := range store.Subjects(pred, nil) {
				key := s.String()
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, s)
			}
		}
		return out
	case TargetObjectsOf:
		var out []rdf2go.Term
		seen := make(map[string]bool)
		for _, pred := range store.SubpropertiesOf(t.Value) {
			for _, v := range store.Objects(nil, pred) {
				key := v.String()
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, v)
			}
		}
		return out
	default:
		return nil
	}
}

// FocusNodes resolves every target of a shape into one deduplicated focus
// node list, preserving target declaration order.
func FocusNodes(store *graph.Store, targets []Target) []rdf2go.Term {
	var out []rdf2go.Term
	seen := make(map[string]bool)
	for _, t := range targets {
		for _, node := range t.Resolve(store) {
			key := node.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, node)
		}
	}
	return out
}

// isImplicitClassShape reports whether the shape node is dual-typed as an
// rdfs:Class, which makes the shape target its own instances.
func isImplicitClassShape(store *graph.Store, shapeNode rdf2go.Term) bool {
	return store.One(shapeNode, rdf2go.NewResource(rdf.Type), rdf2go.NewResource(rdf.Class)) != nil
}
