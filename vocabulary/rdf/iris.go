// Package rdf defines IRI constants from the RDF and RDFS vocabularies
// needed for shape discovery, list traversal, and class hierarchy walks.
package rdf

// Namespace is the base IRI of the RDF vocabulary.
const Namespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

// RDFSNamespace is the base IRI of the RDF Schema vocabulary.
const RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"

// RDF terms.
const (
	Type  = Namespace + "type"
	First = Namespace + "first"
	Rest  = Namespace + "rest"
	Nil   = Namespace + "nil"

	// LangString is the datatype of language-tagged literals.
	LangString = Namespace + "langString"
)

// RDFS terms.
const (
	Class         = RDFSNamespace + "Class"
	SubClassOf    = RDFSNamespace + "subClassOf"
	SubPropertyOf = RDFSNamespace + "subPropertyOf"
	Label         = RDFSNamespace + "label"
	Comment       = RDFSNamespace + "comment"
)
