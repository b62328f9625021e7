package graph

import "errors"

// Sentinel errors for graph loading and traversal. Callers match with
// errors.Is after unwrapping the contextual message.
var (
	// ErrParse indicates the input could not be parsed in the requested format.
	ErrParse = errors.New("graph: parse failed")

	// ErrUnsupportedFormat indicates an unknown serialization format name.
	ErrUnsupportedFormat = errors.New("graph: unsupported format")

	// ErrMalformedList indicates an RDF collection without a well-formed
	// rdf:first/rdf:rest chain terminating in rdf:nil.
	ErrMalformedList = errors.New("graph: malformed RDF list")
)
