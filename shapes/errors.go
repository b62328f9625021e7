package shapes

import "errors"

// Sentinel errors for shape building. All builder failures wrap
// ErrShapesGraph with a message naming the offending node.
var (
	// ErrShapesGraph indicates the shapes graph is structurally invalid:
	// a missing or duplicate sh:path, a bad parameter value, a malformed
	// list, or an unparseable path expression.
	ErrShapesGraph = errors.New("shapes: invalid shapes graph")

	// ErrUnknownParameter indicates an unrecognized SHACL predicate on a
	// shape node, reported only in strict mode.
	ErrUnknownParameter = errors.New("shapes: unknown constraint parameter")
)
