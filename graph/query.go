package graph

import "github.com/deiu/rdf2go"

// QuerySource is the optional SPARQL capability a data source can expose.
// Stores backed by a query engine implement it; the validator falls back
// to skipping SPARQL constraints when the data graph does not.
type QuerySource interface {
	// Select runs a SELECT query and returns one binding map per row,
	// keyed by variable name without the leading "?".
	Select(query string) ([]map[string]rdf2go.Term, error)

	// Ask runs an ASK query.
	Ask(query string) (bool, error)
}
