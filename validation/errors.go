package validation

import "errors"

// Engine limit errors. These abort a run, unlike constraint violations,
// which are reported in the validation report.
var (
	// ErrMaxDepth indicates shape evaluation nested deeper than
	// Options.MaxDepth allows.
	ErrMaxDepth = errors.New("validation: max recursion depth exceeded")

	// ErrMaxResults indicates a run produced more results than
	// Options.MaxResults allows.
	ErrMaxResults = errors.New("validation: max result count exceeded")
)
