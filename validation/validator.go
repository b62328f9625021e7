// Package validation evaluates a shape schema against a data graph and
// produces a validation report.
package validation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/deiu/rdf2go"
	"golang.org/x/sync/errgroup"

	"github.com/c360studio/semshacl/graph"
	"github.com/c360studio/semshacl/shapes"
	"github.com/c360studio/semshacl/vocabulary/sh"
)

// RecursionPolicy controls what happens when shape evaluation revisits a
// (focus node, shape) pair already on the evaluation stack.
type RecursionPolicy int

const (
	// RecursionConform treats the revisited pair as conforming and moves
	// on. This is the default.
	RecursionConform RecursionPolicy = iota

	// RecursionWarn additionally emits an sh:Info result noting the
	// skipped re-evaluation.
	RecursionWarn
)

// Options tunes a validation run.
type Options struct {
	// MaxDepth bounds nested shape evaluation. Exceeding it aborts the
	// run with ErrMaxDepth.
	MaxDepth int

	// MaxResults bounds the number of top-level results. Exceeding it
	// aborts the run with ErrMaxResults.
	MaxResults int

	// SeverityThreshold is the lowest severity IRI that affects
	// conformance. The default, sh:Info, counts every result.
	SeverityThreshold string

	// Workers is the number of concurrent (focus node, shape) evaluations.
	Workers int

	RecursionPolicy RecursionPolicy
}

// DefaultOptions returns the limits used when a zero Options is given.
func DefaultOptions() Options {
	return Options{
		MaxDepth:          50,
		MaxResults:        10000,
		SeverityThreshold: sh.Info,
		Workers:           1,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxDepth <= 0 {
		o.MaxDepth = def.MaxDepth
	}
	if o.MaxResults <= 0 {
		o.MaxResults = def.MaxResults
	}
	if o.SeverityThreshold == "" {
		o.SeverityThreshold = def.SeverityThreshold
	}
	if o.Workers <= 0 {
		o.Workers = def.Workers
	}
	return o
}

// Validator evaluates one shape schema. It is safe for concurrent use and
// can be reused across data graphs.
type Validator struct {
	schema *shapes.Schema
	opts   Options
	log    *slog.Logger
}

// New returns a validator for the schema. A nil logger falls back to
// slog.Default.
func New(schema *shapes.Schema, opts Options, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		schema: schema,
		opts:   opts.withDefaults(),
		log:    logger.With("component", "validator"),
	}
}

// Validate runs every targeted shape against the data graph.
func (v *Validator) Validate(ctx context.Context, data *graph.Store) (*Report, error) {
	return v.ValidateDataset(ctx, data, nil)
}

// ValidateDataset validates a data graph that additionally exposes a
// SPARQL query capability. SPARQL constraints are skipped when query is
// nil.
func (v *Validator) ValidateDataset(ctx context.Context, data *graph.Store, query graph.QuerySource) (*Report, error) {
	rc := &run{
		v:       v,
		data:    data,
		query:   query,
		memo:    make(map[string][]*Result),
		targets: make(map[string][]rdf2go.Term),
	}

	type task struct {
		shape *shapes.Shape
		focus rdf2go.Term
	}
	var tasks []task
	for _, shape := range v.schema.TargetedShapes() {
		if shape.Deactivated {
			v.log.Debug("skipping deactivated shape", "shape", shape.ID)
			continue
		}
		for _, focus := range rc.focusNodes(shape) {
			tasks = append(tasks, task{shape: shape, focus: focus})
		}
	}
	v.log.Debug("validation run starting",
		"shapes", len(v.schema.TargetedShapes()),
		"tasks", len(tasks),
		"workers", v.opts.Workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.opts.Workers)
	for _, t := range tasks {
		t := t
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			st := &state{inProgress: make(map[string]bool)}
			results, err := rc.validateShape(t.shape, t.focus, st, nil)
			if err != nil {
				return err
			}
			return rc.collect(results)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortResults(rc.results)
	report := &Report{
		Conforms: v.conforms(rc.results),
		Results:  rc.results,
	}
	v.log.Debug("validation run finished", "conforms", report.Conforms, "results", len(report.Results))
	return report, nil
}

func (v *Validator) conforms(results []*Result) bool {
	threshold := severityRank(v.opts.SeverityThreshold)
	for _, r := range results {
		if r.note {
			continue
		}
		if severityRank(r.Severity) >= threshold {
			return false
		}
	}
	return true
}

// Conforms validates and reports only the conformance flag.
func Conforms(ctx context.Context, schema *shapes.Schema, data *graph.Store) (bool, error) {
	report, err := New(schema, Options{}, nil).Validate(ctx, data)
	if err != nil {
		return false, err
	}
	return report.Conforms, nil
}

// run holds the shared state of one validation run.
type run struct {
	v     *Validator
	data  *graph.Store
	query graph.QuerySource

	mu      sync.Mutex
	results []*Result
	memo    map[string][]*Result
	targets map[string][]rdf2go.Term
}

// state is the per-task evaluation stack: recursion depth and the
// (focus, shape) pairs currently being evaluated.
type state struct {
	depth      int
	inProgress map[string]bool

	// cycles counts recursion cutoffs in the current subtree, which
	// blocks memoization of cycle-tainted outcomes.
	cycles int
}

func (rc *run) collect(results []*Result) error {
	if len(results) == 0 {
		return nil
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.results = append(rc.results, results...)
	if len(rc.results) > rc.v.opts.MaxResults {
		return fmt.Errorf("%d results: %w", len(rc.results), ErrMaxResults)
	}
	return nil
}

// focusNodes resolves a shape's targets, caching per target declaration so
// shapes sharing a target class resolve it once.
func (rc *run) focusNodes(shape *shapes.Shape) []rdf2go.Term {
	var out []rdf2go.Term
	seen := make(map[string]bool)
	for _, target := range shape.Targets {
		for _, node := range rc.resolveTarget(target) {
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

func (rc *run) resolveTarget(target shapes.Target) []rdf2go.Term {
	key := target.Kind.String() + "|" + target.Value.String()
	rc.mu.Lock()
	cached, ok := rc.targets[key]
	rc.mu.Unlock()
	if ok {
		return cached
	}
	nodes := target.Resolve(rc.data)
	rc.mu.Lock()
	rc.targets[key] = nodes
	rc.mu.Unlock()
	return nodes
}

// nested evaluates a shape at a focus node for shape-based constraints,
// memoizing outcomes that completed without hitting a recursion cutoff.
func (rc *run) nested(shape *shapes.Shape, focus rdf2go.Term, st *state) ([]*Result, error) {
	key := focus.String() + "|" + shape.ID
	rc.mu.Lock()
	cached, ok := rc.memo[key]
	rc.mu.Unlock()
	if ok {
		return cached, nil
	}

	before := st.cycles
	results, err := rc.validateShape(shape, focus, st, nil)
	if err != nil {
		return nil, err
	}
	if st.cycles == before {
		rc.mu.Lock()
		rc.memo[key] = results
		rc.mu.Unlock()
	}
	return results, nil
}

// conformsTo reports whether a focus node conforms to a shape.
func (rc *run) conformsTo(shape *shapes.Shape, focus rdf2go.Term, st *state) (bool, error) {
	results, err := rc.nested(shape, focus, st)
	if err != nil {
		return false, err
	}
	return !hasViolations(results), nil
}
