package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/deiu/rdf2go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semshacl/graph"
	"github.com/c360studio/semshacl/shapes"
)

type fakeQuerySource struct {
	selectRows []map[string]rdf2go.Term
	askResult  bool
	err        error

	lastQuery string
}

func (f *fakeQuerySource) Select(query string) ([]map[string]rdf2go.Term, error) {
	f.lastQuery = query
	return f.selectRows, f.err
}

func (f *fakeQuerySource) Ask(query string) (bool, error) {
	f.lastQuery = query
	return f.askResult, f.err
}

const sparqlShapes = `
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .

ex:S a sh:NodeShape ;
	sh:targetClass ex:Person ;
	sh:sparql [
		sh:message "Person {$this} has a bad value {?value}" ;
		sh:prefixes [ sh:declare [ sh:prefix "ex" ; sh:namespace "http://example.org/" ] ] ;
		sh:select "SELECT ?value WHERE { $this ex:bad ?value }" ;
	] .
`

const sparqlData = `
@prefix ex: <http://example.org/> .
ex:p a ex:Person .
`

func validateWithQuery(t *testing.T, shapesTurtle, dataTurtle string, query graph.QuerySource) *Report {
	t.Helper()
	shapesStore, err := graph.LoadString(shapesTurtle, "turtle", "")
	require.NoError(t, err)
	schema, err := shapes.Build(shapesStore)
	require.NoError(t, err)
	dataStore, err := graph.LoadString(dataTurtle, "turtle", "")
	require.NoError(t, err)
	report, err := New(schema, Options{}, nil).ValidateDataset(context.Background(), dataStore, query)
	require.NoError(t, err)
	return report
}

func TestSPARQLSelectConstraint(t *testing.T) {
	t.Run("rows become violations", func(t *testing.T) {
		source := &fakeQuerySource{
			selectRows: []map[string]rdf2go.Term{
				{"value": rdf2go.NewLiteral("oops")},
			},
		}
		report := validateWithQuery(t, sparqlShapes, sparqlData, source)

		require.Len(t, report.Results, 1)
		result := report.Results[0]
		assert.Equal(t, "Person http://example.org/p has a bad value oops", result.Messages[0])
		require.NotNil(t, result.Value)
		assert.Equal(t, "oops", result.Value.RawValue())

		assert.Contains(t, source.lastQuery, "PREFIX ex: <http://example.org/>")
		assert.Contains(t, source.lastQuery, "<http://example.org/p> ex:bad ?value")
	})

	t.Run("no rows conforms", func(t *testing.T) {
		report := validateWithQuery(t, sparqlShapes, sparqlData, &fakeQuerySource{})
		assert.True(t, report.Conforms)
	})

	t.Run("execution error becomes a result", func(t *testing.T) {
		source := &fakeQuerySource{err: errors.New("endpoint unreachable")}
		report := validateWithQuery(t, sparqlShapes, sparqlData, source)
		require.Len(t, report.Results, 1)
		assert.Contains(t, report.Results[0].Messages[0], "SPARQL execution error")
	})

	t.Run("skipped without query source", func(t *testing.T) {
		report := validate(t, sparqlShapes, sparqlData, Options{})
		assert.True(t, report.Conforms)
	})
}

func TestSPARQLAskConstraint(t *testing.T) {
	askShapes := `
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .

ex:S a sh:NodeShape ;
	sh:targetClass ex:Person ;
	sh:sparql [
		sh:ask "ASK { $this ex:verified true }" ;
	] .
`
	t.Run("false is a violation", func(t *testing.T) {
		report := validateWithQuery(t, askShapes, sparqlData, &fakeQuerySource{askResult: false})
		require.Len(t, report.Results, 1)
		assert.Equal(t, "SPARQL ASK constraint violation", report.Results[0].Messages[0])
	})

	t.Run("true conforms", func(t *testing.T) {
		report := validateWithQuery(t, askShapes, sparqlData, &fakeQuerySource{askResult: true})
		assert.True(t, report.Conforms)
	})
}
