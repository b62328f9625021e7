package graph

import (
	"errors"
	"testing"

	"github.com/deiu/rdf2go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semshacl/vocabulary/rdf"
)

const hierarchyTurtle = `
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix ex: <http://example.org/> .

ex:Student rdfs:subClassOf ex:Person .
ex:GradStudent rdfs:subClassOf ex:Student .
ex:alice a ex:GradStudent .
ex:bob a ex:Person .
`

func TestLoadString(t *testing.T) {
	t.Run("turtle", func(t *testing.T) {
		store, err := LoadString(hierarchyTurtle, "turtle", "")
		require.NoError(t, err)
		assert.Equal(t, 4, store.Len())
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := LoadString("{}", "rdfxml", "")
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("parse failure", func(t *testing.T) {
		_, err := LoadString("@prefix broken", "turtle", "")
		assert.ErrorIs(t, err, ErrParse)
	})
}

func TestMIMEType(t *testing.T) {
	for _, name := range []string{"ttl", "turtle", "nt", ".ttl", "TTL"} {
		mime, err := MIMEType(name)
		require.NoError(t, err, name)
		assert.Equal(t, "text/turtle", mime)
	}
	mime, err := MIMEType("jsonld")
	require.NoError(t, err)
	assert.Equal(t, "application/ld+json", mime)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, "ttl", FormatForPath("data/shapes.ttl"))
	assert.Equal(t, "jsonld", FormatForPath("graph.jsonld"))
	assert.Equal(t, "turtle", FormatForPath("README"))
	assert.Equal(t, "turtle", FormatForPath("weird.xyz"))
}

func TestSubclassesOf(t *testing.T) {
	store, err := LoadString(hierarchyTurtle, "turtle", "")
	require.NoError(t, err)

	classes := store.SubclassesOf(rdf2go.NewResource("http://example.org/Person"))
	require.Len(t, classes, 3)

	names := make([]string, 0, len(classes))
	for _, c := range classes {
		names = append(names, c.RawValue())
	}
	assert.Contains(t, names, "http://example.org/Person")
	assert.Contains(t, names, "http://example.org/Student")
	assert.Contains(t, names, "http://example.org/GradStudent")
}

func TestIsInstance(t *testing.T) {
	store, err := LoadString(hierarchyTurtle, "turtle", "")
	require.NoError(t, err)

	alice := rdf2go.NewResource("http://example.org/alice")
	person := rdf2go.NewResource("http://example.org/Person")
	student := rdf2go.NewResource("http://example.org/Student")

	assert.True(t, store.IsInstance(alice, person), "instance via two-level subclass")
	assert.True(t, store.IsInstance(alice, student))
	assert.False(t, store.IsInstance(rdf2go.NewResource("http://example.org/bob"), student))
}

func TestInstancesOf(t *testing.T) {
	store, err := LoadString(hierarchyTurtle, "turtle", "")
	require.NoError(t, err)

	people := store.InstancesOf(rdf2go.NewResource("http://example.org/Person"))
	assert.Len(t, people, 2)
}

func TestListElements(t *testing.T) {
	t.Run("well-formed", func(t *testing.T) {
		store, err := LoadString(`
@prefix ex: <http://example.org/> .
ex:s ex:list ( "a" "b" "c" ) .
`, "turtle", "")
		require.NoError(t, err)

		head := store.Object(
			rdf2go.NewResource("http://example.org/s"),
			rdf2go.NewResource("http://example.org/list"),
		)
		require.NotNil(t, head)

		elems, err := store.ListElements(head)
		require.NoError(t, err)
		require.Len(t, elems, 3)
		assert.Equal(t, "a", elems[0].RawValue())
		assert.Equal(t, "c", elems[2].RawValue())
	})

	t.Run("empty list", func(t *testing.T) {
		store := NewStore("")
		elems, err := store.ListElements(rdf2go.NewResource(rdf.Nil))
		require.NoError(t, err)
		assert.Empty(t, elems)
	})

	t.Run("missing rest", func(t *testing.T) {
		store := NewStore("")
		head := rdf2go.NewBlankNode("b0")
		store.Add(head, rdf2go.NewResource(rdf.First), rdf2go.NewLiteral("a"))

		_, err := store.ListElements(head)
		assert.ErrorIs(t, err, ErrMalformedList)
	})

	t.Run("cycle", func(t *testing.T) {
		store := NewStore("")
		head := rdf2go.NewBlankNode("b0")
		store.Add(head, rdf2go.NewResource(rdf.First), rdf2go.NewLiteral("a"))
		store.Add(head, rdf2go.NewResource(rdf.Rest), head)

		_, err := store.ListElements(head)
		assert.ErrorIs(t, err, ErrMalformedList)
	})
}

func TestSubjects(t *testing.T) {
	store, err := LoadString(hierarchyTurtle, "turtle", "")
	require.NoError(t, err)

	subjects := store.Subjects(rdf2go.NewResource(rdf.Type), nil)
	assert.Len(t, subjects, 2, "deduplicated subjects")
}

func TestErrUnwrapping(t *testing.T) {
	_, err := MIMEType("bogus")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
