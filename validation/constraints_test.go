package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semshacl/vocabulary/sh"
)

func componentsOf(report *Report) []string {
	out := make([]string, 0, len(report.Results))
	for _, r := range report.Results {
		out = append(out, r.Component)
	}
	return out
}

func TestPatternConstraint(t *testing.T) {
	shapesTurtle := `
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .

ex:S a sh:NodeShape ;
	sh:targetClass ex:Account ;
	sh:property [
		sh:path ex:handle ;
		sh:pattern "^@[a-z]+$" ;
	] .
`
	t.Run("violation", func(t *testing.T) {
		report := validate(t, shapesTurtle, `
@prefix ex: <http://example.org/> .
ex:a1 a ex:Account ; ex:handle "no-at-sign" .
`, Options{})
		require.Len(t, report.Results, 1)
		assert.Equal(t, sh.PatternConstraintComponent, report.Results[0].Component)
		assert.Equal(t, "Value does not match pattern: ^@[a-z]+$", report.Results[0].Messages[0])
	})

	t.Run("conforming", func(t *testing.T) {
		report := validate(t, shapesTurtle, `
@prefix ex: <http://example.org/> .
ex:a1 a ex:Account ; ex:handle "@alice" .
`, Options{})
		assert.True(t, report.Conforms)
	})

	t.Run("non-literal value", func(t *testing.T) {
		report := validate(t, shapesTurtle, `
@prefix ex: <http://example.org/> .
ex:a1 a ex:Account ; ex:handle ex:notALiteral .
`, Options{})
		require.Len(t, report.Results, 1)
		assert.Equal(t, sh.PatternConstraintComponent, report.Results[0].Component)
		assert.Equal(t, "Value is not a literal", report.Results[0].Messages[0])
	})
}

func TestStringLengthConstraints(t *testing.T) {
	report := validate(t, `
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .

ex:S a sh:NodeShape ;
	sh:targetClass ex:Account ;
	sh:property [
		sh:path ex:pin ;
		sh:minLength 4 ;
		sh:maxLength 6 ;
	] .
`, `
@prefix ex: <http://example.org/> .
ex:a1 a ex:Account ; ex:pin "12" .
ex:a2 a ex:Account ; ex:pin "1234567" .
ex:a3 a ex:Account ; ex:pin "1234" .
`, Options{})

	components := componentsOf(report)
	assert.Contains(t, components, sh.MinLengthConstraintComponent)
	assert.Contains(t, components, sh.MaxLengthConstraintComponent)
	assert.Len(t, report.Results, 2)
}

func TestDatatypeConstraint(t *testing.T) {
	report := validate(t, `
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
@prefix ex: <http://example.org/> .

ex:S a sh:NodeShape ;
	sh:targetClass ex:Thing ;
	sh:property [ sh:path ex:count ; sh:datatype xsd:integer ] .
`, `
@prefix ex: <http://example.org/> .
ex:t1 a ex:Thing ; ex:count "not a number" .
ex:t2 a ex:Thing ; ex:count ex:other .
`, Options{})

	require.Len(t, report.Results, 2)
	messages := []string{report.Results[0].Messages[0], report.Results[1].Messages[0]}
	assert.Contains(t, messages, "Value does not have datatype: http://www.w3.org/2001/XMLSchema#integer")
	assert.Contains(t, messages, "Value is not a literal")
}

func TestNodeKindConstraint(t *testing.T) {
	report := validate(t, `
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .

ex:S a sh:NodeShape ;
	sh:targetClass ex:Thing ;
	sh:property [ sh:path ex:ref ; sh:nodeKind sh:IRI ] .
`, `
@prefix ex: <http://example.org/> .
ex:t1 a ex:Thing ; ex:ref "literal value" .
ex:t2 a ex:Thing ; ex:ref ex:ok .
`, Options{})

	require.Len(t, report.Results, 1)
	assert.Equal(t, sh.NodeKindConstraintComponent, report.Results[0].Component)
	assert.Contains(t, report.Results[0].Messages[0], "does not have node kind")
}

func TestClassConstraintWithSubclass(t *testing.T) {
	report := validate(t, `
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .

ex:S a sh:NodeShape ;
	sh:targetClass ex:Kennel ;
	sh:property [ sh:path ex:resident ; sh:class ex:Animal ] .
`, `
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix ex: <http://example.org/> .
ex:Dog rdfs:subClassOf ex:Animal .
ex:k a ex:Kennel ; ex:resident ex:rex, ex:toaster .
ex:rex a ex:Dog .
ex:toaster a ex:Appliance .
`, Options{})

	require.Len(t, report.Results, 1)
	assert.Equal(t, "<http://example.org/toaster>", report.Results[0].Value.String())
}

func TestLanguageConstraints(t *testing.T) {
	report := validate(t, `
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .

ex:S a sh:NodeShape ;
	sh:targetClass ex:Doc ;
	sh:property [
		sh:path ex:label ;
		sh:languageIn ( "en" "de" ) ;
		sh:uniqueLang true ;
	] .
`, `
@prefix ex: <http://example.org/> .
ex:d a ex:Doc ;
	ex:label "hello"@en, "hi"@en-US, "bonjour"@fr, "servus"@de, "hallo"@de .
`, Options{})

	components := componentsOf(report)
	assert.Contains(t, components, sh.LanguageInConstraintComponent, "fr is not allowed")
	assert.Contains(t, components, sh.UniqueLangConstraintComponent, "de appears twice")
	assert.Len(t, report.Results, 2, "en-US matches the en range")
}

func TestInAndHasValue(t *testing.T) {
	report := validate(t, `
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .

ex:S a sh:NodeShape ;
	sh:targetClass ex:Order ;
	sh:property [
		sh:path ex:status ;
		sh:in ( "open" "closed" ) ;
	] ;
	sh:property [
		sh:path ex:kind ;
		sh:hasValue "standard" ;
	] .
`, `
@prefix ex: <http://example.org/> .
ex:o a ex:Order ; ex:status "pending" ; ex:kind "express" .
`, Options{})

	components := componentsOf(report)
	assert.Contains(t, components, sh.InConstraintComponent)
	assert.Contains(t, components, sh.HasValueConstraintComponent)
}

func TestPairConstraints(t *testing.T) {
	report := validate(t, `
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .

ex:S a sh:NodeShape ;
	sh:targetClass ex:Event ;
	sh:property [ sh:path ex:start ; sh:lessThan ex:end ] ;
	sh:property [ sh:path ex:alias ; sh:disjoint ex:name ] ;
	sh:property [ sh:path ex:name ; sh:equals ex:title ] .
`, `
@prefix ex: <http://example.org/> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
ex:e a ex:Event ;
	ex:start "10"^^xsd:integer ;
	ex:end "5"^^xsd:integer ;
	ex:alias "launch" ;
	ex:name "launch" ;
	ex:title "Launch Day" .
`, Options{})

	components := componentsOf(report)
	assert.Contains(t, components, sh.LessThanConstraintComponent)
	assert.Contains(t, components, sh.DisjointConstraintComponent)
	assert.Contains(t, components, sh.EqualsConstraintComponent)
}

func TestLogicalConstraints(t *testing.T) {
	shapesTurtle := `
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
@prefix ex: <http://example.org/> .

ex:HasName a sh:NodeShape ;
	sh:property [ sh:path ex:name ; sh:minCount 1 ] .

ex:HasLabel a sh:NodeShape ;
	sh:property [ sh:path ex:label ; sh:minCount 1 ] .

ex:OrShape a sh:NodeShape ;
	sh:targetClass ex:OrThing ;
	sh:or ( ex:HasName ex:HasLabel ) .

ex:XoneShape a sh:NodeShape ;
	sh:targetClass ex:XoneThing ;
	sh:xone ( ex:HasName ex:HasLabel ) .

ex:NotShape a sh:NodeShape ;
	sh:targetClass ex:NotThing ;
	sh:not ex:HasName .
`
	t.Run("or fails when no member conforms", func(t *testing.T) {
		report := validate(t, shapesTurtle, `
@prefix ex: <http://example.org/> .
ex:x a ex:OrThing .
`, Options{})
		require.Len(t, report.Results, 1)
		result := report.Results[0]
		assert.Equal(t, sh.OrConstraintComponent, result.Component)
		assert.Equal(t, "Value does not conform to any shape in sh:or", result.Messages[0])
		assert.NotEmpty(t, result.Details, "nested failures are attached")
	})

	t.Run("or conforms with one member", func(t *testing.T) {
		report := validate(t, shapesTurtle, `
@prefix ex: <http://example.org/> .
ex:x a ex:OrThing ; ex:label "ok" .
`, Options{})
		assert.True(t, report.Conforms)
	})

	t.Run("xone fails on two conforming members", func(t *testing.T) {
		report := validate(t, shapesTurtle, `
@prefix ex: <http://example.org/> .
ex:x a ex:XoneThing ; ex:name "n" ; ex:label "l" .
`, Options{})
		require.Len(t, report.Results, 1)
		assert.Equal(t, sh.XoneConstraintComponent, report.Results[0].Component)
		assert.Contains(t, report.Results[0].Messages[0], "conforms to 2 shapes")
	})

	t.Run("xone conforms with exactly one", func(t *testing.T) {
		report := validate(t, shapesTurtle, `
@prefix ex: <http://example.org/> .
ex:x a ex:XoneThing ; ex:name "n" .
`, Options{})
		assert.True(t, report.Conforms)
	})

	t.Run("not fails when inner conforms", func(t *testing.T) {
		report := validate(t, shapesTurtle, `
@prefix ex: <http://example.org/> .
ex:x a ex:NotThing ; ex:name "n" .
`, Options{})
		require.Len(t, report.Results, 1)
		assert.Equal(t, sh.NotConstraintComponent, report.Results[0].Component)
	})
}

func TestQualifiedValueShape(t *testing.T) {
	shapesTurtle := `
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .

ex:TeamShape a sh:NodeShape ;
	sh:targetClass ex:Team ;
	sh:property [
		sh:path ex:member ;
		sh:qualifiedValueShape [ sh:class ex:Manager ] ;
		sh:qualifiedMinCount 1 ;
	] .
`
	t.Run("violation", func(t *testing.T) {
		report := validate(t, shapesTurtle, `
@prefix ex: <http://example.org/> .
ex:t a ex:Team ; ex:member ex:bob .
ex:bob a ex:Engineer .
`, Options{})
		require.Len(t, report.Results, 1)
		assert.Equal(t, sh.QualifiedMinCountConstraintComponent, report.Results[0].Component)
		assert.Equal(t, "Qualified value shape: 0 values conform (min: 1)", report.Results[0].Messages[0])
	})

	t.Run("conforming", func(t *testing.T) {
		report := validate(t, shapesTurtle, `
@prefix ex: <http://example.org/> .
ex:t a ex:Team ; ex:member ex:ann .
ex:ann a ex:Manager .
`, Options{})
		assert.True(t, report.Conforms)
	})
}

func TestQualifiedDisjointClaiming(t *testing.T) {
	// One person holds both roles. With disjoint qualified shapes the
	// earlier declaration claims the node, so the later one fails.
	report := validate(t, `
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .

ex:CrewShape a sh:NodeShape ;
	sh:targetClass ex:Crew ;
	sh:property [
		sh:path ex:member ;
		sh:name "captain slot" ;
		sh:qualifiedValueShape [ sh:class ex:Captain ] ;
		sh:qualifiedMinCount 1 ;
		sh:qualifiedValueShapesDisjoint true ;
	] ;
	sh:property [
		sh:path ex:member ;
		sh:name "medic slot" ;
		sh:qualifiedValueShape [ sh:class ex:Medic ] ;
		sh:qualifiedMinCount 1 ;
		sh:qualifiedValueShapesDisjoint true ;
	] .
`, `
@prefix ex: <http://example.org/> .
ex:c a ex:Crew ; ex:member ex:solo .
ex:solo a ex:Captain, ex:Medic .
`, Options{})

	assert.False(t, report.Conforms)
	require.Len(t, report.Results, 1, "only one slot can claim the shared member")
	assert.Equal(t, sh.QualifiedMinCountConstraintComponent, report.Results[0].Component)
}

func TestSequencePathValidation(t *testing.T) {
	report := validate(t, `
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .

ex:S a sh:NodeShape ;
	sh:targetClass ex:Person ;
	sh:property [
		sh:path ( ex:address ex:zip ) ;
		sh:minCount 1 ;
	] .
`, `
@prefix ex: <http://example.org/> .
ex:p1 a ex:Person ; ex:address ex:a1 .
ex:a1 ex:zip "12345" .
ex:p2 a ex:Person ; ex:address ex:a2 .
ex:a2 ex:city "Springfield" .
`, Options{})

	require.Len(t, report.Results, 1)
	assert.Equal(t, "<http://example.org/p2>", report.Results[0].FocusNode.String())
}

func TestRangeBoundaries(t *testing.T) {
	shapesTurtle := `
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
@prefix ex: <http://example.org/> .

ex:S a sh:NodeShape ;
	sh:targetClass ex:Reading ;
	sh:property [
		sh:path ex:value ;
		sh:minExclusive 0 ;
		sh:maxInclusive 100 ;
	] .
`
	t.Run("boundaries", func(t *testing.T) {
		report := validate(t, shapesTurtle, `
@prefix ex: <http://example.org/> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
ex:r1 a ex:Reading ; ex:value "0"^^xsd:integer .
ex:r2 a ex:Reading ; ex:value "100"^^xsd:integer .
ex:r3 a ex:Reading ; ex:value "101"^^xsd:integer .
`, Options{})

		var focuses []string
		for _, r := range report.Results {
			focuses = append(focuses, r.FocusNode.String())
		}
		assert.Contains(t, focuses, "<http://example.org/r1>", "0 fails exclusive minimum")
		assert.NotContains(t, focuses, "<http://example.org/r2>", "100 passes inclusive maximum")
		assert.Contains(t, focuses, "<http://example.org/r3>")
	})

	t.Run("non-comparable value", func(t *testing.T) {
		report := validate(t, shapesTurtle, `
@prefix ex: <http://example.org/> .
ex:r a ex:Reading ; ex:value "abc" .
`, Options{})
		assert.False(t, report.Conforms, "mixed numeric and string comparison fails")
	})
}

func TestInversePathValidation(t *testing.T) {
	report := validate(t, `
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .

ex:S a sh:NodeShape ;
	sh:targetClass ex:Child ;
	sh:property [
		sh:path [ sh:inversePath ex:parentOf ] ;
		sh:minCount 1 ;
	] .
`, `
@prefix ex: <http://example.org/> .
ex:kid a ex:Child .
ex:orphan a ex:Child .
ex:dad ex:parentOf ex:kid .
`, Options{})

	require.Len(t, report.Results, 1)
	assert.Equal(t, "<http://example.org/orphan>", report.Results[0].FocusNode.String())
}

func TestShapeMessagesMerged(t *testing.T) {
	report := validate(t, `
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .

ex:S a sh:NodeShape ;
	sh:targetClass ex:Person ;
	sh:property [
		sh:path ex:name ;
		sh:minCount 1 ;
		sh:message "Every person needs a name" ;
	] .
`, `
@prefix ex: <http://example.org/> .
ex:p a ex:Person .
`, Options{})

	require.Len(t, report.Results, 1)
	messages := report.Results[0].Messages
	require.Len(t, messages, 2)
	assert.Equal(t, "Property has 0 values (min: 1)", messages[0])
	assert.Equal(t, "Every person needs a name", messages[1])
}
