package validation

import (
	"strconv"
	"strings"

	"github.com/deiu/rdf2go"

	"github.com/c360studio/semshacl/vocabulary/rdf"
	"github.com/c360studio/semshacl/vocabulary/xsd"
)

// compareTerms orders two terms for range and property-pair constraints.
// Both must be literals. Values that both parse as numbers compare
// numerically, values that both fail to parse compare as strings, and a
// mix of the two is not comparable.
func compareTerms(a, b rdf2go.Term) (int, bool) {
	litA, okA := a.(*rdf2go.Literal)
	litB, okB := b.(*rdf2go.Literal)
	if !okA || !okB {
		return 0, false
	}

	numA, errA := strconv.ParseFloat(litA.Value, 64)
	numB, errB := strconv.ParseFloat(litB.Value, 64)
	switch {
	case errA == nil && errB == nil:
		switch {
		case numA < numB:
			return -1, true
		case numA > numB:
			return 1, true
		default:
			return 0, true
		}
	case errA != nil && errB != nil:
		return strings.Compare(litA.Value, litB.Value), true
	default:
		return 0, false
	}
}

func asLiteral(t rdf2go.Term) (*rdf2go.Literal, bool) {
	lit, ok := t.(*rdf2go.Literal)
	return lit, ok
}

// datatypeOf returns the effective datatype IRI of a literal: the declared
// datatype, rdf:langString for language-tagged literals, else xsd:string.
func datatypeOf(lit *rdf2go.Literal) string {
	if lit.Language != "" {
		return rdf.LangString
	}
	if lit.Datatype != nil {
		return lit.Datatype.RawValue()
	}
	return xsd.String
}

func isResource(t rdf2go.Term) bool {
	_, ok := t.(*rdf2go.Resource)
	return ok
}

func isBlankNode(t rdf2go.Term) bool {
	_, ok := t.(*rdf2go.BlankNode)
	return ok
}

// isNode reports whether t can appear in subject position, which rules
// out literals.
func isNode(t rdf2go.Term) bool {
	return !isLiteralTerm(t)
}

func isLiteralTerm(t rdf2go.Term) bool {
	_, ok := t.(*rdf2go.Literal)
	return ok
}

// languageMatches implements basic language range matching: an exact match
// or a subtag extension, so "en" admits "en-US".
func languageMatches(rangeTag, lang string) bool {
	rangeTag = strings.ToLower(rangeTag)
	lang = strings.ToLower(lang)
	return lang == rangeTag || strings.HasPrefix(lang, rangeTag+"-")
}
