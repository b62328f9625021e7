package sh

import "github.com/deiu/rdf2go"

// Namespace is the base IRI of the SHACL vocabulary.
const Namespace = "http://www.w3.org/ns/shacl#"

// Shape classes.
const (
	// Shape is the abstract superclass of node and property shapes.
	Shape = Namespace + "Shape"

	// NodeShape declares a shape that applies directly to focus nodes.
	NodeShape = Namespace + "NodeShape"

	// PropertyShape declares a shape that applies to the values of a path.
	PropertyShape = Namespace + "PropertyShape"
)

// Shape metadata predicates.
const (
	Name        = Namespace + "name"
	Description = Namespace + "description"
	Message     = Namespace + "message"
	Severity    = Namespace + "severity"
	Deactivated = Namespace + "deactivated"
	Property    = Namespace + "property"
)

// Target predicates.
const (
	TargetClass      = Namespace + "targetClass"
	TargetNode       = Namespace + "targetNode"
	TargetSubjectsOf = Namespace + "targetSubjectsOf"
	TargetObjectsOf  = Namespace + "targetObjectsOf"
	Target           = Namespace + "target"
)

// Path predicates.
const (
	Path            = Namespace + "path"
	InversePath     = Namespace + "inversePath"
	AlternativePath = Namespace + "alternativePath"
	ZeroOrMorePath  = Namespace + "zeroOrMorePath"
	OneOrMorePath   = Namespace + "oneOrMorePath"
	ZeroOrOnePath   = Namespace + "zeroOrOnePath"
)

// Constraint parameter predicates.
const (
	Class                       = Namespace + "class"
	Datatype                    = Namespace + "datatype"
	NodeKindParam               = Namespace + "nodeKind"
	MinCount                    = Namespace + "minCount"
	MaxCount                    = Namespace + "maxCount"
	MinExclusive                = Namespace + "minExclusive"
	MinInclusive                = Namespace + "minInclusive"
	MaxExclusive                = Namespace + "maxExclusive"
	MaxInclusive                = Namespace + "maxInclusive"
	MinLength                   = Namespace + "minLength"
	MaxLength                   = Namespace + "maxLength"
	Pattern                     = Namespace + "pattern"
	Flags                       = Namespace + "flags"
	LanguageIn                  = Namespace + "languageIn"
	UniqueLang                  = Namespace + "uniqueLang"
	Equals                      = Namespace + "equals"
	Disjoint                    = Namespace + "disjoint"
	LessThan                    = Namespace + "lessThan"
	LessThanOrEquals            = Namespace + "lessThanOrEquals"
	HasValue                    = Namespace + "hasValue"
	In                          = Namespace + "in"
	Node                        = Namespace + "node"
	Closed                      = Namespace + "closed"
	IgnoredProperties           = Namespace + "ignoredProperties"
	QualifiedValueShape         = Namespace + "qualifiedValueShape"
	QualifiedMinCount           = Namespace + "qualifiedMinCount"
	QualifiedMaxCount           = Namespace + "qualifiedMaxCount"
	QualifiedValueShapesDisjoint = Namespace + "qualifiedValueShapesDisjoint"
	And                         = Namespace + "and"
	Or                          = Namespace + "or"
	Not                         = Namespace + "not"
	Xone                        = Namespace + "xone"
)

// SPARQL-based constraint predicates.
const (
	SPARQL    = Namespace + "sparql"
	Select    = Namespace + "select"
	Ask       = Namespace + "ask"
	Prefixes  = Namespace + "prefixes"
	Declare   = Namespace + "declare"
	Prefix    = Namespace + "prefix"
	NamespaceDecl = Namespace + "namespace"
)

// Node kind values.
const (
	BlankNode          = Namespace + "BlankNode"
	IRI                = Namespace + "IRI"
	Literal            = Namespace + "Literal"
	BlankNodeOrIRI     = Namespace + "BlankNodeOrIRI"
	BlankNodeOrLiteral = Namespace + "BlankNodeOrLiteral"
	IRIOrLiteral       = Namespace + "IRIOrLiteral"
)

// Severity values.
const (
	Info      = Namespace + "Info"
	Warning   = Namespace + "Warning"
	Violation = Namespace + "Violation"
)

// Constraint component IRIs, used as sh:sourceConstraintComponent values.
const (
	ClassConstraintComponent             = Namespace + "ClassConstraintComponent"
	DatatypeConstraintComponent          = Namespace + "DatatypeConstraintComponent"
	NodeKindConstraintComponent          = Namespace + "NodeKindConstraintComponent"
	MinCountConstraintComponent          = Namespace + "MinCountConstraintComponent"
	MaxCountConstraintComponent          = Namespace + "MaxCountConstraintComponent"
	MinExclusiveConstraintComponent      = Namespace + "MinExclusiveConstraintComponent"
	MinInclusiveConstraintComponent      = Namespace + "MinInclusiveConstraintComponent"
	MaxExclusiveConstraintComponent      = Namespace + "MaxExclusiveConstraintComponent"
	MaxInclusiveConstraintComponent      = Namespace + "MaxInclusiveConstraintComponent"
	MinLengthConstraintComponent         = Namespace + "MinLengthConstraintComponent"
	MaxLengthConstraintComponent         = Namespace + "MaxLengthConstraintComponent"
	PatternConstraintComponent           = Namespace + "PatternConstraintComponent"
	LanguageInConstraintComponent        = Namespace + "LanguageInConstraintComponent"
	UniqueLangConstraintComponent        = Namespace + "UniqueLangConstraintComponent"
	EqualsConstraintComponent            = Namespace + "EqualsConstraintComponent"
	DisjointConstraintComponent          = Namespace + "DisjointConstraintComponent"
	LessThanConstraintComponent          = Namespace + "LessThanConstraintComponent"
	LessThanOrEqualsConstraintComponent  = Namespace + "LessThanOrEqualsConstraintComponent"
	HasValueConstraintComponent          = Namespace + "HasValueConstraintComponent"
	InConstraintComponent                = Namespace + "InConstraintComponent"
	NodeConstraintComponent              = Namespace + "NodeConstraintComponent"
	PropertyConstraintComponent          = Namespace + "PropertyConstraintComponent"
	ClosedConstraintComponent            = Namespace + "ClosedConstraintComponent"
	QualifiedMinCountConstraintComponent = Namespace + "QualifiedMinCountConstraintComponent"
	QualifiedMaxCountConstraintComponent = Namespace + "QualifiedMaxCountConstraintComponent"
	AndConstraintComponent               = Namespace + "AndConstraintComponent"
	OrConstraintComponent                = Namespace + "OrConstraintComponent"
	NotConstraintComponent               = Namespace + "NotConstraintComponent"
	XoneConstraintComponent              = Namespace + "XoneConstraintComponent"
	SPARQLConstraintComponent            = Namespace + "SPARQLConstraintComponent"
)

// Validation report terms.
const (
	ValidationReport          = Namespace + "ValidationReport"
	ValidationResult          = Namespace + "ValidationResult"
	Conforms                  = Namespace + "conforms"
	Result                    = Namespace + "result"
	FocusNode                 = Namespace + "focusNode"
	ResultPath                = Namespace + "resultPath"
	ResultMessage             = Namespace + "resultMessage"
	ResultSeverity            = Namespace + "resultSeverity"
	SourceShape               = Namespace + "sourceShape"
	SourceConstraintComponent = Namespace + "sourceConstraintComponent"
	Value                     = Namespace + "value"
	Detail                    = Namespace + "detail"
)

// Term returns an rdf2go resource for a SHACL IRI constant.
func Term(iri string) rdf2go.Term {
	return rdf2go.NewResource(iri)
}
