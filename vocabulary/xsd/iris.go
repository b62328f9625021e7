// Package xsd defines IRI constants for the XML Schema datatypes that
// appear in literal comparisons and datatype constraints.
package xsd

// Namespace is the base IRI of the XML Schema datatype vocabulary.
const Namespace = "http://www.w3.org/2001/XMLSchema#"

const (
	String  = Namespace + "string"
	Boolean = Namespace + "boolean"

	Integer            = Namespace + "integer"
	Decimal            = Namespace + "decimal"
	Double             = Namespace + "double"
	Float              = Namespace + "float"
	Long               = Namespace + "long"
	Int                = Namespace + "int"
	Short              = Namespace + "short"
	Byte               = Namespace + "byte"
	NonNegativeInteger = Namespace + "nonNegativeInteger"
	PositiveInteger    = Namespace + "positiveInteger"

	Date     = Namespace + "date"
	DateTime = Namespace + "dateTime"
	Time     = Namespace + "time"
	Duration = Namespace + "duration"

	AnyURI = Namespace + "anyURI"
)

// numericDatatypes lists the datatypes whose literals compare numerically.
var numericDatatypes = map[string]bool{
	Integer:            true,
	Decimal:            true,
	Double:             true,
	Float:              true,
	Long:               true,
	Int:                true,
	Short:              true,
	Byte:               true,
	NonNegativeInteger: true,
	PositiveInteger:    true,
}

// IsNumeric reports whether the datatype IRI denotes a numeric XSD type.
func IsNumeric(datatype string) bool {
	return numericDatatypes[datatype]
}
