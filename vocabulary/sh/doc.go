// Package sh defines IRI constants for the W3C Shapes Constraint Language
// (SHACL) vocabulary, https://www.w3.org/TR/shacl/.
//
// Constants are grouped by role: shape classes, targets, paths, constraint
// parameters, constraint components, and validation-report terms. Helper
// functions construct the rdf2go terms used throughout the validator.
package sh
