// Package format renders Brine syntax trees and diagnostics: canonical
// source, an indented debug tree, YAML/JSON/spew dumps and coloured error
// reports.
package format

// Line width - the target maximum line length for canonical source
const MaxLineWidth = 92

// Indentation - gofmt style: tabs for source, two spaces for the debug tree
const (
	TabWidth         = 4
	IndentWidth      = TabWidth
	IndentString     = "\t"
	TreeIndentString = "  "
)

// Trailing commas - whether a multiline struct or enum body ends with ','
const TrailingCommaMultiline = true
