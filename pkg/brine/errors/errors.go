// Package errors provides structured diagnostics for the Brine front end.
//
// Every problem found while scanning or parsing is reported as a BrineError:
// a catalog code, a rendered message, optional hints and the byte range it
// refers to. Line and column are derived from the byte offset once the
// source is known, so the lexer and parser only ever deal in offsets.
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/template"
)

// ErrorClass categorizes errors for filtering and display.
type ErrorClass string

const (
	ClassLex     ErrorClass = "lex"     // Character-level problems
	ClassParse   ErrorClass = "parse"   // Syntax errors
	ClassLiteral ErrorClass = "literal" // Malformed or out-of-range literal values
)

// BrineError is a single diagnostic.
type BrineError struct {
	Class   ErrorClass     `json:"class"`
	Code    string         `json:"code"`            // e.g. "PARSE-0001"
	Message string         `json:"message"`         // Human-readable message
	Hints   []string       `json:"hints,omitempty"` // Suggestions for fixing
	Offset  int            `json:"offset"`          // Byte offset of the start
	End     int            `json:"end"`             // Byte offset one past the end
	Line    int            `json:"line"`            // 1-based line (0 if unknown)
	Column  int            `json:"column"`          // 1-based column in runes (0 if unknown)
	File    string         `json:"file,omitempty"`
	Data    map[string]any `json:"data,omitempty"` // Template variables

	cause error
}

// Error implements the error interface.
func (e *BrineError) Error() string {
	return e.String()
}

// Unwrap returns the typed error this diagnostic was built from, if any.
func (e *BrineError) Unwrap() error {
	return e.cause
}

// String returns a one-line rendering followed by any hints.
func (e *BrineError) String() string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(e.File)
		sb.WriteString(": ")
	}
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf("line %d, column %d: ", e.Line, e.Column))
	}

	sb.WriteString(e.Message)

	for _, hint := range e.Hints {
		sb.WriteString("\n  ")
		sb.WriteString(hint)
	}

	return sb.String()
}

// Header returns the leading "Parser error" style label for the class.
func (e *BrineError) Header() string {
	switch e.Class {
	case ClassLex:
		return "Lexer error"
	case ClassLiteral:
		return "Literal error"
	default:
		return "Parser error"
	}
}

// PrettyString returns a multi-line rendering. When src is non-empty the
// offending line is quoted with a caret under the error range.
func (e *BrineError) PrettyString(src string) string {
	var sb strings.Builder

	sb.WriteString(e.Header())
	if e.Code != "" {
		sb.WriteString(" [")
		sb.WriteString(e.Code)
		sb.WriteString("]")
	}

	if e.File != "" {
		sb.WriteString(":\n  in: ")
		sb.WriteString(e.File)
		if e.Line > 0 {
			sb.WriteString(fmt.Sprintf("\n  at: line %d, column %d", e.Line, e.Column))
		}
		sb.WriteString("\n  ")
	} else if e.Line > 0 {
		sb.WriteString(fmt.Sprintf(": line %d, column %d\n  ", e.Line, e.Column))
	} else {
		sb.WriteString(":\n  ")
	}

	sb.WriteString(e.Message)

	if src != "" && e.Line > 0 {
		if snippet := Snippet(src, e.Offset, e.End); snippet != "" {
			sb.WriteString("\n\n")
			sb.WriteString(snippet)
		}
	}

	for i, hint := range e.Hints {
		sb.WriteString("\n  ")
		if i == 0 {
			sb.WriteString("Hint: ")
		} else {
			sb.WriteString("  or: ")
		}
		sb.WriteString(hint)
	}

	return sb.String()
}

// ToJSON returns the error as JSON bytes.
func (e *BrineError) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ToJSONIndent returns the error as indented JSON bytes.
func (e *BrineError) ToJSONIndent() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// WithFile returns a copy of the error with the file path set.
func (e *BrineError) WithFile(file string) *BrineError {
	c := *e
	c.File = file
	return &c
}

// WithSource returns a copy of the error with Line and Column filled in
// from its byte offset into src.
func (e *BrineError) WithSource(src string) *BrineError {
	c := *e
	c.Line, c.Column = Position(src, e.Offset)
	return &c
}

// WithCause returns a copy of the error wrapping cause.
func (e *BrineError) WithCause(cause error) *BrineError {
	c := *e
	c.cause = cause
	return &c
}

// ErrorDef defines an error in the catalog.
type ErrorDef struct {
	Class    ErrorClass
	Template string   // Message template with {{.placeholders}}
	Hints    []string // Hint templates (may use {{.placeholders}})
}

// ErrorCatalog maps error codes to their definitions.
var ErrorCatalog = map[string]ErrorDef{
	// ========================================
	// Lexer errors (LEX-0xxx)
	// ========================================
	"LEX-0001": {
		Class:    ClassLex,
		Template: "unexpected character '{{.Char}}'",
		Hints:    []string{"remove the character or place it inside a string literal"},
	},

	// ========================================
	// Parse errors (PARSE-0xxx)
	// ========================================
	"PARSE-0001": {
		Class:    ClassParse,
		Template: "expected {{.Expected}}, got {{.Got}}",
	},
	"PARSE-0002": {
		Class:    ClassParse,
		Template: "expected one of {{.Expected}}, got {{.Got}}",
	},
	"PARSE-0003": {
		Class:    ClassParse,
		Template: "expected {{.Expected}}, got {{.Got}}",
	},
	"PARSE-0004": {
		Class:    ClassParse,
		Template: "expression at top level must end with ';'",
		Hints:    []string{"only the last expression inside a block may omit its ';'"},
	},

	// ========================================
	// Literal errors (LIT-0xxx)
	// ========================================
	"LIT-0001": {
		Class:    ClassLiteral,
		Template: "unterminated string literal",
		Hints:    []string{`close the string with '"'`},
	},
	"LIT-0002": {
		Class:    ClassLiteral,
		Template: "unterminated character literal",
		Hints:    []string{"a character literal holds exactly one character, e.g. 'a' or '\\''"},
	},
	"LIT-0003": {
		Class:    ClassLiteral,
		Template: "integer literal {{.Literal}} does not fit in 128 bits",
	},
	"LIT-0004": {
		Class:    ClassLiteral,
		Template: "float literal {{.Literal}} is out of range",
	},
}

// New creates a BrineError from the catalog.
// If the code is not found, creates a generic parse error with the message.
func New(code string, data map[string]any) *BrineError {
	def, ok := ErrorCatalog[code]
	if !ok {
		msg := code
		if data != nil {
			if m, ok := data["message"].(string); ok {
				msg = m
			}
		}
		return &BrineError{
			Class:   ClassParse,
			Code:    code,
			Message: msg,
			Data:    data,
		}
	}

	msg := renderTemplate(def.Template, data)

	var hints []string
	for _, hintTmpl := range def.Hints {
		rendered := renderTemplate(hintTmpl, data)
		if rendered != "" {
			hints = append(hints, rendered)
		}
	}

	return &BrineError{
		Class:   def.Class,
		Code:    code,
		Message: msg,
		Hints:   hints,
		Data:    data,
	}
}

// NewAt creates a BrineError covering the byte range [offset, end).
func NewAt(code string, offset, end int, data map[string]any) *BrineError {
	err := New(code, data)
	err.Offset = offset
	err.End = end
	return err
}

// NewSimple creates an error without using the catalog.
func NewSimple(class ErrorClass, message string) *BrineError {
	return &BrineError{
		Class:   class,
		Message: message,
	}
}

// renderTemplate renders a Go template with the given data.
func renderTemplate(tmplStr string, data map[string]any) string {
	if data == nil {
		return tmplStr
	}

	tmpl, err := template.New("").Parse(tmplStr)
	if err != nil {
		return tmplStr
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return tmplStr
	}

	return buf.String()
}

// Sort orders diagnostics by offset, keeping recording order for ties.
func Sort(errs []*BrineError) {
	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].Offset < errs[j].Offset
	})
}

// ============================================================================
// Fuzzy Matching - "Did you mean?" suggestions
// ============================================================================

// levenshteinDistance computes the edit distance between two strings.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}

// FindClosestMatch finds the closest match to input among candidates.
// Returns "" for exact matches or when nothing is close enough.
func FindClosestMatch(input string, candidates []string) string {
	if len(input) == 0 || len(candidates) == 0 {
		return ""
	}

	inputLower := strings.ToLower(input)

	var bestMatch string
	bestDistance := -1

	for _, candidate := range candidates {
		dist := levenshteinDistance(inputLower, strings.ToLower(candidate))
		if bestDistance == -1 || dist < bestDistance {
			bestDistance = dist
			bestMatch = candidate
		}
	}

	// Short words (1-3): max 1 edit
	// Medium words (4-6): max 2 edits
	// Longer words (7+): max 3 edits
	threshold := 1
	if len(input) >= 4 && len(input) <= 6 {
		threshold = 2
	} else if len(input) >= 7 {
		threshold = 3
	}

	if bestDistance <= 0 || bestDistance > threshold {
		return ""
	}

	return bestMatch
}

// Keywords are the declaration keywords offered as typo suggestions.
var Keywords = []string{"fn", "struct", "enum", "let", "if", "else"}
