package format

import (
	"strings"
)

// Printer accumulates formatted output and tracks indentation
type Printer struct {
	output  strings.Builder
	unit    string // one level of indentation
	indent  int
	linePos int // column of the next write on the current line
}

// NewPrinter creates a Printer that indents with tabs
func NewPrinter() *Printer {
	return &Printer{unit: IndentString}
}

func newTreePrinter() *Printer {
	return &Printer{unit: TreeIndentString}
}

// String returns the formatted output
func (p *Printer) String() string {
	return p.output.String()
}

// Reset clears the printer state for reuse
func (p *Printer) Reset() {
	p.output.Reset()
	p.indent = 0
	p.linePos = 0
}

// write appends s and updates the line position
func (p *Printer) write(s string) {
	p.output.WriteString(s)
	if idx := strings.LastIndex(s, "\n"); idx >= 0 {
		p.linePos = len(s) - idx - 1
	} else {
		p.linePos += len(s)
	}
}

// line writes one indented line
func (p *Printer) line(s string) {
	p.writeIndent()
	p.write(s)
	p.newline()
}

func (p *Printer) newline() {
	p.output.WriteString("\n")
	p.linePos = 0
}

func (p *Printer) writeIndent() {
	p.write(strings.Repeat(p.unit, p.indent))
}

func (p *Printer) indentInc() {
	p.indent++
}

func (p *Printer) indentDec() {
	if p.indent > 0 {
		p.indent--
	}
}

// fitsOnLine reports whether s fits on the current line within threshold
func (p *Printer) fitsOnLine(s string, threshold int) bool {
	if strings.Contains(s, "\n") {
		return false
	}
	return p.linePos+len(s) <= threshold
}
