// Package brine is the embedding API for the Brine front end. It wraps the
// parser with file handling and progress logging; the packages under
// pkg/brine can also be used directly.
package brine

import (
	"fmt"
	"os"
	"time"

	"github.com/sambeau/brine/pkg/brine/ast"
	"github.com/sambeau/brine/pkg/brine/errors"
	"github.com/sambeau/brine/pkg/brine/parser"
)

// Unit is one parsed source together with its diagnostics
type Unit struct {
	Name    string // file name, empty for in-memory input
	Source  string
	Program *ast.Program
	Errors  []*errors.BrineError
	Tokens  int // including EOF
	Elapsed time.Duration
}

// HasErrors reports whether any diagnostic was recorded.
func (u *Unit) HasErrors() bool {
	return len(u.Errors) > 0
}

type options struct {
	logger Logger
	name   string
}

// Option configures Parse and ParseFile
type Option func(*options)

// WithLogger sends progress messages to l
func WithLogger(l Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithFilename stamps name on every diagnostic
func WithFilename(name string) Option {
	return func(o *options) { o.name = name }
}

func newOptions(opts []Option) *options {
	o := &options{logger: NopLogger()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Parse parses src held in memory.
func Parse(src string, opts ...Option) *Unit {
	o := newOptions(opts)
	return parse(src, o)
}

// ParseFile reads and parses the file at path. The error is non-nil only
// when the file cannot be read; syntax problems are in Unit.Errors.
func ParseFile(path string, opts ...Option) (*Unit, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	o := newOptions(append([]Option{WithFilename(path)}, opts...))
	return parse(string(content), o), nil
}

func parse(src string, o *options) *Unit {
	start := time.Now()
	p := parser.New(src)
	program := p.ParseProgram()

	u := &Unit{
		Name:    o.name,
		Source:  src,
		Program: program,
		Errors:  p.Errors(),
		Tokens:  len(p.Tokens()),
		Elapsed: time.Since(start),
	}
	if u.Name != "" {
		for i, e := range u.Errors {
			u.Errors[i] = e.WithFile(u.Name)
		}
	}

	o.logger.LogLine(fmt.Sprintf("parsed %s: %d tokens, %d statements, %d errors in %s",
		displayName(u.Name), u.Tokens, len(program.Statements), len(u.Errors), u.Elapsed.Round(time.Microsecond)))
	return u
}

func displayName(name string) string {
	if name == "" {
		return "<input>"
	}
	return name
}
