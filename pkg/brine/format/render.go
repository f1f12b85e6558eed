package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/sambeau/brine/pkg/brine/ast"
)

// Format names an output representation of a parsed program
type Format string

const (
	FormatTree   Format = "tree"   // indented debug outline
	FormatInline Format = "inline" // fully parenthesised String()
	FormatSource Format = "source" // canonical source
	FormatYAML   Format = "yaml"
	FormatJSON   Format = "json"
	FormatSpew   Format = "spew" // raw Go values
)

// Formats lists every supported format in help order
var Formats = []Format{FormatTree, FormatInline, FormatSource, FormatYAML, FormatJSON, FormatSpew}

// ParseFormat checks a format name from a flag or config file
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unknown format %q (want one of %s)", s, strings.Join(names, ", "))
}

// Render writes prog to w in format f
func Render(w io.Writer, f Format, prog *ast.Program) error {
	var out []byte
	switch f {
	case FormatTree:
		out = []byte(Tree(prog))
	case FormatInline:
		if s := prog.String(); s != "" {
			out = []byte(s + "\n")
		}
	case FormatSource:
		out = []byte(Source(prog))
	case FormatYAML:
		b, err := YAML(prog)
		if err != nil {
			return fmt.Errorf("yaml: %w", err)
		}
		out = b
	case FormatJSON:
		b, err := JSON(prog)
		if err != nil {
			return fmt.Errorf("json: %w", err)
		}
		out = append(b, '\n')
	case FormatSpew:
		out = []byte(Spew(prog))
	default:
		return fmt.Errorf("unknown format %q", f)
	}
	_, err := w.Write(out)
	return err
}
