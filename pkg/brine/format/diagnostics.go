package format

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/sambeau/brine/pkg/brine/errors"
)

// ColorMode controls coloured diagnostics
type ColorMode string

const (
	ColorAuto   ColorMode = "auto" // colour terminals only
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode checks a colour mode name
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(s)); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	}
	return "", fmt.Errorf("unknown color mode %q (want auto, always or never)", s)
}

// UseColor resolves mode for output going to w. In auto mode colour is
// used only when w is a terminal and NO_COLOR is unset.
func UseColor(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DiagnosticOptions selects what a DiagnosticPrinter shows
type DiagnosticOptions struct {
	Color   bool
	Hints   bool
	Snippet bool
	Max     int // 0 means no limit
}

// DiagnosticPrinter writes diagnostics as
//
//	file.brn:2:3: error[PARSE-0004]: expression at top level must end with ';'
//	    2
//	    ^
//	  hint: only the last expression inside a block may omit its ';'
type DiagnosticPrinter struct {
	opts DiagnosticOptions

	location *color.Color
	label    *color.Color
	caret    *color.Color
	hint     *color.Color
}

// NewDiagnosticPrinter creates a printer. Colour is set per printer so
// the package-level color.NoColor is left alone.
func NewDiagnosticPrinter(opts DiagnosticOptions) *DiagnosticPrinter {
	d := &DiagnosticPrinter{
		opts:     opts,
		location: color.New(color.Bold),
		label:    color.New(color.FgRed, color.Bold),
		caret:    color.New(color.FgGreen, color.Bold),
		hint:     color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{d.location, d.label, d.caret, d.hint} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return d
}

// Print writes errs, sorted by position, to w. src is used for snippets
// and may be empty.
func (d *DiagnosticPrinter) Print(w io.Writer, src string, errs []*errors.BrineError) error {
	sorted := make([]*errors.BrineError, len(errs))
	copy(sorted, errs)
	errors.Sort(sorted)

	shown := sorted
	if d.opts.Max > 0 && len(shown) > d.opts.Max {
		shown = shown[:d.opts.Max]
	}

	var sb strings.Builder
	for _, e := range shown {
		d.write(&sb, src, e)
	}
	if hidden := len(sorted) - len(shown); hidden > 0 {
		fmt.Fprintf(&sb, "... and %d more\n", hidden)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Format renders a single diagnostic
func (d *DiagnosticPrinter) Format(src string, e *errors.BrineError) string {
	var sb strings.Builder
	d.write(&sb, src, e)
	return sb.String()
}

func (d *DiagnosticPrinter) write(sb *strings.Builder, src string, e *errors.BrineError) {
	sb.WriteString(d.location.Sprint(locationOf(e)))
	sb.WriteString(" ")
	sb.WriteString(d.label.Sprint("error[" + e.Code + "]:"))
	sb.WriteString(" ")
	sb.WriteString(e.Message)
	sb.WriteString("\n")

	if d.opts.Snippet && src != "" && e.Line > 0 {
		if snippet := errors.Snippet(src, e.Offset, e.End); snippet != "" {
			lines := strings.Split(snippet, "\n")
			for i, line := range lines {
				if i == len(lines)-1 {
					line = d.caret.Sprint(line)
				}
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
	}

	if d.opts.Hints {
		for _, h := range e.Hints {
			sb.WriteString("  ")
			sb.WriteString(d.hint.Sprint("hint:"))
			sb.WriteString(" ")
			sb.WriteString(h)
			sb.WriteString("\n")
		}
	}
}

// locationOf returns "file:line:col:" with whichever parts are known
func locationOf(e *errors.BrineError) string {
	var parts []string
	if e.File != "" {
		parts = append(parts, e.File)
	}
	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("%d:%d", e.Line, e.Column))
	}
	if len(parts) == 0 {
		return "<input>:"
	}
	return strings.Join(parts, ":") + ":"
}
