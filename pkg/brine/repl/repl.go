// Package repl implements the interactive Brine parser loop.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/sambeau/brine/pkg/brine/ast"
	"github.com/sambeau/brine/pkg/brine/errors"
	"github.com/sambeau/brine/pkg/brine/format"
	"github.com/sambeau/brine/pkg/brine/lexer"
	"github.com/sambeau/brine/pkg/brine/parser"
)

const PROMPT = ">> "
const CONTINUATION_PROMPT = ".. "

const LOGO = `
█▄▄ █▀█ █ █▄░█ █▀▀
█▄█ █▀▄ █ █░▀█ ██▄ `

// Brine keywords, literals and type names for tab completion
var completionWords = []string{
	// Keywords
	"fn", "struct", "enum", "let", "if", "else",
	// Literals
	"true", "false",
	// Types
	"bool", "char", "str", "void",
	"i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "f32", "f64",
}

// Options configures a REPL session
type Options struct {
	Prompt      string // default PROMPT
	History     string // history file, default $TMPDIR/.brine_history
	Format      format.Format
	Diagnostics format.DiagnosticOptions
	Version     string
}

// Session holds the state of one REPL run: the buffered multi-line input
// and the current display settings. It does no terminal I/O of its own, so
// Start can drive it from liner or from a plain reader.
type Session struct {
	out    io.Writer
	opts   Options
	diag   *format.DiagnosticPrinter
	input  strings.Builder
	tokens bool // list tokens before the tree
	expr   bool // parse input as a single expression
}

// NewSession creates a session writing to out
func NewSession(out io.Writer, opts Options) *Session {
	if opts.Prompt == "" {
		opts.Prompt = PROMPT
	}
	if opts.Format == "" {
		opts.Format = format.FormatTree
	}
	return &Session{
		out:  out,
		opts: opts,
		diag: format.NewDiagnosticPrinter(opts.Diagnostics),
	}
}

// Prompt returns the prompt for the next line
func (s *Session) Prompt() string {
	if s.input.Len() > 0 {
		return CONTINUATION_PROMPT
	}
	return s.opts.Prompt
}

// Pending reports whether a multi-line input is being collected
func (s *Session) Pending() bool {
	return s.input.Len() > 0
}

// Abort discards any partial input, returning true if there was some.
func (s *Session) Abort() bool {
	had := s.input.Len() > 0
	s.input.Reset()
	return had
}

// Feed handles one line of input. It returns the complete input once the
// brackets balance (empty while more lines are needed) and whether the
// session should end.
func (s *Session) Feed(line string) (complete string, quit bool) {
	trimmed := strings.TrimSpace(line)

	if s.input.Len() == 0 {
		if trimmed == "exit" || trimmed == "quit" {
			return "", true
		}
		if strings.HasPrefix(trimmed, ":") {
			s.command(trimmed)
			return "", false
		}
		if trimmed == "" {
			return "", false
		}
	}

	if s.input.Len() > 0 {
		s.input.WriteString("\n")
	}
	s.input.WriteString(line)

	full := s.input.String()
	if needsMoreInput(full) {
		return "", false
	}
	s.input.Reset()

	s.show(full)
	return full, false
}

// show parses src and prints either the result or its diagnostics
func (s *Session) show(src string) {
	if s.tokens {
		toks, _ := lexer.Tokenize(src)
		io.WriteString(s.out, format.Tokens(src, toks))
	}

	if s.expr {
		expr, errs := parser.ParseExpression(src)
		if len(errs) > 0 {
			s.printErrors(src, errs)
			return
		}
		s.render(&ast.Program{Statements: []ast.Statement{&ast.ExpressionStatement{Expression: expr}}})
		return
	}

	res := parser.Parse(src)
	if res.HasErrors() {
		s.printErrors(src, res.Errors)
	}
	if len(res.Program.Statements) > 0 {
		s.render(res.Program)
	} else if !res.HasErrors() {
		io.WriteString(s.out, "OK\n")
	}
}

func (s *Session) render(prog *ast.Program) {
	if err := format.Render(s.out, s.opts.Format, prog); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func (s *Session) printErrors(src string, errs []*errors.BrineError) {
	if err := s.diag.Print(s.out, src, errs); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

// command handles REPL meta-commands that start with ':'
func (s *Session) command(cmd string) {
	name, arg, _ := strings.Cut(cmd, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case ":help", ":h", ":?":
		fmt.Fprintln(s.out, "REPL Commands:")
		fmt.Fprintln(s.out, "  :help, :h, :?     Show this help")
		fmt.Fprintln(s.out, "  :format [name]    Show or set the output format")
		fmt.Fprintln(s.out, "  :tokens           Toggle the token listing")
		fmt.Fprintln(s.out, "  :expr             Toggle single-expression mode")
		fmt.Fprintln(s.out, "  exit, quit        Exit the REPL")
		fmt.Fprintln(s.out, "")
		fmt.Fprintln(s.out, "Formats:")
		for _, f := range format.Formats {
			fmt.Fprintf(s.out, "  %s\n", f)
		}

	case ":format":
		if arg == "" {
			fmt.Fprintf(s.out, "Format: %s\n", s.opts.Format)
			return
		}
		f, err := format.ParseFormat(arg)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return
		}
		s.opts.Format = f
		fmt.Fprintf(s.out, "Format: %s\n", f)

	case ":tokens":
		s.tokens = !s.tokens
		fmt.Fprintf(s.out, "Token listing %s\n", onOff(s.tokens))

	case ":expr":
		s.expr = !s.expr
		fmt.Fprintf(s.out, "Expression mode %s\n", onOff(s.expr))

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type :help for commands)\n", name)
	}
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

// Start runs the REPL. When in is a terminal it gets line editing, history
// and tab completion; otherwise lines are read as they come, which is what
// piped input and tests want.
func Start(in io.Reader, out io.Writer, opts Options) error {
	s := NewSession(out, opts)

	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return s.interactive()
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if _, quit := s.Feed(scanner.Text()); quit {
			return nil
		}
	}
	if s.Pending() {
		// flush what there is so unclosed input still gets its diagnostics
		full := s.input.String()
		s.input.Reset()
		s.show(full)
	}
	return scanner.Err()
}

func (s *Session) interactive() error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(filterCompletions)

	historyFile := s.opts.History
	if historyFile == "" {
		historyFile = filepath.Join(os.TempDir(), ".brine_history")
	}
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintf(s.out, "%s", LOGO)
	fmt.Fprintln(s.out, "v", s.opts.Version)
	fmt.Fprintln(s.out, "")
	fmt.Fprintln(s.out, "Type 'exit' or Ctrl+D to quit")
	fmt.Fprintln(s.out, "Use Tab for completion, ↑↓ for history")
	fmt.Fprintln(s.out, "Type ':help' for REPL commands")
	fmt.Fprintln(s.out, "")

	for {
		input, err := line.Prompt(s.Prompt())
		if err != nil {
			if err == liner.ErrPromptAborted {
				// Ctrl+C clears buffered input
				if s.Abort() {
					fmt.Fprintln(s.out, "^C (cleared)")
				} else {
					fmt.Fprintln(s.out, "^C")
				}
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(s.out, "\nGoodbye!")
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		complete, quit := s.Feed(input)
		if quit {
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		}
		if complete != "" {
			line.AppendHistory(complete)
		}
	}
}

// filterCompletions returns completion suggestions for the word being typed
func filterCompletions(line string) []string {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	if last := line[len(line)-1]; last == ' ' || last == '\t' {
		return nil
	}

	// the word under the cursor ends at the first non-name character
	start := strings.LastIndexFunc(line, func(r rune) bool {
		return !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}) + 1
	prefix, word := line[:start], line[start:]
	if word == "" {
		return nil
	}

	var matches []string
	for _, w := range completionWords {
		if strings.HasPrefix(w, word) {
			matches = append(matches, prefix+w)
		}
	}
	return matches
}

// needsMoreInput reports whether input has more '(' '[' '{' than it closes,
// or ends inside a string literal. Brackets inside literals are not
// counted.
func needsMoreInput(input string) bool {
	if strings.TrimSpace(input) == "" {
		return false
	}

	toks, _ := lexer.Tokenize(input)
	depth := 0
	for _, tok := range toks {
		switch tok.Type {
		case lexer.LPAREN, lexer.LBRACKET, lexer.LBRACE:
			depth++
		case lexer.RPAREN, lexer.RBRACKET, lexer.RBRACE:
			depth--
		case lexer.LITERAL:
			if tok.Lit == lexer.Str && !tok.Terminated {
				return true
			}
		}
	}
	return depth > 0
}
