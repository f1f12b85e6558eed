// Package parser builds a Brine AST from source text.
//
// The parser works over a fully materialised token slice, so backtracking
// is a matter of saving and restoring an index. Statements, declarations
// and types are parsed by recursive descent; expressions by precedence
// climbing. Problems that leave a safe place to carry on from are recorded
// and parsing continues; anything else aborts the current production and
// is returned as an error, which the top level records before skipping to
// the next statement.
package parser

import (
	"github.com/sambeau/brine/pkg/brine/ast"
	"github.com/sambeau/brine/pkg/brine/errors"
	"github.com/sambeau/brine/pkg/brine/lexer"
)

// Parser holds the state of a single parse
type Parser struct {
	src    string
	tokens []lexer.Token // always ends with EOF
	pos    int

	errors []*errors.BrineError
}

// Result is the outcome of parsing a source string: every statement that
// could be built plus every diagnostic, lexer diagnostics first.
type Result struct {
	Program *ast.Program
	Errors  []*errors.BrineError
}

// HasErrors reports whether any diagnostic was recorded.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// New creates a parser over src. The source is tokenized eagerly and any
// lexer diagnostics become the first entries of Errors.
func New(src string) *Parser {
	tokens, lexErrors := lexer.Tokenize(src)
	p := &Parser{
		src:    src,
		tokens: tokens,
	}
	p.errors = append(p.errors, lexErrors...)
	return p
}

// Parse parses a whole program.
func Parse(src string) *Result {
	p := New(src)
	program := p.ParseProgram()
	return &Result{Program: program, Errors: p.Errors()}
}

// ParseExpression parses src as a single expression with nothing after it.
func ParseExpression(src string) (ast.Expression, []*errors.BrineError) {
	p := New(src)
	expr, err := p.parseExpression(0)
	if err != nil {
		p.recoverError(err)
		return nil, p.Errors()
	}
	if tok := p.current(); tok.Type != lexer.EOF {
		p.recoverError(&ExpectedSingleError{Expected: lexer.EOF, Found: tok})
	}
	return expr, p.Errors()
}

// Errors returns the diagnostics recorded so far with line and column
// resolved against the source.
func (p *Parser) Errors() []*errors.BrineError {
	out := make([]*errors.BrineError, len(p.errors))
	for i, e := range p.errors {
		out[i] = e.WithSource(p.src)
	}
	return out
}

// Tokens returns the token stream being parsed, ending with EOF.
func (p *Parser) Tokens() []lexer.Token {
	return p.tokens
}

// ParseProgram parses statements until end of input.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for {
		start := p.mark()
		stmt, err := p.parseStatement()
		if err != nil {
			p.recoverError(err)
			p.synchronize(start)
			continue
		}
		if _, ok := stmt.(*ast.EOFStatement); ok {
			break
		}
		if es, ok := stmt.(*ast.ExpressionStatement); ok && !es.Terminated() {
			p.recoverError(&OuterExpressionError{Statement: es})
		}
		program.Statements = append(program.Statements, stmt)
	}

	return program
}

// synchronize skips to the next plausible statement start after a failed
// top-level statement: past a ';' or an unmatched '}', or up to a
// declaration keyword, ignoring anything nested in brackets. A failed
// declaration also stops after the body that closes it, counting the
// brackets it opened before failing. A statement that failed on its very
// first token only loses that token.
func (p *Parser) synchronize(start int) {
	if p.pos == start {
		p.bump()
		return
	}

	first := p.tokenAt(start).Type
	declaration := first == lexer.FN || first == lexer.STRUCT || first == lexer.ENUM

	depth := 0
	if declaration {
		// the failure may be inside the body already
		for _, tok := range p.tokens[start:p.pos] {
			switch tok.Type {
			case lexer.LPAREN, lexer.LBRACE, lexer.LBRACKET:
				depth++
			case lexer.RPAREN, lexer.RBRACE, lexer.RBRACKET:
				if depth > 0 {
					depth--
				}
			}
		}
	}
	for {
		tok := p.current()
		switch tok.Type {
		case lexer.EOF:
			return
		case lexer.FN, lexer.STRUCT, lexer.ENUM, lexer.LET:
			if depth == 0 {
				return
			}
		case lexer.SEMICOLON:
			if depth == 0 {
				p.bump()
				return
			}
		case lexer.LPAREN, lexer.LBRACE, lexer.LBRACKET:
			depth++
		case lexer.RPAREN, lexer.RBRACKET:
			if depth > 0 {
				depth--
			}
		case lexer.RBRACE:
			if depth == 0 {
				p.bump()
				return
			}
			depth--
			if depth == 0 && declaration {
				p.bump()
				return
			}
		}
		p.bump()
	}
}

// ============================================================================
// Cursor
// ============================================================================

func (p *Parser) tokenAt(i int) lexer.Token {
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.tokens[len(p.tokens)-1]
}

// current returns the token under the cursor.
func (p *Parser) current() lexer.Token {
	return p.tokenAt(p.pos)
}

// peek returns the token n positions ahead without consuming anything.
func (p *Parser) peek(n int) lexer.Token {
	m := p.mark()
	for i := 0; i < n; i++ {
		p.bump()
	}
	tok := p.current()
	p.reset(m)
	return tok
}

// take consumes and returns the current token. At end of input it keeps
// returning EOF.
func (p *Parser) take() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// bump consumes the current token.
func (p *Parser) bump() {
	p.take()
}

// takeExpect consumes the current token if it has type t.
func (p *Parser) takeExpect(t lexer.TokenType) (lexer.Token, error) {
	tok := p.current()
	if tok.Type != t {
		return tok, &ExpectedSingleError{Expected: t, Found: tok}
	}
	return p.take(), nil
}

// bumpExpect is takeExpect without the token.
func (p *Parser) bumpExpect(t lexer.TokenType) error {
	_, err := p.takeExpect(t)
	return err
}

// takeCheck consumes the current token if it has type t.
func (p *Parser) takeCheck(t lexer.TokenType) (lexer.Token, bool) {
	if p.current().Type != t {
		return lexer.Token{}, false
	}
	return p.take(), true
}

// bumpCheck consumes the current token if it has type t and reports
// whether it did.
func (p *Parser) bumpCheck(t lexer.TokenType) bool {
	_, ok := p.takeCheck(t)
	return ok
}

// bumpWhile skips tokens while pred holds. It never skips EOF.
func (p *Parser) bumpWhile(pred func(lexer.Token) bool) {
	for {
		tok := p.current()
		if tok.Type == lexer.EOF || !pred(tok) {
			return
		}
		p.bump()
	}
}

// bumpRecover expects a token of type t, recording a diagnostic rather than
// failing when it is missing.
func (p *Parser) bumpRecover(t lexer.TokenType) {
	if err := p.bumpExpect(t); err != nil {
		p.recoverError(err)
	}
}

// recoverError records a diagnostic without aborting.
func (p *Parser) recoverError(err error) {
	p.errors = append(p.errors, p.diagnostic(err))
}

func (p *Parser) mark() int {
	return p.pos
}

func (p *Parser) reset(m int) {
	p.pos = m
}

func (p *Parser) lexeme(tok lexer.Token) string {
	return tok.Lexeme(p.src)
}
