// Package lexer turns raw scanner output into the final Brine token stream.
//
// It merges adjacent one-character operators into composite tokens,
// reclassifies keywords and boolean literals, skips whitespace and assigns
// every token its absolute byte span.
package lexer

import (
	"github.com/sambeau/brine/pkg/brine/errors"
	"github.com/sambeau/brine/pkg/brine/scanner"
)

// Lexer represents the token stream over one source string
type Lexer struct {
	input   string
	scanner *scanner.Scanner
	pos     int // byte offset of the next raw token

	// reserved holds a raw token fetched as lookahead for a composite
	// operator that turned out not to be one. It is returned before the
	// scanner is asked for anything new.
	reserved    scanner.Token
	hasReserved bool

	errors []*errors.BrineError
}

// New creates a new lexer instance
func New(input string) *Lexer {
	return &Lexer{
		input:   input,
		scanner: scanner.New(input),
	}
}

// Errors returns the diagnostics recorded so far, in order.
func (l *Lexer) Errors() []*errors.BrineError {
	return l.errors
}

// Tokenize reads the whole input, returning every token up to and
// including EOF along with the lexer's diagnostics.
func Tokenize(input string) ([]Token, []*errors.BrineError) {
	l := New(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, l.errors
		}
	}
}

// NextToken returns the next token. Once the input is exhausted it keeps
// returning a zero-length EOF at the end of input.
func (l *Lexer) NextToken() Token {
	for {
		raw := l.raw()
		start := l.pos
		l.pos += raw.Len

		tok := Token{Start: start}
		switch raw.Kind {
		case scanner.Whitespace:
			continue

		case scanner.Unknown:
			l.errors = append(l.errors, errors.NewAt("LEX-0001", start, l.pos, map[string]any{
				"Char": l.input[start:l.pos],
			}))
			continue

		case scanner.EOF:
			tok.Type = EOF

		case scanner.Identifier:
			tok.Type, tok.Lit = LookupIdent(l.input[start:l.pos])

		case scanner.Literal:
			tok.Type = LITERAL
			tok.Lit = literalKind(raw.Literal)
			tok.Terminated = raw.Terminated || (raw.Literal != scanner.Str && raw.Literal != scanner.Char)

		case scanner.Semi:
			tok.Type = SEMICOLON
		case scanner.Colon:
			tok.Type = COLON
		case scanner.Comma:
			tok.Type = COMMA
		case scanner.Dot:
			tok.Type = DOT
		case scanner.OpenParen:
			tok.Type = LPAREN
		case scanner.CloseParen:
			tok.Type = RPAREN
		case scanner.OpenBrace:
			tok.Type = LBRACE
		case scanner.CloseBrace:
			tok.Type = RBRACE
		case scanner.OpenBracket:
			tok.Type = LBRACKET
		case scanner.CloseBracket:
			tok.Type = RBRACKET
		case scanner.Backslash:
			tok.Type = BACKSLASH

		default:
			tok.Type, tok.Op = l.operator(raw.Kind)
		}

		tok.End = l.pos
		return tok
	}
}

func (l *Lexer) raw() scanner.Token {
	if l.hasReserved {
		l.hasReserved = false
		return l.reserved
	}
	return l.scanner.Next()
}

// reserve stashes tok so the next call to raw returns it.
func (l *Lexer) reserve(tok scanner.Token) {
	l.reserved = tok
	l.hasReserved = true
}

// consume accounts for a lookahead token that became part of the current one.
func (l *Lexer) consume(tok scanner.Token) {
	l.pos += tok.Len
}

// operator resolves a one-character operator, merging it with the raw token
// that follows when the pair spells a composite operator.
func (l *Lexer) operator(first scanner.Kind) (TokenType, OpKind) {
	peek := l.scanner.Next()

	// Complete pairs: nothing can follow to make a longer token.
	switch {
	case first == scanner.Minus && peek.Kind == scanner.Gt:
		l.consume(peek)
		return ARROW, NoOp
	case first == scanner.Pipe && peek.Kind == scanner.Pipe:
		l.consume(peek)
		return OR_OR, NoOp
	case first == scanner.Amp && peek.Kind == scanner.Amp:
		l.consume(peek)
		return AND_AND, NoOp
	case first == scanner.Eq && peek.Kind == scanner.Eq:
		l.consume(peek)
		return EQ, NoOp
	case first == scanner.Bang && peek.Kind == scanner.Eq:
		l.consume(peek)
		return NOT_EQ, NoOp
	case first == scanner.Gt && peek.Kind == scanner.Eq:
		l.consume(peek)
		return GTE, NoOp
	case first == scanner.Lt && peek.Kind == scanner.Eq:
		l.consume(peek)
		return LTE, NoOp
	case first == scanner.Pipe && peek.Kind == scanner.Gt:
		// |> has no compound-assignment form.
		l.consume(peek)
		return PIPE_GT, NoOp
	}

	var op OpKind
	switch {
	case first == scanner.Lt && peek.Kind == scanner.Lt:
		l.consume(peek)
		peek = l.scanner.Next()
		op = ShiftLeft
	case first == scanner.Gt && peek.Kind == scanner.Gt:
		l.consume(peek)
		peek = l.scanner.Next()
		op = ShiftRight
	default:
		switch first {
		case scanner.Bang:
			l.reserve(peek)
			return BANG, NoOp
		case scanner.Tilde:
			l.reserve(peek)
			return TILDE, NoOp
		case scanner.Eq:
			l.reserve(peek)
			return ASSIGN, NoOp
		case scanner.Lt:
			l.reserve(peek)
			return LT, NoOp
		case scanner.Gt:
			l.reserve(peek)
			return GT, NoOp
		}
		op = arithmetic[first]
	}

	if peek.Kind == scanner.Eq {
		l.consume(peek)
		return OP_ASSIGN, op
	}
	l.reserve(peek)
	return OP, op
}

var arithmetic = map[scanner.Kind]OpKind{
	scanner.Pipe:    BitOr,
	scanner.Amp:     BitAnd,
	scanner.Caret:   BitXor,
	scanner.Plus:    Add,
	scanner.Minus:   Sub,
	scanner.Star:    Mul,
	scanner.Slash:   Div,
	scanner.Percent: Mod,
}

func literalKind(k scanner.LiteralKind) LiteralKind {
	switch k {
	case scanner.Int:
		return Int
	case scanner.Float:
		return Float
	case scanner.Str:
		return Str
	case scanner.Char:
		return Char
	}
	return NoLiteral
}
