// Package scanner splits Brine source into raw, position-agnostic tokens.
//
// The scanner knows nothing about multi-character operators, keywords or
// byte offsets: every call to Next returns a kind and the number of bytes it
// covers. It never fails. Bytes it does not recognise come back as Unknown
// and string or character literals that run into the end of input are
// reported with Terminated set to false.
package scanner

import (
	"unicode"
	"unicode/utf8"
)

// Kind identifies a raw token.
type Kind int

const (
	EOF Kind = iota
	Unknown
	Whitespace
	Identifier
	Literal

	Semi         // ;
	Colon        // :
	Comma        // ,
	Dot          // .
	OpenParen    // (
	CloseParen   // )
	OpenBrace    // {
	CloseBrace   // }
	OpenBracket  // [
	CloseBracket // ]
	Backslash    // \

	Eq      // =
	Lt      // <
	Gt      // >
	Pipe    // |
	Amp     // &
	Caret   // ^
	Plus    // +
	Minus   // -
	Star    // *
	Slash   // /
	Percent // %
	Bang    // !
	Tilde   // ~
)

var kindNames = map[Kind]string{
	EOF:          "EOF",
	Unknown:      "Unknown",
	Whitespace:   "Whitespace",
	Identifier:   "Identifier",
	Literal:      "Literal",
	Semi:         "Semi",
	Colon:        "Colon",
	Comma:        "Comma",
	Dot:          "Dot",
	OpenParen:    "OpenParen",
	CloseParen:   "CloseParen",
	OpenBrace:    "OpenBrace",
	CloseBrace:   "CloseBrace",
	OpenBracket:  "OpenBracket",
	CloseBracket: "CloseBracket",
	Backslash:    "Backslash",
	Eq:           "Eq",
	Lt:           "Lt",
	Gt:           "Gt",
	Pipe:         "Pipe",
	Amp:          "Amp",
	Caret:        "Caret",
	Plus:         "Plus",
	Minus:        "Minus",
	Star:         "Star",
	Slash:        "Slash",
	Percent:      "Percent",
	Bang:         "Bang",
	Tilde:        "Tilde",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(?)"
}

// LiteralKind is the shape of a Literal token.
type LiteralKind int

const (
	NoLiteral LiteralKind = iota
	Int
	Float
	Str
	Char
)

func (k LiteralKind) String() string {
	switch k {
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Str:
		return "Str"
	case Char:
		return "Char"
	default:
		return "None"
	}
}

// Token is a raw token. Len is in bytes; EOF has Len 0.
type Token struct {
	Kind       Kind
	Literal    LiteralKind
	Terminated bool // only meaningful for Str and Char literals
	Len        int
}

// Scanner walks a source string one raw token at a time.
type Scanner struct {
	src   string
	pos   int // start of the next unread rune
	start int // start of the token being scanned
}

// New creates a scanner over src.
func New(src string) *Scanner {
	return &Scanner{src: src}
}

// Next scans and returns the next raw token.
func (s *Scanner) Next() Token {
	s.start = s.pos
	c, ok := s.take()
	if !ok {
		return Token{Kind: EOF}
	}

	tok := Token{}
	switch {
	case IsWhitespace(c):
		s.takeWhile(IsWhitespace)
		tok.Kind = Whitespace

	case IsIdentStart(c):
		s.takeWhile(isIdentContinue)
		tok.Kind = Identifier

	case c == '.':
		if isASCIIDigit(s.peek(0)) {
			s.takeWhile(isDigit)
			tok.Kind, tok.Literal = Literal, Float
		} else {
			tok.Kind = Dot
		}

	case isASCIIDigit(c):
		s.takeWhile(isDigit)
		tok.Kind, tok.Literal = Literal, Int
		// "1.foo" is an integer followed by a field access, "1.5" and "1." are floats.
		if s.peek(0) == '.' && !IsIdentStart(s.peek(1)) {
			s.take()
			s.takeWhile(isDigit)
			tok.Literal = Float
		}

	case c == '"':
		tok.Kind, tok.Literal = Literal, Str
		tok.Terminated = s.stringBody()

	case c == '\'':
		tok.Kind, tok.Literal = Literal, Char
		tok.Terminated = s.charBody()

	default:
		tok.Kind = single(c)
	}

	tok.Len = s.pos - s.start
	return tok
}

func single(c rune) Kind {
	switch c {
	case ';':
		return Semi
	case ':':
		return Colon
	case ',':
		return Comma
	case '(':
		return OpenParen
	case ')':
		return CloseParen
	case '{':
		return OpenBrace
	case '}':
		return CloseBrace
	case '[':
		return OpenBracket
	case ']':
		return CloseBracket
	case '\\':
		return Backslash
	case '=':
		return Eq
	case '<':
		return Lt
	case '>':
		return Gt
	case '|':
		return Pipe
	case '&':
		return Amp
	case '^':
		return Caret
	case '+':
		return Plus
	case '-':
		return Minus
	case '*':
		return Star
	case '/':
		return Slash
	case '%':
		return Percent
	case '!':
		return Bang
	case '~':
		return Tilde
	}
	return Unknown
}

// stringBody consumes up to and including the closing quote.
// Only \" and \\ are treated as escapes, and only so they do not terminate.
func (s *Scanner) stringBody() bool {
	for {
		c, ok := s.take()
		if !ok {
			return false
		}
		switch c {
		case '"':
			return true
		case '\\':
			if next := s.peek(0); next == '\\' || next == '"' {
				s.take()
			}
		}
	}
}

// charBody accepts exactly one character, or one escaped pair, before the
// closing quote. Anything else is left unterminated.
func (s *Scanner) charBody() bool {
	c, ok := s.take()
	if !ok || c == '\'' {
		return false
	}
	if c == '\\' {
		s.take()
	}
	if s.peek(0) == '\'' {
		s.take()
		return true
	}
	return false
}

// take consumes one rune.
func (s *Scanner) take() (rune, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += size
	return r, true
}

// peek looks n runes past the current position without consuming.
// It returns 0 past the end of input.
func (s *Scanner) peek(n int) rune {
	pos := s.pos
	for {
		if pos >= len(s.src) {
			return 0
		}
		r, size := utf8.DecodeRuneInString(s.src[pos:])
		if n == 0 {
			return r
		}
		pos += size
		n--
	}
}

func (s *Scanner) takeWhile(pred func(rune) bool) {
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if !pred(r) {
			return
		}
		s.pos += size
	}
}

// IsWhitespace reports whether c separates tokens.
func IsWhitespace(c rune) bool {
	switch c {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u0085',           // next line
		'\u200E', '\u200F', // bidi marks
		'\u2028', '\u2029': // line and paragraph separators
		return true
	}
	return false
}

// IsIdentStart reports whether c may begin an identifier.
func IsIdentStart(c rune) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentContinue(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsNumber(c)
}

func isASCIIDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isDigit(c rune) bool {
	return c == '_' || isASCIIDigit(c)
}
