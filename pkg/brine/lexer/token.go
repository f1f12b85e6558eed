package lexer

import "fmt"

// TokenType represents the final, disambiguated kind of a token
type TokenType int

const (
	EOF TokenType = iota

	IDENT   // add, foobar, x, y, ...
	LITERAL // 1, 1.5, "s", 'c', true

	// Keywords
	FN     // fn
	STRUCT // struct
	ENUM   // enum
	LET    // let
	IF     // if
	ELSE   // else

	// Punctuation
	SEMICOLON // ;
	COLON     // :
	COMMA     // ,
	DOT       // .
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	BACKSLASH // \

	// Operators
	OP        // | & ^ << >> + - * / %, see Token.Op
	OP_ASSIGN // |= &= ^= <<= >>= += -= *= /= %=, see Token.Op
	BANG      // !
	TILDE     // ~
	ASSIGN    // =
	OR_OR     // ||
	AND_AND   // &&
	EQ        // ==
	NOT_EQ    // !=
	GTE       // >=
	LTE       // <=
	GT        // >
	LT        // <
	ARROW     // ->
	PIPE_GT   // |>
)

// OpKind is the arithmetic or bitwise operator carried by OP and OP_ASSIGN
type OpKind int

const (
	NoOp OpKind = iota
	BitOr
	BitAnd
	BitXor
	ShiftLeft
	ShiftRight
	Add
	Sub
	Mul
	Div
	Mod
)

var opSpellings = map[OpKind]string{
	BitOr:      "|",
	BitAnd:     "&",
	BitXor:     "^",
	ShiftLeft:  "<<",
	ShiftRight: ">>",
	Add:        "+",
	Sub:        "-",
	Mul:        "*",
	Div:        "/",
	Mod:        "%",
}

// String returns the source spelling of the operator
func (k OpKind) String() string {
	if s, ok := opSpellings[k]; ok {
		return s
	}
	return "?"
}

// LiteralKind is the kind of value a LITERAL token spells
type LiteralKind int

const (
	NoLiteral LiteralKind = iota
	Bool
	Int
	Float
	Str
	Char
)

func (k LiteralKind) String() string {
	switch k {
	case Bool:
		return "Bool"
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

// Token is a classified, positioned slice of source text. [Start, End) is a
// half-open byte range into the source the token was read from.
type Token struct {
	Type       TokenType
	Op         OpKind      // set for OP and OP_ASSIGN
	Lit        LiteralKind // set for LITERAL
	Terminated bool        // false for a Str or Char literal cut off by end of input
	Start      int
	End        int
}

// Lexeme returns the source text spanned by the token.
func (t Token) Lexeme(src string) string {
	if t.Start < 0 || t.End > len(src) || t.Start > t.End {
		return ""
	}
	return src[t.Start:t.End]
}

// Len returns the width of the token in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}

// Is reports whether the token has the given type and, for operator
// tokens, the same operator kind.
func (t Token) Is(other Token) bool {
	return t.Type == other.Type && t.Op == other.Op
}

// String returns a debugging representation of the token
func (t Token) String() string {
	switch t.Type {
	case OP, OP_ASSIGN:
		return fmt.Sprintf("{Type: %s, Op: %s, Span: %d..%d}", t.Type, t.Op, t.Start, t.End)
	case LITERAL:
		if t.Lit == Str || t.Lit == Char {
			return fmt.Sprintf("{Type: %s, Lit: %s, Terminated: %t, Span: %d..%d}", t.Type, t.Lit, t.Terminated, t.Start, t.End)
		}
		return fmt.Sprintf("{Type: %s, Lit: %s, Span: %d..%d}", t.Type, t.Lit, t.Start, t.End)
	}
	return fmt.Sprintf("{Type: %s, Span: %d..%d}", t.Type, t.Start, t.End)
}

// String returns a string representation of the token type
func (tt TokenType) String() string {
	switch tt {
	case EOF:
		return "EOF"
	case IDENT:
		return "IDENT"
	case LITERAL:
		return "LITERAL"
	case FN:
		return "FN"
	case STRUCT:
		return "STRUCT"
	case ENUM:
		return "ENUM"
	case LET:
		return "LET"
	case IF:
		return "IF"
	case ELSE:
		return "ELSE"
	case SEMICOLON:
		return "SEMICOLON"
	case COLON:
		return "COLON"
	case COMMA:
		return "COMMA"
	case DOT:
		return "DOT"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case LBRACE:
		return "LBRACE"
	case RBRACE:
		return "RBRACE"
	case LBRACKET:
		return "LBRACKET"
	case RBRACKET:
		return "RBRACKET"
	case BACKSLASH:
		return "BACKSLASH"
	case OP:
		return "OP"
	case OP_ASSIGN:
		return "OP_ASSIGN"
	case BANG:
		return "BANG"
	case TILDE:
		return "TILDE"
	case ASSIGN:
		return "ASSIGN"
	case OR_OR:
		return "OR_OR"
	case AND_AND:
		return "AND_AND"
	case EQ:
		return "EQ"
	case NOT_EQ:
		return "NOT_EQ"
	case GTE:
		return "GTE"
	case LTE:
		return "LTE"
	case GT:
		return "GT"
	case LT:
		return "LT"
	case ARROW:
		return "ARROW"
	case PIPE_GT:
		return "PIPE_GT"
	default:
		return "UNKNOWN"
	}
}

var readableNames = map[TokenType]string{
	EOF:       "end of input",
	IDENT:     "identifier",
	LITERAL:   "literal",
	FN:        "'fn'",
	STRUCT:    "'struct'",
	ENUM:      "'enum'",
	LET:       "'let'",
	IF:        "'if'",
	ELSE:      "'else'",
	SEMICOLON: "';'",
	COLON:     "':'",
	COMMA:     "','",
	DOT:       "'.'",
	LPAREN:    "'('",
	RPAREN:    "')'",
	LBRACE:    "'{'",
	RBRACE:    "'}'",
	LBRACKET:  "'['",
	RBRACKET:  "']'",
	BACKSLASH: `'\'`,
	OP:        "operator",
	OP_ASSIGN: "compound assignment",
	BANG:      "'!'",
	TILDE:     "'~'",
	ASSIGN:    "'='",
	OR_OR:     "'||'",
	AND_AND:   "'&&'",
	EQ:        "'=='",
	NOT_EQ:    "'!='",
	GTE:       "'>='",
	LTE:       "'<='",
	GT:        "'>'",
	LT:        "'<'",
	ARROW:     "'->'",
	PIPE_GT:   "'|>'",
}

// Readable returns the spelling of a token type used in diagnostics, such
// as "';'" or "identifier".
func (tt TokenType) Readable() string {
	if name, ok := readableNames[tt]; ok {
		return name
	}
	return tt.String()
}

// Describe returns a diagnostic description of a concrete token, quoting
// operators and literals by their source text.
func (t Token) Describe(src string) string {
	switch t.Type {
	case OP:
		return "'" + t.Op.String() + "'"
	case OP_ASSIGN:
		return "'" + t.Op.String() + "='"
	case IDENT, LITERAL:
		lexeme := t.Lexeme(src)
		if len(lexeme) > 20 {
			lexeme = lexeme[:20] + "..."
		}
		return fmt.Sprintf("%s '%s'", t.Type.Readable(), lexeme)
	}
	return t.Type.Readable()
}

// Keywords map for identifying language keywords
var keywords = map[string]TokenType{
	"fn":     FN,
	"struct": STRUCT,
	"enum":   ENUM,
	"let":    LET,
	"if":     IF,
	"else":   ELSE,
}

// LookupIdent classifies an identifier lexeme as a keyword, a boolean
// literal or a plain identifier.
func LookupIdent(ident string) (TokenType, LiteralKind) {
	if tok, ok := keywords[ident]; ok {
		return tok, NoLiteral
	}
	if ident == "true" || ident == "false" {
		return LITERAL, Bool
	}
	return IDENT, NoLiteral
}
