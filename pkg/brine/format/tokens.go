package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sambeau/brine/pkg/brine/errors"
	"github.com/sambeau/brine/pkg/brine/lexer"
)

// Tokens lists tokens one per line as position, kind and quoted lexeme:
//
//	1:1      LET          "let"
//	1:5      IDENT        "x"
//	1:7      ASSIGN       "="
func Tokens(src string, tokens []lexer.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		line, col := errors.Position(src, tok.Start)
		fmt.Fprintf(&sb, "%-8s %-12s %s\n", fmt.Sprintf("%d:%d", line, col), tokenKind(tok), strconv.Quote(tok.Lexeme(src)))
	}
	return sb.String()
}

func tokenKind(tok lexer.Token) string {
	switch tok.Type {
	case lexer.OP, lexer.OP_ASSIGN:
		return tok.Type.String() + " " + tok.Op.String()
	case lexer.LITERAL:
		kind := tok.Type.String() + " " + tok.Lit.String()
		if !tok.Terminated && (tok.Lit == lexer.Str || tok.Lit == lexer.Char) {
			kind += "!"
		}
		return kind
	}
	return tok.Type.String()
}
