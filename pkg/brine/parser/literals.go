package parser

import (
	stderrors "errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/holiman/uint256"

	"github.com/sambeau/brine/pkg/brine/ast"
	"github.com/sambeau/brine/pkg/brine/errors"
	"github.com/sambeau/brine/pkg/brine/lexer"
)

// maxIntBits is the widest integer literal the language accepts.
const maxIntBits = 128

// parseLiteral converts a LITERAL token into its value. The scanner has
// already checked the shape of the text, so a conversion failure other
// than overflow is a bug and panics.
func (p *Parser) parseLiteral(tok lexer.Token) ast.Literal {
	lexeme := p.lexeme(tok)

	switch tok.Lit {
	case lexer.Bool:
		return &ast.BoolLiteral{Token: tok, Value: lexeme == "true"}

	case lexer.Int:
		lit := &ast.IntLiteral{Token: tok}
		digits := strings.ReplaceAll(lexeme, "_", "")
		n, ok := new(big.Int).SetString(digits, 10)
		if !ok {
			panic(fmt.Sprintf("parser: malformed integer literal %q at %d", lexeme, tok.Start))
		}
		if n.BitLen() > maxIntBits {
			p.recoverError(errors.NewAt("LIT-0003", tok.Start, tok.End, map[string]any{"Literal": lexeme}))
			return lit
		}
		v, _ := uint256.FromBig(n)
		lit.Value = *v
		return lit

	case lexer.Float:
		lit := &ast.FloatLiteral{Token: tok}
		v, err := strconv.ParseFloat(strings.ReplaceAll(lexeme, "_", ""), 64)
		if err != nil {
			if stderrors.Is(err, strconv.ErrRange) {
				p.recoverError(errors.NewAt("LIT-0004", tok.Start, tok.End, map[string]any{"Literal": lexeme}))
				return lit
			}
			panic(fmt.Sprintf("parser: malformed float literal %q at %d", lexeme, tok.Start))
		}
		lit.Value = v
		return lit

	case lexer.Str:
		value := p.unquote(tok, lexeme, "LIT-0001")
		return &ast.StrLiteral{Token: tok, Value: value}

	case lexer.Char:
		value := p.unquote(tok, lexeme, "LIT-0002")
		return &ast.CharLiteral{Token: tok, Value: value}
	}

	panic(fmt.Sprintf("parser: literal token with kind %s at %d", tok.Lit, tok.Start))
}

// unquote strips the delimiters from a string or char lexeme. Escapes are
// kept as written. An unterminated literal has no closing quote to strip
// and is reported under code.
func (p *Parser) unquote(tok lexer.Token, lexeme, code string) string {
	body := lexeme[1:]
	if !tok.Terminated {
		p.recoverError(errors.NewAt(code, tok.Start, tok.End, nil))
		return body
	}
	return body[:len(body)-1]
}
