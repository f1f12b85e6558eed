package parser

import (
	"github.com/sambeau/brine/pkg/brine/ast"
	"github.com/sambeau/brine/pkg/brine/lexer"
)

// parseType parses a type annotation:
//
//	name | (T, ...) | [T] | fn(T, ...) -> R
func (p *Parser) parseType() (ast.Type, error) {
	tok := p.current()
	switch tok.Type {
	case lexer.IDENT:
		p.bump()
		return ast.TypeFromName(p.lexeme(tok)), nil

	case lexer.LPAREN:
		elements, err := p.parseTypeArgs()
		if err != nil {
			return nil, err
		}
		return ast.TupleType{Elements: elements}, nil

	case lexer.LBRACKET:
		p.bump()
		element, err := p.parseType()
		if err != nil {
			return nil, err
		}
		p.bumpRecover(lexer.RBRACKET)
		return ast.ListType{Element: element}, nil

	case lexer.FN:
		p.bump()
		args, err := p.parseTypeArgs()
		if err != nil {
			return nil, err
		}
		if err := p.bumpExpect(lexer.ARROW); err != nil {
			return nil, err
		}
		ret, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return ast.FnType{Args: args, Return: ret}, nil
	}

	return nil, &ExpectedNodeError{Expected: "type", Found: tok}
}

func startsType(t lexer.TokenType) bool {
	switch t {
	case lexer.IDENT, lexer.LPAREN, lexer.LBRACKET, lexer.FN:
		return true
	}
	return false
}

// parseTypeArgs parses '(T (, T)* ,?)?)' with the same per-entry recovery
// as parseParams.
func (p *Parser) parseTypeArgs() ([]ast.Type, error) {
	if err := p.bumpExpect(lexer.LPAREN); err != nil {
		return nil, err
	}

	types := []ast.Type{}
	for first := true; ; first = false {
		tok := p.current()
		if tok.Type == lexer.RPAREN {
			break
		}
		if !first && tok.Type == lexer.COMMA && p.peek(1).Type == lexer.RPAREN {
			break
		}

		var sepErr error
		if !first {
			sepErr = p.bumpExpect(lexer.COMMA)
		}

		if cur := p.current().Type; !startsType(cur) && cur != lexer.COMMA {
			if sepErr == nil {
				return nil, &ExpectedSingleError{Expected: lexer.RPAREN, Found: p.current()}
			}
			return nil, &ExpectedAlternativesError{
				Expected: []lexer.TokenType{lexer.COMMA, lexer.RPAREN},
				Found:    p.current(),
			}
		}
		if sepErr != nil {
			p.recoverError(sepErr)
		}

		typ, err := p.parseType()
		if err != nil {
			p.recoverError(err)
			p.bumpWhile(func(t lexer.Token) bool {
				return t.Type != lexer.COMMA && t.Type != lexer.RPAREN && !startsType(t.Type)
			})
			continue
		}
		types = append(types, typ)
	}

	p.bumpCheck(lexer.COMMA)
	if err := p.bumpExpect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return types, nil
}
