package parser

import (
	"github.com/sambeau/brine/pkg/brine/ast"
	"github.com/sambeau/brine/pkg/brine/lexer"
)

// parseStatement parses one statement. At end of input it returns an
// *ast.EOFStatement.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.current().Type {
	case lexer.EOF:
		return &ast.EOFStatement{Token: p.current()}, nil
	case lexer.FN:
		stmt, err := p.parseFunctionStatement()
		if err != nil {
			return nil, err
		}
		return stmt, nil
	case lexer.STRUCT:
		stmt, err := p.parseStructStatement()
		if err != nil {
			return nil, err
		}
		return stmt, nil
	case lexer.ENUM:
		stmt, err := p.parseEnumStatement()
		if err != nil {
			return nil, err
		}
		return stmt, nil
	case lexer.LET:
		stmt, err := p.parseLetStatement()
		if err != nil {
			return nil, err
		}
		return stmt, nil
	default:
		stmt, err := p.parseExpressionStatement()
		if err != nil {
			return nil, err
		}
		return stmt, nil
	}
}

// parseExpressionStatement parses an expression and an optional ';'. The
// caller decides whether a missing ';' is acceptable.
func (p *Parser) parseExpressionStatement() (*ast.ExpressionStatement, error) {
	expr, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	stmt := &ast.ExpressionStatement{Expression: expr, EndToken: p.current()}
	p.bumpCheck(lexer.SEMICOLON)
	return stmt, nil
}

// fn name(params) -> type { ... }
func (p *Parser) parseFunctionStatement() (*ast.FunctionStatement, error) {
	stmt := &ast.FunctionStatement{Token: p.take()}

	name, err := p.takeExpect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	stmt.Name = p.lexeme(name)

	if stmt.Params, err = p.parseParams(lexer.LPAREN, lexer.RPAREN); err != nil {
		return nil, err
	}
	if err := p.bumpExpect(lexer.ARROW); err != nil {
		return nil, err
	}
	if stmt.ReturnType, err = p.parseType(); err != nil {
		return nil, err
	}
	if stmt.Block, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// struct Name { field: type, ... }
func (p *Parser) parseStructStatement() (*ast.StructStatement, error) {
	stmt := &ast.StructStatement{Token: p.take()}

	name, err := p.takeExpect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	stmt.Name = p.lexeme(name)

	if stmt.Fields, err = p.parseParams(lexer.LBRACE, lexer.RBRACE); err != nil {
		return nil, err
	}
	return stmt, nil
}

// enum Name { A, B, C }
func (p *Parser) parseEnumStatement() (*ast.EnumStatement, error) {
	stmt := &ast.EnumStatement{Token: p.take()}

	name, err := p.takeExpect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	stmt.Name = p.lexeme(name)

	if err := p.bumpExpect(lexer.LBRACE); err != nil {
		return nil, err
	}

	for {
		tok := p.current()
		switch tok.Type {
		case lexer.RBRACE:
			p.bump()
			return stmt, nil
		case lexer.IDENT:
			p.bump()
			stmt.Variants = append(stmt.Variants, p.lexeme(tok))
			if p.bumpCheck(lexer.COMMA) {
				continue
			}
			if p.bumpCheck(lexer.RBRACE) {
				return stmt, nil
			}
			return nil, &ExpectedAlternativesError{
				Expected: []lexer.TokenType{lexer.COMMA, lexer.RBRACE},
				Found:    p.current(),
			}
		default:
			return nil, &ExpectedAlternativesError{
				Expected: []lexer.TokenType{lexer.IDENT, lexer.RBRACE},
				Found:    tok,
			}
		}
	}
}

// let name = value;
func (p *Parser) parseLetStatement() (*ast.LetStatement, error) {
	stmt := &ast.LetStatement{Token: p.take()}

	name, err := p.takeExpect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	stmt.Name = p.lexeme(name)

	if err := p.bumpExpect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	if stmt.Value, err = p.parseExpression(0); err != nil {
		return nil, err
	}

	// The statement is complete without it, so a missing ';' is only noted.
	p.bumpRecover(lexer.SEMICOLON)
	return stmt, nil
}

// parseParams parses 'open (name: type (, name: type)* ,?)? close'. A bad
// entry is recorded and skipped; parsing carries on with the next one.
func (p *Parser) parseParams(open, close lexer.TokenType) ([]ast.Parameter, error) {
	if err := p.bumpExpect(open); err != nil {
		return nil, err
	}

	params := []ast.Parameter{}
	for first := true; ; first = false {
		tok := p.current()
		if tok.Type == close {
			break
		}
		if !first && tok.Type == lexer.COMMA && p.peek(1).Type == close {
			break
		}

		var sepErr error
		if !first {
			sepErr = p.bumpExpect(lexer.COMMA)
		}

		switch p.current().Type {
		case lexer.IDENT, lexer.COMMA:
		default:
			if sepErr == nil {
				return nil, &ExpectedSingleError{Expected: close, Found: p.current()}
			}
			return nil, &ExpectedAlternativesError{
				Expected: []lexer.TokenType{lexer.COMMA, close},
				Found:    p.current(),
			}
		}
		if sepErr != nil {
			p.recoverError(sepErr)
		}

		param, err := p.parseParam()
		if err != nil {
			p.recoverError(err)
			p.bumpWhile(func(t lexer.Token) bool {
				return t.Type != lexer.COMMA && t.Type != close && t.Type != lexer.IDENT
			})
			continue
		}
		params = append(params, param)
	}

	p.bumpCheck(lexer.COMMA)
	if err := p.bumpExpect(close); err != nil {
		return nil, err
	}
	return params, nil
}

// name: type
func (p *Parser) parseParam() (ast.Parameter, error) {
	name, err := p.takeExpect(lexer.IDENT)
	if err != nil {
		return ast.Parameter{}, err
	}
	if err := p.bumpExpect(lexer.COLON); err != nil {
		return ast.Parameter{}, err
	}
	typ, err := p.parseType()
	if err != nil {
		return ast.Parameter{}, err
	}
	return ast.Parameter{Token: name, Name: p.lexeme(name), Type: typ}, nil
}

// parseBlock parses '{ statements }'. Every statement but the last must be
// terminated; an unterminated last expression statement becomes the
// block's tail expression.
func (p *Parser) parseBlock() (*ast.BlockExpression, error) {
	open, err := p.takeExpect(lexer.LBRACE)
	if err != nil {
		return nil, err
	}
	block := &ast.BlockExpression{Token: open}

	for p.current().Type != lexer.RBRACE {
		if p.current().Type == lexer.EOF {
			return nil, &ExpectedSingleError{Expected: lexer.RBRACE, Found: p.current()}
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if es, ok := stmt.(*ast.ExpressionStatement); ok && !es.Terminated() && p.current().Type != lexer.RBRACE {
			p.recoverError(&ExpectedSingleError{Expected: lexer.SEMICOLON, Found: es.EndToken})
		}
		block.Statements = append(block.Statements, stmt)
	}
	p.bump()

	if n := len(block.Statements); n > 0 {
		if es, ok := block.Statements[n-1].(*ast.ExpressionStatement); ok && !es.Terminated() {
			block.Expression = es.Expression
			block.Statements = block.Statements[:n-1]
		}
	}
	return block, nil
}
