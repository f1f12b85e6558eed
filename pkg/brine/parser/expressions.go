package parser

import (
	"github.com/sambeau/brine/pkg/brine/ast"
	"github.com/sambeau/brine/pkg/brine/lexer"
)

// Binding powers. Higher binds tighter. Infix operators carry a (left,
// right) pair with right = left+1, which folds equal operators to the left.
// Modulo sits below the bitwise operators and pipe below the arithmetic
// ones; both are intentional.
var infixPowers = map[ast.BinaryOperator][2]int{
	ast.BoolOr:   {1, 2},
	ast.BoolAnd:  {3, 4},
	ast.Eq:       {7, 8},
	ast.Ne:       {7, 8},
	ast.Ge:       {7, 8},
	ast.Le:       {7, 8},
	ast.Gt:       {7, 8},
	ast.Lt:       {7, 8},
	ast.Pipe:     {9, 10},
	ast.Mod:      {11, 12},
	ast.BitOr:    {13, 14},
	ast.BitAnd:   {15, 16},
	ast.BitXor:   {17, 18},
	ast.BitLeft:  {19, 20},
	ast.BitRight: {19, 20},
	ast.Add:      {21, 22},
	ast.Sub:      {21, 22},
	ast.Mul:      {23, 24},
	ast.Div:      {23, 24},
}

// InfixBindingPower returns the left and right binding power of a binary
// operator.
func InfixBindingPower(op ast.BinaryOperator) (int, int) {
	bp := infixPowers[op]
	return bp[0], bp[1]
}

// PrefixBindingPower returns the right binding power of a unary operator.
func PrefixBindingPower(op ast.UnaryOperator) int {
	if op == ast.BoolNot {
		return 5
	}
	return 25
}

var opKindOperators = map[lexer.OpKind]ast.BinaryOperator{
	lexer.BitOr:      ast.BitOr,
	lexer.BitAnd:     ast.BitAnd,
	lexer.BitXor:     ast.BitXor,
	lexer.ShiftLeft:  ast.BitLeft,
	lexer.ShiftRight: ast.BitRight,
	lexer.Add:        ast.Add,
	lexer.Sub:        ast.Sub,
	lexer.Mul:        ast.Mul,
	lexer.Div:        ast.Div,
	lexer.Mod:        ast.Mod,
}

var tokenOperators = map[lexer.TokenType]ast.BinaryOperator{
	lexer.PIPE_GT: ast.Pipe,
	lexer.OR_OR:   ast.BoolOr,
	lexer.AND_AND: ast.BoolAnd,
	lexer.EQ:      ast.Eq,
	lexer.NOT_EQ:  ast.Ne,
	lexer.GTE:     ast.Ge,
	lexer.LTE:     ast.Le,
	lexer.GT:      ast.Gt,
	lexer.LT:      ast.Lt,
}

// infixOperator maps a token to the binary operator it spells, if any.
func infixOperator(tok lexer.Token) (ast.BinaryOperator, bool) {
	if tok.Type == lexer.OP {
		op, ok := opKindOperators[tok.Op]
		return op, ok
	}
	op, ok := tokenOperators[tok.Type]
	return op, ok
}

// parseExpression parses an expression whose operators all bind at least
// as tightly as minBP.
func (p *Parser) parseExpression(minBP int) (ast.Expression, error) {
	lhs, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.current()
		op, ok := infixOperator(tok)
		if !ok {
			break
		}
		lbp, rbp := InfixBindingPower(op)
		if lbp < minBP {
			break
		}

		m := p.mark()
		p.bump()
		rhs, err := p.parseExpression(rbp)
		if err != nil {
			p.reset(m)
			return nil, err
		}
		lhs = &ast.BinaryExpression{Token: tok, LHS: lhs, Op: op, RHS: rhs}
	}

	return lhs, nil
}

// parsePrefix parses a term: a literal, a name, a bracketed form, an if, a
// closure or a prefix operator applied to a term.
func (p *Parser) parsePrefix() (ast.Expression, error) {
	tok := p.current()
	switch tok.Type {
	case lexer.LITERAL:
		p.bump()
		return p.parseLiteral(tok), nil

	case lexer.IDENT:
		p.bump()
		return &ast.Identifier{Token: tok, Name: p.lexeme(tok)}, nil

	case lexer.LPAREN:
		return p.parseGroupOrTuple()

	case lexer.LBRACKET:
		return p.parseList()

	case lexer.LBRACE:
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return block, nil

	case lexer.IF:
		ie, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		return ie, nil

	case lexer.BACKSLASH:
		return p.parseClosure()

	case lexer.BANG:
		return p.parseUnary(ast.BoolNot)

	case lexer.TILDE:
		return p.parseUnary(ast.BitNot)

	case lexer.OP:
		switch tok.Op {
		case lexer.Add:
			return p.parseUnary(ast.Plus)
		case lexer.Sub:
			return p.parseUnary(ast.Minus)
		}
	}

	return nil, &ExpectedNodeError{Expected: "expression", Found: tok}
}

func (p *Parser) parseUnary(op ast.UnaryOperator) (ast.Expression, error) {
	tok := p.take()
	rhs, err := p.parseExpression(PrefixBindingPower(op))
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpression{Token: tok, Op: op, RHS: rhs}, nil
}

// parseGroupOrTuple parses '()', '(expr)' or '(expr, ...)'. A grouping
// returns the inner expression itself; a comma after the first element
// makes it a tuple.
func (p *Parser) parseGroupOrTuple() (ast.Expression, error) {
	open := p.take()

	if p.bumpCheck(lexer.RPAREN) {
		return &ast.TupleLiteral{Token: open, Elements: []ast.Expression{}}, nil
	}

	first, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if p.current().Type != lexer.COMMA {
		if err := p.bumpExpect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return first, nil
	}

	rest, err := p.parseExpressionList(lexer.RPAREN)
	if err != nil {
		return nil, err
	}
	return &ast.TupleLiteral{Token: open, Elements: append([]ast.Expression{first}, rest...)}, nil
}

// parseList parses '[expr, ...]'
func (p *Parser) parseList() (ast.Expression, error) {
	list := &ast.ListLiteral{Token: p.take(), Elements: []ast.Expression{}}

	if p.bumpCheck(lexer.RBRACKET) {
		return list, nil
	}

	first, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	list.Elements = append(list.Elements, first)

	rest, err := p.parseExpressionList(lexer.RBRACKET)
	if err != nil {
		return nil, err
	}
	list.Elements = append(list.Elements, rest...)
	return list, nil
}

// parseExpressionList parses the '(, expr)* ,? close' that follows the
// first element of a tuple or list.
func (p *Parser) parseExpressionList(close lexer.TokenType) ([]ast.Expression, error) {
	exprs := []ast.Expression{}
	for {
		if p.bumpCheck(close) {
			return exprs, nil
		}
		if p.current().Type != lexer.COMMA {
			return nil, &ExpectedAlternativesError{
				Expected: []lexer.TokenType{lexer.COMMA, close},
				Found:    p.current(),
			}
		}
		p.bump()
		// trailing comma
		if p.bumpCheck(close) {
			return exprs, nil
		}
		expr, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
}

// if cond { ... } (else if ... | else { ... })?
func (p *Parser) parseIf() (*ast.IfExpression, error) {
	ie := &ast.IfExpression{Token: p.take()}

	cond, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	ie.Condition = cond

	if ie.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}

	elseTok, ok := p.takeCheck(lexer.ELSE)
	if !ok {
		return ie, nil
	}

	switch p.current().Type {
	case lexer.IF:
		next, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		ie.Else = &ast.ElseIf{Token: elseTok, If: next}
	case lexer.LBRACE:
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		ie.Else = &ast.ElseBlock{Token: elseTok, Block: block}
	default:
		return nil, &ExpectedAlternativesError{
			Expected: []lexer.TokenType{lexer.IF, lexer.LBRACE},
			Found:    p.current(),
		}
	}
	return ie, nil
}

// \(params) -> type { ... }
func (p *Parser) parseClosure() (ast.Expression, error) {
	ce := &ast.ClosureExpression{Token: p.take()}

	var err error
	if ce.Params, err = p.parseParams(lexer.LPAREN, lexer.RPAREN); err != nil {
		return nil, err
	}
	if err := p.bumpExpect(lexer.ARROW); err != nil {
		return nil, err
	}
	if ce.ReturnType, err = p.parseType(); err != nil {
		return nil, err
	}
	if ce.Block, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return ce, nil
}
