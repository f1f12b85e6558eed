package format

import (
	"strings"

	"github.com/sambeau/brine/pkg/brine/ast"
	"github.com/sambeau/brine/pkg/brine/parser"
)

// Source renders a program as canonical Brine source. Parsing the output
// gives back the same tree.
func Source(prog *ast.Program) string {
	if prog == nil || len(prog.Statements) == 0 {
		return ""
	}
	p := NewPrinter()
	p.formatProgram(prog)
	p.newline()
	return p.String()
}

// SourceNode renders a single node as canonical source.
func SourceNode(node ast.Node) string {
	if node == nil {
		return ""
	}
	p := NewPrinter()
	p.formatNode(node)
	return p.String()
}

// formatProgram separates declarations from their neighbours with a blank
// line
func (p *Printer) formatProgram(prog *ast.Program) {
	for i, stmt := range prog.Statements {
		if i > 0 {
			p.newline()
			if isDeclaration(stmt) || isDeclaration(prog.Statements[i-1]) {
				p.newline()
			}
		}
		p.formatNode(stmt)
	}
}

func isDeclaration(stmt ast.Statement) bool {
	switch stmt.(type) {
	case *ast.FunctionStatement, *ast.StructStatement, *ast.EnumStatement:
		return true
	}
	return false
}

func (p *Printer) formatNode(node ast.Node) {
	switch n := node.(type) {
	// Statements
	case *ast.Program:
		p.formatProgram(n)
	case *ast.FunctionStatement:
		p.write("fn " + n.Name + "(" + formatParams(n.Params) + ") -> " + n.ReturnType.String() + " ")
		p.formatBlock(n.Block)
	case *ast.StructStatement:
		p.formatBody("struct "+n.Name, paramStrings(n.Fields))
	case *ast.EnumStatement:
		p.formatBody("enum "+n.Name, n.Variants)
	case *ast.LetStatement:
		p.write("let " + n.Name + " = ")
		p.formatExpression(n.Value)
		p.write(";")
	case *ast.ExpressionStatement:
		p.formatExpression(n.Expression)
		if n.Terminated() {
			p.write(";")
		}
	case *ast.EOFStatement:

	case ast.Expression:
		p.formatExpression(n)

	case *ast.ElseBlock:
		p.write("else ")
		p.formatBlock(n.Block)
	case *ast.ElseIf:
		p.write("else ")
		p.formatIf(n.If)

	default:
		p.write(node.String())
	}
}

// formatBody writes '{ a, b }' when it fits, one entry per line otherwise.
func (p *Printer) formatBody(head string, entries []string) {
	p.write(head + " ")
	if len(entries) == 0 {
		p.write("{}")
		return
	}

	inline := "{ " + strings.Join(entries, ", ") + " }"
	if p.fitsOnLine(inline, MaxLineWidth) {
		p.write(inline)
		return
	}

	p.write("{")
	p.newline()
	p.indentInc()
	for i, entry := range entries {
		p.writeIndent()
		p.write(entry)
		if TrailingCommaMultiline || i < len(entries)-1 {
			p.write(",")
		}
		p.newline()
	}
	p.indentDec()
	p.writeIndent()
	p.write("}")
}

func paramStrings(params []ast.Parameter) []string {
	out := make([]string, len(params))
	for i, param := range params {
		out[i] = param.String()
	}
	return out
}

func formatParams(params []ast.Parameter) string {
	return strings.Join(paramStrings(params), ", ")
}

func (p *Printer) formatExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Identifier:
		p.write(e.Name)
	case *ast.BoolLiteral, *ast.IntLiteral, *ast.FloatLiteral, *ast.StrLiteral, *ast.CharLiteral:
		p.write(e.String())
	case *ast.TupleLiteral:
		p.write("(")
		p.formatList(e.Elements)
		if len(e.Elements) == 1 {
			p.write(",")
		}
		p.write(")")
	case *ast.ListLiteral:
		p.formatListLiteral(e)
	case *ast.BlockExpression:
		p.formatBlock(e)
	case *ast.IfExpression:
		p.formatIf(e)
	case *ast.ClosureExpression:
		p.write(`\(` + formatParams(e.Params) + ") -> " + e.ReturnType.String() + " ")
		p.formatBlock(e.Block)
	case *ast.CallExpression:
		p.formatOperand(e.Function, needsParensAsCallee(e.Function))
		p.write("(")
		p.formatList(e.Arguments)
		p.write(")")
	case *ast.BinaryExpression:
		p.formatOperand(e.LHS, leftNeedsParens(e.LHS, e.Op))
		p.write(" " + e.Op.String() + " ")
		p.formatOperand(e.RHS, rightNeedsParens(e.RHS, e.Op))
	case *ast.UnaryExpression:
		p.write(e.Op.String())
		p.formatOperand(e.RHS, operandNeedsParens(e.RHS, e.Op))
	default:
		p.write(expr.String())
	}
}

func (p *Printer) formatOperand(expr ast.Expression, parens bool) {
	if parens {
		p.write("(")
	}
	p.formatExpression(expr)
	if parens {
		p.write(")")
	}
}

func (p *Printer) formatList(exprs []ast.Expression) {
	for i, expr := range exprs {
		if i > 0 {
			p.write(", ")
		}
		p.formatExpression(expr)
	}
}

// formatListLiteral breaks a list over several lines when it does not fit
func (p *Printer) formatListLiteral(ll *ast.ListLiteral) {
	scratch := NewPrinter()
	scratch.formatList(ll.Elements)
	inline := "[" + scratch.String() + "]"
	if len(ll.Elements) == 0 || p.fitsOnLine(inline, MaxLineWidth) {
		p.write(inline)
		return
	}

	p.write("[")
	p.newline()
	p.indentInc()
	for i, elem := range ll.Elements {
		p.writeIndent()
		p.formatExpression(elem)
		if TrailingCommaMultiline || i < len(ll.Elements)-1 {
			p.write(",")
		}
		p.newline()
	}
	p.indentDec()
	p.writeIndent()
	p.write("]")
}

// formatBlock writes '{}' and '{ tail }' on one line; anything with
// statements gets one line per statement.
func (p *Printer) formatBlock(block *ast.BlockExpression) {
	if block == nil || (len(block.Statements) == 0 && block.Expression == nil) {
		p.write("{}")
		return
	}

	if len(block.Statements) == 0 {
		inline := "{ " + inlineExpression(block.Expression) + " }"
		if p.fitsOnLine(inline, MaxLineWidth) {
			p.write(inline)
			return
		}
	}

	p.write("{")
	p.newline()
	p.indentInc()
	for _, stmt := range block.Statements {
		p.writeIndent()
		p.formatNode(stmt)
		p.newline()
	}
	if block.Expression != nil {
		p.writeIndent()
		p.formatExpression(block.Expression)
		p.newline()
	}
	p.indentDec()
	p.writeIndent()
	p.write("}")
}

func (p *Printer) formatIf(ie *ast.IfExpression) {
	p.write("if ")
	p.formatExpression(ie.Condition)
	p.write(" ")
	p.formatBlock(ie.Body)
	if ie.Else != nil {
		p.write(" ")
		p.formatNode(ie.Else)
	}
}

// inlineExpression renders expr at column zero of a scratch printer
func inlineExpression(expr ast.Expression) string {
	p := NewPrinter()
	p.formatExpression(expr)
	return p.String()
}

// ============================================================================
// Parentheses
// ============================================================================

// leftNeedsParens reports whether lhs must be bracketed to stay the left
// operand of op. Besides looser binary operators this covers a trailing
// prefix operator, which would otherwise extend over op: (a + !b) == c.
func leftNeedsParens(lhs ast.Expression, op ast.BinaryOperator) bool {
	lbp, _ := parser.InfixBindingPower(op)
	if be, ok := lhs.(*ast.BinaryExpression); ok {
		if childLBP, _ := parser.InfixBindingPower(be.Op); childLBP < lbp {
			return true
		}
	}
	return opensRight(lhs, lbp)
}

// rightNeedsParens reports whether rhs must be bracketed to stay the right
// operand of op. Operators fold to the left, so equal precedence needs
// brackets on this side.
func rightNeedsParens(rhs ast.Expression, op ast.BinaryOperator) bool {
	be, ok := rhs.(*ast.BinaryExpression)
	if !ok {
		return false
	}
	lbp, _ := parser.InfixBindingPower(op)
	childLBP, _ := parser.InfixBindingPower(be.Op)
	return childLBP <= lbp
}

func operandNeedsParens(rhs ast.Expression, op ast.UnaryOperator) bool {
	be, ok := rhs.(*ast.BinaryExpression)
	if !ok {
		return false
	}
	childLBP, _ := parser.InfixBindingPower(be.Op)
	return childLBP < parser.PrefixBindingPower(op)
}

func needsParensAsCallee(fn ast.Expression) bool {
	switch fn.(type) {
	case *ast.Identifier, *ast.CallExpression:
		return false
	}
	return true
}

// opensRight reports whether the unbracketed rendering of expr ends in a
// prefix operator that would take an infix operator of power lbp as part of
// its operand.
func opensRight(expr ast.Expression, lbp int) bool {
	switch e := expr.(type) {
	case *ast.UnaryExpression:
		if parser.PrefixBindingPower(e.Op) <= lbp {
			return true
		}
		if operandNeedsParens(e.RHS, e.Op) {
			return false
		}
		return opensRight(e.RHS, lbp)
	case *ast.BinaryExpression:
		if rightNeedsParens(e.RHS, e.Op) {
			return false
		}
		return opensRight(e.RHS, lbp)
	}
	return false
}
