package format

import (
	"strconv"

	"github.com/sambeau/brine/pkg/brine/ast"
)

// Tree renders node as an indented outline, one node per line:
//
//	FunctionStatement add
//	  Params
//	    a: i32
//	  ReturnType i32
//	  BlockExpression
//	    Tail
//	      BinaryExpression Add
//	        Identifier a
//	        Identifier b
func Tree(node ast.Node) string {
	p := newTreePrinter()
	p.tree(node)
	return p.String()
}

func (p *Printer) child(label string, node ast.Node) {
	p.line(label)
	p.indentInc()
	p.tree(node)
	p.indentDec()
}

func (p *Printer) params(label string, params []ast.Parameter) {
	if len(params) == 0 {
		return
	}
	p.line(label)
	p.indentInc()
	for _, param := range params {
		p.line(param.String())
	}
	p.indentDec()
}

func (p *Printer) tree(node ast.Node) {
	switch n := node.(type) {
	case nil:
		p.line("<nil>")

	case *ast.Program:
		p.line("Program")
		p.indentInc()
		for _, stmt := range n.Statements {
			p.tree(stmt)
		}
		p.indentDec()

	case *ast.FunctionStatement:
		p.line("FunctionStatement " + n.Name)
		p.indentInc()
		p.params("Params", n.Params)
		p.line("ReturnType " + n.ReturnType.String())
		p.tree(n.Block)
		p.indentDec()

	case *ast.StructStatement:
		p.line("StructStatement " + n.Name)
		p.indentInc()
		p.params("Fields", n.Fields)
		p.indentDec()

	case *ast.EnumStatement:
		p.line("EnumStatement " + n.Name)
		p.indentInc()
		for _, v := range n.Variants {
			p.line("Variant " + v)
		}
		p.indentDec()

	case *ast.LetStatement:
		p.line("LetStatement " + n.Name)
		p.indentInc()
		p.tree(n.Value)
		p.indentDec()

	case *ast.ExpressionStatement:
		label := "ExpressionStatement"
		if !n.Terminated() {
			label += " (unterminated)"
		}
		p.line(label)
		p.indentInc()
		p.tree(n.Expression)
		p.indentDec()

	case *ast.EOFStatement:
		p.line("EOF")

	case *ast.Identifier:
		p.line("Identifier " + n.Name)

	case *ast.BoolLiteral:
		p.line("BoolLiteral " + n.String())
	case *ast.IntLiteral:
		p.line("IntLiteral " + n.String())
	case *ast.FloatLiteral:
		p.line("FloatLiteral " + n.String())
	case *ast.StrLiteral:
		p.line("StrLiteral " + n.String())
	case *ast.CharLiteral:
		p.line("CharLiteral " + n.String())

	case *ast.TupleLiteral:
		p.line("TupleLiteral (" + strconv.Itoa(len(n.Elements)) + ")")
		p.indentInc()
		for _, e := range n.Elements {
			p.tree(e)
		}
		p.indentDec()

	case *ast.ListLiteral:
		p.line("ListLiteral (" + strconv.Itoa(len(n.Elements)) + ")")
		p.indentInc()
		for _, e := range n.Elements {
			p.tree(e)
		}
		p.indentDec()

	case *ast.BlockExpression:
		p.line("BlockExpression")
		p.indentInc()
		for _, stmt := range n.Statements {
			p.tree(stmt)
		}
		if n.Expression != nil {
			p.child("Tail", n.Expression)
		}
		p.indentDec()

	case *ast.IfExpression:
		p.line("IfExpression")
		p.indentInc()
		p.child("Condition", n.Condition)
		p.tree(n.Body)
		if n.Else != nil {
			p.tree(n.Else)
		}
		p.indentDec()

	case *ast.ElseBlock:
		p.child("Else", n.Block)

	case *ast.ElseIf:
		p.child("ElseIf", n.If)

	case *ast.ClosureExpression:
		p.line("ClosureExpression")
		p.indentInc()
		p.params("Params", n.Params)
		p.line("ReturnType " + n.ReturnType.String())
		p.tree(n.Block)
		p.indentDec()

	case *ast.CallExpression:
		p.line("CallExpression")
		p.indentInc()
		p.child("Function", n.Function)
		for _, arg := range n.Arguments {
			p.tree(arg)
		}
		p.indentDec()

	case *ast.BinaryExpression:
		p.line("BinaryExpression " + n.Op.Name())
		p.indentInc()
		p.tree(n.LHS)
		p.tree(n.RHS)
		p.indentDec()

	case *ast.UnaryExpression:
		p.line("UnaryExpression " + n.Op.Name())
		p.indentInc()
		p.tree(n.RHS)
		p.indentDec()

	default:
		p.line(node.String())
	}
}
