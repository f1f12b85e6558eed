package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/holiman/uint256"

	"github.com/sambeau/brine/pkg/brine/lexer"
)

// Node represents any node in the AST
type Node interface {
	Pos() int // byte offset of the node's first token
	String() string
}

// Statement represents statement nodes
type Statement interface {
	Node
	statementNode()
}

// Expression represents expression nodes
type Expression interface {
	Node
	expressionNode()
}

// Literal is implemented by the literal expression nodes
type Literal interface {
	Expression
	literalNode()
}

// ElseBranch is the optional tail of an if expression: *ElseBlock or *ElseIf
type ElseBranch interface {
	Node
	elseNode()
}

// Program is the root of a parsed source file
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() int {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return 0
}

func (p *Program) String() string {
	var out bytes.Buffer
	for i, s := range p.Statements {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(s.String())
	}
	return out.String()
}

// Parameter is a name and its type, used for function parameters and
// struct fields
type Parameter struct {
	Token lexer.Token // the name token
	Name  string
	Type  Type
}

func (p Parameter) String() string {
	return p.Name + ": " + p.Type.String()
}

func joinParams(params []Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

func joinExprs(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// ============================================================================
// Statements
// ============================================================================

// FunctionStatement represents 'fn name(params) -> type { ... }'
type FunctionStatement struct {
	Token      lexer.Token // the 'fn' token
	Name       string
	Params     []Parameter
	ReturnType Type
	Block      *BlockExpression
}

func (fs *FunctionStatement) statementNode() {}
func (fs *FunctionStatement) Pos() int       { return fs.Token.Start }
func (fs *FunctionStatement) String() string {
	return "fn " + fs.Name + "(" + joinParams(fs.Params) + ") -> " + fs.ReturnType.String() + " " + fs.Block.String()
}

// StructStatement represents 'struct Name { field: type, ... }'
type StructStatement struct {
	Token  lexer.Token // the 'struct' token
	Name   string
	Fields []Parameter
}

func (ss *StructStatement) statementNode() {}
func (ss *StructStatement) Pos() int       { return ss.Token.Start }
func (ss *StructStatement) String() string {
	if len(ss.Fields) == 0 {
		return "struct " + ss.Name + " {}"
	}
	return "struct " + ss.Name + " { " + joinParams(ss.Fields) + " }"
}

// EnumStatement represents 'enum Name { A, B, C }'
type EnumStatement struct {
	Token    lexer.Token // the 'enum' token
	Name     string
	Variants []string
}

func (es *EnumStatement) statementNode() {}
func (es *EnumStatement) Pos() int       { return es.Token.Start }
func (es *EnumStatement) String() string {
	if len(es.Variants) == 0 {
		return "enum " + es.Name + " {}"
	}
	return "enum " + es.Name + " { " + strings.Join(es.Variants, ", ") + " }"
}

// LetStatement represents 'let name = value;'
type LetStatement struct {
	Token lexer.Token // the 'let' token
	Name  string
	Value Expression
}

func (ls *LetStatement) statementNode() {}
func (ls *LetStatement) Pos() int       { return ls.Token.Start }
func (ls *LetStatement) String() string {
	return "let " + ls.Name + " = " + ls.Value.String() + ";"
}

// ExpressionStatement is an expression used as a statement. EndToken is the
// token that followed the expression: a ';' when the statement was
// terminated, otherwise whatever came next (which was not consumed).
type ExpressionStatement struct {
	Expression Expression
	EndToken   lexer.Token
}

func (es *ExpressionStatement) statementNode() {}
func (es *ExpressionStatement) Pos() int       { return es.Expression.Pos() }

// Terminated reports whether the statement ended with ';'.
func (es *ExpressionStatement) Terminated() bool {
	return es.EndToken.Type == lexer.SEMICOLON
}

func (es *ExpressionStatement) String() string {
	if es.Terminated() {
		return es.Expression.String() + ";"
	}
	return es.Expression.String()
}

// EOFStatement marks the end of input. The parser returns it to signal the
// end of the statement loop; it never appears in a Program.
type EOFStatement struct {
	Token lexer.Token
}

func (es *EOFStatement) statementNode() {}
func (es *EOFStatement) Pos() int       { return es.Token.Start }
func (es *EOFStatement) String() string { return "" }

// ============================================================================
// Expressions
// ============================================================================

// Identifier represents a name
type Identifier struct {
	Token lexer.Token
	Name  string
}

func (i *Identifier) expressionNode() {}
func (i *Identifier) Pos() int        { return i.Token.Start }
func (i *Identifier) String() string  { return i.Name }

// BlockExpression represents '{ statements... tail }'. Expression is the
// tail expression, nil when the block ends with a terminated statement.
type BlockExpression struct {
	Token      lexer.Token // the '{' token
	Statements []Statement
	Expression Expression
}

func (be *BlockExpression) expressionNode() {}
func (be *BlockExpression) Pos() int        { return be.Token.Start }
func (be *BlockExpression) String() string {
	if len(be.Statements) == 0 && be.Expression == nil {
		return "{}"
	}
	var out bytes.Buffer
	out.WriteString("{")
	for _, s := range be.Statements {
		out.WriteString(" ")
		out.WriteString(s.String())
	}
	if be.Expression != nil {
		out.WriteString(" ")
		out.WriteString(be.Expression.String())
	}
	out.WriteString(" }")
	return out.String()
}

// ClosureExpression represents '\(params) -> type { ... }'
type ClosureExpression struct {
	Token      lexer.Token // the '\' token
	Params     []Parameter
	ReturnType Type
	Block      *BlockExpression
}

func (ce *ClosureExpression) expressionNode() {}
func (ce *ClosureExpression) Pos() int        { return ce.Token.Start }
func (ce *ClosureExpression) String() string {
	return `\(` + joinParams(ce.Params) + ") -> " + ce.ReturnType.String() + " " + ce.Block.String()
}

// CallExpression represents 'function(arguments)'. The grammar has no call
// syntax yet, so the parser never produces one.
type CallExpression struct {
	Token     lexer.Token // the '(' token
	Function  Expression
	Arguments []Expression
}

func (ce *CallExpression) expressionNode() {}
func (ce *CallExpression) Pos() int        { return ce.Function.Pos() }
func (ce *CallExpression) String() string {
	return ce.Function.String() + "(" + joinExprs(ce.Arguments) + ")"
}

// IfExpression represents 'if cond { ... } else ...'
type IfExpression struct {
	Token     lexer.Token // the 'if' token
	Condition Expression
	Body      *BlockExpression
	Else      ElseBranch // nil, *ElseBlock or *ElseIf
}

func (ie *IfExpression) expressionNode() {}
func (ie *IfExpression) Pos() int        { return ie.Token.Start }
func (ie *IfExpression) String() string {
	s := "if " + ie.Condition.String() + " " + ie.Body.String()
	if ie.Else != nil {
		s += " " + ie.Else.String()
	}
	return s
}

// ElseBlock is a final 'else { ... }'
type ElseBlock struct {
	Token lexer.Token // the 'else' token
	Block *BlockExpression
}

func (eb *ElseBlock) elseNode()      {}
func (eb *ElseBlock) Pos() int       { return eb.Token.Start }
func (eb *ElseBlock) String() string { return "else " + eb.Block.String() }

// ElseIf is an 'else if ...' continuing the chain
type ElseIf struct {
	Token lexer.Token // the 'else' token
	If    *IfExpression
}

func (ei *ElseIf) elseNode()      {}
func (ei *ElseIf) Pos() int       { return ei.Token.Start }
func (ei *ElseIf) String() string { return "else " + ei.If.String() }

// BinaryExpression represents 'lhs op rhs'
type BinaryExpression struct {
	Token lexer.Token // the operator token
	LHS   Expression
	Op    BinaryOperator
	RHS   Expression
}

func (be *BinaryExpression) expressionNode() {}
func (be *BinaryExpression) Pos() int        { return be.LHS.Pos() }
func (be *BinaryExpression) String() string {
	return "(" + be.LHS.String() + " " + be.Op.String() + " " + be.RHS.String() + ")"
}

// UnaryExpression represents 'op rhs'
type UnaryExpression struct {
	Token lexer.Token // the operator token
	Op    UnaryOperator
	RHS   Expression
}

func (ue *UnaryExpression) expressionNode() {}
func (ue *UnaryExpression) Pos() int        { return ue.Token.Start }
func (ue *UnaryExpression) String() string {
	return "(" + ue.Op.String() + ue.RHS.String() + ")"
}

// ============================================================================
// Literals
// ============================================================================

// BoolLiteral represents 'true' or 'false'
type BoolLiteral struct {
	Token lexer.Token
	Value bool
}

func (bl *BoolLiteral) expressionNode() {}
func (bl *BoolLiteral) literalNode()    {}
func (bl *BoolLiteral) Pos() int        { return bl.Token.Start }
func (bl *BoolLiteral) String() string  { return strconv.FormatBool(bl.Value) }

// IntLiteral is an unsigned integer of at most 128 bits
type IntLiteral struct {
	Token lexer.Token
	Value uint256.Int
}

func (il *IntLiteral) expressionNode() {}
func (il *IntLiteral) literalNode()    {}
func (il *IntLiteral) Pos() int        { return il.Token.Start }
func (il *IntLiteral) String() string  { return il.Value.ToBig().String() }

// FloatLiteral is a double-precision float
type FloatLiteral struct {
	Token lexer.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode() {}
func (fl *FloatLiteral) literalNode()    {}
func (fl *FloatLiteral) Pos() int        { return fl.Token.Start }
func (fl *FloatLiteral) String() string  { return FormatFloat(fl.Value) }

// FormatFloat renders a float so that it scans back as a float literal:
// no exponent and always a '.'.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}

// StrLiteral holds the raw text between the quotes; escapes are not decoded
type StrLiteral struct {
	Token lexer.Token
	Value string
}

func (sl *StrLiteral) expressionNode() {}
func (sl *StrLiteral) literalNode()    {}
func (sl *StrLiteral) Pos() int        { return sl.Token.Start }
func (sl *StrLiteral) String() string  { return `"` + sl.Value + `"` }

// CharLiteral holds the raw text between the quotes; escapes are not decoded
type CharLiteral struct {
	Token lexer.Token
	Value string
}

func (cl *CharLiteral) expressionNode() {}
func (cl *CharLiteral) literalNode()    {}
func (cl *CharLiteral) Pos() int        { return cl.Token.Start }
func (cl *CharLiteral) String() string  { return "'" + cl.Value + "'" }

// TupleLiteral represents '(a, b, ...)'. A one-element tuple is written
// with a trailing comma.
type TupleLiteral struct {
	Token    lexer.Token // the '(' token
	Elements []Expression
}

func (tl *TupleLiteral) expressionNode() {}
func (tl *TupleLiteral) literalNode()    {}
func (tl *TupleLiteral) Pos() int        { return tl.Token.Start }
func (tl *TupleLiteral) String() string {
	if len(tl.Elements) == 1 {
		return "(" + tl.Elements[0].String() + ",)"
	}
	return "(" + joinExprs(tl.Elements) + ")"
}

// ListLiteral represents '[a, b, ...]'
type ListLiteral struct {
	Token    lexer.Token // the '[' token
	Elements []Expression
}

func (ll *ListLiteral) expressionNode() {}
func (ll *ListLiteral) literalNode()    {}
func (ll *ListLiteral) Pos() int        { return ll.Token.Start }
func (ll *ListLiteral) String() string  { return "[" + joinExprs(ll.Elements) + "]" }
