package ast

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/sambeau/brine/pkg/brine/lexer"
)

func intLit(v uint64) *IntLiteral {
	return &IntLiteral{Value: *uint256.NewInt(v)}
}

func ident(name string) *Identifier {
	return &Identifier{Name: name}
}

func TestExpressionString(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
		want string
	}{
		{
			name: "nested binary",
			expr: &BinaryExpression{
				LHS: intLit(1),
				Op:  Add,
				RHS: &BinaryExpression{LHS: intLit(2), Op: Mul, RHS: intLit(3)},
			},
			want: "(1 + (2 * 3))",
		},
		{
			name: "unary",
			expr: &UnaryExpression{Op: BoolNot, RHS: ident("ok")},
			want: "(!ok)",
		},
		{
			name: "pipe",
			expr: &BinaryExpression{LHS: ident("x"), Op: Pipe, RHS: ident("f")},
			want: "(x |> f)",
		},
		{
			name: "one element tuple",
			expr: &TupleLiteral{Elements: []Expression{intLit(1)}},
			want: "(1,)",
		},
		{
			name: "empty tuple",
			expr: &TupleLiteral{},
			want: "()",
		},
		{
			name: "list",
			expr: &ListLiteral{Elements: []Expression{intLit(1), &StrLiteral{Value: `a\"b`}, &CharLiteral{Value: "c"}}},
			want: `[1, "a\"b", 'c']`,
		},
		{
			name: "floats keep a point",
			expr: &ListLiteral{Elements: []Expression{&FloatLiteral{Value: 1}, &FloatLiteral{Value: 0.25}, &FloatLiteral{Value: 1e21}}},
			want: "[1.0, 0.25, 1000000000000000000000.0]",
		},
		{
			name: "block with tail",
			expr: &BlockExpression{
				Statements: []Statement{
					&ExpressionStatement{Expression: intLit(1), EndToken: lexer.Token{Type: lexer.SEMICOLON}},
				},
				Expression: intLit(2),
			},
			want: "{ 1; 2 }",
		},
		{
			name: "empty block",
			expr: &BlockExpression{},
			want: "{}",
		},
		{
			name: "if else if else",
			expr: &IfExpression{
				Condition: ident("a"),
				Body:      &BlockExpression{Expression: intLit(1)},
				Else: &ElseIf{If: &IfExpression{
					Condition: ident("b"),
					Body:      &BlockExpression{Expression: intLit(2)},
					Else:      &ElseBlock{Block: &BlockExpression{Expression: intLit(3)}},
				}},
			},
			want: "if a { 1 } else if b { 2 } else { 3 }",
		},
		{
			name: "closure",
			expr: &ClosureExpression{
				Params:     []Parameter{{Name: "x", Type: IntType{Signed: true, Width: 32}}},
				ReturnType: IntType{Signed: true, Width: 32},
				Block:      &BlockExpression{Expression: ident("x")},
			},
			want: `\(x: i32) -> i32 { x }`,
		},
		{
			name: "call",
			expr: &CallExpression{Function: ident("f"), Arguments: []Expression{intLit(1), ident("y")}},
			want: "f(1, y)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatementString(t *testing.T) {
	tests := []struct {
		name string
		stmt Statement
		want string
	}{
		{
			name: "function",
			stmt: &FunctionStatement{
				Name: "add",
				Params: []Parameter{
					{Name: "a", Type: IntType{Signed: true, Width: 64}},
					{Name: "b", Type: IntType{Signed: true, Width: 64}},
				},
				ReturnType: IntType{Signed: true, Width: 64},
				Block: &BlockExpression{Expression: &BinaryExpression{
					LHS: ident("a"), Op: Add, RHS: ident("b"),
				}},
			},
			want: "fn add(a: i64, b: i64) -> i64 { (a + b) }",
		},
		{
			name: "struct",
			stmt: &StructStatement{Name: "Point", Fields: []Parameter{
				{Name: "x", Type: FloatType{Width: 64}},
				{Name: "tags", Type: ListType{Element: StrType{}}},
			}},
			want: "struct Point { x: f64, tags: [str] }",
		},
		{
			name: "empty struct",
			stmt: &StructStatement{Name: "Unit"},
			want: "struct Unit {}",
		},
		{
			name: "enum",
			stmt: &EnumStatement{Name: "Color", Variants: []string{"Red", "Green"}},
			want: "enum Color { Red, Green }",
		},
		{
			name: "let",
			stmt: &LetStatement{Name: "x", Value: intLit(5)},
			want: "let x = 5;",
		},
		{
			name: "unterminated expression",
			stmt: &ExpressionStatement{Expression: ident("x"), EndToken: lexer.Token{Type: lexer.EOF}},
			want: "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stmt.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTypeFromName(t *testing.T) {
	tests := []struct {
		name string
		want Type
	}{
		{"bool", BoolType{}},
		{"str", StrType{}},
		{"char", CharType{}},
		{"u8", IntType{Signed: false, Width: 8}},
		{"u64", IntType{Signed: false, Width: 64}},
		{"i16", IntType{Signed: true, Width: 16}},
		{"f32", FloatType{Width: 32}},
		{"void", VoidType{}},
		{"Point", UserDefinedType{Name: "Point"}},
		{"i128", UserDefinedType{Name: "i128"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TypeFromName(tt.name)
			if got != tt.want {
				t.Errorf("TypeFromName(%q) = %#v, want %#v", tt.name, got, tt.want)
			}
			if got.String() != tt.name {
				t.Errorf("String() = %q, want %q", got.String(), tt.name)
			}
		})
	}
}

func TestCompositeTypeString(t *testing.T) {
	fn := FnType{
		Args:   []Type{TupleType{Elements: []Type{IntType{Signed: true, Width: 32}}}, ListType{Element: CharType{}}},
		Return: VoidType{},
	}
	if got, want := fn.String(), "fn((i32), [char]) -> void"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestOperatorNames(t *testing.T) {
	if Pipe.String() != "|>" || Pipe.Name() != "Pipe" {
		t.Errorf("Pipe = %q/%q", Pipe.String(), Pipe.Name())
	}
	if BitLeft.String() != "<<" {
		t.Errorf("BitLeft = %q", BitLeft.String())
	}
	if Minus.String() != "-" || BitNot.Name() != "BitNot" {
		t.Errorf("unary names wrong: %q %q", Minus.String(), BitNot.Name())
	}
	if BinaryOperator(99).String() != "?" {
		t.Errorf("out of range operator should print ?")
	}
}
