package format

import (
	"bytes"
	"encoding/json"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"

	"github.com/sambeau/brine/pkg/brine/ast"
)

// field is one key of an object; object keeps its keys in insertion order
// so that every dump starts with "kind".
type field struct {
	key   string
	value any
}

type object []field

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o object) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range o {
		var value yaml.Node
		if err := value.Encode(f.value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.key},
			&value,
		)
	}
	return node, nil
}

func kind(name string, pos int, fields ...field) object {
	o := object{{"kind", name}, {"pos", pos}}
	return append(o, fields...)
}

// dump converts a node into plain values for the YAML and JSON encoders.
func dump(node ast.Node) any {
	switch n := node.(type) {
	case nil:
		return nil

	case *ast.Program:
		return object{{"kind", "Program"}, {"statements", dumpStatements(n.Statements)}}

	case *ast.FunctionStatement:
		return kind("FunctionStatement", n.Pos(),
			field{"name", n.Name},
			field{"params", dumpParams(n.Params)},
			field{"returns", n.ReturnType.String()},
			field{"block", dump(n.Block)},
		)
	case *ast.StructStatement:
		return kind("StructStatement", n.Pos(), field{"name", n.Name}, field{"fields", dumpParams(n.Fields)})
	case *ast.EnumStatement:
		variants := n.Variants
		if variants == nil {
			variants = []string{}
		}
		return kind("EnumStatement", n.Pos(), field{"name", n.Name}, field{"variants", variants})
	case *ast.LetStatement:
		return kind("LetStatement", n.Pos(), field{"name", n.Name}, field{"value", dump(n.Value)})
	case *ast.ExpressionStatement:
		return kind("ExpressionStatement", n.Pos(),
			field{"terminated", n.Terminated()},
			field{"expression", dump(n.Expression)},
		)
	case *ast.EOFStatement:
		return kind("EOFStatement", n.Pos())

	case *ast.Identifier:
		return kind("Identifier", n.Pos(), field{"name", n.Name})
	case *ast.BoolLiteral:
		return kind("BoolLiteral", n.Pos(), field{"value", n.Value})
	case *ast.IntLiteral:
		// as a string: 128-bit values do not survive a float64 round trip
		return kind("IntLiteral", n.Pos(), field{"value", n.String()})
	case *ast.FloatLiteral:
		return kind("FloatLiteral", n.Pos(), field{"value", n.Value})
	case *ast.StrLiteral:
		return kind("StrLiteral", n.Pos(), field{"value", n.Value})
	case *ast.CharLiteral:
		return kind("CharLiteral", n.Pos(), field{"value", n.Value})
	case *ast.TupleLiteral:
		return kind("TupleLiteral", n.Pos(), field{"elements", dumpExpressions(n.Elements)})
	case *ast.ListLiteral:
		return kind("ListLiteral", n.Pos(), field{"elements", dumpExpressions(n.Elements)})

	case *ast.BlockExpression:
		o := kind("BlockExpression", n.Pos(), field{"statements", dumpStatements(n.Statements)})
		if n.Expression != nil {
			o = append(o, field{"tail", dump(n.Expression)})
		}
		return o
	case *ast.IfExpression:
		o := kind("IfExpression", n.Pos(), field{"condition", dump(n.Condition)}, field{"body", dump(n.Body)})
		if n.Else != nil {
			o = append(o, field{"else", dump(n.Else)})
		}
		return o
	case *ast.ElseBlock:
		return kind("ElseBlock", n.Pos(), field{"block", dump(n.Block)})
	case *ast.ElseIf:
		return kind("ElseIf", n.Pos(), field{"if", dump(n.If)})
	case *ast.ClosureExpression:
		return kind("ClosureExpression", n.Pos(),
			field{"params", dumpParams(n.Params)},
			field{"returns", n.ReturnType.String()},
			field{"block", dump(n.Block)},
		)
	case *ast.CallExpression:
		return kind("CallExpression", n.Pos(),
			field{"function", dump(n.Function)},
			field{"arguments", dumpExpressions(n.Arguments)},
		)
	case *ast.BinaryExpression:
		return kind("BinaryExpression", n.Pos(),
			field{"op", n.Op.Name()},
			field{"lhs", dump(n.LHS)},
			field{"rhs", dump(n.RHS)},
		)
	case *ast.UnaryExpression:
		return kind("UnaryExpression", n.Pos(), field{"op", n.Op.Name()}, field{"rhs", dump(n.RHS)})
	}
	return node.String()
}

func dumpStatements(stmts []ast.Statement) []any {
	out := make([]any, len(stmts))
	for i, s := range stmts {
		out[i] = dump(s)
	}
	return out
}

func dumpExpressions(exprs []ast.Expression) []any {
	out := make([]any, len(exprs))
	for i, e := range exprs {
		out[i] = dump(e)
	}
	return out
}

func dumpParams(params []ast.Parameter) []any {
	out := make([]any, len(params))
	for i, p := range params {
		out[i] = object{{"name", p.Name}, {"type", p.Type.String()}}
	}
	return out
}

// YAML renders node as a YAML document
func YAML(node ast.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(dump(node)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON renders node as indented JSON
func JSON(node ast.Node) ([]byte, error) {
	return json.MarshalIndent(dump(node), "", "  ")
}

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Spew renders the Go values behind node, every field included
func Spew(node ast.Node) string {
	return spewConfig.Sdump(node)
}
