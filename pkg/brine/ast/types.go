package ast

import (
	"strconv"
	"strings"
)

// Type represents a type annotation
type Type interface {
	String() string
	typeNode()
}

type BoolType struct{}

func (BoolType) typeNode()      {}
func (BoolType) String() string { return "bool" }

// IntType is u8..u64 or i8..i64
type IntType struct {
	Signed bool
	Width  int // 8, 16, 32 or 64
}

func (IntType) typeNode() {}
func (t IntType) String() string {
	if t.Signed {
		return "i" + strconv.Itoa(t.Width)
	}
	return "u" + strconv.Itoa(t.Width)
}

// FloatType is f32 or f64
type FloatType struct {
	Width int // 32 or 64
}

func (FloatType) typeNode()        {}
func (t FloatType) String() string { return "f" + strconv.Itoa(t.Width) }

type StrType struct{}

func (StrType) typeNode()      {}
func (StrType) String() string { return "str" }

type CharType struct{}

func (CharType) typeNode()      {}
func (CharType) String() string { return "char" }

type VoidType struct{}

func (VoidType) typeNode()      {}
func (VoidType) String() string { return "void" }

// TupleType is '(T, U, ...)'. Parentheses in type position always make a
// tuple, so '(i32)' is a one-element tuple.
type TupleType struct {
	Elements []Type
}

func (TupleType) typeNode() {}
func (t TupleType) String() string {
	return "(" + joinTypes(t.Elements) + ")"
}

// ListType is '[T]'
type ListType struct {
	Element Type
}

func (ListType) typeNode()        {}
func (t ListType) String() string { return "[" + t.Element.String() + "]" }

// FnType is 'fn(T, U) -> R'
type FnType struct {
	Args   []Type
	Return Type
}

func (FnType) typeNode() {}
func (t FnType) String() string {
	return "fn(" + joinTypes(t.Args) + ") -> " + t.Return.String()
}

// UserDefinedType is any type name that is not a primitive
type UserDefinedType struct {
	Name string
}

func (UserDefinedType) typeNode()        {}
func (t UserDefinedType) String() string { return t.Name }

func joinTypes(types []Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

var primitives = map[string]Type{
	"bool": BoolType{},
	"str":  StrType{},
	"char": CharType{},
	"u8":   IntType{Signed: false, Width: 8},
	"u16":  IntType{Signed: false, Width: 16},
	"u32":  IntType{Signed: false, Width: 32},
	"u64":  IntType{Signed: false, Width: 64},
	"i8":   IntType{Signed: true, Width: 8},
	"i16":  IntType{Signed: true, Width: 16},
	"i32":  IntType{Signed: true, Width: 32},
	"i64":  IntType{Signed: true, Width: 64},
	"f32":  FloatType{Width: 32},
	"f64":  FloatType{Width: 64},
	"void": VoidType{},
}

// TypeFromName maps a type name to its primitive type, or to a
// UserDefinedType when it is not one of the built-in names.
func TypeFromName(name string) Type {
	if t, ok := primitives[name]; ok {
		return t
	}
	return UserDefinedType{Name: name}
}
