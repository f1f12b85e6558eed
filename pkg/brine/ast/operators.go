package ast

// BinaryOperator is the operator of a BinaryExpression
type BinaryOperator int

const (
	Add BinaryOperator = iota
	Sub
	Mul
	Div
	Mod
	BitOr
	BitAnd
	BitXor
	BitLeft
	BitRight
	BoolOr
	BoolAnd
	Eq
	Ne
	Ge
	Le
	Gt
	Lt
	Pipe
)

var binarySpellings = [...]string{
	Add:      "+",
	Sub:      "-",
	Mul:      "*",
	Div:      "/",
	Mod:      "%",
	BitOr:    "|",
	BitAnd:   "&",
	BitXor:   "^",
	BitLeft:  "<<",
	BitRight: ">>",
	BoolOr:   "||",
	BoolAnd:  "&&",
	Eq:       "==",
	Ne:       "!=",
	Ge:       ">=",
	Le:       "<=",
	Gt:       ">",
	Lt:       "<",
	Pipe:     "|>",
}

var binaryNames = [...]string{
	Add:      "Add",
	Sub:      "Sub",
	Mul:      "Mul",
	Div:      "Div",
	Mod:      "Mod",
	BitOr:    "BitOr",
	BitAnd:   "BitAnd",
	BitXor:   "BitXor",
	BitLeft:  "BitLeft",
	BitRight: "BitRight",
	BoolOr:   "BoolOr",
	BoolAnd:  "BoolAnd",
	Eq:       "Eq",
	Ne:       "Ne",
	Ge:       "Ge",
	Le:       "Le",
	Gt:       "Gt",
	Lt:       "Lt",
	Pipe:     "Pipe",
}

// String returns the operator's source spelling
func (op BinaryOperator) String() string {
	if op >= 0 && int(op) < len(binarySpellings) {
		return binarySpellings[op]
	}
	return "?"
}

// Name returns the operator's name, e.g. "Add"
func (op BinaryOperator) Name() string {
	if op >= 0 && int(op) < len(binaryNames) {
		return binaryNames[op]
	}
	return "?"
}

// UnaryOperator is the operator of a UnaryExpression
type UnaryOperator int

const (
	BoolNot UnaryOperator = iota // !
	BitNot                       // ~
	Plus                         // +
	Minus                        // -
)

func (op UnaryOperator) String() string {
	switch op {
	case BoolNot:
		return "!"
	case BitNot:
		return "~"
	case Plus:
		return "+"
	case Minus:
		return "-"
	}
	return "?"
}

// Name returns the operator's name, e.g. "BoolNot"
func (op UnaryOperator) Name() string {
	switch op {
	case BoolNot:
		return "BoolNot"
	case BitNot:
		return "BitNot"
	case Plus:
		return "Plus"
	case Minus:
		return "Minus"
	}
	return "?"
}
