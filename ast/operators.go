package ast

import "strings"

// UnaryOperator identifies the operator of a UnaryOperation.
type UnaryOperator uint8

const (
	PrePlusPlus UnaryOperator = iota + 1
	PostPlusPlus
	PreMinusMinus
	PostMinusMinus
	Minus
	Plus
	Not
)

var unaryNames = map[UnaryOperator]string{
	PrePlusPlus:    "PrePlusPlus",
	PostPlusPlus:   "PostPlusPlus",
	PreMinusMinus:  "PreMinusMinus",
	PostMinusMinus: "PostMinusMinus",
	Minus:          "Minus",
	Plus:           "Plus",
	Not:            "Not",
}

func (op UnaryOperator) String() string {
	if name, ok := unaryNames[op]; ok {
		return name
	}
	return "Invalid"
}

// IsPostfix reports whether the operator is written after its operand.
func (op UnaryOperator) IsPostfix() bool {
	return op == PostPlusPlus || op == PostMinusMinus
}

// Mutates reports whether the operator stores a new value into its operand.
func (op UnaryOperator) Mutates() bool {
	switch op {
	case PrePlusPlus, PostPlusPlus, PreMinusMinus, PostMinusMinus:
		return true
	}
	return false
}

func (op UnaryOperator) symbol() string {
	switch op {
	case PrePlusPlus, PostPlusPlus:
		return "++"
	case PreMinusMinus, PostMinusMinus:
		return "--"
	case Minus:
		return "-"
	case Plus:
		return "+"
	case Not:
		return "!"
	}
	return "?"
}

// ParseUnaryOperator returns the operator with the given name, ignoring case.
func ParseUnaryOperator(name string) (UnaryOperator, bool) {
	for op, n := range unaryNames {
		if strings.EqualFold(n, name) {
			return op, true
		}
	}
	return 0, false
}

// BinaryOperator identifies the operator of a BinaryOperation.
type BinaryOperator uint8

const (
	Add BinaryOperator = iota + 1
	Subtract
	Multiply
	Divide
	Modulo
	Concat
	Equal
	NotEqual
	LessThan
	LessThanEquals
	GreaterThan
	GreaterThanEquals
	And
	Or
)

var binaryNames = map[BinaryOperator]string{
	Add:               "Add",
	Subtract:          "Subtract",
	Multiply:          "Multiply",
	Divide:            "Divide",
	Modulo:            "Modulo",
	Concat:            "Concat",
	Equal:             "Equal",
	NotEqual:          "NotEqual",
	LessThan:          "LessThan",
	LessThanEquals:    "LessThanEquals",
	GreaterThan:       "GreaterThan",
	GreaterThanEquals: "GreaterThanEquals",
	And:               "And",
	Or:                "Or",
}

var binarySymbols = map[BinaryOperator]string{
	Add:               "+",
	Subtract:          "-",
	Multiply:          "*",
	Divide:            "/",
	Modulo:            "%",
	Concat:            "&",
	Equal:             "==",
	NotEqual:          "!=",
	LessThan:          "<",
	LessThanEquals:    "<=",
	GreaterThan:       ">",
	GreaterThanEquals: ">=",
	And:               "&&",
	Or:                "||",
}

func (op BinaryOperator) String() string {
	if name, ok := binaryNames[op]; ok {
		return name
	}
	return "Invalid"
}

// IsComparison reports whether the operator yields a boolean from comparing
// its operands.
func (op BinaryOperator) IsComparison() bool {
	return op >= Equal && op <= GreaterThanEquals
}

// IsLogical reports whether the operator is a short-circuit boolean operator.
func (op BinaryOperator) IsLogical() bool {
	return op == And || op == Or
}

// ParseBinaryOperator returns the operator with the given name or symbol.
// Names are matched ignoring case.
func ParseBinaryOperator(s string) (BinaryOperator, bool) {
	for op, n := range binaryNames {
		if strings.EqualFold(n, s) || binarySymbols[op] == s {
			return op, true
		}
	}
	return 0, false
}

// StructType distinguishes ordered struct literals from unordered ones.
type StructType uint8

const (
	Unordered StructType = iota
	Ordered
)

func (t StructType) String() string {
	if t == Ordered {
		return "Ordered"
	}
	return "Unordered"
}
