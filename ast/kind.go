package ast

import "strings"

// Kind is the closed discriminator over every node type in the tree.
type Kind uint8

const (
	KindInvalid Kind = iota

	KindProgram

	// Statements
	KindExpressionStatement
	KindAssignment
	KindIfElse
	KindWhile
	KindFor
	KindFunctionDeclaration
	KindArgumentDeclaration
	KindReturn

	// Expressions
	KindScope
	KindIdentifier
	KindObjectAccess
	KindArrayAccess
	KindIntegerLiteral
	KindDecimalLiteral
	KindStringLiteral
	KindBooleanLiteral
	KindNullLiteral
	KindStringInterpolation
	KindStructLiteral
	KindArrayLiteral
	KindUnaryOperation
	KindBinaryOperation
	KindTernaryOperation
	KindFunctionInvocation
	KindArgument

	// KindCount is the number of kinds, including KindInvalid.
	KindCount
)

var kindNames = [KindCount]string{
	KindInvalid:             "Invalid",
	KindProgram:             "Program",
	KindExpressionStatement: "ExpressionStatement",
	KindAssignment:          "Assignment",
	KindIfElse:              "IfElse",
	KindWhile:               "While",
	KindFor:                 "For",
	KindFunctionDeclaration: "FunctionDeclaration",
	KindArgumentDeclaration: "ArgumentDeclaration",
	KindReturn:              "Return",
	KindScope:               "Scope",
	KindIdentifier:          "Identifier",
	KindObjectAccess:        "ObjectAccess",
	KindArrayAccess:         "ArrayAccess",
	KindIntegerLiteral:      "IntegerLiteral",
	KindDecimalLiteral:      "DecimalLiteral",
	KindStringLiteral:       "StringLiteral",
	KindBooleanLiteral:      "BooleanLiteral",
	KindNullLiteral:         "NullLiteral",
	KindStringInterpolation: "StringInterpolation",
	KindStructLiteral:       "StructLiteral",
	KindArrayLiteral:        "ArrayLiteral",
	KindUnaryOperation:      "UnaryOperation",
	KindBinaryOperation:     "BinaryOperation",
	KindTernaryOperation:    "TernaryOperation",
	KindFunctionInvocation:  "FunctionInvocation",
	KindArgument:            "Argument",
}

func (k Kind) String() string {
	if k < KindCount {
		return kindNames[k]
	}
	return "Invalid"
}

// ParseKind returns the Kind with the given name, ignoring case.
func ParseKind(name string) (Kind, bool) {
	for k := KindInvalid + 1; k < KindCount; k++ {
		if strings.EqualFold(kindNames[k], name) {
			return k, true
		}
	}
	return KindInvalid, false
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, KindCount-1)
	for k := KindInvalid + 1; k < KindCount; k++ {
		out = append(out, k)
	}
	return out
}
