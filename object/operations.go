package object

import (
	"math"
	"strings"

	"github.com/deepnoodle-ai/boxgo/errors"
)

// ArithmeticOp identifies an arithmetic operator.
type ArithmeticOp uint8

const (
	OpAdd ArithmeticOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
)

func (op ArithmeticOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpModulo:
		return "%"
	}
	return "?"
}

// Arithmetic applies op to a and b. Two integers produce an integer except
// for division; any other operands are cast to numeric first.
func Arithmetic(op ArithmeticOp, a, b any) (any, error) {
	a, b = Unwrap(a), Unwrap(b)
	if x, ok := intFromInteger(a); ok {
		if y, ok := intFromInteger(b); ok && op != OpDivide {
			return intArithmetic(op, x, y)
		}
	}
	x, err := NumericCaster.Cast(a)
	if err != nil {
		return nil, err
	}
	y, err := NumericCaster.Cast(b)
	if err != nil {
		return nil, err
	}
	switch op {
	case OpAdd:
		return x + y, nil
	case OpSubtract:
		return x - y, nil
	case OpMultiply:
		return x * y, nil
	case OpDivide:
		if y == 0 {
			return nil, errors.Runtimef(errors.E3006, "division by zero")
		}
		return x / y, nil
	case OpModulo:
		if y == 0 {
			return nil, errors.Runtimef(errors.E3006, "division by zero")
		}
		return math.Mod(x, y), nil
	}
	return nil, errors.Runtimef(errors.E3007, "unknown arithmetic operator %d", op)
}

func intArithmetic(op ArithmeticOp, x, y int64) (any, error) {
	switch op {
	case OpAdd:
		return x + y, nil
	case OpSubtract:
		return x - y, nil
	case OpMultiply:
		return x * y, nil
	case OpModulo:
		if y == 0 {
			return nil, errors.Runtimef(errors.E3006, "division by zero")
		}
		return x % y, nil
	}
	return nil, errors.Runtimef(errors.E3007, "unknown integer operator %s", op)
}

// Negate returns the arithmetic negation of v.
func Negate(v any) (any, error) {
	v = Unwrap(v)
	if i, ok := intFromInteger(v); ok {
		return -i, nil
	}
	f, err := NumericCaster.Cast(v)
	if err != nil {
		return nil, err
	}
	return -f, nil
}

// Concat joins the string forms of a and b.
func Concat(a, b any) (string, error) {
	x, err := StringCaster.Cast(a)
	if err != nil {
		return "", err
	}
	y, err := StringCaster.Cast(b)
	if err != nil {
		return "", err
	}
	return x + y, nil
}

// Equals reports whether a and b are equal. Numbers and numeric strings
// compare by value, other strings and booleans compare ignoring case, and
// structs, arrays and functions compare by identity.
func Equals(a, b any) bool {
	a, b = Unwrap(a), Unwrap(b)
	if isNilValue(a) || isNilValue(b) {
		return isNilValue(a) && isNilValue(b)
	}
	if c, ok := compareScalars(a, b); ok {
		return c == 0
	}
	defer func() { _ = recover() }()
	return a == b
}

// Compare orders a and b, returning -1, 0 or 1. Only scalars are ordered.
func Compare(a, b any) (int, error) {
	a, b = Unwrap(a), Unwrap(b)
	if c, ok := compareScalars(a, b); ok {
		return c, nil
	}
	return 0, errors.Runtimef(errors.E3007, "cannot compare %s with %s", TypeName(a), TypeName(b))
}

func compareScalars(a, b any) (int, bool) {
	if x, ok := numericOperand(a); ok {
		if y, ok := numericOperand(b); ok {
			return compareFloats(x, y), true
		}
	}
	x, okA := scalarText(a)
	y, okB := scalarText(b)
	if !okA || !okB {
		return 0, false
	}
	return compareFolded(x, y), true
}

// numericOperand accepts numbers and numeric text, but not booleans.
func numericOperand(v any) (float64, bool) {
	if _, ok := v.(bool); ok {
		return 0, false
	}
	return NumericCaster.Attempt(v)
}

func scalarText(v any) (string, bool) {
	switch v.(type) {
	case string, []byte, []rune, bool, Key:
		return StringCaster.Attempt(v)
	}
	return "", false
}

func compareFloats(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func compareFolded(x, y string) int {
	return strings.Compare(NewKey(x).Folded(), NewKey(y).Folded())
}
