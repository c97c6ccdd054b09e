package rt

import (
	"github.com/deepnoodle-ai/boxgo/object"
)

// IncrementPre adds one to the value stored at key and returns the new
// value.
func IncrementPre(container, key any) any {
	return step(container, key, object.OpAdd, false)
}

// IncrementPost adds one to the value stored at key and returns the value
// it held before.
func IncrementPost(container, key any) any {
	return step(container, key, object.OpAdd, true)
}

// DecrementPre subtracts one from the value stored at key and returns the
// new value.
func DecrementPre(container, key any) any {
	return step(container, key, object.OpSubtract, false)
}

// DecrementPost subtracts one from the value stored at key and returns the
// value it held before.
func DecrementPost(container, key any) any {
	return step(container, key, object.OpSubtract, true)
}

func step(container, key any, op object.ArithmeticOp, post bool) any {
	ref := Put(container, key)
	old := Numeric(ref.Get())
	next := arith(op, old, int64(1))
	ref.Set(next)
	if post {
		return old
	}
	return next
}

func arith(op object.ArithmeticOp, a, b any) any {
	v, err := object.Arithmetic(op, a, b)
	Throw(err)
	return v
}

// Numeric converts v to a number, keeping integers as integers.
func Numeric(v any) any {
	return arith(object.OpAdd, v, int64(0))
}

// Negate returns -v.
func Negate(v any) any {
	n, err := object.Negate(v)
	Throw(err)
	return n
}

// Bool casts v to a boolean.
func Bool(v any) bool {
	b, err := object.BooleanCaster.Cast(v)
	Throw(err)
	return b
}

// String casts v to a string.
func String(v any) string {
	s, err := object.StringCaster.Cast(v)
	Throw(err)
	return s
}

func Add(a, b any) any { return arith(object.OpAdd, a, b) }
func Sub(a, b any) any { return arith(object.OpSubtract, a, b) }
func Mul(a, b any) any { return arith(object.OpMultiply, a, b) }
func Div(a, b any) any { return arith(object.OpDivide, a, b) }
func Mod(a, b any) any { return arith(object.OpModulo, a, b) }

// Concat joins the string forms of a and b.
func Concat(a, b any) string {
	s, err := object.Concat(a, b)
	Throw(err)
	return s
}

func Equal(a, b any) bool    { return object.Equals(a, b) }
func NotEqual(a, b any) bool { return !object.Equals(a, b) }

func LessThan(a, b any) bool          { return compare(a, b) < 0 }
func LessThanEquals(a, b any) bool    { return compare(a, b) <= 0 }
func GreaterThan(a, b any) bool       { return compare(a, b) > 0 }
func GreaterThanEquals(a, b any) bool { return compare(a, b) >= 0 }

func compare(a, b any) int {
	c, err := object.Compare(a, b)
	Throw(err)
	return c
}

// Ternary evaluates exactly one of the branches.
func Ternary(cond bool, whenTrue, whenFalse func() any) any {
	if cond {
		return whenTrue()
	}
	return whenFalse()
}
