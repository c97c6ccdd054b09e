// Package object defines the runtime value model, the type coercion casters
// and argument binding used by generated code and built-in functions.
//
// Values are plain Go values: nil (null), bool, int64, float64, string,
// Key, *Struct, *ImmutableStruct, *Array, *ImmutableArray and *Function.
// Native Go maps and slices are accepted wherever a struct or array is
// expected and are converted by the casters.
package object

import (
	"fmt"
	"reflect"
	"strconv"
)

// DynamicObject is a transparent wrapper around a host value. The casters
// always look through it.
type DynamicObject struct {
	value any
}

// Wrap returns v wrapped in a DynamicObject.
func Wrap(v any) *DynamicObject {
	return &DynamicObject{value: v}
}

// Value returns the wrapped value.
func (d *DynamicObject) Value() any { return d.value }

func (d *DynamicObject) String() string {
	return "DynamicObject(" + Inspect(d.value) + ")"
}

// Unwrap strips any number of DynamicObject layers from v.
func Unwrap(v any) any {
	for {
		d, ok := v.(*DynamicObject)
		if !ok || d == nil {
			return v
		}
		v = d.value
	}
}

// TypeName returns the script-level type name of v.
func TypeName(v any) string {
	switch v := Unwrap(v).(type) {
	case nil:
		return "null"
	case string, []byte:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64:
		return "numeric"
	case Key:
		return "key"
	case *ImmutableStruct:
		return "immutable struct"
	case IStruct, map[string]any:
		return "struct"
	case *ImmutableArray:
		return "immutable array"
	case IArray, []any:
		return "array"
	case *Function:
		return "function"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Inspect returns a debug representation of v. Strings are quoted.
func Inspect(v any) string {
	switch v := Unwrap(v).(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case fmt.Stringer:
		return v.String()
	default:
		s, _ := StringCaster.Attempt(v)
		if s == "" {
			return fmt.Sprint(v)
		}
		return s
	}
}

// isNilValue reports whether v is nil or a typed nil pointer, map or slice.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
