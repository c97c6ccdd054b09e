package object

import (
	"context"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// AnyCaster accepts every value, including null.
var AnyCaster = &Caster[any]{
	name:     "any",
	null:     zeroOnNull[any],
	identity: func(v any) (any, bool) { return v, true },
}

// StringCaster converts scalars and keys to their text. Null becomes "".
var StringCaster = &Caster[string]{
	name:     "string",
	null:     zeroOnNull[string],
	identity: identityOf[string],
	native:   stringFromNative,
}

// NumericCaster converts to float64. Null becomes 0.
var NumericCaster = &Caster[float64]{
	name:     "numeric",
	null:     zeroOnNull[float64],
	identity: identityOf[float64],
	native:   floatFromNative,
	parse:    parseFloat,
}

// IntegerCaster converts to int64, truncating fractions. Null becomes 0.
var IntegerCaster = &Caster[int64]{
	name:     "integer",
	null:     zeroOnNull[int64],
	identity: identityOf[int64],
	native:   intFromNative,
	parse:    parseInt,
}

// BooleanCaster converts to bool. Null becomes false. Numbers are true when
// non-zero; the strings "yes" and "no" are accepted besides "true" and
// "false".
var BooleanCaster = &Caster[bool]{
	name:     "boolean",
	null:     zeroOnNull[bool],
	identity: identityOf[bool],
	native:   boolFromNative,
	parse:    parseBool,
}

// StructCaster converts to a struct. Native maps are copied into a new
// struct.
var StructCaster = &Caster[IStruct]{
	name:     "struct",
	null:     failOnNull[IStruct]("struct"),
	identity: identityOf[IStruct],
	native:   structFromNative,
}

// ModifiableStructCaster is StructCaster with a guard that rejects
// immutable structs with an ImmutableError, even when not failing.
var ModifiableStructCaster = &Caster[IStruct]{
	name:     "modifiableStruct",
	null:     failOnNull[IStruct]("modifiableStruct"),
	guard:    rejectImmutable[IStruct]("modifiableStruct", "struct"),
	identity: identityOf[IStruct],
	native:   structFromNative,
}

// ArrayCaster converts to an array. Native slices and arrays are copied
// into a new array.
var ArrayCaster = &Caster[IArray]{
	name:     "array",
	null:     failOnNull[IArray]("array"),
	identity: identityOf[IArray],
	native:   arrayFromNative,
}

// ModifiableArrayCaster is ArrayCaster with a guard that rejects immutable
// arrays with an ImmutableError, even when not failing.
var ModifiableArrayCaster = &Caster[IArray]{
	name:     "modifiableArray",
	null:     failOnNull[IArray]("modifiableArray"),
	guard:    rejectImmutable[IArray]("modifiableArray", "array"),
	identity: identityOf[IArray],
	native:   arrayFromNative,
}

// FunctionCaster converts to a *Function. A Go function with the Body
// signature is wrapped in an anonymous Function.
var FunctionCaster = &Caster[*Function]{
	name:     "function",
	null:     failOnNull[*Function]("function"),
	identity: identityOf[*Function],
	native: func(v any) (*Function, bool) {
		switch fn := v.(type) {
		case Body:
			return NewFunction("", nil, fn), true
		case func(context.Context, *ArgumentScope) (any, error):
			return NewFunction("", nil, fn), true
		}
		return nil, false
	},
}

// KeyCaster converts to a Key. Strings and numbers become keys of their
// text.
var KeyCaster = &Caster[Key]{
	name:     "key",
	null:     failOnNull[Key]("key"),
	identity: identityOf[Key],
	native: func(v any) (Key, bool) {
		if s, ok := StringCaster.Attempt(v); ok {
			return NewKey(s), true
		}
		return Key{}, false
	},
}

func stringFromNative(v any) (string, bool) {
	switch v := v.(type) {
	case []byte:
		return string(v), true
	case []rune:
		return string(v), true
	case Key:
		return v.Name(), true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return formatFloat(v), true
	case float32:
		return formatFloat(float64(v)), true
	}
	if i, ok := intFromInteger(v); ok {
		return strconv.FormatInt(i, 10), true
	}
	return "", false
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// intFromInteger converts any Go integer type.
func intFromInteger(v any) (int64, bool) {
	switch v := v.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}

func floatFromNative(v any) (float64, bool) {
	switch v := v.(type) {
	case float32:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	if i, ok := intFromInteger(v); ok {
		return float64(i), true
	}
	return 0, false
}

func intFromNative(v any) (int64, bool) {
	switch v := v.(type) {
	case float64:
		return truncate(v)
	case float32:
		return truncate(float64(v))
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return intFromInteger(v)
}

func truncate(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func boolFromNative(v any) (bool, bool) {
	switch v := v.(type) {
	case float64:
		return v != 0, true
	case float32:
		return v != 0, true
	}
	if i, ok := intFromInteger(v); ok {
		return i != 0, true
	}
	return false, false
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !isNumericText(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func parseInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	if f, ok := parseFloat(s); ok {
		return truncate(f)
	}
	return 0, false
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes":
		return true, true
	case "false", "no":
		return false, true
	}
	if f, ok := parseFloat(s); ok {
		return f != 0, true
	}
	return false, false
}

// isNumericText accepts decimal numbers with an optional sign, fraction
// and exponent. It rejects the hex, infinity and NaN forms ParseFloat
// would otherwise accept.
func isNumericText(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}

func structFromNative(v any) (IStruct, bool) {
	switch m := v.(type) {
	case map[string]any:
		return StructFromMap(m), true
	case map[Key]any:
		keys := make([]Key, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, func(a, b Key) int { return strings.Compare(a.Folded(), b.Folded()) })
		s := NewStruct(DefaultStruct)
		for _, k := range keys {
			s.set(k, m[k])
		}
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return StructFromMap(m), true
}

func arrayFromNative(v any) (IArray, bool) {
	switch s := v.(type) {
	case []any:
		return ArrayOf(s...), true
	case string, []byte, []rune:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return ArrayOf(items...), true
}
