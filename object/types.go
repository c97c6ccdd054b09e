package object

import (
	"strings"

	"github.com/deepnoodle-ai/boxgo/errors"
)

// Type is the closed set of cast targets.
type Type uint8

const (
	TypeAny Type = iota
	TypeString
	TypeNumeric
	TypeInteger
	TypeBoolean
	TypeStruct
	TypeModifiableStruct
	TypeArray
	TypeModifiableArray
	TypeFunction
	TypeKey
	typeCount
)

var typeNames = [typeCount]string{
	TypeAny:              "any",
	TypeString:           "string",
	TypeNumeric:          "numeric",
	TypeInteger:          "integer",
	TypeBoolean:          "boolean",
	TypeStruct:           "struct",
	TypeModifiableStruct: "modifiableStruct",
	TypeArray:            "array",
	TypeModifiableArray:  "modifiableArray",
	TypeFunction:         "function",
	TypeKey:              "key",
}

// typeAliases maps alternative spellings, lower case, to their Type.
var typeAliases = map[string]Type{
	"object":  TypeAny,
	"number":  TypeNumeric,
	"double":  TypeNumeric,
	"float":   TypeNumeric,
	"int":     TypeInteger,
	"long":    TypeInteger,
	"bool":    TypeBoolean,
	"closure": TypeFunction,
}

func (t Type) String() string {
	if t < typeCount {
		return typeNames[t]
	}
	return "invalid"
}

// Types returns every cast target.
func Types() []Type {
	out := make([]Type, 0, typeCount)
	for t := TypeAny; t < typeCount; t++ {
		out = append(out, t)
	}
	return out
}

// ParseType resolves a declared type name, ignoring case. An empty name
// means any.
func ParseType(name string) (Type, bool) {
	if name == "" {
		return TypeAny, true
	}
	for t := TypeAny; t < typeCount; t++ {
		if strings.EqualFold(typeNames[t], name) {
			return t, true
		}
	}
	t, ok := typeAliases[strings.ToLower(name)]
	return t, ok
}

// unknownType builds the error for an unrecognized type name.
func unknownType(v any, name string) *errors.TypeCastError {
	candidates := make([]string, 0, int(typeCount)+len(typeAliases))
	candidates = append(candidates, typeNames[:]...)
	for alias := range typeAliases {
		candidates = append(candidates, alias)
	}
	err := errors.NewTypeCastError(TypeName(v), name)
	err.Detail = "unknown type"
	err.Suggestions = errors.SuggestSimilar(name, candidates)
	return err
}

// CastTo converts v to the Go representation of t. See Caster.CastFailable.
func CastTo(v any, t Type, fail bool) (any, bool, error) {
	switch t {
	case TypeAny:
		return boxed(AnyCaster.CastFailable(v, fail))
	case TypeString:
		return boxed(StringCaster.CastFailable(v, fail))
	case TypeNumeric:
		return boxed(NumericCaster.CastFailable(v, fail))
	case TypeInteger:
		return boxed(IntegerCaster.CastFailable(v, fail))
	case TypeBoolean:
		return boxed(BooleanCaster.CastFailable(v, fail))
	case TypeStruct:
		return boxed(StructCaster.CastFailable(v, fail))
	case TypeModifiableStruct:
		return boxed(ModifiableStructCaster.CastFailable(v, fail))
	case TypeArray:
		return boxed(ArrayCaster.CastFailable(v, fail))
	case TypeModifiableArray:
		return boxed(ModifiableArrayCaster.CastFailable(v, fail))
	case TypeFunction:
		return boxed(FunctionCaster.CastFailable(v, fail))
	case TypeKey:
		return boxed(KeyCaster.CastFailable(v, fail))
	}
	return nil, false, unknownType(v, t.String())
}

// boxed converts a typed outcome to an untyped one. A failed outcome is
// reported as nil rather than a typed zero value.
func boxed[T any](t T, ok bool, err error) (any, bool, error) {
	if !ok || err != nil {
		return nil, false, err
	}
	return t, true, nil
}

// AttemptCast converts v to the named type. It never returns an error; an
// unknown type name is simply a failed attempt.
func AttemptCast(v any, typeName string) (any, bool) {
	t, ok := ParseType(typeName)
	if !ok {
		return nil, false
	}
	out, ok, err := CastTo(v, t, false)
	return out, ok && err == nil
}

// Cast converts v to the named type. When fail is false a value that cannot
// be converted yields (nil, nil); an unknown type name and an immutability
// violation are always errors.
func Cast(v any, typeName string, fail bool) (any, error) {
	t, ok := ParseType(typeName)
	if !ok {
		return nil, unknownType(v, typeName)
	}
	out, _, err := CastTo(v, t, fail)
	return out, err
}
