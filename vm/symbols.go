package vm

import (
	"reflect"

	"github.com/traefik/yaegi/interp"

	"github.com/deepnoodle-ai/boxgo/compiler"
	"github.com/deepnoodle-ai/boxgo/rt"
)

// Symbols exposes package rt to interpreted code under its import path.
var Symbols = interp.Exports{
	compiler.RuntimeImport + "/rt": {
		// Constants
		"ScopeArguments": reflect.ValueOf(rt.ScopeArguments),
		"ScopeLocal":     reflect.ValueOf(rt.ScopeLocal),
		"ScopeVariables": reflect.ValueOf(rt.ScopeVariables),

		// Types
		"Context":   reflect.ValueOf((*rt.Context)(nil)),
		"Named":     reflect.ValueOf((*rt.Named)(nil)),
		"NamedArg":  reflect.ValueOf((*rt.NamedArg)(nil)),
		"Param":     reflect.ValueOf((*rt.Param)(nil)),
		"Reference": reflect.ValueOf((*rt.Reference)(nil)),
		"Thrown":    reflect.ValueOf((*rt.Thrown)(nil)),

		// Functions
		"Add":               reflect.ValueOf(rt.Add),
		"ArrayOf":           reflect.ValueOf(rt.ArrayOf),
		"Bool":              reflect.ValueOf(rt.Bool),
		"Concat":            reflect.ValueOf(rt.Concat),
		"DecrementPost":     reflect.ValueOf(rt.DecrementPost),
		"DecrementPre":      reflect.ValueOf(rt.DecrementPre),
		"Div":               reflect.ValueOf(rt.Div),
		"Equal":             reflect.ValueOf(rt.Equal),
		"Get":               reflect.ValueOf(rt.Get),
		"GreaterThan":       reflect.ValueOf(rt.GreaterThan),
		"GreaterThanEquals": reflect.ValueOf(rt.GreaterThanEquals),
		"IncrementPost":     reflect.ValueOf(rt.IncrementPost),
		"IncrementPre":      reflect.ValueOf(rt.IncrementPre),
		"LessThan":          reflect.ValueOf(rt.LessThan),
		"LessThanEquals":    reflect.ValueOf(rt.LessThanEquals),
		"LinkedStructOf":    reflect.ValueOf(rt.LinkedStructOf),
		"Mod":               reflect.ValueOf(rt.Mod),
		"Mul":               reflect.ValueOf(rt.Mul),
		"Negate":            reflect.ValueOf(rt.Negate),
		"NewArray":          reflect.ValueOf(rt.NewArray),
		"NewContext":        reflect.ValueOf(rt.NewContext),
		"NewLinkedStruct":   reflect.ValueOf(rt.NewLinkedStruct),
		"NewParam":          reflect.ValueOf(rt.NewParam),
		"NewStruct":         reflect.ValueOf(rt.NewStruct),
		"NotEqual":          reflect.ValueOf(rt.NotEqual),
		"Numeric":           reflect.ValueOf(rt.Numeric),
		"Put":               reflect.ValueOf(rt.Put),
		"String":            reflect.ValueOf(rt.String),
		"StructOf":          reflect.ValueOf(rt.StructOf),
		"Sub":               reflect.ValueOf(rt.Sub),
		"Ternary":           reflect.ValueOf(rt.Ternary),
		"Throw":             reflect.ValueOf(rt.Throw),
	},
}
