package object

import (
	"github.com/deepnoodle-ai/boxgo/errors"
)

// ArgumentCollection is the reserved argument name whose struct value is
// spread into a named call.
const ArgumentCollection = "argumentCollection"

var argumentCollectionKey = NewKey(ArgumentCollection)

// BindPositional binds values to params by position. Each value within the
// declared count is coerced to its parameter's type and stored under its
// name. Surplus values are kept under their 1-based position. Parameters
// left unbound then receive their coerced default.
func BindPositional(params []Param, values []any) (*ArgumentScope, error) {
	scope := NewArgumentScope()
	for i, v := range values {
		if i >= len(params) {
			scope.set(positionalKey(i), v)
			continue
		}
		p := params[i]
		cv, err := p.coerce(v)
		if err != nil {
			return nil, err
		}
		scope.set(p.Name, cv)
	}
	for i := len(values); i < len(params); i++ {
		if err := fillDefault(scope, params[i]); err != nil {
			return nil, err
		}
	}
	return scope, nil
}

// BindNamed binds values to params by name. A struct under the
// argumentCollection key is spread first; other entries of values then
// overwrite what the collection supplied. Declared parameters are resolved
// in declaration order: present values are coerced in place and missing
// ones receive their coerced default.
func BindNamed(params []Param, values IStruct) (*ArgumentScope, error) {
	scope := NewArgumentScope()
	if values != nil {
		spread := false
		if raw, ok := values.Get(argumentCollectionKey); ok {
			if coll, ok := StructCaster.Attempt(raw); ok {
				scope.PutAll(coll)
				spread = true
			}
		}
		values.Range(func(k Key, v any) bool {
			if spread && k.Equal(argumentCollectionKey) {
				return true
			}
			scope.set(k, v)
			return true
		})
	}
	for _, p := range params {
		v, ok := scope.Get(p.Name)
		if !ok {
			if err := fillDefault(scope, p); err != nil {
				return nil, err
			}
			continue
		}
		cv, err := p.coerce(v)
		if err != nil {
			return nil, err
		}
		scope.set(p.Name, cv)
	}
	return scope, nil
}

// fillDefault binds the default of an unsupplied parameter. Optional
// parameters without a default are bound to null without coercion.
func fillDefault(scope *ArgumentScope, p Param) error {
	switch {
	case p.HasDefault:
		cv, err := p.coerce(p.Default)
		if err != nil {
			return err
		}
		scope.set(p.Name, cv)
	case p.Required:
		return &errors.MissingArgumentError{Name: p.Name.Name()}
	default:
		scope.set(p.Name, nil)
	}
	return nil
}
