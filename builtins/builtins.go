// Package builtins defines a default set of built-in functions. Every
// built-in declares its parameters and receives them bound and coerced in an
// ArgumentScope, the same way user-defined functions do.
package builtins

import (
	"context"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/deepnoodle-ai/boxgo/errors"
	"github.com/deepnoodle-ai/boxgo/object"
)

// Len returns the length of a string, array or struct.
func Len(ctx context.Context, args *object.ArgumentScope) (any, error) {
	value := object.Unwrap(args.Value("value"))
	if arr, ok := object.ArrayCaster.Attempt(value); ok {
		return int64(arr.Len()), nil
	}
	if st, ok := object.StructCaster.Attempt(value); ok {
		return int64(st.Len()), nil
	}
	if s, ok := object.StringCaster.Attempt(value); ok && value != nil {
		return int64(utf8.RuneCountInString(s)), nil
	}
	return nil, errors.Runtimef(errors.E3007, "len() unsupported argument (%s given)", object.TypeName(value))
}

// Compare performs a case-sensitive comparison of two strings, returning
// -1, 0 or 1.
func Compare(ctx context.Context, args *object.ArgumentScope) (any, error) {
	a, err := args.AsString("string1")
	if err != nil {
		return nil, err
	}
	b, err := args.AsString("string2")
	if err != nil {
		return nil, err
	}
	return int64(strings.Compare(a, b)), nil
}

// CompareNoCase compares two strings ignoring case.
func CompareNoCase(ctx context.Context, args *object.ArgumentScope) (any, error) {
	a, err := args.AsString("string1")
	if err != nil {
		return nil, err
	}
	b, err := args.AsString("string2")
	if err != nil {
		return nil, err
	}
	return int64(strings.Compare(object.NewKey(a).Folded(), object.NewKey(b).Folded())), nil
}

// ListAppend appends a value to a delimited list.
func ListAppend(ctx context.Context, args *object.ArgumentScope) (any, error) {
	list, err := args.AsString("list")
	if err != nil {
		return nil, err
	}
	value, err := args.AsString("value")
	if err != nil {
		return nil, err
	}
	opts, err := listOptionsOf(args)
	if err != nil {
		return nil, err
	}
	items := append(splitList(list, opts), value)
	return strings.Join(items, opts.joiner()), nil
}

// ListToArray splits a delimited list into an array.
func ListToArray(ctx context.Context, args *object.ArgumentScope) (any, error) {
	list, err := args.AsString("list")
	if err != nil {
		return nil, err
	}
	opts, err := listOptionsOf(args)
	if err != nil {
		return nil, err
	}
	items := splitList(list, opts)
	arr := object.NewArray()
	for _, item := range items {
		_ = arr.Append(item)
	}
	return arr, nil
}

// ArrayToList joins the string forms of the array elements.
func ArrayToList(ctx context.Context, args *object.ArgumentScope) (any, error) {
	arr, err := args.AsArray("array")
	if err != nil {
		return nil, err
	}
	delimiter, err := args.AsString("delimiter")
	if err != nil {
		return nil, err
	}
	parts := make([]string, 0, arr.Len())
	for _, item := range arr.Items() {
		s, err := object.StringCaster.Cast(item)
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, delimiter), nil
}

// ArrayAppend appends a value to an array in place and returns the array.
// When merge is true and the value is an array, its elements are appended
// individually.
func ArrayAppend(ctx context.Context, args *object.ArgumentScope) (any, error) {
	arr, err := args.AsModifiableArray("array")
	if err != nil {
		return nil, err
	}
	value := args.Value("value")
	merge, err := args.AsBoolean("merge")
	if err != nil {
		return nil, err
	}
	if merge {
		if other, ok := object.ArrayCaster.Attempt(value); ok {
			return arr, arr.Append(other.Items()...)
		}
	}
	return arr, arr.Append(value)
}

// ArrayFilter returns a new array holding the elements for which the
// callback returns true. The callback receives the element, its one-based
// index and the array.
func ArrayFilter(ctx context.Context, args *object.ArgumentScope) (any, error) {
	arr, err := args.AsArray("array")
	if err != nil {
		return nil, err
	}
	callback, err := args.AsFunction("callback")
	if err != nil {
		return nil, err
	}
	result := object.NewArray()
	for i, item := range arr.Items() {
		decision, err := callback.Call(ctx, item, int64(i+1), arr)
		if err != nil {
			return nil, err
		}
		keep, err := object.BooleanCaster.Cast(decision)
		if err != nil {
			return nil, err
		}
		if keep {
			_ = result.Append(item)
		}
	}
	return result, nil
}

// StructKeyExists reports whether a struct holds a key.
func StructKeyExists(ctx context.Context, args *object.ArgumentScope) (any, error) {
	st, err := args.AsStruct("struct")
	if err != nil {
		return nil, err
	}
	key, err := object.KeyCaster.Cast(args.Value("key"))
	if err != nil {
		return nil, err
	}
	return st.Has(key), nil
}

// IsNull reports whether a value is null.
func IsNull(ctx context.Context, args *object.ArgumentScope) (any, error) {
	return object.Unwrap(args.Value("value")) == nil, nil
}

// WriteOutput writes the string form of a value to the output writer of the
// context, or to stdout.
func WriteOutput(ctx context.Context, args *object.ArgumentScope) (any, error) {
	s, err := args.AsString("obj")
	if err != nil {
		return nil, err
	}
	var w io.Writer = os.Stdout
	if out, ok := object.GetOutput(ctx); ok {
		w = out
	}
	if _, err := io.WriteString(w, s); err != nil {
		return nil, err
	}
	return nil, nil
}

// Assert raises an error if the expression is false.
func Assert(ctx context.Context, args *object.ArgumentScope) (any, error) {
	ok, err := args.AsBoolean("expression")
	if err != nil {
		return nil, err
	}
	if ok {
		return true, nil
	}
	msg, err := args.AsString("message")
	if err != nil {
		return nil, err
	}
	if msg == "" {
		msg = "assertion failed"
	}
	return nil, errors.Runtimef(errors.E3007, "%s", msg)
}

// TypeOf returns the type name of a value.
func TypeOf(ctx context.Context, args *object.ArgumentScope) (any, error) {
	return object.TypeName(args.Value("value")), nil
}

// listOptions controls how a delimited list is split and joined.
type listOptions struct {
	delimiter      string
	includeEmpty   bool
	multiCharDelim bool
}

func listOptionsOf(args *object.ArgumentScope) (listOptions, error) {
	var opts listOptions
	var err error
	if opts.delimiter, err = args.AsString("delimiter"); err != nil {
		return opts, err
	}
	if opts.delimiter == "" {
		opts.delimiter = ","
	}
	if opts.includeEmpty, err = args.AsBoolean("includeEmptyFields"); err != nil {
		return opts, err
	}
	if opts.multiCharDelim, err = args.AsBoolean("multiCharacterDelimiter"); err != nil {
		return opts, err
	}
	return opts, nil
}

// joiner returns the text placed between joined items: the whole delimiter
// when it is treated as one unit, else its first character.
func (o listOptions) joiner() string {
	if o.multiCharDelim {
		return o.delimiter
	}
	_, size := utf8.DecodeRuneInString(o.delimiter)
	return o.delimiter[:size]
}

// splitList splits list on the whole delimiter, or on any of its characters
// when multiCharDelim is false. Empty items are dropped unless includeEmpty
// is set. An empty list has no items.
func splitList(list string, opts listOptions) []string {
	if list == "" {
		return nil
	}
	var parts []string
	if opts.multiCharDelim {
		parts = strings.Split(list, opts.delimiter)
	} else {
		parts = splitAny(list, opts.delimiter)
	}
	if opts.includeEmpty {
		return parts
	}
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitAny splits on every occurrence of any character in chars, keeping
// empty items.
func splitAny(s, chars string) []string {
	var parts []string
	start := 0
	for i, r := range s {
		if strings.ContainsRune(chars, r) {
			parts = append(parts, s[start:i])
			start = i + utf8.RuneLen(r)
		}
	}
	return append(parts, s[start:])
}

func fn(name string, body object.Body, params ...object.Param) *object.Function {
	return object.NewFunction(name, params, body)
}

// Builtins returns a fresh map of every built-in function, keyed by name.
func Builtins() map[string]*object.Function {
	listParams := []object.Param{
		object.NewParam(false, "string", "delimiter", ","),
		object.NewParam(false, "boolean", "includeEmptyFields", false),
		object.NewParam(false, "boolean", "multiCharacterDelimiter", true),
	}
	return map[string]*object.Function{
		"arrayAppend": fn("arrayAppend", ArrayAppend,
			object.NewParam(true, "modifiableArray", "array"),
			object.NewParam(true, "any", "value"),
			object.NewParam(false, "boolean", "merge", false),
		),
		"arrayFilter": fn("arrayFilter", ArrayFilter,
			object.NewParam(true, "array", "array"),
			object.NewParam(true, "function", "callback"),
		),
		"arrayToList": fn("arrayToList", ArrayToList,
			object.NewParam(true, "array", "array"),
			object.NewParam(false, "string", "delimiter", ","),
		),
		"assert": fn("assert", Assert,
			object.NewParam(true, "boolean", "expression"),
			object.NewParam(false, "string", "message", ""),
		),
		"compare": fn("compare", Compare,
			object.NewParam(true, "string", "string1"),
			object.NewParam(true, "string", "string2"),
		),
		"compareNoCase": fn("compareNoCase", CompareNoCase,
			object.NewParam(true, "string", "string1"),
			object.NewParam(true, "string", "string2"),
		),
		"isNull": fn("isNull", IsNull,
			object.NewParam(false, "any", "value"),
		),
		"len": fn("len", Len,
			object.NewParam(true, "any", "value"),
		),
		"listAppend": fn("listAppend", ListAppend, append([]object.Param{
			object.NewParam(true, "string", "list"),
			object.NewParam(true, "string", "value"),
		}, listParams...)...),
		"listToArray": fn("listToArray", ListToArray, append([]object.Param{
			object.NewParam(true, "string", "list"),
		}, listParams...)...),
		"structKeyExists": fn("structKeyExists", StructKeyExists,
			object.NewParam(true, "struct", "struct"),
			object.NewParam(true, "string", "key"),
		),
		"typeOf": fn("typeOf", TypeOf,
			object.NewParam(false, "any", "value"),
		),
		"writeOutput": fn("writeOutput", WriteOutput,
			object.NewParam(true, "string", "obj"),
		),
	}
}

// registry is the case-insensitive lookup table over Builtins, keyed by
// folded name. It is built once and never modified.
var registry = func() map[string]*object.Function {
	m := map[string]*object.Function{}
	for name, f := range Builtins() {
		m[object.NewKey(name).Folded()] = f
	}
	return m
}()

// Lookup returns the built-in function with the given name, ignoring case.
func Lookup(name string) (*object.Function, bool) {
	f, ok := registry[object.NewKey(name).Folded()]
	return f, ok
}

// Names returns the names of every built-in function, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, f := range registry {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}
