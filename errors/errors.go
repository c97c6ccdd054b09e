// Package errors defines the compile and runtime error taxonomy. Every error
// carries an ErrorCode and can be rendered by a Formatter.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// SourceLocation represents a position in source code.
type SourceLocation struct {
	Filename string
	Line     int // 1-based line number
	Column   int // 1-based column number
}

// String returns a formatted string representation of the source location.
func (s SourceLocation) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsZero returns true if the location has not been set.
func (s SourceLocation) IsZero() bool {
	return s.Line == 0 && s.Column == 0
}

// StackFrame represents one function call active when a runtime error was
// raised.
type StackFrame struct {
	Function string
	Location SourceLocation
}

// String returns a formatted string representation of the stack frame.
func (f StackFrame) String() string {
	if f.Location.IsZero() {
		return "at " + f.Function
	}
	if f.Function != "" {
		return fmt.Sprintf("at %s (%s)", f.Function, f.Location.String())
	}
	return fmt.Sprintf("at %s", f.Location.String())
}

// FormattableError is an interface for errors that can be formatted with
// the enhanced error formatter (with colors, source context, etc).
type FormattableError interface {
	Error() string
	ToFormatted() *FormattedError
}

// CodedError is implemented by every error type in this package.
type CodedError interface {
	Error() string
	ErrorCode() ErrorCode
}

// CodeOf returns the code of the first CodedError in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var coded CodedError
	if stderrors.As(err, &coded) {
		return coded.ErrorCode(), true
	}
	return "", false
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }

// New returns an error that formats as the given text.
func New(text string) error { return stderrors.New(text) }

// TypeCastError reports that no coercion strategy could convert a value of
// type From to type To.
type TypeCastError struct {
	From        string
	To          string
	Param       string // set when raised while binding a parameter
	Detail      string
	Suggestions []Suggestion
}

// NewTypeCastError returns a TypeCastError for the given type names.
func NewTypeCastError(from, to string) *TypeCastError {
	return &TypeCastError{From: from, To: to}
}

func (e *TypeCastError) Error() string {
	var b strings.Builder
	if e.Param != "" {
		fmt.Fprintf(&b, "argument '%s': ", e.Param)
	}
	fmt.Fprintf(&b, "cannot cast %s to %s", e.From, e.To)
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *TypeCastError) ErrorCode() ErrorCode { return E3001 }

// ForParam returns a copy of the error naming the parameter being bound.
func (e *TypeCastError) ForParam(name string) *TypeCastError {
	cp := *e
	cp.Param = name
	return &cp
}

func (e *TypeCastError) ToFormatted() *FormattedError {
	return &FormattedError{
		Code:    E3001,
		Kind:    "type error",
		Message: e.Error(),
		Hint:    FormatSuggestions(e.Suggestions),
	}
}

// MissingArgumentError reports a required parameter that received no value
// and has no default.
type MissingArgumentError struct {
	Name     string
	Function string
}

func (e *MissingArgumentError) Error() string {
	if e.Function != "" {
		return fmt.Sprintf("required argument '%s' is missing in call to %s", e.Name, e.Function)
	}
	return fmt.Sprintf("required argument '%s' is missing", e.Name)
}

func (e *MissingArgumentError) ErrorCode() ErrorCode { return E3002 }

func (e *MissingArgumentError) ToFormatted() *FormattedError {
	return &FormattedError{Code: E3002, Kind: "argument error", Message: e.Error()}
}

// ImmutableError reports an attempt to modify, or to obtain a modifiable view
// of, an immutable value.
type ImmutableError struct {
	Type string
	Op   string
}

func (e *ImmutableError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("cannot %s: %s is immutable", e.Op, e.Type)
	}
	return fmt.Sprintf("%s is immutable", e.Type)
}

func (e *ImmutableError) ErrorCode() ErrorCode { return E3003 }

func (e *ImmutableError) ToFormatted() *FormattedError {
	return &FormattedError{Code: E3003, Kind: "runtime error", Message: e.Error()}
}

// RuntimeError is a general runtime failure identified by its code.
type RuntimeError struct {
	Code        ErrorCode
	Message     string
	Suggestions []Suggestion
	Stack       []StackFrame
	Err         error
}

// Runtimef returns a RuntimeError with a formatted message.
func Runtimef(code ErrorCode, format string, args ...any) *RuntimeError {
	return &RuntimeError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *RuntimeError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *RuntimeError) Unwrap() error { return e.Err }

func (e *RuntimeError) ErrorCode() ErrorCode { return e.Code }

func (e *RuntimeError) ToFormatted() *FormattedError {
	return &FormattedError{
		Code:    e.Code,
		Kind:    "runtime error",
		Message: e.Error(),
		Hint:    FormatSuggestions(e.Suggestions),
		Stack:   e.Stack,
	}
}
