package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/deepnoodle-ai/boxgo/internal/token"
	"github.com/stretchr/testify/require"
)

func TestSourceLocation_String(t *testing.T) {
	require.Equal(t, "main.bx:10:5", SourceLocation{Filename: "main.bx", Line: 10, Column: 5}.String())
	require.Equal(t, "10:5", SourceLocation{Line: 10, Column: 5}.String())
	require.True(t, SourceLocation{Filename: "x"}.IsZero())
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		category string
		desc     string
	}{
		{E2001, "compile", "unsupported node kind"},
		{E2003, "compile", "illegal access chain"},
		{E3001, "runtime", "type cast failed"},
		{E3003, "runtime", "immutable value modified"},
		{ErrorCode("X"), "unknown", "unknown error"},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			require.Equal(t, tt.category, tt.code.Category())
			require.Equal(t, tt.desc, tt.code.Description())
		})
	}
}

func TestNewCompileError(t *testing.T) {
	start := token.Position{File: "main.bx", Line: 2, Column: 4, Char: 20}
	r := token.Range{Start: start, End: start.Advance(7)}
	err := NewCompileError(E2003, r, "a.b.c.d", "cannot resolve %s", "a.b.c.d")

	require.Equal(t, E2003, err.ErrorCode())
	require.Equal(t, 3, err.Line)
	require.Equal(t, 5, err.Column)
	require.Equal(t, 11, err.EndColumn)
	require.Equal(t, "compile error[E2003]: cannot resolve a.b.c.d (main.bx:3:5)", err.Error())

	msg := err.FriendlyErrorMessage()
	require.Contains(t, msg, "compile error[E2003]: cannot resolve a.b.c.d")
	require.Contains(t, msg, "--> main.bx:3:5")
	require.Contains(t, msg, " 3 | a.b.c.d")
	require.Contains(t, msg, "   | ^^^^^^^")
}

func TestCompileErrorWithoutPosition(t *testing.T) {
	err := NewCompileError(E2001, token.Range{}, "", "no transformer for %s", "Bogus")
	require.Equal(t, "compile error[E2001]: no transformer for Bogus", err.Error())
	require.NotContains(t, err.FriendlyErrorMessage(), "-->")
}

func TestCompileErrorUnwrap(t *testing.T) {
	cause := New("expected operand")
	err := NewCompileError(E2002, token.Range{}, "", "bad template")
	err.Err = cause
	require.True(t, Is(err, cause))
	require.Contains(t, err.Error(), "expected operand")
	require.Equal(t, "expected operand", err.ToFormatted().Note)
}

func TestTypeCastError(t *testing.T) {
	err := NewTypeCastError("string", "numeric")
	require.Equal(t, "cannot cast string to numeric", err.Error())

	named := err.ForParam("count")
	require.Equal(t, "argument 'count': cannot cast string to numeric", named.Error())
	require.Empty(t, err.Param, "ForParam must not modify the receiver")

	err.Suggestions = SuggestSimilar("numric", []string{"numeric", "string"})
	require.Equal(t, "did you mean 'numeric'?", err.ToFormatted().Hint)
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		err  error
		code ErrorCode
	}{
		{NewTypeCastError("a", "b"), E3001},
		{&MissingArgumentError{Name: "x"}, E3002},
		{&ImmutableError{Type: "struct"}, E3003},
		{Runtimef(E3004, "variable %q is undefined", "x"), E3004},
		{fmt.Errorf("wrapped: %w", &MissingArgumentError{Name: "x"}), E3002},
	}
	for _, tt := range tests {
		code, ok := CodeOf(tt.err)
		require.True(t, ok)
		require.Equal(t, tt.code, code)
	}
	_, ok := CodeOf(New("plain"))
	require.False(t, ok)
}

func TestMessages(t *testing.T) {
	require.Equal(t, "required argument 'name' is missing in call to greet",
		(&MissingArgumentError{Name: "name", Function: "greet"}).Error())
	require.Equal(t, "required argument 'name' is missing",
		(&MissingArgumentError{Name: "name"}).Error())
	require.Equal(t, "cannot put: struct is immutable",
		(&ImmutableError{Type: "struct", Op: "put"}).Error())
	require.Equal(t, "array is immutable", (&ImmutableError{Type: "array"}).Error())
}

func TestSuggestSimilar(t *testing.T) {
	candidates := []string{"numeric", "integer", "boolean", "struct", "string", "array"}
	tests := []struct {
		target string
		want   []string
	}{
		{"numric", []string{"numeric"}},
		{"BOOLEAN", nil},
		{"strng", []string{"string"}},
		{"arry", []string{"array"}},
		{"zzzzzzzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			var got []string
			for _, s := range SuggestSimilar(tt.target, candidates) {
				got = append(got, s.Value)
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSuggestSimilar_MaxSuggestions(t *testing.T) {
	got := SuggestSimilar("abcd", []string{"abce", "abcf", "abcg", "abch", "abci"})
	require.Len(t, got, MaxSuggestions)
	require.Equal(t, "abce", got[0].Value)
}

func TestFormatSuggestions(t *testing.T) {
	require.Equal(t, "", FormatSuggestions(nil))
	require.Equal(t, "did you mean one of: 'a', 'b'?",
		FormatSuggestions([]Suggestion{{Value: "a"}, {Value: "b"}}))
}

func TestEditDistance(t *testing.T) {
	require.Equal(t, 0, editDistance("abc", "abc"))
	require.Equal(t, 3, editDistance("", "abc"))
	require.Equal(t, 1, editDistance("abc", "abd"))
	require.Equal(t, 3, editDistance("kitten", "sitting"))
}

func TestFormatter_FormatWithStack(t *testing.T) {
	err := Runtimef(E3004, "variable 'x' is undefined")
	err.Stack = []StackFrame{{Function: "inner"}, {Function: "outer", Location: SourceLocation{Line: 3, Column: 1}}}
	out := NewFormatter(false).Format(err.ToFormatted())
	require.Contains(t, out, "runtime error[E3004]: variable 'x' is undefined")
	require.Contains(t, out, "stack trace:")
	require.Contains(t, out, "at inner\n")
	require.Contains(t, out, "at outer (3:1)")
}

func TestFormatter_FormatMultiple(t *testing.T) {
	errs := []*FormattedError{
		{Message: "first"},
		{Message: "second"},
	}
	out := NewFormatter(false).FormatMultiple(errs)
	require.Contains(t, out, "error[1/2]: first")
	require.Contains(t, out, "error[2/2]: second")
	require.True(t, strings.HasSuffix(out, "found 2 errors\n"))
}

func TestFormatter_FormatWithColor(t *testing.T) {
	fe := ToFormatted(NewTypeCastError("string", "boolean"))
	plain := NewFormatter(false).Format(fe)
	colored := NewFormatter(true).Format(fe)
	require.NotContains(t, plain, "\x1b[")
	require.Contains(t, colored, "\x1b[")
	require.Contains(t, colored, "cannot cast string to boolean")
}

func TestToFormattedPlainError(t *testing.T) {
	fe := ToFormatted(New("boom"))
	require.Equal(t, "boom", fe.Message)
	require.Equal(t, ErrorCode(""), fe.Code)
}
