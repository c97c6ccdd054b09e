package errors

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/boxgo/internal/token"
)

// CompileError is raised while transpiling a unit. It always aborts the
// whole unit.
type CompileError struct {
	Code        ErrorCode
	Message     string
	Filename    string
	Line        int
	Column      int
	EndColumn   int
	SourceLine  string
	Suggestions []Suggestion
	Note        string
	Err         error
}

// NewCompileError returns a CompileError located at r. The source text of
// the offending node is shown beneath the message when available.
func NewCompileError(code ErrorCode, r token.Range, source string, format string, args ...any) *CompileError {
	e := &CompileError{
		Code:       code,
		Message:    fmt.Sprintf(format, args...),
		Filename:   r.Start.File,
		SourceLine: firstLine(source),
	}
	if r.Start.IsValid() {
		e.Line = r.Start.LineNumber()
		e.Column = r.Start.ColumnNumber()
		if r.End.Line == r.Start.Line && r.End.Column > r.Start.Column {
			e.EndColumn = r.End.Column
		}
	}
	return e
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "compile error[%s]: %s", e.Code, e.Message)
	if e.Filename != "" || e.Line > 0 {
		b.WriteString(" (")
		b.WriteString(e.Location().String())
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *CompileError) Unwrap() error { return e.Err }

func (e *CompileError) ErrorCode() ErrorCode { return e.Code }

// Location returns the position of the offending node.
func (e *CompileError) Location() SourceLocation {
	return SourceLocation{Filename: e.Filename, Line: e.Line, Column: e.Column}
}

// FriendlyErrorMessage returns a human-friendly error message.
func (e *CompileError) FriendlyErrorMessage() string {
	return NewFormatter(false).Format(e.ToFormatted())
}

// ToFormatted converts to the FormattedError type for display.
func (e *CompileError) ToFormatted() *FormattedError {
	fe := &FormattedError{
		Code:      e.Code,
		Kind:      "compile error",
		Message:   e.Message,
		Filename:  e.Filename,
		Line:      e.Line,
		Column:    e.Column,
		EndColumn: e.EndColumn,
		Note:      e.Note,
	}
	if e.Err != nil && fe.Note == "" {
		fe.Note = e.Err.Error()
	}
	if e.SourceLine != "" {
		// The source line holds only the node text, so underline all of it.
		fe.SourceLines = []SourceLineEntry{{
			Number:     e.Line,
			Text:       e.SourceLine,
			IsMain:     true,
			CaretStart: 1,
			CaretEnd:   len(e.SourceLine),
		}}
	}
	if len(e.Suggestions) > 0 {
		fe.Hint = FormatSuggestions(e.Suggestions)
	}
	return fe
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
