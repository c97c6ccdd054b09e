package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Formatter formats errors in a Rust-like style, optionally with colors.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool
}

// NewFormatter creates a new error formatter.
func NewFormatter(useColor bool) *Formatter {
	return &Formatter{UseColor: useColor}
}

// Colors used for error formatting. They are forced on because the
// Formatter decides for itself whether to use them.
var (
	colorError     = forced(color.FgRed)
	colorErrorBold = forced(color.FgHiRed, color.Bold)
	colorCode      = forced(color.FgHiBlack)
	colorLocation  = forced(color.FgCyan)
	colorPipe      = forced(color.FgHiBlack)
	colorSource    = forced(color.FgWhite)
	colorCaret     = forced(color.FgHiRed)
	colorHint      = forced(color.FgHiYellow)
	colorNote      = forced(color.FgHiBlue)
)

func forced(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// FormattedError represents an error ready for display.
type FormattedError struct {
	Code        ErrorCode
	Kind        string // "compile error", "type error", etc.
	Message     string
	Filename    string
	Line        int
	Column      int
	EndColumn   int               // For multi-character underlines
	SourceLines []SourceLineEntry // Lines shown for context
	Hint        string            // "Did you mean?" suggestion
	Note        string            // Additional context
	Stack       []StackFrame      // Active calls for runtime errors
}

// SourceLineEntry represents a line of source code with its number.
type SourceLineEntry struct {
	Number int
	Text   string
	IsMain bool // True if this is the line with the error

	// CaretStart and CaretEnd override the error columns for the underline
	// when the text does not start at column one of the file.
	CaretStart int
	CaretEnd   int
}

// ToFormatted converts any error into a FormattedError. Errors that do not
// implement FormattableError are shown with their message only.
func ToFormatted(err error) *FormattedError {
	var fe FormattableError
	if As(err, &fe) {
		return fe.ToFormatted()
	}
	out := &FormattedError{Kind: "error", Message: err.Error()}
	if code, ok := CodeOf(err); ok {
		out.Code = code
	}
	return out
}

func (f *Formatter) paint(c *color.Color, s string) string {
	if f.UseColor {
		return c.Sprint(s)
	}
	return s
}

// Format formats the error as a string.
func (f *Formatter) Format(err *FormattedError) string {
	return f.FormatWithPrefix(err, "")
}

// FormatWithPrefix formats the error with an optional prefix like "1/5",
// shown in place of the code when the error has none.
func (f *Formatter) FormatWithPrefix(err *FormattedError, prefix string) string {
	var b strings.Builder

	width := 2
	if err.Line >= 100 {
		width = len(fmt.Sprintf("%d", err.Line))
	}
	pad := strings.Repeat(" ", width)

	label := "error"
	if err.Kind != "" {
		label = err.Kind
	}
	b.WriteString(f.paint(colorErrorBold, label))
	if err.Code != "" {
		b.WriteString(f.paint(colorCode, "["+string(err.Code)+"]"))
	} else if prefix != "" {
		b.WriteString(f.paint(colorCode, "["+prefix+"]"))
	}
	b.WriteString(f.paint(colorError, ": "))
	b.WriteString(err.Message)
	b.WriteString("\n")

	if loc := location(err); loc != "" {
		b.WriteString(pad)
		b.WriteString(f.paint(colorLocation, "-->"))
		b.WriteString(" ")
		b.WriteString(f.paint(colorLocation, loc))
		b.WriteString("\n")
	}

	if len(err.SourceLines) > 0 {
		b.WriteString(pad + f.paint(colorPipe, " |") + "\n")
		for _, line := range err.SourceLines {
			f.writeSourceLine(&b, err, line, width)
		}
	}

	if err.Hint != "" {
		b.WriteString(pad + f.paint(colorPipe, " |") + "\n")
		b.WriteString(pad + f.paint(colorPipe, " = ") + f.paint(colorHint, "hint: "))
		b.WriteString(err.Hint)
		b.WriteString("\n")
	}
	if err.Note != "" {
		b.WriteString(pad + f.paint(colorPipe, " = ") + f.paint(colorNote, "note: "))
		b.WriteString(err.Note)
		b.WriteString("\n")
	}
	if len(err.Stack) > 0 {
		b.WriteString(pad + f.paint(colorPipe, " = ") + f.paint(colorNote, "stack trace:") + "\n")
		for _, frame := range err.Stack {
			b.WriteString(pad + "     " + frame.String() + "\n")
		}
	}
	return b.String()
}

func (f *Formatter) writeSourceLine(b *strings.Builder, err *FormattedError, line SourceLineEntry, width int) {
	b.WriteString(f.paint(colorPipe, fmt.Sprintf("%*d", width, line.Number)))
	b.WriteString(f.paint(colorPipe, " | "))
	b.WriteString(f.paint(colorSource, line.Text))
	b.WriteString("\n")
	if !line.IsMain {
		return
	}
	start, end := err.Column, err.EndColumn
	if line.CaretStart > 0 {
		start, end = line.CaretStart, line.CaretEnd
	}
	if start <= 0 {
		return
	}
	n := 1
	if end > start {
		n = end - start + 1
	}
	b.WriteString(strings.Repeat(" ", width))
	b.WriteString(f.paint(colorPipe, " | "))
	b.WriteString(strings.Repeat(" ", start-1))
	b.WriteString(f.paint(colorCaret, strings.Repeat("^", n)))
	b.WriteString("\n")
}

func location(err *FormattedError) string {
	switch {
	case err.Filename != "" && err.Line > 0:
		return fmt.Sprintf("%s:%d:%d", err.Filename, err.Line, err.Column)
	case err.Filename != "":
		return err.Filename
	case err.Line > 0:
		return fmt.Sprintf("%d:%d", err.Line, err.Column)
	}
	return ""
}

// FormatMultiple formats multiple errors with consistent styling.
func (f *Formatter) FormatMultiple(errs []*FormattedError) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return f.Format(errs[0])
	}
	var b strings.Builder
	total := len(errs)
	for i, err := range errs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.FormatWithPrefix(err, fmt.Sprintf("%d/%d", i+1, total)))
	}
	b.WriteString("\n")
	b.WriteString(f.paint(colorErrorBold, fmt.Sprintf("found %d errors", total)))
	b.WriteString("\n")
	return b.String()
}
