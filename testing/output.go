package testing

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/deepnoodle-ai/boxgo/errors"
)

// OutputConfig configures output formatting.
type OutputConfig struct {
	// Writer is where output is written.
	Writer io.Writer

	// Verbose shows log output for all tests, not only failed ones.
	Verbose bool

	// UseColor enables ANSI color codes.
	UseColor bool
}

// Output prints test results in the style of go test.
type Output struct {
	w        io.Writer
	verbose  bool
	useColor bool
}

// NewOutput creates a new Output formatter.
func NewOutput(cfg OutputConfig) *Output {
	return &Output{
		w:        cfg.Writer,
		verbose:  cfg.Verbose,
		useColor: cfg.UseColor,
	}
}

var (
	green  = forced(color.FgGreen)
	red    = forced(color.FgRed)
	yellow = forced(color.FgYellow)
)

func forced(attr color.Attribute) *color.Color {
	c := color.New(attr)
	c.EnableColor()
	return c
}

// StartTest prints the "=== RUN" line for a test.
func (o *Output) StartTest(name string) {
	fmt.Fprintf(o.w, "=== RUN   %s\n", name)
}

// EndTest prints the result line for a test and its details.
func (o *Output) EndTest(result *TestResult) {
	var status string
	switch result.Status {
	case StatusPassed:
		status = o.colorize(green, "--- PASS:")
	case StatusFailed:
		status = o.colorize(red, "--- FAIL:")
	case StatusSkipped:
		status = o.colorize(yellow, "--- SKIP:")
	case StatusError:
		status = o.colorize(red, "--- ERROR:")
	default:
		status = fmt.Sprintf("--- %s:", result.Status)
	}
	fmt.Fprintf(o.w, "%s %s (%.3fs)\n", status, result.Name, result.Duration.Seconds())

	if result.Status == StatusSkipped && result.SkipReason != "" {
		fmt.Fprintf(o.w, "    %s\n", result.SkipReason)
	}
	if result.Status == StatusError && result.Error != nil {
		o.printError(result.Error)
	}
	for _, f := range result.Failures {
		loc := ""
		if f.File != "" {
			loc = f.File + ": "
		}
		fmt.Fprintf(o.w, "    %s%s\n", loc, f.Message)
	}
	if o.verbose || result.Status == StatusFailed {
		for _, line := range result.Logs {
			fmt.Fprintf(o.w, "    %s\n", line)
		}
	}
}

func (o *Output) printError(err error) {
	text := errors.NewFormatter(o.useColor).Format(errors.ToFormatted(err))
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintf(o.w, "    %s\n", line)
	}
}

// CompileError prints the error that kept a test file from running.
func (o *Output) CompileError(filename string, err error) {
	fmt.Fprintf(o.w, "%s %s\n", o.colorize(red, "COMPILE ERROR:"), filename)
	o.printError(err)
}

// Summary prints the final summary lines.
func (o *Output) Summary(summary *Summary) {
	fmt.Fprintln(o.w)
	if summary.Success() {
		fmt.Fprintln(o.w, o.colorize(green, "PASS"))
	} else {
		fmt.Fprintln(o.w, o.colorize(red, "FAIL"))
	}

	var parts []string
	if summary.Passed > 0 {
		parts = append(parts, o.colorize(green, fmt.Sprintf("%d passed", summary.Passed)))
	}
	if summary.Failed > 0 {
		parts = append(parts, o.colorize(red, fmt.Sprintf("%d failed", summary.Failed)))
	}
	if summary.Skipped > 0 {
		parts = append(parts, o.colorize(yellow, fmt.Sprintf("%d skipped", summary.Skipped)))
	}
	if summary.Errors > 0 {
		parts = append(parts, o.colorize(red, fmt.Sprintf("%d errors", summary.Errors)))
	}
	if len(parts) > 0 {
		fmt.Fprintln(o.w, strings.Join(parts, ", "))
	}
}

func (o *Output) colorize(c *color.Color, s string) string {
	if o.useColor {
		return c.Sprint(s)
	}
	return s
}

// PrintResults prints all results in go test style.
func (o *Output) PrintResults(summary *Summary) {
	for _, file := range summary.Files {
		if file.CompileErr != nil {
			o.CompileError(file.Filename, file.CompileErr)
		}
	}
	for _, file := range summary.Files {
		for _, test := range file.Tests {
			o.StartTest(test.Name)
			o.EndTest(test)
		}
	}
	o.Summary(summary)
}
