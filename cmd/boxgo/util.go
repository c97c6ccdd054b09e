package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/deepnoodle-ai/boxgo"
	"github.com/deepnoodle-ai/boxgo/errors"
)

var red = color.New(color.FgRed).SprintFunc()

func fatal(msg any) {
	var s string
	switch msg := msg.(type) {
	case string:
		s = red(msg)
	case error:
		s = formatError(msg, !color.NoColor)
	default:
		s = red(fmt.Sprintf("%v", msg))
	}
	fmt.Fprintln(os.Stderr, s)
	os.Exit(1)
}

// formatError renders compile and runtime errors with their source context.
// Aggregated errors from a multi-unit transpile are numbered.
func formatError(err error, useColor bool) string {
	f := errors.NewFormatter(useColor)
	var merr *multierror.Error
	if errors.As(err, &merr) && len(merr.Errors) > 1 {
		formatted := make([]*errors.FormattedError, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			formatted = append(formatted, errors.ToFormatted(e))
		}
		return f.FormatMultiple(formatted)
	}
	return f.Format(errors.ToFormatted(err))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Reads global flags from Viper and adjusts the environment accordingly.
func processGlobalFlags() {
	if viper.GetBool("no-color") || !isTerminal(os.Stdout) {
		color.NoColor = true
	}
}

func newLogger(w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{Out: w, NoColor: color.NoColor || !isTerminal(w)}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// boxOptions returns the facade options shared by every command.
func boxOptions(filename string) []boxgo.Option {
	opts := []boxgo.Option{boxgo.WithFilename(filename)}
	if viper.GetBool("verbose") {
		opts = append(opts, boxgo.WithLogger(newLogger(os.Stderr)))
	}
	return opts
}

var outputFormatsCompletion = []string{"json", "text"}

func getOutput(result any, format string) (string, error) {
	switch strings.ToLower(format) {
	case "":
		// With an unspecified format, print nothing for nil, JSON when the
		// value marshals and the inspected form otherwise.
		if result == nil {
			return "", nil
		}
		output, err := getOutputJSON(result)
		if err != nil {
			return inspect(result), nil
		}
		return string(output), nil
	case "json":
		output, err := getOutputJSON(result)
		if err != nil {
			return "", err
		}
		return string(output), nil
	case "text":
		return inspect(result), nil
	default:
		return "", fmt.Errorf("unknown output format: %s", format)
	}
}

func getOutputJSON(v any) ([]byte, error) {
	if color.NoColor {
		return json.MarshalIndent(v, "", "  ")
	}
	return prettyjson.Marshal(v)
}
