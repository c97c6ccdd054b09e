package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/boxgo"
	"github.com/deepnoodle-ai/boxgo/ast"
	"github.com/deepnoodle-ai/boxgo/compiler"
)

var transpileCmd = &cobra.Command{
	Use:   "transpile [flags] [files...]",
	Short: "Transpile syntax trees into Go source files",
	Long: `Transpile one or more JSON syntax trees into Go. Units are transpiled
concurrently. Without --out-dir the generated source is written to stdout.`,
	RunE: transpileHandler,
}

func init() {
	addInputFlags(transpileCmd)
	transpileCmd.Flags().StringP("out-dir", "o", "", "Directory receiving one .go file per input")
	rootCmd.AddCommand(transpileCmd)
}

func transpileHandler(cmd *cobra.Command, args []string) error {
	sources, err := getSources(cmd, args)
	if err != nil {
		return err
	}
	units, err := transpileSources(sources)
	if err != nil {
		return err
	}
	outDir, _ := cmd.Flags().GetString("out-dir")
	if outDir != "" {
		return writeUnits(outDir, units)
	}
	out := cmd.OutOrStdout()
	for i, unit := range units {
		src, err := unit.GoSource()
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprint(out, string(src))
	}
	return nil
}

// transpileSources decodes every source and transpiles the results
// together. Decode and compile failures are aggregated.
func transpileSources(sources []source) ([]*compiler.Unit, error) {
	var errs *multierror.Error
	inputs := make([]boxgo.Input, 0, len(sources))
	for _, src := range sources {
		node, err := ast.Decode(src.data)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", src.filename, err))
			continue
		}
		inputs = append(inputs, boxgo.Input{Filename: src.filename, Node: node})
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return boxgo.TranspileAll(inputs, boxOptions("")...)
}

func writeUnits(dir string, units []*compiler.Unit) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, unit := range units {
		src, err := unit.GoSource()
		if err != nil {
			return err
		}
		path := filepath.Join(dir, goFilename(unit))
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// goFilename names the generated file after its source, falling back to
// the unit ID for inputs that did not come from a file.
func goFilename(unit *compiler.Unit) string {
	base := filepath.Base(unit.Filename)
	if unit.Filename == "" || strings.HasPrefix(base, "<") {
		return "unit_" + strings.ReplaceAll(unit.ID.String(), "-", "") + ".go"
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".go"
}
