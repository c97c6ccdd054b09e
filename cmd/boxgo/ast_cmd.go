package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/boxgo/ast"
)

var astCmd = &cobra.Command{
	Use:   "ast [flags] [file]",
	Short: "Validate a syntax tree and display it",
	Args:  cobra.MaximumNArgs(1),
	RunE:  astHandler,
}

func init() {
	addInputFlags(astCmd)
	astCmd.Flags().String("output", "text", "Output format: json or text")
	astCmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.AddCommand(astCmd)
}

func astHandler(cmd *cobra.Command, args []string) error {
	src, err := getSource(cmd, args)
	if err != nil {
		return err
	}
	node, err := ast.Decode(src.data)
	if err != nil {
		return fmt.Errorf("%s: %w", src.filename, err)
	}
	out := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("output")
	switch strings.ToLower(format) {
	case "json":
		data, err := getOutputJSON(ast.ToMap(node))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	case "text", "":
		printAST(out, node, 0)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	return nil
}

// printAST writes one line per node, indented by depth. Expressions are
// followed by their rendered form.
func printAST(w io.Writer, node ast.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	line := indent + node.Kind().String()
	if _, ok := node.(ast.Expr); ok {
		line += " " + node.String()
	}
	if pos := node.Range().Start; pos.IsValid() {
		line += " @" + pos.String()
	}
	fmt.Fprintln(w, line)
	for _, child := range node.Children() {
		if child == nil {
			continue
		}
		printAST(w, child, depth+1)
	}
}
