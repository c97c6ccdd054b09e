package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/boxgo"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "List the built-in functions available to scripts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range boxgo.Builtins() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
