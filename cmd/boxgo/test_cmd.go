package main

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	boxtesting "github.com/deepnoodle-ai/boxgo/testing"
)

var errTestsFailed = errors.New("tests failed")

var testCmd = &cobra.Command{
	Use:   "test [flags] [patterns...]",
	Short: "Run script tests",
	Long: `Run the test functions declared in *_test.json files. A pattern is a
file, a directory, a directory followed by /... or a glob. Functions whose
name starts with "test" are run, each against a fresh unit context.`,
	RunE: testHandler,
}

func init() {
	testCmd.Flags().String("run", "", "Run only tests matching this regular expression")
	testCmd.Flags().StringToStringP("env", "e", nil, "Variables made available to every test")
	rootCmd.AddCommand(testCmd)
}

func testHandler(cmd *cobra.Command, args []string) error {
	run, _ := cmd.Flags().GetString("run")
	env, _ := cmd.Flags().GetStringToString("env")
	globals := make(map[string]any, len(env))
	for k, v := range env {
		globals[k] = v
	}
	summary, err := boxtesting.Run(cmd.Context(), &boxtesting.Config{
		Patterns:   args,
		RunPattern: run,
		Env:        globals,
	})
	if err != nil {
		return err
	}
		boxtesting.NewOutput(boxtesting.OutputConfig{
		Writer:   cmd.OutOrStdout(),
		Verbose:  viper.GetBool("verbose"),
		UseColor: !color.NoColor,
	}).PrintResults(summary)
	if !summary.Success() {
		return errTestsFailed
	}
	return nil
}
