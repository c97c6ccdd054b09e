package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deepnoodle-ai/boxgo"
	"github.com/deepnoodle-ai/boxgo/object"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [file]",
	Short: "Transpile a syntax tree and run it in-process",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHandler,
}

func init() {
	addInputFlags(runCmd)
	runCmd.Flags().StringToStringP("env", "e", nil, "Variables made available to the script")
	runCmd.Flags().String("output", "", "Output format for the result: json or text")
	runCmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp
	})
	viper.BindPFlag("output", runCmd.Flags().Lookup("output"))
	rootCmd.AddCommand(runCmd)
}

func runHandler(cmd *cobra.Command, args []string) error {
	src, err := getSource(cmd, args)
	if err != nil {
		return err
	}
	opts := boxOptions(src.filename)
	unit, err := boxgo.TranspileJSON(src.data, opts...)
	if err != nil {
		return err
	}

	env, _ := cmd.Flags().GetStringToString("env")
	globals := make(map[string]any, len(env))
	for k, v := range env {
		globals[k] = v
	}
	out := cmd.OutOrStdout()
	opts = append(opts, boxgo.WithEnv(globals), boxgo.WithOutput(out))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	result, err := boxgo.Run(ctx, unit, opts...)
	if err != nil {
		return err
	}
	output, err := getOutput(result, viper.GetString("output"))
	if err != nil {
		return err
	}
	if output != "" {
		fmt.Fprintln(out, output)
	}
	return nil
}

// inspect renders a result for text output. Strings print unquoted.
func inspect(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return object.Inspect(v)
}
