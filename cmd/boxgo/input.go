package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// source is one JSON syntax tree read from the command line.
type source struct {
	filename string
	data     []byte
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("code", "c", "", "JSON syntax tree to use as input")
	cmd.Flags().Bool("stdin", false, "Read the syntax tree from stdin")
}

// getSources determines which syntax trees a command operates on. There are
// three possibilities:
//  1. --code <json>
//  2. --stdin
//  3. one or more paths as arguments
func getSources(cmd *cobra.Command, args []string) ([]source, error) {
	var codeFlagSet bool
	if f := cmd.Flags().Lookup("code"); f != nil && f.Changed {
		codeFlagSet = true
	}
	var stdinFlagSet bool
	if f := cmd.Flags().Lookup("stdin"); f != nil && f.Changed {
		stdinFlagSet = true
	}
	pathSupplied := len(args) > 0
	if pathSupplied && (codeFlagSet || stdinFlagSet) {
		return nil, errors.New("multiple input sources specified")
	} else if codeFlagSet && stdinFlagSet {
		return nil, errors.New("multiple input sources specified")
	}
	switch {
	case stdinFlagSet:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		return []source{{filename: "<stdin>", data: data}}, nil
	case pathSupplied:
		sources := make([]source, 0, len(args))
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			sources = append(sources, source{filename: path, data: data})
		}
		return sources, nil
	case codeFlagSet:
		code, _ := cmd.Flags().GetString("code")
		return []source{{filename: "<code>", data: []byte(code)}}, nil
	}
	return nil, errors.New("no input provided: pass a file, --code or --stdin")
}

func getSource(cmd *cobra.Command, args []string) (source, error) {
	sources, err := getSources(cmd, args)
	if err != nil {
		return source{}, err
	}
	if len(sources) != 1 {
		return source{}, errors.New("expected exactly one input")
	}
	return sources[0], nil
}
