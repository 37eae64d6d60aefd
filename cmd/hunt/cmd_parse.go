package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/hunt/grammar"
	"github.com/dhamidi/hunt/parse"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var startProduction string
	var outputFormat string
	var skip string
	var trace bool

	cmd := &cobra.Command{
		Use:   "parse <grammar> <file>",
		Short: "Parse a file with an EBNF grammar and dump the syntax tree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.Load(args[0])
			if err != nil {
				return err
			}

			opts := []grammar.Option{grammar.WithSkip(skip)}
			if trace {
				opts = append(opts, grammar.WithTrace())
			}
			p, err := grammar.Compile(g, startProduction, opts...)
			if err != nil {
				return fmt.Errorf("compile grammar: %w", err)
			}

			filename := args[1]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			root, err := parse.Complete(p, filename, string(data))
			if err != nil {
				return err
			}

			switch outputFormat {
			case "json":
				if err := grammar.NewJSONEncoder(os.Stdout).Encode(root); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			case "tree":
				fmt.Print(root.String())
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json)")
	cmd.Flags().StringVar(&skip, "skip", grammar.DefaultSkip, "trivia skipped between tokens of syntactic productions")
	cmd.Flags().BoolVar(&trace, "trace", false, "log every production attempt (needs -vv)")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}
