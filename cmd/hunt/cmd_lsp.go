package main

import (
	"github.com/dhamidi/hunt/grammar"
	"github.com/dhamidi/hunt/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	var grammarFile string
	var startProduction string
	var skip string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.Load(grammarFile)
			if err != nil {
				return err
			}
			server, err := lsp.NewServer(version, g, startProduction, grammar.WithSkip(skip))
			if err != nil {
				return err
			}
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVar(&grammarFile, "grammar", "", "EBNF grammar file")
	cmd.Flags().StringVar(&startProduction, "start", "", "start production")
	cmd.Flags().StringVar(&skip, "skip", grammar.DefaultSkip, "trivia skipped between tokens of syntactic productions")
	_ = cmd.MarkFlagRequired("grammar")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}
