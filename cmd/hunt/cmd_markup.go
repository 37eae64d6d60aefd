package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhamidi/hunt/markup"
	"github.com/spf13/cobra"
)

func newMarkupCmd() *cobra.Command {
	var showTree bool

	cmd := &cobra.Command{
		Use:   "markup <file>",
		Short: "Parse a tagged document and print its tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			if !showTree {
				tokens, err := markup.Tokens(string(data))
				if err != nil {
					return fmt.Errorf("%s: %w", filename, err)
				}
				for _, tok := range tokens {
					fmt.Println(tok)
				}
				return nil
			}

			root, err := markup.ParseFile(filename, string(data))
			if err != nil {
				return err
			}
			printElement(root, 0)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showTree, "tree", false, "print the element tree instead of the token list")

	return cmd
}

func printElement(e *markup.Element, depth int) {
	indent := strings.Repeat("  ", depth)
	switch e.Kind {
	case markup.Text:
		fmt.Printf("%s%q\n", indent, e.Text)
	case markup.Tag:
		fmt.Printf("%s<%s>\n", indent, e.Name)
	case markup.Document:
		fmt.Printf("%s#document\n", indent)
	}
	for _, child := range e.Children {
		printElement(child, depth+1)
	}
}
