package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opal-lang/opalc/internal/lexer"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			l := lexer.New(source)
			for {
				tok, err := l.NextToken()
				if err != nil {
					return report(cmd.ErrOrStderr(), args[0], source, err)
				}
				if tok.Item.IsEnd() {
					return nil
				}
				fmt.Fprintf(out, "%-10s %s\n", tok.Span, tok.Item)
			}
		},
	}
}
