package main

import (
	"github.com/spf13/cobra"

	"github.com/opal-lang/opalc/internal/lsp"
)

func newLSPCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Serve the Language Server Protocol on stdin and stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info("starting language server")
			return lsp.NewServer(version, opts.parserOptions()...).RunStdio()
		},
	}
}
