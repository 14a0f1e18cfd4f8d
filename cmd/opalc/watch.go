package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/opal-lang/opalc/internal/ast"
	"github.com/opal-lang/opalc/internal/watch"
)

func newWatchCmd(opts *globalOptions) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-parse a source file whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			w := watch.New(args[0], unitName(args[0], opts.cfg), opts.parserOptions()...)
			return w.Run(ctx, func(r watch.Result) {
				if r.Err != nil {
					report(out, r.Path, r.Source, r.Err)
					return
				}
				fmt.Fprintf(out, "%s: ok, %d items\n", r.Path, len(r.Geode.Items))
				if !quiet {
					writeOutline(out, ast.OutlineGeode(r.Geode), opts.cfg.Output.Format)
				}
			})
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only report whether the file parses")
	return cmd
}
