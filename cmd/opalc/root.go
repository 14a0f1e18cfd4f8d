package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/opal-lang/opalc/internal/config"
	"github.com/opal-lang/opalc/internal/diag"
	"github.com/opal-lang/opalc/internal/parser"
)

const version = "0.1.0"

// errReported is returned once an error has already been printed.
var errReported = errors.New("error reported")

var log = commonlog.GetLogger("opalc")

type globalOptions struct {
	configPath string
	verbose    int
	cfg        *config.Config
}

// parserOptions applies the configured limits to every parse.
func (o *globalOptions) parserOptions() []parser.Option {
	return []parser.Option{parser.WithMaxDepth(o.cfg.Parser.MaxDepth)}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "opalc",
		Short: "Opal compiler front end",
		Long: `opalc tokenizes and parses Opal source files.

Settings are read from opal.toml in the working directory unless --config
points elsewhere.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(opts.verbose, nil)
			return opts.loadConfig(cmd)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "config file")
	root.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity")

	root.AddCommand(
		newTokensCmd(),
		newParseCmd(opts),
		newWatchCmd(opts),
		newLSPCmd(opts),
		newVersionCmd(),
	)
	return root
}

func (o *globalOptions) loadConfig(cmd *cobra.Command) error {
	if cmd.Flags().Changed("config") && !config.Exists(o.configPath) {
		return fmt.Errorf("config file %s not found", o.configPath)
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(version); err != nil {
		return err
	}
	log.Debugf("config: geode=%s max_depth=%d format=%s", cfg.Geode.Name, cfg.Parser.MaxDepth, cfg.Output.Format)
	o.cfg = cfg
	return nil
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// report prints err against the source it came from. Lexer and parser errors
// are rendered with a snippet; either way the caller gets errReported back.
func report(w io.Writer, path, source string, err error) error {
	var derr *diag.Error
	if !errors.As(err, &derr) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return errReported
	}
	diag.NewFormatter(w).Format(diag.NewSource(path, source), derr)
	return errReported
}
