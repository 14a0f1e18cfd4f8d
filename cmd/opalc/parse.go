package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/opal-lang/opalc/internal/ast"
	"github.com/opal-lang/opalc/internal/config"
	"github.com/opal-lang/opalc/internal/parser"
)

func newParseCmd(opts *globalOptions) *cobra.Command {
	var (
		format string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a source file and print its syntax tree",
		Long: `Parse a source file and print its syntax tree.

The tree is printed as an S-expression by default, or as JSON or YAML with
--format. The format falls back to [output] format in opal.toml.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = opts.cfg.Output.Format
			}
			if !cmd.Flags().Changed("name") {
				name = unitName(args[0], opts.cfg)
			}

			source, err := readSource(args[0])
			if err != nil {
				return err
			}
			geode, err := parser.ParseSource(name, source, opts.parserOptions()...)
			if err != nil {
				return report(cmd.ErrOrStderr(), args[0], source, err)
			}
			return writeOutline(cmd.OutOrStdout(), ast.OutlineGeode(geode), format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", config.FormatSexp, "output format: sexp, json or yaml")
	cmd.Flags().StringVar(&name, "name", "", "name of the compilation unit (default: geode name from config, else the file name)")
	return cmd
}

// unitName prefers a name set in opal.toml and otherwise uses the file name.
func unitName(path string, cfg *config.Config) string {
	if cfg.Named() {
		return cfg.Geode.Name
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func writeOutline(w io.Writer, outline ast.Outline, format string) error {
	switch format {
	case config.FormatSexp:
		_, err := fmt.Fprintln(w, outline.String())
		return err
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(outline)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(outline); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
