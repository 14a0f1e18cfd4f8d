package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/opal-lang/opalc/internal/ast"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// project writes a config and a source file and returns their paths.
func project(t *testing.T, cfg, source string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	return writeFile(t, dir, "opal.toml", cfg), writeFile(t, dir, "demo.opal", source)
}

func TestParseFormats(t *testing.T) {
	cfg, src := project(t, "", "fn main() -> u8 { 1 + 2 }")

	out, _, err := run(t, "parse", src, "--config", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expected := "(geode demo (fn main (params) (-> u8) (block (+ 1 2))))\n"; out != expected {
		t.Fatalf("sexp wrong. expected=%q, got=%q", expected, out)
	}

	tests := []struct {
		format    string
		unmarshal func([]byte, any) error
	}{
		{"json", json.Unmarshal},
		{"yaml", yaml.Unmarshal},
	}

	for i, tt := range tests {
		out, _, err := run(t, "parse", src, "--config", cfg, "--format", tt.format)
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		var outline ast.Outline
		if err := tt.unmarshal([]byte(out), &outline); err != nil {
			t.Fatalf("tests[%d] - output does not decode: %v", i, err)
		}
		if outline.Kind != "geode" || len(outline.Children) != 2 {
			t.Fatalf("tests[%d] - unexpected outline %+v", i, outline)
		}
		fn := outline.Children[1]
		if fn.Kind != "function" || fn.Span.Start != 0 || fn.Span.Stop != 25 {
			t.Fatalf("tests[%d] - unexpected function outline %+v", i, fn)
		}
	}
}

func TestParseUsesConfig(t *testing.T) {
	cfg, src := project(t, "[geode]\nname = \"core\"\n\n[output]\nformat = \"json\"\n", "fn main() {}")

	out, _, err := run(t, "parse", src, "--config", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var outline ast.Outline
	if err := json.Unmarshal([]byte(out), &outline); err != nil {
		t.Fatalf("expected json output from config, got %q", out)
	}
	if name := outline.Children[0].Text; name != "core" {
		t.Fatalf("expected unit named core, got %q", name)
	}

	out, _, err = run(t, "parse", src, "--config", cfg, "--format", "sexp", "--name", "other")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "(geode other ") {
		t.Fatalf("expected flags to win over config, got %q", out)
	}
}

func TestParseExplicitConfigKeys(t *testing.T) {
	deep := strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300)

	tests := []struct {
		config string
		input  string
		prefix string
	}{
		{"[geode]\nname = \"main\"\n", "fn f() {}", "(geode main "},
		{"", "fn f() {}", "(geode demo "},
		{"[parser]\nmax_depth = 0\n", "fn f() { " + deep + " }", "(geode demo "},
	}

	for i, tt := range tests {
		cfg, src := project(t, tt.config, tt.input)
		out, stderr, err := run(t, "parse", src, "--config", cfg)
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v\n%s", i, err, stderr)
		}
		if !strings.HasPrefix(out, tt.prefix) {
			t.Fatalf("tests[%d] - expected output starting with %q, got %q", i, tt.prefix, out)
		}
	}
}

func TestParseReportsErrors(t *testing.T) {
	tests := []struct {
		config   string
		input    string
		expected []string
	}{
		{"", "fn main() { let x = ; }", []string{
			"error[PARSER_EXPECTED_EXPRESSION]: Expected to find an expression, but found `;` instead",
			"demo.opal:1:21",
		}},
		{"", "fn main() { 'ab' }", []string{"error[LEXER_"}},
		{"[parser]\nmax_depth = 4\n", "fn main() { ((((((1)))))) }", []string{"error[PARSER_NESTING_TOO_DEEP]"}},
	}

	for i, tt := range tests {
		cfg, src := project(t, tt.config, tt.input)
		_, stderr, err := run(t, "parse", src, "--config", cfg)
		if !errors.Is(err, errReported) {
			t.Fatalf("tests[%d] - expected errReported, got %v", i, err)
		}
		for _, want := range tt.expected {
			if !strings.Contains(stderr, want) {
				t.Fatalf("tests[%d] - expected %q in:\n%s", i, want, stderr)
			}
		}
	}
}

func TestTokens(t *testing.T) {
	cfg, src := project(t, "", "let x = 0x1f;")

	out, _, err := run(t, "tokens", src, "--config", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	expected := []string{
		"0..3 keyword `let`",
		"4..5 identifier `x`",
		"6..7 `=`",
		"8..12 integer literal `31`",
		"12..13 `;`",
	}
	if len(lines) != len(expected) {
		t.Fatalf("expected %d tokens, got %q", len(expected), out)
	}
	for i, line := range lines {
		if got := strings.Join(strings.Fields(line), " "); got != expected[i] {
			t.Fatalf("tests[%d] - token wrong. expected=%q, got=%q", i, expected[i], got)
		}
	}
}

func TestConfigErrors(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "demo.opal", "fn main() {}")

	tests := []struct {
		config   string
		expected string
	}{
		{"[output]\nformat = \"xml\"\n", "unknown output format"},
		{"[geode]\ncompiler = \">= 1.0\"\n", "requires compiler"},
		{"[parser\n", "failed to parse config"},
	}

	for i, tt := range tests {
		cfg := writeFile(t, dir, "opal.toml", tt.config)
		_, _, err := run(t, "parse", src, "--config", cfg)
		if err == nil || !strings.Contains(err.Error(), tt.expected) {
			t.Fatalf("tests[%d] - expected error containing %q, got %v", i, tt.expected, err)
		}
	}

	_, _, err := run(t, "parse", src, "--config", filepath.Join(dir, "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected a missing config error, got %v", err)
	}
}

func TestVersionIgnoresConfig(t *testing.T) {
	out, _, err := run(t, "version", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "opalc "+version+"\n" {
		t.Fatalf("unexpected version output %q", out)
	}
}
