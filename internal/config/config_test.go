package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opal-lang/opalc/internal/config"
	"github.com/opal-lang/opalc/internal/parser"
)

func TestParseConfig(t *testing.T) {
	cfg, err := config.Parse(`
[geode]
name = "demo"
compiler = ">= 0.1, < 0.3"

[parser]
max_depth = 64

[output]
format = "yaml"
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Geode.Name != "demo" {
		t.Fatalf("expected name demo, got %q", cfg.Geode.Name)
	}
	if cfg.Parser.MaxDepth != 64 {
		t.Fatalf("expected max depth 64, got %d", cfg.Parser.MaxDepth)
	}
	if cfg.Output.Format != config.FormatYAML {
		t.Fatalf("expected yaml output, got %q", cfg.Output.Format)
	}
	if err := cfg.Validate("0.2.5"); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := config.Parse("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg != *config.Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.Output.Format != config.FormatSexp || cfg.Parser.MaxDepth != parser.DefaultMaxDepth || cfg.Geode.Name != "main" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Named() {
		t.Fatalf("expected the default name not to count as set")
	}
}

func TestExplicitKeysOverrideDefaults(t *testing.T) {
	tests := []struct {
		input    string
		maxDepth int
		name     string
		named    bool
	}{
		{"[parser]\nmax_depth = 0\n", 0, "main", false},
		{"[parser]\nmax_depth = 12\n", 12, "main", false},
		{"[geode]\nname = \"main\"\n", parser.DefaultMaxDepth, "main", true},
		{"[geode]\nname = \"core\"\n", parser.DefaultMaxDepth, "core", true},
		{"[geode]\ncompiler = \"^0.1\"\n", parser.DefaultMaxDepth, "main", false},
	}

	for i, tt := range tests {
		cfg, err := config.Parse(tt.input)
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if cfg.Parser.MaxDepth != tt.maxDepth {
			t.Fatalf("tests[%d] - max depth wrong. expected=%d, got=%d", i, tt.maxDepth, cfg.Parser.MaxDepth)
		}
		if cfg.Geode.Name != tt.name || cfg.Named() != tt.named {
			t.Fatalf("tests[%d] - name wrong. expected=%q (set %v), got=%q (set %v)", i, tt.name, tt.named, cfg.Geode.Name, cfg.Named())
		}
		if err := cfg.Validate("0.1.0"); err != nil {
			t.Fatalf("tests[%d] - unexpected validation error: %v", i, err)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, config.FileName)
	cfg, err := config.Load(missing)
	if err != nil {
		t.Fatalf("expected defaults for a missing file, got %v", err)
	}
	if cfg.Geode.Name != "main" {
		t.Fatalf("expected default name, got %q", cfg.Geode.Name)
	}
	if config.Exists(missing) {
		t.Fatalf("expected %s not to exist", missing)
	}

	if err := os.WriteFile(missing, []byte("[geode]\nname = \"disk\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = config.Load(missing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Geode.Name != "disk" {
		t.Fatalf("expected name disk, got %q", cfg.Geode.Name)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[geode\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(bad); err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Fatalf("expected a parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		input   string
		version string
		errText string
	}{
		{"", "0.1.0", ""},
		{"[geode]\ncompiler = \"^0.1\"", "0.1.4", ""},
		{"[geode]\ncompiler = \"^0.2\"", "0.1.4", "requires compiler"},
		{"[geode]\ncompiler = \"not a constraint\"", "0.1.0", "invalid compiler constraint"},
		{"[output]\nformat = \"xml\"", "0.1.0", "unknown output format"},
		{"[parser]\nmax_depth = -1", "0.1.0", "must not be negative"},
	}

	for i, tt := range tests {
		cfg, err := config.Parse(tt.input)
		if err != nil {
			t.Fatalf("tests[%d] - unexpected parse error: %v", i, err)
		}
		err = cfg.Validate(tt.version)
		if tt.errText == "" {
			if err != nil {
				t.Fatalf("tests[%d] - unexpected error: %v", i, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.errText) {
			t.Fatalf("tests[%d] - expected error containing %q, got %v", i, tt.errText, err)
		}
	}
}
