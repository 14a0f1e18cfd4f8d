package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/opal-lang/opalc/internal/parser"
)

// FileName is the project file looked up next to the sources.
const FileName = "opal.toml"

// Output formats accepted by `[output] format`.
const (
	FormatSexp = "sexp"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds the settings read from opal.toml.
type Config struct {
	Geode  GeodeConfig  `toml:"geode"`
	Parser ParserConfig `toml:"parser"`
	Output OutputConfig `toml:"output"`

	named bool
}

// GeodeConfig describes the compilation unit.
type GeodeConfig struct {
	// Name is "main" unless set; see Named.
	Name string `toml:"name"`
	// Compiler is a semver constraint the running compiler must satisfy,
	// e.g. ">= 0.1, < 0.3".
	Compiler string `toml:"compiler"`
}

type ParserConfig struct {
	// MaxDepth bounds nesting. 0 disables the bound.
	MaxDepth int `toml:"max_depth"`
}

type OutputConfig struct {
	Format string `toml:"format"`
}

// Default returns the configuration used when no opal.toml exists.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults(toml.MetaData{})
	return &cfg
}

// Load reads the config at path. A missing file is not an error: the
// defaults are returned instead.
func Load(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults(md)
	return &cfg, nil
}

// Parse decodes a config from TOML text.
func Parse(data string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults(md)
	return &cfg, nil
}

// applyDefaults fills the keys md did not define. An explicit zero is kept.
func (c *Config) applyDefaults(md toml.MetaData) {
	c.named = md.IsDefined("geode", "name")
	if c.Geode.Name == "" {
		c.Geode.Name = "main"
	}
	if !md.IsDefined("parser", "max_depth") {
		c.Parser.MaxDepth = parser.DefaultMaxDepth
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatSexp
	}
}

// Named reports whether opal.toml set the geode name, even to "main".
func (c *Config) Named() bool {
	return c.named
}

// Validate checks the config against the running compiler version.
func (c *Config) Validate(version string) error {
	switch c.Output.Format {
	case FormatSexp, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	if c.Parser.MaxDepth < 0 {
		return fmt.Errorf("parser.max_depth must not be negative, got %d", c.Parser.MaxDepth)
	}

	if c.Geode.Compiler == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.Geode.Compiler)
	if err != nil {
		return fmt.Errorf("invalid compiler constraint %q: %w", c.Geode.Compiler, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid compiler version %q: %w", version, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("geode %s requires compiler %s, running %s", c.Geode.Name, c.Geode.Compiler, version)
	}
	return nil
}

// Exists reports whether a config file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
