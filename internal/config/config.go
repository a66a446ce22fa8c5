// Package config loads the exparse CLI settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/aledsdavies/exparse/runtime/parser"
)

// FileName is the configuration file looked up when no path is given.
const FileName = ".exparse.toml"

// Config holds the complete CLI configuration.
type Config struct {
	Parser ParserConfig `toml:"parser"`
	Output OutputConfig `toml:"output"`
}

// ParserConfig mirrors the parser options.
type ParserConfig struct {
	StarRange  bool `toml:"star_range"`
	Magic      bool `toml:"magic"`
	MaxNesting int  `toml:"max_nesting"`
	MaxLines   int  `toml:"max_lines"`
}

// OutputConfig controls how trees and diagnostics are printed.
type OutputConfig struct {
	Format string `toml:"format"` // "tree", "yaml" or "cbor"
	Color  bool   `toml:"color"`
}

// Output formats.
const (
	FormatTree = "tree"
	FormatYAML = "yaml"
	FormatCBOR = "cbor"
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Parser: ParserConfig{
			StarRange:  true,
			Magic:      true,
			MaxNesting: parser.DefaultMaxNesting,
			MaxLines:   parser.DefaultMaxLines,
		},
		Output: OutputConfig{
			Format: FormatTree,
			Color:  true,
		},
	}
}

// Load reads path on top of the defaults. An empty path looks for FileName in
// the working directory and returns the defaults when it does not exist.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = FileName
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatTree, FormatYAML, FormatCBOR:
	default:
		return fmt.Errorf("output.format must be %q, %q or %q, got %q", FormatTree, FormatYAML, FormatCBOR, c.Output.Format)
	}
	if c.Parser.MaxNesting < 1 {
		return fmt.Errorf("parser.max_nesting must be positive, got %d", c.Parser.MaxNesting)
	}
	if c.Parser.MaxLines < 1 {
		return fmt.Errorf("parser.max_lines must be positive, got %d", c.Parser.MaxLines)
	}
	return nil
}

// ParserOptions converts the parser section into parser options.
func (c *Config) ParserOptions() []parser.ParserOpt {
	return []parser.ParserOpt{
		parser.WithStarRange(c.Parser.StarRange),
		parser.WithMagic(c.Parser.Magic),
		parser.WithMaxNesting(c.Parser.MaxNesting),
		parser.WithMaxLines(c.Parser.MaxLines),
	}
}

// Save writes the configuration as TOML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
