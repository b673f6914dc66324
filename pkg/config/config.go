// Package config loads compiler settings from TOML or YAML files.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the full set of compiler settings.
type Config struct {
	Outputs  Outputs  `toml:"outputs" yaml:"outputs"`
	Analysis Analysis `toml:"analysis" yaml:"analysis"`
	Log      Log      `toml:"log" yaml:"log"`
}

// Outputs names the artifacts written by a compile run.
type Outputs struct {
	Dir     string `toml:"dir" yaml:"dir"`
	Lexer   string `toml:"lexer" yaml:"lexer"`
	Parser  string `toml:"parser" yaml:"parser"`
	Symbols string `toml:"symbols" yaml:"symbols"`
	Errors  string `toml:"errors" yaml:"errors"`
}

// Path joins name onto the output directory.
func (o Outputs) Path(name string) string {
	return filepath.Join(o.Dir, name)
}

// Analysis tunes the parser and the semantic analyzer.
type Analysis struct {
	MaxDepth int  `toml:"max_depth" yaml:"max_depth"`
	Parallel bool `toml:"parallel" yaml:"parallel"`
}

// Log selects the level and handler of the CLI logger.
type Log struct {
	Level  string `toml:"level" yaml:"level"`   // debug, info, warn, error
	Format string `toml:"format" yaml:"format"` // text or json
}

// Default returns the settings used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads path, picking the decoder from its extension.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	cfg.applyDefaults()
	cfg.Outputs.Dir = os.ExpandEnv(cfg.Outputs.Dir)
	return &cfg, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Outputs.Dir == "" {
		c.Outputs.Dir = "."
	}
	if c.Outputs.Lexer == "" {
		c.Outputs.Lexer = "lexer.txt"
	}
	if c.Outputs.Parser == "" {
		c.Outputs.Parser = "parser.txt"
	}
	if c.Outputs.Symbols == "" {
		c.Outputs.Symbols = "symbol.txt"
	}
	if c.Outputs.Errors == "" {
		c.Outputs.Errors = "error.txt"
	}
	if c.Analysis.MaxDepth <= 0 {
		c.Analysis.MaxDepth = 1000
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Logger builds a slog.Logger writing to w as configured.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(c.Log.Format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("invalid log format %q", c.Log.Format)
}
