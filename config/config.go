// Package config loads rsx project settings from rsx.toml or rsx.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/rsx/markup/parser"
)

var log = commonlog.GetLogger("rsx.config")

// FileNames are the config file names looked up by Find, in order.
var FileNames = []string{"rsx.toml", "rsx.yaml", "rsx.yml"}

const (
	ExpressionsOpaque = "opaque"
	ExpressionsGo     = "go"
)

var ErrNotFound = errors.New("config file not found")

type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

type Config struct {
	// Flatten selects pre-order flattened output instead of a tree.
	Flatten bool `toml:"flatten" yaml:"flatten"`
	// Expressions selects how brace groups are checked: "opaque" or "go".
	Expressions string `toml:"expressions" yaml:"expressions"`
	// Format is the default output format of rsx parse.
	Format string `toml:"format" yaml:"format"`
	// Indent is the indentation unit used by rsx fmt.
	Indent string `toml:"indent" yaml:"indent"`

	path string
}

func Default() *Config {
	return &Config{
		Expressions: ExpressionsOpaque,
		Format:      "tree",
		Indent:      "  ",
	}
}

// Path is the file the config was loaded from, or "" for defaults.
func (c *Config) Path() string {
	return c.path
}

// Load reads the file at path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch detectFormat(path) {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.path = path
	log.Debugf("loaded config from %s", path)
	return cfg, nil
}

// Find looks for a config file in dir and its parents.
func Find(dir string) (string, error) {
	d, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(d, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(d)
		if parent == d {
			return "", fmt.Errorf("%w above %s", ErrNotFound, dir)
		}
		d = parent
	}
}

// Discover loads the nearest config file above dir, falling back to the
// defaults when there is none.
func Discover(dir string) (*Config, error) {
	path, err := Find(dir)
	if errors.Is(err, ErrNotFound) {
		log.Debugf("no config file above %s, using defaults", dir)
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Load(path)
}

func (c *Config) Validate() error {
	switch c.Expressions {
	case ExpressionsOpaque, ExpressionsGo:
	default:
		return fmt.Errorf("invalid expressions %q (want %q or %q)", c.Expressions, ExpressionsOpaque, ExpressionsGo)
	}
	if strings.TrimSpace(c.Indent) != "" {
		return fmt.Errorf("indent must be whitespace, got %q", c.Indent)
	}
	return nil
}

// ExprParser returns the expression parser selected by Expressions.
func (c *Config) ExprParser() parser.ExprParser {
	if c.Expressions == ExpressionsGo {
		return parser.GoExprs{}
	}
	return parser.OpaqueExprs{}
}

// ParserOptions converts the config into parser options.
func (c *Config) ParserOptions() []parser.Option {
	return []parser.Option{
		parser.WithConfig(parser.Config{Flatten: c.Flatten}),
		parser.WithExprParser(c.ExprParser()),
	}
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}
