// Package config holds the csvline tool configuration. Values start from
// DefaultConfig, may be overlaid by a YAML dialect profile, then by CSVLINE_*
// environment variables, and finally by command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/oleg578/linecsv"
	"gopkg.in/yaml.v3"
)

// Config represents the csvline configuration.
type Config struct {
	Dialect DialectConfig `yaml:"dialect"`
	Reader  ReaderConfig  `yaml:"reader"`
	Logging LoggingConfig `yaml:"logging"`
}

// DialectConfig describes the CSV dialect. Characters are written as
// strings; see ParseRune for the accepted spellings.
type DialectConfig struct {
	Delimiter string `yaml:"delimiter"`
	Quote     string `yaml:"quote"`
	Escape    string `yaml:"escape"`
	Strict    bool   `yaml:"strict"`
}

// ReaderConfig holds input handling settings.
type ReaderConfig struct {
	Charset        string `yaml:"charset"`
	SkipEmptyLines bool   `yaml:"skip_empty_lines"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error
	Level string `yaml:"level"`
	// Format is the log format: text or json
	Format string `yaml:"format"`
}

// DefaultConfig returns a configuration for comma-separated UTF-8 input.
func DefaultConfig() *Config {
	return &Config{
		Dialect: DialectConfig{
			Delimiter: ",",
			Quote:     `"`,
			Escape:    `"`,
		},
		Reader: ReaderConfig{
			Charset: "utf-8",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFile overlays the YAML profile at path onto the defaults. Keys missing
// from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Environment variables read by ApplyEnv.
const (
	EnvDelimiter      = "CSVLINE_DELIMITER"
	EnvQuote          = "CSVLINE_QUOTE"
	EnvEscape         = "CSVLINE_ESCAPE"
	EnvStrict         = "CSVLINE_STRICT"
	EnvCharset        = "CSVLINE_CHARSET"
	EnvSkipEmptyLines = "CSVLINE_SKIP_EMPTY_LINES"
	EnvLogLevel       = "CSVLINE_LOG_LEVEL"
	EnvLogFormat      = "CSVLINE_LOG_FORMAT"
)

// ApplyEnv overrides fields with the CSVLINE_* variables that are set. A
// variable set to the empty string still counts, so CSVLINE_QUOTE= disables
// quoting.
func (c *Config) ApplyEnv() error {
	strs := map[string]*string{
		EnvDelimiter: &c.Dialect.Delimiter,
		EnvQuote:     &c.Dialect.Quote,
		EnvEscape:    &c.Dialect.Escape,
		EnvCharset:   &c.Reader.Charset,
		EnvLogLevel:  &c.Logging.Level,
		EnvLogFormat: &c.Logging.Format,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		EnvStrict:         &c.Dialect.Strict,
		EnvSkipEmptyLines: &c.Reader.SkipEmptyLines,
	}
	for name, dst := range bools {
		v, ok := os.LookupEnv(name)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", name, v, err)
		}
		*dst = b
	}
	return nil
}

// ParseDialect converts the textual dialect into a linecsv.Dialect.
func (c *Config) ParseDialect() (linecsv.Dialect, error) {
	var d linecsv.Dialect
	var err error

	if d.Delimiter, err = ParseRune(c.Dialect.Delimiter); err != nil {
		return d, fmt.Errorf("delimiter: %w", err)
	}
	if d.Quote, err = ParseRune(c.Dialect.Quote); err != nil {
		return d, fmt.Errorf("quote: %w", err)
	}
	if d.Escape, err = ParseRune(c.Dialect.Escape); err != nil {
		return d, fmt.Errorf("escape: %w", err)
	}
	d.Strict = c.Dialect.Strict
	return d, nil
}

// Validate checks that the configuration is usable.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []error

	if d, err := c.ParseDialect(); err != nil {
		errs = append(errs, err)
	} else if err := d.Validate(); err != nil {
		errs = append(errs, err)
	}

	if _, err := linecsv.NewDecodingReader(strings.NewReader(""), c.Reader.Charset); err != nil {
		errs = append(errs, err)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log format must be text or json, got %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}

var namedRunes = map[string]rune{
	"":      0,
	"none":  0,
	"tab":   '\t',
	`\t`:    '\t',
	"space": ' ',
	"pipe":  '|',
	`\\`:    '\\',
}

// ParseRune reads a single dialect character. The empty string and "none"
// mean unset; "tab", `\t`, "space" and "pipe" name their characters.
func ParseRune(s string) (rune, error) {
	if r, ok := namedRunes[strings.ToLower(s)]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%q is not a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
