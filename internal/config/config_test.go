package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oleg578/linecsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ",", cfg.Dialect.Delimiter)
	assert.Equal(t, `"`, cfg.Dialect.Quote)
	assert.Equal(t, `"`, cfg.Dialect.Escape)
	assert.False(t, cfg.Dialect.Strict)
	assert.Equal(t, "utf-8", cfg.Reader.Charset)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	require.NoError(t, cfg.Validate())

	d, err := cfg.ParseDialect()
	require.NoError(t, err)
	assert.Equal(t, linecsv.DefaultDialect(), d)
}

func TestLoadFile(t *testing.T) {
	t.Run("overlays defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tsv.yaml")
		profile := "dialect:\n  delimiter: tab\n  escape: '\\'\n  strict: true\nreader:\n  charset: latin1\n"
		require.NoError(t, os.WriteFile(path, []byte(profile), 0600))

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())

		d, err := cfg.ParseDialect()
		require.NoError(t, err)
		assert.Equal(t, linecsv.Dialect{Delimiter: '\t', Quote: '"', Escape: '\\', Strict: true}, d)
		assert.Equal(t, "latin1", cfg.Reader.Charset)
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("round trips through yaml", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Dialect.Delimiter = ";"
		cfg.Reader.SkipEmptyLines = true

		data, err := yaml.Marshal(cfg)
		require.NoError(t, err)
		path := filepath.Join(t.TempDir(), "profile.yaml")
		require.NoError(t, os.WriteFile(path, data, 0600))

		loaded, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, cfg, loaded)
	})

	t.Run("empty path", func(t *testing.T) {
		cfg, err := LoadFile("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("dialect: [unclosed"), 0600))

		_, err := LoadFile(path)
		assert.ErrorContains(t, err, "failed to parse config file")
	})
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDelimiter, "|")
	t.Setenv(EnvQuote, "")
	t.Setenv(EnvEscape, "none")
	t.Setenv(EnvStrict, "true")
	t.Setenv(EnvLogFormat, "json")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())
	require.NoError(t, cfg.Validate())

	d, err := cfg.ParseDialect()
	require.NoError(t, err)
	assert.Equal(t, linecsv.Dialect{Delimiter: '|', Strict: true}, d)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "utf-8", cfg.Reader.Charset)
}

func TestApplyEnvInvalidBool(t *testing.T) {
	t.Setenv(EnvSkipEmptyLines, "sometimes")

	err := DefaultConfig().ApplyEnv()
	assert.ErrorContains(t, err, EnvSkipEmptyLines)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dialect.Quote = ","
	cfg.Reader.Charset = "klingon-8"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	assert.ErrorIs(t, err, linecsv.ErrInvalidDialect)
	assert.ErrorIs(t, err, linecsv.ErrUnknownCharset)
	assert.ErrorContains(t, err, "log format")

	cfg = DefaultConfig()
	cfg.Dialect.Delimiter = "ab"
	assert.ErrorContains(t, cfg.Validate(), "delimiter")
}

func TestParseRune(t *testing.T) {
	tests := []struct {
		in   string
		want rune
		err  bool
	}{
		{in: ",", want: ','},
		{in: "TAB", want: '\t'},
		{in: `\t`, want: '\t'},
		{in: "space", want: ' '},
		{in: "pipe", want: '|'},
		{in: `\\`, want: '\\'},
		{in: "", want: 0},
		{in: "none", want: 0},
		{in: "§", want: '§'},
		{in: "ab", err: true},
	}

	for _, tc := range tests {
		got, err := ParseRune(tc.in)
		if tc.err {
			assert.Error(t, err, "ParseRune(%q)", tc.in)
			continue
		}
		require.NoError(t, err, "ParseRune(%q)", tc.in)
		assert.Equal(t, tc.want, got, "ParseRune(%q)", tc.in)
	}
}
