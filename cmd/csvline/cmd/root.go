package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/oleg578/linecsv"
	"github.com/oleg578/linecsv/internal/config"
	"github.com/oleg578/linecsv/internal/logging"
	"github.com/spf13/cobra"
)

// contextCheckInterval is how often, in rows, a command checks for cancellation.
const contextCheckInterval = 100

type settingsKey struct{}

// settings is the resolved configuration handed to subcommands.
type settings struct {
	dialect   linecsv.Dialect
	charset   string
	skipEmpty bool
	logger    *slog.Logger
}

// NewRootCmd builds the csvline command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "csvline",
		Short: "csvline - streaming CSV inspector",
		Long: `csvline reads CSV text line by line and prints each row as JSON.

Quoted fields may span lines. Dialect settings come from a YAML profile
(--dialect), CSVLINE_* environment variables (also read from .env), and
flags, in increasing order of precedence.`,
		SilenceUsage:      true,
		PersistentPreRunE: loadSettings,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("dialect", "", "YAML dialect profile")
	flags.String("env-file", ".env", "environment file loaded before reading CSVLINE_* variables")
	flags.String("delimiter", "", "field delimiter (e.g. ',', ';', tab)")
	flags.String("quote", "", "quote character, or none to disable quoting")
	flags.String("escape", "", `escape character ('"' for doubled quotes, '\' for backslash), or none`)
	flags.Bool("strict", false, "reject stray quotes instead of keeping them as content")
	flags.String("charset", "", "input charset (utf-8, latin1, windows-1252, shift_jis, ...)")
	flags.Bool("skip-empty-lines", false, "drop rows that consist of a bare line terminator")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text or json")

	rootCmd.AddCommand(newRowsCmd(), newRecordsCmd(), newCheckCmd())
	return rootCmd
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func loadSettings(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	envFile, _ := flags.GetString("env-file")
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	}

	profile, _ := flags.GetString("dialect")
	cfg, err := config.LoadFile(profile)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	overrides := map[string]*string{
		"delimiter":  &cfg.Dialect.Delimiter,
		"quote":      &cfg.Dialect.Quote,
		"escape":     &cfg.Dialect.Escape,
		"charset":    &cfg.Reader.Charset,
		"log-level":  &cfg.Logging.Level,
		"log-format": &cfg.Logging.Format,
	}
	for name, dst := range overrides {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	if flags.Changed("strict") {
		cfg.Dialect.Strict, _ = flags.GetBool("strict")
	}
	if flags.Changed("skip-empty-lines") {
		cfg.Reader.SkipEmptyLines, _ = flags.GetBool("skip-empty-lines")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	dialect, err := cfg.ParseDialect()
	if err != nil {
		return err
	}

	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	logger.Debug("configuration loaded",
		"delimiter", string(dialect.Delimiter),
		"charset", cfg.Reader.Charset,
		"strict", dialect.Strict,
	)

	cmd.SetContext(context.WithValue(cmd.Context(), settingsKey{}, &settings{
		dialect:   dialect,
		charset:   cfg.Reader.Charset,
		skipEmpty: cfg.Reader.SkipEmptyLines,
		logger:    logger,
	}))
	return nil
}

func settingsFrom(cmd *cobra.Command) (*settings, error) {
	s, ok := cmd.Context().Value(settingsKey{}).(*settings)
	if !ok {
		return nil, errors.New("settings not found in context")
	}
	return s, nil
}

// openReader opens the named file, or stdin for "-" or no argument, and
// wraps it in a linecsv.Reader configured from the command settings.
func openReader(cmd *cobra.Command, args []string) (*linecsv.Reader, func() error, error) {
	s, err := settingsFrom(cmd)
	if err != nil {
		return nil, nil, err
	}

	var src io.Reader = cmd.InOrStdin()
	closeFn := func() error { return nil }
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open input: %w", err)
		}
		src = f
		closeFn = f.Close
	}

	decoded, err := linecsv.NewDecodingReader(src, s.charset)
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}

	r := linecsv.NewReader(decoded, &s.dialect)
	r.ReuseRecord = true
	r.SkipEmptyLines = s.skipEmpty
	r.Logger = s.logger
	return r, closeFn, nil
}

// checkContext returns the context error every contextCheckInterval rows.
func checkContext(ctx context.Context, rows int) error {
	if rows%contextCheckInterval != 0 {
		return nil
	}
	return ctx.Err()
}
