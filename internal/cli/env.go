package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/dq/internal/config"
	"github.com/roach88/dq/internal/question"
	"github.com/roach88/dq/internal/store"
)

// Error codes for CLI output.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeInvalidArgs   = "E002" // Bad positional argument or flag
	ErrCodeConfig        = "E003" // Config file unreadable or invalid
	ErrCodeIO            = "E004" // Store filesystem failure
	ErrCodeSerialization = "E005" // Corrupt partition file
	ErrCodeDisagree      = "E006" // Questions disagree with target key
	ErrCodeInvalidKey    = "E007" // User key unusable as a path segment
	ErrCodeExportFailed  = "E008" // SQLite export failed
)

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// loadConfig resolves the effective configuration: defaults, then the
// --config file if given, then flag overrides.
func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if opts.Root != "" {
		cfg.Root = opts.Root
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, cfg.Validate()
}

// newLogger builds the process logger: text handler at the configured level.
func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
}

// openStore resolves config and returns a guarded store for one command.
func openStore(opts *RootOptions, cmd *cobra.Command, formatter *OutputFormatter) (*store.Guard, config.Config, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		_ = formatter.Error(ErrCodeConfig, err.Error(), nil)
		return nil, config.Config{}, WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg)
	formatter.VerboseLog("Using store root %s", cfg.Root)
	return store.NewGuard(store.New(cfg.Root, store.WithLogger(logger))), cfg, nil
}

// storeErrorCode maps a store error kind to a CLI error code.
func storeErrorCode(err error) string {
	switch store.KindOf(err) {
	case store.KindIO:
		return ErrCodeIO
	case store.KindSerialization:
		return ErrCodeSerialization
	case store.KindKeyMismatch:
		return ErrCodeDisagree
	case store.KindInvalidKey:
		return ErrCodeInvalidKey
	default:
		return ErrCodeGeneric
	}
}

// outputStoreError reports a failed store operation.
func outputStoreError(formatter *OutputFormatter, action string, err error) error {
	_ = formatter.Error(storeErrorCode(err), err.Error(), nil)
	return WrapExitError(ExitFailure, action, err)
}

// outputArgError reports a bad argument.
func outputArgError(formatter *OutputFormatter, message string) error {
	_ = formatter.Error(ErrCodeInvalidArgs, message, nil)
	return NewExitError(ExitCommandError, message)
}

func parseWeekArg(formatter *OutputFormatter, raw string) (uint8, error) {
	week, err := question.ParseWeek(raw)
	if err != nil {
		return 0, outputArgError(formatter, fmt.Sprintf("week %q must be an integer between 0 and 255", raw))
	}
	return week, nil
}
