package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/reclog/internal/config"
	"github.com/roach88/reclog/internal/editor"
	"github.com/roach88/reclog/internal/prompt"
	"github.com/roach88/reclog/internal/recorder"
)

var (
	// errConfig marks configuration failures.
	errConfig = errors.New("config")
	// errInvalidInput marks bad flag values.
	errInvalidInput = errors.New("invalid input")
)

// session is everything one command invocation needs.
type session struct {
	cfg     *config.Config
	out     *OutputFormatter
	records *recorder.Recorder
	logger  *recorder.Logger
	prompt  prompt.Prompter
	editor  editor.Editor
	now     func() time.Time
}

// newSession loads configuration, applies flag overrides, configures
// logging and builds the recorder. The store itself is opened on first use.
func newSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, out.Fail(fmt.Errorf("%w: %w", errConfig, err))
	}

	configureLogging(cfg, opts.Verbose, cmd.ErrOrStderr())

	// Prompts go to stderr in JSON mode so stdout stays parseable.
	var promptOut io.Writer = cmd.OutOrStdout()
	if opts.Format == "json" {
		promptOut = cmd.ErrOrStderr()
	}
	p := prompt.New(cmd.InOrStdin(), promptOut)

	ed := opts.Editor
	if ed == nil {
		ed = editor.NewCommand(cfg.Editor.Command)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	keyFunc := recorder.TimeKey
	if cfg.Logger.KeyFormat == config.KeyFormatUnique {
		keyFunc = recorder.UniqueTimeKey
	}

	var recOpts []recorder.Option
	if cfg.Database.NormalizeKeys {
		recOpts = append(recOpts, recorder.WithNormalizedKeys())
	}
	records := recorder.New(cfg.Database.Path, cfg.Database.Container, recOpts...)
	out.VerboseLog("store: %s (container %s)", cfg.Database.Path, cfg.Database.Container)

	return &session{
		cfg:     cfg,
		out:     out,
		records: records,
		logger:  recorder.NewLogger(records, p, keyFunc),
		prompt:  p,
		editor:  ed,
		now:     now,
	}, nil
}

// Close releases the store.
func (s *session) Close() {
	if err := s.records.Close(); err != nil {
		slog.Error("error closing store", "error", err)
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
	} else {
		cfg, err = config.LoadOptional(config.DefaultPath())
	}
	if err != nil {
		return nil, err
	}

	if opts.Database != "" {
		cfg.Database.Path = opts.Database
	}
	if opts.Container != "" {
		cfg.Database.Container = opts.Container
	}
	return cfg, nil
}

// configureLogging installs the default slog logger.
// --verbose forces debug level; otherwise the configured level applies.
func configureLogging(cfg *config.Config, verbose bool, w io.Writer) {
	level, err := config.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = slog.LevelWarn
	}
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
