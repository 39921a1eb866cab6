package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Logger key formats.
const (
	KeyFormatTime   = "time"
	KeyFormatUnique = "unique"
)

// Config is the complete reclog configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database" toml:"database"`
	Editor   EditorConfig   `yaml:"editor" toml:"editor"`
	Logger   LoggerConfig   `yaml:"logger" toml:"logger"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// DatabaseConfig selects the store location and container.
type DatabaseConfig struct {
	Path      string `yaml:"path" toml:"path"`
	Container string `yaml:"container" toml:"container"`
	// NormalizeKeys stores keys in NFC so equivalent spellings match.
	NormalizeKeys bool `yaml:"normalize_keys" toml:"normalize_keys"`
}

// EditorConfig holds the external editor command line.
type EditorConfig struct {
	Command string `yaml:"command" toml:"command"`
}

// LoggerConfig controls how log entries are keyed.
type LoggerConfig struct {
	KeyFormat string `yaml:"key_format" toml:"key_format"` // "time" | "unique"
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Level string `yaml:"level" toml:"level"` // "debug" | "info" | "warn" | "error"
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:      DefaultDatabasePath(),
			Container: "main",
		},
		Editor:  EditorConfig{Command: "vi"},
		Logger:  LoggerConfig{KeyFormat: KeyFormatTime},
		Logging: LoggingConfig{Level: "warn"},
	}
}

// DefaultDatabasePath is records.db under the user's data directory,
// falling back to the working directory when no home is known.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "records.db"
	}
	return filepath.Join(home, ".local", "share", "reclog", "records.db")
}

// DefaultPath is config.yaml under the user's config directory, or "" when
// that directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "reclog", "config.yaml")
}

// Load reads the configuration file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(expanded, cfg)
		if err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parsing config file: unknown key %q", undecoded[0].String())
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOptional loads path if it exists and returns the defaults if it
// does not. An empty path also yields the defaults.
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that every setting holds a supported value.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	switch c.Logger.KeyFormat {
	case KeyFormatTime, KeyFormatUnique:
	default:
		return fmt.Errorf("logger.key_format %q: must be %q or %q", c.Logger.KeyFormat, KeyFormatTime, KeyFormatUnique)
	}

	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}

	return nil
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown level %q", name)
	}
	return level, nil
}
