package logger

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/hollowthesilver/asynclogger/core"
)

// ErrInvalidConfig classifies construction failures: bad parameters or
// an unrecoverable setup problem such as an uncreatable log directory.
var ErrInvalidConfig = errors.New("invalid logger configuration")

// Defaults applied by New for zero-valued Config fields.
const (
	DefaultBatchSize     = 100
	DefaultFlushInterval = 5 * time.Second
	DefaultCacheSize     = 1000
)

// Extras is the optional structured context accompanying a message.
type Extras map[string]any

// Config describes an AsyncLogger. The zero value of every field
// except Name is usable; Name is required.
type Config struct {
	// Name identifies the logger and substitutes for {name} in
	// templates. Required, non-empty.
	Name string

	// ConsoleTemplate is the console display template
	// (default: formatter.DefaultConsoleTemplate).
	ConsoleTemplate string

	// FileTemplate is the file display template
	// (default: formatter.DefaultFileTemplate).
	FileTemplate string

	// ColorEnabled overrides environment color detection. Nil means
	// auto-detect.
	ColorEnabled *bool

	// LogDir is the target directory for the rotating file sink.
	// Empty disables file output entirely.
	LogDir string

	// MaxBytes is the file size threshold triggering rotation
	// (default: handler.DefaultMaxBytes). Negative is a configuration
	// error.
	MaxBytes int64

	// BackupCount is the number of rotated files to keep. Nil means
	// the default (handler.DefaultBackupCount); an explicit zero
	// truncates in place on rotation; negative is a configuration
	// error.
	BackupCount *int

	// Level is the minimum severity dispatched to sinks. Events below
	// it are still counted but produce no output. The zero value lets
	// everything through.
	Level core.Level

	// Colors overrides per-level color assignments, e.g.
	// {core.InfoLevel: "blue+bold"}.
	Colors map[core.Level]string

	// BatchSize is the file-batch flush threshold (default: DefaultBatchSize).
	BatchSize int

	// FlushInterval is the periodic flush cadence (default: DefaultFlushInterval).
	FlushInterval time.Duration

	// CacheSize bounds the formatted-extras cache (default: DefaultCacheSize).
	CacheSize int

	// ConsoleWriter receives console output (default: os.Stdout).
	ConsoleWriter io.Writer

	// ErrorWriter receives last-resort failure reports (default: os.Stderr).
	ErrorWriter io.Writer

	// Fs is the filesystem backing the file sink and retention sweep
	// (default: the OS filesystem).
	Fs afero.Fs

	// Locator resolves caller location (default: core.DefaultLocator).
	Locator core.Locator
}

// validate rejects invalid parameters before any I/O occurs.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name must be a non-empty string", ErrInvalidConfig)
	}
	if c.MaxBytes < 0 {
		return fmt.Errorf("%w: max bytes must be positive", ErrInvalidConfig)
	}
	if c.BackupCount != nil && *c.BackupCount < 0 {
		return fmt.Errorf("%w: backup count must be non-negative", ErrInvalidConfig)
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("%w: batch size must be non-negative", ErrInvalidConfig)
	}
	if c.FlushInterval < 0 {
		return fmt.Errorf("%w: flush interval must be non-negative", ErrInvalidConfig)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("%w: cache size must be non-negative", ErrInvalidConfig)
	}
	return nil
}

// fileConfig is the declarative on-disk form read by LoadConfig.
type fileConfig struct {
	Name            string        `mapstructure:"name"`
	ConsoleTemplate string        `mapstructure:"console_template"`
	FileTemplate    string        `mapstructure:"file_template"`
	ColorEnabled    *bool         `mapstructure:"color_enabled"`
	LogDir          string        `mapstructure:"log_dir"`
	MaxBytes        int64         `mapstructure:"max_bytes"`
	BackupCount     *int          `mapstructure:"backup_count"`
	Level           string        `mapstructure:"level"`
	BatchSize       int           `mapstructure:"batch_size"`
	FlushInterval   time.Duration `mapstructure:"flush_interval"`
	CacheSize       int           `mapstructure:"cache_size"`
}

// LoadConfig reads a declarative logger configuration from a YAML,
// JSON, or TOML file. Environment variables prefixed ASYNCLOGGER_
// override file values. The result still goes through New's
// validation.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("ASYNCLOGGER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("%w: read %s: %v", ErrInvalidConfig, path, err)
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return Config{}, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}

	cfg := Config{
		Name:            fc.Name,
		ConsoleTemplate: fc.ConsoleTemplate,
		FileTemplate:    fc.FileTemplate,
		ColorEnabled:    fc.ColorEnabled,
		LogDir:          fc.LogDir,
		MaxBytes:        fc.MaxBytes,
		BackupCount:     fc.BackupCount,
		BatchSize:       fc.BatchSize,
		FlushInterval:   fc.FlushInterval,
		CacheSize:       fc.CacheSize,
	}
	if fc.Level != "" {
		cfg.Level = core.ParseLevel(fc.Level)
	}
	return cfg, nil
}
