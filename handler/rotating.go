package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/afero"

	"github.com/hollowthesilver/asynclogger/core"
	"github.com/hollowthesilver/asynclogger/formatter"
)

// DefaultMaxBytes is the rotation threshold when none is configured.
const DefaultMaxBytes = 10_485_760

// DefaultBackupCount is the number of archives retained by default.
const DefaultBackupCount = 5

// LogFilePerm is applied to the active file after creation when the
// filesystem permits.
const LogFilePerm = 0o644

// RotatingHandler is a file-backed sink with size-bounded rotation.
// The active file is named after the current date (2006-01-02.log);
// archives carry a numeric generation suffix, .1 being the newest.
//
// RotatingHandler performs no locking: the owning pipeline serializes
// every Handle, Flush, and Close behind its own lock.
type RotatingHandler struct {
	fs          afero.Fs
	dir         string
	filename    string
	file        afero.File
	formatter   formatter.Formatter
	maxBytes    int64
	backupCount int
	currentSize int64
}

// RotatingConfig holds configuration for the rotating file handler.
type RotatingConfig struct {
	// Dir is the target directory for log files. Required.
	Dir string
	// Fs is the backing filesystem (default: the OS filesystem).
	Fs afero.Fs
	// Formatter renders buffered events (default: plain file template).
	Formatter formatter.Formatter
	// MaxBytes is the size threshold triggering rotation (default: DefaultMaxBytes).
	MaxBytes int64
	// BackupCount is the number of archives to retain (default: DefaultBackupCount).
	// Zero truncates the active file in place on rotation.
	BackupCount int
}

// NewRotatingHandler creates the target directory if needed, then opens
// (or reuses) today's log file. A file left behind by a prior run is
// appended to, not clobbered.
func NewRotatingHandler(cfg RotatingConfig) (*RotatingHandler, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("log directory is required")
	}
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTemplateFormatter(formatter.Config{
			Template: formatter.DefaultFileTemplate,
		})
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}

	if err := cfg.Fs.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory %s: %w", cfg.Dir, err)
	}

	h := &RotatingHandler{
		fs:          cfg.Fs,
		dir:         cfg.Dir,
		filename:    filepath.Join(cfg.Dir, time.Now().UTC().Format("2006-01-02")+".log"),
		formatter:   cfg.Formatter,
		maxBytes:    cfg.MaxBytes,
		backupCount: cfg.BackupCount,
	}
	if err := h.open(0); err != nil {
		return nil, err
	}
	return h, nil
}

// open opens the active file for appending and records its size.
// The extra flag is ORed into the open mode (O_TRUNC for zero-retention
// rotation).
func (h *RotatingHandler) open(extraFlag int) error {
	file, err := h.fs.OpenFile(h.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND|extraFlag, LogFilePerm)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", h.filename, err)
	}

	// Umask or a pre-existing file may leave other bits; repair when
	// the filesystem allows it.
	_ = h.fs.Chmod(h.filename, LogFilePerm)

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("stat log file %s: %w", h.filename, err)
	}

	h.file = file
	h.currentSize = info.Size()
	return nil
}

// Handle formats one event and appends it to the active file, rotating
// first if the size threshold has been reached.
func (h *RotatingHandler) Handle(e *core.Event) error {
	if h.file == nil {
		return fmt.Errorf("rotating handler is closed")
	}

	data, err := h.formatter.Format(e)
	if err != nil {
		return err
	}

	if h.maxBytes > 0 && h.currentSize >= h.maxBytes {
		if err := h.rotate(); err != nil {
			return err
		}
	}

	n, err := h.file.Write(data)
	if err == nil {
		h.currentSize += int64(n)
	}
	return err
}

// Buffered marks the handler for pipeline batching.
func (h *RotatingHandler) Buffered() bool {
	return true
}

// Dir returns the target directory.
func (h *RotatingHandler) Dir() string {
	return h.dir
}

// Filesystem returns the backing filesystem.
func (h *RotatingHandler) Filesystem() afero.Fs {
	return h.fs
}

// Filename returns the path of the active file.
func (h *RotatingHandler) Filename() string {
	return h.filename
}

// Sync flushes the active file to stable storage.
func (h *RotatingHandler) Sync() error {
	if h.file == nil {
		return nil
	}
	return h.file.Sync()
}

// rotate archives the active file under the next generation suffix,
// shifting older archives up and discarding the one past the retention
// count. With zero retention the active file is truncated instead.
func (h *RotatingHandler) rotate() error {
	if err := h.file.Sync(); err != nil {
		return err
	}
	if err := h.file.Close(); err != nil {
		return err
	}
	h.file = nil

	if h.backupCount <= 0 {
		return h.open(os.O_TRUNC)
	}

	_ = h.fs.Remove(h.archiveName(h.backupCount))
	for i := h.backupCount - 1; i >= 1; i-- {
		src := h.archiveName(i)
		if ok, _ := afero.Exists(h.fs, src); ok {
			if err := h.fs.Rename(src, h.archiveName(i+1)); err != nil {
				return fmt.Errorf("shift archive %s: %w", src, err)
			}
		}
	}

	if err := h.fs.Rename(h.filename, h.archiveName(1)); err != nil {
		// Keep logging into the original file rather than losing events.
		if openErr := h.open(0); openErr != nil {
			return fmt.Errorf("rotation failed: %v, reopen failed: %w", err, openErr)
		}
		return err
	}

	return h.open(0)
}

func (h *RotatingHandler) archiveName(generation int) string {
	return h.filename + "." + strconv.Itoa(generation)
}

// Close syncs and releases the file handle. Safe to call twice.
func (h *RotatingHandler) Close() error {
	if h.file == nil {
		return nil
	}
	file := h.file
	h.file = nil

	if err := file.Sync(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
