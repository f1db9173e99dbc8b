package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/hollowthesilver/asynclogger/colors"
	"github.com/hollowthesilver/asynclogger/core"
	"github.com/hollowthesilver/asynclogger/formatter"
	"github.com/hollowthesilver/asynclogger/handler"
	"github.com/hollowthesilver/asynclogger/health"
	"github.com/hollowthesilver/asynclogger/sanitize"
)

// AsyncLogger is the event pipeline. Safe for concurrent use by any
// number of producers; all sink mutation is serialized behind a single
// lock per instance.
type AsyncLogger struct {
	name       string
	level      core.Level
	locator    core.Locator
	callerSkip int

	console  handler.Handler
	rotating *handler.RotatingHandler
	handlers []handler.Handler

	cache   *extrasCache
	metrics health.Metrics
	failed  *health.FailureRing

	mu        sync.Mutex
	batch     []*core.Event
	batchSize int
	lastFlush time.Time

	flushInterval time.Duration
	done          chan struct{}
	wg            sync.WaitGroup

	closed atomic.Bool
	errOut io.Writer
}

// New validates cfg and builds the pipeline: a console sink always, a
// rotating file sink when LogDir is set, and the background flusher.
// Construction is the only operation that surfaces errors; every
// failure is classified under ErrInvalidConfig.
func New(cfg Config) (*AsyncLogger, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	colorEnabled := colors.DetectColorSupport()
	if cfg.ColorEnabled != nil {
		colorEnabled = *cfg.ColorEnabled
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = DefaultFlushInterval
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.ErrorWriter == nil {
		cfg.ErrorWriter = os.Stderr
	}
	if cfg.Locator == nil {
		cfg.Locator = core.DefaultLocator
	}

	l := &AsyncLogger{
		name:          cfg.Name,
		level:         cfg.Level,
		locator:       cfg.Locator,
		callerSkip:    3,
		cache:         newExtrasCache(cfg.CacheSize),
		failed:        health.NewFailureRing(),
		batchSize:     cfg.BatchSize,
		lastFlush:     time.Now(),
		flushInterval: cfg.FlushInterval,
		done:          make(chan struct{}),
		errOut:        cfg.ErrorWriter,
	}

	l.console = handler.NewConsoleHandler(handler.ConsoleConfig{
		Writer: cfg.ConsoleWriter,
		Formatter: formatter.NewTemplateFormatter(formatter.Config{
			Name:         cfg.Name,
			Template:     cfg.ConsoleTemplate,
			ColorEnabled: colorEnabled,
			Colors:       cfg.Colors,
		}),
	})
	l.handlers = []handler.Handler{l.console}

	if cfg.LogDir != "" {
		fileTemplate := cfg.FileTemplate
		if fileTemplate == "" {
			fileTemplate = formatter.DefaultFileTemplate
		}
		backups := handler.DefaultBackupCount
		if cfg.BackupCount != nil {
			backups = *cfg.BackupCount
		}
		fs := cfg.Fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		rotating, err := handler.NewRotatingHandler(handler.RotatingConfig{
			Dir: cfg.LogDir,
			Fs:  fs,
			Formatter: formatter.NewTemplateFormatter(formatter.Config{
				Name:     cfg.Name,
				Template: fileTemplate,
			}),
			MaxBytes:    cfg.MaxBytes,
			BackupCount: backups,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: failed to initialize file sink: %v", ErrInvalidConfig, err)
		}
		l.rotating = rotating
		l.handlers = append(l.handlers, rotating)
	}

	l.wg.Add(1)
	go l.runFlusher()

	return l, nil
}

// Log submits an event at the given level. It never panics and never
// returns an error: all failures are captured, recorded, and reported
// through the failure path. Arbitrary integer levels are accepted.
func (l *AsyncLogger) Log(level core.Level, msg any, extras ...Extras) {
	l.submit(level, msg, first(extras))
}

// Debug logs a message at DEBUG severity.
func (l *AsyncLogger) Debug(msg any, extras ...Extras) {
	l.submit(core.DebugLevel, msg, first(extras))
}

// Info logs a message at INFO severity.
func (l *AsyncLogger) Info(msg any, extras ...Extras) {
	l.submit(core.InfoLevel, msg, first(extras))
}

// Warning logs a message at WARNING severity.
func (l *AsyncLogger) Warning(msg any, extras ...Extras) {
	l.submit(core.WarningLevel, msg, first(extras))
}

// Error logs a message at ERROR severity.
func (l *AsyncLogger) Error(msg any, extras ...Extras) {
	l.submit(core.ErrorLevel, msg, first(extras))
}

// Critical logs a message at CRITICAL severity.
func (l *AsyncLogger) Critical(msg any, extras ...Extras) {
	l.submit(core.CriticalLevel, msg, first(extras))
}

func first(extras []Extras) Extras {
	if len(extras) > 0 {
		return extras[0]
	}
	return nil
}

// submit is the pipeline hot path: sanitize, locate, format extras,
// then dispatch under the lock.
func (l *AsyncLogger) submit(level core.Level, msg any, extras Extras) {
	if l == nil || l.closed.Load() {
		return
	}

	var secured string
	defer func() {
		if r := recover(); r != nil {
			if secured == "" {
				secured = sanitize.Message(msg)
			}
			l.reportFailure(level, secured, fmt.Errorf("panic during submit: %v", r))
		}
	}()

	if msg == nil {
		// A nil message is a reportable condition, not a silent no-op.
		l.metrics.RecordError()
		l.failed.Append(health.FailedEntry{
			Time:    time.Now(),
			Level:   level,
			Message: sanitize.EmptyMessage,
			Error:   "attempted to log nil message",
		})
		msg = sanitize.EmptyMessage
	}

	l.metrics.RecordMessage()
	secured = sanitize.Message(msg)
	caller := l.locator(l.callerSkip)

	event := &core.Event{
		Time:    time.Now(),
		Level:   level,
		Message: secured + l.formatExtras(extras),
		Caller:  caller,
	}

	if err := l.dispatch(event); err != nil {
		l.reportFailure(level, secured, err)
	}
}

// dispatch routes one event to every registered sink. Buffered sinks
// receive it through the batch; the batch flushes immediately when it
// reaches the size threshold. The pipeline lock covers the whole walk.
func (l *AsyncLogger) dispatch(e *core.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e.Level < l.level {
		return nil
	}

	var errs error
	for _, h := range l.handlers {
		if b, ok := h.(handler.Batched); ok && b.Buffered() {
			l.batch = append(l.batch, e)
			if len(l.batch) >= l.batchSize {
				errs = multierr.Append(errs, l.flushLocked())
			}
			continue
		}
		errs = multierr.Append(errs, h.Handle(e))
	}
	return errs
}

// flushLocked writes every buffered event to the buffered sinks and
// clears the batch. Caller must hold l.mu. A failed batch is recorded,
// not retried; retaining it would grow without bound against a sink
// that stays broken.
func (l *AsyncLogger) flushLocked() error {
	if len(l.batch) == 0 {
		return nil
	}

	var errs error
	for _, h := range l.handlers {
		b, ok := h.(handler.Batched)
		if !ok || !b.Buffered() {
			continue
		}
		for _, e := range l.batch {
			errs = multierr.Append(errs, h.Handle(e))
		}
	}

	l.batch = l.batch[:0]
	l.lastFlush = time.Now()
	if errs == nil && l.rotating != nil {
		errs = l.rotating.Sync()
	}
	return errs
}

// Flush writes any buffered events to disk immediately.
func (l *AsyncLogger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.flushLocked()
}

// runFlusher is the background task guaranteeing bounded staleness of
// on-disk data. It competes for the same lock as producer-triggered
// flushes; both are no-ops on an empty batch.
func (l *AsyncLogger) runFlusher() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.mu.Lock()
			var err error
			if len(l.batch) > 0 {
				err = l.flushLocked()
			}
			l.mu.Unlock()
			if err != nil {
				l.reportFailure(core.ErrorLevel, "[batch flush]", err)
			}
		case <-l.done:
			return
		}
	}
}

// formatExtras renders the extras map through the memo cache.
func (l *AsyncLogger) formatExtras(extras Extras) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf(" [extras_error: %v]", r)
		}
	}()

	if len(extras) == 0 {
		return ""
	}

	key := cacheKey(extras)
	if key == "" {
		return ""
	}
	if v, ok := l.cache.Get(key); ok {
		return v
	}

	kvs := sanitize.Extras(extras)
	if len(kvs) == 0 {
		return ""
	}
	pairs := make([]string, len(kvs))
	for i, kv := range kvs {
		pairs[i] = kv.Key + "=" + kv.Value
	}

	s = " <bright_white>[" + strings.Join(pairs, ", ") + "]<reset>"
	l.cache.Put(key, s)
	return s
}

// cacheKey builds a stable key from the raw pairs, nil values dropped.
func cacheKey(extras Extras) string {
	parts := make([]string, 0, len(extras))
	for k, v := range extras {
		if v != nil {
			parts = append(parts, k+"="+fmt.Sprint(v))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	sort.Strings(parts)
	return strings.Join(parts, "\x1f")
}

// reportFailure records a pipeline failure and reports it best-effort:
// first through the console sink, then directly to the error writer if
// even that fails. The direct write is deliberately outside the
// pipeline lock so the failure handler can never deadlock the pipeline.
func (l *AsyncLogger) reportFailure(level core.Level, msg string, cause error) {
	l.metrics.RecordError()
	entry := health.FailedEntry{
		Time:    time.Now(),
		Level:   level,
		Message: msg,
		Error:   cause.Error(),
	}
	l.failed.Append(entry)

	if err := l.reportToConsole(entry, cause); err != nil {
		fmt.Fprintf(l.errOut,
			"logging failed at %s: %v | attempted message: %s\nsecondary logging error: %v\n",
			entry.Time.Format(time.RFC3339), cause, msg, err)
	}
}

func (l *AsyncLogger) reportToConsole(entry health.FailedEntry, cause error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic reporting failure: %v", r)
		}
	}()

	e := &core.Event{
		Time:    time.Now(),
		Level:   core.ErrorLevel,
		Message: fmt.Sprintf("Logging failed: %v | Attempted message: %s", cause, entry.Message),
		Caller:  core.CallerInfo{Context: core.DefaultContext},
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.console == nil {
		return fmt.Errorf("console sink unavailable")
	}
	return l.console.Handle(e)
}

// FailedLogs returns the recorded failures, oldest first.
func (l *AsyncLogger) FailedLogs() []health.FailedEntry {
	return l.failed.List()
}

// Health returns a point-in-time snapshot of pipeline state.
func (l *AsyncLogger) Health() health.Snapshot {
	l.mu.Lock()
	batchSize := len(l.batch)
	lastFlush := l.lastFlush
	l.mu.Unlock()

	return health.Snapshot{
		TotalMessages:   l.metrics.TotalMessages(),
		ErrorCount:      l.metrics.ErrorCount(),
		LastErrorTime:   l.metrics.LastErrorTime(),
		BatchSize:       batchSize,
		TimeSinceFlush:  time.Since(lastFlush),
		FailedLogCount:  l.failed.Len(),
		ExtrasCacheSize: l.cache.Len(),
	}
}

// Shutdown tears the pipeline down: final flush, stop the background
// flusher, close and deregister every sink. Best-effort throughout —
// one sink failing to close does not stop the others — with the
// individual errors aggregated. Idempotent; subsequent submissions
// become no-ops.
func (l *AsyncLogger) Shutdown() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}

	var errs error
	errs = multierr.Append(errs, l.Flush())

	close(l.done)
	l.wg.Wait()

	l.mu.Lock()
	for _, h := range l.handlers {
		errs = multierr.Append(errs, h.Close())
	}
	l.handlers = nil
	l.console = nil
	l.rotating = nil
	l.mu.Unlock()

	return errs
}
