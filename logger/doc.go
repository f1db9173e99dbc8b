// Package logger is the public API of asynclogger. Most users only
// need to import this package.
//
// An AsyncLogger is an event pipeline: submissions are sanitized,
// enriched with caller location and formatted extras, then dispatched
// under a single pipeline lock to the registered sinks. Console events
// write immediately; file events accumulate in a batch that flushes
// when it reaches the configured size or when the background flusher
// fires, whichever comes first.
//
// Nothing on the submission path ever reaches the producer as an error
// or panic. Failures are counted, recorded in a bounded ring
// retrievable via FailedLogs, reported best-effort through the console
// sink, and as a last resort written directly to the error writer.
// Only construction can fail, with ErrInvalidConfig classification,
// and it fails before any I/O happens.
//
//	log, err := logger.New(logger.Config{
//	    Name:   "ExampleApp",
//	    LogDir: "logs",
//	})
//	if err != nil {
//	    // configuration problem
//	}
//	defer log.Shutdown()
//
//	log.Info("application starting", logger.Extras{"version": "1.0.0"})
//
// Each AsyncLogger owns its sinks and its lock exclusively; instances
// are never shared and there is no process-wide registry. Pointing two
// instances at the same log directory is a caller error.
package logger
