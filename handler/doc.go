// Package handler provides the sink interface and its two built-in
// implementations for dispatching sanitized events.
//
// ConsoleHandler writes each event synchronously to an io.Writer
// (default: stdout) through a color-capable template formatter.
//
// RotatingHandler appends events to a date-named file and rotates it
// once a size threshold is exceeded, shifting prior archives up a
// numeric suffix chain and discarding the oldest beyond the retention
// count. It does no buffering of its own: the pipeline batches events
// and drives Handle under its lock, which is what makes the
// size/rotate bookkeeping single-writer.
//
// Handlers that want their events batched implement the Buffered
// marker; the pipeline checks for it with an interface assertion.
// Handlers are owned by exactly one pipeline and must not be shared.
package handler
