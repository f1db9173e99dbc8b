// Package health tracks the logging pipeline's own well-being:
// processed and failed event counts, the timestamp of the most recent
// failure, and a bounded ring of failure records.
//
// Metrics uses atomic counters so producers on any goroutine can
// record without the pipeline lock. The failure ring holds the last
// 100 FailedEntry records; older entries are silently dropped once the
// ring is full. Snapshot is computed on demand and never persisted.
package health
