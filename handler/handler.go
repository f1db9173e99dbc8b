package handler

import (
	"github.com/hollowthesilver/asynclogger/core"
)

// Handler defines the interface for event sinks.
type Handler interface {
	// Handle writes one event to the sink.
	Handle(e *core.Event) error

	// Close releases the sink's resources. Close must be idempotent.
	Close() error
}

// Batched is an optional interface. Sinks that implement it receive
// their events through the pipeline's batch buffer and flush cycle
// instead of one write per submission.
type Batched interface {
	// Buffered reports whether the sink wants pipeline batching.
	Buffered() bool
}
