package benchmark

import (
	"github.com/hollowthesilver/asynclogger/core"
	"github.com/hollowthesilver/asynclogger/handler"
)

// noopHandler measures the interface-dispatch floor without any
// formatting or I/O.
type noopHandler struct{}

func newNoopHandler() handler.Handler {
	return &noopHandler{}
}

func (h *noopHandler) Handle(e *core.Event) error {
	_ = len(e.Message)
	return nil
}

func (h *noopHandler) Close() error {
	return nil
}
