package handler

import (
	"io"
	"os"
	"sync"

	"github.com/hollowthesilver/asynclogger/core"
	"github.com/hollowthesilver/asynclogger/formatter"
)

// ConsoleHandler writes events synchronously to a writer.
type ConsoleHandler struct {
	writer    io.Writer
	formatter formatter.Formatter
	mu        sync.Mutex
}

// ConsoleConfig holds configuration for the console handler.
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: TemplateFormatter with the console template)
	Formatter formatter.Formatter
}

// NewConsoleHandler creates a new console handler.
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTemplateFormatter(formatter.Config{})
	}
	return &ConsoleHandler{
		writer:    cfg.Writer,
		formatter: cfg.Formatter,
	}
}

// Handle formats and writes one event.
func (h *ConsoleHandler) Handle(e *core.Event) error {
	data, err := h.formatter.Format(e)
	if err != nil {
		return err
	}

	h.mu.Lock()
	_, err = h.writer.Write(data)
	h.mu.Unlock()
	return err
}

// Close is a no-op; the handler does not own its writer.
func (h *ConsoleHandler) Close() error {
	return nil
}
