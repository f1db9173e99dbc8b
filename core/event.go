package core

import (
	"path/filepath"
	"runtime"
	"time"
)

// Event represents a single log event after sanitization. Events are
// immutable once constructed; the pipeline hands the same Event to the
// console sink and the batch buffer without copying.
type Event struct {
	Time    time.Time
	Level   Level
	Message string
	Caller  CallerInfo
}

// CallerInfo describes where an event was submitted from.
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	// Context is the logical context name shown in the rendered line,
	// e.g. a background-task identifier. Defaults to "main".
	Context string
	Defined bool
}

// DefaultContext is the logical context name used when no task
// identity is available.
const DefaultContext = "main"

// Locator resolves the caller location for an event. The pipeline
// invokes it with the number of frames to skip above itself; custom
// locators may ignore the argument entirely.
type Locator func(skip int) CallerInfo

// DefaultLocator captures the caller via runtime.Caller and tags it
// with the default context name.
func DefaultLocator(skip int) CallerInfo {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return CallerInfo{Context: DefaultContext}
	}
	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Context:   DefaultContext,
		Defined:   true,
	}
}

// StaticLocator returns a Locator that always reports the given
// location. Useful for instrumentation wrappers that already know
// where the event originated.
func StaticLocator(info CallerInfo) Locator {
	if info.Context == "" {
		info.Context = DefaultContext
	}
	return func(int) CallerInfo {
		return info
	}
}
