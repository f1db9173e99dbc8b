// Package core defines the shared types used across the asynclogger
// pipeline.
//
// It provides the Level type for severity classification, the Event type
// that represents a single sanitized log event, and the Locator strategy
// for capturing caller location.
//
// Level values follow the classic 10..50 scale (DEBUG through CRITICAL)
// so that arbitrary integer levels outside the named set still order and
// filter correctly. The pipeline never rejects an unknown level; it is
// carried through classification and color lookup as-is.
//
// Caller capture is a pluggable strategy rather than an ambient stack
// inspection: the pipeline calls whatever Locator it was configured
// with, and DefaultLocator is a thin runtime.Caller wrapper. Tests and
// instrumentation wrappers substitute their own.
package core
