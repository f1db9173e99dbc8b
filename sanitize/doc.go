// Package sanitize converts arbitrary values into bounded,
// control-character-free strings safe for log storage and display.
//
// All functions are pure and never panic: a conversion that blows up
// (for example a Stringer that panics) collapses to a string describing
// the failure instead of propagating.
//
// Newlines and carriage returns are replaced with the visible "⏎" glyph
// so that a single log event can never span multiple lines or forge
// entries from another producer. NUL bytes become spaces. Messages,
// extras values, and extras keys are capped at MaxMessageLength,
// MaxValueLength, and MaxKeyLength respectively; oversized input is
// truncated with a marker so the result stays exactly within the cap.
package sanitize
