// Package colors maps readable color and style names to ANSI escape
// sequences and substitutes <tag> markers inside rendered log lines.
//
// Lookup is case-insensitive and supports compound names joined with
// "+", e.g. "red+bold". Apply resolves every known tag in a string and
// appends a reset sequence when at least one tag resolved; unknown tags
// are left verbatim and never produce an error. Strip removes all tags
// regardless of whether they resolve, which is the color-disabled path.
//
// DetectColorSupport probes the environment for color capability. It is
// consulted only when the caller did not set an explicit override.
package colors
