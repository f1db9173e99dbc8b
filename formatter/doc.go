// Package formatter renders sanitized events into display strings.
//
// TemplateFormatter expands a template containing ordered placeholder
// tokens — {time}, {level}, {context}, {name}, {file}, {line},
// {message} — and inline <tag> color markers. The reserved
// <level_color> tag resolves to the color assigned to the event's
// severity; per-level defaults can be overridden at construction.
//
// With color enabled, tags resolve to ANSI escape codes and a reset
// sequence terminates the line whenever at least one tag resolved.
// With color disabled, every tag is stripped from the rendered output,
// so neither the template's markup nor markup carried inside the
// message survives into files.
//
// Level names are left-padded to eight columns and context names
// centered to seventeen, matching the default template layout.
package formatter
