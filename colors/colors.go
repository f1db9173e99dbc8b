package colors

import (
	"fmt"
	"regexp"
	"strings"
)

// Reset clears all active formatting.
const Reset = "\x1b[0m"

// codes maps lowercase color and style names to their escape
// sequences. Dark and muted variants use 256-color codes for better
// gradation.
var codes = map[string]string{
	// Basic colors
	"black":   "\x1b[30m",
	"red":     "\x1b[31m",
	"green":   "\x1b[32m",
	"yellow":  "\x1b[33m",
	"blue":    "\x1b[34m",
	"magenta": "\x1b[35m",
	"cyan":    "\x1b[36m",
	"white":   "\x1b[37m",
	"gray":    "\x1b[90m",

	// Dark colors
	"dark_red":     "\x1b[38;5;88m",
	"dark_green":   "\x1b[38;5;22m",
	"dark_yellow":  "\x1b[38;5;58m",
	"dark_blue":    "\x1b[38;5;18m",
	"dark_magenta": "\x1b[38;5;90m",
	"dark_cyan":    "\x1b[38;5;23m",
	"dark_gray":    "\x1b[38;5;240m",

	// Bright colors
	"bright_red":     "\x1b[91m",
	"bright_green":   "\x1b[92m",
	"bright_yellow":  "\x1b[93m",
	"bright_blue":    "\x1b[94m",
	"bright_magenta": "\x1b[95m",
	"bright_cyan":    "\x1b[96m",
	"bright_white":   "\x1b[97m",

	// Muted colors
	"muted_red":     "\x1b[38;5;131m",
	"muted_green":   "\x1b[38;5;108m",
	"muted_blue":    "\x1b[38;5;67m",
	"muted_yellow":  "\x1b[38;5;136m",
	"muted_magenta": "\x1b[38;5;132m",
	"muted_cyan":    "\x1b[38;5;73m",

	// Text styles
	"bold":      "\x1b[1m",
	"dim":       "\x1b[2m",
	"italic":    "\x1b[3m",
	"underline": "\x1b[4m",
	"blink":     "\x1b[5m",
	"reverse":   "\x1b[7m",
	"hidden":    "\x1b[8m",
	"strike":    "\x1b[9m",

	"reset": Reset,
}

var tagPattern = regexp.MustCompile(`<([^>]+)>`)

// Get resolves one or more names joined with "+" into their
// concatenated escape codes. Matching is case-insensitive.
func Get(name string) (string, error) {
	var b strings.Builder
	for _, part := range strings.Split(name, "+") {
		code, ok := codes[strings.ToLower(strings.TrimSpace(part))]
		if !ok {
			return "", fmt.Errorf("color or style %q not found", part)
		}
		b.WriteString(code)
	}
	return b.String(), nil
}

// Apply substitutes every resolvable <tag> in s with its escape code
// and appends Reset when at least one tag resolved. Unresolvable tags
// remain verbatim. The reserved level_color tag is skipped; the
// formatter substitutes it before Apply runs.
func Apply(s string) string {
	matches := tagPattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return s
	}

	used := false
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		tag := m[1]
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		if strings.EqualFold(tag, "level_color") {
			continue
		}
		code, err := Get(tag)
		if err != nil {
			continue
		}
		s = strings.ReplaceAll(s, "<"+tag+">", code)
		used = true
	}

	if used {
		s += Reset
	}
	return s
}

// Strip removes every <tag> marker from s, resolvable or not. This is
// the rendering path when color output is disabled.
func Strip(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}
