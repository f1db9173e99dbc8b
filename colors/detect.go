package colors

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ideIndicators are environment variables set by editors and IDEs whose
// consoles render ANSI colors even when stdout is not a TTY.
var ideIndicators = []string{
	"PYCHARM_HOSTED",
	"VSCODE_PID",
	"TERM_PROGRAM",
	"INTELLIJ_ENVIRONMENT",
	"RIDER_HOME",
	"ECLIPSE_HOME",
}

// DetectColorSupport reports whether the current environment is likely
// to render ANSI color output. Pure probe: no side effects, never
// fails. Consulted only when the color override is not supplied.
//
// Precedence: FORCE_COLOR wins, then NO_COLOR/CLICOLOR=0, then IDE
// indicators, then a plain TTY check.
func DetectColorSupport() bool {
	switch strings.ToLower(os.Getenv("FORCE_COLOR")) {
	case "1", "true", "yes":
		return true
	}
	if termenv.EnvNoColor() {
		return false
	}
	for _, v := range ideIndicators {
		if os.Getenv(v) != "" {
			return true
		}
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
