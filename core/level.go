package core

import (
	"strconv"
	"strings"
)

// Level represents the severity level of a log event.
//
// The named levels use the 10..50 scale so that callers may pass any
// integer level (including negative or intermediate values) and still
// get correct ordering. Unknown levels are accepted everywhere and only
// affect display: they render without a color assignment.
type Level int

const (
	// DebugLevel for detailed debugging information
	DebugLevel Level = 10
	// InfoLevel for general informational messages
	InfoLevel Level = 20
	// WarningLevel for warning messages
	WarningLevel Level = 30
	// ErrorLevel for error messages
	ErrorLevel Level = 40
	// CriticalLevel for failures that demand immediate attention
	CriticalLevel Level = 50
)

// String returns the string representation of the level.
// Levels outside the named set render as "LEVEL(<n>)".
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarningLevel:
		return "WARNING"
	case ErrorLevel:
		return "ERROR"
	case CriticalLevel:
		return "CRITICAL"
	default:
		return "LEVEL(" + strconv.Itoa(int(l)) + ")"
	}
}

// ParseLevel converts a string to a Level. Unrecognized strings
// default to InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "WARN", "WARNING":
		return WarningLevel
	case "ERROR":
		return ErrorLevel
	case "CRITICAL", "FATAL":
		return CriticalLevel
	default:
		return InfoLevel
	}
}
