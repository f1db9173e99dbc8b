package sanitize

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
)

// Length bounds enforced on sanitized output.
const (
	// MaxMessageLength caps a sanitized message, marker included.
	MaxMessageLength = 32768
	// MaxKeyLength caps a sanitized extras key, ellipsis included.
	MaxKeyLength = 256
	// MaxValueLength caps a sanitized extras value, ellipsis included.
	MaxValueLength = 1024
)

const (
	// EmptyMessage is substituted for a nil message.
	EmptyMessage = "[empty message]"
	// TruncationMarker terminates a truncated message.
	TruncationMarker = "[...TRUNCATED]"
	// LineBreakGlyph replaces \n and \r. A printable, grep-safe marker
	// applied consistently across messages and extras values.
	LineBreakGlyph = "⏎"
)

// unsafeKeyPattern matches every character not allowed in an extras key.
var unsafeKeyPattern = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// KV is a sanitized extras pair. Extras returns pairs in sorted key
// order so that repeated maps render identically.
type KV struct {
	Key   string
	Value string
}

// Message converts an arbitrary message value into a log-safe string:
// control characters removed, whitespace fragments collapsed, length
// capped at MaxMessageLength. A nil message yields EmptyMessage.
func Message(v any) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf("[message conversion failed: %v]", r)
		}
	}()

	if v == nil {
		return EmptyMessage
	}

	msg := render(v)
	msg = clean(msg)
	msg = strings.TrimSpace(msg)

	if r := []rune(msg); len(r) > MaxMessageLength {
		keep := MaxMessageLength - len(TruncationMarker)
		msg = string(r[:keep]) + TruncationMarker
	}
	return msg
}

// Value converts an extras value into a log-safe string capped at
// MaxValueLength. A nil value yields an empty string.
func Value(v any) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf("[value conversion failed: %v]", r)
		}
	}()

	if v == nil {
		return ""
	}

	val := render(v)
	val = clean(val)

	if r := []rune(val); len(r) > MaxValueLength {
		keep := MaxValueLength - 3
		val = string(r[:keep]) + "..."
	}
	return val
}

// Key sanitizes an extras key: disallowed characters become
// underscores, a leading underscore is prefixed with "x" so user keys
// can never collide with reserved internal fields, and oversized keys
// are truncated with an ellipsis.
func Key(k string) string {
	safe := unsafeKeyPattern.ReplaceAllString(k, "_")
	if strings.HasPrefix(safe, "_") {
		safe = "x" + safe
	}
	if r := []rune(safe); len(r) > MaxKeyLength {
		safe = string(r[:MaxKeyLength-3]) + "..."
	}
	return safe
}

// Extras sanitizes an extras map into ordered pairs. Entries with nil
// values are dropped. Keys are sorted so the rendering is stable.
func Extras(m map[string]any) (kvs []KV) {
	defer func() {
		if r := recover(); r != nil {
			kvs = []KV{{Key: "error", Value: fmt.Sprintf("failed to process extras: %v", r)}}
		}
	}()

	if len(m) == 0 {
		return nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		if m[k] != nil {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	kvs = make([]KV, 0, len(keys))
	for _, k := range keys {
		kvs = append(kvs, KV{Key: Key(k), Value: Value(m[k])})
	}
	return kvs
}

// render converts a value to its display string. Maps become
// "[dict: k=v, ...]" and sequences "[slice: a, b, c]"; everything else
// goes through fmt.
func render(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		return renderMap(rv)
	case reflect.Slice, reflect.Array:
		return renderSeq(rv)
	default:
		return fmt.Sprint(v)
	}
}

func renderMap(rv reflect.Value) (s string) {
	defer func() {
		if recover() != nil {
			s = "[invalid dictionary]"
		}
	}()

	pairs := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		pairs = append(pairs, fmt.Sprintf("%v=%v", iter.Key().Interface(), iter.Value().Interface()))
	}
	sort.Strings(pairs)
	return "[dict: " + strings.Join(pairs, ", ") + "]"
}

func renderSeq(rv reflect.Value) (s string) {
	kind := rv.Kind().String()
	defer func() {
		if recover() != nil {
			s = "[invalid " + kind + "]"
		}
	}()

	items := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		items = append(items, fmt.Sprint(rv.Index(i).Interface()))
	}
	return "[" + kind + ": " + strings.Join(items, ", ") + "]"
}

// clean applies the control-character pass and collapses empty
// space-delimited fragments. The fragment filter deliberately alters
// multi-space runs; downstream formats assume single-space separation.
func clean(s string) string {
	s = strings.ReplaceAll(s, "\x00", " ")
	s = strings.ReplaceAll(s, "\n", LineBreakGlyph)
	s = strings.ReplaceAll(s, "\r", LineBreakGlyph)

	parts := strings.Split(s, " ")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
