package sanitize

import (
	"strings"
	"testing"
	"unicode/utf8"
)

type panicStringer struct{}

func (panicStringer) String() string { panic("boom") }

func TestMessage_Nil(t *testing.T) {
	if got := Message(nil); got != EmptyMessage {
		t.Errorf("Message(nil) = %q, want %q", got, EmptyMessage)
	}
}

func TestMessage_ControlCharacters(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"newline", "line one\nline two"},
		{"carriage return", "line one\rline two"},
		{"null byte", "before\x00after"},
		{"mixed", "a\nb\rc\x00d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Message(tt.in)
			if strings.ContainsAny(got, "\n\r\x00") {
				t.Errorf("Message(%q) = %q still contains control characters", tt.in, got)
			}
		})
	}
}

func TestMessage_LineBreakGlyph(t *testing.T) {
	got := Message("one\ntwo")
	if got != "one"+LineBreakGlyph+"two" {
		t.Errorf("Message = %q, want glyph-joined string", got)
	}
}

func TestMessage_WhitespaceCollapse(t *testing.T) {
	// Multi-space runs collapse to single spaces; formats downstream
	// assume single-space separation.
	got := Message("a    b  c")
	if got != "a b c" {
		t.Errorf("Message = %q, want %q", got, "a b c")
	}
}

func TestMessage_Truncation(t *testing.T) {
	in := strings.Repeat("x", MaxMessageLength+500)
	got := Message(in)
	if n := utf8.RuneCountInString(got); n != MaxMessageLength {
		t.Errorf("truncated length = %d, want exactly %d", n, MaxMessageLength)
	}
	if !strings.HasSuffix(got, TruncationMarker) {
		t.Errorf("truncated message does not end with %q", TruncationMarker)
	}
}

func TestMessage_ShortStringsUntouched(t *testing.T) {
	in := strings.Repeat("y", MaxMessageLength)
	if got := Message(in); got != in {
		t.Error("message at exactly the cap was modified")
	}
}

func TestMessage_Map(t *testing.T) {
	got := Message(map[string]int{"b": 2, "a": 1})
	if got != "[dict: a=1, b=2]" {
		t.Errorf("Message(map) = %q", got)
	}
}

func TestMessage_Slice(t *testing.T) {
	got := Message([]string{"x", "y"})
	if got != "[slice: x, y]" {
		t.Errorf("Message(slice) = %q", got)
	}
}

func TestMessage_PanickingStringer(t *testing.T) {
	got := Message(panicStringer{})
	if !strings.Contains(got, "conversion failed") {
		t.Errorf("Message(panicking value) = %q, want conversion-failure string", got)
	}
}

func TestValue_Nil(t *testing.T) {
	if got := Value(nil); got != "" {
		t.Errorf("Value(nil) = %q, want empty", got)
	}
}

func TestValue_Truncation(t *testing.T) {
	in := strings.Repeat("v", MaxValueLength*2)
	got := Value(in)
	if n := utf8.RuneCountInString(got); n != MaxValueLength {
		t.Errorf("truncated value length = %d, want %d", n, MaxValueLength)
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("truncated value does not end with ellipsis")
	}
}

func TestValue_ControlCharacters(t *testing.T) {
	got := Value("a\nb\x00c")
	if strings.ContainsAny(got, "\n\r\x00") {
		t.Errorf("Value = %q still contains control characters", got)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean", "user.id", "user.id"},
		{"spaces", "bad key!", "bad_key_"},
		{"leading underscore", "_system", "x_system"},
		{"dash and dot kept", "a-b.c", "a-b.c"},
		{"unicode replaced", "clé", "cl_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.in); got != tt.want {
				t.Errorf("Key(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestKey_Truncation(t *testing.T) {
	got := Key(strings.Repeat("k", MaxKeyLength+10))
	if n := utf8.RuneCountInString(got); n != MaxKeyLength {
		t.Errorf("truncated key length = %d, want %d", n, MaxKeyLength)
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("truncated key does not end with ellipsis")
	}
}

func TestExtras(t *testing.T) {
	kvs := Extras(map[string]any{
		"zeta":     1,
		"alpha":    "x",
		"skip_me":  nil,
		"bad key!": true,
	})

	want := []KV{
		{"alpha", "x"},
		{"bad_key_", "true"},
		{"zeta", "1"},
	}
	if len(kvs) != len(want) {
		t.Fatalf("got %d pairs, want %d: %v", len(kvs), len(want), kvs)
	}
	for i := range want {
		if kvs[i] != want[i] {
			t.Errorf("pair %d = %v, want %v", i, kvs[i], want[i])
		}
	}
}

func TestExtras_Empty(t *testing.T) {
	if kvs := Extras(nil); kvs != nil {
		t.Errorf("Extras(nil) = %v, want nil", kvs)
	}
	if kvs := Extras(map[string]any{"only": nil}); len(kvs) != 0 {
		t.Errorf("Extras(all-nil) = %v, want empty", kvs)
	}
}

func TestExtras_NestedMapValue(t *testing.T) {
	kvs := Extras(map[string]any{"nested": map[string]string{"key": "value"}})
	if len(kvs) != 1 || kvs[0].Value != "[dict: key=value]" {
		t.Errorf("Extras(nested) = %v", kvs)
	}
}
