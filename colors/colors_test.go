package colors

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"basic", "red", "\x1b[31m"},
		{"case insensitive", "RED", "\x1b[31m"},
		{"compound", "blue+bold", "\x1b[34m\x1b[1m"},
		{"compound with spaces", " yellow + bold ", "\x1b[33m\x1b[1m"},
		{"256 color", "muted_red", "\x1b[38;5;131m"},
		{"reset", "reset", Reset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Get(tt.in)
			if err != nil {
				t.Fatalf("Get(%q) returned error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGet_Unknown(t *testing.T) {
	if _, err := Get("chartreuse"); err == nil {
		t.Error("Get(unknown) did not return an error")
	}
	if _, err := Get("red+chartreuse"); err == nil {
		t.Error("Get(partially unknown compound) did not return an error")
	}
}

func TestApply(t *testing.T) {
	got := Apply("<green>ok</green> done")
	if !strings.Contains(got, "\x1b[32m") {
		t.Errorf("Apply did not substitute <green>: %q", got)
	}
	if !strings.HasSuffix(got, Reset) {
		t.Errorf("Apply did not append reset after substitution: %q", got)
	}
}

func TestApply_UnresolvableTagLeftVerbatim(t *testing.T) {
	got := Apply("keep <mystery> intact")
	if got != "keep <mystery> intact" {
		t.Errorf("Apply altered unresolvable tag: %q", got)
	}
}

func TestApply_NoTags(t *testing.T) {
	if got := Apply("plain text"); got != "plain text" {
		t.Errorf("Apply changed tag-free string: %q", got)
	}
}

func TestApply_SkipsLevelColor(t *testing.T) {
	got := Apply("<level_color>msg")
	if strings.Contains(got, "\x1b") {
		t.Errorf("Apply resolved the reserved level_color tag: %q", got)
	}
}

func TestStrip(t *testing.T) {
	got := Strip("<red>text</red> and <mystery> too")
	if got != "text and  too" {
		t.Errorf("Strip = %q", got)
	}
	if strings.Contains(got, "\x1b") {
		t.Error("Strip produced escape sequences")
	}
}
