package transform

import (
	"strings"
	"testing"
)

func TestProcess(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple word", "world", "bhola world"},
		{"empty string", "", "bhola "},
		{"already prefixed", "bhola x", "bhola bhola x"},
		{"unicode", "नमस्ते", "bhola नमस्ते"},
		{"whitespace preserved", "  padded  ", "bhola   padded  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Process(tt.in); got != tt.want {
				t.Errorf("Process(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestProcess_PrefixProperty(t *testing.T) {
	inputs := []string{"a", "", "hello world", "https://example.com", strings.Repeat("x", 4096)}
	for _, in := range inputs {
		got := Process(in)
		if !strings.HasPrefix(got, Prefix) {
			t.Errorf("Process(%q) missing prefix", in)
		}
		if got[len(Prefix):] != in {
			t.Errorf("Process(%q) altered the input: %q", in, got)
		}
	}
}

func TestFindURL(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		found bool
	}{
		{"no url", "just some text", "", false},
		{"bare https url", "https://youtu.be/abc123", "https://youtu.be/abc123", true},
		{"http url", "http://example.com/v", "http://example.com/v", true},
		{"url inside sentence", "check this https://example.com/watch?v=1 out", "https://example.com/watch?v=1", true},
		{"first of two", "https://a.example https://b.example", "https://a.example", true},
		{"scheme only is not enough", "https:// broken", "", false},
		{"ftp ignored", "ftp://example.com/file", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := FindURL(tt.in)
			if found != tt.found {
				t.Fatalf("FindURL(%q) found = %v, want %v", tt.in, found, tt.found)
			}
			if got != tt.want {
				t.Errorf("FindURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
