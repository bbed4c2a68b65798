// ABOUTME: Tests for HTML stripping and entity decoding utilities

package html

import "testing"

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "hello world", "hello world"},
		{"simple tags", "<p>hello <b>world</b></p>", "hello world"},
		{"entities", "fish &amp; chips&#8230;", "fish & chips..."},
		{"collapses whitespace", "<div>a</div>  <div>b</div>", "a b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHTML(tt.input); got != tt.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeEntities(t *testing.T) {
	got := DecodeEntities("&ldquo;quoted&rdquo; &mdash; &copy;")
	want := "\"quoted\" - (c)"
	if got != want {
		t.Errorf("DecodeEntities = %q, want %q", got, want)
	}
}
