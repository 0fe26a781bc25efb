package utils

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{name: "non-positive limit", input: "first name", limit: 0, expect: ""},
		{name: "short label", input: "city", limit: 10, expect: "city"},
		{name: "long disclaimer", input: "disability status form", limit: 10, expect: "disability..."},
		{name: "surrounding whitespace", input: "  postal code  ", limit: 6, expect: "postal..."},
		{name: "multiline label", input: "Are you\n\t  a veteran?", limit: 40, expect: "Are you a veteran?"},
		{name: "multibyte runes", input: "prénom et nom", limit: 6, expect: "prénom..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
