package render

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain ascii untouched", "Hello World", "Hello World"},
		{"control chars removed", "bad\x00title\x1b[31m", "badtitle[31m"},
		{"tab preserved", "a\tb", "a\tb"},
		{"invalid utf8 dropped", "ok\xffvalue", "okvalue"},
		{"unicode preserved", "Sigur Rós", "Sigur Rós"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.expected {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate(short, 10) = %q", got)
	}
	got := Truncate("a very long track title", 10)
	if len([]rune(got)) > 10 {
		t.Errorf("Truncate result %q wider than 10", got)
	}
}

func TestTruncateAndPad_ExactWidth(t *testing.T) {
	for _, s := range []string{"x", "exactly ten", "a much longer string than the width"} {
		got := TruncateAndPad(s, 12)
		if w := len([]rune(got)); w != 12 {
			t.Errorf("TruncateAndPad(%q, 12) width = %d", s, w)
		}
	}
}

func TestRow(t *testing.T) {
	got := Row("left", "right", 20)
	if len([]rune(got)) != 20 {
		t.Errorf("Row width = %d, want 20", len([]rune(got)))
	}
	// Minimum one space gap even when content overflows.
	got = Row("0123456789", "0123456789", 5)
	if got != "0123456789 0123456789" {
		t.Errorf("Row overflow = %q", got)
	}
}

func TestSeparator(t *testing.T) {
	if got := Separator(4); got != "────" {
		t.Errorf("Separator(4) = %q", got)
	}
}
