package ansi

import (
	"strings"
	"testing"
)

func TestStyle(t *testing.T) {
	s := NewStyler()

	tests := []struct {
		name     string
		glyph    string
		fg, bg   Color
		expected string
	}{
		{
			name:     "white on black",
			glyph:    "▄",
			fg:       White,
			bg:       Black,
			expected: "\x1b[97;40m▄\x1b[0m",
		},
		{
			name:     "black on white",
			glyph:    "▄",
			fg:       Black,
			bg:       White,
			expected: "\x1b[30;107m▄\x1b[0m",
		},
		{
			name:     "space keeps background visible",
			glyph:    " ",
			fg:       White,
			bg:       Black,
			expected: "\x1b[97;40m \x1b[0m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Style(tt.glyph, tt.fg, tt.bg); got != tt.expected {
				t.Errorf("Style() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestStyleResetsState(t *testing.T) {
	s := NewStyler()

	// Every cell must end with a full reset so styling never leaks into the
	// next cell or past a line break.
	got := s.Style(" ", Black, White)
	if !strings.HasSuffix(got, "\x1b[0m") {
		t.Errorf("Style() = %q, want reset suffix", got)
	}
}

func TestStyleDeterministic(t *testing.T) {
	s := NewStyler()

	a := s.Style("▄", White, Black)
	b := s.Style("▄", White, Black)
	if a != b {
		t.Errorf("Style() not deterministic: %q != %q", a, b)
	}
}
