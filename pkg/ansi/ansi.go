// Package ansi paints single terminal character cells with ANSI colors.
//
// It models the one capability the half-block renderer needs from a
// terminal: color a glyph's foreground and background and leave no styling
// state behind afterwards. Production code uses the termenv-backed
// TermStyler; tests substitute deterministic stand-ins via the Styler
// interface.
package ansi

import "github.com/muesli/termenv"

// Color is a color in the terminal's standard ANSI palette.
type Color uint8

// The two colors of a two-tone barcode cell. White is the bright variant so
// the contrast stays crisp on terminals with dimmed base colors.
const (
	Black Color = 0
	White Color = 15
)

// Styler paints a single-cell glyph with a foreground and background color.
//
// Implementations must be deterministic (identical inputs yield identical
// bytes) and self-contained: once the returned text is printed, the
// terminal's styling state is back to what it was before.
type Styler interface {
	Style(glyph string, fg, bg Color) string
}

// TermStyler renders cells as ANSI SGR escape sequences via termenv.
//
// The color profile is pinned to the 16-color ANSI profile instead of being
// detected from the environment, so the same matrix renders to identical
// bytes whether output goes to a terminal, a pipe or a file.
type TermStyler struct {
	profile termenv.Profile
}

var _ Styler = (*TermStyler)(nil)

// NewStyler returns a TermStyler with the pinned ANSI profile.
func NewStyler() *TermStyler {
	return &TermStyler{profile: termenv.ANSI}
}

// Style wraps glyph in the escape sequences selecting fg over bg, followed
// by a reset so no color bleeds into neighboring cells or past the end of a
// line.
func (s *TermStyler) Style(glyph string, fg, bg Color) string {
	return s.profile.String(glyph).
		Foreground(termenv.ANSIColor(fg)).
		Background(termenv.ANSIColor(bg)).
		String()
}
