package qr

import (
	"io"
	"os"
	"strings"

	"github.com/timvisee/qr2term/pkg/ansi"
	"github.com/timvisee/qr2term/pkg/errors"
)

// DefaultQuietZone is the quiet-zone thickness, in pixels per side, that
// Print and Generate apply around a code. Scanning conventions ask for four
// modules; two keeps terminal output compact and still scans reliably.
// Callers wanting a different border call Matrix.Surround themselves.
const DefaultQuietZone = 2

// lowerHalfBlock fills the bottom half of a character cell with the
// foreground color, leaving the background visible in the top half.
const lowerHalfBlock = "▄"

// Renderer writes a color matrix as ANSI-styled half-block text.
//
// Each character cell stacks two vertically adjacent pixels: the cell's
// background color carries the top pixel and the glyph's foreground color
// the bottom one. Uniform cells (both pixels dark, or both light) are drawn
// as a styled space rather than a full or upper half block, because those
// glyphs leave visible horizontal seams between lines in many terminal
// fonts while a space with swapped colors renders flush. The glyph choice
// is a rendering workaround, not an arbitrary style.
//
// A Renderer holds no mutable state; one instance may render independent
// matrix and sink pairs concurrently.
type Renderer struct {
	styler ansi.Styler
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithStyler replaces the facility used to paint individual cells. Tests use
// this to observe packing decisions without parsing escape sequences.
func WithStyler(s ansi.Styler) RendererOption {
	return func(r *Renderer) {
		r.styler = s
	}
}

// NewRenderer creates a Renderer producing ANSI half-block output.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{styler: ansi.NewStyler()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Width returns the number of character columns Render produces for m:
// one column per pixel column.
func (r *Renderer) Width(m *Matrix[Color]) int {
	return m.Size()
}

// Height returns the number of text lines Render produces for m: one line
// per pair of pixel rows, plus one for the leftover row of an odd-sided
// matrix.
func (r *Renderer) Height(m *Matrix[Color]) int {
	return (m.Size() + 1) / 2
}

// Render writes the half-block representation of m to w, one text line per
// pixel-row pair, every line terminated by a single line feed. Output is
// deterministic: the same matrix always yields identical bytes.
//
// The first failed write aborts the render and is returned as a SINK_WRITE
// error wrapping the sink's own error. Nothing is retried.
func (r *Renderer) Render(m *Matrix[Color], w io.Writer) error {
	side := m.Size()
	pixels := m.Pixels()

	var line strings.Builder
	for row := 0; row < side/2; row++ {
		line.Reset()
		for col := 0; col < side; col++ {
			top := pixels[(2*row)*side+col]
			bottom := pixels[(2*row+1)*side+col]
			line.WriteString(r.cell(top, bottom))
		}
		line.WriteByte('\n')

		if _, err := io.WriteString(w, line.String()); err != nil {
			return errors.Wrap(errors.ErrCodeSinkWrite, err, "failed to write row %d", row)
		}
	}

	// An odd side leaves one unpaired pixel row; its missing bottom half is
	// rendered as Light.
	if side%2 == 1 {
		line.Reset()
		for col := 0; col < side; col++ {
			line.WriteString(r.cell(pixels[(side-1)*side+col], Light))
		}
		line.WriteByte('\n')

		if _, err := io.WriteString(w, line.String()); err != nil {
			return errors.Wrap(errors.ErrCodeSinkWrite, err, "failed to write final row")
		}
	}

	return nil
}

// cell picks the glyph and color pair for two stacked pixels. A dark top
// maps to a dark cell background, a dark bottom to a dark lower half block;
// uniform cells are synthesized from a space.
func (r *Renderer) cell(top, bottom Color) string {
	switch {
	case top == Dark && bottom == Dark:
		return r.styler.Style(" ", ansi.White, ansi.Black)
	case top == Dark && bottom == Light:
		return r.styler.Style(lowerHalfBlock, ansi.White, ansi.Black)
	case top == Light && bottom == Dark:
		return r.styler.Style(lowerHalfBlock, ansi.Black, ansi.White)
	default:
		return r.styler.Style(" ", ansi.Black, ansi.White)
	}
}

// PrintStdout renders m to standard output.
//
// It panics if the write fails: for a terminal renderer a broken stdout is
// an environment fault with no recovery path inside the call. Use Render
// with an explicit sink to handle write failures as errors.
func (r *Renderer) PrintStdout(m *Matrix[Color]) {
	if err := r.Render(m, os.Stdout); err != nil {
		panic(err)
	}
}

// Print encodes content at the default error-correction level, pads it with
// the default quiet zone and renders it to standard output.
func Print(content string) error {
	m, err := prepare(content)
	if err != nil {
		return err
	}
	NewRenderer().PrintStdout(m)
	return nil
}

// Generate is Print rendering into a string instead of standard output.
func Generate(content string) (string, error) {
	m, err := prepare(content)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := NewRenderer().Render(m, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// prepare runs the encode-and-pad pipeline shared by the conveniences.
func prepare(content string) (*Matrix[Color], error) {
	code, err := New(content, DefaultLevel)
	if err != nil {
		return nil, err
	}

	m := code.Matrix()
	m.Surround(DefaultQuietZone, Light)
	return m, nil
}
