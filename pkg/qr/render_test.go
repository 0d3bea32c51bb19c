package qr

import (
	"io"
	"strings"
	"testing"

	"github.com/timvisee/qr2term/pkg/ansi"
	"github.com/timvisee/qr2term/pkg/errors"
)

// markStyler tags each cell with a letter for the packing decision it
// carries, so tests assert on layout without parsing escape sequences:
// X both dark, T dark over light, B light over dark, dot both light.
type markStyler struct{}

func (markStyler) Style(glyph string, fg, bg ansi.Color) string {
	switch {
	case glyph == " " && bg == ansi.Black:
		return "X"
	case glyph == lowerHalfBlock && bg == ansi.Black:
		return "T"
	case glyph == lowerHalfBlock && bg == ansi.White:
		return "B"
	default:
		return "."
	}
}

// failWriter fails every write with a fixed error.
type failWriter struct{ err error }

func (w failWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

func TestRendererGeometry(t *testing.T) {
	tests := []struct {
		side   int
		height int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{21, 11},
	}

	r := NewRenderer()
	for _, tt := range tests {
		m := NewMatrix(make([]Color, tt.side*tt.side))
		if got := r.Width(m); got != tt.side {
			t.Errorf("Width(side %d) = %d, want %d", tt.side, got, tt.side)
		}
		if got := r.Height(m); got != tt.height {
			t.Errorf("Height(side %d) = %d, want %d", tt.side, got, tt.height)
		}
	}
}

func TestRenderPacksPixelPairs(t *testing.T) {
	// 2x2 matrix covering three of the four top/bottom combinations:
	//   row 0: Dark  Light
	//   row 1: Light Dark
	m := NewMatrix([]Color{Dark, Light, Light, Dark})

	var sb strings.Builder
	r := NewRenderer(WithStyler(markStyler{}))
	if err := r.Render(m, &sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if got := sb.String(); got != "TB\n" {
		t.Errorf("Render() = %q, want %q", got, "TB\n")
	}
}

func TestRenderUniformCells(t *testing.T) {
	// Columns of equal pixels use the space glyph with swapped colors.
	m := NewMatrix([]Color{Dark, Light, Dark, Light})

	var sb strings.Builder
	r := NewRenderer(WithStyler(markStyler{}))
	if err := r.Render(m, &sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if got := sb.String(); got != "X.\n" {
		t.Errorf("Render() = %q, want %q", got, "X.\n")
	}
}

func TestRenderOddSide(t *testing.T) {
	tests := []struct {
		name     string
		side     int
		expected string
	}{
		{"1x1", 1, "T\n"},
		{"3x3", 3, "XXX\nTTT\n"},
		{"5x5", 5, "XXXXX\nXXXXX\nTTTTT\n"},
	}

	r := NewRenderer(WithStyler(markStyler{}))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pixels := make([]Color, tt.side*tt.side)
			for i := range pixels {
				pixels[i] = Dark
			}

			var sb strings.Builder
			if err := r.Render(NewMatrix(pixels), &sb); err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			// The unpaired final row renders dark over a blank bottom half.
			if got := sb.String(); got != tt.expected {
				t.Errorf("Render() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRenderEmptyMatrix(t *testing.T) {
	var sb strings.Builder
	if err := NewRenderer().Render(NewMatrix([]Color{}), &sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if sb.Len() != 0 {
		t.Errorf("Render() = %q, want empty", sb.String())
	}
}

func TestRenderLineDiscipline(t *testing.T) {
	pixels := make([]Color, 25)
	for i := range pixels {
		if i%3 == 0 {
			pixels[i] = Dark
		}
	}
	m := NewMatrix(pixels)

	var sb strings.Builder
	r := NewRenderer()
	if err := r.Render(m, &sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := sb.String()

	if !strings.HasSuffix(out, "\n") {
		t.Error("output does not end with a line feed")
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != r.Height(m) {
		t.Errorf("line count = %d, want %d", len(lines), r.Height(m))
	}
	for i, line := range lines {
		// Colors must be reset before every line break.
		if !strings.HasSuffix(line, "\x1b[0m") {
			t.Errorf("line %d does not end with a reset: %q", i, line)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	pixels := make([]Color, 49)
	for i := range pixels {
		if i%2 == 0 {
			pixels[i] = Dark
		}
	}

	r := NewRenderer()
	var first, second strings.Builder
	if err := r.Render(NewMatrix(pixels), &first); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if err := r.Render(NewMatrix(pixels), &second); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if first.String() != second.String() {
		t.Error("identical matrices rendered to different bytes")
	}
}

func TestRenderWriteFailure(t *testing.T) {
	m := NewMatrix(make([]Color, 16))

	err := NewRenderer().Render(m, failWriter{err: io.ErrClosedPipe})
	if err == nil {
		t.Fatal("Render() error = nil, want SINK_WRITE")
	}
	if !errors.Is(err, errors.ErrCodeSinkWrite) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeSinkWrite)
	}

	// The sink's own error stays reachable through the wrap.
	if !strings.Contains(err.Error(), io.ErrClosedPipe.Error()) {
		t.Errorf("error %q does not mention the sink failure", err)
	}
}
