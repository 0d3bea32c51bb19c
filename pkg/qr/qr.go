package qr

import (
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/timvisee/qr2term/pkg/errors"
)

// Color is the state of a single pixel in a barcode matrix.
type Color uint8

const (
	// Light is a blank pixel. It is the zero value, so fresh grids and
	// quiet-zone fills default to blank.
	Light Color = iota

	// Dark is a set pixel.
	Dark
)

// String returns the color name for logs and test output.
func (c Color) String() string {
	if c == Dark {
		return "dark"
	}
	return "light"
}

// Level selects how much error-correction data is embedded in a code.
// Higher levels survive more visual damage but fit less content.
type Level int

// Error-correction levels, in increasing order of redundancy.
const (
	LevelLow Level = iota
	LevelMedium
	LevelHigh
	LevelHighest
)

// DefaultLevel is the error-correction level used by Print and Generate.
const DefaultLevel = LevelMedium

// String returns the level name as accepted by ParseLevel.
func (l Level) String() string {
	switch l {
	case LevelLow:
		return "low"
	case LevelMedium:
		return "medium"
	case LevelHigh:
		return "high"
	case LevelHighest:
		return "highest"
	default:
		return "unknown"
	}
}

// ParseLevel converts a level name to a Level. Matching is case-insensitive.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "low":
		return LevelLow, nil
	case "medium":
		return LevelMedium, nil
	case "high":
		return LevelHigh, nil
	case "highest":
		return LevelHighest, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidInput,
			"unknown error-correction level %q (valid: low, medium, high, highest)", s)
	}
}

// recovery maps a Level onto the encoder's own enumeration.
func (l Level) recovery() qrcode.RecoveryLevel {
	switch l {
	case LevelLow:
		return qrcode.Low
	case LevelHigh:
		return qrcode.High
	case LevelHighest:
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// Qr is an encoded QR code. It wraps the external encoder's representation
// and exposes it as a pixel matrix for rendering.
type Qr struct {
	code *qrcode.QRCode
}

// New encodes content as a QR code at the given error-correction level.
//
// Failures are returned as ENCODING_FAILED errors wrapping the encoder's own
// error; content exceeding the capacity of the chosen level is the common
// case. Nothing is retried or truncated here.
func New(content string, level Level) (*Qr, error) {
	code, err := qrcode.New(content, level.recovery())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncodingFailed, err,
			"failed to encode %d bytes", len(content))
	}

	// The encoder's built-in border is disabled; quiet zones are applied
	// explicitly via Matrix.Surround so callers control their thickness.
	code.DisableBorder = true

	return &Qr{code: code}, nil
}

// Matrix returns the code's pixels as a fresh color matrix, without any
// quiet zone.
func (q *Qr) Matrix() *Matrix[Color] {
	bitmap := q.code.Bitmap()

	pixels := make([]Color, 0, len(bitmap)*len(bitmap))
	for _, row := range bitmap {
		for _, dark := range row {
			if dark {
				pixels = append(pixels, Dark)
			} else {
				pixels = append(pixels, Light)
			}
		}
	}

	return NewMatrix(pixels)
}

// PNG renders the code as a size x size pixel PNG image.
func (q *Qr) PNG(size int) ([]byte, error) {
	data, err := q.code.PNG(size)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncodingFailed, err,
			"failed to render PNG at %d px", size)
	}
	return data, nil
}
