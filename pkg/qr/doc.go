// Package qr encodes text as QR codes and renders them as ANSI half-block
// output for terminals.
//
// # Overview
//
// The package is a pipeline of three small stages:
//
//   - Encoding: [New] hands content to the external QR encoder and wraps the
//     result as a [Qr]
//   - Pixels: [Qr.Matrix] exposes the code as a square [Matrix] of [Color]
//     pixels; [Matrix.Surround] pads it with a quiet zone
//   - Rendering: [Renderer.Render] packs two pixel rows into each text line
//     using the lower half block glyph and ANSI colors
//
// Basic usage:
//
//	if err := qr.Print("https://example.com"); err != nil {
//	    // content was rejected by the encoder
//	}
//
// Or with explicit control over every stage:
//
//	code, err := qr.New("https://example.com", qr.LevelHigh)
//	if err != nil {
//	    return err
//	}
//	m := code.Matrix()
//	m.Surround(4, qr.Light)
//	err = qr.NewRenderer().Render(m, os.Stdout)
//
// # Output Shape
//
// Rendered output is half as tall as the pixel matrix: each character cell
// carries two vertically stacked pixels, the top one in the cell's
// background color and the bottom one in the glyph's foreground color. A
// matrix with an odd side renders its final pixel row against a blank
// bottom half. [Renderer.Width] and [Renderer.Height] report the exact
// text dimensions without rendering.
//
// Output is deterministic: a given matrix renders to the same bytes on every
// call, every line ends in a line feed, and every cell resets the terminal's
// colors so no styling leaks past the code.
//
// # Failure Handling
//
// Two failure classes surface as errors: the encoder rejecting content
// (ENCODING_FAILED, typically content too long for the chosen
// error-correction level) and a sink rejecting a write mid-render
// (SINK_WRITE). Malformed pixel grids, such as a sequence whose length is
// not a perfect square, are programming defects and panic instead.
//
// [Renderer.PrintStdout] panics on write failure; use [Renderer.Render]
// with an explicit sink where write failures must be handled as errors.
package qr
