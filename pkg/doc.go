// Package pkg provides the core libraries for qr2term QR code rendering.
//
// # Overview
//
// qr2term turns text into QR codes drawn directly in the terminal, using
// half-block characters so two pixel rows fit in every text line. The pkg
// directory is organized into five main areas:
//
//  1. [qr] - Domain logic (encoding, pixel matrices, half-block rendering)
//  2. [ansi] - Terminal escape sequences and color styling
//  3. [cache] - Byte caches for rendered output (file, Redis, null)
//  4. [errors] - Coded errors and input validation
//  5. [observability] - Instrumentation hooks for metrics and tracing
//
// # Architecture
//
// The typical data flow through qr2term:
//
//	Content (text, URL, Wi-Fi payload)
//	         ↓
//	    [qr] encode (content → pixel matrix)
//	         ↓
//	    [qr] Matrix.Surround (add quiet zone)
//	         ↓
//	    [qr] Renderer (two pixel rows per text line)
//	         ↓
//	    ANSI half-block text via [ansi]
//
// # Quick Start
//
// Print a code to stdout:
//
//	import "github.com/timvisee/qr2term/pkg/qr"
//
//	if err := qr.Print("https://example.com"); err != nil {
//	    log.Fatal(err)
//	}
//
// Or control each stage for custom output:
//
//	code, _ := qr.New("https://example.com", qr.LevelHigh)
//	m := code.Matrix()
//	m.Surround(4, qr.Light)
//	qr.NewRenderer().Render(m, os.Stdout)
//
// # Main Packages
//
// [qr] - Encoding and rendering. [qr.New] encodes content at a chosen
// error-correction level, [qr.Matrix] is a generic square pixel grid with
// in-place quiet-zone padding, and [qr.Renderer] packs two pixel rows per
// text line using the lower half block. [qr.Print] and [qr.Generate] wrap
// the whole pipeline with defaults.
//
// [ansi] - Escape sequences for colored terminal output. [ansi.Styler]
// wraps glyphs in foreground and background colors; rendering depends on
// the interface only, so output stays testable.
//
// [cache] - Byte caches keyed by every render input, with file, Redis and
// null backends behind one interface. Used by the HTTP service to serve
// repeated renders without re-encoding.
//
// [errors] - Coded errors shared by the CLI and the HTTP service. Codes
// classify failures (invalid input, encoding failure, sink write) so
// callers can map them to exit codes or HTTP statuses without matching on
// message text.
//
// [observability] - Hook interfaces for encode, render, cache and HTTP
// events, with no-op defaults. Backends are registered at startup; the
// libraries only emit.
//
// [buildinfo] - Version metadata stamped at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/qr/...       # Specific package
//	go test -run Example       # Examples only
//
// [qr]: https://pkg.go.dev/github.com/timvisee/qr2term/pkg/qr
// [ansi]: https://pkg.go.dev/github.com/timvisee/qr2term/pkg/ansi
// [cache]: https://pkg.go.dev/github.com/timvisee/qr2term/pkg/cache
// [errors]: https://pkg.go.dev/github.com/timvisee/qr2term/pkg/errors
// [observability]: https://pkg.go.dev/github.com/timvisee/qr2term/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/timvisee/qr2term/pkg/buildinfo
// [qr.New]: https://pkg.go.dev/github.com/timvisee/qr2term/pkg/qr#New
// [qr.Matrix]: https://pkg.go.dev/github.com/timvisee/qr2term/pkg/qr#Matrix
// [qr.Renderer]: https://pkg.go.dev/github.com/timvisee/qr2term/pkg/qr#Renderer
// [qr.Print]: https://pkg.go.dev/github.com/timvisee/qr2term/pkg/qr#Print
// [qr.Generate]: https://pkg.go.dev/github.com/timvisee/qr2term/pkg/qr#Generate
// [ansi.Styler]: https://pkg.go.dev/github.com/timvisee/qr2term/pkg/ansi#Styler
package pkg
