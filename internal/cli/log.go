// Package cli implements the qr2term command-line interface.
//
// This package provides commands for rendering QR codes as ANSI half-block
// text or PNG images, sharing Wi-Fi credentials, serving codes over HTTP,
// and managing the rendered-code cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - qr2term [content...]: Render content as a QR code on stdout
//   - wifi: Render Wi-Fi credentials, interactively or from flags
//   - serve: Serve codes over HTTP with caching and render history
//   - cache: Manage the rendered-code cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Logs go to
// stderr, keeping stdout clean for rendered codes. Loggers are passed
// through context.Context so helpers stay decoupled from the CLI struct.
//
// # Example
//
//	import "github.com/timvisee/qr2term/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
// This ensures commands always have a valid logger even if context setup fails.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
