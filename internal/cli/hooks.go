package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/timvisee/qr2term/pkg/observability"
)

// logHooks forwards observability events to the logger at debug level, so
// `serve --verbose` shows per-stage timings without a metrics backend.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnEncodeStart(ctx context.Context, level string, contentLen int) {
	h.logger.Debug("encode start", "level", level, "bytes", contentLen)
}

func (h logHooks) OnEncodeComplete(ctx context.Context, level string, duration time.Duration, err error) {
	if err != nil {
		h.logger.Debug("encode failed", "level", level, "duration", duration, "error", err)
		return
	}
	h.logger.Debug("encode done", "level", level, "duration", duration)
}

func (h logHooks) OnRenderStart(ctx context.Context, format string) {
	h.logger.Debug("render start", "format", format)
}

func (h logHooks) OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "format", format, "duration", duration, "error", err)
		return
	}
	h.logger.Debug("render done", "format", format, "bytes", size, "duration", duration)
}

func (h logHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ observability.RenderHooks = logHooks{}
	_ observability.CacheHooks  = logHooks{}
)
