// Package server implements the qr2term HTTP service.
//
// The service renders QR codes over HTTP the same way the CLI renders them
// locally, so `curl host/q/hello` in a terminal shows a scannable code.
//
// # Routes
//
//   - GET  /q/{content}      ANSI half-block text (content URL-encoded)
//   - GET  /q/{content}/png  PNG image
//   - POST /q                ANSI text for the request body
//   - GET  /history          recent render events, newest first
//   - GET  /stats            request and cache counters
//   - GET  /healthz          liveness probe
//   - GET  /                 plain-text usage page
//
// Render routes accept level (low, medium, high, highest) and quiet (pixels)
// query parameters. Rendered bytes are cached keyed by every render input;
// cache failures degrade to rendering fresh, never to request failures.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/timvisee/qr2term/internal/config"
	"github.com/timvisee/qr2term/pkg/cache"
	"github.com/timvisee/qr2term/pkg/errors"
	"github.com/timvisee/qr2term/pkg/observability"
	"github.com/timvisee/qr2term/pkg/qr"
)

// keyNamespace versions the cache key space. Bump it when the rendered byte
// format changes so stale entries are never served.
const keyNamespace = "v1:"

// Server renders codes over HTTP with caching and history.
type Server struct {
	cfg     config.Config
	logger  *log.Logger
	store   cache.Cache
	keyer   cache.Keyer
	history History
	render  *qr.Renderer

	stats serverStats
}

// serverStats holds the counters served by /stats. Handlers run
// concurrently, so all counters are atomic.
type serverStats struct {
	requests       atomic.Int64
	cacheHits      atomic.Int64
	cacheMisses    atomic.Int64
	encodeFailures atomic.Int64
}

// New creates a Server. A nil store disables caching; a nil history falls
// back to the in-memory backend.
func New(cfg config.Config, logger *log.Logger, store cache.Cache, history History) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if store == nil {
		store = cache.NewNullCache()
	}
	if history == nil {
		history = NewMemoryHistory(cfg.History.Limit)
	}

	return &Server{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		keyer:   cache.NewScopedKeyer(nil, keyNamespace),
		history: history,
		render:  qr.NewRenderer(),
	}
}

// Handler builds the routing tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID(s.logger))
	r.Use(logRequests)
	r.Use(s.countRequests)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/stats", s.handleStats)
	r.Get("/history", s.handleHistory)
	r.Post("/q", s.handleEncodeBody)
	r.Get("/q/{content}", s.handleEncodePath)
	r.Get("/q/{content}/png", s.handlePNG)

	return r
}

// ListenAndServe runs the service until ctx is canceled, then shuts down
// gracefully, draining in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("listening", "addr", s.cfg.Server.Listen)

	select {
	case err := <-errCh:
		// The listener failed before any shutdown was requested.
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		s.logger.Info("shut down")
		return ctx.Err()
	}
}

// countRequests counts every request for /stats.
func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.stats.requests.Add(1)
		next.ServeHTTP(w, r)
	})
}

// renderRequest is a fully parsed and validated render request.
type renderRequest struct {
	content string
	level   qr.Level
	quiet   int
	remote  string
}

// parseRenderRequest validates content and the level/quiet query parameters,
// applying configured defaults for absent parameters.
func (s *Server) parseRenderRequest(r *http.Request, content string) (renderRequest, error) {
	if err := errors.ValidateContent(content, s.cfg.Server.MaxContentLength); err != nil {
		return renderRequest{}, err
	}

	level := s.cfg.Level()
	if name := r.URL.Query().Get("level"); name != "" {
		var err error
		if level, err = qr.ParseLevel(name); err != nil {
			return renderRequest{}, err
		}
	}

	quiet := s.cfg.Render.QuietZone
	if raw := r.URL.Query().Get("quiet"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return renderRequest{}, errors.New(errors.ErrCodeInvalidInput,
				"quiet must be an integer, got %q", raw)
		}
		if err := errors.ValidateQuietZone(n); err != nil {
			return renderRequest{}, err
		}
		quiet = n
	}

	return renderRequest{content: content, level: level, quiet: quiet, remote: r.RemoteAddr}, nil
}

// handleEncodePath renders a URL path segment as ANSI text.
func (s *Server) handleEncodePath(w http.ResponseWriter, r *http.Request) {
	content, err := url.PathUnescape(chi.URLParam(r, "content"))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed content"))
		return
	}
	s.renderANSI(w, r, content)
}

// handleEncodeBody renders the request body as ANSI text. A single trailing
// newline is dropped so shell here-strings and echo pipelines round-trip.
func (s *Server) handleEncodeBody(w http.ResponseWriter, r *http.Request) {
	limit := int64(s.cfg.Server.MaxContentLength)
	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "failed to read body"))
		return
	}
	if int64(len(body)) > limit {
		err := errors.New(errors.ErrCodeInvalidInput, "content exceeds the limit of %d bytes", limit)
		s.writeJSON(w, http.StatusRequestEntityTooLarge, errorBody(err))
		return
	}

	s.renderANSI(w, r, strings.TrimSuffix(string(body), "\n"))
}

// renderANSI serves the half-block rendering of content, from cache when
// possible.
func (s *Server) renderANSI(w http.ResponseWriter, r *http.Request, content string) {
	ctx := r.Context()
	logger := loggerFromContext(ctx)

	req, err := s.parseRenderRequest(r, content)
	if err != nil {
		s.writeError(w, err)
		return
	}

	key := s.keyer.RenderKey(req.content, cache.RenderKeyOpts{
		Level:     req.level.String(),
		QuietZone: req.quiet,
		Format:    "ansi",
	})

	if data, ok := s.cacheGet(ctx, logger, key, "ansi"); ok {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("X-Cache", "HIT")
		_, _ = w.Write(data)
		return
	}

	code, err := s.encode(ctx, req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	m := code.Matrix()
	m.Surround(req.quiet, qr.Light)

	var buf bytes.Buffer
	start := time.Now()
	observability.Render().OnRenderStart(ctx, "ansi")
	err = s.render.Render(m, &buf)
	observability.Render().OnRenderComplete(ctx, "ansi", buf.Len(), time.Since(start), err)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.finishRender(ctx, logger, key, buf.Bytes(), req, "ansi")

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Cache", "MISS")
	_, _ = w.Write(buf.Bytes())
}

// handlePNG serves content as a PNG image.
func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := loggerFromContext(ctx)

	content, err := url.PathUnescape(chi.URLParam(r, "content"))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed content"))
		return
	}

	req, err := s.parseRenderRequest(r, content)
	if err != nil {
		s.writeError(w, err)
		return
	}

	size := s.cfg.Server.PNGSize
	key := s.keyer.RenderKey(req.content, cache.RenderKeyOpts{
		Level:     req.level.String(),
		QuietZone: req.quiet,
		Format:    "png",
		Size:      size,
	})

	if data, ok := s.cacheGet(ctx, logger, key, "png"); ok {
		s.writePNG(w, data, "HIT")
		return
	}

	code, err := s.encode(ctx, req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	start := time.Now()
	observability.Render().OnRenderStart(ctx, "png")
	data, err := code.PNG(size)
	observability.Render().OnRenderComplete(ctx, "png", len(data), time.Since(start), err)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.finishRender(ctx, logger, key, data, req, "png")
	s.writePNG(w, data, "MISS")
}

// writePNG writes PNG bytes with image headers. Images are immutable for a
// given URL, so clients may cache them for a day.
func (s *Server) writePNG(w http.ResponseWriter, data []byte, cacheState string) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("X-Cache", cacheState)
	_, _ = w.Write(data)
}

// encode builds the code for req, emitting encode events and counting
// failures for /stats.
func (s *Server) encode(ctx context.Context, req renderRequest) (*qr.Qr, error) {
	start := time.Now()
	observability.Render().OnEncodeStart(ctx, req.level.String(), len(req.content))
	code, err := qr.New(req.content, req.level)
	observability.Render().OnEncodeComplete(ctx, req.level.String(), time.Since(start), err)
	if err != nil {
		s.stats.encodeFailures.Add(1)
		return nil, err
	}
	return code, nil
}

// cacheGet looks up key, degrading backend failures to cache misses.
func (s *Server) cacheGet(ctx context.Context, logger *log.Logger, key, kind string) ([]byte, bool) {
	data, hit, err := s.store.Get(ctx, key)
	if err != nil {
		logger.Warn("cache get failed", "error", err)
		return nil, false
	}
	if hit {
		s.stats.cacheHits.Add(1)
		observability.Cache().OnCacheHit(ctx, kind)
		return data, true
	}
	s.stats.cacheMisses.Add(1)
	observability.Cache().OnCacheMiss(ctx, kind)
	return nil, false
}

// finishRender stores the rendered bytes and records the event. Neither
// failure affects the response; both are logged.
func (s *Server) finishRender(ctx context.Context, logger *log.Logger, key string, data []byte, req renderRequest, format string) {
	ttl := time.Duration(s.cfg.Cache.TTLHours) * time.Hour
	if err := s.store.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache set failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, format, len(data))
	}

	ev := NewEvent(req.content, req.level.String(), format)
	ev.Remote = req.remote
	if err := s.history.Record(ctx, ev); err != nil {
		logger.Warn("history record failed", "error", err)
	}
}

// handleHistory serves recent render events, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 100 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput,
				"limit must be between 1 and 100, got %q", raw))
			return
		}
		limit = n
	}

	events, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if events == nil {
		events = []Event{}
	}
	s.writeJSON(w, http.StatusOK, events)
}

// handleStats serves the request and cache counters.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	total, err := s.history.Count(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]int64{
		"requests":        s.stats.requests.Load(),
		"cache_hits":      s.stats.cacheHits.Load(),
		"cache_misses":    s.stats.cacheMisses.Load(),
		"encode_failures": s.stats.encodeFailures.Load(),
		"renders":         total,
	})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleIndex serves a plain-text usage page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, `qr2term - QR codes for your terminal

  GET  /q/{content}        render content as ANSI half-block text
  GET  /q/{content}/png    render content as a PNG image
  POST /q                  render the request body as ANSI text
  GET  /history            recent renders, newest first
  GET  /stats              request and cache counters

Query parameters for render routes:

  level   error-correction level: low, medium, high, highest
  quiet   quiet-zone thickness in pixels

Content in the URL path must be URL-encoded; use POST /q for content
containing slashes. Try:

  curl %[1]s/q/hello
  echo 'https://example.com' | curl --data-binary @- %[1]s/q
`, "http://"+r.Host)
}

// writeError maps coded errors onto HTTP statuses and writes a JSON body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case errors.ErrCodeEncodingFailed:
		status = http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	}

	s.writeJSON(w, status, errorBody(err))
}

// errorBody is the JSON shape of every error response.
func errorBody(err error) map[string]string {
	return map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	}
}

// writeJSON writes v as a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("response encode failed", "error", err)
	}
}
