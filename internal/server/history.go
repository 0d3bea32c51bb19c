package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/timvisee/qr2term/pkg/cache"
)

// Event records one rendered code. Content itself is never stored, only its
// hash and length, so history can be kept without retaining user payloads.
type Event struct {
	ID          string    `json:"id" bson:"_id"`
	ContentHash string    `json:"content_hash" bson:"content_hash"`
	ContentLen  int       `json:"content_len" bson:"content_len"`
	Level       string    `json:"level" bson:"level"`
	Format      string    `json:"format" bson:"format"`
	Remote      string    `json:"remote,omitempty" bson:"remote,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// NewEvent builds an Event for a render that just happened.
func NewEvent(content, level, format string) Event {
	return Event{
		ID:          uuid.NewString(),
		ContentHash: cache.Hash([]byte(content)),
		ContentLen:  len(content),
		Level:       level,
		Format:      format,
		CreatedAt:   time.Now().UTC(),
	}
}

// History records render events and serves them back newest first.
//
// Implementations: MemoryHistory for single-instance deployments and tests,
// MongoHistory where history must survive restarts.
type History interface {
	// Record stores an event.
	Record(ctx context.Context, ev Event) error

	// Recent returns up to limit events, newest first.
	Recent(ctx context.Context, limit int) ([]Event, error)

	// Count returns the total number of recorded events.
	Count(ctx context.Context) (int64, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryHistory keeps the most recent events in a bounded in-memory ring.
// Older events are dropped once the capacity is reached.
type MemoryHistory struct {
	mu     sync.Mutex
	events []Event
	max    int
	total  int64
}

// NewMemoryHistory creates an in-memory history holding up to max events.
// A non-positive max falls back to 100.
func NewMemoryHistory(max int) *MemoryHistory {
	if max <= 0 {
		max = 100
	}
	return &MemoryHistory{max: max}
}

// Record stores an event, evicting the oldest once capacity is reached.
func (h *MemoryHistory) Record(ctx context.Context, ev Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.events = append(h.events, ev)
	if len(h.events) > h.max {
		h.events = h.events[len(h.events)-h.max:]
	}
	h.total++
	return nil
}

// Recent returns up to limit retained events, newest first.
func (h *MemoryHistory) Recent(ctx context.Context, limit int) ([]Event, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if limit <= 0 || limit > len(h.events) {
		limit = len(h.events)
	}

	out := make([]Event, 0, limit)
	for i := len(h.events) - 1; i >= len(h.events)-limit; i-- {
		out = append(out, h.events[i])
	}
	return out, nil
}

// Count returns the number of events recorded over the process lifetime,
// including ones already evicted from the ring.
func (h *MemoryHistory) Count(ctx context.Context) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.total, nil
}

// Close does nothing for the in-memory backend.
func (h *MemoryHistory) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryHistory implements History.
var _ History = (*MemoryHistory)(nil)
