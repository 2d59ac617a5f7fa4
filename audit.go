package tokenguard

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Audit event types emitted by [Validator].
const (
	// EventValidate is emitted once per completed validation.
	EventValidate = "token.validate"
	// EventKeyMiss is the diagnostic emitted when an asymmetric token
	// carries no kid or the key store has no matching key.
	EventKeyMiss = "token.key_miss"
)

// Event is a single audit record describing a validation outcome.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"`
	KID       string    `json:"kid,omitempty"`
	Algorithm string    `json:"algorithm,omitempty"`
	Verified  bool      `json:"verified"`
	Expired   bool      `json:"expired"`
	Error     string    `json:"error,omitempty"`
}

// AuditSink receives validation events. Implementations must not block
// beyond ctx cancellation; Validate treats sinks as fire-and-forget.
type AuditSink interface {
	Emit(ctx context.Context, event Event)
}

// NoOpSink discards all events.
type NoOpSink struct{}

func (NoOpSink) Emit(context.Context, Event) {}

// ChannelSink buffers events on a channel for out-of-band consumption.
// Emit drops nothing while buffer space remains and returns on ctx
// cancellation otherwise.
type ChannelSink struct {
	events chan Event
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan Event, buffer),
	}
}

func (s *ChannelSink) Emit(ctx context.Context, event Event) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

// JSONWriterSink writes line-delimited JSON events to an io.Writer.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

func (s *JSONWriterSink) Emit(ctx context.Context, event Event) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}
