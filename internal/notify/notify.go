// Package notify streams build events to an external listener. Delivery is
// best effort: a publisher never fails a build.
package notify

import (
	"context"
	"sync"
)

// Event names emitted during a build.
const (
	BuildStarted  = "build_started"
	NodeResolved  = "node_resolved"
	BuildFinished = "build_finished"
)

// Publisher delivers build events.
type Publisher interface {
	Publish(ctx context.Context, event string, data map[string]any)
	Close()
}

// Noop discards every event.
type Noop struct{}

func (Noop) Publish(context.Context, string, map[string]any) {}
func (Noop) Close()                                          {}

// Message is one event captured by a Memory publisher.
type Message struct {
	Event string
	Data  map[string]any
}

// Memory keeps published events in order. It is safe for concurrent use.
type Memory struct {
	mu       sync.Mutex
	messages []Message
	closed   bool
}

func (m *Memory) Publish(_ context.Context, event string, data map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, Message{Event: event, Data: data})
}

func (m *Memory) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

// Messages returns a copy of everything published so far.
func (m *Memory) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.messages...)
}

// Closed reports whether Close was called.
func (m *Memory) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
