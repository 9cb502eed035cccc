package command

import (
	"context"
	"sync"

	"github.com/osse101/ChatDispatch_Go/internal/chat"
	"github.com/osse101/ChatDispatch_Go/internal/event"
)

// recordingSender captures outbound chat messages
type recordingSender struct {
	mu   sync.Mutex
	sent []chat.Message
}

func (r *recordingSender) Send(_ context.Context, msg chat.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingSender) texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.sent))
	for i, m := range r.sent {
		out[i] = m.Text
	}
	return out
}

func (r *recordingSender) last() chat.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return chat.Message{}
	}
	return r.sent[len(r.sent)-1]
}

// eventRecorder subscribes to every dispatcher event type
type eventRecorder struct {
	mu     sync.Mutex
	events []event.Event
}

func newEventRecorder(bus event.Bus) *eventRecorder {
	rec := &eventRecorder{}
	for _, t := range event.AllTypes() {
		bus.Subscribe(t, func(_ context.Context, evt event.Event) error {
			rec.mu.Lock()
			defer rec.mu.Unlock()
			rec.events = append(rec.events, evt)
			return nil
		})
	}
	return rec
}

func (r *eventRecorder) types() []event.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}
