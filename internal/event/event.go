package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	ID         string      `json:"id"`
	Version    string      `json:"version"` // Event schema version (e.g., "1.0")
	Type       Type        `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
	Metadata   Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Event types published by the dispatcher
const (
	CommandExecuted Type = domain.EventTypeCommandExecuted
	CommandRejected Type = domain.EventTypeCommandRejected
	CommandMutated  Type = domain.EventTypeCommandMutated
	SlotsCompleted  Type = domain.EventTypeSlotsCompleted
	SlotsAborted    Type = domain.EventTypeSlotsAborted
)

func newEvent(t Type, payload interface{}, md Metadata) Event {
	return Event{
		ID:         uuid.NewString(),
		Version:    EventSchemaVersion,
		Type:       t,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
		Metadata:   md,
	}
}

// NewCommandExecutedEvent creates a command.executed event
func NewCommandExecutedEvent(p domain.CommandExecutedPayload, requestID string) Event {
	return newEvent(CommandExecuted, p, requestMetadata(requestID))
}

// NewCommandRejectedEvent creates a command.rejected event
func NewCommandRejectedEvent(p domain.CommandRejectedPayload, requestID string) Event {
	return newEvent(CommandRejected, p, requestMetadata(requestID))
}

// NewCommandMutatedEvent creates a command.mutated event
func NewCommandMutatedEvent(trigger, mutation, changedBy string) Event {
	return newEvent(CommandMutated, domain.CommandMutatedPayload{
		Trigger:   trigger,
		Mutation:  mutation,
		ChangedBy: changedBy,
	}, nil)
}

// NewSlotsCompletedEvent creates a slots.completed event
func NewSlotsCompletedEvent(p domain.SlotsCompletedPayload, requestID string) Event {
	return newEvent(SlotsCompleted, p, requestMetadata(requestID))
}

// NewSlotsAbortedEvent creates a slots.aborted event
func NewSlotsAbortedEvent(p domain.SlotsAbortedPayload, requestID string) Event {
	return newEvent(SlotsAborted, p, requestMetadata(requestID))
}

func requestMetadata(requestID string) Metadata {
	if requestID == "" {
		return nil
	}
	return Metadata{MetadataKeyRequestID: requestID}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber of the event type synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// AllTypes lists the event types the dispatcher publishes
func AllTypes() []Type {
	return []Type{CommandExecuted, CommandRejected, CommandMutated, SlotsCompleted, SlotsAborted}
}
