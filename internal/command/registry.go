package command

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/ChatDispatch_Go/internal/chat"
	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/logger"
)

// Invocation is a resolved command run, handed to the handler that executes it
type Invocation struct {
	Message    domain.ChatMessage
	Definition domain.CommandDefinition
	// SubCommand is the first declared subcommand matching Args[0], if any
	SubCommand *domain.SubCommand
	// Args are the message tokens following the trigger
	Args []string

	sender   chat.Sender
	identity string
}

// NewInvocation builds an invocation and selects the first declared
// subcommand matching args[0]
func NewInvocation(msg domain.ChatMessage, def domain.CommandDefinition, args []string, sender chat.Sender, identity string) *Invocation {
	inv := &Invocation{
		Message:    msg,
		Definition: def,
		Args:       args,
		sender:     sender,
		identity:   identity,
	}
	if len(args) > 0 {
		for i := range def.SubCommands {
			if inv.Definition.SubCommands[i].Matches(args[0]) {
				inv.SubCommand = &inv.Definition.SubCommands[i]
				break
			}
		}
	}
	return inv
}

// Reply answers in the channel the message came from
func (inv *Invocation) Reply(ctx context.Context, text string) {
	inv.send(ctx, text, "")
}

// Whisper answers only the sender where the platform supports it
func (inv *Invocation) Whisper(ctx context.Context, text string) {
	inv.send(ctx, text, inv.Message.User.Username)
}

func (inv *Invocation) send(ctx context.Context, text, target string) {
	if inv.sender == nil {
		return
	}
	chat.Reply(ctx, inv.sender, chat.Message{
		Text:     text,
		Target:   target,
		Identity: inv.identity,
		Platform: inv.Message.User.Platform,
		Channel:  inv.Message.Channel,
	})
}

// SubCommandID returns the matched subcommand's ID, or empty
func (inv *Invocation) SubCommandID() string {
	if inv.SubCommand == nil {
		return ""
	}
	if inv.SubCommand.ID != "" {
		return inv.SubCommand.ID
	}
	return inv.SubCommand.Arg
}

// Handler is a built-in command implemented in code.
// Execute replies to the user itself; a returned error means the run failed
// unexpectedly and no cooldown is armed.
type Handler interface {
	Definition() domain.CommandDefinition
	Execute(ctx context.Context, inv *Invocation) error
}

// Registry holds the system commands. System triggers take precedence over
// custom commands and cannot be claimed by them.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds h under its trigger
func (r *Registry) Register(h Handler) error {
	key := NormalizeTrigger(h.Definition().Trigger)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[key]; exists {
		return fmt.Errorf(ErrMsgHandlerRegistered, domain.ErrConflict, key)
	}
	r.handlers[key] = h
	logger.Info(LogMsgHandlerRegistered, logger.AttrKeyTrigger, key)
	return nil
}

// Unregister removes the handler for trigger and reports whether one existed
func (r *Registry) Unregister(trigger string) bool {
	key := NormalizeTrigger(trigger)

	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.handlers[key]
	delete(r.handlers, key)
	return ok
}

// Get looks up the handler for trigger
func (r *Registry) Get(trigger string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[NormalizeTrigger(trigger)]
	return h, ok
}

// IsReserved reports whether trigger belongs to a system command
func (r *Registry) IsReserved(trigger string) bool {
	_, ok := r.Get(trigger)
	return ok
}

// Definitions lists the system command definitions ordered by trigger
func (r *Registry) Definitions() []domain.CommandDefinition {
	r.mu.RLock()
	defs := make([]domain.CommandDefinition, 0, len(r.handlers))
	for _, h := range r.handlers {
		defs = append(defs, h.Definition())
	}
	r.mu.RUnlock()

	sort.Slice(defs, func(i, j int) bool { return defs[i].Trigger < defs[j].Trigger })
	return defs
}
