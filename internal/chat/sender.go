package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/osse101/ChatDispatch_Go/internal/logger"
)

// Message is an outbound chat reply
type Message struct {
	Text string
	// Target is the user a reply is addressed to, empty for the whole channel
	Target string
	// Identity selects the account that speaks (bot or streamer)
	Identity string
	Platform string
	Channel  string
}

// Sender delivers chat replies. Delivery is fire-and-forget: callers log a
// returned error and carry on.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SenderFunc adapts a function to Sender
type SenderFunc func(ctx context.Context, msg Message) error

// Send calls f
func (f SenderFunc) Send(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// LogSender writes replies to the log instead of a chat platform
type LogSender struct{}

// Send logs the message
func (LogSender) Send(ctx context.Context, msg Message) error {
	logger.FromContext(ctx).Info(LogMsgChatReply,
		"platform", msg.Platform,
		"target", msg.Target,
		"identity", msg.Identity,
		"text", msg.Text)
	return nil
}

// Router sends each message through the sender registered for its platform
type Router struct {
	mu       sync.RWMutex
	senders  map[string]Sender
	fallback Sender
}

// NewRouter creates a router that uses fallback for unknown platforms
func NewRouter(fallback Sender) *Router {
	if fallback == nil {
		fallback = LogSender{}
	}
	return &Router{
		senders:  make(map[string]Sender),
		fallback: fallback,
	}
}

// Route registers the sender for a platform
func (r *Router) Route(platform string, s Sender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.senders[strings.ToLower(platform)] = s
}

// Send dispatches by platform, taken from the context origin when the
// message does not name one
func (r *Router) Send(ctx context.Context, msg Message) error {
	msg = withDefaults(ctx, msg)

	r.mu.RLock()
	s, ok := r.senders[strings.ToLower(msg.Platform)]
	r.mu.RUnlock()
	if !ok {
		s = r.fallback
	}
	return s.Send(ctx, msg)
}

// Reply sends msg and logs a delivery failure
func Reply(ctx context.Context, s Sender, msg Message) {
	if err := s.Send(ctx, msg); err != nil {
		logger.FromContext(ctx).Warn(LogMsgSendFailed, "error", err, "platform", msg.Platform)
	}
}
