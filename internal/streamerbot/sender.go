package streamerbot

import (
	"context"
	"strconv"

	"github.com/osse101/ChatDispatch_Go/internal/chat"
)

// ActionRunner triggers Streamer.bot actions
type ActionRunner interface {
	DoAction(ctx context.Context, name string, args map[string]string) error
}

// Sender posts chat replies through the ChatDispatch_SendMessage action,
// which the Streamer.bot profile routes to the right platform
type Sender struct {
	runner ActionRunner
}

// NewSender creates a chat sender backed by runner
func NewSender(runner ActionRunner) *Sender {
	return &Sender{runner: runner}
}

// Send implements chat.Sender
func (s *Sender) Send(ctx context.Context, msg chat.Message) error {
	args := map[string]string{
		ArgMessage:  msg.Text,
		ArgPlatform: msg.Platform,
		ArgUseBot:   strconv.FormatBool(msg.Identity != chat.IdentityBroadcaster),
	}
	if msg.Channel != "" {
		args[ArgChannel] = msg.Channel
	}
	if msg.Target != "" {
		args[ArgTarget] = msg.Target
	}
	return s.runner.DoAction(ctx, ActionSendMessage, args)
}
