package discord

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/ChatDispatch_Go/internal/chat"
)

// ChannelMessenger posts to a Discord channel. *discordgo.Session satisfies it.
type ChannelMessenger interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Sender delivers chat replies to the channel the command came from
type Sender struct {
	messenger ChannelMessenger
}

// NewSender creates a Discord chat sender
func NewSender(messenger ChannelMessenger) *Sender {
	return &Sender{messenger: messenger}
}

// Send implements chat.Sender
func (s *Sender) Send(ctx context.Context, msg chat.Message) error {
	if msg.Channel == "" {
		return ErrNoChannel
	}
	text := truncate(msg.Text)
	if _, err := s.messenger.ChannelMessageSend(msg.Channel, text, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf(ErrMsgSendFailed, msg.Channel, err)
	}
	return nil
}

// truncate cuts text to MaxMessageLength characters, counted in runes as
// Discord counts them
func truncate(text string) string {
	if utf8.RuneCountInString(text) <= MaxMessageLength {
		return text
	}
	runes := []rune(text)
	keep := MaxMessageLength - utf8.RuneCountInString(TruncationSuffix)
	return string(runes[:keep]) + TruncationSuffix
}
