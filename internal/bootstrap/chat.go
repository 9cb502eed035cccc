package bootstrap

import (
	"context"
	"fmt"

	"github.com/osse101/ChatDispatch_Go/internal/chat"
	"github.com/osse101/ChatDispatch_Go/internal/config"
	"github.com/osse101/ChatDispatch_Go/internal/discord"
	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/logger"
	"github.com/osse101/ChatDispatch_Go/internal/streamerbot"
)

// ChatHandler receives decoded chat messages from every chat source
type ChatHandler func(ctx context.Context, msg domain.ChatMessage)

// ChatComponents are the chat sources and the platform-routed reply sender
type ChatComponents struct {
	Router *chat.Router
	// Streamerbot carries Twitch and YouTube chat; nil when unconfigured
	Streamerbot *streamerbot.Client
	// Discord is nil when unconfigured
	Discord *discord.Bot
}

// InitializeChat creates the configured chat sources and routes replies back
// through the platform they came from. Platforms without a source log their
// replies.
func InitializeChat(cfg *config.Config, onChat ChatHandler) (*ChatComponents, error) {
	components := &ChatComponents{Router: chat.NewRouter(chat.LogSender{})}

	if cfg.StreamerbotURL != "" {
		client := streamerbot.NewClient(cfg.StreamerbotURL, cfg.StreamerbotPassword, streamerbot.ChatHandler(onChat))
		sender := throttle(cfg, streamerbot.NewSender(client))
		components.Router.Route(domain.PlatformTwitch, sender)
		components.Router.Route(domain.PlatformYouTube, sender)
		components.Streamerbot = client
	}

	if cfg.DiscordToken != "" {
		bot, err := discord.New(discord.Config{Token: cfg.DiscordToken}, discord.ChatHandler(onChat))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDiscord, err)
		}
		components.Router.Route(domain.PlatformDiscord, throttle(cfg, discord.NewSender(bot.Session)))
		components.Discord = bot
	}

	logger.Info(LogMsgChatInitialized,
		"streamerbot", components.Streamerbot != nil,
		"discord", components.Discord != nil,
		"rate_per_sec", cfg.ChatRatePerSec)

	return components, nil
}

// Start connects every configured chat source. The Streamer.bot client
// reconnects on its own; a Discord failure is fatal.
func (c *ChatComponents) Start(ctx context.Context) error {
	if c.Streamerbot != nil {
		c.Streamerbot.Start(ctx)
	}
	if c.Discord != nil {
		if err := c.Discord.Start(); err != nil {
			return err
		}
	}
	return nil
}

// Stop disconnects every chat source
func (c *ChatComponents) Stop() {
	if c.Streamerbot != nil {
		c.Streamerbot.Stop()
	}
	if c.Discord != nil {
		c.Discord.Stop()
	}
}

func throttle(cfg *config.Config, s chat.Sender) chat.Sender {
	if cfg.ChatRatePerSec <= 0 {
		return s
	}
	return chat.NewRateLimitedSender(s, cfg.ChatRatePerSec, cfg.ChatBurst)
}
