package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
)

// ChatHandler receives chat messages read from Discord
type ChatHandler func(ctx context.Context, msg domain.ChatMessage)

// Bot reads guild and direct messages from Discord and hands them to the
// dispatcher
type Bot struct {
	Session *discordgo.Session
	onChat  ChatHandler
	ctx     context.Context
	cancel  context.CancelFunc
}

// Config holds the bot configuration
type Config struct {
	Token string
}

// New creates a new Discord bot
func New(cfg Config, onChat ChatHandler) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgSessionCreate, err)
	}
	s.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuilds

	ctx, cancel := context.WithCancel(context.Background())
	return &Bot{
		Session: s,
		onChat:  onChat,
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Start opens the gateway connection
func (b *Bot) Start() error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.messageCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf(ErrMsgSessionOpen, err)
	}
	slog.Info(LogMsgBotRunning)
	return nil
}

// Stop closes the gateway connection
func (b *Bot) Stop() {
	b.cancel()
	if err := b.Session.Close(); err != nil {
		slog.Warn(LogMsgCloseFailed, "error", err)
	}
}

// Connected reports whether the gateway session is ready
func (b *Bot) Connected() bool {
	return b.Session != nil && b.Session.DataReady
}

func (b *Bot) ready(s *discordgo.Session, _ *discordgo.Ready) {
	slog.Info(LogMsgBotReady, "user", s.State.User.Username)
}

func (b *Bot) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	msg := toChatMessage(m.Message, stateLookup{state: s.State}, time.Now())
	if msg.Text == "" {
		return
	}
	b.onChat(b.ctx, msg)
}

// stateLookup resolves guild data from the session cache
type stateLookup struct {
	state *discordgo.State
}

func (l stateLookup) RoleName(guildID, roleID string) string {
	if l.state == nil {
		return ""
	}
	role, err := l.state.Role(guildID, roleID)
	if err != nil {
		return ""
	}
	return role.Name
}

func (l stateLookup) OwnerID(guildID string) string {
	if l.state == nil {
		return ""
	}
	g, err := l.state.Guild(guildID)
	if err != nil {
		return ""
	}
	return g.OwnerID
}
