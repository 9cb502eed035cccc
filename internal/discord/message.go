package discord

import (
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
)

// guildLookup resolves the guild data a chat message needs
type guildLookup interface {
	RoleName(guildID, roleID string) string
	OwnerID(guildID string) string
}

// toChatMessage converts a Discord message. Guild role names become raw
// role names, lowercased so built-in names like "Moderator" map onto
// platform roles; custom role names pass through for the custom resolver.
// Messages outside a guild are treated as whispers.
func toChatMessage(m *discordgo.Message, guilds guildLookup, receivedAt time.Time) domain.ChatMessage {
	username := m.Author.Username
	if m.Author.GlobalName != "" {
		username = m.Author.GlobalName
	}

	msg := domain.ChatMessage{
		ID:      m.ID,
		Channel: m.ChannelID,
		User: domain.ChatUser{
			Platform: domain.PlatformDiscord,
			UserID:   m.Author.ID,
			Username: username,
		},
		Text:       strings.TrimSpace(m.Content),
		Whisper:    m.GuildID == "",
		ReceivedAt: receivedAt,
	}
	if m.Member != nil && m.Member.Nick != "" {
		msg.User.Username = m.Member.Nick
	}

	if m.GuildID == "" {
		return msg
	}
	if guilds.OwnerID(m.GuildID) == m.Author.ID {
		msg.User.Roles = append(msg.User.Roles, RoleOwner)
	}
	if m.Member != nil {
		for _, roleID := range m.Member.Roles {
			if name := guilds.RoleName(m.GuildID, roleID); name != "" {
				msg.User.Roles = append(msg.User.Roles, strings.ToLower(name))
			}
		}
	}
	return msg
}
