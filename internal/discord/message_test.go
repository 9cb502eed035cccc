package discord

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ChatDispatch_Go/internal/chat"
	"github.com/osse101/ChatDispatch_Go/internal/domain"
)

type fakeGuilds struct {
	owner string
	roles map[string]string
}

func (f fakeGuilds) RoleName(_, roleID string) string { return f.roles[roleID] }
func (f fakeGuilds) OwnerID(string) string { return f.owner }

func TestToChatMessage(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	guilds := fakeGuilds{owner: "owner-1", roles: map[string]string{"r1": "Moderator", "r2": "High Rollers"}}

	tests := []struct {
		name        string
		msg         *discordgo.Message
		wantName    string
		wantRoles   []string
		wantWhisper bool
	}{
		{
			name: "guild member with roles and nickname",
			msg: &discordgo.Message{
				ID: "m1", ChannelID: "c1", GuildID: "g1", Content: "  !spin 50 ",
				Author: &discordgo.User{ID: "u1", Username: "alice"},
				Member: &discordgo.Member{Nick: "Ally", Roles: []string{"r1", "r2", "unknown"}},
			},
			wantName:  "Ally",
			wantRoles: []string{"moderator", "high rollers"},
		},
		{
			name: "guild owner",
			msg: &discordgo.Message{
				ID: "m2", ChannelID: "c1", GuildID: "g1", Content: "!command remove !x",
				Author: &discordgo.User{ID: "owner-1", Username: "boss", GlobalName: "The Boss"},
				Member: &discordgo.Member{},
			},
			wantName:  "The Boss",
			wantRoles: []string{RoleOwner},
		},
		{
			name: "direct message",
			msg: &discordgo.Message{
				ID: "m3", ChannelID: "dm", Content: "!spin 5",
				Author: &discordgo.User{ID: "owner-1", Username: "boss"},
			},
			wantName:    "boss",
			wantWhisper: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toChatMessage(tt.msg, guilds, now)

			assert.Equal(t, tt.msg.ID, got.ID)
			assert.Equal(t, tt.msg.ChannelID, got.Channel)
			assert.Equal(t, domain.PlatformDiscord, got.User.Platform)
			assert.Equal(t, tt.msg.Author.ID, got.User.UserID)
			assert.Equal(t, tt.wantName, got.User.Username)
			assert.Equal(t, tt.wantRoles, got.User.Roles)
			assert.Equal(t, tt.wantWhisper, got.Whisper)
			assert.Equal(t, strings.TrimSpace(tt.msg.Content), got.Text)
			assert.Equal(t, now, got.ReceivedAt)
		})
	}
}

type fakeMessenger struct {
	channel string
	content string
	err     error
}

func (f *fakeMessenger) ChannelMessageSend(channelID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.channel = channelID
	f.content = content
	return &discordgo.Message{}, f.err
}

func TestSender_Send(t *testing.T) {
	m := &fakeMessenger{}
	s := NewSender(m)

	require.NoError(t, s.Send(context.Background(), chat.Message{Text: "hi", Channel: "c1"}))
	assert.Equal(t, "c1", m.channel)
	assert.Equal(t, "hi", m.content)
}

func TestSender_Truncates(t *testing.T) {
	m := &fakeMessenger{}
	s := NewSender(m)

	require.NoError(t, s.Send(context.Background(), chat.Message{Text: strings.Repeat("a", 2500), Channel: "c1"}))
	assert.Len(t, m.content, MaxMessageLength)
	assert.True(t, strings.HasSuffix(m.content, TruncationSuffix))
}

func TestSender_CountsCharactersNotBytes(t *testing.T) {
	t.Run("multi-byte text under the limit is sent whole", func(t *testing.T) {
		m := &fakeMessenger{}
		text := strings.Repeat("é", 1500)

		require.NoError(t, NewSender(m).Send(context.Background(), chat.Message{Text: text, Channel: "c1"}))
		assert.Equal(t, text, m.content)
	})

	t.Run("multi-byte text over the limit is cut on a character boundary", func(t *testing.T) {
		m := &fakeMessenger{}
		text := strings.Repeat("日本", 1200)

		require.NoError(t, NewSender(m).Send(context.Background(), chat.Message{Text: text, Channel: "c1"}))
		assert.True(t, utf8.ValidString(m.content))
		assert.Equal(t, MaxMessageLength, utf8.RuneCountInString(m.content))
		assert.True(t, strings.HasSuffix(m.content, TruncationSuffix))
	})
}

func TestSender_Errors(t *testing.T) {
	s := NewSender(&fakeMessenger{})
	assert.ErrorIs(t, s.Send(context.Background(), chat.Message{Text: "hi"}), ErrNoChannel)

	boom := errors.New("boom")
	s = NewSender(&fakeMessenger{err: boom})
	assert.ErrorIs(t, s.Send(context.Background(), chat.Message{Text: "hi", Channel: "c1"}), boom)
}
