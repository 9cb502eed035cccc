package domain

import "time"

// Platform names accepted from chat sources
const (
	PlatformTwitch  = "twitch"
	PlatformYouTube = "youtube"
	PlatformDiscord = "discord"
)

// ChatUser identifies the sender of a chat message
type ChatUser struct {
	Platform string `json:"platform"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	// Roles are the raw platform role names as reported by the chat source
	// (broadcaster, mod, vip, subscriber, editor...)
	Roles []string `json:"roles,omitempty"`
}

// ChatMessage is an already-decoded inbound chat event
type ChatMessage struct {
	ID         string    `json:"id"`
	Channel    string    `json:"channel,omitempty"`
	User       ChatUser  `json:"user"`
	Text       string    `json:"text"`
	Whisper    bool      `json:"whisper,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}

// Role is a role held by a chat user, from any role source
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Group names used by command restrictions
const (
	GroupSubscribers    = "Subscribers"
	GroupModerators     = "Moderators"
	GroupChannelEditors = "Channel Editors"
	GroupStreamer       = "Streamer"
	GroupVIP            = "VIP"
)

// Built-in platform role identifiers
const (
	RoleIDBroadcaster = "broadcaster"
	RoleIDEditor      = "editor"
	RoleIDMod         = "mod"
	RoleIDSubscriber  = "sub"
	RoleIDVIP         = "vip"
)

// PlatformRoles maps raw platform role names onto built-in roles.
// Several raw names may map onto the same role.
var PlatformRoles = map[string]Role{
	"broadcaster":   {ID: RoleIDBroadcaster, Name: GroupStreamer},
	"owner":         {ID: RoleIDBroadcaster, Name: GroupStreamer},
	"streamer":      {ID: RoleIDBroadcaster, Name: GroupStreamer},
	"editor":        {ID: RoleIDEditor, Name: GroupChannelEditors},
	"channeleditor": {ID: RoleIDEditor, Name: GroupChannelEditors},
	"mod":           {ID: RoleIDMod, Name: GroupModerators},
	"moderator":     {ID: RoleIDMod, Name: GroupModerators},
	"sub":           {ID: RoleIDSubscriber, Name: GroupSubscribers},
	"subscriber":    {ID: RoleIDSubscriber, Name: GroupSubscribers},
	"founder":       {ID: RoleIDSubscriber, Name: GroupSubscribers},
	"vip":           {ID: RoleIDVIP, Name: GroupVIP},
}
