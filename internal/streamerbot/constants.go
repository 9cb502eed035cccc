package streamerbot

import (
	"errors"
	"time"
)

// Default configuration values
const (
	// DefaultURL is the default WebSocket URL for Streamer.bot
	DefaultURL = "ws://127.0.0.1:8080/"

	// DefaultReconnectDelay is the initial delay before attempting to reconnect
	DefaultReconnectDelay = 1 * time.Second

	// MaxReconnectDelay caps the exponential backoff
	MaxReconnectDelay = 30 * time.Second

	ReconnectMultiplier = 2.0

	// MaxConsecutiveFailures is how many dials fail before the client goes dormant
	MaxConsecutiveFailures = 10

	// HelloTimeout bounds the wait for the server greeting after dialing.
	// Streamer.bot may send nothing when authentication is disabled.
	HelloTimeout = 2 * time.Second

	WriteTimeout = 10 * time.Second

	ReadBufferSize  = 4096
	WriteBufferSize = 4096
)

// Request types for the Streamer.bot WebSocket API
const (
	RequestDoAction     = "DoAction"
	RequestAuthenticate = "Authenticate"
	RequestSubscribe    = "Subscribe"
)

// Event sources and types delivered by Streamer.bot subscriptions
const (
	SourceTwitch       = "Twitch"
	SourceYouTube      = "YouTube"
	EventChatMessage   = "ChatMessage"
	EventYouTubeChat   = "Message"
	EventTwitchWhisper = "Whisper"
)

// Twitch role levels reported on chat events
const (
	TwitchRoleViewer      = 1
	TwitchRoleVIP         = 2
	TwitchRoleModerator   = 3
	TwitchRoleBroadcaster = 4
)

// Actions the dispatcher triggers in Streamer.bot
const (
	ActionSendMessage    = "ChatDispatch_SendMessage"
	ActionSlotsResult    = "ChatDispatch_SlotsResult"
	ActionCommandMutated = "ChatDispatch_CommandMutated"
)

// DoAction argument names
const (
	ArgMessage  = "message"
	ArgPlatform = "platform"
	ArgChannel  = "channel"
	ArgTarget   = "target"
	ArgUseBot   = "useBot"
)

// Response status values
const (
	StatusOK    = "ok"
	StatusError = "error"
)

var (
	ErrDormant      = errors.New("streamer.bot is dormant, reconnection triggered")
	ErrNotConnected = errors.New("not connected to streamer.bot")
	ErrNoPassword   = errors.New("password required but not configured")
)

// Error message formats
const (
	ErrMsgDialFailed       = "failed to connect: %w"
	ErrMsgDialFailedStatus = "failed to connect: %w (status: %s)"
	ErrMsgAuthFailed       = "authentication failed: %w"
	ErrMsgRequestRejected  = "%s rejected: %s"
	ErrMsgSubscribeFailed  = "failed to subscribe to chat events: %w"
	ErrMsgWriteFailed      = "failed to write %s request: %w"
	ErrMsgReadFailed       = "failed to read %s response: %w"
)

// Log messages
const (
	LogMsgConnecting      = "Connecting to Streamer.bot WebSocket"
	LogMsgConnected       = "Connected to Streamer.bot WebSocket"
	LogMsgRestored        = "Streamer.bot connection restored"
	LogMsgReconnecting    = "Reconnecting to Streamer.bot WebSocket"
	LogMsgAuthRequired    = "Streamer.bot requires authentication"
	LogMsgAuthSuccess     = "Streamer.bot authentication successful"
	LogMsgNoHello         = "No greeting from Streamer.bot, assuming no auth required"
	LogMsgSendingAction   = "Sending DoAction to Streamer.bot"
	LogMsgActionFailed    = "Failed to send DoAction to Streamer.bot"
	LogMsgRequestRejected = "Streamer.bot rejected request"
	LogMsgReadError       = "Error reading from Streamer.bot WebSocket"
	LogMsgClientStopped   = "Streamer.bot client stopped"
	LogMsgEventReceived   = "Forwarding bus event to Streamer.bot"
	LogMsgBadPayload      = "Unexpected event payload for Streamer.bot action"
	LogMsgChatIgnored     = "Ignoring Streamer.bot chat event"
	LogMsgGivingUp        = "Streamer.bot connection failed too many times, entering dormant mode"
	LogMsgDormantRetry    = "Streamer.bot dormant, retrying connection due to outbound action"
	LogMsgWaking          = "Streamer.bot waking from dormant mode"
	LogMsgSubscriberReady = "Streamer.bot subscriber registered for event types"
)
