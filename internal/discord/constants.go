package discord

import "errors"

// MaxMessageLength is the Discord message content limit in characters
const MaxMessageLength = 2000

// TruncationSuffix marks a reply cut to fit MaxMessageLength
const TruncationSuffix = "..."

// RoleOwner is reported for the guild owner
const RoleOwner = "owner"

var ErrNoChannel = errors.New("discord reply has no channel")

// Error message formats
const (
	ErrMsgSessionCreate = "error creating Discord session: %w"
	ErrMsgSessionOpen   = "error opening connection: %w"
	ErrMsgSendFailed    = "failed to send to channel %s: %w"
)

// Log messages
const (
	LogMsgBotRunning  = "Discord bot is now running"
	LogMsgBotReady    = "Discord bot is ready"
	LogMsgCloseFailed = "Failed to close Discord session"
)
