package chat

const (
	LogMsgChatReply  = "Chat reply"
	LogMsgSendFailed = "Failed to send chat message"

	ErrMsgRateLimitWait = "chat rate limit wait: %w"
)

// Identities a reply can be spoken as
const (
	IdentityBot         = "bot"
	IdentityBroadcaster = "broadcaster"
)
