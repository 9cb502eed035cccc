package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidQueryParam     = "Invalid %s query parameter"
	ErrMsgQueueFull             = "Message queue is full"
	ErrMsgListCommandsFailed    = "Failed to list commands"
	ErrMsgInvalidSlotsSettings  = "Invalid slots settings"
	ErrMsgPurgeFailed           = "Failed to purge slots caches"
)

// Success messages for API responses
const (
	MsgMessageQueued   = "Message queued"
	MsgSlotsPurged     = "Slots caches purged"
	MsgSettingsUpdated = "Slots settings updated"
)

// Log messages
const (
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgRequestDecoded   = "Request decoded"
	LogMsgMessageQueued    = "Chat message queued"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgSlotsPurged      = "Slots caches purged by admin"
	LogMsgSettingsRejected = "Slots settings update rejected"
	LogMsgSettingsUpdated  = "Slots settings updated by admin"
)

// Health statuses
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
)
