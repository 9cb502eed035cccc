package event

import "time"

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// MetadataKeyRequestID carries the chat request ID that produced an event
const MetadataKeyRequestID = "request_id"

// Retry configuration constants
const (
	// RetryInitialDelaySeconds is the initial retry delay in seconds (2s)
	RetryInitialDelaySeconds = 2

	// RetryMaxAttempts is the default maximum number of retry attempts
	RetryMaxAttempts = 5
)

// Dead letter file configuration
const (
	// DeadLetterFilePermissions is the file permission mode for dead-letter files
	DeadLetterFilePermissions = 0644

	// DeadLetterMaxLineBytes bounds a single dead-letter entry when reading
	DeadLetterMaxLineBytes = 1 << 20
)

// NATS configuration
const (
	// NATSSubjectPrefix prefixes every forwarded event subject
	NATSSubjectPrefix = "chatdispatch.events."

	// NATSClientName identifies this service to the NATS server
	NATSClientName = "chatdispatch"

	// NATSMaxReconnects bounds reconnect attempts
	NATSMaxReconnects = 10

	// NATSReconnectWait is the delay between reconnect attempts
	NATSReconnectWait = 2 * time.Second
)

// Log message constants
const (
	LogMsgEventPublishFailed   = "Failed to publish event, initiating async retry"
	LogMsgEventRetryFailed     = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded  = "Event retry succeeded"
	LogMsgEventRetryExhausted  = "Event retry exhausted, writing to dead-letter"
	LogMsgEventDeadLettered    = "Event dead-lettered"
	LogMsgEventDroppedShutdown = "Event retry abandoned during shutdown"
	LogMsgShutdownTimeout      = "Resilient publisher shutdown timed out"
	LogMsgNATSConnected        = "Connected to NATS"
	LogMsgNATSDisconnected     = "NATS disconnected"
	LogMsgNATSReconnected      = "NATS reconnected"
	LogMsgNATSForwardFailed    = "Failed to forward event to NATS"

	// Log message for handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// Error message constants
const (
	ErrMsgNATSConnectFailed = "failed to connect to NATS: %w"
	ErrMsgEncodeEventFailed = "failed to encode event: %w"
	ErrMsgNATSPublishFailed = "failed to publish to NATS subject %s: %w"
	ErrMsgDeadLetterLine    = "dead-letter line %d: %w"
	ErrMsgReplayFailed      = "replay %s: %w"
)

// CalculateRetryDelay calculates the exponential backoff delay for retry attempts.
// Implements exponential backoff: 2s, 4s, 8s, 16s, 32s
// Formula: initialDelay * 2^(attempt-1)
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	return baseDelay * time.Duration(1<<(attempt-1))
}
