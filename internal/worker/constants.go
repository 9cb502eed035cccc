package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for worker pool operations
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
)

// ============================================================================
// Log Messages - Chat Jobs
// ============================================================================

// Log messages for chat message jobs
const (
	LogMsgChatJobDone    = "Chat message handled"
	LogMsgMessageDropped = "Chat message dropped"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgQueueFull     = "worker queue is full"
	ErrMsgPoolStopped   = "worker pool is stopped"
	ErrMsgChatJobFailed = "chat message %s: %w"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
