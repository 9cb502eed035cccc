package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of old session files kept when a
	// new session starts
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgStartingService     = "Starting chat dispatcher"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// =============================================================================
// Event System
// =============================================================================

const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

const (
	LogMsgMetricsCollectorRegistered  = "Metrics collector registered"
	LogMsgNATSForwarderRegistered     = "NATS forwarder registered"
	LogMsgStreamerbotBridgeRegistered = "Streamer.bot event bridge registered"
	ErrMsgFailedRegisterMetrics       = "failed to register metrics collector"
)

// =============================================================================
// Storage and Dispatch
// =============================================================================

const (
	LogMsgStorageInitialized   = "Storage initialized"
	LogMsgCurrencyCreated      = "Wager currency created"
	ErrMsgFailedConnectDB      = "failed to connect to database"
	ErrMsgFailedMigrate        = "failed to run migrations"
	ErrMsgFailedEnsureCurrency = "failed to ensure wager currency"

	LogMsgChatInitialized     = "Chat sources initialized"
	ErrMsgFailedCreateDiscord = "failed to create discord bot"

	LogMsgDispatchInitialized   = "Command dispatch initialized"
	ErrMsgFailedRegisterCommand = "failed to register system command"

	// JobNameCooldownSweep names the periodic cooldown cleanup
	JobNameCooldownSweep = "cooldown_sweep"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgDeadLetterCloseFailed      = "Dead-letter file close failed"
	LogMsgNATSDrainFailed            = "NATS drain failed"

	// Service names for shutdown logging
	ServiceNameSlots = "slots"
)

// Shutdown log message format (service name will be prepended)
const (
	LogMsgServiceShutdownFailed = " service shutdown failed"
)
