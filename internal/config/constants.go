package config

import "time"

// Storage backends
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Defaults applied when the variable is unset
const (
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultLogDir            = "logs"
	DefaultServiceName       = "chatdispatch"
	DefaultVersion           = "dev"
	DefaultEnvironment       = "dev"
	DefaultDBName            = "chatdispatch"
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
	DefaultLedgerTimeout     = 5 * time.Second
	DefaultSpinDelay         = 2 * time.Second
	DefaultBotIdentity       = "bot"
	DefaultWorkerCount       = 4
	DefaultWorkerQueueSize   = 256
	DefaultSweepInterval     = 10 * time.Minute
	DefaultRoleCacheTTL      = 5 * time.Minute
	DefaultRoleCacheSize     = 1024
	DefaultChatBurst         = 5
	DefaultEventMaxRetries   = 3
	DefaultEventRetryDelay   = 2 * time.Second
	DefaultDeadLetterPath    = "logs/deadletter.jsonl"
)

// Error message formats
const (
	ErrMsgLoadSlotsSettings    = "failed to load slots settings: %w"
	ErrMsgInvalidSlotsSettings = "invalid slots settings: %w"
	ErrMsgWagerBoundsInverted  = "max_wager %d is below min_wager %d"
)
