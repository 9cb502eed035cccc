package roles

import "time"

const (
	// DefaultCacheSize bounds the team role cache
	DefaultCacheSize = 1024

	// DefaultCacheTTL is how long a team lookup is reused
	DefaultCacheTTL = 5 * time.Minute

	cacheKeySeparator = ":"
)

const (
	LogMsgSourceFailed = "Role source failed, continuing without it"
)
