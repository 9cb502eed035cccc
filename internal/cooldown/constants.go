package cooldown

// =============================================================================
// Key Constants
// =============================================================================

const (
	// KeySeparator joins the parts of a cooldown key
	KeySeparator = ":"

	// KeyScopeUser marks a per-user cooldown key
	KeyScopeUser = "user"

	// KeyScopeGlobal marks a cooldown shared by all users
	KeyScopeGlobal = "global"
)

// =============================================================================
// SQL Query Constants
// =============================================================================

const (
	// SQLSelectExpiry retrieves the expiry for a cooldown key
	SQLSelectExpiry = `
		SELECT expires_at
		FROM command_cooldowns
		WHERE cooldown_key = $1
	`

	// SQLUpsertExpiry inserts or updates a cooldown expiry
	SQLUpsertExpiry = `
		INSERT INTO command_cooldowns (cooldown_key, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (cooldown_key) DO UPDATE
		SET expires_at = EXCLUDED.expires_at
	`

	// SQLClaimExpiry sets a cooldown expiry only when none is running at $3
	SQLClaimExpiry = `
		INSERT INTO command_cooldowns (cooldown_key, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (cooldown_key) DO UPDATE
		SET expires_at = EXCLUDED.expires_at
		WHERE command_cooldowns.expires_at <= $3
		RETURNING expires_at
	`

	// SQLDeleteCooldown removes one cooldown
	SQLDeleteCooldown = `DELETE FROM command_cooldowns WHERE cooldown_key = $1`

	// SQLDeleteAllCooldowns removes every cooldown
	SQLDeleteAllCooldowns = `DELETE FROM command_cooldowns`

	// SQLDeleteExpired removes cooldowns that expired before $1
	SQLDeleteExpired = `DELETE FROM command_cooldowns WHERE expires_at <= $1`
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgCheckCooldownFailed  = "failed to check cooldown: %w"
	ErrMsgGetExpiryFailed      = "failed to get cooldown expiry: %w"
	ErrMsgUpdateCooldownFailed = "failed to update cooldown: %w"
	ErrMsgResetCooldownFailed  = "failed to reset cooldown: %w"
	ErrMsgSweepFailed          = "failed to sweep cooldowns: %w"
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	LogMsgCooldownArmed = "Cooldown armed"
	LogMsgSweepFinished = "Cooldown sweep finished"
)

// =============================================================================
// Error Message Format Strings (for ErrOnCooldown.Error())
// =============================================================================

const (
	// ErrFmtCooldownWithMinutes formats cooldown error with minutes and seconds
	ErrFmtCooldownWithMinutes = "'%s' is on cooldown: %dm %ds remaining"

	// ErrFmtCooldownSecondsOnly formats cooldown error with seconds only
	ErrFmtCooldownSecondsOnly = "'%s' is on cooldown: %ds remaining"
)

// SecondsPerMinute is used for time duration calculations
const SecondsPerMinute = 60
