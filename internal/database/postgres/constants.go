package postgres

// PostgreSQL error codes the repositories translate into domain errors
const (
	pgCodeForeignKeyViolation = "23503"
	pgCodeCheckViolation      = "23514"
)

// =============================================================================
// Command Store Queries
// =============================================================================

const (
	sqlFindCommand = `
		SELECT command_id, trigger_text, description, active, scan_whole_message,
		       user_cooldown_secs, global_cooldown_secs, permission, sub_commands, effects,
		       created_by, created_at, updated_at
		FROM commands
		WHERE trigger_key = $1
	`

	sqlListCommands = `
		SELECT command_id, trigger_text, description, active, scan_whole_message,
		       user_cooldown_secs, global_cooldown_secs, permission, sub_commands, effects,
		       created_by, created_at, updated_at
		FROM commands
		WHERE ($1::boolean = FALSE OR active)
		ORDER BY trigger_key
	`

	sqlUpsertCommand = `
		INSERT INTO commands (
			command_id, trigger_key, trigger_text, description, active, scan_whole_message,
			user_cooldown_secs, global_cooldown_secs, permission, sub_commands, effects,
			created_by, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (trigger_key) DO UPDATE SET
			trigger_text = EXCLUDED.trigger_text,
			description = EXCLUDED.description,
			active = EXCLUDED.active,
			scan_whole_message = EXCLUDED.scan_whole_message,
			user_cooldown_secs = EXCLUDED.user_cooldown_secs,
			global_cooldown_secs = EXCLUDED.global_cooldown_secs,
			permission = EXCLUDED.permission,
			sub_commands = EXCLUDED.sub_commands,
			effects = EXCLUDED.effects,
			updated_at = EXCLUDED.updated_at
	`

	sqlDeleteCommand = `DELETE FROM commands WHERE trigger_key = $1`
)

// =============================================================================
// Ledger Queries
// =============================================================================

const (
	// sqlGetBalance returns no row when the currency is unknown and zero when
	// the user has never held it
	sqlGetBalance = `
		SELECT COALESCE(
			(SELECT balance FROM balances WHERE user_id = $1 AND currency_id = $2), 0)
		FROM currencies
		WHERE currency_id = $2
	`

	sqlDebitBalance = `
		UPDATE balances
		SET balance = balance - $3, updated_at = NOW()
		WHERE user_id = $1 AND currency_id = $2 AND balance >= $3
	`

	sqlCreditBalance = `
		INSERT INTO balances (user_id, currency_id, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, currency_id) DO UPDATE
		SET balance = balances.balance + EXCLUDED.balance, updated_at = NOW()
	`

	sqlGetCurrency = `SELECT currency_id, currency_name FROM currencies WHERE currency_id = $1`

	sqlUpsertCurrency = `
		INSERT INTO currencies (currency_id, currency_name)
		VALUES ($1, $2)
		ON CONFLICT (currency_id) DO UPDATE SET currency_name = EXCLUDED.currency_name
	`
)

// =============================================================================
// Custom Role Queries
// =============================================================================

const (
	sqlCustomRolesFor = `
		SELECT r.role_id, r.role_name
		FROM custom_roles r
		JOIN custom_role_members m ON m.role_id = r.role_id
		WHERE m.username_key = $1
		ORDER BY r.role_id
	`

	sqlUpsertCustomRole = `
		INSERT INTO custom_roles (role_id, role_name)
		VALUES ($1, $2)
		ON CONFLICT (role_id) DO UPDATE SET role_name = EXCLUDED.role_name
	`

	sqlAddRoleMember = `
		INSERT INTO custom_role_members (role_id, username_key)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	sqlRemoveRoleMember = `DELETE FROM custom_role_members WHERE role_id = $1 AND username_key = $2`
)

// Error message formats
const (
	ErrMsgFindCommandFailed   = "failed to find command %q: %w"
	ErrMsgListCommandsFailed  = "failed to list commands: %w"
	ErrMsgSaveCommandFailed   = "failed to save command %q: %w"
	ErrMsgDeleteCommandFailed = "failed to delete command %q: %w"
	ErrMsgEncodeColumnFailed  = "failed to encode %s: %w"
	ErrMsgDecodeColumnFailed  = "failed to decode %s: %w"
	ErrMsgGetBalanceFailed    = "failed to get balance: %w"
	ErrMsgAdjustBalanceFailed = "failed to adjust balance: %w"
	ErrMsgGetCurrencyFailed   = "failed to get currency: %w"
	ErrMsgSaveCurrencyFailed  = "failed to save currency: %w"
	ErrMsgCustomRolesFailed   = "failed to load custom roles: %w"
	ErrMsgSaveRoleFailed      = "failed to save custom role: %w"
	ErrMsgBeginTxFailed       = "failed to begin transaction: %w"
	ErrMsgCommitFailed        = "failed to commit transaction: %w"
	ErrFmtInsufficientFunds   = "%w: user %s, currency %s, debit %d"
	ErrFmtCurrencyMissing     = "%w: %s"
	ErrFmtConstraintViolated  = "%w: command %q violates a table constraint"
)

// Log messages
const (
	LogMsgRollbackFailed = "Failed to rollback transaction"
	LogMsgBalanceChanged = "Balance adjusted"
)
