package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Parsing / usage errors
	ErrMsgUsage             = "invalid command usage"
	ErrMsgEmptyTrigger      = "trigger must not be empty"
	ErrMsgEmptyMessage      = "message must not be empty"
	ErrMsgInvalidPermission = "invalid permission group"

	// Command store errors
	ErrMsgCommandNotFound  = "command not found"
	ErrMsgTriggerTaken     = "trigger already taken"
	ErrMsgAmbiguousEdit    = "command has more than one chat effect"
	ErrMsgPermissionDenied = "permission denied"

	// Validation errors
	ErrMsgValidation        = "validation failed"
	ErrMsgWagerNotPositive  = "wager must be a positive integer"
	ErrMsgWagerBelowMinimum = "wager below minimum"
	ErrMsgWagerAboveMaximum = "wager above maximum"
	ErrMsgWagerBounds       = "wager outside configured bounds"

	// Wager errors
	ErrMsgSpinInProgress    = "spin already in progress"
	ErrMsgInsufficientFunds = "insufficient funds"

	// Ledger errors
	ErrMsgLedger          = "ledger call failed"
	ErrMsgLedgerTimeout   = "ledger call timed out"
	ErrMsgCurrencyMissing = "currency not found"

	// Cooldown errors
	ErrMsgOnCooldown = "action on cooldown"

	// Input errors
	ErrMsgInvalidInput    = "invalid input"
	ErrMsgInvalidPlatform = "invalid platform"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// UsageError
	ErrUsage = errors.New(ErrMsgUsage)

	// ValidationError and its refinements
	ErrValidation        = errors.New(ErrMsgValidation)
	ErrInvalidPermission = errors.New(ErrMsgInvalidPermission)
	ErrWagerBounds       = errors.New(ErrMsgWagerBounds)

	// NotFoundError
	ErrNotFound = errors.New(ErrMsgCommandNotFound)

	// ConflictError
	ErrConflict = errors.New(ErrMsgTriggerTaken)

	// AmbiguousEditError
	ErrAmbiguousEdit = errors.New(ErrMsgAmbiguousEdit)

	// Gate rejections
	ErrPermissionDenied = errors.New(ErrMsgPermissionDenied)
	ErrOnCooldown       = errors.New(ErrMsgOnCooldown)

	// ConcurrencyError
	ErrConcurrency = errors.New(ErrMsgSpinInProgress)

	// BalanceError
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// LedgerError
	ErrLedger          = errors.New(ErrMsgLedger)
	ErrCurrencyMissing = errors.New(ErrMsgCurrencyMissing)

	// Input errors
	ErrInvalidInput    = errors.New(ErrMsgInvalidInput)
	ErrInvalidPlatform = errors.New(ErrMsgInvalidPlatform)
)
