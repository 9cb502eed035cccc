package slots

import "time"

// Spin command definition
const (
	TriggerSpin      = "!spin"
	SpinCommandID    = "system:spin"
	SpinSubCommandID = "spinAmount"
	SpinAmountRegex  = `\d+`
	SpinAmountUsage  = "[currencyAmount]"
)

// Reel configuration
const (
	// ReelCount is how many reels each spin rolls
	ReelCount = 3

	// PercentScale is the denominator of success chances
	PercentScale = 100
)

// DefaultLedgerTimeout bounds every ledger call
const DefaultLedgerTimeout = 5 * time.Second

// cooldownAction scopes spin cooldown keys
const cooldownAction = "slots"

// Template placeholders
const (
	PlaceholderUsername        = "{username}"
	PlaceholderTimeRemaining   = "{timeRemaining}"
	PlaceholderMinWager        = "{minWager}"
	PlaceholderMaxWager        = "{maxWager}"
	PlaceholderSuccessfulRolls = "{successfulRolls}"
	PlaceholderWinningsAmount  = "{winningsAmount}"
	PlaceholderCurrencyName    = "{currencyName}"
)

// Fixed chat replies
const (
	ReplyFmtIncorrectUsage = "Incorrect spin usage: %s [wagerAmount]"
	ReplyFmtDebitFailed    = "Sorry %s, there was an error deducting currency from your balance so the spin has been canceled."
	ReplyFmtRollFailed     = "Sorry %s, the slot machine jammed and your wager has been refunded."
	ReplyFmtCreditFailed   = "Sorry %s, there was an error paying out your winnings."
)

// Log message constants
const (
	LogMsgSpinRejected      = "Spin rejected"
	LogMsgBalanceFetchFail  = "Failed to fetch balance, treating as zero"
	LogMsgDebitFailed       = "Failed to debit wager"
	LogMsgRolesFailed       = "Failed to resolve roles for success chance"
	LogMsgRollFailed        = "Roll failed, refunding wager"
	LogMsgRefundFailed      = "Failed to refund wager after roll failure"
	LogMsgCreditFailed      = "Failed to credit winnings"
	LogMsgCurrencyFailed    = "Failed to load currency, using its ID as name"
	LogMsgSpinCompleted     = "Spin completed"
	LogMsgPublishFailed     = "Failed to publish slots event"
	LogMsgCachesPurged      = "Slots caches purged"
	LogMsgCommandRegistered = "Spin command registered"
)

// Error message constants
const (
	ErrFmtWithDetail      = "%w: %s"
	ErrFmtLedgerCall      = "%w: %w"
	ErrMsgPurgeFailed     = "failed to purge slots cooldowns: %w"
	ErrMsgCooldownFailed  = "failed to check spin cooldown: %w"
	ErrMsgRollFailedFmt   = "%w: roll failed: %w"
	ErrMsgWagerLimitFmt   = "%w: %s %d"
	ErrMsgBalanceShortFmt = "%w: balance %d, wager %d"
)
