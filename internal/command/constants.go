package command

// System command triggers
const (
	TriggerCommandManagement = "!command"

	CommandManagementID = "system:commandmanagement"
)

// Management subcommand words
const (
	SubAdd      = "add"
	SubResponse = "response"
	SubCooldown = "cooldown"
	SubRestrict = "restrict"
	SubRemove   = "remove"
)

// Management usages, shown after "Usage: !command"
const (
	UsageAdd      = `add [!trigger or "phrase"] [message]`
	UsageResponse = `response [!trigger or "phrase"] [message]`
	UsageCooldown = `cooldown [!trigger or "phrase"] [globalCooldownSecs] [userCooldownSecs]`
	UsageRestrict = `restrict [!trigger or "phrase"] [All/Sub/Mod/Streamer/Custom Group]`
	UsageRemove   = `remove [!trigger or "phrase"]`
	UsageAny      = `[add|response|cooldown|restrict|remove]`
)

// Chat replies
const (
	ReplyFmtInvalidUsage    = "Invalid command. Usage: %s %s"
	ReplyFmtTriggerTaken    = "The trigger '%s' has already been taken, please try again."
	ReplyFmtAdded           = "Added command '%s' with response: %s"
	ReplyFmtResponseUpdated = "Updated '%s' with response: %s"
	ReplyFmtCooldownUpdated = "Updated '%s' with cooldowns: %ds (user), %ds (global)"
	ReplyInvalidGroup       = "Please provide a valid group name: All, Sub, Mod, Streamer, or a custom group's name"
	ReplyFmtRestricted      = "Updated '%s' restrictions to: %s"
	ReplyFmtRemoved         = "Successfully removed command '%s'."
	ReplyFmtAmbiguousEdit   = "The command '%s' has more than one Chat Effect, preventing the response from being editable via chat."
	ReplyFmtNotFound        = "Could not find a command with the trigger '%s', please try again."
	ReplyFmtNoPermission    = "Sorry %s, you do not have permission to use %s."
	ReplyFmtOnCooldown      = "%s, %s is still on cooldown for: %s"
	ReplyFmtCommandFailed   = "Sorry %s, something went wrong running %s."
)

// Cooldown key parts
const (
	cooldownKeyPrefix = "cmd:"
)

// Log message constants
const (
	LogMsgGateRejected          = "Command rejected"
	LogMsgGateExecuted          = "Command executed"
	LogMsgExecuteFailed         = "Command handler failed"
	LogMsgRoleResolveFailed     = "Role resolution failed, checking with partial roles"
	LogMsgCooldownReleaseFailed = "Failed to release command cooldown"
	LogMsgEventPublishFailed    = "Failed to publish command event"
	LogMsgCommandMutated        = "Custom command mutated"
	LogMsgHandlerRegistered     = "System command registered"
)

// Error message constants
const (
	ErrMsgFindCommandFailed   = "failed to find command: %w"
	ErrMsgListCommandsFailed  = "failed to list commands: %w"
	ErrMsgSaveCommandFailed   = "failed to save command: %w"
	ErrMsgDeleteCommandFailed = "failed to delete command: %w"
	ErrMsgCheckCooldownFailed = "failed to check cooldown: %w"
	ErrMsgHandlerRegistered   = "%w: system command %s already registered"
	ErrMsgTriggerReserved     = "%w: %s is a system command"
	ErrMsgExecuteFailed       = "command %s failed: %w"
	ErrMsgCooldownNotInteger  = "%w: %s: %q"
	ErrMsgAmbiguousEditFmt    = "%w: %s has %d chat effects"
	ErrMsgRestrictionInvalid  = "%w: %w"

	// ErrFmtWithDetail wraps a sentinel with the trigger or field at fault
	ErrFmtWithDetail = "%w: %s"
)
