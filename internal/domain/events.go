package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "command.executed")
const (
	// EventTypeCommandExecuted is published after a command passes the gate and runs
	EventTypeCommandExecuted = "command.executed"

	// EventTypeCommandRejected is published when the gate halts an invocation
	EventTypeCommandRejected = "command.rejected"

	// EventTypeCommandMutated is published when a custom command is added, edited or removed
	EventTypeCommandMutated = "command.mutated"

	// EventTypeSlotsCompleted is published after a spin credits its winnings
	EventTypeSlotsCompleted = "slots.completed"

	// EventTypeSlotsAborted is published when a ledger failure stops a spin after its checks passed
	EventTypeSlotsAborted = "slots.aborted"
)

// Rejection reasons reported by the execution gate
const (
	RejectReasonPermission = "permission"
	RejectReasonCooldown   = "cooldown"
)

// Abort stages reported in slots.aborted events
const (
	AbortStageDebit  = "debit"
	AbortStageRoll   = "roll"
	AbortStageCredit = "credit"
)

// Mutation kinds reported in command.mutated events
const (
	MutationAdd         = "add"
	MutationResponse    = "response"
	MutationCooldown    = "cooldown"
	MutationRestriction = "restrict"
	MutationRemove      = "remove"
)

// CommandExecutedPayload is the event payload for command.executed events
type CommandExecutedPayload struct {
	Trigger    string `json:"trigger"`
	SubCommand string `json:"sub_command,omitempty"`
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Platform   string `json:"platform"`
	System     bool   `json:"system"`
}

// CommandRejectedPayload is the event payload for command.rejected events
type CommandRejectedPayload struct {
	Trigger  string `json:"trigger"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Reason   string `json:"reason"`
}

// CommandMutatedPayload is the event payload for command.mutated events
type CommandMutatedPayload struct {
	Trigger   string `json:"trigger"`
	Mutation  string `json:"mutation"`
	ChangedBy string `json:"changed_by"`
}

// SlotsCompletedPayload is the event payload for slots.completed events
type SlotsCompletedPayload struct {
	UserID          string `json:"user_id"`
	Username        string `json:"username"`
	Wager           int64  `json:"wager"`
	SuccessChance   int    `json:"success_chance"`
	SuccessfulRolls int    `json:"successful_rolls"`
	Winnings        int64  `json:"winnings"`
	CurrencyID      string `json:"currency_id"`
}

// SlotsAbortedPayload is the event payload for slots.aborted events
type SlotsAbortedPayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Wager    int64  `json:"wager"`
	Stage    string `json:"stage"`
}
