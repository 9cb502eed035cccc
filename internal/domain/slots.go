package domain

import "time"

// RoleOverride replaces the base success chance for holders of RoleID.
// Overrides are scanned in declared order and the first match wins, so lists
// must be authored in descending precedence.
type RoleOverride struct {
	RoleID  string `json:"role_id" validate:"required"`
	Percent int    `json:"percent" validate:"gte=0,lte=100"`
}

// SlotsMessages are the chat templates used by the spin command.
// Placeholders: {username}, {timeRemaining}, {minWager}, {maxWager},
// {successfulRolls}, {winningsAmount}, {currencyName}.
type SlotsMessages struct {
	AlreadySpinning  string `json:"already_spinning"`
	OnCooldown       string `json:"on_cooldown"`
	MoreThanZero     string `json:"more_than_zero"`
	MinWager         string `json:"min_wager"`
	MaxWager         string `json:"max_wager"`
	NotEnough        string `json:"not_enough"`
	SpinInAction     string `json:"spin_in_action"`
	ShowSpinInAction bool   `json:"show_spin_in_action"`
	SpinSuccessful   string `json:"spin_successful"`
}

// SlotsSettings configures the wager engine
type SlotsSettings struct {
	CurrencyID      string         `json:"currency_id" validate:"required"`
	MinWager        int64          `json:"min_wager" validate:"gte=0"`
	MaxWager        int64          `json:"max_wager" validate:"gte=0"`
	CooldownSeconds int            `json:"cooldown_seconds" validate:"gte=0"`
	BasePercent     int            `json:"base_percent" validate:"gte=0,lte=100"`
	RoleOverrides   []RoleOverride `json:"role_overrides" validate:"dive"`
	Multiplier      float64        `json:"multiplier" validate:"gte=0"`
	Messages        SlotsMessages  `json:"messages"`
	ChatIdentity    string         `json:"chat_identity"`
}

// Cooldown returns the configured per-user spin cooldown
func (s SlotsSettings) Cooldown() time.Duration {
	return time.Duration(s.CooldownSeconds) * time.Second
}

// DefaultSuccessChance is used when no chance settings are configured
const DefaultSuccessChance = 50

// DefaultSlotsSettings returns the settings a fresh install starts with
func DefaultSlotsSettings() SlotsSettings {
	return SlotsSettings{
		CurrencyID:      "points",
		CooldownSeconds: 30,
		BasePercent:     DefaultSuccessChance,
		Multiplier:      1,
		Messages: SlotsMessages{
			AlreadySpinning:  "{username}, your slot machine is actively working!",
			OnCooldown:       "{username}, your slot machine is currently on cooldown. Time remaining: {timeRemaining}",
			MoreThanZero:     "{username}, your wager amount must be more than 0.",
			MinWager:         "{username}, your wager amount must be at least {minWager}.",
			MaxWager:         "{username}, your wager amount can be no more than {maxWager}.",
			NotEnough:        "{username}, you don't have enough to wager this amount!",
			SpinInAction:     "{username} pulls back the lever...",
			ShowSpinInAction: true,
			SpinSuccessful:   "{username} hit {successfulRolls} out of 3 and won {winningsAmount} {currencyName}!",
		},
	}
}

// Currency describes a ledger currency
type Currency struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpinRequest is one wager submitted by a chat user
type SpinRequest struct {
	User   ChatUser `json:"user"`
	Amount int64    `json:"amount"`
}

// SpinOutcome is the result of a completed spin
type SpinOutcome struct {
	UserID          string `json:"user_id"`
	Username        string `json:"username"`
	Wager           int64  `json:"wager"`
	SuccessChance   int    `json:"success_chance"`
	SuccessfulRolls int    `json:"successful_rolls"`
	Winnings        int64  `json:"winnings"`
	CurrencyName    string `json:"currency_name"`
	Message         string `json:"message"`
}
