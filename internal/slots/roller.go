package slots

import (
	"context"
	"time"

	"github.com/osse101/ChatDispatch_Go/internal/chat"
	"github.com/osse101/ChatDispatch_Go/internal/utils"
)

// RollEngine runs the slot machine for a resolved success chance and
// returns how many reels came up successful
type RollEngine interface {
	Spin(ctx context.Context, showInAction bool, inActionMessage string, chance int, identity string) (int, error)
}

// ReelRoller rolls ReelCount independent reels, each succeeding with the
// given percent chance
type ReelRoller struct {
	rng    utils.Intn
	sender chat.Sender
	delay  time.Duration
}

// NewReelRoller creates a roller. delay is the pause between announcing the
// spin and reporting its result; sender may be nil when no announcement is
// wanted.
func NewReelRoller(rng utils.Intn, sender chat.Sender, delay time.Duration) *ReelRoller {
	if rng == nil {
		rng = utils.CryptoIntn
	}
	return &ReelRoller{rng: rng, sender: sender, delay: delay}
}

// Spin announces the spin if asked, waits, then rolls the reels
func (r *ReelRoller) Spin(ctx context.Context, showInAction bool, inActionMessage string, chance int, identity string) (int, error) {
	if showInAction && inActionMessage != "" && r.sender != nil {
		chat.Reply(ctx, r.sender, chat.Message{Text: inActionMessage, Identity: identity})
	}

	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-timer.C:
		}
	}

	successes := 0
	for i := 0; i < ReelCount; i++ {
		if r.rng(PercentScale) < chance {
			successes++
		}
	}
	return successes, nil
}
