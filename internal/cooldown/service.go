package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
)

// Service stores cooldown expiries keyed by scope.
// An entry is valid while its expiry is after the current clock; entries are
// never relied upon to disappear on time.
type Service interface {
	// Remaining returns how long key stays on cooldown, zero when it is free
	Remaining(ctx context.Context, key string) (time.Duration, error)

	// Arm starts a cooldown window of d for key, replacing any previous expiry
	Arm(ctx context.Context, key string, d time.Duration) error

	// TryArm starts a window of d for key only if key is free, as one atomic
	// step. It returns zero when the window was claimed, otherwise the time
	// the existing window has left. A non-positive d claims nothing.
	TryArm(ctx context.Context, key string, d time.Duration) (time.Duration, error)

	// Reset clears the cooldown for key
	Reset(ctx context.Context, key string) error

	// Purge clears every cooldown
	Purge(ctx context.Context) error

	// Sweep drops expired entries and reports how many were removed
	Sweep(ctx context.Context) (int, error)
}

// ErrOnCooldown is returned when an action is still on cooldown
type ErrOnCooldown struct {
	Action    string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	total := int(e.Remaining.Round(time.Second).Seconds())
	minutes := total / SecondsPerMinute
	seconds := total % SecondsPerMinute

	if minutes > 0 {
		return fmt.Sprintf(ErrFmtCooldownWithMinutes, e.Action, minutes, seconds)
	}
	return fmt.Sprintf(ErrFmtCooldownSecondsOnly, e.Action, seconds)
}

// Is allows errors.Is() to match ErrOnCooldown and domain.ErrOnCooldown
func (e ErrOnCooldown) Is(target error) bool {
	if target == domain.ErrOnCooldown {
		return true
	}
	_, ok := target.(ErrOnCooldown)
	return ok
}

// Check returns ErrOnCooldown when key is still cooling down
func Check(ctx context.Context, svc Service, key, action string) error {
	remaining, err := svc.Remaining(ctx, key)
	if err != nil {
		return fmt.Errorf(ErrMsgCheckCooldownFailed, err)
	}
	if remaining > 0 {
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}
	return nil
}

// UserKey scopes a cooldown to one user of one action
func UserKey(action, userID string) string {
	return action + KeySeparator + KeyScopeUser + KeySeparator + userID
}

// GlobalKey scopes a cooldown to every user of one action
func GlobalKey(action string) string {
	return action + KeySeparator + KeyScopeGlobal
}
