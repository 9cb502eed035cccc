package cooldown

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ChatDispatch_Go/internal/logger"
)

// postgresBackend implements Service on the command_cooldowns table so
// cooldowns survive restarts
type postgresBackend struct {
	db  *pgxpool.Pool
	now func() time.Time
}

// NewPostgresService creates a cooldown service with Postgres backend
func NewPostgresService(db *pgxpool.Pool) Service {
	return &postgresBackend{db: db, now: time.Now}
}

// Remaining reads the stored expiry and compares it with the local clock
func (b *postgresBackend) Remaining(ctx context.Context, key string) (time.Duration, error) {
	var expiresAt time.Time
	err := b.db.QueryRow(ctx, SQLSelectExpiry, key).Scan(&expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf(ErrMsgGetExpiryFailed, err)
	}
	return remainingUntil(expiresAt, b.now()), nil
}

// Arm upserts the expiry for key
func (b *postgresBackend) Arm(ctx context.Context, key string, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	if _, err := b.db.Exec(ctx, SQLUpsertExpiry, key, b.now().Add(d)); err != nil {
		return fmt.Errorf(ErrMsgUpdateCooldownFailed, err)
	}
	logger.FromContext(ctx).Debug(LogMsgCooldownArmed, "key", key, "duration", d)
	return nil
}

// TryArm claims key with a conditional upsert that only replaces an expired
// row. No returned row means another window is still running.
func (b *postgresBackend) TryArm(ctx context.Context, key string, d time.Duration) (time.Duration, error) {
	if d <= 0 {
		return b.Remaining(ctx, key)
	}

	now := b.now()
	var expiresAt time.Time
	err := b.db.QueryRow(ctx, SQLClaimExpiry, key, now.Add(d), now).Scan(&expiresAt)
	if err == nil {
		logger.FromContext(ctx).Debug(LogMsgCooldownArmed, "key", key, "duration", d)
		return 0, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf(ErrMsgUpdateCooldownFailed, err)
	}

	remaining, err := b.Remaining(ctx, key)
	if err != nil {
		return 0, err
	}
	if remaining <= 0 {
		// the running window ended between the two statements
		return b.TryArm(ctx, key, d)
	}
	return remaining, nil
}

// Reset deletes the row for key
func (b *postgresBackend) Reset(ctx context.Context, key string) error {
	if _, err := b.db.Exec(ctx, SQLDeleteCooldown, key); err != nil {
		return fmt.Errorf(ErrMsgResetCooldownFailed, err)
	}
	return nil
}

// Purge deletes every row
func (b *postgresBackend) Purge(ctx context.Context) error {
	if _, err := b.db.Exec(ctx, SQLDeleteAllCooldowns); err != nil {
		return fmt.Errorf(ErrMsgResetCooldownFailed, err)
	}
	return nil
}

// Sweep deletes rows whose expiry has passed
func (b *postgresBackend) Sweep(ctx context.Context) (int, error) {
	tag, err := b.db.Exec(ctx, SQLDeleteExpired, b.now())
	if err != nil {
		return 0, fmt.Errorf(ErrMsgSweepFailed, err)
	}
	return int(tag.RowsAffected()), nil
}
