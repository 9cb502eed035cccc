package currency

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
)

func TestMemoryLedger(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger(domain.Currency{ID: "points", Name: "Points"})

	bal, err := l.GetBalance(ctx, "u1", "points")
	require.NoError(t, err)
	assert.Zero(t, bal)

	require.NoError(t, l.AdjustBalance(ctx, "u1", "points", 100))
	require.NoError(t, l.AdjustBalance(ctx, "u1", "points", -40))

	bal, err = l.GetBalance(ctx, "u1", "points")
	require.NoError(t, err)
	assert.Equal(t, int64(60), bal)

	err = l.AdjustBalance(ctx, "u1", "points", -61)
	assert.True(t, errors.Is(err, domain.ErrInsufficientFunds))

	c, err := l.GetCurrency(ctx, "points")
	require.NoError(t, err)
	assert.Equal(t, "Points", c.Name)
}

func TestMemoryLedger_UnknownCurrency(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger()

	_, err := l.GetBalance(ctx, "u1", "gems")
	assert.ErrorIs(t, err, domain.ErrCurrencyMissing)
	assert.ErrorIs(t, l.AdjustBalance(ctx, "u1", "gems", 1), domain.ErrCurrencyMissing)
	_, err = l.GetCurrency(ctx, "gems")
	assert.ErrorIs(t, err, domain.ErrCurrencyMissing)
}
