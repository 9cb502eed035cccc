package postgres

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	ledger := NewLedger(requireDB(t))
	require.NoError(t, ledger.SaveCurrency(context.Background(), domain.Currency{ID: "points", Name: "Points"}))
	return ledger
}

func TestLedger_BalanceLifecycle(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	balance, err := ledger.GetBalance(ctx, "u1", "points")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	require.NoError(t, ledger.AdjustBalance(ctx, "u1", "points", 100))
	require.NoError(t, ledger.AdjustBalance(ctx, "u1", "points", -30))

	balance, err = ledger.GetBalance(ctx, "u1", "points")
	require.NoError(t, err)
	assert.Equal(t, int64(70), balance)
}

func TestLedger_InsufficientFunds(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, ledger.AdjustBalance(ctx, "u1", "points", 10))

	err := ledger.AdjustBalance(ctx, "u1", "points", -11)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	err = ledger.AdjustBalance(ctx, "nobody", "points", -1)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	balance, err := ledger.GetBalance(ctx, "u1", "points")
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance)
}

func TestLedger_UnknownCurrency(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.GetBalance(ctx, "u1", "gold")
	assert.ErrorIs(t, err, domain.ErrCurrencyMissing)

	_, err = ledger.GetCurrency(ctx, "gold")
	assert.ErrorIs(t, err, domain.ErrCurrencyMissing)

	assert.ErrorIs(t, ledger.AdjustBalance(ctx, "u1", "gold", 5), domain.ErrCurrencyMissing)
	assert.ErrorIs(t, ledger.AdjustBalance(ctx, "u1", "gold", -5), domain.ErrCurrencyMissing)
}

func TestLedger_GetCurrency(t *testing.T) {
	ledger := newTestLedger(t)

	c, err := ledger.GetCurrency(context.Background(), "points")
	require.NoError(t, err)
	assert.Equal(t, "Points", c.Name)
}

func TestLedger_ConcurrentDebitsNeverOverdraw(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, ledger.AdjustBalance(ctx, "u1", "points", 50))

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := ledger.AdjustBalance(ctx, "u1", "points", -10)
			if err == nil {
				succeeded.Add(1)
				return
			}
			if !errors.Is(err, domain.ErrInsufficientFunds) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(5), succeeded.Load())
	balance, err := ledger.GetBalance(ctx, "u1", "points")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}
