package currency

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
)

// Ledger holds per-user balances for one or more currencies.
// AdjustBalance applies a signed delta; a debit that would take the
// balance below zero fails with domain.ErrInsufficientFunds.
type Ledger interface {
	GetBalance(ctx context.Context, userID, currencyID string) (int64, error)
	AdjustBalance(ctx context.Context, userID, currencyID string, delta int64) error
	GetCurrency(ctx context.Context, currencyID string) (domain.Currency, error)
}

// MemoryLedger is an in-process Ledger
type MemoryLedger struct {
	mu         sync.Mutex
	currencies map[string]domain.Currency
	balances   map[string]int64
}

// NewMemoryLedger creates a ledger knowing the given currencies
func NewMemoryLedger(currencies ...domain.Currency) *MemoryLedger {
	l := &MemoryLedger{
		currencies: make(map[string]domain.Currency),
		balances:   make(map[string]int64),
	}
	for _, c := range currencies {
		l.currencies[c.ID] = c
	}
	return l
}

func balanceKey(userID, currencyID string) string {
	return currencyID + ":" + userID
}

// GetBalance returns the balance, zero for unknown users
func (l *MemoryLedger) GetBalance(_ context.Context, userID, currencyID string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.currencies[currencyID]; !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrCurrencyMissing, currencyID)
	}
	return l.balances[balanceKey(userID, currencyID)], nil
}

// AdjustBalance applies delta atomically
func (l *MemoryLedger) AdjustBalance(_ context.Context, userID, currencyID string, delta int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.currencies[currencyID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrCurrencyMissing, currencyID)
	}
	key := balanceKey(userID, currencyID)
	next := l.balances[key] + delta
	if next < 0 {
		return fmt.Errorf("%w: balance %d, delta %d", domain.ErrInsufficientFunds, l.balances[key], delta)
	}
	l.balances[key] = next
	return nil
}

// GetCurrency looks up a currency definition
func (l *MemoryLedger) GetCurrency(_ context.Context, currencyID string) (domain.Currency, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.currencies[currencyID]
	if !ok {
		return domain.Currency{}, fmt.Errorf("%w: %s", domain.ErrCurrencyMissing, currencyID)
	}
	return c, nil
}
