package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/logger"
)

// Ledger implements currency.Ledger on the currencies and balances tables.
// Debits are a single conditional UPDATE so concurrent spins can never
// drive a balance negative.
type Ledger struct {
	db *pgxpool.Pool
}

// NewLedger creates a new Postgres-backed ledger
func NewLedger(db *pgxpool.Pool) *Ledger {
	return &Ledger{db: db}
}

// GetBalance returns zero for users that never held the currency
func (l *Ledger) GetBalance(ctx context.Context, userID, currencyID string) (int64, error) {
	var balance int64
	err := l.db.QueryRow(ctx, sqlGetBalance, userID, currencyID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf(ErrFmtCurrencyMissing, domain.ErrCurrencyMissing, currencyID)
		}
		return 0, fmt.Errorf(ErrMsgGetBalanceFailed, err)
	}
	return balance, nil
}

// AdjustBalance applies a signed delta. A debit larger than the balance
// fails with domain.ErrInsufficientFunds and changes nothing.
func (l *Ledger) AdjustBalance(ctx context.Context, userID, currencyID string, delta int64) error {
	if delta < 0 {
		tag, err := l.db.Exec(ctx, sqlDebitBalance, userID, currencyID, -delta)
		if err != nil {
			return fmt.Errorf(ErrMsgAdjustBalanceFailed, err)
		}
		if tag.RowsAffected() == 0 {
			if _, err := l.GetCurrency(ctx, currencyID); err != nil {
				return err
			}
			return fmt.Errorf(ErrFmtInsufficientFunds, domain.ErrInsufficientFunds, userID, currencyID, -delta)
		}
	} else {
		if _, err := l.db.Exec(ctx, sqlCreditBalance, userID, currencyID, delta); err != nil {
			if hasPgCode(err, pgCodeForeignKeyViolation) {
				return fmt.Errorf(ErrFmtCurrencyMissing, domain.ErrCurrencyMissing, currencyID)
			}
			return fmt.Errorf(ErrMsgAdjustBalanceFailed, err)
		}
	}

	logger.FromContext(ctx).Debug(LogMsgBalanceChanged, "user_id", userID, "currency_id", currencyID, "delta", delta)
	return nil
}

// GetCurrency looks up a currency definition
func (l *Ledger) GetCurrency(ctx context.Context, currencyID string) (domain.Currency, error) {
	var c domain.Currency
	err := l.db.QueryRow(ctx, sqlGetCurrency, currencyID).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Currency{}, fmt.Errorf(ErrFmtCurrencyMissing, domain.ErrCurrencyMissing, currencyID)
		}
		return domain.Currency{}, fmt.Errorf(ErrMsgGetCurrencyFailed, err)
	}
	return c, nil
}

// SaveCurrency creates the currency or renames it
func (l *Ledger) SaveCurrency(ctx context.Context, c domain.Currency) error {
	if _, err := l.db.Exec(ctx, sqlUpsertCurrency, c.ID, c.Name); err != nil {
		return fmt.Errorf(ErrMsgSaveCurrencyFailed, err)
	}
	return nil
}
