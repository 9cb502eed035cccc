package main

import (
	"context"
	"strconv"

	"github.com/osse101/ChatDispatch_Go/internal/database/postgres"
	"github.com/osse101/ChatDispatch_Go/internal/domain"
)

// GrantCommand adjusts a user's balance, creating the currency if needed
type GrantCommand struct{}

func (c *GrantCommand) Name() string {
	return "grant"
}

func (c *GrantCommand) Description() string {
	return "Credit or debit a user's balance (grant <user_id> <currency> <amount>)"
}

func (c *GrantCommand) Run(args []string) error {
	if len(args) != 3 {
		return usageError("grant <user_id> <currency> <amount>")
	}
	userID, currencyID := args[0], args[1]
	amount, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return usageError("grant <user_id> <currency> <amount>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	ledger := postgres.NewLedger(pool)
	if _, err := ledger.GetCurrency(ctx, currencyID); err != nil {
		PrintWarning("Currency %s not found, creating it", currencyID)
		if err := ledger.SaveCurrency(ctx, domain.Currency{ID: currencyID, Name: currencyID}); err != nil {
			return err
		}
	}

	if err := ledger.AdjustBalance(ctx, userID, currencyID, amount); err != nil {
		return err
	}
	balance, err := ledger.GetBalance(ctx, userID, currencyID)
	if err != nil {
		return err
	}
	PrintSuccess("%s now holds %d %s", userID, balance, currencyID)
	return nil
}
