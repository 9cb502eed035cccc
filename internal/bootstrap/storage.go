package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ChatDispatch_Go/internal/command"
	"github.com/osse101/ChatDispatch_Go/internal/config"
	"github.com/osse101/ChatDispatch_Go/internal/cooldown"
	"github.com/osse101/ChatDispatch_Go/internal/currency"
	"github.com/osse101/ChatDispatch_Go/internal/database"
	"github.com/osse101/ChatDispatch_Go/internal/database/postgres"
	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/logger"
	"github.com/osse101/ChatDispatch_Go/internal/roles"
)

// Storage holds the backends selected by STORAGE_BACKEND
type Storage struct {
	// Pool is nil for the memory backend
	Pool        *pgxpool.Pool
	Commands    command.Store
	Ledger      currency.Ledger
	CustomRoles roles.CustomRoleStore
	Cooldowns   cooldown.Service
	// Teams backs the cached team role lookup
	Teams roles.TeamSource
}

// InitializeStorage builds the storage backends and makes sure the wager
// currency exists in the ledger
func InitializeStorage(ctx context.Context, cfg *config.Config, settings domain.SlotsSettings) (*Storage, error) {
	wagerCurrency := domain.Currency{ID: settings.CurrencyID, Name: settings.CurrencyID}
	teams := roles.NewMemoryRoles()

	if !cfg.UsesPostgres() {
		logger.Info(LogMsgStorageInitialized, "backend", config.StorageMemory)
		return &Storage{
			Commands:    command.NewMemoryStore(),
			Ledger:      currency.NewMemoryLedger(wagerCurrency),
			CustomRoles: teams,
			Cooldowns:   cooldown.NewMemoryStore(),
			Teams:       teams,
		}, nil
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolConfig{
		MaxConns:    cfg.DBMaxConns,
		MaxIdleTime: cfg.DBMaxConnIdleTime,
		MaxLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
	}

	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}

	ledger := postgres.NewLedger(pool)
	if err := ensureCurrency(ctx, ledger, wagerCurrency); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info(LogMsgStorageInitialized, "backend", config.StoragePostgres, "db_host", cfg.DBHost, "db_name", cfg.DBName)
	return &Storage{
		Pool:        pool,
		Commands:    postgres.NewCommandStore(pool),
		Ledger:      ledger,
		CustomRoles: postgres.NewCustomRoles(pool),
		Cooldowns:   cooldown.NewPostgresService(pool),
		Teams:       teams,
	}, nil
}

// ensureCurrency creates the currency on first start and leaves an existing
// one untouched
func ensureCurrency(ctx context.Context, ledger *postgres.Ledger, c domain.Currency) error {
	_, err := ledger.GetCurrency(ctx, c.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrCurrencyMissing) {
		return fmt.Errorf("%s: %w", ErrMsgFailedEnsureCurrency, err)
	}
	if err := ledger.SaveCurrency(ctx, c); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedEnsureCurrency, err)
	}
	logger.Info(LogMsgCurrencyCreated, "currency_id", c.ID)
	return nil
}

// Pinger returns the database health check for /readyz, or nil when there
// is no database
func (s *Storage) Pinger() database.Pool {
	if s.Pool == nil {
		return nil
	}
	return s.Pool
}

// Close releases the database pool
func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}
