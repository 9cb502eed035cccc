package main

import (
	"context"
	"fmt"

	"github.com/osse101/ChatDispatch_Go/internal/database"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, down, status)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return usageError("migrate <up|down|status>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	switch args[0] {
	case "up":
		PrintHeader("Applying migrations")
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
	case "down":
		PrintHeader("Rolling back last migration")
		if err := database.Rollback(ctx, pool); err != nil {
			return err
		}
	case "status":
		status, err := database.MigrationStatus(ctx, pool)
		if err != nil {
			return err
		}
		for _, s := range status {
			fmt.Printf("  %-8s %s\n", s.State, s.Source.Path)
		}
	default:
		return fmt.Errorf("unknown subcommand %q: want up, down or status", args[0])
	}

	version, err := database.MigrationVersion(ctx, pool)
	if err != nil {
		return err
	}
	PrintSuccess("Schema version %d", version)
	return nil
}
