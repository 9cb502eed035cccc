package main

import (
	"context"

	"github.com/osse101/ChatDispatch_Go/internal/database/postgres"
	"github.com/osse101/ChatDispatch_Go/internal/domain"
)

// RoleCommand manages custom role membership used by command restrictions
type RoleCommand struct{}

func (c *RoleCommand) Name() string {
	return "role"
}

func (c *RoleCommand) Description() string {
	return "Manage custom roles (role add <role> <username> | role remove <role> <username> | role list <username>)"
}

func (c *RoleCommand) Run(args []string) error {
	const usage = "role <add|remove> <role> <username> | role list <username>"
	if len(args) < 2 {
		return usageError(usage)
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := postgres.NewCustomRoles(pool)

	switch {
	case args[0] == "list":
		held, err := store.CustomRolesFor(ctx, "", args[1])
		if err != nil {
			return err
		}
		if len(held) == 0 {
			PrintInfo("%s holds no custom roles", args[1])
		}
		for _, r := range held {
			PrintInfo("%s (%s)", r.Name, r.ID)
		}
	case args[0] == "add" && len(args) == 3:
		if err := store.AddMember(ctx, domain.Role{ID: args[1], Name: args[1]}, args[2]); err != nil {
			return err
		}
		PrintSuccess("Added %s to %s", args[2], args[1])
	case args[0] == "remove" && len(args) == 3:
		if err := store.RemoveMember(ctx, args[1], args[2]); err != nil {
			return err
		}
		PrintSuccess("Removed %s from %s", args[2], args[1])
	default:
		return usageError(usage)
	}
	return nil
}
