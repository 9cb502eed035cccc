package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
)

// CustomRoles implements roles.CustomRoleStore. Membership is keyed by
// lowercased username and applies on every platform.
type CustomRoles struct {
	db *pgxpool.Pool
}

// NewCustomRoles creates a new Postgres-backed custom role store
func NewCustomRoles(db *pgxpool.Pool) *CustomRoles {
	return &CustomRoles{db: db}
}

// CustomRolesFor returns the roles naming username, ordered by role ID
func (r *CustomRoles) CustomRolesFor(ctx context.Context, _ string, username string) ([]domain.Role, error) {
	rows, err := r.db.Query(ctx, sqlCustomRolesFor, strings.ToLower(username))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCustomRolesFailed, err)
	}
	defer rows.Close()

	var out []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf(ErrMsgCustomRolesFailed, err)
		}
		out = append(out, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgCustomRolesFailed, err)
	}
	return out, nil
}

// AddMember puts username into role, creating the role if needed
func (r *CustomRoles) AddMember(ctx context.Context, role domain.Role, username string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer SafeRollback(ctx, tx)

	if _, err := tx.Exec(ctx, sqlUpsertCustomRole, role.ID, role.Name); err != nil {
		return fmt.Errorf(ErrMsgSaveRoleFailed, err)
	}
	if _, err := tx.Exec(ctx, sqlAddRoleMember, role.ID, strings.ToLower(username)); err != nil {
		return fmt.Errorf(ErrMsgSaveRoleFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitFailed, err)
	}
	return nil
}

// RemoveMember takes username out of role
func (r *CustomRoles) RemoveMember(ctx context.Context, roleID, username string) error {
	if _, err := r.db.Exec(ctx, sqlRemoveRoleMember, roleID, strings.ToLower(username)); err != nil {
		return fmt.Errorf(ErrMsgSaveRoleFailed, err)
	}
	return nil
}
