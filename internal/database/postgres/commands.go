package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ChatDispatch_Go/internal/command"
	"github.com/osse101/ChatDispatch_Go/internal/domain"
)

// CommandStore implements command.Store on the commands table. Triggers are
// keyed by their normalized form; the original spelling is kept for display.
type CommandStore struct {
	db *pgxpool.Pool
}

// NewCommandStore creates a new Postgres-backed command store
func NewCommandStore(db *pgxpool.Pool) *CommandStore {
	return &CommandStore{db: db}
}

// Find returns domain.ErrNotFound when no command has the trigger
func (s *CommandStore) Find(ctx context.Context, trigger string) (*domain.CommandDefinition, error) {
	cmd, err := scanCommand(s.db.QueryRow(ctx, sqlFindCommand, command.NormalizeTrigger(trigger)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf(ErrMsgFindCommandFailed, trigger, err)
	}
	return cmd, nil
}

// Save inserts or replaces the command with the same trigger. The original
// creator and creation time survive a replace.
func (s *CommandStore) Save(ctx context.Context, cmd domain.CommandDefinition) error {
	if cmd.ID == "" {
		cmd.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if cmd.CreatedAt.IsZero() {
		cmd.CreatedAt = now
	}
	if cmd.UpdatedAt.IsZero() {
		cmd.UpdatedAt = now
	}
	if cmd.Permission.Type == "" {
		cmd.Permission = domain.Unrestricted()
	}

	permission, err := encodeColumn("permission", cmd.Permission)
	if err != nil {
		return err
	}
	subCommands, err := encodeColumn("sub_commands", nonNil(cmd.SubCommands))
	if err != nil {
		return err
	}
	effects, err := encodeColumn("effects", nonNil(cmd.Effects))
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, sqlUpsertCommand,
		cmd.ID,
		command.NormalizeTrigger(cmd.Trigger),
		cmd.Trigger,
		cmd.Description,
		cmd.Active,
		cmd.ScanWholeMessage,
		cmd.Cooldown.User,
		cmd.Cooldown.Global,
		permission,
		subCommands,
		effects,
		cmd.CreatedBy,
		cmd.CreatedAt,
		cmd.UpdatedAt,
	)
	if err != nil {
		if hasPgCode(err, pgCodeCheckViolation) {
			return fmt.Errorf(ErrFmtConstraintViolated, domain.ErrValidation, cmd.Trigger)
		}
		return fmt.Errorf(ErrMsgSaveCommandFailed, cmd.Trigger, err)
	}
	return nil
}

// Delete returns domain.ErrNotFound when no command has the trigger
func (s *CommandStore) Delete(ctx context.Context, trigger string) error {
	tag, err := s.db.Exec(ctx, sqlDeleteCommand, command.NormalizeTrigger(trigger))
	if err != nil {
		return fmt.Errorf(ErrMsgDeleteCommandFailed, trigger, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns commands ordered by trigger
func (s *CommandStore) List(ctx context.Context, activeOnly bool) ([]domain.CommandDefinition, error) {
	rows, err := s.db.Query(ctx, sqlListCommands, activeOnly)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListCommandsFailed, err)
	}
	defer rows.Close()

	out := make([]domain.CommandDefinition, 0)
	for rows.Next() {
		cmd, err := scanCommand(rows)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgListCommandsFailed, err)
		}
		out = append(out, *cmd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgListCommandsFailed, err)
	}
	return out, nil
}

func scanCommand(row pgx.Row) (*domain.CommandDefinition, error) {
	var (
		cmd                              domain.CommandDefinition
		id                               uuid.UUID
		permission, subCommands, effects []byte
	)
	err := row.Scan(
		&id,
		&cmd.Trigger,
		&cmd.Description,
		&cmd.Active,
		&cmd.ScanWholeMessage,
		&cmd.Cooldown.User,
		&cmd.Cooldown.Global,
		&permission,
		&subCommands,
		&effects,
		&cmd.CreatedBy,
		&cmd.CreatedAt,
		&cmd.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	cmd.ID = id.String()

	if err := decodeColumn("permission", permission, &cmd.Permission); err != nil {
		return nil, err
	}
	if err := decodeColumn("sub_commands", subCommands, &cmd.SubCommands); err != nil {
		return nil, err
	}
	if err := decodeColumn("effects", effects, &cmd.Effects); err != nil {
		return nil, err
	}
	if len(cmd.SubCommands) == 0 {
		cmd.SubCommands = nil
	}
	if len(cmd.Effects) == 0 {
		cmd.Effects = nil
	}
	return &cmd, nil
}

func encodeColumn(name string, v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgEncodeColumnFailed, name, err)
	}
	return b, nil
}

func decodeColumn(name string, data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf(ErrMsgDecodeColumnFailed, name, err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
