package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/event"
	"github.com/osse101/ChatDispatch_Go/internal/logger"
)

// Manager edits custom commands
type Manager interface {
	// Add creates a command answering with body. Fails with domain.ErrConflict
	// when the trigger is already used by a custom or system command.
	Add(ctx context.Context, trigger, body, createdBy string) (*domain.CommandDefinition, error)

	// SetResponse replaces the sole chat reply, or appends one if none exists.
	// Fails with domain.ErrAmbiguousEdit when there are several.
	SetResponse(ctx context.Context, trigger, body, changedBy string) (*domain.CommandDefinition, error)

	// SetCooldown parses both windows as integer seconds, clamping negatives to zero
	SetCooldown(ctx context.Context, trigger, globalArg, userArg, changedBy string) (*domain.CommandDefinition, error)

	// SetRestriction maps permArg through MapPermission
	SetRestriction(ctx context.Context, trigger, permArg, changedBy string) (*domain.CommandDefinition, error)

	// Remove deletes the command
	Remove(ctx context.Context, trigger, changedBy string) error

	// List returns the active custom commands
	List(ctx context.Context) ([]domain.CommandDefinition, error)
}

// ReservedChecker reports triggers owned by system commands
type ReservedChecker interface {
	IsReserved(trigger string) bool
}

type manager struct {
	store    Store
	reserved ReservedChecker
	bus      event.Bus
	now      func() time.Time

	// serializes read-modify-write cycles against the store
	mu sync.Mutex
}

// NewManager creates a Manager. reserved and bus may be nil.
func NewManager(store Store, reserved ReservedChecker, bus event.Bus) Manager {
	return &manager{
		store:    store,
		reserved: reserved,
		bus:      bus,
		now:      time.Now,
	}
}

func (m *manager) Add(ctx context.Context, trigger, body, createdBy string) (*domain.CommandDefinition, error) {
	trigger = strings.TrimSpace(trigger)
	if trigger == "" {
		return nil, fmt.Errorf(ErrFmtWithDetail, domain.ErrValidation, domain.ErrMsgEmptyTrigger)
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf(ErrFmtWithDetail, domain.ErrValidation, domain.ErrMsgEmptyMessage)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.reserved != nil && m.reserved.IsReserved(trigger) {
		return nil, fmt.Errorf(ErrMsgTriggerReserved, domain.ErrConflict, trigger)
	}
	_, err := m.store.Find(ctx, trigger)
	switch {
	case err == nil:
		return nil, fmt.Errorf(ErrFmtWithDetail, domain.ErrConflict, trigger)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf(ErrMsgFindCommandFailed, err)
	}

	now := m.now().UTC()
	cmd := domain.CommandDefinition{
		ID:               uuid.NewString(),
		Trigger:          trigger,
		Active:           true,
		ScanWholeMessage: !strings.HasPrefix(trigger, domain.CommandPrefix),
		Permission:       domain.Unrestricted(),
		Effects: []domain.Effect{
			{ID: uuid.NewString(), Type: domain.EffectTypeChat, Message: body},
		},
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := m.store.Save(ctx, cmd); err != nil {
		return nil, fmt.Errorf(ErrMsgSaveCommandFailed, err)
	}
	m.published(ctx, trigger, domain.MutationAdd, createdBy)
	return &cmd, nil
}

func (m *manager) SetResponse(ctx context.Context, trigger, body, changedBy string) (*domain.CommandDefinition, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf(ErrFmtWithDetail, domain.ErrValidation, domain.ErrMsgEmptyMessage)
	}

	return m.edit(ctx, trigger, domain.MutationResponse, changedBy, func(cmd *domain.CommandDefinition) error {
		switch n := cmd.ChatEffectCount(); {
		case n > 1:
			return fmt.Errorf(ErrMsgAmbiguousEditFmt, domain.ErrAmbiguousEdit, cmd.Trigger, n)
		case n == 1:
			for i := range cmd.Effects {
				if cmd.Effects[i].Type == domain.EffectTypeChat {
					cmd.Effects[i].Message = body
				}
			}
		default:
			cmd.Effects = append(cmd.Effects, domain.Effect{
				ID:      uuid.NewString(),
				Type:    domain.EffectTypeChat,
				Message: body,
			})
		}
		return nil
	})
}

func (m *manager) SetCooldown(ctx context.Context, trigger, globalArg, userArg, changedBy string) (*domain.CommandDefinition, error) {
	global, err := parseCooldown("global", globalArg)
	if err != nil {
		return nil, err
	}
	user, err := parseCooldown("user", userArg)
	if err != nil {
		return nil, err
	}

	return m.edit(ctx, trigger, domain.MutationCooldown, changedBy, func(cmd *domain.CommandDefinition) error {
		cmd.Cooldown = domain.Cooldown{User: user, Global: global}
		return nil
	})
}

func (m *manager) SetRestriction(ctx context.Context, trigger, permArg, changedBy string) (*domain.CommandDefinition, error) {
	perm, err := MapPermission(permArg)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgRestrictionInvalid, domain.ErrValidation, err)
	}

	return m.edit(ctx, trigger, domain.MutationRestriction, changedBy, func(cmd *domain.CommandDefinition) error {
		cmd.Permission = perm
		return nil
	})
}

func (m *manager) Remove(ctx context.Context, trigger, changedBy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.findActive(ctx, trigger); err != nil {
		return err
	}
	if err := m.store.Delete(ctx, trigger); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf(ErrFmtWithDetail, domain.ErrNotFound, trigger)
		}
		return fmt.Errorf(ErrMsgDeleteCommandFailed, err)
	}
	m.published(ctx, trigger, domain.MutationRemove, changedBy)
	return nil
}

func (m *manager) List(ctx context.Context) ([]domain.CommandDefinition, error) {
	cmds, err := m.store.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListCommandsFailed, err)
	}
	return cmds, nil
}

// edit loads an active command, applies fn and saves the result
func (m *manager) edit(ctx context.Context, trigger, mutation, changedBy string, fn func(*domain.CommandDefinition) error) (*domain.CommandDefinition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd, err := m.findActive(ctx, trigger)
	if err != nil {
		return nil, err
	}
	if err := fn(cmd); err != nil {
		return nil, err
	}
	cmd.UpdatedAt = m.now().UTC()

	if err := m.store.Save(ctx, *cmd); err != nil {
		return nil, fmt.Errorf(ErrMsgSaveCommandFailed, err)
	}
	m.published(ctx, cmd.Trigger, mutation, changedBy)
	return cmd, nil
}

// findActive treats inactive commands as absent
func (m *manager) findActive(ctx context.Context, trigger string) (*domain.CommandDefinition, error) {
	cmd, err := m.store.Find(ctx, trigger)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf(ErrFmtWithDetail, domain.ErrNotFound, trigger)
		}
		return nil, fmt.Errorf(ErrMsgFindCommandFailed, err)
	}
	if !cmd.Active {
		return nil, fmt.Errorf(ErrFmtWithDetail, domain.ErrNotFound, trigger)
	}
	return cmd, nil
}

func (m *manager) published(ctx context.Context, trigger, mutation, changedBy string) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCommandMutated, "trigger", trigger, "mutation", mutation, "changed_by", changedBy)

	if m.bus == nil {
		return
	}
	if err := m.bus.Publish(ctx, event.NewCommandMutatedEvent(trigger, mutation, changedBy)); err != nil {
		log.Warn(LogMsgEventPublishFailed, "error", err)
	}
}

// parseCooldown reads whole seconds; negatives clamp to zero
func parseCooldown(field, arg string) (int, error) {
	secs, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf(ErrMsgCooldownNotInteger, domain.ErrValidation, field, arg)
	}
	if secs < 0 {
		secs = 0
	}
	return secs, nil
}
