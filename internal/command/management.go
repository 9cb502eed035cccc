package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/logger"
)

// ManagementHandler implements !command, which edits custom commands from chat
type ManagementHandler struct {
	manager Manager
}

// NewManagementHandler creates the !command handler
func NewManagementHandler(manager Manager) *ManagementHandler {
	return &ManagementHandler{manager: manager}
}

// Definition restricts !command to channel editors and the streamer
func (h *ManagementHandler) Definition() domain.CommandDefinition {
	return domain.CommandDefinition{
		ID:          CommandManagementID,
		Trigger:     TriggerCommandManagement,
		Description: "Allows custom command management via chat.",
		Active:      true,
		Permission: domain.Permission{
			Type:   domain.PermissionGroup,
			Groups: []string{domain.GroupChannelEditors, domain.GroupStreamer},
		},
		SubCommands: []domain.SubCommand{
			{Arg: SubAdd, Usage: UsageAdd, Description: "Adds a new command with a given response message."},
			{Arg: SubResponse, Usage: UsageResponse, Description: "Updates the response message for a command. Only works for commands that have 1 or less chat effects."},
			{Arg: SubCooldown, Usage: UsageCooldown, Description: "Change the cooldown for a command."},
			{Arg: SubRestrict, Usage: UsageRestrict, Description: "Update permissions for a command."},
			{Arg: SubRemove, Usage: UsageRemove, Description: "Removes the given command."},
		},
	}
}

// Execute runs the selected subcommand. User mistakes are answered in chat
// and reported as success; only store failures surface as errors.
func (h *ManagementHandler) Execute(ctx context.Context, inv *Invocation) error {
	usage := UsageAny
	if inv.SubCommand != nil {
		usage = inv.SubCommand.Usage
	}
	invalid := func() error {
		inv.Whisper(ctx, fmt.Sprintf(ReplyFmtInvalidUsage, inv.Definition.Trigger, usage))
		return nil
	}

	if inv.SubCommand == nil || len(inv.Args) < 2 {
		return invalid()
	}

	parsed, err := SeparateTriggerFromArgs(inv.Args)
	if err != nil {
		return invalid()
	}
	trigger, data := parsed.Trigger, parsed.RemainingData
	changedBy := inv.Message.User.Username

	switch inv.SubCommand.Arg {
	case SubAdd:
		if data == "" {
			return invalid()
		}
		if _, err := h.manager.Add(ctx, trigger, data, changedBy); err != nil {
			return h.fail(ctx, inv, trigger, err)
		}
		inv.Reply(ctx, fmt.Sprintf(ReplyFmtAdded, trigger, data))

	case SubResponse:
		if data == "" {
			return invalid()
		}
		if _, err := h.manager.SetResponse(ctx, trigger, data, changedBy); err != nil {
			return h.fail(ctx, inv, trigger, err)
		}
		inv.Reply(ctx, fmt.Sprintf(ReplyFmtResponseUpdated, trigger, data))

	case SubCooldown:
		fields := strings.Fields(data)
		if len(fields) < 2 {
			return invalid()
		}
		cmd, err := h.manager.SetCooldown(ctx, trigger, fields[0], fields[1], changedBy)
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				return invalid()
			}
			return h.fail(ctx, inv, trigger, err)
		}
		inv.Reply(ctx, fmt.Sprintf(ReplyFmtCooldownUpdated, trigger, cmd.Cooldown.User, cmd.Cooldown.Global))

	case SubRestrict:
		if data == "" {
			return invalid()
		}
		if _, err := h.manager.SetRestriction(ctx, trigger, data, changedBy); err != nil {
			if errors.Is(err, domain.ErrInvalidPermission) {
				inv.Whisper(ctx, ReplyInvalidGroup)
				return nil
			}
			return h.fail(ctx, inv, trigger, err)
		}
		inv.Reply(ctx, fmt.Sprintf(ReplyFmtRestricted, trigger, data))

	case SubRemove:
		if err := h.manager.Remove(ctx, trigger, changedBy); err != nil {
			return h.fail(ctx, inv, trigger, err)
		}
		inv.Reply(ctx, fmt.Sprintf(ReplyFmtRemoved, trigger))
	}
	return nil
}

// fail answers known mutation errors and passes the rest up
func (h *ManagementHandler) fail(ctx context.Context, inv *Invocation, trigger string, err error) error {
	switch {
	case errors.Is(err, domain.ErrConflict):
		inv.Whisper(ctx, fmt.Sprintf(ReplyFmtTriggerTaken, trigger))
	case errors.Is(err, domain.ErrNotFound):
		inv.Whisper(ctx, fmt.Sprintf(ReplyFmtNotFound, trigger))
	case errors.Is(err, domain.ErrAmbiguousEdit):
		inv.Whisper(ctx, fmt.Sprintf(ReplyFmtAmbiguousEdit, trigger))
	default:
		logger.FromContext(ctx).Error(LogMsgExecuteFailed, "trigger", trigger, "error", err)
		return err
	}
	return nil
}
