package slots

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/osse101/ChatDispatch_Go/internal/command"
	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/logger"
)

// SpinHandler implements !spin <amount>
type SpinHandler struct {
	svc Service
}

// NewSpinHandler creates the !spin handler
func NewSpinHandler(svc Service) *SpinHandler {
	return &SpinHandler{svc: svc}
}

// Definition is unrestricted; the per-user wait is enforced by the service
func (h *SpinHandler) Definition() domain.CommandDefinition {
	return domain.CommandDefinition{
		ID:          SpinCommandID,
		Trigger:     TriggerSpin,
		Description: "Wager currency on the slot machine.",
		Active:      true,
		Permission:  domain.Unrestricted(),
		SubCommands: []domain.SubCommand{
			{
				ID:          SpinSubCommandID,
				Arg:         SpinAmountRegex,
				Regex:       true,
				Usage:       SpinAmountUsage,
				Description: "Spin the slot machine with the given wager.",
			},
		},
	}
}

// Execute parses the wager and hands it to the service. Rejections the
// service already answered in chat are not errors.
func (h *SpinHandler) Execute(ctx context.Context, inv *command.Invocation) error {
	if inv.SubCommand == nil || len(inv.Args) == 0 {
		inv.Reply(ctx, fmt.Sprintf(ReplyFmtIncorrectUsage, inv.Definition.Trigger))
		return nil
	}

	amount, err := strconv.ParseInt(inv.Args[0], 10, 64)
	if err != nil {
		// digits only, so this is an overflow
		inv.Reply(ctx, fmt.Sprintf(ReplyFmtIncorrectUsage, inv.Definition.Trigger))
		return nil
	}

	_, err = h.svc.Spin(ctx, domain.SpinRequest{User: inv.Message.User, Amount: amount})
	if err == nil || answered(err) {
		return nil
	}
	return err
}

func answered(err error) bool {
	for _, target := range []error{
		domain.ErrConcurrency,
		domain.ErrOnCooldown,
		domain.ErrValidation,
		domain.ErrWagerBounds,
		domain.ErrInsufficientFunds,
		domain.ErrLedger,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// RegisterSpinCommand adds !spin to the registry
func RegisterSpinCommand(ctx context.Context, registry *command.Registry, svc Service) error {
	if err := registry.Register(NewSpinHandler(svc)); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgCommandRegistered, "trigger", TriggerSpin)
	return nil
}

// UnregisterSpinCommand removes !spin from the registry
func UnregisterSpinCommand(registry *command.Registry) bool {
	return registry.Unregister(TriggerSpin)
}
