package streamerbot

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/event"
	"github.com/osse101/ChatDispatch_Go/internal/logger"
)

// Subscriber bridges internal events to Streamer.bot DoAction commands so
// overlays and alerts can react to spins and command edits
type Subscriber struct {
	runner ActionRunner
	bus    event.Bus
}

// NewSubscriber creates a new Streamer.bot event subscriber
func NewSubscriber(runner ActionRunner, bus event.Bus) *Subscriber {
	return &Subscriber{
		runner: runner,
		bus:    bus,
	}
}

// Subscribe registers handlers for relevant event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.SlotsCompleted, s.handleSlotsCompleted)
	s.bus.Subscribe(event.CommandMutated, s.handleCommandMutated)

	slog.Info(LogMsgSubscriberReady,
		"types", []string{string(event.SlotsCompleted), string(event.CommandMutated)})
}

func (s *Subscriber) handleSlotsCompleted(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.SlotsCompletedPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgBadPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	s.forward(ctx, evt.Type, ActionSlotsResult, map[string]string{
		"user_id":          p.UserID,
		"username":         p.Username,
		"wager":            strconv.FormatInt(p.Wager, 10),
		"success_chance":   strconv.Itoa(p.SuccessChance),
		"successful_rolls": strconv.Itoa(p.SuccessfulRolls),
		"winnings":         strconv.FormatInt(p.Winnings, 10),
		"currency_id":      p.CurrencyID,
	})
	return nil
}

func (s *Subscriber) handleCommandMutated(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.CommandMutatedPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgBadPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	s.forward(ctx, evt.Type, ActionCommandMutated, map[string]string{
		"trigger":    p.Trigger,
		"mutation":   p.Mutation,
		"changed_by": p.ChangedBy,
	})
	return nil
}

// forward never fails the publish: Streamer.bot being offline is expected
func (s *Subscriber) forward(ctx context.Context, t event.Type, actionName string, args map[string]string) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgEventReceived, "event_type", t, "action", actionName)
	if err := s.runner.DoAction(ctx, actionName, args); err != nil {
		log.Debug(LogMsgActionFailed, "action", actionName, "error", err)
	}
}
