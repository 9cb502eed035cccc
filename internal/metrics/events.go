package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/event"
	"github.com/osse101/ChatDispatch_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.AllTypes() {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.CommandExecuted:
		var p domain.CommandExecutedPayload
		if p, err = event.DecodePayload[domain.CommandExecutedPayload](evt.Payload); err == nil {
			CommandsExecuted.WithLabelValues(p.Trigger, strconv.FormatBool(p.System)).Inc()
		}

	case event.CommandRejected:
		var p domain.CommandRejectedPayload
		if p, err = event.DecodePayload[domain.CommandRejectedPayload](evt.Payload); err == nil {
			CommandsRejected.WithLabelValues(p.Trigger, p.Reason).Inc()
		}

	case event.CommandMutated:
		var p domain.CommandMutatedPayload
		if p, err = event.DecodePayload[domain.CommandMutatedPayload](evt.Payload); err == nil {
			CommandsMutated.WithLabelValues(p.Mutation).Inc()
		}

	case event.SlotsCompleted:
		var p domain.SlotsCompletedPayload
		if p, err = event.DecodePayload[domain.SlotsCompletedPayload](evt.Payload); err == nil {
			SpinsCompleted.Inc()
			AmountWagered.Add(float64(p.Wager))
			AmountWon.Add(float64(p.Winnings))
			ReelHits.Observe(float64(p.SuccessfulRolls))
		}

	case event.SlotsAborted:
		var p domain.SlotsAbortedPayload
		if p, err = event.DecodePayload[domain.SlotsAbortedPayload](evt.Payload); err == nil {
			SpinsAborted.WithLabelValues(p.Stage).Inc()
		}
	}

	if err != nil {
		log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}
	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// RecordMessage counts a chat message handled by the gate
func RecordMessage(platform string, matched bool) {
	MessagesHandled.WithLabelValues(platform, strconv.FormatBool(matched)).Inc()
}

// countingBus counts handler failures per event type for the handlers
// subscribed through it
type countingBus struct {
	event.Bus
}

// InstrumentBus wraps bus so handlers subscribed through the result report
// their failures to EventHandlerErrors
func InstrumentBus(bus event.Bus) event.Bus {
	return countingBus{Bus: bus}
}

func (b countingBus) Subscribe(eventType event.Type, handler event.Handler) {
	b.Bus.Subscribe(eventType, func(ctx context.Context, evt event.Event) error {
		err := handler(ctx, evt)
		if err != nil {
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		}
		return err
	})
}
