package bootstrap

import (
	"fmt"

	"github.com/osse101/ChatDispatch_Go/internal/event"
	"github.com/osse101/ChatDispatch_Go/internal/logger"
	"github.com/osse101/ChatDispatch_Go/internal/metrics"
	"github.com/osse101/ChatDispatch_Go/internal/streamerbot"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus event.Bus
	// NATS receives every domain event when set
	NATS event.SubjectPublisher
	// Streamerbot receives slots results and command mutations when set
	Streamerbot streamerbot.ActionRunner
}

// RegisterEventHandlers sets up all event subscribers:
// the metrics collector, the NATS forwarder and the Streamer.bot bridge.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	logger.Info(LogMsgMetricsCollectorRegistered)

	// outbound bridges report their failures to the handler error counter
	bus := metrics.InstrumentBus(deps.EventBus)

	if deps.NATS != nil {
		event.NewNATSForwarder(deps.NATS).Register(bus)
		logger.Info(LogMsgNATSForwarderRegistered)
	}

	if deps.Streamerbot != nil {
		streamerbot.NewSubscriber(deps.Streamerbot, bus).Subscribe()
		logger.Info(LogMsgStreamerbotBridgeRegistered)
	}

	return nil
}
