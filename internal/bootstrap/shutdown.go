package bootstrap

import (
	"context"

	"github.com/nats-io/nats.go"

	"github.com/osse101/ChatDispatch_Go/internal/logger"
	"github.com/osse101/ChatDispatch_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil members are skipped.
type ShutdownComponents struct {
	Server   *server.Server
	Chat     *ChatComponents
	Dispatch *Dispatch
	Events   *EventSystem
	NATS     *nats.Conn
	Storage  *Storage
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server and chat sources (stop accepting new messages)
// 2. Scheduler and worker pool (finish queued messages)
// 3. Wager engine (wait for spins between debit and credit)
// 4. Event publisher, NATS and the database
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	logger.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			logger.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Chat != nil {
		components.Chat.Stop()
	}

	if d := components.Dispatch; d != nil {
		d.Scheduler.Stop()
		d.Pool.Stop()
		shutdownService(ctx, ServiceNameSlots, d.Slots)
	}

	if events := components.Events; events != nil {
		logger.Info(LogMsgShuttingDownEventPublisher)
		if err := events.Publisher.Shutdown(ctx); err != nil {
			logger.Error(LogMsgResilientPublisherFailed, "error", err)
		}
		if err := events.DeadLetter.Close(); err != nil {
			logger.Error(LogMsgDeadLetterCloseFailed, "error", err)
		}
	}

	if components.NATS != nil {
		if err := components.NATS.Drain(); err != nil {
			logger.Error(LogMsgNATSDrainFailed, "error", err)
		}
	}

	if components.Storage != nil {
		components.Storage.Close()
	}

	logger.Info(LogMsgServerStopped)
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		logger.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
