package bootstrap

import (
	"context"
	"fmt"

	"github.com/osse101/ChatDispatch_Go/internal/chat"
	"github.com/osse101/ChatDispatch_Go/internal/command"
	"github.com/osse101/ChatDispatch_Go/internal/config"
	"github.com/osse101/ChatDispatch_Go/internal/cooldown"
	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/event"
	"github.com/osse101/ChatDispatch_Go/internal/logger"
	"github.com/osse101/ChatDispatch_Go/internal/roles"
	"github.com/osse101/ChatDispatch_Go/internal/scheduler"
	"github.com/osse101/ChatDispatch_Go/internal/slots"
	"github.com/osse101/ChatDispatch_Go/internal/utils"
	"github.com/osse101/ChatDispatch_Go/internal/worker"
)

// DispatchDependencies are the inputs of the command pipeline
type DispatchDependencies struct {
	Config   *config.Config
	Settings domain.SlotsSettings
	Storage  *Storage
	Sender   chat.Sender
	Bus      event.Bus
}

// Dispatch is the wired command pipeline: system commands in the registry,
// the gate in front of them and the worker pool feeding the gate
type Dispatch struct {
	Registry   *command.Registry
	Manager    command.Manager
	Slots      slots.Service
	Gate       *command.Gate
	Pool       *worker.Pool
	Dispatcher *worker.Dispatcher
	Scheduler  *scheduler.Scheduler
}

// InitializeDispatch registers the system commands, builds the gate and
// starts the worker pool and the cooldown sweep
func InitializeDispatch(ctx context.Context, deps DispatchDependencies) (*Dispatch, error) {
	cfg := deps.Config
	store := deps.Storage

	resolver := roles.Union(
		roles.PlatformResolver{},
		roles.NewTeamResolver(store.Teams, cfg.RoleCacheSize, cfg.RoleCacheTTL),
		roles.NewCustomResolver(store.CustomRoles),
	)

	registry := command.NewRegistry()
	manager := command.NewManager(store.Commands, registry, deps.Bus)
	if err := registry.Register(command.NewManagementHandler(manager)); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterCommand, err)
	}

	slotsService := slots.NewService(
		store.Ledger,
		resolver,
		slots.NewReelRoller(utils.CryptoIntn, deps.Sender, cfg.SpinDelay),
		deps.Sender,
		store.Cooldowns,
		deps.Bus,
		deps.Settings,
		cfg.LedgerTimeout,
	)
	if err := slots.RegisterSpinCommand(ctx, registry, slotsService); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterCommand, err)
	}

	gate := command.NewGate(registry, store.Commands, store.Cooldowns, resolver, deps.Sender, deps.Bus, cfg.BotIdentity)

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(JobNameCooldownSweep, cfg.SweepInterval, cooldown.SweepJob{Service: store.Cooldowns})

	logger.Info(LogMsgDispatchInitialized,
		"workers", cfg.WorkerCount,
		"queue_size", cfg.WorkerQueueSize,
		"bot_identity", cfg.BotIdentity)

	return &Dispatch{
		Registry:   registry,
		Manager:    manager,
		Slots:      slotsService,
		Gate:       gate,
		Pool:       pool,
		Dispatcher: worker.NewDispatcher(pool, gate),
		Scheduler:  sched,
	}, nil
}

// Submit queues a chat message from a chat source under a fresh request ID.
// A full queue drops the message; the dispatcher logs it.
func (d *Dispatch) Submit(ctx context.Context, msg domain.ChatMessage) {
	ctx = logger.WithRequestID(ctx, logger.GenerateRequestID())
	_ = d.Dispatcher.Submit(ctx, msg)
}
