package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/ChatDispatch_Go/internal/bootstrap"
	"github.com/osse101/ChatDispatch_Go/internal/config"
	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/event"
	"github.com/osse101/ChatDispatch_Go/internal/logger"
	"github.com/osse101/ChatDispatch_Go/internal/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		initLogger(cfg)
		logger.Warn("Session log file unavailable, logging to stdout only", "error", err)
	} else {
		defer logFile.Close()
	}

	if warnings, err := config.ValidateEnvWithWarnings(); err != nil {
		logger.Warn("Environment validation failed", "error", err)
	} else {
		for _, w := range warnings {
			logger.Warn(w)
		}
	}

	if err := run(cfg); err != nil {
		logger.Error("Chat dispatcher failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings, err := config.LoadSlotsSettings(cfg.SlotsConfigPath)
	if err != nil {
		return err
	}

	components := bootstrap.ShutdownComponents{}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		bootstrap.GracefulShutdown(shutdownCtx, components)
	}()

	storage, err := bootstrap.InitializeStorage(ctx, cfg, settings)
	if err != nil {
		return err
	}
	components.Storage = storage

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}
	components.Events = events

	// chat sources start only after dispatch exists
	var dispatch *bootstrap.Dispatch
	chatComponents, err := bootstrap.InitializeChat(cfg, func(ctx context.Context, msg domain.ChatMessage) {
		dispatch.Submit(ctx, msg)
	})
	if err != nil {
		return err
	}
	components.Chat = chatComponents

	dispatch, err = bootstrap.InitializeDispatch(ctx, bootstrap.DispatchDependencies{
		Config:   cfg,
		Settings: settings,
		Storage:  storage,
		Sender:   chatComponents.Router,
		Bus:      events.Publisher,
	})
	if err != nil {
		return err
	}
	components.Dispatch = dispatch

	handlerDeps := bootstrap.EventHandlerDependencies{EventBus: events.Bus}
	if cfg.NATSURL != "" {
		nc, err := event.ConnectNATS(cfg.NATSURL)
		if err != nil {
			return err
		}
		components.NATS = nc
		handlerDeps.NATS = nc
	}
	if chatComponents.Streamerbot != nil {
		handlerDeps.Streamerbot = chatComponents.Streamerbot
	}
	if err := bootstrap.RegisterEventHandlers(handlerDeps); err != nil {
		return err
	}

	if err := chatComponents.Start(ctx); err != nil {
		return err
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, server.Dependencies{
		DB:             storage.Pinger(),
		Messages:       dispatch.Dispatcher,
		Commands:       storage.Commands,
		SystemCommands: dispatch.Registry,
		Slots:          dispatch.Slots,
	})
	components.Server = srv

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
		return nil
	case err := <-serverErr:
		return err
	}
}
