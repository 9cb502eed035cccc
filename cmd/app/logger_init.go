package main

import (
	"github.com/osse101/ChatDispatch_Go/internal/bootstrap"
	"github.com/osse101/ChatDispatch_Go/internal/config"
	"github.com/osse101/ChatDispatch_Go/internal/logger"
)

// initLogger logs to stdout only, used when the session log file cannot be
// opened
func initLogger(cfg *config.Config) {
	logger.InitLogger(bootstrap.LoggerConfig(cfg))
}
