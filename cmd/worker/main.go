package main

import (
	"proryx/internal/app"
	"proryx/internal/config"
	"proryx/internal/shared/apperror"

	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("failed to load config", zap.Error(err))
	}

	if err := app.RunWorker(cfg); err != nil {
		zap.L().Fatal("worker exited with error", zap.Error(err))
	}
}
