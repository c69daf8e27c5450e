package main

import (
	"context"
	"errors"
	"os"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jack5341/otel-order-chain/internal/config"
	errorz "github.com/jack5341/otel-order-chain/internal/errors"
	httpserver "github.com/jack5341/otel-order-chain/internal/http"
	"github.com/jack5341/otel-order-chain/internal/logging"
	"github.com/jack5341/otel-order-chain/internal/server"
	"github.com/jack5341/otel-order-chain/internal/telemetry"
)

func main() {
	cfg, err := config.LoadPaymentService()
	if err != nil {
		panic(errors.Join(errorz.ErrConfigNotFound, err))
	}

	logger, err := logging.New(cfg.LogLevel, cfg.ServiceName)
	if err != nil {
		panic(errors.Join(errorz.ErrInvalidConfig, err))
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.Duration("min_delay", cfg.MinDelay),
		zap.Duration("max_delay", cfg.MaxDelay),
	)

	ctx := context.Background()
	tp, otelShutdown, err := telemetry.Configure(ctx, cfg.ServiceName, cfg.CollectorEndpoint, logger)
	if err != nil {
		panic(errors.Join(errorz.ErrErrorWileStartingOTel, err))
	}

	e := echo.New()
	httpserver.RegisterPaymentService(e, tp, cfg, logger)

	runErr := server.Run(ctx, e, cfg.Common, logger)

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := otelShutdown(shutdownCtx); err != nil {
		logger.Error("tracer shutdown", zap.Error(errors.Join(errorz.ErrErrorWileStoppingOTel, err)))
	}

	if runErr != nil {
		logger.Error("server stopped", zap.Error(runErr))
		_ = logger.Sync()
		os.Exit(1)
	}
}
