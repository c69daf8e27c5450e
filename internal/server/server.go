package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jack5341/otel-order-chain/internal/config"
	errorz "github.com/jack5341/otel-order-chain/internal/errors"
)

// Run serves e until SIGINT/SIGTERM or ctx is done, then shuts down within
// the configured timeout.
func Run(ctx context.Context, e *echo.Echo, cfg config.Common, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	srvErrCh := make(chan error, 1)
	go func() { srvErrCh <- e.StartServer(srv) }()

	logger.Info("server initialized", zap.String("addr", srv.Addr))

	shutdownCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-shutdownCtx.Done():
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := e.Shutdown(ctx); err != nil {
			_ = e.Close()
		}
		return nil
	case err := <-srvErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Join(errorz.ErrServerError, err)
		}
		return nil
	}
}
