package main

import (
	"context"
	"dashboard/internal/app"
	"dashboard/internal/app/deps"
	"dashboard/internal/app/services"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dl "dashboard/internal/core/domain/logging"
)

const shutdownTimeout = 20 * time.Second

func main() {
	deps, shutdownDeps := deps.InitDeps()
	defer shutdownDeps()

	server := app.InitHttpServer(deps, services.InitServices(deps))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		deps.Logger.Info(
			ctx,
			"HTTP server has started.",
			dl.Entry("address", server.Addr),
			dl.Entry("isTestMode", deps.Config.IsTestMode),
			dl.Entry("notificationTransport", deps.Config.NotificationTransport),
		)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			dl.Error(context.Background(), deps.Logger, err)
		}
		return
	case <-ctx.Done():
	}

	deps.Logger.Info(context.Background(), "HTTP server is stopping gracefully.")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		dl.Error(shutdownCtx, deps.Logger, err)
		return
	}
	deps.Logger.Info(shutdownCtx, "HTTP server has shut down.")
}
