package main

import (
	"context"
	"dashboard/internal/app/consumers"
	"dashboard/internal/app/deps"
	"dashboard/internal/core/domain/logging"
	"os"
	"os/signal"
	"syscall"
)

// Delivers password reset links queued by the HTTP server when it runs
// with NOTIFICATION_TRANSPORT=rabbitmq.
func main() {
	deps, shutdownDeps := deps.InitMailerDeps()
	defer shutdownDeps()

	stopConsumers := consumers.InitConsumers(deps)
	defer stopConsumers()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps.Logger.Info(
		ctx,
		"Mailer has started.",
		logging.Entry("queue", deps.Config.RabbitmqPasswordResetQueue),
	)
	<-ctx.Done()
	deps.Logger.Info(context.Background(), "Mailer is stopping.")
}
