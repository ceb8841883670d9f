package consumers

import (
	"context"
	"dashboard/internal/app/deps"
	dl "dashboard/internal/core/domain/logging"
	passwordresetlink "dashboard/internal/rabbitmq/consumers/password_reset_link"
)

func initPasswordResetLinkConsumer(deps *deps.Deps) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqPasswordResetQueue
	if err := rabbitmqChannel.DeclareQueue(queue); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not create RabbitMQ queue.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}
	if err := rabbitmqChannel.Qos(10, 0, false); err != nil {
		deps.Logger.Error(context.Background(), "Could not set RabbitMQ prefetch.", dl.Entry("err", err))
		panic(err)
	}

	consumer := passwordresetlink.New(deps.Logger, rabbitmqChannel, queue, deps.EmailSender)
	if err = consumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps) func() {
	shutdownPasswordResetLinkConsumer := initPasswordResetLinkConsumer(deps)

	return func() {
		shutdownPasswordResetLinkConsumer()
	}
}
