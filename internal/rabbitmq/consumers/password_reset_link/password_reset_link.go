package passwordresetlink

import (
	"context"
	"dashboard/internal/core/domain/common"
	e "dashboard/internal/core/domain/errors"
	"dashboard/internal/core/domain/logging"
	"dashboard/internal/core/domain/user"
	"dashboard/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type deliverySource interface {
	Consume(
		queue, consumer string,
		autoAck, exclusive, noLocal, noWait bool,
		args amqp091.Table,
	) (<-chan amqp091.Delivery, error)
}

// Consumer delivers queued reset links with the wrapped sender.
type Consumer struct {
	log     logging.Logger
	channel deliverySource
	queue   string
	sender  user.PasswordResetLinkSender
}

func New(
	log logging.Logger,
	channel deliverySource,
	queue string,
	sender user.PasswordResetLinkSender,
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}

	return &Consumer{log: log, channel: channel, queue: queue, sender: sender}
}

// Consume handles deliveries in the background until the channel is closed.
func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			c.handle(context.Background(), delivery)
		}
	}()
	return nil
}

func (c *Consumer) handle(ctx context.Context, delivery amqp091.Delivery) {
	message := &schema.PasswordResetLink{}
	if err := message.Unmarshal(delivery.Body); err != nil {
		c.log.Error(
			ctx,
			"Could not unmarshal password reset link message.",
			logging.Entry("err", err),
			logging.Entry("deliveryTag", delivery.DeliveryTag),
		)
		c.ack(ctx, delivery)
		return
	}

	err := c.sender.SendPasswordResetLink(ctx, common.Email(message.Email), user.PasswordResetLink(message.Link))
	if err != nil {
		c.log.Error(
			ctx,
			"Could not send password reset link.",
			logging.Entry("deliveryTag", delivery.DeliveryTag),
			logging.Entry("err", err),
		)
		c.reject(ctx, delivery)
		return
	}

	c.log.Info(ctx, "Password reset link has been sent.", logging.Entry("deliveryTag", delivery.DeliveryTag))
	c.ack(ctx, delivery)
}

func (c *Consumer) ack(ctx context.Context, delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(ctx, "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}

// reject drops the message, a user who got no email can request a new link.
func (c *Consumer) reject(ctx context.Context, delivery amqp091.Delivery) {
	if err := delivery.Nack(false, false); err != nil {
		c.log.Error(ctx, "Could not NACK AMQP message.", logging.Entry("err", err))
	}
}
