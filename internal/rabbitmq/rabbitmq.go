package rabbitmq

import (
	"context"
	e "dashboard/internal/core/domain/errors"
	"dashboard/internal/core/domain/logging"
	"sync"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const reconnectDelay = 3 * time.Second

// Connection keeps an AMQP connection alive, redialing after broker-side closes.
type Connection struct {
	log    logging.Logger
	url    string
	mu     sync.RWMutex
	conn   *amqp.Connection
	closed int32
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	connection := &Connection{log: log, url: url, conn: conn}
	go connection.watch(conn)
	return connection, nil
}

func (c *Connection) current() *amqp.Connection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn
}

func (c *Connection) watch(conn *amqp.Connection) {
	ctx := context.Background()
	for {
		reason, ok := <-conn.NotifyClose(make(chan *amqp.Error, 1))
		if !ok || atomic.LoadInt32(&c.closed) == 1 {
			c.log.Info(ctx, "RabbitMQ connection closed.")
			return
		}
		c.log.Warning(ctx, "RabbitMQ connection lost.", logging.Entry("reason", reason.Error()))

		conn = redial(ctx, c.log, func() (*amqp.Connection, error) { return amqp.Dial(c.url) })
		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()
		c.log.Info(ctx, "RabbitMQ reconnect success.")
	}
}

func (c *Connection) Close() error {
	atomic.StoreInt32(&c.closed, 1)
	return c.current().Close()
}

// Channel opens a channel that is recreated whenever the broker closes it.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.current().Channel()
	if err != nil {
		return nil, err
	}

	channel := &Channel{Channel: ch, log: c.log}
	go func() {
		ctx := context.Background()
		for {
			reason, ok := <-channel.Channel.NotifyClose(make(chan *amqp.Error, 1))
			if !ok || channel.IsClosed() {
				channel.Close()
				return
			}
			c.log.Warning(ctx, "RabbitMQ channel closed.", logging.Entry("reason", reason.Error()))

			channel.Channel = redial(ctx, c.log, func() (*amqp.Channel, error) { return c.current().Channel() })
			c.log.Info(ctx, "RabbitMQ channel recreated.")
		}
	}()

	return channel, nil
}

func redial[T any](ctx context.Context, log logging.Logger, open func() (T, error)) T {
	for {
		time.Sleep(reconnectDelay)
		v, err := open()
		if err == nil {
			return v
		}
		log.Error(ctx, "RabbitMQ reconnect failed.", logging.Entry("err", err))
	}
}

type Channel struct {
	*amqp.Channel
	closed int32
	log    logging.Logger
}

// IsClosed reports whether Close has been called by the application.
func (ch *Channel) IsClosed() bool {
	return atomic.LoadInt32(&ch.closed) == 1
}

func (ch *Channel) Close() error {
	if !atomic.CompareAndSwapInt32(&ch.closed, 0, 1) {
		return amqp.ErrClosed
	}
	return ch.Channel.Close()
}

// DeclareQueue declares a durable queue bound to the default exchange.
func (ch *Channel) DeclareQueue(name string) error {
	_, err := ch.Channel.QueueDeclare(name, true, false, false, false, nil)
	return err
}

// Consume keeps delivering across channel recreations and stops only after Close.
func (ch *Channel) Consume(
	queue, consumer string,
	autoAck, exclusive, noLocal, noWait bool,
	args amqp.Table,
) (<-chan amqp.Delivery, error) {
	deliveries := make(chan amqp.Delivery)

	go func() {
		defer close(deliveries)
		ctx := context.Background()
		for {
			d, err := ch.Channel.Consume(queue, consumer, autoAck, exclusive, noLocal, noWait, args)
			if err != nil {
				ch.log.Error(ctx, "Consume failed.", logging.Entry("err", err), logging.Entry("queue", queue))
				time.Sleep(reconnectDelay)
				if ch.IsClosed() {
					return
				}
				continue
			}

			for msg := range d {
				deliveries <- msg
			}

			// The closed flag is set asynchronously, give it time before checking.
			time.Sleep(reconnectDelay)
			if ch.IsClosed() {
				ch.log.Info(ctx, "Channel is closed, stop consuming.", logging.Entry("queue", queue))
				return
			}
		}
	}()

	return deliveries, nil
}
