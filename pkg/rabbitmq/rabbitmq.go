package rabbitmq

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	amqp "github.com/streadway/amqp"
)

// Client holds the RabbitMQ connection and a channel bound to one durable queue.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	log     *logrus.Entry

	// amqp channels are not safe for concurrent publishing.
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
	Log   *logrus.Entry
}

// NewClient connects to RabbitMQ, opens a channel and declares cfg.Queue.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Queue == "" {
		return nil, fmt.Errorf("rabbitmq queue name is required")
	}
	if cfg.Log == nil {
		cfg.Log = logrus.NewEntry(logrus.StandardLogger())
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declare(ch, cfg.Queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	cfg.Log.WithField("queue", cfg.Queue).Info("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
		log:     cfg.Log,
	}, nil
}

func declare(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	return nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish sends a persistent JSON message to the client's queue. eventType
// is carried in the AMQP type property so consumers can route on it.
func (c *Client) Publish(eventType string, body []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         eventType,
			MessageId:    uuid.NewString(),
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}

	c.log.WithField("type", eventType).Debug("published event")
	return nil
}

// ErrReject marks a delivery that can never succeed. Handlers wrap it so the
// message is dropped, or dead-lettered if the queue has a DLX, instead of
// being redelivered.
var ErrReject = errors.New("rejected delivery")

// Consume starts a goroutine delivering messages from the queue to handler.
// A nil error from handler acks the message; an ErrReject is nacked without
// requeue; any other error is requeued.
func (c *Client) Consume(handler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.log.WithField("queue", c.queue).Info("waiting for events")

	go func() {
		for msg := range msgs {
			c.deliver(msg, handler)
		}
	}()

	return nil
}

// deliver runs handler on msg and settles it: ack on success, nack without
// requeue for ErrReject, nack with requeue for any other error.
func (c *Client) deliver(msg amqp.Delivery, handler func(msg amqp.Delivery) error) {
	entry := c.log.WithFields(logrus.Fields{"tag": msg.DeliveryTag, "type": msg.Type})
	err := handler(msg)
	switch {
	case err == nil:
		if ackErr := msg.Ack(false); ackErr != nil {
			entry.WithError(ackErr).Error("error acking message")
		}
	case errors.Is(err, ErrReject):
		entry.WithError(err).Error("rejecting message")
		if nackErr := msg.Nack(false, false); nackErr != nil {
			entry.WithError(nackErr).Error("error nacking message")
		}
	default:
		entry.WithError(err).Warn("error processing message, requeueing")
		if nackErr := msg.Nack(false, true); nackErr != nil {
			entry.WithError(nackErr).Error("error nacking message")
		}
	}
}
