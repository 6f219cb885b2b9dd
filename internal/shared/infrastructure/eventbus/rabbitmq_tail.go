package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// TaskEventsBinding matches every routing key a task publishes.
const TaskEventsBinding = "checklist.task.*"

// RabbitMQTail reads task events from a private queue bound to the task
// exchange. The queue is exclusive and goes away with the connection, so a
// tail only sees events published while it runs.
type RabbitMQTail struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	queue  string
	logger *slog.Logger
}

// NewRabbitMQTail connects, declares the exchange and binds a fresh queue.
func NewRabbitMQTail(url string, logger *slog.Logger) (*RabbitMQTail, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	queue, err := declareTailQueue(ch)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	logger.Debug("tailing task events", "queue", queue, "binding", TaskEventsBinding)
	return &RabbitMQTail{conn: conn, ch: ch, queue: queue, logger: logger}, nil
}

func declareTailQueue(ch *amqp.Channel) (string, error) {
	// Same declaration as the publisher so the tail can start first.
	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		return "", fmt.Errorf("failed to declare exchange: %w", err)
	}
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return "", fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, TaskEventsBinding, ExchangeName, false, nil); err != nil {
		return "", fmt.Errorf("failed to bind queue: %w", err)
	}
	return q.Name, nil
}

// Run hands each event to handle until ctx is done or the broker closes the
// channel. Undecodable messages are logged and skipped.
func (t *RabbitMQTail) Run(ctx context.Context, handle func(context.Context, *Envelope) error) error {
	msgs, err := t.ch.Consume(t.queue, "", true, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return errors.New("RabbitMQ closed the event stream")
			}
			event, err := DecodeDelivery(msg.Body, msg.RoutingKey)
			if err != nil {
				t.logger.Warn("skipping undecodable event", "routing_key", msg.RoutingKey, "error", err)
				continue
			}
			if err := handle(ctx, event); err != nil {
				return err
			}
		}
	}
}

// DecodeDelivery parses a message body published by RabbitMQPublisher. The
// AMQP routing key fills in an envelope that lacks one.
func DecodeDelivery(body []byte, routingKey string) (*Envelope, error) {
	var event Envelope
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if event.RoutingKey == "" {
		event.RoutingKey = routingKey
	}
	return &event, nil
}

// Close closes the channel and the connection.
func (t *RabbitMQTail) Close() error {
	if err := t.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		t.logger.Warn("error closing channel", "error", err)
	}
	return t.conn.Close()
}
