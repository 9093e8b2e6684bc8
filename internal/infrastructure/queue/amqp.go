package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/seatech/storefront-api/internal/core/domain"
)

// Exchange is the topic exchange order events are published to. The routing
// key is the event type, e.g. "order.delivered".
const Exchange = "orders"

// AMQPPublisher publishes order events as persistent JSON messages.
type AMQPPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	mu   sync.Mutex // amqp channels are not safe for concurrent publishing
}

// DialAMQP connects to the broker and declares the durable exchange.
func DialAMQP(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		Exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // autoDelete
		false,    // internal
		false,    // noWait
		nil,      // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp exchange declare: %w", err)
	}

	return &AMQPPublisher{conn: conn, ch: ch}, nil
}

// Publish sends event with its type as routing key.
func (p *AMQPPublisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Type:         string(event.Type),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.PublishWithContext(ctx, Exchange, string(event.Type), false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

// Ping reports whether the broker connection is still open.
func (p *AMQPPublisher) Ping(context.Context) error {
	if p.conn.IsClosed() {
		return amqp.ErrClosed
	}
	return nil
}

// Close closes the channel and then the connection.
func (p *AMQPPublisher) Close() error {
	chErr := p.ch.Close()
	connErr := p.conn.Close()
	if chErr != nil {
		return chErr
	}
	return connErr
}
