package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"restaurant-booking/internal/pkg/config"
	"restaurant-booking/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends notification jobs to a durable topic exchange. The routing
// key is the notification kind; the recipient travels in the "topic" header.
// A broken connection is redialled on the next publish.
type Publisher struct {
	url      string
	exchange string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(cfg config.AMQPConfig) *Publisher {
	return &Publisher{
		url:      cfg.URL,
		exchange: cfg.Exchange,
	}
}

func (p *Publisher) Publish(ctx context.Context, job shared.NotificationJob) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    job.ID.String(),
		Timestamp:    time.Now().UTC(),
		Type:         job.Kind,
		Headers:      amqp.Table{"topic": job.Topic},
		Body:         job.Payload,
	}
	if err := ch.PublishWithContext(ctx, p.exchange, job.Kind, false, false, msg); err != nil {
		p.reset()
		return fmt.Errorf("publish %s: %w", job.Kind, err)
	}
	return nil
}

// channel returns an open channel, dialling when needed. Callers hold p.mu.
func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() && p.conn != nil && !p.conn.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp exchange declare %s: %w", p.exchange, err)
	}

	slog.Info("connected to message broker", "exchange", p.exchange)
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}
