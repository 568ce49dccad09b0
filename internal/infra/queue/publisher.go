package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nsbdesign/proofroom/internal/config"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Routing keys for the domain events published on the topic exchange.
const (
	KeyReviewCreated    = "review.created"
	KeyCommentAdded     = "comment.added"
	KeyApprovalRecorded = "approval.recorded"
)

// Publisher fans domain events out to backend consumers (notification
// workers and the like). It is not a client push channel.
type Publisher struct {
	ch       *amqp.Channel
	exchange string
	log      *zap.Logger
}

// Dial connects to RabbitMQ when configured. A nil connection disables
// publishing; services treat a nil publisher as a no-op sink.
func Dial(cfg *config.Config) (*amqp.Connection, error) {
	if !cfg.RabbitMQ.Enabled || cfg.RabbitMQ.URL == "" {
		return nil, nil
	}
	return amqp.Dial(cfg.RabbitMQ.URL)
}

func NewPublisher(conn *amqp.Connection, exchange string, log *zap.Logger) (*Publisher, error) {
	if conn == nil {
		return nil, nil
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &Publisher{ch: ch, exchange: exchange, log: log}, nil
}

// PublishJSON publishes data under the routing key. Best effort: callers
// never fail a primary write because an event could not be published.
func (p *Publisher) PublishJSON(ctx context.Context, routingKey string, data interface{}) error {
	if p == nil {
		return nil
	}
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}
