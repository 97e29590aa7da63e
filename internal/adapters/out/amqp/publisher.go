// Package amqp publishes built plans to a RabbitMQ exchange as structured
// payloads.
package amqp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"routing/internal/core/application/payload"
	"routing/internal/core/domain/model/plan"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Default names of the task topology.
const (
	DefaultExchange   = "vrp_exchange"
	DefaultRoutingKey = "vrp_task_data"
)

// Channel is the part of *amqp.Channel the publisher uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// PlanPublisher implements ports.PlanPublisher over an AMQP channel.
//
// A *amqp.Channel is not safe for concurrent publishing, so callers that share
// one publisher across goroutines must hand it a channel per goroutine or
// serialize calls.
type PlanPublisher struct {
	channel    Channel
	exchange   string
	routingKey string
	logger     *slog.Logger
	now        func() time.Time
}

func NewPlanPublisher(channel Channel, exchange, routingKey string, logger *slog.Logger) *PlanPublisher {
	return &PlanPublisher{
		channel:    channel,
		exchange:   exchange,
		routingKey: routingKey,
		logger:     logger.With("component", "plan_publisher"),
		now:        time.Now,
	}
}

// DeclareTopology declares the direct exchange and the task queue named after
// the routing key, and binds them.
func (p *PlanPublisher) DeclareTopology() error {
	if err := p.channel.ExchangeDeclare(p.exchange, amqp.ExchangeDirect, false, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", p.exchange, err)
	}
	if _, err := p.channel.QueueDeclare(p.routingKey, false, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", p.routingKey, err)
	}
	if err := p.channel.QueueBind(p.routingKey, p.routingKey, p.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", p.routingKey, err)
	}
	return nil
}

// Publish encodes rp and sends it with a fresh correlation id. The message id
// is the plan id.
func (p *PlanPublisher) Publish(ctx context.Context, rp *plan.RoutingPlan) error {
	body, err := payload.Encode(rp)
	if err != nil {
		return fmt.Errorf("publish plan: %w", err)
	}
	data, err := body.Marshal()
	if err != nil {
		return fmt.Errorf("publish plan: %w", err)
	}

	correlationID := uuid.NewString()
	msg := amqp.Publishing{
		ContentType:   "application/json",
		CorrelationId: correlationID,
		MessageId:     rp.ID().String(),
		Timestamp:     p.now(),
		Body:          data,
	}
	if err := p.channel.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, msg); err != nil {
		return fmt.Errorf("publish plan %s: %w", rp.Name(), err)
	}

	p.logger.InfoContext(ctx, "Plan published",
		"plan", rp.Name(),
		"plan_id", msg.MessageId,
		"correlation_id", correlationID,
		"bytes", len(data),
	)
	return nil
}
