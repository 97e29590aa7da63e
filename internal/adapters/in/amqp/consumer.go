// Package amqp consumes solved plans published by the solver and prints their
// reports.
package amqp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"routing/internal/core/application/payload"
	"routing/internal/core/application/usecases/commands"
	"routing/internal/core/application/usecases/queries"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange   = "vrp_solutions_exchange"
	DefaultQueue      = "vrp_solutions"
	DefaultRoutingKey = "vrp_out"

	// FinishedMessage is the body the solver sends after its last solution.
	FinishedMessage = "Solving finished"

	consumerTag = "vrp_solution_consumer"
)

// ErrDeliveriesClosed is returned by Run when the broker closes the
// delivery stream before the solver finished.
var ErrDeliveriesClosed = errors.New("delivery channel closed")

// Channel is the part of *amqp.Channel the consumer uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// ReportPrinter renders plan reports.
type ReportPrinter interface {
	PrintMetrics(report queries.GetPlanReportQueryResponse) error
	PrintPaths(report queries.GetPlanReportQueryResponse) error
}

// SolutionConsumer builds a plan from every delivered payload and prints its
// report. Deliveries are acknowledged one by one: valid payloads are acked,
// invalid ones are rejected without requeue.
type SolutionConsumer struct {
	channel       Channel
	queue         string
	buildHandler  commands.BuildPlanFromPayloadCommandHandler
	reportHandler queries.GetPlanReportQueryHandler
	printer       ReportPrinter
	withPaths     bool
	logger        *slog.Logger
}

func NewSolutionConsumer(
	channel Channel,
	queue string,
	buildHandler commands.BuildPlanFromPayloadCommandHandler,
	reportHandler queries.GetPlanReportQueryHandler,
	printer ReportPrinter,
	withPaths bool,
	logger *slog.Logger,
) *SolutionConsumer {
	return &SolutionConsumer{
		channel:       channel,
		queue:         queue,
		buildHandler:  buildHandler,
		reportHandler: reportHandler,
		printer:       printer,
		withPaths:     withPaths,
		logger:        logger.With("component", "solution_consumer", "queue", queue),
	}
}

// DeclareTopology declares the fanout solutions exchange and the queue, and
// binds them with routingKey.
func (c *SolutionConsumer) DeclareTopology(exchange, routingKey string) error {
	if err := c.channel.ExchangeDeclare(exchange, amqp.ExchangeFanout, false, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	if _, err := c.channel.QueueDeclare(c.queue, false, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", c.queue, err)
	}
	if err := c.channel.QueueBind(c.queue, routingKey, exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", c.queue, err)
	}
	return nil
}

// Run consumes until FinishedMessage arrives, ctx is done or the broker closes
// the stream. Receiving FinishedMessage ends Run with a nil error.
func (c *SolutionConsumer) Run(ctx context.Context) error {
	deliveries, err := c.channel.Consume(c.queue, consumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}
	c.logger.InfoContext(ctx, "Solution consumer started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesClosed
			}
			if string(d.Body) == FinishedMessage {
				if err := d.Ack(false); err != nil {
					return fmt.Errorf("ack finish message: %w", err)
				}
				c.logger.InfoContext(ctx, "Solving finished")
				return nil
			}
			c.handle(ctx, d)
		}
	}
}

func (c *SolutionConsumer) handle(ctx context.Context, d amqp.Delivery) {
	correlationID := d.CorrelationId
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	logger := c.logger.With("correlation_id", correlationID, "delivery_tag", d.DeliveryTag)

	if err := c.process(ctx, d.Body); err != nil {
		logger.WarnContext(ctx, "Solution rejected", "error", err)
		if err := d.Nack(false, false); err != nil {
			logger.ErrorContext(ctx, "Failed to nack delivery", "error", err)
		}
		return
	}

	if err := d.Ack(false); err != nil {
		logger.ErrorContext(ctx, "Failed to ack delivery", "error", err)
	}
}

func (c *SolutionConsumer) process(ctx context.Context, body []byte) error {
	decoded, err := payload.Decode(body)
	if err != nil {
		return err
	}
	p, err := c.buildHandler.Handle(ctx, commands.NewBuildPlanFromPayloadCommand(decoded))
	if err != nil {
		return err
	}

	query, err := queries.NewGetPlanReportQuery(p, c.withPaths)
	if err != nil {
		return err
	}
	report, err := c.reportHandler.Handle(ctx, query)
	if err != nil {
		return err
	}

	if err := c.printer.PrintMetrics(report); err != nil {
		return fmt.Errorf("print metrics: %w", err)
	}
	if c.withPaths {
		if err := c.printer.PrintPaths(report); err != nil {
			return fmt.Errorf("print paths: %w", err)
		}
	}
	return nil
}
