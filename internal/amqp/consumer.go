package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/framelab/pillarbox/pkg/models"
)

// JobHandler defines the interface for handling normalize requests
type JobHandler interface {
	Handle(ctx context.Context, job *models.Job) (*models.Result, error)
}

// Consumer handles consuming normalize requests from AMQP
type Consumer struct {
	conn    *Connection
	handler JobHandler
	logger  *zap.Logger
}

// NewConsumer creates a new consumer
func NewConsumer(conn *Connection, handler JobHandler, logger *zap.Logger) *Consumer {
	return &Consumer{
		conn:    conn,
		handler: handler,
		logger:  logger,
	}
}

// Start starts consuming messages from the specified queue with automatic reconnection
func (c *Consumer) Start(ctx context.Context, queueName string) error {
	retryDelay := time.Second
	maxRetryDelay := 30 * time.Second
	retryCount := 0

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Consumer context cancelled, stopping")
			return ctx.Err()
		default:
			if err := c.startConsuming(ctx, queueName); err != nil {
				retryCount++
				c.logger.Error("Consumer failed, will retry after delay",
					zap.Error(err),
					zap.String("queue", queueName),
					zap.Int("retry_count", retryCount),
					zap.Duration("retry_delay", retryDelay))

				// Exponential backoff, but respect context cancellation
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(retryDelay):
					retryDelay = time.Duration(float64(retryDelay) * 1.5)
					if retryDelay > maxRetryDelay {
						retryDelay = maxRetryDelay
					}
					continue
				}
			} else {
				// Reset retry delay on successful connection
				retryDelay = time.Second
				retryCount = 0
			}
		}
	}
}

// startConsuming handles a single consumption session
func (c *Consumer) startConsuming(ctx context.Context, queueName string) error {
	if err := c.conn.EnsureConnection(); err != nil {
		return fmt.Errorf("failed to ensure connection: %w", err)
	}

	// Unique consumer tag for this instance
	hostname, _ := os.Hostname()
	consumerTag := fmt.Sprintf("pillarbox-%s-%d", hostname, time.Now().Unix())

	msgs, err := c.conn.channel.Consume(
		queueName,   // queue
		consumerTag, // consumer tag
		false,       // auto-ack (disabled for manual acknowledgment)
		false,       // exclusive (allow multiple consumers)
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		c.logger.Warn("Failed to register consumer, forcing reconnection",
			zap.Error(err),
			zap.String("queue", queueName))

		c.conn.forceClose()

		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("Started consuming messages",
		zap.String("queue", queueName),
		zap.String("consumer_tag", consumerTag))

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Consumer context cancelled, stopping")
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				c.logger.Warn("Message channel closed, will reconnect")
				return fmt.Errorf("message channel closed")
			}

			go c.handleMessage(ctx, msg)
		}
	}
}

// handleMessage processes a single message
func (c *Consumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	c.logger.Debug("Received message",
		zap.String("routing_key", msg.RoutingKey),
		zap.String("correlation_id", msg.CorrelationId))

	var job models.Job
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		c.logger.Error("Failed to unmarshal normalize request",
			zap.Error(err),
			zap.String("correlation_id", msg.CorrelationId))
		msg.Nack(false, false)
		return
	}

	// Handle returns a populated result even on failure, so a bad job still
	// produces a reportable outcome instead of poisoning the queue.
	result, err := c.handler.Handle(ctx, &job)
	if err != nil {
		c.logger.Error("Failed to handle normalize request",
			zap.Error(err),
			zap.String("job_id", job.ID),
			zap.String("source", job.Source))
	}

	if publishErr := c.conn.PublishResult(ctx, result); publishErr != nil {
		c.logger.Error("Failed to publish result",
			zap.Error(publishErr),
			zap.String("job_id", job.ID))

		// Requeue only successful jobs whose result got lost; error results
		// are acked to avoid infinite retry loops.
		if err == nil {
			msg.Nack(false, true)
		} else {
			if ackErr := msg.Ack(false); ackErr != nil {
				c.logger.Error("Failed to acknowledge message after publish error",
					zap.Error(ackErr),
					zap.String("job_id", job.ID))
			}
		}
		return
	}

	if ackErr := msg.Ack(false); ackErr != nil {
		c.logger.Error("Failed to acknowledge message",
			zap.Error(ackErr),
			zap.String("job_id", job.ID))
	}
}
