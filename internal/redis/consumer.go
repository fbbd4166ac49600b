package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/framelab/pillarbox/internal/handlers"
	"github.com/framelab/pillarbox/pkg/models"
)

// Consumer pulls normalize requests off the Redis stream and feeds them to
// the job handler.
type Consumer struct {
	client  *Client
	handler *handlers.JobHandler
	logger  *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewConsumer creates a new Redis consumer
func NewConsumer(client *Client, handler *handlers.JobHandler, logger *zap.Logger) *Consumer {
	ctx, cancel := context.WithCancel(context.Background())

	return &Consumer{
		client:  client,
		handler: handler,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start starts consuming messages from the normalize request stream
func (c *Consumer) Start() error {
	c.logger.Info("Starting Redis consumer for normalize requests")

	for {
		select {
		case <-c.ctx.Done():
			c.logger.Info("Redis consumer stopped")
			return nil
		default:
			if err := c.consumeMessages(); err != nil {
				c.logger.Error("Error consuming messages, will retry",
					zap.Error(err),
					zap.Duration("retry_delay", 5*time.Second))
				time.Sleep(5 * time.Second)
				continue
			}
		}
	}
}

// Stop stops the consumer
func (c *Consumer) Stop() {
	c.logger.Info("Stopping Redis consumer")
	c.cancel()
}

// consumeMessages handles the actual message consumption from the stream
func (c *Consumer) consumeMessages() error {
	for {
		select {
		case <-c.ctx.Done():
			return nil
		default:
			streams, err := c.client.ReadFromStream(c.ctx, 10, 5*time.Second)
			if err != nil {
				if !c.client.IsHealthy(c.ctx) {
					return fmt.Errorf("redis connection unhealthy, will reconnect")
				}
				c.logger.Error("Error reading from stream", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}

			for _, stream := range streams {
				for _, message := range stream.Messages {
					c.handleStreamMessage(message)
				}
			}
		}
	}
}

// handleStreamMessage processes a single stream message
func (c *Consumer) handleStreamMessage(msg redis.XMessage) {
	c.logger.Debug("Received normalize request from stream",
		zap.String("message_id", msg.ID))

	payload, ok := msg.Values["payload"].(string)
	if !ok {
		c.logger.Error("Failed to extract payload from stream message",
			zap.String("message_id", msg.ID))
		// Acknowledge anyway to prevent reprocessing
		_ = c.client.AcknowledgeMessage(c.ctx, msg.ID)
		return
	}

	var job models.Job
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		c.logger.Error("Failed to unmarshal normalize request",
			zap.Error(err),
			zap.String("message_id", msg.ID),
			zap.String("payload", payload))
		// Acknowledge to prevent reprocessing bad data
		_ = c.client.AcknowledgeMessage(c.ctx, msg.ID)
		return
	}

	// Handle returns a populated result even on failure
	result, err := c.handler.Handle(c.ctx, &job)
	if err != nil {
		c.logger.Error("Failed to handle normalize request",
			zap.Error(err),
			zap.String("message_id", msg.ID),
			zap.String("job_id", job.ID))
	}

	if err := c.client.PublishResult(c.ctx, result); err != nil {
		c.logger.Error("Failed to publish job result",
			zap.Error(err),
			zap.String("message_id", msg.ID),
			zap.String("job_id", job.ID))
		// Don't acknowledge if we failed to publish - allow retry
		return
	}

	if err := c.client.AcknowledgeMessage(c.ctx, msg.ID); err != nil {
		c.logger.Error("Failed to acknowledge message",
			zap.Error(err),
			zap.String("message_id", msg.ID))
	} else {
		c.logger.Debug("Message processed and acknowledged",
			zap.String("message_id", msg.ID),
			zap.String("job_id", job.ID))
	}
}
