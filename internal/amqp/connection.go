package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/framelab/pillarbox/internal/config"
	"github.com/framelab/pillarbox/pkg/models"
)

// Connection wraps the AMQP connection and channel
type Connection struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	config  config.AMQPConfig
	logger  *zap.Logger
}

// NewConnection creates a new AMQP connection
func NewConnection(cfg config.AMQPConfig, logger *zap.Logger) (*Connection, error) {
	c := &Connection{
		config: cfg,
		logger: logger,
	}
	if err := c.connect(); err != nil {
		return nil, err
	}
	return c, nil
}

// connect dials the broker and declares the exchange and queues.
// Caller must hold mu or be the constructor.
func (c *Connection) connect() error {
	conn, err := amqp.Dial(c.config.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	// Set QoS for fair distribution across multiple consumers
	err = ch.Qos(
		c.config.PrefetchCount, // prefetch count
		0,                      // prefetch size (0 = no limit)
		false,                  // global (false = current consumer only)
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	// Declare exchange
	err = ch.ExchangeDeclare(
		c.config.Exchange, // name
		"topic",           // type
		true,              // durable
		false,             // auto-deleted
		false,             // internal
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	// Declare input queue
	_, err = ch.QueueDeclare(
		c.config.QueueName, // name
		true,               // durable
		false,              // delete when unused
		false,              // exclusive
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	// Bind input queue to exchange
	err = ch.QueueBind(
		c.config.QueueName,  // queue name
		c.config.RoutingKey, // routing key
		c.config.Exchange,   // exchange
		false,               // no-wait
		nil,                 // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	c.conn = conn
	c.channel = ch
	return nil
}

// EnsureConnection re-establishes the connection and channel when closed.
func (c *Connection) EnsureConnection() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil && !c.conn.IsClosed() && c.channel != nil && !c.channel.IsClosed() {
		return nil
	}

	c.closeLocked()
	c.logger.Info("Reconnecting to AMQP", zap.String("queue", c.config.QueueName))
	return c.connect()
}

// forceClose tears the connection down so the next EnsureConnection redials.
func (c *Connection) forceClose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Connection) closeLocked() {
	if c.channel != nil {
		c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

// Close closes the AMQP connection and channel
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishResult publishes a job result to the result queue
func (c *Connection) PublishResult(ctx context.Context, result *models.Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channel == nil {
		return fmt.Errorf("amqp channel not available")
	}

	// Declare the result queue (idempotent operation)
	_, err := c.channel.QueueDeclare(
		c.config.ResultQueue, // name
		true,                 // durable
		false,                // delete when unused
		false,                // exclusive
		false,                // no-wait
		nil,                  // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare result queue %s: %w", c.config.ResultQueue, err)
	}

	// Bind the result queue using its own name as routing key
	err = c.channel.QueueBind(
		c.config.ResultQueue, // queue name
		c.config.ResultQueue, // routing key
		c.config.Exchange,    // exchange
		false,                // no-wait
		nil,                  // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to bind result queue %s: %w", c.config.ResultQueue, err)
	}

	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	err = c.channel.PublishWithContext(
		ctx,
		c.config.Exchange,    // exchange
		c.config.ResultQueue, // routing key
		false,                // mandatory
		false,                // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish result: %w", err)
	}

	c.logger.Debug("Published result to queue",
		zap.String("job_id", result.JobID),
		zap.String("queue", c.config.ResultQueue))
	return nil
}
