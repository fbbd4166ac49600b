package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/framelab/pillarbox/internal/config"
	"github.com/framelab/pillarbox/pkg/models"
)

// streamKey is the Redis stream carrying normalize requests.
const streamKey = "pillarbox:normalize_requests"

// Client wraps the Redis client for the job status store, the result pub/sub
// channel, and the request stream.
type Client struct {
	client *redis.Client
	config config.RedisConfig
	logger *zap.Logger
}

// NewClient creates a new Redis client
func NewClient(cfg config.RedisConfig, logger *zap.Logger) (*Client, error) {
	// Generate consumer name if not provided
	if cfg.ConsumerName == "" {
		hostname, _ := os.Hostname()
		if hostname == "" {
			hostname = "unknown"
		}
		cfg.ConsumerName = fmt.Sprintf("%s-%d", hostname, time.Now().UnixNano())
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		PoolTimeout:  30 * time.Second,
	})

	ctx := context.Background()

	// Test the connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	client := &Client{
		client: rdb,
		config: cfg,
		logger: logger,
	}

	logger.Info("Connected to Redis",
		zap.String("addr", cfg.Addr),
		zap.String("consumer_group", cfg.ConsumerGroup),
		zap.String("consumer_name", cfg.ConsumerName))

	if err := client.initializeConsumerGroup(ctx); err != nil {
		logger.Warn("Failed to initialize consumer group (may already exist)", zap.Error(err))
	}

	return client, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.client.Close()
}

// SetJobStatus persists a job lifecycle record with the configured TTL.
func (c *Client) SetJobStatus(ctx context.Context, status *models.JobStatus) error {
	body, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal job status: %w", err)
	}

	key := fmt.Sprintf("job:%s", status.JobID)
	ttl := time.Duration(c.config.StatusTTL) * time.Second

	if err := c.client.Set(ctx, key, body, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set job status %s: %w", key, err)
	}

	return nil
}

// JobStatus loads a job lifecycle record. Returns nil without error when the
// job is unknown or its record has expired.
func (c *Client) JobStatus(ctx context.Context, jobID string) (*models.JobStatus, error) {
	key := fmt.Sprintf("job:%s", jobID)

	body, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job status %s: %w", key, err)
	}

	var status models.JobStatus
	if err := json.Unmarshal([]byte(body), &status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job status %s: %w", key, err)
	}

	return &status, nil
}

// PublishResult publishes a job result to the job-specific channel
func (c *Client) PublishResult(ctx context.Context, result *models.Result) error {
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	channel := fmt.Sprintf("job:%s", result.JobID)

	if err := c.client.Publish(ctx, channel, body).Err(); err != nil {
		return fmt.Errorf("failed to publish to Redis channel %s: %w", channel, err)
	}

	c.logger.Debug("Published job result",
		zap.String("channel", channel),
		zap.String("job_id", result.JobID),
		zap.String("destination", result.Destination))

	return nil
}

// initializeConsumerGroup creates the consumer group for the request stream
func (c *Client) initializeConsumerGroup(ctx context.Context) error {
	// "0" starts the group at the beginning of the stream; "$" would only
	// see messages arriving after group creation.
	err := c.client.XGroupCreateMkStream(ctx, streamKey, c.config.ConsumerGroup, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	c.logger.Info("Consumer group initialized",
		zap.String("stream", streamKey),
		zap.String("group", c.config.ConsumerGroup))

	return nil
}

// ReadFromStream reads messages from the request stream using the consumer group
func (c *Client) ReadFromStream(ctx context.Context, count int64, block time.Duration) ([]redis.XStream, error) {
	// ">" reads only messages not yet delivered to other consumers
	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.config.ConsumerGroup,
		Consumer: c.config.ConsumerName,
		Streams:  []string{streamKey, ">"},
		Count:    count,
		Block:    block,
		NoAck:    false,
	}).Result()

	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to read from stream: %w", err)
	}

	return streams, nil
}

// AcknowledgeMessage acknowledges a message from the stream
func (c *Client) AcknowledgeMessage(ctx context.Context, messageID string) error {
	err := c.client.XAck(ctx, streamKey, c.config.ConsumerGroup, messageID).Err()
	if err != nil {
		return fmt.Errorf("failed to acknowledge message %s: %w", messageID, err)
	}

	return nil
}

// IsHealthy checks if the Redis connection is healthy
func (c *Client) IsHealthy(ctx context.Context) bool {
	return c.client.Ping(ctx).Err() == nil
}
