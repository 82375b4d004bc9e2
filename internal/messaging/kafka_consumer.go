package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/price-optimizer-service/internal/metrics"
	"github.com/cypherlabdev/price-optimizer-service/internal/models"
	"github.com/cypherlabdev/price-optimizer-service/internal/service"
)

// Message outcomes recorded in metrics
const (
	statusProcessed = "processed"
	statusRejected  = "rejected"
	statusFailed    = "failed"
)

// KafkaConsumer consumes optimization requests from Kafka and publishes recommendations
type KafkaConsumer struct {
	reader    *kafka.Reader
	optimizer service.PriceOptimizer
	publisher service.RecommendationPublisher
	metrics   *metrics.Metrics
	now       func() time.Time
	logger    zerolog.Logger
}

// KafkaConsumerConfig holds Kafka consumer configuration
type KafkaConsumerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "price_optimization_requests"
	GroupID string   // e.g., "price-optimizer"
}

// NewKafkaConsumer creates a new Kafka consumer
func NewKafkaConsumer(
	config KafkaConsumerConfig,
	opt service.PriceOptimizer,
	publisher service.RecommendationPublisher,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       1,    // Requests are small and latency matters
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &KafkaConsumer{
		reader:    reader,
		optimizer: opt,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
		logger:    logger.With().Str("component", "kafka_consumer").Logger(),
	}
}

// Start consumes messages until ctx is canceled
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("topic", c.reader.Config().Topic).
		Str("group_id", c.reader.Config().GroupID).
		Msg("started consuming from Kafka")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				c.logger.Info().Msg("stopping Kafka consumer")
				return nil
			}
			c.logger.Error().Err(err).Msg("failed to fetch message")
			continue
		}

		if err := c.processMessage(ctx, msg); err != nil {
			c.metrics.Messages.WithLabelValues(statusFailed).Inc()
			c.logger.Error().
				Err(err).
				Int64("offset", msg.Offset).
				Str("key", string(msg.Key)).
				Msg("failed to process message")
			// Don't commit if processing failed
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error().Err(err).Msg("failed to commit message")
		}
	}
}

// processMessage handles one request. Requests that can never succeed are
// logged and acknowledged; only transient failures return an error.
func (c *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var req models.OptimizationRequestMessage
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		c.reject(msg, err, "malformed optimization request")
		return nil
	}

	objective, err := models.ParseObjective(req.Objective)
	if err != nil {
		c.reject(msg, err, "invalid optimization request")
		return nil
	}

	c.logger.Debug().
		Str("request_id", req.RequestID.String()).
		Int64("nm_id", req.NmID).
		Str("objective", string(objective)).
		Msg("processing optimization request")

	result, err := c.optimizer.OptimizeProduct(ctx, req.NmID, objective, req.ConsiderCompetitors)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrInvalidInput) {
			c.reject(msg, err, "optimization request rejected")
			return nil
		}
		return fmt.Errorf("failed to optimize %d: %w", req.NmID, err)
	}

	out := &models.RecommendationMessage{
		RequestID:   req.RequestID,
		Result:      result,
		PublishedAt: c.now().UTC(),
	}
	if err := c.publisher.Publish(ctx, out); err != nil {
		return fmt.Errorf("failed to publish recommendation: %w", err)
	}

	c.metrics.Messages.WithLabelValues(statusProcessed).Inc()
	c.logger.Info().
		Str("request_id", req.RequestID.String()).
		Int64("nm_id", req.NmID).
		Str("optimal_price", result.OptimalPrice.String()).
		Msg("processed optimization request")

	return nil
}

func (c *KafkaConsumer) reject(msg kafka.Message, err error, reason string) {
	c.metrics.Messages.WithLabelValues(statusRejected).Inc()
	c.logger.Warn().
		Err(err).
		Int64("offset", msg.Offset).
		Str("key", string(msg.Key)).
		Msg(reason)
}

// Close closes the Kafka reader
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
