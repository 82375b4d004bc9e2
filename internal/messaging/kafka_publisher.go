package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/price-optimizer-service/internal/models"
)

// KafkaPublisher publishes recommendations to Kafka
type KafkaPublisher struct {
	writer *kafka.Writer
	logger zerolog.Logger
}

// KafkaPublisherConfig holds Kafka producer configuration
type KafkaPublisherConfig struct {
	Brokers []string
	Topic   string // e.g., "price_recommendations"
}

// NewKafkaPublisher creates a new Kafka publisher
func NewKafkaPublisher(config KafkaPublisherConfig, logger zerolog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{}, // Keep one item's recommendations ordered
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}

	return &KafkaPublisher{
		writer: writer,
		logger: logger.With().Str("component", "kafka_publisher").Logger(),
	}
}

// Publish writes msg keyed by nm_id
func (p *KafkaPublisher) Publish(ctx context.Context, msg *models.RecommendationMessage) error {
	if msg == nil || msg.Result == nil {
		return models.InvalidInputf("recommendation message without result")
	}

	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(msg.Result.NmID, 10)),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("%w: write to %s: %w", models.ErrExternalService, p.writer.Topic, err)
	}

	p.logger.Debug().
		Str("request_id", msg.RequestID.String()).
		Int64("nm_id", msg.Result.NmID).
		Msg("published recommendation")

	return nil
}

// Close flushes pending writes and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
