package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cypherlabdev/price-optimizer-service/internal/metrics"
	"github.com/cypherlabdev/price-optimizer-service/internal/mocks"
	"github.com/cypherlabdev/price-optimizer-service/internal/models"
)

// testKafkaConsumerSetup is a helper struct to hold test dependencies
type testKafkaConsumerSetup struct {
	mockOptimizer *mocks.MockPriceOptimizer
	mockPublisher *mocks.MockRecommendationPublisher
	metrics       *metrics.Metrics
	logger        zerolog.Logger
	ctrl          *gomock.Controller
	consumer      *KafkaConsumer
}

var testConfig = KafkaConsumerConfig{
	Brokers: []string{"localhost:9092"},
	Topic:   "price_optimization_requests",
	GroupID: "test-group",
}

// setupTestKafkaConsumer creates a test consumer with mocked dependencies
func setupTestKafkaConsumer(t *testing.T) *testKafkaConsumerSetup {
	ctrl := gomock.NewController(t)

	setup := &testKafkaConsumerSetup{
		mockOptimizer: mocks.NewMockPriceOptimizer(ctrl),
		mockPublisher: mocks.NewMockRecommendationPublisher(ctrl),
		metrics:       metrics.New(prometheus.NewRegistry()),
		logger:        zerolog.Nop(),
		ctrl:          ctrl,
	}
	setup.consumer = NewKafkaConsumer(testConfig, setup.mockOptimizer, setup.mockPublisher, setup.metrics, setup.logger)
	setup.consumer.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }

	return setup
}

// cleanup cleans up test resources
func (s *testKafkaConsumerSetup) cleanup() {
	s.consumer.Close()
	s.ctrl.Finish()
}

func (s *testKafkaConsumerSetup) messages(status string) float64 {
	return testutil.ToFloat64(s.metrics.Messages.WithLabelValues(status))
}

func requestMessage(t *testing.T, req models.OptimizationRequestMessage) kafka.Message {
	value, err := json.Marshal(req)
	require.NoError(t, err)
	return kafka.Message{Key: []byte("42"), Value: value, Offset: 7}
}

// TestNewKafkaConsumer tests consumer creation
func TestNewKafkaConsumer(t *testing.T) {
	setup := setupTestKafkaConsumer(t)
	defer setup.cleanup()

	consumer := setup.consumer
	assert.NotNil(t, consumer.reader)
	assert.NotNil(t, consumer.optimizer)
	assert.NotNil(t, consumer.publisher)
	assert.Equal(t, testConfig.Topic, consumer.reader.Config().Topic)
	assert.Equal(t, testConfig.GroupID, consumer.reader.Config().GroupID)
	assert.Equal(t, testConfig.Brokers, consumer.reader.Config().Brokers)
}

// TestProcessMessage_Success tests optimize then publish
func TestProcessMessage_Success(t *testing.T) {
	setup := setupTestKafkaConsumer(t)
	defer setup.cleanup()

	requestID := uuid.New()
	result := &models.OptimizationResult{
		NmID:         42,
		Objective:    models.ObjectiveProfit,
		OptimalPrice: decimal.NewFromInt(1200),
	}

	setup.mockOptimizer.EXPECT().
		OptimizeProduct(gomock.Any(), int64(42), models.ObjectiveProfit, true).
		Return(result, nil)
	setup.mockPublisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, msg *models.RecommendationMessage) error {
			assert.Equal(t, requestID, msg.RequestID)
			assert.Same(t, result, msg.Result)
			assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), msg.PublishedAt)
			return nil
		})

	msg := requestMessage(t, models.OptimizationRequestMessage{
		RequestID:           requestID,
		NmID:                42,
		Objective:           "PROFIT",
		ConsiderCompetitors: true,
		Timestamp:           time.Now(),
	})

	err := setup.consumer.processMessage(context.Background(), msg)

	assert.NoError(t, err)
	assert.Equal(t, 1.0, setup.messages(statusProcessed))
}

// TestProcessMessage_InvalidJSON tests that malformed requests are acknowledged
func TestProcessMessage_InvalidJSON(t *testing.T) {
	setup := setupTestKafkaConsumer(t)
	defer setup.cleanup()

	err := setup.consumer.processMessage(context.Background(), kafka.Message{Value: []byte("{not json")})

	assert.NoError(t, err)
	assert.Equal(t, 1.0, setup.messages(statusRejected))
}

// TestProcessMessage_InvalidObjective tests validation happens before optimization
func TestProcessMessage_InvalidObjective(t *testing.T) {
	setup := setupTestKafkaConsumer(t)
	defer setup.cleanup()

	msg := requestMessage(t, models.OptimizationRequestMessage{NmID: 42, Objective: "margin"})

	assert.NoError(t, setup.consumer.processMessage(context.Background(), msg))
	assert.Equal(t, 1.0, setup.messages(statusRejected))
}

// TestProcessMessage_UnknownProduct tests permanent failures are not retried
func TestProcessMessage_UnknownProduct(t *testing.T) {
	setup := setupTestKafkaConsumer(t)
	defer setup.cleanup()

	setup.mockOptimizer.EXPECT().
		OptimizeProduct(gomock.Any(), int64(42), models.ObjectiveRevenue, false).
		Return(nil, models.ProductNotFound(42))

	msg := requestMessage(t, models.OptimizationRequestMessage{NmID: 42, Objective: "revenue"})

	assert.NoError(t, setup.consumer.processMessage(context.Background(), msg))
	assert.Equal(t, 1.0, setup.messages(statusRejected))
}

// TestProcessMessage_OptimizationFailure tests transient failures leave the message uncommitted
func TestProcessMessage_OptimizationFailure(t *testing.T) {
	setup := setupTestKafkaConsumer(t)
	defer setup.cleanup()

	setup.mockOptimizer.EXPECT().
		OptimizeProduct(gomock.Any(), int64(42), models.ObjectiveRevenue, false).
		Return(nil, models.ErrInsufficientData)

	msg := requestMessage(t, models.OptimizationRequestMessage{NmID: 42, Objective: "revenue"})

	err := setup.consumer.processMessage(context.Background(), msg)
	assert.ErrorIs(t, err, models.ErrInsufficientData)
}

// TestProcessMessage_PublishFailure tests publish errors are returned
func TestProcessMessage_PublishFailure(t *testing.T) {
	setup := setupTestKafkaConsumer(t)
	defer setup.cleanup()

	setup.mockOptimizer.EXPECT().
		OptimizeProduct(gomock.Any(), int64(42), models.ObjectiveProfit, false).
		Return(&models.OptimizationResult{NmID: 42}, nil)
	setup.mockPublisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		Return(errors.New("broker unavailable"))

	msg := requestMessage(t, models.OptimizationRequestMessage{NmID: 42, Objective: "profit"})

	err := setup.consumer.processMessage(context.Background(), msg)
	assert.Error(t, err)
	assert.Equal(t, 0.0, setup.messages(statusProcessed))
}

// TestKafkaConsumer_ContextCancellation tests context cancellation handling
func TestKafkaConsumer_ContextCancellation(t *testing.T) {
	setup := setupTestKafkaConsumer(t)
	defer setup.cleanup()

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error)
	go func() {
		done <- setup.consumer.Start(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		// Consumer should stop without error on context cancellation
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Consumer did not stop within timeout")
	}
}

// TestKafkaConsumer_Close tests consumer closing
func TestKafkaConsumer_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	consumer := NewKafkaConsumer(testConfig,
		mocks.NewMockPriceOptimizer(ctrl),
		mocks.NewMockRecommendationPublisher(ctrl),
		metrics.New(prometheus.NewRegistry()),
		zerolog.Nop())

	assert.NoError(t, consumer.Close())
}
