package service

import (
	"context"
	"time"

	"github.com/cypherlabdev/price-optimizer-service/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_service.go -package=mocks

// ProductStore loads catalog items
type ProductStore interface {
	Get(ctx context.Context, nmID int64) (*models.Product, error)
}

// SalesHistoryProvider fetches daily sales of one item from the marketplace
type SalesHistoryProvider interface {
	Fetch(ctx context.Context, nmID int64, windowDays int) ([]models.SalesObservation, error)
}

// CompetitorFeed fetches a competitor snapshot for a category
type CompetitorFeed interface {
	Fetch(ctx context.Context, category string, minReviews int) ([]models.CompetitorListing, error)
}

// SeasonalityTable never fails; unknown entries return the neutral factor
type SeasonalityTable interface {
	Lookup(category string, month time.Month) models.SeasonalityFactor
}

// Cache is an interface that abstracts cache operations
// This allows for easier testing and mocking
type Cache interface {
	SetResult(ctx context.Context, result *models.OptimizationResult) error
	GetResult(ctx context.Context, nmID int64, objective models.Objective) (*models.OptimizationResult, error)
	SetSalesHistory(ctx context.Context, nmID int64, history []models.SalesObservation) error
	GetSalesHistory(ctx context.Context, nmID int64) ([]models.SalesObservation, error)
	Ping(ctx context.Context) error
	Close() error
}

// PriceOptimizer is the use-case surface exposed to the request layer and the consumer
type PriceOptimizer interface {
	OptimizeProduct(ctx context.Context, nmID int64, objective models.Objective, considerCompetitors bool) (*models.OptimizationResult, error)
	AnalyzeCompetitors(ctx context.Context, nmID int64, minReviews int) (*models.CompetitorReport, error)
	GetLatestRecommendation(ctx context.Context, nmID int64, objective models.Objective) (*models.OptimizationResult, error)
}

// RecommendationPublisher publishes finished recommendations downstream
type RecommendationPublisher interface {
	Publish(ctx context.Context, msg *models.RecommendationMessage) error
	Close() error
}
