package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cypherlabdev/price-optimizer-service/internal/metrics"
	"github.com/cypherlabdev/price-optimizer-service/internal/models"
	"github.com/cypherlabdev/price-optimizer-service/pkg/optimizer"
)

// Dependencies are the external collaborators of the optimizer service
type Dependencies struct {
	Products    ProductStore
	Sales       SalesHistoryProvider
	Competitors CompetitorFeed
	Seasonality SeasonalityTable
	Cache       Cache
	Metrics     *metrics.Metrics
}

// OptimizerService orchestrates price optimization for one item per call
type OptimizerService struct {
	optimizer   *optimizer.Optimizer
	products    ProductStore
	sales       SalesHistoryProvider
	competitors CompetitorFeed
	seasonality SeasonalityTable
	cache       Cache
	metrics     *metrics.Metrics
	retry       RetryPolicy
	now         func() time.Time
	logger      zerolog.Logger
}

// NewOptimizerService creates a new optimizer service
func NewOptimizerService(
	optimizer *optimizer.Optimizer,
	deps Dependencies,
	retry RetryPolicy,
	logger zerolog.Logger,
) *OptimizerService {
	return &OptimizerService{
		optimizer:   optimizer,
		products:    deps.Products,
		sales:       deps.Sales,
		competitors: deps.Competitors,
		seasonality: deps.Seasonality,
		cache:       deps.Cache,
		metrics:     deps.Metrics,
		retry:       retry,
		now:         time.Now,
		logger:      logger.With().Str("component", "optimizer_service").Logger(),
	}
}

// OptimizeProduct recommends a price for one item under the given objective
func (s *OptimizerService) OptimizeProduct(
	ctx context.Context,
	nmID int64,
	objective models.Objective,
	considerCompetitors bool,
) (*models.OptimizationResult, error) {
	start := time.Now()
	defer func() {
		s.metrics.Duration.WithLabelValues("optimize_product").Observe(time.Since(start).Seconds())
	}()

	objective, err := models.ParseObjective(string(objective))
	if err != nil {
		return nil, err
	}

	product, err := s.loadProduct(ctx, nmID)
	if err != nil {
		return nil, err
	}

	params := s.optimizer.Params()
	var (
		history         []models.SalesObservation
		fromCache       bool
		listings        []models.CompetitorListing
		competitorErr   error
		competitorsUsed = considerCompetitors
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		history, fromCache, err = s.loadSalesHistory(gctx, nmID, params.WindowDays)
		return err
	})
	if considerCompetitors {
		g.Go(func() error {
			// Competitor failures degrade the result instead of failing it
			listings, competitorErr = s.fetchCompetitors(gctx, product.Category, params.DefaultMinReviews)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var warnings []string
	if fromCache {
		warnings = append(warnings, models.WarningCachedSalesHistory)
	}

	elasticity := s.optimizer.FitElasticity(history)
	if elasticity.LowConfidence {
		warnings = append(warnings, models.WarningInsufficientHistory)
	}

	seasonality := s.seasonality.Lookup(product.Category, s.now().Month())
	currentPrice := product.CurrentPrice.InexactFloat64()
	cost := product.Cost.InexactFloat64()

	var market *models.MarketStats
	if considerCompetitors {
		if competitorErr != nil {
			s.logger.Warn().
				Err(competitorErr).
				Int64("nm_id", nmID).
				Str("category", product.Category).
				Msg("competitor feed unavailable, optimizing without market bounds")
			warnings = append(warnings, models.WarningCompetitorFeedDown)
			competitorsUsed = false
		} else {
			analysis := s.optimizer.AnalyzeCompetitors(listings, params.DefaultMinReviews, nmID, currentPrice)
			if analysis.Found {
				market = analysis.Stats
			} else {
				warnings = append(warnings, models.WarningNoCompetitors)
				competitorsUsed = false
			}
		}
	}

	in := optimizer.Input{
		Elasticity:          elasticity,
		Seasonality:         seasonality,
		Cost:                cost,
		CurrentPrice:        currentPrice,
		BaselineSales:       s.optimizer.BaselineDemand(history),
		Objective:           objective,
		Market:              market,
		ConsiderCompetitors: competitorsUsed,
	}

	search := s.optimizer.Search(in)
	if search.Fallback {
		warnings = append(warnings, models.WarningNoFeasibleCandidate)
	}
	optimum := search.Optimum

	changePercent := optimizer.PriceChangePercent(currentPrice, optimum.Price)
	risk := optimizer.ClassifyRisk(elasticity.Confidence, changePercent)

	result := &models.OptimizationResult{
		ID:                    uuid.New(),
		NmID:                  nmID,
		ProductName:           product.Name,
		Objective:             objective,
		CurrentPrice:          product.CurrentPrice,
		OptimalPrice:          optimizer.Money(optimum.Price),
		PriceChangePercent:    roundPercent(changePercent),
		CurrentSales:          in.BaselineSales,
		CurrentProfit:         optimizer.Money((currentPrice - cost) * in.BaselineSales),
		PredictedSales:        optimum.Sales,
		PredictedRevenue:      optimizer.Money(optimum.Revenue),
		PredictedProfit:       optimizer.Money(optimum.Profit),
		RiskLevel:             risk,
		LowConfidence:         elasticity.LowConfidence || search.Fallback,
		Elasticity:            elasticity,
		Seasonality:           seasonality,
		Market:                market,
		CompetitorsConsidered: competitorsUsed,
		Scenarios:             s.optimizer.GenerateScenarios(in, optimum),
		RecommendationText:    optimizer.RecommendationText(elasticity, currentPrice, optimum.Price, risk, search.Fallback),
		Warnings:              warnings,
		OptimizedAt:           s.now().UTC(),
	}

	if err := s.cache.SetResult(ctx, result); err != nil {
		s.logger.Warn().
			Err(err).
			Int64("nm_id", nmID).
			Msg("failed to cache optimization result")
		// Don't fail the request on cache errors
	}

	s.metrics.Optimizations.WithLabelValues(string(objective), string(risk)).Inc()
	for _, w := range warnings {
		s.metrics.Degraded.WithLabelValues(w).Inc()
	}

	s.logger.Info().
		Int64("nm_id", nmID).
		Str("objective", string(objective)).
		Str("current_price", result.CurrentPrice.String()).
		Str("optimal_price", result.OptimalPrice.String()).
		Str("risk_level", string(risk)).
		Float64("confidence", elasticity.Confidence).
		Strs("warnings", warnings).
		Msg("optimized product price")

	return result, nil
}

// AnalyzeCompetitors summarizes the competitor market for one item.
// No qualifying competitor yields Found=false rather than an error.
func (s *OptimizerService) AnalyzeCompetitors(ctx context.Context, nmID int64, minReviews int) (*models.CompetitorReport, error) {
	start := time.Now()
	defer func() {
		s.metrics.Duration.WithLabelValues("analyze_competitors").Observe(time.Since(start).Seconds())
	}()

	if minReviews < 0 {
		return nil, models.InvalidInputf("min_reviews must be non-negative, got %d", minReviews)
	}

	product, err := s.loadProduct(ctx, nmID)
	if err != nil {
		return nil, err
	}

	listings, err := s.fetchCompetitors(ctx, product.Category, minReviews)
	if err != nil {
		return nil, fmt.Errorf("fetch competitors for %d: %w", nmID, err)
	}

	analysis := s.optimizer.AnalyzeCompetitors(listings, minReviews, nmID, product.CurrentPrice.InexactFloat64())

	s.logger.Debug().
		Int64("nm_id", nmID).
		Int("listings", len(listings)).
		Bool("found", analysis.Found).
		Msg("analyzed competitors")

	return &models.CompetitorReport{
		OurProduct:     *product,
		Found:          analysis.Found,
		Message:        analysis.Message,
		MarketStats:    analysis.Stats,
		Position:       analysis.Position,
		TopCompetitors: analysis.Top,
	}, nil
}

// GetLatestRecommendation returns the most recent cached result for an item
func (s *OptimizerService) GetLatestRecommendation(ctx context.Context, nmID int64, objective models.Objective) (*models.OptimizationResult, error) {
	objective, err := models.ParseObjective(string(objective))
	if err != nil {
		return nil, err
	}

	result, err := s.cache.GetResult(ctx, nmID, objective)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.metrics.CacheLookups.WithLabelValues("result", "miss").Inc()
			return nil, fmt.Errorf("no recommendation for %d (%s): %w", nmID, objective, err)
		}
		s.metrics.CacheLookups.WithLabelValues("result", "error").Inc()
		return nil, fmt.Errorf("%w: read recommendation cache: %w", models.ErrExternalService, err)
	}

	s.metrics.CacheLookups.WithLabelValues("result", "hit").Inc()
	return result, nil
}

func (s *OptimizerService) loadProduct(ctx context.Context, nmID int64) (*models.Product, error) {
	if nmID <= 0 {
		return nil, models.InvalidInputf("nm_id must be positive, got %d", nmID)
	}

	product, err := s.products.Get(ctx, nmID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: load product %d: %w", models.ErrExternalService, nmID, err)
	}
	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("product %d: %w", nmID, err)
	}
	return product, nil
}

// loadSalesHistory fetches history with retries and falls back to the last cached copy
func (s *OptimizerService) loadSalesHistory(ctx context.Context, nmID int64, windowDays int) ([]models.SalesObservation, bool, error) {
	history, err := withRetry(ctx, s.retry, s.logger, "sales_history",
		func(ctx context.Context) ([]models.SalesObservation, error) {
			return s.sales.Fetch(ctx, nmID, windowDays)
		})
	if err == nil {
		if err := s.cache.SetSalesHistory(ctx, nmID, history); err != nil {
			s.logger.Warn().Err(err).Int64("nm_id", nmID).Msg("failed to cache sales history")
		}
		return history, false, nil
	}

	s.metrics.UpstreamFailures.WithLabelValues("sales_history").Inc()
	if ctx.Err() != nil {
		return nil, false, ctx.Err()
	}

	cached, cacheErr := s.cache.GetSalesHistory(ctx, nmID)
	if cacheErr == nil && len(cached) > 0 {
		s.metrics.CacheLookups.WithLabelValues("sales_history", "hit").Inc()
		s.logger.Warn().
			Err(err).
			Int64("nm_id", nmID).
			Int("observations", len(cached)).
			Msg("sales history unavailable, using cached copy")
		return cached, true, nil
	}
	s.metrics.CacheLookups.WithLabelValues("sales_history", "miss").Inc()

	s.logger.Error().
		Err(err).
		Int64("nm_id", nmID).
		Msg("sales history unavailable and no cached copy")
	if errors.Is(err, models.ErrNotFound) {
		// The product exists; a missing sales record is a data gap, not a 404
		return nil, false, fmt.Errorf("%w: no sales history for %d: %v", models.ErrInsufficientData, nmID, err)
	}
	return nil, false, fmt.Errorf("%w: sales history for %d: %w", models.ErrInsufficientData, nmID, err)
}

func (s *OptimizerService) fetchCompetitors(ctx context.Context, category string, minReviews int) ([]models.CompetitorListing, error) {
	listings, err := withRetry(ctx, s.retry, s.logger, "competitor_feed",
		func(ctx context.Context) ([]models.CompetitorListing, error) {
			return s.competitors.Fetch(ctx, category, minReviews)
		})
	if err != nil {
		s.metrics.UpstreamFailures.WithLabelValues("competitor_feed").Inc()
		return nil, upstreamError("competitor feed", err)
	}
	return listings, nil
}

// upstreamError keeps taxonomy errors as they are and files everything else,
// timeouts included, under ErrExternalService
func upstreamError(source string, err error) error {
	if errors.Is(err, models.ErrNotFound) ||
		errors.Is(err, models.ErrInvalidInput) ||
		errors.Is(err, models.ErrInsufficientData) ||
		errors.Is(err, models.ErrExternalService) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", models.ErrExternalService, source, err)
}

func roundPercent(v float64) float64 {
	return math.Round(v*100) / 100
}
