package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/cypherlabdev/price-optimizer-service/internal/models"
)

const dateLayout = "2006-01-02"

// Config holds marketplace API client configuration
type Config struct {
	BaseURL       string
	APIKey        string
	Timeout       time.Duration
	RatePerMinute int
}

// Client talks to the marketplace statistics and catalog API
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	now     func() time.Time
	logger  zerolog.Logger
}

// NewClient creates a new marketplace client
func NewClient(config Config, logger zerolog.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		apiKey:  config.APIKey,
		http:    &http.Client{Timeout: timeout},
		limiter: newLimiter(config.RatePerMinute),
		now:     time.Now,
		logger:  logger.With().Str("component", "marketplace_client").Logger(),
	}
}

// newLimiter converts a per-minute quota into a token bucket with a small burst
func newLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := perMinute / 10
	if burst < 1 {
		burst = 1
	}
	if burst > 5 {
		burst = 5
	}
	return rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst)
}

type salesResponse struct {
	Data []salesRecord `json:"data"`
}

type salesRecord struct {
	Date          string `json:"date"`
	Price         int64  `json:"price"`         // Kopecks, before discount
	FinishedPrice int64  `json:"finishedPrice"` // Kopecks, after discount
	Quantity      int    `json:"quantity"`
}

type catalogResponse struct {
	Data struct {
		Products []catalogProduct `json:"products"`
	} `json:"data"`
}

type catalogProduct struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	PriceU      int64   `json:"priceU"`
	SalePriceU  int64   `json:"salePriceU"`
	Rating      float64 `json:"rating"`
	Feedbacks   int     `json:"feedbacks"`
	SalesPerDay float64 `json:"salesPerDay"`
	InStock     *bool   `json:"inStock"`
}

// SalesHistory fetches daily sales of nmID over the last windowDays.
// Prices are the discounted prices buyers actually paid.
func (c *Client) SalesHistory(ctx context.Context, nmID int64, windowDays int) ([]models.SalesObservation, error) {
	to := c.now().UTC()
	from := to.AddDate(0, 0, -windowDays)

	query := url.Values{}
	query.Set("nmID", strconv.FormatInt(nmID, 10))
	query.Set("dateFrom", from.Format(dateLayout))
	query.Set("dateTo", to.Format(dateLayout))

	var resp salesResponse
	if err := c.get(ctx, "/api/v1/sales", query, &resp); err != nil {
		return nil, fmt.Errorf("sales history for %d: %w", nmID, err)
	}

	history := make([]models.SalesObservation, 0, len(resp.Data))
	for _, r := range resp.Data {
		date, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			c.logger.Warn().Str("date", r.Date).Int64("nm_id", nmID).Msg("skipping sales record with bad date")
			continue
		}
		price := r.FinishedPrice
		if price == 0 {
			price = r.Price
		}
		history = append(history, models.SalesObservation{
			Date:      date,
			Price:     fromKopecks(price),
			UnitsSold: float64(r.Quantity),
		})
	}

	c.logger.Debug().
		Int64("nm_id", nmID).
		Int("observations", len(history)).
		Msg("fetched sales history")

	return history, nil
}

// Competitors fetches a category snapshot of listings with at least minReviews reviews
func (c *Client) Competitors(ctx context.Context, category string, minReviews int) ([]models.CompetitorListing, error) {
	query := url.Values{}
	query.Set("category", category)
	query.Set("minReviews", strconv.Itoa(minReviews))

	var resp catalogResponse
	if err := c.get(ctx, "/api/v1/catalog", query, &resp); err != nil {
		return nil, fmt.Errorf("competitors in %q: %w", category, err)
	}

	listings := make([]models.CompetitorListing, 0, len(resp.Data.Products))
	for _, p := range resp.Data.Products {
		if p.InStock != nil && !*p.InStock {
			continue
		}
		price := p.SalePriceU
		if price == 0 {
			price = p.PriceU
		}
		listings = append(listings, models.CompetitorListing{
			NmID:         p.ID,
			Name:         p.Name,
			Brand:        p.Brand,
			Price:        fromKopecks(price),
			Rating:       p.Rating,
			ReviewsCount: p.Feedbacks,
			SalesPerDay:  p.SalesPerDay,
			InStock:      p.InStock,
		})
	}

	c.logger.Debug().
		Str("category", category).
		Int("listings", len(listings)).
		Msg("fetched competitor snapshot")

	return listings, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limit wait: %w", models.ErrExternalService, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrExternalService, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", path, models.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s returned status %d: %s",
			models.ErrExternalService, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s: %w", models.ErrExternalService, path, err)
	}
	return nil
}

func fromKopecks(v int64) float64 {
	return decimal.New(v, -2).InexactFloat64()
}

// SalesHistoryFeed adapts Client to the sales history collaborator
type SalesHistoryFeed struct {
	client *Client
}

// NewSalesHistoryFeed creates a sales history feed backed by c
func NewSalesHistoryFeed(c *Client) *SalesHistoryFeed {
	return &SalesHistoryFeed{client: c}
}

// Fetch returns daily sales observations
func (f *SalesHistoryFeed) Fetch(ctx context.Context, nmID int64, windowDays int) ([]models.SalesObservation, error) {
	return f.client.SalesHistory(ctx, nmID, windowDays)
}

// CompetitorFeed adapts Client to the competitor collaborator
type CompetitorFeed struct {
	client *Client
}

// NewCompetitorFeed creates a competitor feed backed by c
func NewCompetitorFeed(c *Client) *CompetitorFeed {
	return &CompetitorFeed{client: c}
}

// Fetch returns a competitor snapshot
func (f *CompetitorFeed) Fetch(ctx context.Context, category string, minReviews int) ([]models.CompetitorListing, error) {
	return f.client.Competitors(ctx, category, minReviews)
}
