package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/cypherlabdev/price-optimizer-service/internal/models"
	"github.com/cypherlabdev/price-optimizer-service/internal/service"
)

// Config holds all configuration for price-optimizer-service
type Config struct {
	Server      ServerConfig                  `mapstructure:"server"`
	Kafka       KafkaConfig                   `mapstructure:"kafka"`
	Redis       RedisConfig                   `mapstructure:"redis"`
	Postgres    PostgresConfig                `mapstructure:"postgres"`
	Marketplace MarketplaceConfig             `mapstructure:"marketplace"`
	Pricing     PricingConfig                 `mapstructure:"pricing"`
	Seasonality map[string]map[string]float64 `mapstructure:"seasonality"` // category -> month -> factor
	Catalog     []CatalogItem                 `mapstructure:"catalog"`
	Logging     LoggingConfig                 `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Enabled      bool     `mapstructure:"enabled"`
	Brokers      []string `mapstructure:"brokers"`
	RequestTopic string   `mapstructure:"request_topic"` // Topic to consume optimization requests from
	ResultTopic  string   `mapstructure:"result_topic"`  // Topic to publish recommendations to
	GroupID      string   `mapstructure:"group_id"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr          string        `mapstructure:"addr"`
	Password      string        `mapstructure:"password"`
	DB            int           `mapstructure:"db"`
	ResultTTL     time.Duration `mapstructure:"result_ttl"`
	CompetitorTTL time.Duration `mapstructure:"competitor_ttl"`
	HistoryTTL    time.Duration `mapstructure:"history_ttl"`
}

// PostgresConfig holds the catalog database configuration
type PostgresConfig struct {
	DSN string `mapstructure:"dsn"` // Empty keeps the catalog in memory
}

// MarketplaceConfig holds marketplace API configuration
type MarketplaceConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RatePerMinute  int           `mapstructure:"rate_per_minute"`
	MaxRetries     int           `mapstructure:"max_retries"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff"`
	MaxBackoff     time.Duration `mapstructure:"max_backoff"`
}

// PricingConfig holds price optimization parameters
type PricingConfig struct {
	WindowDays         int     `mapstructure:"window_days"`
	MinPricePoints     int     `mapstructure:"min_price_points"`
	BaselineDays       int     `mapstructure:"baseline_days"`
	GridLower          float64 `mapstructure:"grid_lower"`
	GridUpper          float64 `mapstructure:"grid_upper"`
	GridStep           float64 `mapstructure:"grid_step"`
	MinMarginFactor    float64 `mapstructure:"min_margin_factor"`
	TopN               int     `mapstructure:"top_n"`
	DefaultMinReviews  int     `mapstructure:"default_min_reviews"`
	ConservativeChange float64 `mapstructure:"conservative_change"`
	AggressiveChange   float64 `mapstructure:"aggressive_change"`
}

// CatalogItem seeds the in-memory catalog. Prices are decimal strings.
type CatalogItem struct {
	NmID         int64  `mapstructure:"nm_id"`
	Name         string `mapstructure:"name"`
	Category     string `mapstructure:"category"`
	CurrentPrice string `mapstructure:"current_price"`
	Cost         string `mapstructure:"cost"`
	Size         string `mapstructure:"size"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8081)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("kafka.enabled", true)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.request_topic", "price_optimization_requests")
	v.SetDefault("kafka.result_topic", "price_recommendations")
	v.SetDefault("kafka.group_id", "price-optimizer")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.result_ttl", 24*time.Hour)
	v.SetDefault("redis.competitor_ttl", 30*time.Minute)
	v.SetDefault("redis.history_ttl", 72*time.Hour)

	v.SetDefault("postgres.dsn", "")

	v.SetDefault("marketplace.base_url", "https://statistics-api.wildberries.ru")
	v.SetDefault("marketplace.api_key", "")
	v.SetDefault("marketplace.timeout", 3*time.Second)
	v.SetDefault("marketplace.rate_per_minute", 60)
	v.SetDefault("marketplace.max_retries", 2)
	v.SetDefault("marketplace.initial_backoff", 200*time.Millisecond)
	v.SetDefault("marketplace.max_backoff", 2*time.Second)

	defaults := models.DefaultOptimizationParams()
	v.SetDefault("pricing.window_days", defaults.WindowDays)
	v.SetDefault("pricing.min_price_points", defaults.MinPricePoints)
	v.SetDefault("pricing.baseline_days", defaults.BaselineDays)
	v.SetDefault("pricing.grid_lower", defaults.Grid.Lower)
	v.SetDefault("pricing.grid_upper", defaults.Grid.Upper)
	v.SetDefault("pricing.grid_step", defaults.Grid.Step)
	v.SetDefault("pricing.min_margin_factor", defaults.MinMarginFactor)
	v.SetDefault("pricing.top_n", defaults.TopN)
	v.SetDefault("pricing.default_min_reviews", defaults.DefaultMinReviews)
	v.SetDefault("pricing.conservative_change", defaults.ConservativeChange)
	v.SetDefault("pricing.aggressive_change", defaults.AggressiveChange)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix("PRICE_OPTIMIZER")
	v.AutomaticEnv()
	// Replace . with _ for environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal to struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects inconsistent settings
func (c *Config) Validate() error {
	if err := c.Pricing.ToOptimizationParams().Validate(); err != nil {
		return fmt.Errorf("invalid pricing config: %w", err)
	}
	if c.Marketplace.MaxRetries < 0 {
		return models.InvalidInputf("marketplace.max_retries must be non-negative, got %d", c.Marketplace.MaxRetries)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return models.InvalidInputf("kafka.brokers is required when kafka is enabled")
	}
	return nil
}

// ToOptimizationParams converts config to optimization parameters
func (c *PricingConfig) ToOptimizationParams() models.OptimizationParams {
	return models.OptimizationParams{
		WindowDays:     c.WindowDays,
		MinPricePoints: c.MinPricePoints,
		BaselineDays:   c.BaselineDays,
		Grid: models.GridParams{
			Lower: c.GridLower,
			Upper: c.GridUpper,
			Step:  c.GridStep,
		},
		MinMarginFactor:    c.MinMarginFactor,
		TopN:               c.TopN,
		DefaultMinReviews:  c.DefaultMinReviews,
		ConservativeChange: c.ConservativeChange,
		AggressiveChange:   c.AggressiveChange,
	}
}

// ToRetryPolicy converts marketplace settings to the upstream retry policy
func (c *MarketplaceConfig) ToRetryPolicy() service.RetryPolicy {
	return service.RetryPolicy{
		Timeout:        c.Timeout,
		MaxRetries:     c.MaxRetries,
		InitialBackoff: c.InitialBackoff,
		MaxBackoff:     c.MaxBackoff,
	}
}

// Products converts catalog seed entries to validated products
func (c *Config) Products() ([]models.Product, error) {
	products := make([]models.Product, 0, len(c.Catalog))
	for i, item := range c.Catalog {
		price, err := decimal.NewFromString(item.CurrentPrice)
		if err != nil {
			return nil, models.InvalidInputf("catalog[%d] current_price %q: %v", i, item.CurrentPrice, err)
		}
		cost, err := decimal.NewFromString(item.Cost)
		if err != nil {
			return nil, models.InvalidInputf("catalog[%d] cost %q: %v", i, item.Cost, err)
		}
		p := models.Product{
			NmID:         item.NmID,
			Name:         item.Name,
			Category:     item.Category,
			CurrentPrice: price,
			Cost:         cost,
			Size:         item.Size,
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("catalog[%d]: %w", i, err)
		}
		products = append(products, p)
	}
	return products, nil
}
