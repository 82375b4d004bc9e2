package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/price-optimizer-service/internal/models"
)

const queryTimeout = 3 * time.Second

const schema = `
CREATE TABLE IF NOT EXISTS products (
	nm_id         BIGINT PRIMARY KEY,
	name          TEXT NOT NULL,
	category      TEXT NOT NULL,
	current_price NUMERIC(12, 2) NOT NULL CHECK (current_price > 0),
	cost          NUMERIC(12, 2) NOT NULL CHECK (cost >= 0),
	size          TEXT NOT NULL DEFAULT ''
)`

// PostgresStore is a product catalog backed by PostgreSQL
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresStore connects to dsn and verifies the connection
func NewPostgresStore(ctx context.Context, dsn string, logger zerolog.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &PostgresStore{
		pool:   pool,
		logger: logger.With().Str("component", "postgres_store").Logger(),
	}, nil
}

// EnsureSchema creates the products table when missing
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Add validates and upserts a product
func (s *PostgresStore) Add(ctx context.Context, product models.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	query := `INSERT INTO products (nm_id, name, category, current_price, cost, size)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (nm_id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			current_price = EXCLUDED.current_price,
			cost = EXCLUDED.cost,
			size = EXCLUDED.size`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.pool.Exec(ctx, query,
		product.NmID, product.Name, product.Category,
		product.CurrentPrice.String(), product.Cost.String(), product.Size)
	if err != nil {
		return fmt.Errorf("failed to upsert product %d: %w", product.NmID, err)
	}
	return nil
}

// Get retrieves a product by nm_id
func (s *PostgresStore) Get(ctx context.Context, nmID int64) (*models.Product, error) {
	query := `SELECT nm_id, name, category, current_price::text, cost::text, size
		FROM products WHERE nm_id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(s.pool.QueryRow(ctx, query, nmID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ProductNotFound(nmID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d: %w", nmID, err)
	}
	return p, nil
}

// List returns all products ordered by nm_id
func (s *PostgresStore) List(ctx context.Context) ([]models.Product, error) {
	query := `SELECT nm_id, name, category, current_price::text, cost::text, size
		FROM products ORDER BY nm_id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// Ping checks the database connection
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool
func (s *PostgresStore) Close() {
	s.pool.Close()
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	var (
		p           models.Product
		price, cost string
	)
	if err := row.Scan(&p.NmID, &p.Name, &p.Category, &price, &cost, &p.Size); err != nil {
		return nil, err
	}

	var err error
	if p.CurrentPrice, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("product %d current_price %q: %w", p.NmID, price, err)
	}
	if p.Cost, err = decimal.NewFromString(cost); err != nil {
		return nil, fmt.Errorf("product %d cost %q: %w", p.NmID, cost, err)
	}
	return &p, nil
}
