package store

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/price-optimizer-service/internal/models"
)

func product(nmID int64, price string) models.Product {
	return models.Product{
		NmID:         nmID,
		Name:         "Linen shirt",
		Category:     "shirts",
		CurrentPrice: decimal.RequireFromString(price),
		Cost:         decimal.NewFromInt(500),
		Size:         "M",
	}
}

// TestMemoryStore_AddGet tests insert and lookup
func TestMemoryStore_AddGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, product(42, "999.90")))

	p, err := s.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Linen shirt", p.Name)
	assert.True(t, p.CurrentPrice.Equal(decimal.RequireFromString("999.9")))
}

// TestMemoryStore_GetReturnsCopy tests callers can't mutate the catalog
func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, product(42, "1000")))

	p, err := s.Get(ctx, 42)
	require.NoError(t, err)
	p.Name = "changed"

	again, err := s.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Linen shirt", again.Name)
}

// TestMemoryStore_NotFound tests the unknown id error
func TestMemoryStore_NotFound(t *testing.T) {
	s := NewMemoryStore()

	p, err := s.Get(context.Background(), 7)

	assert.Nil(t, p)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

// TestMemoryStore_AddRejectsInvalid tests catalog invariants
func TestMemoryStore_AddRejectsInvalid(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	bad := product(42, "0")
	assert.ErrorIs(t, s.Add(ctx, bad), models.ErrInvalidInput)

	bad = product(42, "100")
	bad.Cost = decimal.NewFromInt(-1)
	assert.ErrorIs(t, s.Add(ctx, bad), models.ErrInvalidInput)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// TestMemoryStore_ListOrdered tests listing order and replacement
func TestMemoryStore_ListOrdered(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, product(30, "100")))
	require.NoError(t, s.Add(ctx, product(10, "100")))
	require.NoError(t, s.Add(ctx, product(20, "100")))
	require.NoError(t, s.Add(ctx, product(10, "150")))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{10, 20, 30}, []int64{list[0].NmID, list[1].NmID, list[2].NmID})
	assert.True(t, list[0].CurrentPrice.Equal(decimal.NewFromInt(150)))
}

// TestMemoryStore_ConcurrentAccess tests thread safety
func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := int64(1); i <= 20; i++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			assert.NoError(t, s.Add(ctx, product(id, "100")))
		}(i)
		go func(id int64) {
			defer wg.Done()
			_, _ = s.Get(ctx, id)
		}(i)
	}
	wg.Wait()

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 20)
}
