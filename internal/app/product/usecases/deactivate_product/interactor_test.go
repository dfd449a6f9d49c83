package deactivate_product

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/foxshop-service/internal/app/product/domain"
	"github.com/light-bringer/foxshop-service/internal/app/product/repo/memrepo"
	"github.com/light-bringer/foxshop-service/internal/pkg/clock"
)

func TestDeactivateProduct(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 12, 28, 14, 0, 0, 0, time.UTC)
	store := memrepo.NewStore()

	p, err := domain.NewProduct("Berries", domain.MustParseMoney("3.99"), 7, created)
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, p))

	clk := clock.NewMockClock(created.Add(time.Hour))
	interactor := NewInteractor(store, clk)

	dto, err := interactor.Execute(ctx, &Request{ProductID: p.ID()})
	require.NoError(t, err)
	assert.False(t, dto.IsActive)
	assert.Equal(t, "Berries", dto.Name)
	assert.Equal(t, "3.99", dto.Price.String())
	assert.Equal(t, int64(7), dto.StockQuantity)
	assert.Equal(t, clk.Now(), dto.UpdatedAt)

	// Still fetchable by ID, with no history written
	stored, err := store.GetProductByID(ctx, p.ID())
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Empty(t, stored.PriceHistory)

	t.Run("second call is a no-op", func(t *testing.T) {
		clk.Advance(time.Hour)
		again, err := interactor.Execute(ctx, &Request{ProductID: p.ID()})
		require.NoError(t, err)
		assert.False(t, again.IsActive)
		assert.Equal(t, dto.UpdatedAt, again.UpdatedAt)
	})
}

func TestDeactivateProduct_NotFound(t *testing.T) {
	interactor := NewInteractor(memrepo.NewStore(), clock.NewRealClock())

	_, err := interactor.Execute(context.Background(), &Request{ProductID: 42})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
