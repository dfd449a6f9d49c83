package update_product

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

var created = time.Date(2024, 12, 28, 14, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

type fixture struct {
	store      *memrepo.Store
	clock      *clock.MockClock
	interactor *Interactor
	productID  int64
}

func setup(t *testing.T, price string, stock int64) *fixture {
	t.Helper()

	store := memrepo.NewStore()
	p, err := domain.NewProduct("Test Product", domain.MustParseMoney(price), stock, created)
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), p))

	clk := clock.NewMockClock(created.Add(time.Hour))
	return &fixture{
		store:      store,
		clock:      clk,
		interactor: NewInteractor(store, clk, nil),
		productID:  p.ID(),
	}
}

func (f *fixture) history(t *testing.T) []domain.PriceChange {
	t.Helper()
	h, err := f.store.ListByProductID(context.Background(), f.productID)
	require.NoError(t, err)
	return h
}

func TestUpdateProduct_PriceChangeWritesHistory(t *testing.T) {
	f := setup(t, "9.99", 100)

	dto, err := f.interactor.Execute(context.Background(), &Request{
		ProductID: f.productID,
		Price:     ptr(domain.MustParseMoney("19.99")),
	})
	require.NoError(t, err)
	assert.Equal(t, "19.99", dto.Price.String())
	assert.Equal(t, f.clock.Now(), dto.UpdatedAt)
	assert.Equal(t, created, dto.CreatedAt)

	history := f.history(t)
	require.Len(t, history, 1)
	assert.Equal(t, f.productID, history[0].ProductID)
	assert.Equal(t, "9.99", history[0].OldPrice.String())
	assert.Equal(t, "19.99", history[0].NewPrice.String())
	assert.Equal(t, f.clock.Now(), history[0].ChangedAt)
}

func TestUpdateProduct_SamePriceWritesNoHistory(t *testing.T) {
	f := setup(t, "9.99", 100)

	dto, err := f.interactor.Execute(context.Background(), &Request{
		ProductID: f.productID,
		Price:     ptr(domain.MustParseMoney("9.99")),
	})
	require.NoError(t, err)

	assert.Empty(t, f.history(t))
	assert.Equal(t, created, dto.UpdatedAt, "no-op update leaves updatedAt alone")
}

func TestUpdateProduct_StockOnlyWritesNoHistory(t *testing.T) {
	f := setup(t, "9.99", 100)

	dto, err := f.interactor.Execute(context.Background(), &Request{
		ProductID:     f.productID,
		StockQuantity: ptr(int64(5)),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), dto.StockQuantity)
	assert.Equal(t, "9.99", dto.Price.String())
	assert.Empty(t, f.history(t))
}

func TestUpdateProduct_AllFields(t *testing.T) {
	f := setup(t, "9.99", 100)

	dto, err := f.interactor.Execute(context.Background(), &Request{
		ProductID:     f.productID,
		Name:          ptr("Renamed"),
		Price:         ptr(domain.MustParseMoney("5.00")),
		StockQuantity: ptr(int64(0)),
		IsActive:      ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", dto.Name)
	assert.Equal(t, "5.00", dto.Price.String())
	assert.Equal(t, int64(0), dto.StockQuantity)
	assert.False(t, dto.IsActive)
	assert.Len(t, f.history(t), 1)
}

func TestUpdateProduct_Reactivate(t *testing.T) {
	f := setup(t, "9.99", 100)
	ctx := context.Background()

	_, err := f.interactor.Execute(ctx, &Request{ProductID: f.productID, IsActive: ptr(false)})
	require.NoError(t, err)

	dto, err := f.interactor.Execute(ctx, &Request{ProductID: f.productID, IsActive: ptr(true)})
	require.NoError(t, err)
	assert.True(t, dto.IsActive)
}

func TestUpdateProduct_SuccessiveChangesNewestFirst(t *testing.T) {
	f := setup(t, "1.00", 1)
	ctx := context.Background()

	for _, price := range []string{"2.00", "3.00"} {
		f.clock.Advance(time.Minute)
		_, err := f.interactor.Execute(ctx, &Request{ProductID: f.productID, Price: ptr(domain.MustParseMoney(price))})
		require.NoError(t, err)
	}

	history := f.history(t)
	require.Len(t, history, 2)
	assert.Equal(t, "2.00", history[0].OldPrice.String())
	assert.Equal(t, "3.00", history[0].NewPrice.String())
	assert.Equal(t, "1.00", history[1].OldPrice.String())
	assert.True(t, history[0].ChangedAt.After(history[1].ChangedAt))
}

func TestUpdateProduct_ValidationIsAtomic(t *testing.T) {
	f := setup(t, "9.99", 100)
	ctx := context.Background()

	_, err := f.interactor.Execute(ctx, &Request{
		ProductID:     f.productID,
		Price:         ptr(domain.MustParseMoney("19.99")),
		StockQuantity: ptr(int64(-1)),
	})
	require.ErrorIs(t, err, domain.ErrNegativeStock)

	stored, err := f.store.GetProductByID(ctx, f.productID)
	require.NoError(t, err)
	assert.Equal(t, "9.99", stored.Price.String(), "price is not written when another field fails")
	assert.Empty(t, stored.PriceHistory)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	f := setup(t, "9.99", 100)

	_, err := f.interactor.Execute(context.Background(), &Request{
		ProductID: 999,
		Price:     ptr(domain.MustParseMoney("1.00")),
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.EqualError(t, err, "Product with ID 999 not found")
	assert.Empty(t, f.history(t))
}
