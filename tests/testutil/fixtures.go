package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/light-bringer/foxshop-service/internal/app/product/contracts"
	"github.com/light-bringer/foxshop-service/internal/app/product/domain"
)

// CreateTestProduct persists an active product through the repository.
func CreateTestProduct(t *testing.T, repo contracts.ProductRepository, name, price string, stock int64, now time.Time) *domain.Product {
	t.Helper()

	product, err := domain.NewProduct(name, domain.MustParseMoney(price), stock, now)
	require.NoError(t, err, "failed to build test product")
	require.NoError(t, repo.Create(context.Background(), product), "failed to create test product")

	return product
}

// ChangeTestProductPrice loads a product, sets a new price at now and saves it.
func ChangeTestProductPrice(t *testing.T, repo contracts.ProductRepository, productID int64, price string, now time.Time) []domain.PriceChange {
	t.Helper()

	ctx := context.Background()
	product, err := repo.GetByID(ctx, productID)
	require.NoError(t, err, "failed to load product")

	require.NoError(t, product.SetPrice(domain.MustParseMoney(price), now))
	product.MarkUpdated(now)

	changes, err := repo.Save(ctx, product)
	require.NoError(t, err, "failed to save price change")
	return changes
}

// DeactivateTestProduct soft-deletes a product.
func DeactivateTestProduct(t *testing.T, repo contracts.ProductRepository, productID int64, now time.Time) {
	t.Helper()

	ctx := context.Background()
	product, err := repo.GetByID(ctx, productID)
	require.NoError(t, err, "failed to load product")

	product.Deactivate()
	product.MarkUpdated(now)

	_, err = repo.Save(ctx, product)
	require.NoError(t, err, "failed to deactivate product")
}

// ProductNames extracts names in result order.
func ProductNames(dtos []*contracts.ProductDTO) []string {
	names := make([]string, 0, len(dtos))
	for _, d := range dtos {
		names = append(names, d.Name)
	}
	return names
}
