package contracts

import (
	"context"

	"github.com/light-bringer/foxshop-service/internal/app/product/domain"
)

// ProductRepository defines the interface for product persistence.
// Implementations translate their own "missing row" signal into a
// domain.NotFoundError.
type ProductRepository interface {
	// Create inserts a new product and assigns its generated ID.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by ID, reconstructing the domain aggregate.
	GetByID(ctx context.Context, productID int64) (*domain.Product, error)

	// Exists checks if a product exists, whatever its active state.
	Exists(ctx context.Context, productID int64) (bool, error)

	// Save persists the product's dirty fields together with its pending
	// price changes in one atomic transaction, then clears change tracking.
	// It returns the persisted price changes with their storage IDs.
	Save(ctx context.Context, product *domain.Product) ([]domain.PriceChange, error)
}
