package contracts

import (
	"context"

	"github.com/light-bringer/foxshop-service/internal/app/product/domain"
)

// PriceHistoryRepository defines read access to the price history log.
// Writes happen only through ProductRepository.Save.
type PriceHistoryRepository interface {
	// ListByProductID returns a product's history, most recent first.
	// It does not check that the product exists.
	ListByProductID(ctx context.Context, productID int64) ([]domain.PriceChange, error)
}
