package get_price_history

import (
	"context"

	"github.com/light-bringer/foxshop-service/internal/app/product/contracts"
	"github.com/light-bringer/foxshop-service/internal/app/product/domain"
)

// Request contains the product whose history is read.
type Request struct {
	ProductID int64
}

// Query handles the price history query use case.
type Query struct {
	products contracts.ProductRepository
	history  contracts.PriceHistoryRepository
}

// NewQuery creates a new price history query.
func NewQuery(products contracts.ProductRepository, history contracts.PriceHistoryRepository) *Query {
	return &Query{
		products: products,
		history:  history,
	}
}

// Execute returns the product's price changes, newest first.
// A missing product is an error; a product that never changed price has an
// empty history.
func (q *Query) Execute(ctx context.Context, req *Request) ([]domain.PriceChange, error) {
	exists, err := q.products.Exists(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError(req.ProductID)
	}

	changes, err := q.history.ListByProductID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if changes == nil {
		changes = []domain.PriceChange{}
	}
	return changes, nil
}
