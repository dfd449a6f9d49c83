package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/foxshop-service/internal/app/product/domain"
)

// ProductDTO is a data transfer object for product queries.
type ProductDTO struct {
	ProductID     int64
	Name          string
	Price         domain.Money
	StockQuantity int64
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// PriceHistory is populated by GetProductByID only, most recent first.
	PriceHistory []domain.PriceChange
}

// ReadModel defines the interface for product queries.
// Read models bypass the aggregate and may load relations in one round trip.
type ReadModel interface {
	// GetProductByID retrieves a product with its full price history.
	GetProductByID(ctx context.Context, productID int64) (*ProductDTO, error)

	// ListProducts retrieves all products matching the filter, ordered by name.
	ListProducts(ctx context.Context, filter *ListFilter) ([]*ProductDTO, error)
}

// NewProductDTO snapshots an aggregate. PriceHistory is left nil.
func NewProductDTO(p *domain.Product) *ProductDTO {
	return &ProductDTO{
		ProductID:     p.ID(),
		Name:          p.Name(),
		Price:         p.Price(),
		StockQuantity: p.StockQuantity(),
		IsActive:      p.IsActive(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}
