package create_product

import (
	"context"
	"fmt"

	"github.com/light-bringer/foxshop-service/internal/app/product/contracts"
	"github.com/light-bringer/foxshop-service/internal/app/product/domain"
	"github.com/light-bringer/foxshop-service/internal/pkg/clock"
	"github.com/light-bringer/foxshop-service/internal/pkg/logger"
	"github.com/light-bringer/foxshop-service/internal/pkg/metrics"
)

// Request contains the data needed to create a product.
type Request struct {
	Name          string
	Price         domain.Money
	StockQuantity int64
}

// Interactor handles the create product use case.
type Interactor struct {
	repo    contracts.ProductRepository
	clock   clock.Clock
	metrics *metrics.Metrics
}

// NewInteractor creates a new create product interactor. m may be nil.
func NewInteractor(repo contracts.ProductRepository, clock clock.Clock, m *metrics.Metrics) *Interactor {
	return &Interactor{
		repo:    repo,
		clock:   clock,
		metrics: m,
	}
}

// Execute creates a new active product and returns it with its assigned ID.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*contracts.ProductDTO, error) {
	// 1. Create domain aggregate (validates name, price and stock)
	product, err := domain.NewProduct(req.Name, req.Price, req.StockQuantity, i.clock.Now())
	if err != nil {
		return nil, err
	}

	// 2. Persist; the store assigns the ID
	if err := i.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	// 3. Record
	i.metrics.RecordProductCreated()
	logger.Info(ctx, "product created",
		"product_id", product.ID(),
		"price", product.Price().String(),
		"stock_quantity", product.StockQuantity(),
	)

	return contracts.NewProductDTO(product), nil
}
