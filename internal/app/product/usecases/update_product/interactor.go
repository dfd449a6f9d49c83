package update_product

import (
	"context"
	"fmt"

	"github.com/light-bringer/foxshop-service/internal/app/product/contracts"
	"github.com/light-bringer/foxshop-service/internal/app/product/domain"
	"github.com/light-bringer/foxshop-service/internal/pkg/clock"
	"github.com/light-bringer/foxshop-service/internal/pkg/logger"
	"github.com/light-bringer/foxshop-service/internal/pkg/metrics"
)

// Request contains the data to update a product.
// A nil field is left unchanged.
type Request struct {
	ProductID     int64
	Name          *string
	Price         *domain.Money
	StockQuantity *int64
	IsActive      *bool
}

// Interactor handles the update product use case.
type Interactor struct {
	repo    contracts.ProductRepository
	clock   clock.Clock
	metrics *metrics.Metrics
}

// NewInteractor creates a new update product interactor. m may be nil.
func NewInteractor(repo contracts.ProductRepository, clock clock.Clock, m *metrics.Metrics) *Interactor {
	return &Interactor{
		repo:    repo,
		clock:   clock,
		metrics: m,
	}
}

// Execute applies a partial update. A price change is recorded in the
// product's history in the same write as the product row. Nothing is written
// when no field actually changes.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*contracts.ProductDTO, error) {
	// 1. Load aggregate
	product, err := i.repo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	// 2. Call domain methods; any validation failure aborts before a write
	now := i.clock.Now()

	if req.Name != nil {
		if err := product.SetName(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.Price != nil {
		if err := product.SetPrice(*req.Price, now); err != nil {
			return nil, err
		}
	}

	if req.StockQuantity != nil {
		if err := product.SetStockQuantity(*req.StockQuantity); err != nil {
			return nil, err
		}
	}

	if req.IsActive != nil {
		if *req.IsActive {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	// 3. Nothing changed: return the current state without writing
	if !product.Changes().HasChanges() {
		return contracts.NewProductDTO(product), nil
	}

	product.MarkUpdated(now)

	// 4. Save product row and history rows atomically
	persisted, err := i.repo.Save(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	// 5. Record
	i.metrics.RecordPriceChanges(len(persisted))
	for _, change := range persisted {
		logger.Info(ctx, "product price changed",
			"product_id", change.ProductID,
			"history_id", change.ID,
			"old_price", change.OldPrice.String(),
			"new_price", change.NewPrice.String(),
		)
	}

	return contracts.NewProductDTO(product), nil
}
