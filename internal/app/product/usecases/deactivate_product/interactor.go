package deactivate_product

import (
	"context"
	"fmt"

	"github.com/light-bringer/foxshop-service/internal/app/product/contracts"
	"github.com/light-bringer/foxshop-service/internal/pkg/clock"
	"github.com/light-bringer/foxshop-service/internal/pkg/logger"
)

// Request contains the product ID to deactivate.
type Request struct {
	ProductID int64
}

// Interactor handles the deactivate product use case (soft delete).
type Interactor struct {
	repo  contracts.ProductRepository
	clock clock.Clock
}

// NewInteractor creates a new deactivate product interactor.
func NewInteractor(repo contracts.ProductRepository, clock clock.Clock) *Interactor {
	return &Interactor{
		repo:  repo,
		clock: clock,
	}
}

// Execute sets isActive to false and leaves every other field as is.
// The product stays readable by ID. Deactivating twice is a no-op.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*contracts.ProductDTO, error) {
	// 1. Load aggregate
	product, err := i.repo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	// 2. Call domain method
	product.Deactivate()
	if !product.Changes().HasChanges() {
		return contracts.NewProductDTO(product), nil
	}
	product.MarkUpdated(i.clock.Now())

	// 3. Save
	if _, err := i.repo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to deactivate product: %w", err)
	}

	logger.Info(ctx, "product deactivated", "product_id", product.ID())

	return contracts.NewProductDTO(product), nil
}
