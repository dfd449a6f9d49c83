// Package gormrepo implements the product store contracts on PostgreSQL through gorm.
package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/light-bringer/foxshop-service/internal/app/product/contracts"
	"github.com/light-bringer/foxshop-service/internal/app/product/domain"
	"github.com/light-bringer/foxshop-service/internal/models/m_price_history"
	"github.com/light-bringer/foxshop-service/internal/models/m_product"
)

// ProductRepo implements ProductRepository with gorm.
type ProductRepo struct {
	db *gorm.DB
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(db *gorm.DB) contracts.ProductRepository {
	return &ProductRepo{db: db}
}

// AutoMigrate creates or updates the products and price_history tables.
// Production schemas come from cmd/migrate; this is for tests and local runs.
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&m_product.Row{}, &m_price_history.Row{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Create inserts a new product; the database assigns the ID.
func (r *ProductRepo) Create(ctx context.Context, product *domain.Product) error {
	row := domainToRow(product)
	row.ProductID = 0

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	product.AssignID(row.ProductID)
	product.MarkPersisted(nil)
	return nil
}

// Save updates the dirty columns and appends pending price changes in one transaction.
func (r *ProductRepo) Save(ctx context.Context, product *domain.Product) ([]domain.PriceChange, error) {
	pending := product.PendingPriceChanges()
	updates := dirtyColumns(product)
	if len(updates) == 0 && len(pending) == 0 {
		return nil, nil
	}

	var historyIDs []int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		historyIDs = make([]int64, 0, len(pending))

		if len(updates) > 0 {
			res := tx.Model(&m_product.Row{}).
				Where(m_product.ProductID+" = ?", product.ID()).
				Updates(updates)
			if res.Error != nil {
				return fmt.Errorf("failed to update product: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return domain.NewNotFoundError(product.ID())
			}
		}

		for _, change := range pending {
			row := &m_price_history.Row{
				ProductID: product.ID(),
				OldPrice:  change.OldPrice.Decimal(),
				NewPrice:  change.NewPrice.Decimal(),
				ChangedAt: change.ChangedAt,
			}
			if err := tx.Create(row).Error; err != nil {
				return fmt.Errorf("failed to insert price history: %w", err)
			}
			historyIDs = append(historyIDs, row.HistoryID)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	return product.MarkPersisted(historyIDs), nil
}

// GetByID retrieves a product by ID, reconstructing the domain aggregate.
func (r *ProductRepo) GetByID(ctx context.Context, productID int64) (*domain.Product, error) {
	var row m_product.Row
	err := r.db.WithContext(ctx).
		Where(m_product.ProductID+" = ?", productID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError(productID)
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	return rowToDomain(&row), nil
}

// Exists checks if a product exists.
func (r *ProductRepo) Exists(ctx context.Context, productID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&m_product.Row{}).
		Where(m_product.ProductID+" = ?", productID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return count > 0, nil
}

// dirtyColumns maps the aggregate's dirty fields to column updates.
func dirtyColumns(product *domain.Product) map[string]interface{} {
	changes := product.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})
	if changes.Dirty(domain.FieldName) {
		updates[m_product.Name] = product.Name()
	}
	if changes.Dirty(domain.FieldPrice) {
		updates[m_product.Price] = product.Price().Decimal()
	}
	if changes.Dirty(domain.FieldStockQuantity) {
		updates[m_product.StockQuantity] = product.StockQuantity()
	}
	if changes.Dirty(domain.FieldIsActive) {
		updates[m_product.IsActive] = product.IsActive()
	}
	if len(updates) > 0 {
		updates[m_product.UpdatedAt] = product.UpdatedAt()
	}
	return updates
}
