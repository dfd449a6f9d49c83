package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/light-bringer/foxshop-service/internal/app/product/contracts"
	"github.com/light-bringer/foxshop-service/internal/app/product/domain"
	"github.com/light-bringer/foxshop-service/internal/models/m_product"
	"github.com/light-bringer/foxshop-service/internal/pkg/query"
)

// priceHistoryRelation is the Row field holding the history association.
const priceHistoryRelation = "PriceHistory"

// productOrder sorts names byte-wise so Postgres agrees with Spanner and
// the in-memory store regardless of the database collation.
const productOrder = m_product.Name + ` COLLATE "C" ASC, ` + m_product.ProductID + " ASC"

// ReadModel implements contracts.ReadModel with gorm.
type ReadModel struct {
	db *gorm.DB
}

// NewReadModel creates a new ReadModel.
func NewReadModel(db *gorm.DB) contracts.ReadModel {
	return &ReadModel{db: db}
}

// GetProductByID loads a product and preloads its history, newest first.
func (rm *ReadModel) GetProductByID(ctx context.Context, productID int64) (*contracts.ProductDTO, error) {
	var row m_product.Row
	err := rm.db.WithContext(ctx).
		Preload(priceHistoryRelation, func(db *gorm.DB) *gorm.DB {
			return db.Order(historyOrder)
		}).
		Where(m_product.ProductID+" = ?", productID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError(productID)
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	dto := rowToDTO(&row)
	dto.PriceHistory = historyRowsToDomain(row.PriceHistory)
	return dto, nil
}

// ListProducts retrieves every product matching the filter, ordered by name.
func (rm *ReadModel) ListProducts(ctx context.Context, filter *contracts.ListFilter) ([]*contracts.ProductDTO, error) {
	tx := rm.db.WithContext(ctx).Model(&m_product.Row{})

	if where, params := query.Render(filter.Conditions()); where != "" {
		tx = tx.Where(where, params)
	}

	var rows []m_product.Row
	if err := tx.Order(productOrder).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]*contracts.ProductDTO, 0, len(rows))
	for i := range rows {
		products = append(products, rowToDTO(&rows[i]))
	}
	return products, nil
}
