package gormrepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/light-bringer/foxshop-service/internal/app/product/contracts"
	"github.com/light-bringer/foxshop-service/internal/app/product/domain"
	"github.com/light-bringer/foxshop-service/internal/models/m_price_history"
)

// historyOrder sorts newest first with the ID as tie-break.
const historyOrder = m_price_history.ChangedAt + " DESC, " + m_price_history.HistoryID + " DESC"

// PriceHistoryRepo implements PriceHistoryRepository with gorm.
type PriceHistoryRepo struct {
	db *gorm.DB
}

// NewPriceHistoryRepo creates a new PriceHistoryRepo.
func NewPriceHistoryRepo(db *gorm.DB) contracts.PriceHistoryRepository {
	return &PriceHistoryRepo{db: db}
}

// ListByProductID retrieves price history for a product, most recent first.
func (r *PriceHistoryRepo) ListByProductID(ctx context.Context, productID int64) ([]domain.PriceChange, error) {
	var rows []m_price_history.Row
	err := r.db.WithContext(ctx).
		Where(m_price_history.ProductID+" = ?", productID).
		Order(historyOrder).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list price history: %w", err)
	}

	return historyRowsToDomain(rows), nil
}
