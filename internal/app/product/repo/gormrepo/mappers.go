package gormrepo

import (
	"github.com/light-bringer/foxshop-service/internal/app/product/contracts"
	"github.com/light-bringer/foxshop-service/internal/app/product/domain"
	"github.com/light-bringer/foxshop-service/internal/models/m_price_history"
	"github.com/light-bringer/foxshop-service/internal/models/m_product"
)

func domainToRow(product *domain.Product) *m_product.Row {
	return &m_product.Row{
		ProductID:     product.ID(),
		Name:          product.Name(),
		Price:         product.Price().Decimal(),
		StockQuantity: product.StockQuantity(),
		IsActive:      product.IsActive(),
		CreatedAt:     product.CreatedAt(),
		UpdatedAt:     product.UpdatedAt(),
	}
}

func rowToDomain(row *m_product.Row) *domain.Product {
	return domain.ReconstructProduct(
		row.ProductID,
		row.Name,
		domain.NewMoney(row.Price),
		row.StockQuantity,
		row.IsActive,
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func rowToDTO(row *m_product.Row) *contracts.ProductDTO {
	return &contracts.ProductDTO{
		ProductID:     row.ProductID,
		Name:          row.Name,
		Price:         domain.NewMoney(row.Price),
		StockQuantity: row.StockQuantity,
		IsActive:      row.IsActive,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func historyRowsToDomain(rows []m_price_history.Row) []domain.PriceChange {
	out := make([]domain.PriceChange, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.PriceChange{
			ID:        row.HistoryID,
			ProductID: row.ProductID,
			OldPrice:  domain.NewMoney(row.OldPrice),
			NewPrice:  domain.NewMoney(row.NewPrice),
			ChangedAt: row.ChangedAt,
		})
	}
	return out
}
