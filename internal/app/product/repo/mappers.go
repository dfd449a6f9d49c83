package repo

import (
	"fmt"

	"github.com/light-bringer/foxshop-service/internal/app/product/contracts"
	"github.com/light-bringer/foxshop-service/internal/app/product/domain"
	"github.com/light-bringer/foxshop-service/internal/models/m_price_history"
	"github.com/light-bringer/foxshop-service/internal/models/m_product"
)

// domainToData converts a domain Product to a products row.
func domainToData(product *domain.Product) *m_product.Data {
	data := &m_product.Data{
		ProductID:     product.ID(),
		Name:          product.Name(),
		StockQuantity: product.StockQuantity(),
		IsActive:      product.IsActive(),
		CreatedAt:     product.CreatedAt(),
		UpdatedAt:     product.UpdatedAt(),
	}
	data.Price.Set(product.Price().Rat())
	return data
}

// dataToDomain converts a products row to a domain Product.
func dataToDomain(data *m_product.Data) (*domain.Product, error) {
	price, err := domain.NewMoneyFromRat(&data.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price for product %d: %w", data.ProductID, err)
	}

	return domain.ReconstructProduct(
		data.ProductID,
		data.Name,
		price,
		data.StockQuantity,
		data.IsActive,
		data.CreatedAt,
		data.UpdatedAt,
	), nil
}

// dataToDTO converts a products row to a read-model DTO.
func dataToDTO(data *m_product.Data) (*contracts.ProductDTO, error) {
	price, err := domain.NewMoneyFromRat(&data.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price for product %d: %w", data.ProductID, err)
	}

	return &contracts.ProductDTO{
		ProductID:     data.ProductID,
		Name:          data.Name,
		Price:         price,
		StockQuantity: data.StockQuantity,
		IsActive:      data.IsActive,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}, nil
}

// historyDataToDomain converts a price_history row to a PriceChange.
func historyDataToDomain(data *m_price_history.Data) (domain.PriceChange, error) {
	oldPrice, err := domain.NewMoneyFromRat(&data.OldPrice)
	if err != nil {
		return domain.PriceChange{}, fmt.Errorf("invalid old price: %w", err)
	}
	newPrice, err := domain.NewMoneyFromRat(&data.NewPrice)
	if err != nil {
		return domain.PriceChange{}, fmt.Errorf("invalid new price: %w", err)
	}

	return domain.PriceChange{
		ID:        data.HistoryID,
		ProductID: data.ProductID,
		OldPrice:  oldPrice,
		NewPrice:  newPrice,
		ChangedAt: data.ChangedAt,
	}, nil
}
