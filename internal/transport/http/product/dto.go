package product

import (
	"encoding/json"
	"time"

	"github.com/light-bringer/foxshop-service/internal/app/product/contracts"
	"github.com/light-bringer/foxshop-service/internal/app/product/domain"
)

// createProductRequest is the POST /products body.
type createProductRequest struct {
	Name          *string         `json:"name"`
	Price         json.RawMessage `json:"price"`
	StockQuantity json.RawMessage `json:"stockQuantity"`
}

// patchProductRequest is the PATCH /products/:id body. Absent or null fields
// are left unchanged.
type patchProductRequest struct {
	Name          *string         `json:"name"`
	Price         json.RawMessage `json:"price"`
	StockQuantity json.RawMessage `json:"stockQuantity"`
	IsActive      *bool           `json:"isActive"`
}

type productResponse struct {
	ID            int64       `json:"id"`
	Name          string      `json:"name"`
	Price         json.Number `json:"price"`
	StockQuantity int64       `json:"stockQuantity"`
	IsActive      bool        `json:"isActive"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

type productDetailResponse struct {
	productResponse
	PriceHistory []priceHistoryResponse `json:"priceHistory"`
}

type priceHistoryResponse struct {
	ID        int64       `json:"id"`
	ProductID int64       `json:"productId"`
	OldPrice  json.Number `json:"oldPrice"`
	NewPrice  json.Number `json:"newPrice"`
	ChangedAt time.Time   `json:"changedAt"`
}

type errorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

// moneyJSON renders money as a bare JSON number with two fractional digits.
func moneyJSON(m domain.Money) json.Number {
	return json.Number(m.String())
}

func toProductResponse(dto *contracts.ProductDTO) productResponse {
	return productResponse{
		ID:            dto.ProductID,
		Name:          dto.Name,
		Price:         moneyJSON(dto.Price),
		StockQuantity: dto.StockQuantity,
		IsActive:      dto.IsActive,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	}
}

func toProductDetailResponse(dto *contracts.ProductDTO) productDetailResponse {
	return productDetailResponse{
		productResponse: toProductResponse(dto),
		PriceHistory:    toPriceHistoryResponse(dto.PriceHistory),
	}
}

func toProductListResponse(dtos []*contracts.ProductDTO) []productResponse {
	out := make([]productResponse, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, toProductResponse(dto))
	}
	return out
}

func toPriceHistoryResponse(changes []domain.PriceChange) []priceHistoryResponse {
	out := make([]priceHistoryResponse, 0, len(changes))
	for _, c := range changes {
		out = append(out, priceHistoryResponse{
			ID:        c.ID,
			ProductID: c.ProductID,
			OldPrice:  moneyJSON(c.OldPrice),
			NewPrice:  moneyJSON(c.NewPrice),
			ChangedAt: c.ChangedAt,
		})
	}
	return out
}
