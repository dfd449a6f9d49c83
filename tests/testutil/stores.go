package testutil

import (
	"github.com/light-bringer/foxshop-service/internal/app/product/contracts"
)

// Stores bundles one backend's implementations of the product contracts.
type Stores struct {
	Products contracts.ProductRepository
	History  contracts.PriceHistoryRepository
	Reads    contracts.ReadModel
}
