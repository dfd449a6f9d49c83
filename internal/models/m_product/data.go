package m_product

import (
	"math/big"
	"time"
)

// Data represents a row of the products table as read from Spanner.
type Data struct {
	ProductID     int64     `spanner:"product_id"`
	Name          string    `spanner:"name"`
	Price         big.Rat   `spanner:"price"`
	StockQuantity int64     `spanner:"stock_quantity"`
	IsActive      bool      `spanner:"is_active"`
	CreatedAt     time.Time `spanner:"created_at"`
	UpdatedAt     time.Time `spanner:"updated_at"`
}
