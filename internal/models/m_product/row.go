package m_product

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/foxshop-service/internal/models/m_price_history"
)

// Row is the gorm model of the products table in PostgreSQL.
type Row struct {
	ProductID     int64                 `gorm:"column:product_id;primaryKey;autoIncrement"`
	Name          string                `gorm:"column:name;type:varchar(255);not null"`
	Price         decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null"`
	StockQuantity int64                 `gorm:"column:stock_quantity;not null"`
	IsActive      bool                  `gorm:"column:is_active;not null"`
	CreatedAt     time.Time             `gorm:"column:created_at;not null"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;not null"`
	PriceHistory  []m_price_history.Row `gorm:"foreignKey:ProductID;references:ProductID"`
}

// TableName overrides gorm's pluralised default.
func (Row) TableName() string {
	return TableName
}
