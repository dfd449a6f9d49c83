package m_price_history

import (
	"time"

	"github.com/shopspring/decimal"
)

// Row is the gorm model of the price_history table in PostgreSQL.
type Row struct {
	HistoryID int64           `gorm:"column:history_id;primaryKey;autoIncrement"`
	ProductID int64           `gorm:"column:product_id;not null;index:idx_price_history_product_changed,priority:1"`
	OldPrice  decimal.Decimal `gorm:"column:old_price;type:numeric(10,2);not null"`
	NewPrice  decimal.Decimal `gorm:"column:new_price;type:numeric(10,2);not null"`
	ChangedAt time.Time       `gorm:"column:changed_at;not null;index:idx_price_history_product_changed,priority:2,sort:desc"`
}

// TableName overrides gorm's pluralised default.
func (Row) TableName() string {
	return TableName
}
