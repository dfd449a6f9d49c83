package m_price_history

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents a price history record in Spanner.
// The table is interleaved in products, keyed by (product_id, history_id).
type Data struct {
	ProductID int64     `spanner:"product_id"`
	HistoryID int64     `spanner:"history_id"`
	OldPrice  big.Rat   `spanner:"old_price"`
	NewPrice  big.Rat   `spanner:"new_price"`
	ChangedAt time.Time `spanner:"changed_at"`
}

// Model provides type-safe database operations for price history.
// Rows are append-only, so only inserts are exposed.
type Model struct{}

// NewModel creates a new price history model.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for inserting a price history record.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns,
		[]interface{}{
			data.ProductID,
			data.HistoryID,
			&data.OldPrice,
			&data.NewPrice,
			data.ChangedAt,
		},
	)
}
