package m_product

import (
	"sort"

	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a product.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns,
		[]interface{}{
			data.ProductID,
			data.Name,
			&data.Price,
			data.StockQuantity,
			data.IsActive,
			data.CreatedAt,
			data.UpdatedAt,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific product fields.
// The updates map holds column names and new values. It returns nil when
// there is nothing to update.
func (m *Model) UpdateMut(productID int64, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	columns := make([]string, 0, len(updates)+1)
	for col := range updates {
		columns = append(columns, col)
	}
	// Stable column order keeps mutations comparable in tests
	sort.Strings(columns)

	values := make([]interface{}, 0, len(updates)+1)
	values = append(values, productID)
	for _, col := range columns {
		values = append(values, updates[col])
	}

	return spanner.Update(TableName, append([]string{ProductID}, columns...), values)
}
