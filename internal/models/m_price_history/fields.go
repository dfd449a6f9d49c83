package m_price_history

// Table name constants
const (
	TableName    = "price_history"
	SequenceName = "price_history_seq"
)

// Field name constants for type-safe database access
const (
	ProductID = "product_id"
	HistoryID = "history_id"
	OldPrice  = "old_price"
	NewPrice  = "new_price"
	ChangedAt = "changed_at"
)

// Columns lists every column in read order.
var Columns = []string{
	ProductID,
	HistoryID,
	OldPrice,
	NewPrice,
	ChangedAt,
}
