package m_product

// Field name constants for the products table.
// Spanner and PostgreSQL schemas share these names.
const (
	TableName    = "products"
	SequenceName = "products_seq"

	ProductID     = "product_id"
	Name          = "name"
	Price         = "price"
	StockQuantity = "stock_quantity"
	IsActive      = "is_active"
	CreatedAt     = "created_at"
	UpdatedAt     = "updated_at"
)

// Columns lists every column in read order.
var Columns = []string{
	ProductID,
	Name,
	Price,
	StockQuantity,
	IsActive,
	CreatedAt,
	UpdatedAt,
}
