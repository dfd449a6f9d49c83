package domain

import "time"

// PriceChange is one entry of a product's price history.
// Entries are created when an update changes the price and are never modified afterwards.
type PriceChange struct {
	ID        int64
	ProductID int64
	OldPrice  Money
	NewPrice  Money
	ChangedAt time.Time
}
