package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxNameLength is the longest product name accepted, in characters.
const MaxNameLength = 255

// Field names for change tracking
const (
	FieldName          = "name"
	FieldPrice         = "price"
	FieldStockQuantity = "stock_quantity"
	FieldIsActive      = "is_active"
)

// Product is the aggregate root for product management.
// It owns the price-change rule: a history entry is queued whenever the price
// is set to a value different from the current one.
type Product struct {
	id            int64
	name          string
	price         Money
	stockQuantity int64
	active        bool
	createdAt     time.Time
	updatedAt     time.Time

	// Change tracking for optimized repository updates
	changes *ChangeTracker

	// Price changes not yet persisted
	priceChanges []PriceChange
}

// NewProduct creates a new active Product (for creation).
// The ID is assigned by the repository on insert.
func NewProduct(name string, price Money, stockQuantity int64, now time.Time) (*Product, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if stockQuantity < 0 {
		return nil, ErrNegativeStock
	}

	p := &Product{
		name:          name,
		price:         price,
		stockQuantity: stockQuantity,
		active:        true,
		createdAt:     now,
		updatedAt:     now,
		changes:       NewChangeTracker(),
	}

	p.changes.MarkDirty(FieldName)
	p.changes.MarkDirty(FieldPrice)
	p.changes.MarkDirty(FieldStockQuantity)
	p.changes.MarkDirty(FieldIsActive)

	return p, nil
}

// ReconstructProduct reconstitutes a Product from storage.
func ReconstructProduct(
	id int64,
	name string,
	price Money,
	stockQuantity int64,
	active bool,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:            id,
		name:          name,
		price:         price,
		stockQuantity: stockQuantity,
		active:        active,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		changes:       NewChangeTracker(),
	}
}

// Getters
func (p *Product) ID() int64                 { return p.id }
func (p *Product) Name() string              { return p.name }
func (p *Product) Price() Money              { return p.price }
func (p *Product) StockQuantity() int64      { return p.stockQuantity }
func (p *Product) IsActive() bool            { return p.active }
func (p *Product) CreatedAt() time.Time      { return p.createdAt }
func (p *Product) UpdatedAt() time.Time      { return p.updatedAt }
func (p *Product) Changes() *ChangeTracker   { return p.changes }

// PendingPriceChanges returns the price changes recorded since the product was loaded.
func (p *Product) PendingPriceChanges() []PriceChange {
	out := make([]PriceChange, len(p.priceChanges))
	copy(out, p.priceChanges)
	return out
}

// AssignID sets the storage-generated ID. Pending price changes are relinked to it.
func (p *Product) AssignID(id int64) {
	p.id = id
	for i := range p.priceChanges {
		p.priceChanges[i].ProductID = id
	}
}

// SetName updates the product name.
func (p *Product) SetName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if name == p.name {
		return nil
	}

	p.name = name
	p.changes.MarkDirty(FieldName)
	return nil
}

// SetPrice updates the price. When the new value differs from the current
// price, a PriceChange from the current price to the new one is queued.
func (p *Product) SetPrice(price Money, now time.Time) error {
	if err := validatePrice(price); err != nil {
		return err
	}

	oldPrice := p.price
	if oldPrice.Equals(price) {
		return nil
	}

	p.price = price
	p.changes.MarkDirty(FieldPrice)
	p.priceChanges = append(p.priceChanges, PriceChange{
		ProductID: p.id,
		OldPrice:  oldPrice,
		NewPrice:  price,
		ChangedAt: now,
	})
	return nil
}

// SetStockQuantity updates the stock level.
func (p *Product) SetStockQuantity(quantity int64) error {
	if quantity < 0 {
		return ErrNegativeStock
	}
	if quantity == p.stockQuantity {
		return nil
	}

	p.stockQuantity = quantity
	p.changes.MarkDirty(FieldStockQuantity)
	return nil
}

// Activate marks the product active. Activating an active product is a no-op.
func (p *Product) Activate() {
	if p.active {
		return
	}
	p.active = true
	p.changes.MarkDirty(FieldIsActive)
}

// Deactivate soft-deletes the product. Deactivating an inactive product is a no-op.
func (p *Product) Deactivate() {
	if !p.active {
		return
	}
	p.active = false
	p.changes.MarkDirty(FieldIsActive)
}

// MarkUpdated bumps updatedAt if anything changed since the product was loaded.
func (p *Product) MarkUpdated(now time.Time) {
	if p.changes.HasChanges() {
		p.updatedAt = now
	}
}

// MarkPersisted clears change tracking after a successful write.
// ids holds the storage IDs of the pending price changes, in order.
func (p *Product) MarkPersisted(ids []int64) []PriceChange {
	persisted := make([]PriceChange, len(p.priceChanges))
	for i, pc := range p.priceChanges {
		if i < len(ids) {
			pc.ID = ids[i]
		}
		persisted[i] = pc
	}
	p.priceChanges = nil
	p.changes.Clear()
	return persisted
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func validatePrice(price Money) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	if price.ExceedsStorage() {
		return ErrPriceOutOfRange
	}
	return nil
}
