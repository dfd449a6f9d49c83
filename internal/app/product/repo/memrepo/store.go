// Package memrepo keeps products and their price history in process memory.
// It backs the "memory" storage driver and the usecase and handler tests.
package memrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/light-bringer/foxshop-service/internal/app/product/contracts"
	"github.com/light-bringer/foxshop-service/internal/app/product/domain"
)

type productRecord struct {
	id            int64
	name          string
	price         domain.Money
	stockQuantity int64
	active        bool
	createdAt     time.Time
	updatedAt     time.Time
}

func (r *productRecord) toDomain() *domain.Product {
	return domain.ReconstructProduct(r.id, r.name, r.price, r.stockQuantity, r.active, r.createdAt, r.updatedAt)
}

func (r *productRecord) toDTO() *contracts.ProductDTO {
	return &contracts.ProductDTO{
		ProductID:     r.id,
		Name:          r.name,
		Price:         r.price,
		StockQuantity: r.stockQuantity,
		IsActive:      r.active,
		CreatedAt:     r.createdAt,
		UpdatedAt:     r.updatedAt,
	}
}

// Store implements ProductRepository, PriceHistoryRepository and ReadModel.
// Products are copied in and out so callers never share state with the store.
type Store struct {
	mu            sync.RWMutex
	products      map[int64]*productRecord
	history       map[int64][]domain.PriceChange
	nextProductID int64
	nextHistoryID int64
}

var (
	_ contracts.ProductRepository      = (*Store)(nil)
	_ contracts.PriceHistoryRepository = (*Store)(nil)
	_ contracts.ReadModel              = (*Store)(nil)
)

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		products: make(map[int64]*productRecord),
		history:  make(map[int64][]domain.PriceChange),
	}
}

// Create inserts a new product and assigns its ID.
func (s *Store) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextProductID++
	id := s.nextProductID

	s.products[id] = &productRecord{
		id:            id,
		name:          product.Name(),
		price:         product.Price(),
		stockQuantity: product.StockQuantity(),
		active:        product.IsActive(),
		createdAt:     product.CreatedAt(),
		updatedAt:     product.UpdatedAt(),
	}

	product.AssignID(id)
	product.MarkPersisted(nil)
	return nil
}

// Save applies the dirty fields and appends pending price changes.
func (s *Store) Save(ctx context.Context, product *domain.Product) ([]domain.PriceChange, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	changes := product.Changes()
	pending := product.PendingPriceChanges()
	if !changes.HasChanges() && len(pending) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.products[product.ID()]
	if !ok {
		return nil, domain.NewNotFoundError(product.ID())
	}

	if changes.Dirty(domain.FieldName) {
		rec.name = product.Name()
	}
	if changes.Dirty(domain.FieldPrice) {
		rec.price = product.Price()
	}
	if changes.Dirty(domain.FieldStockQuantity) {
		rec.stockQuantity = product.StockQuantity()
	}
	if changes.Dirty(domain.FieldIsActive) {
		rec.active = product.IsActive()
	}
	if changes.HasChanges() {
		rec.updatedAt = product.UpdatedAt()
	}

	ids := make([]int64, 0, len(pending))
	for _, change := range pending {
		s.nextHistoryID++
		change.ID = s.nextHistoryID
		change.ProductID = rec.id
		s.history[rec.id] = append(s.history[rec.id], change)
		ids = append(ids, change.ID)
	}

	return product.MarkPersisted(ids), nil
}

// GetByID returns a fresh aggregate for the stored product.
func (s *Store) GetByID(ctx context.Context, productID int64) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.products[productID]
	if !ok {
		return nil, domain.NewNotFoundError(productID)
	}
	return rec.toDomain(), nil
}

// Exists checks if a product exists.
func (s *Store) Exists(ctx context.Context, productID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.products[productID]
	return ok, nil
}

// ListByProductID returns a product's price history, most recent first.
func (s *Store) ListByProductID(ctx context.Context, productID int64) ([]domain.PriceChange, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.historyNewestFirst(productID), nil
}

// GetProductByID returns the product with its price history.
func (s *Store) GetProductByID(ctx context.Context, productID int64) (*contracts.ProductDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.products[productID]
	if !ok {
		return nil, domain.NewNotFoundError(productID)
	}

	dto := rec.toDTO()
	dto.PriceHistory = s.historyNewestFirst(productID)
	return dto, nil
}

// ListProducts returns the products matching filter ordered by name, then ID.
func (s *Store) ListProducts(ctx context.Context, filter *contracts.ListFilter) ([]*contracts.ProductDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*contracts.ProductDTO, 0, len(s.products))
	for _, rec := range s.products {
		if filter.Matches(rec.toDomain()) {
			out = append(out, rec.toDTO())
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out, nil
}

// historyNewestFirst must be called with s.mu held.
func (s *Store) historyNewestFirst(productID int64) []domain.PriceChange {
	stored := s.history[productID]
	out := make([]domain.PriceChange, len(stored))
	copy(out, stored)

	sort.Slice(out, func(i, j int) bool {
		if !out[i].ChangedAt.Equal(out[j].ChangedAt) {
			return out[i].ChangedAt.After(out[j].ChangedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
