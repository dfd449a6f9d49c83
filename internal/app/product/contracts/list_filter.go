package contracts

import (
	"strings"

	"github.com/light-bringer/foxshop-service/internal/app/product/domain"
	"github.com/light-bringer/foxshop-service/internal/models/m_product"
	"github.com/light-bringer/foxshop-service/internal/pkg/query"
)

// ListFilter holds the optional constraints of a product listing.
// A nil bound is unconstrained.
type ListFilter struct {
	Name            *string
	MinStock        *int64
	MaxStock        *int64
	IncludeInactive bool
}

// Conditions translates the filter into storage predicates.
func (f *ListFilter) Conditions() []query.Condition {
	conds := make([]query.Condition, 0, 4)
	if f == nil {
		return append(conds, query.Eq(m_product.IsActive, true))
	}

	if f.Name != nil && *f.Name != "" {
		conds = append(conds, query.ContainsFold(m_product.Name, *f.Name))
	}
	if f.MinStock != nil {
		conds = append(conds, query.Gte(m_product.StockQuantity, *f.MinStock))
	}
	if f.MaxStock != nil {
		conds = append(conds, query.Lte(m_product.StockQuantity, *f.MaxStock))
	}
	if !f.IncludeInactive {
		conds = append(conds, query.Eq(m_product.IsActive, true))
	}

	return conds
}

// Query returns a select over the products table with the filter applied,
// ordered by name with the ID as tie-break.
func (f *ListFilter) Query() *query.Builder {
	return query.From(m_product.TableName).
		Select(m_product.Columns...).
		WhereAll(f.Conditions()).
		OrderBy(m_product.Name, query.Asc).
		ThenBy(m_product.ProductID, query.Asc)
}

// Matches evaluates the filter against a product in memory.
// It mirrors Conditions for stores without a query engine.
func (f *ListFilter) Matches(p *domain.Product) bool {
	if f == nil {
		return p.IsActive()
	}
	if f.Name != nil && *f.Name != "" &&
		!strings.Contains(strings.ToLower(p.Name()), strings.ToLower(*f.Name)) {
		return false
	}
	if f.MinStock != nil && p.StockQuantity() < *f.MinStock {
		return false
	}
	if f.MaxStock != nil && p.StockQuantity() > *f.MaxStock {
		return false
	}
	if !f.IncludeInactive && !p.IsActive() {
		return false
	}
	return true
}
