package list_products

import (
	"context"

	"github.com/light-bringer/foxshop-service/internal/app/product/contracts"
)

// Request contains the optional listing constraints. Nil means unconstrained.
type Request struct {
	Name            *string
	MinStock        *int64
	MaxStock        *int64
	IncludeInactive bool
}

// Query handles the list products query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list products query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute lists matching products ordered by name. The result is never nil.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.ProductDTO, error) {
	filter := &contracts.ListFilter{
		Name:            req.Name,
		MinStock:        req.MinStock,
		MaxStock:        req.MaxStock,
		IncludeInactive: req.IncludeInactive,
	}

	products, err := q.readModel.ListProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*contracts.ProductDTO{}
	}
	return products, nil
}
