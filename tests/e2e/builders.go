package e2e

import (
	"encoding/json"
)

// ProductBuilder helps create product request bodies with a fluent interface
type ProductBuilder struct {
	name          string
	price         string
	stockQuantity int64
}

// NewProductBuilder creates a new builder with default values
func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		name:          "Test Product",
		price:         "100.00",
		stockQuantity: 10,
	}
}

// WithName sets the product name
func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.name = name
	return b
}

// WithPrice sets the price as a decimal literal
func (b *ProductBuilder) WithPrice(price string) *ProductBuilder {
	b.price = price
	return b
}

// WithStock sets the stock quantity
func (b *ProductBuilder) WithStock(quantity int64) *ProductBuilder {
	b.stockQuantity = quantity
	return b
}

// Build renders the POST /products body. The price goes out as a JSON number.
func (b *ProductBuilder) Build() string {
	body, _ := json.Marshal(map[string]interface{}{
		"name":          b.name,
		"price":         json.Number(b.price),
		"stockQuantity": b.stockQuantity,
	})
	return string(body)
}
