// Package product serves the product catalog over HTTP.
package product

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/foxshop-service/internal/app/product/queries/get_price_history"
	"github.com/light-bringer/foxshop-service/internal/app/product/queries/get_product"
	"github.com/light-bringer/foxshop-service/internal/app/product/queries/list_products"
	"github.com/light-bringer/foxshop-service/internal/app/product/usecases/create_product"
	"github.com/light-bringer/foxshop-service/internal/app/product/usecases/deactivate_product"
	"github.com/light-bringer/foxshop-service/internal/app/product/usecases/update_product"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// Handler exposes the product use cases as gin routes.
// It's a thin coordinator: parse, validate, delegate, render.
type Handler struct {
	// Commands
	createProduct     *create_product.Interactor
	updateProduct     *update_product.Interactor
	deactivateProduct *deactivate_product.Interactor

	// Queries
	getProduct      *get_product.Query
	listProducts    *list_products.Query
	getPriceHistory *get_price_history.Query
}

// NewHandler creates a new HTTP product handler.
func NewHandler(
	createProduct *create_product.Interactor,
	updateProduct *update_product.Interactor,
	deactivateProduct *deactivate_product.Interactor,
	getProduct *get_product.Query,
	listProducts *list_products.Query,
	getPriceHistory *get_price_history.Query,
) *Handler {
	return &Handler{
		createProduct:     createProduct,
		updateProduct:     updateProduct,
		deactivateProduct: deactivateProduct,
		getProduct:        getProduct,
		listProducts:      listProducts,
		getPriceHistory:   getPriceHistory,
	}
}

// RegisterRoutes mounts the product routes and the API document on r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	products := r.Group("/products")
	products.POST("", h.Create)
	products.GET("", h.List)
	products.GET("/:id", h.Get)
	products.PATCH("/:id", h.Update)
	products.DELETE("/:id", h.Delete)
	products.GET("/:id/price-history", h.PriceHistory)

	r.GET("/api/openapi.yaml", h.OpenAPI)
}

// Create handles POST /products.
func (h *Handler) Create(c *gin.Context) {
	// 1. Decode and validate
	var body createProductRequest
	if err := bindJSON(c, &body); err != nil {
		writeError(c, err)
		return
	}
	req, err := validateCreate(&body)
	if err != nil {
		writeError(c, err)
		return
	}

	// 2. Call usecase
	product, err := h.createProduct.Execute(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	// 3. Render
	c.JSON(http.StatusCreated, toProductResponse(product))
}

// List handles GET /products.
func (h *Handler) List(c *gin.Context) {
	req, err := parseListQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}

	products, err := h.listProducts.Execute(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductListResponse(products))
}

// Get handles GET /products/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	product, err := h.getProduct.Execute(c.Request.Context(), &get_product.Request{ProductID: id})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductDetailResponse(product))
}

// Update handles PATCH /products/:id.
func (h *Handler) Update(c *gin.Context) {
	// 1. Decode and validate
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	var body patchProductRequest
	if err := bindJSON(c, &body); err != nil {
		writeError(c, err)
		return
	}
	req, err := validatePatch(id, &body)
	if err != nil {
		writeError(c, err)
		return
	}

	// 2. Call usecase
	product, err := h.updateProduct.Execute(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	// 3. Render
	c.JSON(http.StatusOK, toProductResponse(product))
}

// Delete handles DELETE /products/:id. The product is deactivated, not removed.
func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	product, err := h.deactivateProduct.Execute(c.Request.Context(), &deactivate_product.Request{ProductID: id})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

// PriceHistory handles GET /products/:id/price-history.
func (h *Handler) PriceHistory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	changes, err := h.getPriceHistory.Execute(c.Request.Context(), &get_price_history.Request{ProductID: id})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPriceHistoryResponse(changes))
}

// OpenAPI serves the embedded OpenAPI 3 document.
func (h *Handler) OpenAPI(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml", openAPIDocument)
}
