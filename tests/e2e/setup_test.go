//go:build integration

package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/foxshop-service/internal/app/product/queries/get_price_history"
	"github.com/light-bringer/foxshop-service/internal/app/product/queries/get_product"
	"github.com/light-bringer/foxshop-service/internal/app/product/queries/list_products"
	"github.com/light-bringer/foxshop-service/internal/app/product/usecases/create_product"
	"github.com/light-bringer/foxshop-service/internal/app/product/usecases/deactivate_product"
	"github.com/light-bringer/foxshop-service/internal/app/product/usecases/update_product"
	"github.com/light-bringer/foxshop-service/internal/pkg/clock"
	"github.com/light-bringer/foxshop-service/internal/pkg/metrics"
	httptransport "github.com/light-bringer/foxshop-service/internal/transport/http"
	"github.com/light-bringer/foxshop-service/internal/transport/http/product"
	"github.com/light-bringer/foxshop-service/tests/testutil"
)

// Suite is the full HTTP stack over the Spanner store.
type Suite struct {
	Engine  *gin.Engine
	Clock   *clock.MockClock
	Metrics *metrics.Metrics
	Client  *spanner.Client
}

// setupTest initializes all dependencies for E2E testing.
func setupTest(t *testing.T) (*Suite, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stores, client, cleanup := testutil.SetupSpannerStores(t)
	mockClock := testutil.NewMockClock()

	m, err := metrics.New("foxshop_e2e")
	require.NoError(t, err)

	handler := product.NewHandler(
		create_product.NewInteractor(stores.Products, mockClock, m),
		update_product.NewInteractor(stores.Products, mockClock, m),
		deactivate_product.NewInteractor(stores.Products, mockClock),
		get_product.NewQuery(stores.Reads),
		list_products.NewQuery(stores.Reads),
		get_price_history.NewQuery(stores.Products, stores.History),
	)

	engine := httptransport.NewRouter(httptransport.RouterOptions{
		Products: handler,
		Metrics:  m,
	})

	return &Suite{Engine: engine, Clock: mockClock, Metrics: m, Client: client}, cleanup
}

// Do sends one request through the engine.
func (s *Suite) Do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	s.Engine.ServeHTTP(rec, req)
	return rec
}

// Product mirrors the product JSON representation.
type Product struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Price         json.Number    `json:"price"`
	StockQuantity int64          `json:"stockQuantity"`
	IsActive      bool           `json:"isActive"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	PriceHistory  []PriceHistory `json:"priceHistory"`
}

// PriceHistory mirrors one price history entry.
type PriceHistory struct {
	ID        int64       `json:"id"`
	ProductID int64       `json:"productId"`
	OldPrice  json.Number `json:"oldPrice"`
	NewPrice  json.Number `json:"newPrice"`
	ChangedAt time.Time   `json:"changedAt"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// CreateProduct posts body and returns the created product.
func (s *Suite) CreateProduct(t *testing.T, body string) Product {
	t.Helper()

	rec := s.Do(t, http.MethodPost, "/products", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[Product](t, rec)
}
