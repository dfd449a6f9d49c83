package product

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/foxshop-service/internal/app/product/queries/get_price_history"
	"github.com/light-bringer/foxshop-service/internal/app/product/queries/get_product"
	"github.com/light-bringer/foxshop-service/internal/app/product/queries/list_products"
	"github.com/light-bringer/foxshop-service/internal/app/product/repo/memrepo"
	"github.com/light-bringer/foxshop-service/internal/app/product/usecases/create_product"
	"github.com/light-bringer/foxshop-service/internal/app/product/usecases/deactivate_product"
	"github.com/light-bringer/foxshop-service/internal/app/product/usecases/update_product"
	"github.com/light-bringer/foxshop-service/internal/pkg/clock"
)

var start = time.Date(2024, 12, 28, 14, 0, 0, 0, time.UTC)

type testServer struct {
	engine *gin.Engine
	clock  *clock.MockClock
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memrepo.NewStore()
	clk := clock.NewMockClock(start)

	h := NewHandler(
		create_product.NewInteractor(store, clk, nil),
		update_product.NewInteractor(store, clk, nil),
		deactivate_product.NewInteractor(store, clk),
		get_product.NewQuery(store),
		list_products.NewQuery(store),
		get_price_history.NewQuery(store, store),
	)

	engine := gin.New()
	h.RegisterRoutes(engine)
	return &testServer{engine: engine, clock: clk}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) create(t *testing.T, name, price string, stock int) int64 {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/products",
		fmt.Sprintf(`{"name":%q,"price":%s,"stockQuantity":%d}`, name, price, stock))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[productResponse](t, rec).ID
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestCreate(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/products", `{"name":"Fresh Berries","price":3.99,"stockQuantity":100}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.JSONEq(t, `{
		"id": 1,
		"name": "Fresh Berries",
		"price": 3.99,
		"stockQuantity": 100,
		"isActive": true,
		"createdAt": "2024-12-28T14:00:00Z",
		"updatedAt": "2024-12-28T14:00:00Z"
	}`, rec.Body.String())
}

func TestCreate_MoneyFormatting(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/products", `{"name":"Round","price":"10","stockQuantity":0}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"price":10.00`)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
		wantMsg   string
	}{
		{name: "missing name", body: `{"price":1,"stockQuantity":1}`, wantField: "name", wantMsg: "is required"},
		{name: "blank name", body: `{"name":"  ","price":1,"stockQuantity":1}`, wantField: "name", wantMsg: "must not be empty"},
		{name: "long name", body: fmt.Sprintf(`{"name":%q,"price":1,"stockQuantity":1}`, strings.Repeat("x", 256)), wantField: "name", wantMsg: "must be at most 255 characters"},
		{name: "name wrong type", body: `{"name":5,"price":1,"stockQuantity":1}`, wantField: "name", wantMsg: "must be a string"},
		{name: "missing price", body: `{"name":"A","stockQuantity":1}`, wantField: "price", wantMsg: "is required"},
		{name: "negative price", body: `{"name":"A","price":-0.01,"stockQuantity":1}`, wantField: "price", wantMsg: "must not be negative"},
		{name: "three decimals", body: `{"name":"A","price":1.999,"stockQuantity":1}`, wantField: "price", wantMsg: "must have at most 2 decimal places"},
		{name: "price too large", body: `{"name":"A","price":100000000,"stockQuantity":1}`, wantField: "price", wantMsg: "must not exceed 99999999.99"},
		{name: "price not numeric", body: `{"name":"A","price":"cheap","stockQuantity":1}`, wantField: "price", wantMsg: "must be a number"},
		{name: "price boolean", body: `{"name":"A","price":true,"stockQuantity":1}`, wantField: "price", wantMsg: "must be a number"},
		{name: "missing stock", body: `{"name":"A","price":1}`, wantField: "stockQuantity", wantMsg: "is required"},
		{name: "negative stock", body: `{"name":"A","price":1,"stockQuantity":-1}`, wantField: "stockQuantity", wantMsg: "must not be negative"},
		{name: "fractional stock", body: `{"name":"A","price":1,"stockQuantity":1.5}`, wantField: "stockQuantity", wantMsg: "must be an integer"},
		{name: "stock boolean", body: `{"name":"A","price":1,"stockQuantity":false}`, wantField: "stockQuantity", wantMsg: "must be a number"},
		{name: "stock quoted", body: `{"name":"A","price":1,"stockQuantity":"5"}`, wantField: "stockQuantity", wantMsg: "must be a number"},
		{name: "null stock", body: `{"name":"A","price":1,"stockQuantity":null}`, wantField: "stockQuantity", wantMsg: "is required"},
		{name: "huge positive exponent", body: `{"name":"A","price":1e32000000,"stockQuantity":1}`, wantField: "price", wantMsg: "must not exceed 99999999.99"},
		{name: "huge negative exponent", body: `{"name":"A","price":1e-999999999,"stockQuantity":1}`, wantField: "price", wantMsg: "must have at most 2 decimal places"},
		{name: "huge exponent as string", body: `{"name":"A","price":"1e32000000","stockQuantity":1}`, wantField: "price", wantMsg: "must not exceed 99999999.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			rec := s.do(t, http.MethodPost, "/products", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			body := decode[errorResponse](t, rec)
			assert.Equal(t, "validation failed", body.Error)
			assert.Contains(t, body.Details, FieldError{Field: tt.wantField, Message: tt.wantMsg})

			list := s.do(t, http.MethodGet, "/products?includeInactive=true", "")
			assert.JSONEq(t, `[]`, list.Body.String(), "nothing is stored")
		})
	}
}

func TestCreate_BadBody(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{"", "{", "[1,2]", `"text"`} {
		rec := s.do(t, http.MethodPost, "/products", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
		assert.Equal(t, "request body must be a JSON object", decode[errorResponse](t, rec).Error)
	}
}

func TestCreate_ReportsAllFields(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/products", `{"name":"","price":-1,"stockQuantity":-1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, decode[errorResponse](t, rec).Details, 3)
}

func TestGet(t *testing.T) {
	s := newTestServer(t)
	id := s.create(t, "Berries", "9.99", 10)

	rec := s.do(t, http.MethodGet, fmt.Sprintf("/products/%d", id), "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[productDetailResponse](t, rec)
	assert.Equal(t, "Berries", body.Name)
	assert.NotNil(t, body.PriceHistory)
	assert.Empty(t, body.PriceHistory)
	assert.Contains(t, rec.Body.String(), `"priceHistory":[]`)
}

func TestGet_Errors(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/products/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Product with ID 99 not found"}`, rec.Body.String())

	for _, id := range []string{"abc", "1.5", "99999999999999999999"} {
		rec := s.do(t, http.MethodGet, "/products/"+id, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, id)
		assert.Contains(t, decode[errorResponse](t, rec).Details, FieldError{Field: "id", Message: "must be an integer"})
	}
}

func TestNonPositiveIDsAreNotFound(t *testing.T) {
	s := newTestServer(t)
	s.create(t, "Berries", "3.99", 10)

	for _, id := range []string{"0", "-1"} {
		for _, tc := range []struct{ method, path, body string }{
			{http.MethodGet, "/products/" + id, ""},
			{http.MethodPatch, "/products/" + id, `{"name":"Renamed"}`},
			{http.MethodDelete, "/products/" + id, ""},
			{http.MethodGet, "/products/" + id + "/price-history", ""},
		} {
			t.Run(tc.method+" "+tc.path, func(t *testing.T) {
				rec := s.do(t, tc.method, tc.path, tc.body)
				assert.Equal(t, http.StatusNotFound, rec.Code)
				assert.JSONEq(t, fmt.Sprintf(`{"error":"Product with ID %s not found"}`, id), rec.Body.String())
			})
		}
	}
}

func TestList(t *testing.T) {
	s := newTestServer(t)
	s.create(t, "Berries", "3.99", 10)
	s.create(t, "Apples", "1.50", 50)
	retired := s.create(t, "Blueberries", "4.00", 0)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, fmt.Sprintf("/products/%d", retired), "").Code)

	names := func(rec *httptest.ResponseRecorder) []string {
		out := []string{}
		for _, p := range decode[[]productResponse](t, rec) {
			out = append(out, p.Name)
		}
		return out
	}

	tests := []struct {
		query string
		want  []string
	}{
		{query: "", want: []string{"Apples", "Berries"}},
		{query: "?includeInactive=false", want: []string{"Apples", "Berries"}},
		{query: "?includeInactive=true", want: []string{"Apples", "Berries", "Blueberries"}},
		{query: "?includeInactive=1", want: []string{"Apples", "Berries", "Blueberries"}},
		{query: "?name=ber", want: []string{"Berries"}},
		{query: "?name=BER&includeInactive=true", want: []string{"Berries", "Blueberries"}},
		{query: "?minStock=10&maxStock=10", want: []string{"Berries"}},
		{query: "?minStock=11", want: []string{"Apples"}},
		{query: "?maxStock=0&includeInactive=true", want: []string{"Blueberries"}},
		{query: "?minStock=50&maxStock=10", want: []string{}},
		{query: "?minStock=&maxStock=&name=", want: []string{"Apples", "Berries"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, "/products"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, names(rec))
		})
	}
}

func TestList_EmptyIsArray(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestList_BadQuery(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		query string
		field FieldError
	}{
		{query: "?minStock=abc", field: FieldError{Field: "minStock", Message: "must be an integer"}},
		{query: "?maxStock=-1", field: FieldError{Field: "maxStock", Message: "must not be negative"}},
		{query: "?includeInactive=maybe", field: FieldError{Field: "includeInactive", Message: "must be a boolean"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, "/products"+tt.query, "")
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[errorResponse](t, rec).Details, tt.field)
		})
	}
}

func TestUpdate(t *testing.T) {
	s := newTestServer(t)
	id := s.create(t, "Berries", "9.99", 100)
	path := fmt.Sprintf("/products/%d", id)

	t.Run("empty patch changes nothing", func(t *testing.T) {
		s.clock.Advance(time.Minute)
		rec := s.do(t, http.MethodPatch, path, `{}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, start, decode[productResponse](t, rec).UpdatedAt)
	})

	t.Run("same price writes no history", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, path, `{"price":"9.99"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		history := s.do(t, http.MethodGet, path+"/price-history", "")
		assert.JSONEq(t, `[]`, history.Body.String())
	})

	t.Run("stock and name", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, path, `{"name":"Blackberries","stockQuantity":3}`)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[productResponse](t, rec)
		assert.Equal(t, "Blackberries", body.Name)
		assert.Equal(t, int64(3), body.StockQuantity)
		assert.Equal(t, s.clock.Now(), body.UpdatedAt)
	})

	t.Run("invalid field rejects the whole patch", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, path, `{"price":5,"stockQuantity":-4}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		got := decode[productDetailResponse](t, s.do(t, http.MethodGet, path, ""))
		assert.Equal(t, json.Number("9.99"), got.Price)
		assert.Empty(t, got.PriceHistory)
	})

	t.Run("quoted stock is rejected", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, path, `{"stockQuantity":"7"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[errorResponse](t, rec).Details, FieldError{Field: "stockQuantity", Message: "must be a number"})
	})

	t.Run("reactivate", func(t *testing.T) {
		require.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, path, "").Code)

		rec := s.do(t, http.MethodPatch, path, `{"isActive":true}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decode[productResponse](t, rec).IsActive)
	})

	t.Run("missing product", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/products/999", `{"price":1}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Product with ID 999 not found", decode[errorResponse](t, rec).Error)
	})
}

func TestDelete(t *testing.T) {
	s := newTestServer(t)
	id := s.create(t, "Berries", "9.99", 100)
	path := fmt.Sprintf("/products/%d", id)

	rec := s.do(t, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[productResponse](t, rec)
	assert.False(t, body.IsActive)
	assert.Equal(t, json.Number("9.99"), body.Price)
	assert.Equal(t, int64(100), body.StockQuantity)

	again := s.do(t, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, again.Code)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/products/12345", "").Code)
}

func TestPriceHistory_NotFound(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/products/7/price-history", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product with ID 7 not found", decode[errorResponse](t, rec).Error)
}

func TestProductLifecycle(t *testing.T) {
	s := newTestServer(t)

	// 1. Create
	rec := s.do(t, http.MethodPost, "/products", `{"name":"Test Product","price":9.99,"stockQuantity":100}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[productResponse](t, rec)
	path := fmt.Sprintf("/products/%d", created.ID)

	// 2. Change the price
	s.clock.Advance(time.Minute)
	rec = s.do(t, http.MethodPatch, path, `{"price":19.99}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, json.Number("19.99"), decode[productResponse](t, rec).Price)

	// 3. One history entry
	rec = s.do(t, http.MethodGet, path+"/price-history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	history := decode[[]priceHistoryResponse](t, rec)
	require.Len(t, history, 1)
	assert.Equal(t, created.ID, history[0].ProductID)
	assert.Equal(t, json.Number("9.99"), history[0].OldPrice)
	assert.Equal(t, json.Number("19.99"), history[0].NewPrice)
	assert.Equal(t, start.Add(time.Minute), history[0].ChangedAt)

	// 4. Delete deactivates
	rec = s.do(t, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[productResponse](t, rec).IsActive)

	// 5. Still fetchable, with history
	rec = s.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[productDetailResponse](t, rec)
	assert.False(t, detail.IsActive)
	assert.Equal(t, json.Number("19.99"), detail.Price)
	require.Len(t, detail.PriceHistory, 1)

	// and absent from the default listing
	rec = s.do(t, http.MethodGet, "/products", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestOpenAPI(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/openapi.yaml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "/products/{id}/price-history:")
}
