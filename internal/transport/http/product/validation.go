package product

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/foxshop-service/internal/app/product/domain"
	"github.com/light-bringer/foxshop-service/internal/app/product/queries/list_products"
	"github.com/light-bringer/foxshop-service/internal/app/product/usecases/create_product"
	"github.com/light-bringer/foxshop-service/internal/app/product/usecases/update_product"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every rejected field of a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// err returns e when any field was rejected, nil otherwise.
func (e *ValidationError) err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// errBadBody is returned for bodies that are not a JSON object.
var errBadBody = errors.New("request body must be a JSON object")

// bindJSON decodes the request body into dst. Type mismatches are reported
// per field as a ValidationError.
func bindJSON(c *gin.Context, dst interface{}) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return errBadBody
	case errors.As(err, &typeErr) && typeErr.Field != "":
		verr := &ValidationError{}
		verr.add(typeErr.Field, typeMessage(typeErr.Type))
		return verr
	default:
		return errBadBody
	}
}

func typeMessage(t reflect.Type) string {
	switch {
	case t.Kind() == reflect.String:
		return "must be a string"
	case t.Kind() == reflect.Bool:
		return "must be a boolean"
	default:
		return "has an invalid type"
	}
}

func validateName(v *ValidationError, name string) {
	switch {
	case strings.TrimSpace(name) == "":
		v.add("name", "must not be empty")
	case utf8.RuneCountInString(name) > domain.MaxNameLength:
		v.add("name", fmt.Sprintf("must be at most %d characters", domain.MaxNameLength))
	}
}

// parsePrice accepts a JSON number or a numeric string.
func parsePrice(v *ValidationError, raw json.RawMessage) (domain.Money, bool) {
	text := string(bytes.TrimSpace(raw))
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			v.add("price", "must be a number")
			return domain.Money{}, false
		}
		text = strings.TrimSpace(s)
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		v.add("price", "must be a number")
		return domain.Money{}, false
	}
	if d.IsNegative() {
		v.add("price", "must not be negative")
		return domain.Money{}, false
	}
	if !domain.HasMoneyScale(d) {
		v.add("price", "must have at most 2 decimal places")
		return domain.Money{}, false
	}
	if !domain.FitsMoneyStorage(d) {
		v.add("price", "must not exceed 99999999.99")
		return domain.Money{}, false
	}
	return domain.NewMoney(d), true
}

// parseStock accepts only a JSON number. Quoted digits are rejected.
func parseStock(v *ValidationError, raw json.RawMessage) (int64, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var value interface{}
	if err := dec.Decode(&value); err != nil {
		v.add("stockQuantity", "must be a number")
		return 0, false
	}
	n, ok := value.(json.Number)
	if !ok {
		v.add("stockQuantity", "must be a number")
		return 0, false
	}

	qty, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		v.add("stockQuantity", "must be an integer")
		return 0, false
	}
	if qty < 0 {
		v.add("stockQuantity", "must not be negative")
		return 0, false
	}
	return qty, true
}

// isNull reports whether a raw field is absent or an explicit null.
func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

func validateCreate(req *createProductRequest) (*create_product.Request, error) {
	v := &ValidationError{}
	out := &create_product.Request{}

	if req.Name == nil {
		v.add("name", "is required")
	} else {
		validateName(v, *req.Name)
		out.Name = *req.Name
	}

	if isNull(req.Price) {
		v.add("price", "is required")
	} else if price, ok := parsePrice(v, req.Price); ok {
		out.Price = price
	}

	if isNull(req.StockQuantity) {
		v.add("stockQuantity", "is required")
	} else if qty, ok := parseStock(v, req.StockQuantity); ok {
		out.StockQuantity = qty
	}

	if err := v.err(); err != nil {
		return nil, err
	}
	return out, nil
}

func validatePatch(productID int64, req *patchProductRequest) (*update_product.Request, error) {
	v := &ValidationError{}
	out := &update_product.Request{ProductID: productID}

	if req.Name != nil {
		validateName(v, *req.Name)
		out.Name = req.Name
	}

	if !isNull(req.Price) {
		if price, ok := parsePrice(v, req.Price); ok {
			out.Price = &price
		}
	}

	if !isNull(req.StockQuantity) {
		if qty, ok := parseStock(v, req.StockQuantity); ok {
			out.StockQuantity = &qty
		}
	}

	out.IsActive = req.IsActive

	if err := v.err(); err != nil {
		return nil, err
	}
	return out, nil
}

// parseListQuery reads the listing filter. Empty values count as absent.
func parseListQuery(c *gin.Context) (*list_products.Request, error) {
	v := &ValidationError{}
	out := &list_products.Request{}

	if name := c.Query("name"); name != "" {
		out.Name = &name
	}

	parseBound := func(key string) *int64 {
		raw := c.Query(key)
		if raw == "" {
			return nil
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			v.add(key, "must be an integer")
			return nil
		}
		if n < 0 {
			v.add(key, "must not be negative")
			return nil
		}
		return &n
	}
	out.MinStock = parseBound("minStock")
	out.MaxStock = parseBound("maxStock")

	if raw := c.Query("includeInactive"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			v.add("includeInactive", "must be a boolean")
		}
		out.IncludeInactive = include
	}

	if err := v.err(); err != nil {
		return nil, err
	}
	return out, nil
}

// parseID reads the :id path parameter. Any integer is accepted; ids that
// cannot exist, such as 0, are left to the store to report as not found.
func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		v := &ValidationError{}
		v.add("id", "must be an integer")
		return 0, v
	}
	return id, nil
}
