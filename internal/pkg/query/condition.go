package query

import (
	"fmt"
	"strings"
)

// Condition represents a WHERE clause condition.
// Implementations generate SQL fragments and parameter maps using named
// parameters (@p0, @p1, ...). Both Spanner and gorm accept this format.
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

// comparison implements a binary comparison (field <op> value).
type comparison struct {
	field string
	op    string
	value interface{}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("is_active", true) generates "is_active = @p0"
func Eq(field string, value interface{}) Condition {
	return &comparison{field: field, op: "=", value: value}
}

// Gte creates an inclusive lower bound.
// Example: Gte("stock_quantity", 5) generates "stock_quantity >= @p0"
func Gte(field string, value interface{}) Condition {
	return &comparison{field: field, op: ">=", value: value}
}

// Lte creates an inclusive upper bound.
// Example: Lte("stock_quantity", 5) generates "stock_quantity <= @p0"
func Lte(field string, value interface{}) Condition {
	return &comparison{field: field, op: "<=", value: value}
}

// SQL generates the SQL fragment for the comparison.
func (c *comparison) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("%s %s @%s", c.field, c.op, paramName)
	return sql, map[string]interface{}{paramName: c.value}
}

// ContainsFold creates a case-insensitive substring match.
// Example: ContainsFold("name", "ber") generates "STRPOS(LOWER(name), LOWER(@p0)) > 0"
// STRPOS treats the needle literally, so % and _ need no escaping.
func ContainsFold(field string, substr string) Condition {
	return &containsFoldCondition{field: field, substr: substr}
}

type containsFoldCondition struct {
	field  string
	substr string
}

// SQL generates the SQL fragment for the substring match.
func (c *containsFoldCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("STRPOS(LOWER(%s), LOWER(@%s)) > 0", c.field, paramName)
	return sql, map[string]interface{}{paramName: c.substr}
}

// Render joins conditions with AND and returns the fragment (without the
// WHERE keyword) and the merged parameters. It returns an empty fragment for
// no conditions. gorm accepts the result as db.Where(fragment, params).
func Render(conditions []Condition) (string, map[string]interface{}) {
	params := make(map[string]interface{})
	if len(conditions) == 0 {
		return "", params
	}

	parts := make([]string, 0, len(conditions))
	paramIndex := 0
	for _, condition := range conditions {
		fragment, condParams := condition.SQL(paramIndex)
		parts = append(parts, fragment)
		for k, v := range condParams {
			params[k] = v
		}
		paramIndex += len(condParams)
	}

	return strings.Join(parts, " AND "), params
}
