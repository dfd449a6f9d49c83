package query

import (
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	// Asc represents ascending order.
	Asc Direction = iota
	// Desc represents descending order.
	Desc
)

// order is one ORDER BY term.
type order struct {
	column    string
	direction Direction
}

// Builder constructs SQL SELECT queries for Cloud Spanner.
// It provides a fluent API for building queries with WHERE clauses and
// ORDER BY. Parameter names are generated, so callers never number them.
type Builder struct {
	table        string
	selectCols   []string
	whereClauses []Condition
	orderBy      []order
}

// From creates a new Builder for the specified table.
func From(table string) *Builder {
	return &Builder{
		table:        table,
		selectCols:   []string{},
		whereClauses: []Condition{},
	}
}

// Select specifies the columns to retrieve.
// Call this method to avoid duplicating column lists.
func (b *Builder) Select(columns ...string) *Builder {
	newBuilder := b.clone()
	newBuilder.selectCols = append(newBuilder.selectCols, columns...)
	return newBuilder
}

// Where adds a WHERE condition.
// Multiple calls are combined with AND logic.
func (b *Builder) Where(condition Condition) *Builder {
	newBuilder := b.clone()
	newBuilder.whereClauses = append(newBuilder.whereClauses, condition)
	return newBuilder
}

// WhereAll adds several conditions at once, combined with AND.
func (b *Builder) WhereAll(conditions []Condition) *Builder {
	newBuilder := b.clone()
	newBuilder.whereClauses = append(newBuilder.whereClauses, conditions...)
	return newBuilder
}

// OrderBy replaces the sort order with a single column and direction.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	newBuilder := b.clone()
	newBuilder.orderBy = []order{{column: column, direction: direction}}
	return newBuilder
}

// ThenBy appends a secondary sort column, typically a unique tie-break.
func (b *Builder) ThenBy(column string, direction Direction) *Builder {
	newBuilder := b.clone()
	newBuilder.orderBy = append(newBuilder.orderBy, order{column: column, direction: direction})
	return newBuilder
}

// Build constructs the final spanner.Statement with SQL and parameters.
func (b *Builder) Build() spanner.Statement {
	var sql strings.Builder
	params := make(map[string]interface{})

	// SELECT clause
	sql.WriteString("SELECT ")
	if len(b.selectCols) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.selectCols, ", "))
	}

	// FROM clause
	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	// WHERE clause
	if where, whereParams := Render(b.whereClauses); where != "" {
		sql.WriteString(" WHERE ")
		sql.WriteString(where)
		for k, v := range whereParams {
			params[k] = v
		}
	}

	// ORDER BY clause
	if orderBy := b.orderClause(); orderBy != "" {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(orderBy)
	}

	return spanner.Statement{
		SQL:    sql.String(),
		Params: params,
	}
}

// orderClause returns the ORDER BY terms without the keyword, e.g. "name ASC, product_id ASC".
func (b *Builder) orderClause() string {
	terms := make([]string, 0, len(b.orderBy))
	for _, o := range b.orderBy {
		dir := "ASC"
		if o.direction == Desc {
			dir = "DESC"
		}
		terms = append(terms, o.column+" "+dir)
	}
	return strings.Join(terms, ", ")
}

// clone creates a shallow copy of the builder for immutability.
func (b *Builder) clone() *Builder {
	newBuilder := &Builder{
		table:        b.table,
		selectCols:   make([]string, len(b.selectCols)),
		whereClauses: make([]Condition, len(b.whereClauses)),
		orderBy:      make([]order, len(b.orderBy)),
	}
	copy(newBuilder.selectCols, b.selectCols)
	copy(newBuilder.whereClauses, b.whereClauses)
	copy(newBuilder.orderBy, b.orderBy)
	return newBuilder
}
