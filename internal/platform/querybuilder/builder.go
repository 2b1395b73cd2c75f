// Package querybuilder renders the few postgres statements the session store
// issues. Placeholders are numbered $1, $2, ... in the order values are bound.
package querybuilder

import (
	"errors"
	"strconv"
	"strings"
)

// Condition is one term of a WHERE clause. Terms are joined with AND.
type Condition interface {
	render(w *writer)
}

type writer struct {
	sql  strings.Builder
	args []any
}

func (w *writer) write(parts ...string) {
	for _, p := range parts {
		w.sql.WriteString(p)
	}
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.write("$", strconv.Itoa(len(w.args)))
}

// expand copies raw, binding values to its '?' markers in order. Markers past
// the last value are kept as written.
func (w *writer) expand(raw string, values []any) {
	for i := 0; i < len(raw); i++ {
		if raw[i] == '?' && len(values) > 0 {
			w.bind(values[0])
			values = values[1:]
			continue
		}
		w.sql.WriteByte(raw[i])
	}
}

func (w *writer) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			w.write(" WHERE ")
		} else {
			w.write(" AND ")
		}
		c.render(w)
	}
}

func (w *writer) result() (string, []any, error) {
	return w.sql.String(), w.args, nil
}

type eq struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eq{column: column, value: value}
}

func (c eq) render(w *writer) {
	w.write(c.column, " = ")
	w.bind(c.value)
}

type expr struct {
	sql  string
	args []any
}

// Expr is a raw condition whose '?' markers take args.
func Expr(sql string, args ...any) Condition {
	return expr{sql: sql, args: args}
}

func (c expr) render(w *writer) {
	w.expand(c.sql, c.args)
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, errors.New("select columns are required")
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("select table is required")
	}

	var w writer
	w.write("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	w.where(b.where)
	if b.limit > 0 {
		w.write(" LIMIT ", strconv.Itoa(b.limit))
	}
	return w.result()
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends raw SQL such as an ON CONFLICT clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("insert table is required")
	case len(b.columns) == 0:
		return "", nil, errors.New("insert columns are required")
	case len(b.rows) == 0:
		return "", nil, errors.New("insert values are required")
	}

	var w writer
	w.write("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, errors.New("insert row " + strconv.Itoa(i) + " has " + strconv.Itoa(len(row)) + " values, expected " + strconv.Itoa(len(b.columns)))
		}
		if i > 0 {
			w.write(", ")
		}
		w.write("(")
		for j, value := range row {
			if j > 0 {
				w.write(", ")
			}
			w.bind(value)
		}
		w.write(")")
	}
	if b.suffix != "" {
		w.write(" ", b.suffix)
	}
	return w.result()
}

// DeleteBuilder refuses to build a DELETE without conditions.
type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("delete table is required")
	case len(b.where) == 0:
		return "", nil, errors.New("delete conditions are required")
	}

	var w writer
	w.write("DELETE FROM ", b.table)
	w.where(b.where)
	return w.result()
}
