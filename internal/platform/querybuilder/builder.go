package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition renders one predicate of a WHERE clause using $n placeholders.
type Condition interface {
	appendSQL(w *sqlWriter)
}

type sqlWriter struct {
	buf  strings.Builder
	args []any
}

func (w *sqlWriter) bind(value any) {
	w.args = append(w.args, value)
	w.buf.WriteString("$")
	w.buf.WriteString(strconv.Itoa(len(w.args)))
}

func (w *sqlWriter) where(conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.buf.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.buf.WriteString(" AND ")
		}
		c.appendSQL(w)
	}
}

type cmpCondition struct {
	column string
	op     string
	value  any
}

func (c cmpCondition) appendSQL(w *sqlWriter) {
	w.buf.WriteString(c.column)
	w.buf.WriteString(" ")
	w.buf.WriteString(c.op)
	w.buf.WriteString(" ")
	w.bind(c.value)
}

func Eq(column string, value any) Condition  { return cmpCondition{column, "=", value} }
func Gte(column string, value any) Condition { return cmpCondition{column, ">=", value} }
func Lte(column string, value any) Condition { return cmpCondition{column, "<=", value} }

// Contains matches a case-insensitive substring. LIKE wildcards in value are escaped.
func Contains(column, value string) Condition {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
	return cmpCondition{column, "ILIKE", "%" + escaped + "%"}
}

type nullCondition struct {
	column string
	null   bool
}

func (c nullCondition) appendSQL(w *sqlWriter) {
	w.buf.WriteString(c.column)
	if c.null {
		w.buf.WriteString(" IS NULL")
		return
	}
	w.buf.WriteString(" IS NOT NULL")
}

func IsNull(column string) Condition  { return nullCondition{column: column, null: true} }
func NotNull(column string) Condition { return nullCondition{column: column} }

type SelectBuilder struct {
	columns   []string
	table     string
	where     []Condition
	orderBy   []string
	limit     int
	offset    int
	forUpdate bool
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

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) Offset(offset int) *SelectBuilder {
	b.offset = offset
	return b
}

// ForUpdate locks the selected rows until the surrounding transaction ends.
func (b *SelectBuilder) ForUpdate() *SelectBuilder {
	b.forUpdate = true
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	w := &sqlWriter{}
	w.buf.WriteString("SELECT ")
	w.buf.WriteString(strings.Join(b.columns, ", "))
	w.buf.WriteString(" FROM ")
	w.buf.WriteString(b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.buf.WriteString(" ORDER BY ")
		w.buf.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.buf.WriteString(" LIMIT ")
		w.buf.WriteString(strconv.Itoa(b.limit))
	}
	if b.offset > 0 {
		w.buf.WriteString(" OFFSET ")
		w.buf.WriteString(strconv.Itoa(b.offset))
	}
	if b.forUpdate {
		w.buf.WriteString(" FOR UPDATE")
	}

	return w.buf.String(), w.args, nil
}

type setClause struct {
	column string
	value  any
	raw    string
}

type UpdateBuilder struct {
	table string
	sets  []setClause
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, value: value})
	return b
}

// SetRaw assigns an SQL expression without binding, e.g. NOW().
func (b *UpdateBuilder) SetRaw(column, expr string) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, raw: expr})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	w := &sqlWriter{}
	w.buf.WriteString("UPDATE ")
	w.buf.WriteString(b.table)
	w.buf.WriteString(" SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.buf.WriteString(s.column)
		w.buf.WriteString(" = ")
		if s.raw != "" {
			w.buf.WriteString(s.raw)
			continue
		}
		w.bind(s.value)
	}
	w.where(b.where)

	return w.buf.String(), w.args, nil
}

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
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}

	w := &sqlWriter{}
	w.buf.WriteString("DELETE FROM ")
	w.buf.WriteString(b.table)
	w.where(b.where)

	return w.buf.String(), w.args, nil
}
