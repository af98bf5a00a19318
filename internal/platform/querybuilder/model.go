package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds a single-row INSERT from the db tags of model.
// suffix is appended verbatim, e.g. "ON CONFLICT DO NOTHING".
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	if strings.TrimSpace(table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	cols, vals, err := columnsAndValues(model)
	if err != nil {
		return "", nil, err
	}

	w := &sqlWriter{}
	w.buf.WriteString("INSERT INTO ")
	w.buf.WriteString(table)
	w.buf.WriteString(" (")
	w.buf.WriteString(strings.Join(cols, ", "))
	w.buf.WriteString(") VALUES (")
	for i, v := range vals {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.bind(v)
	}
	w.buf.WriteString(")")
	if suffix = strings.TrimSpace(suffix); suffix != "" {
		w.buf.WriteString(" ")
		w.buf.WriteString(suffix)
	}
	return w.buf.String(), w.args, nil
}

func columnsAndValues(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
