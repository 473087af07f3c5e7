package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// modelFields caches the db-tagged field indexes per struct type.
var modelFields sync.Map

type fieldColumn struct {
	index  int
	column string
}

// InsertModel starts an insert whose columns come from the `db` tags of the
// first model. Every model must share that struct type; each becomes one row.
func InsertModel(table string, models ...any) *InsertBuilder {
	b := InsertInto(table)
	if len(models) == 0 {
		b.err = fmt.Errorf("insert %s: no models", table)
		return b
	}

	var rowType reflect.Type
	for i, model := range models {
		value, err := structValue(model)
		if err != nil {
			b.err = fmt.Errorf("insert %s row %d: %w", table, i, err)
			return b
		}
		if rowType == nil {
			rowType = value.Type()
		} else if value.Type() != rowType {
			b.err = fmt.Errorf("insert %s row %d: got %s, expected %s", table, i, value.Type(), rowType)
			return b
		}

		fields, err := columnsFor(rowType)
		if err != nil {
			b.err = fmt.Errorf("insert %s: %w", table, err)
			return b
		}
		if i == 0 {
			cols := make([]string, len(fields))
			for j, f := range fields {
				cols[j] = f.column
			}
			b.Columns(cols...)
		}

		row := make([]any, len(fields))
		for j, f := range fields {
			row[j] = value.Field(f.index).Interface()
		}
		b.Values(row...)
	}
	return b
}

func structValue(model any) (reflect.Value, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return reflect.Value{}, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("model must be struct, got %s", value.Kind())
	}
	return value, nil
}

func columnsFor(typ reflect.Type) ([]fieldColumn, error) {
	if cached, ok := modelFields.Load(typ); ok {
		return cached.([]fieldColumn), nil
	}

	fields := make([]fieldColumn, 0, typ.NumField())
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
		fields = append(fields, fieldColumn{index: i, column: col})
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%s has no db columns", typ)
	}

	modelFields.Store(typ, fields)
	return fields, nil
}
