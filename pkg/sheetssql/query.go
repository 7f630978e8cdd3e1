package sheetssql

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
)

// headerRows is the number of rows (headers and types) in front of the data
const headerRows = 2

// GetTableAs reads every data row of a table into structs of type T.
// Columns are matched to fields by their ssql_header tag; unknown columns are ignored.
func GetTableAs[T any](ctx context.Context, db *DB, tableName string) ([]T, error) {
	values, err := db.client.GetValues(ctx, db.spreadsheetID, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get table %s: %w", tableName, err)
	}

	if len(values) <= headerRows {
		return []T{}, nil
	}

	t := reflect.TypeFor[T]()

	fieldByHeader := make(map[string]int)
	for i := 0; i < t.NumField(); i++ {
		if header := t.Field(i).Tag.Get("ssql_header"); header != "" {
			fieldByHeader[header] = i
		}
	}

	// column index -> field index
	columns := make(map[int]int)
	for col, header := range values[0] {
		if field, ok := fieldByHeader[fmt.Sprint(header)]; ok {
			columns[col] = field
		}
	}

	dataRows := values[headerRows:]
	results := make([]T, 0, len(dataRows))
	for rowIdx, row := range dataRows {
		result := reflect.New(t).Elem()

		for col, field := range columns {
			if col >= len(row) || row[col] == nil {
				continue
			}
			if err := setFieldValue(result.Field(field), row[col]); err != nil {
				return nil, fmt.Errorf("row %d, column %v: %w", rowIdx+headerRows+1, values[0][col], err)
			}
		}

		results = append(results, result.Interface().(T))
	}

	return results, nil
}

// setFieldValue converts a sheet cell to the field's Go type.
// The API returns formatted strings; other cell types are formatted first.
func setFieldValue(field reflect.Value, cellValue interface{}) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	cellStr, ok := cellValue.(string)
	if !ok {
		cellStr = fmt.Sprint(cellValue)
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(cellStr)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if cellStr == "" {
			field.SetInt(0)
			return nil
		}
		intVal, err := strconv.ParseInt(cellStr, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse int: %w", err)
		}
		field.SetInt(intVal)

	case reflect.Float32, reflect.Float64:
		if cellStr == "" {
			field.SetFloat(0)
			return nil
		}
		floatVal, err := strconv.ParseFloat(cellStr, 64)
		if err != nil {
			return fmt.Errorf("failed to parse float: %w", err)
		}
		field.SetFloat(floatVal)

	case reflect.Bool:
		if cellStr == "" {
			field.SetBool(false)
			return nil
		}
		boolVal, err := strconv.ParseBool(cellStr)
		if err != nil {
			return fmt.Errorf("failed to parse bool: %w", err)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// InsertModels appends structs as rows to the table named after their type
func InsertModels[T any](ctx context.Context, db *DB, models []T) error {
	if len(models) == 0 {
		return nil
	}

	t := reflect.TypeFor[T]()

	rows := make([][]interface{}, 0, len(models))
	for _, model := range models {
		v := reflect.ValueOf(model)
		row := make([]interface{}, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).Tag.Get("ssql_header") == "" {
				continue
			}
			row = append(row, v.Field(i).Interface())
		}
		rows = append(rows, row)
	}

	return db.InsertRows(ctx, toSnakeCase(t.Name()), rows)
}

// InsertModel appends one struct as a row
func InsertModel[T any](ctx context.Context, db *DB, model T) error {
	return InsertModels(ctx, db, []T{model})
}
