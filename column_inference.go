package samplesheet

import (
	"strconv"
	"strings"
)

// columnType represents the SQLite column type assigned to a sheet column.
type columnType int

const (
	// columnTypeText represents TEXT column type
	columnTypeText columnType = iota
	// columnTypeInteger represents INTEGER column type
	columnTypeInteger
	// columnTypeReal represents REAL column type
	columnTypeReal
)

const (
	sqlTypeText    = "TEXT"
	sqlTypeInteger = "INTEGER"
	sqlTypeReal    = "REAL"
)

// string returns the SQL column type string.
func (ct columnType) string() string {
	switch ct {
	case columnTypeInteger:
		return sqlTypeInteger
	case columnTypeReal:
		return sqlTypeReal
	default:
		return sqlTypeText
	}
}

// inferColumnType infers the SQL column type from a slice of cell values.
// Blank cells carry no type information and are skipped; a column with only
// blank cells stays TEXT.
func inferColumnType(values []string) columnType {
	hasReal := false
	hasInteger := false
	hasNumber := false

	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		if _, err := strconv.ParseInt(value, 10, 64); err == nil {
			hasInteger = true
			hasNumber = true
			continue
		}
		if _, err := strconv.ParseFloat(value, 64); err == nil {
			hasReal = true
			hasNumber = true
			continue
		}

		// Any non-numeric value makes the whole column text.
		return columnTypeText
	}

	if !hasNumber {
		return columnTypeText
	}
	if hasReal {
		return columnTypeReal
	}
	if hasInteger {
		return columnTypeInteger
	}
	return columnTypeText
}

// inferColumnTypes infers one type per header column from the record rows.
// Rows narrower than the header contribute nothing to the missing columns.
func inferColumnTypes(headers []string, records [][]string) []columnType {
	types := make([]columnType, len(headers))
	for i := range headers {
		var values []string
		for _, record := range records {
			if i < len(record) {
				values = append(values, record[i])
			}
		}
		types[i] = inferColumnType(values)
	}
	return types
}
