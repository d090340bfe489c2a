package model

import (
	"fmt"
	"strings"
)

// ColumnSchema describes one column of a queryable table.
type ColumnSchema struct {
	Name string
	Type string
}

// TableSchema describes a queryable table for prompt construction.
type TableSchema struct {
	Name    string
	Columns []ColumnSchema
}

// Describe renders the schema in the compact form embedded in generation
// prompts, e.g. "sales_data (columns: date (date), channel (string), ...)".
func (s TableSchema) Describe() string {
	parts := make([]string, 0, len(s.Columns))
	for _, col := range s.Columns {
		parts = append(parts, fmt.Sprintf("%s (%s)", col.Name, col.Type))
	}
	return fmt.Sprintf("%s (columns: %s)", s.Name, strings.Join(parts, ", "))
}

// SalesSchema returns the fixed schema of the sales_data table.
func SalesSchema() TableSchema {
	return TableSchema{
		Name: SalesTableName,
		Columns: []ColumnSchema{
			{Name: "date", Type: "date"},
			{Name: "channel", Type: "string"},
			{Name: "product_name", Type: "string"},
			{Name: "city", Type: "string"},
			{Name: "quantity", Type: "integer"},
			{Name: "sales", Type: "float"},
		},
	}
}
