// Package model defines the core types shared across the application.
package model

import "time"

// SalesTableName is the single table all generated queries run against.
const SalesTableName = "sales_data"

// SalesRecord is one row of the sales_data table.
type SalesRecord struct {
	Date        time.Time
	Channel     string
	ProductName string
	City        string
	Quantity    int
	Sales       float64
}
