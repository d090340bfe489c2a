package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadOnlyGuard(t *testing.T) {
	guard := ReadOnlyGuard{Table: "sales_data"}

	tests := []struct {
		name      string
		statement string
		wantErr   string
	}{
		{
			name:      "simple select",
			statement: "SELECT city, SUM(sales) FROM sales_data GROUP BY city",
		},
		{
			name:      "select with trailing semicolon",
			statement: "SELECT * FROM sales_data;",
		},
		{
			name:      "cte select",
			statement: "WITH daily AS (SELECT date, SUM(quantity) q FROM sales_data GROUP BY date) SELECT * FROM daily ORDER BY q DESC LIMIT 5",
		},
		{
			name:      "lowercase select",
			statement: "select channel from sales_data",
		},
		{
			name:      "empty statement",
			statement: "   ",
			wantErr:   "empty statement",
		},
		{
			name:      "insert rejected",
			statement: "INSERT INTO sales_data (city) VALUES ('Mumbai')",
			wantErr:   "only SELECT statements are allowed",
		},
		{
			name:      "drop rejected",
			statement: "DROP TABLE sales_data",
			wantErr:   "only SELECT statements are allowed",
		},
		{
			name:      "stacked statements rejected",
			statement: "SELECT * FROM sales_data; DROP TABLE sales_data",
			wantErr:   "multiple statements are not allowed",
		},
		{
			name:      "select into outfile rejected",
			statement: "SELECT * FROM sales_data INTO OUTFILE '/tmp/x'",
			wantErr:   "forbidden keyword",
		},
		{
			name:      "unknown table rejected",
			statement: "SELECT * FROM customers",
			wantErr:   "must reference the sales_data table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := guard.Check(tt.statement)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestReadOnlyGuardWithoutTableRestriction(t *testing.T) {
	guard := ReadOnlyGuard{}
	assert.NoError(t, guard.Check("SELECT 1"))
}
