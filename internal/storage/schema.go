package storage

import (
	"context"
	"fmt"

	"github.com/salescope/salescope/internal/model"
)

const createSalesTable = `CREATE TABLE IF NOT EXISTS sales_data (
	id INT AUTO_INCREMENT PRIMARY KEY,
	date DATE NOT NULL,
	channel VARCHAR(128) NOT NULL,
	product_name VARCHAR(256) NOT NULL,
	city VARCHAR(128) NOT NULL,
	quantity INT NOT NULL,
	sales DOUBLE NOT NULL
)`

const insertSales = `INSERT INTO sales_data (date, channel, product_name, city, quantity, sales) VALUES (?, ?, ?, ?, ?, ?)`

// EnsureSchema creates the sales_data table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createSalesTable); err != nil {
		return fmt.Errorf("failed to create sales_data table: %w", err)
	}
	s.logger.Info("sales_data table ready")
	return nil
}

// InsertSales appends records to sales_data in a single transaction.
func (s *Store) InsertSales(ctx context.Context, records []model.SalesRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertSales)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, rec := range records {
		_, err := stmt.ExecContext(ctx,
			rec.Date.Format("2006-01-02"),
			rec.Channel,
			rec.ProductName,
			rec.City,
			rec.Quantity,
			rec.Sales,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit insert: %w", err)
	}

	s.logger.Info("inserted sales records", "count", len(records))
	return nil
}
