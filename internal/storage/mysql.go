// Package storage implements the MySQL-backed sales store: schema creation,
// bulk append, and the execution gateway generated queries run through.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver

	"github.com/salescope/salescope/internal/model"
)

// ExecutionError captures a database failure while executing a generated
// statement. The driver error is flattened to a message so the orchestrator
// can surface it verbatim without re-raising it.
type ExecutionError struct {
	Message string
}

func (e *ExecutionError) Error() string {
	return e.Message
}

// Store wraps the MySQL connection pool behind the gateway contract.
type Store struct {
	db           *sql.DB
	guard        Guard
	logger       *slog.Logger
	queryTimeout time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithGuard replaces the default statement guard. Passing nil disables
// guarding entirely, restoring the original execute-anything behavior.
func WithGuard(g Guard) Option {
	return func(s *Store) { s.guard = g }
}

// WithQueryTimeout bounds each gateway execution.
func WithQueryTimeout(d time.Duration) Option {
	return func(s *Store) { s.queryTimeout = d }
}

// New opens a connection pool for the given DSN and verifies connectivity.
func New(dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewWithDB(db, opts...), nil
}

// NewWithDB wraps an existing pool. Used directly by tests.
func NewWithDB(db *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:           db,
		guard:        ReadOnlyGuard{Table: model.SalesTableName},
		logger:       slog.Default(),
		queryTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close closes the database connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Query runs one generated statement through the gateway and materializes
// the full result set.
//
// A dedicated connection is acquired for the call and released on every exit
// path; it is never shared across requests. All failures, including guard
// rejections, come back as *ExecutionError so the orchestrator can decide to
// retry generation or surface the message.
func (s *Store) Query(ctx context.Context, statement string) (*model.RowSet, error) {
	statement = stripEnclosingQuotes(strings.TrimSpace(statement))

	if s.guard != nil {
		if err := s.guard.Check(statement); err != nil {
			return nil, &ExecutionError{Message: fmt.Sprintf("statement rejected: %v", err)}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, &ExecutionError{Message: fmt.Sprintf("failed to acquire connection: %v", err)}
	}
	defer func() { _ = conn.Close() }()

	rows, err := conn.QueryContext(ctx, statement)
	if err != nil {
		return nil, &ExecutionError{Message: err.Error()}
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &ExecutionError{Message: fmt.Sprintf("failed to read columns: %v", err)}
	}

	result := &model.RowSet{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		targets := make([]any, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, &ExecutionError{Message: fmt.Sprintf("failed to scan row: %v", err)}
		}

		row := make(model.Row, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &ExecutionError{Message: err.Error()}
	}

	s.logger.Debug("executed statement", "rows", result.Len())
	return result, nil
}

// stripEnclosingQuotes removes one layer of quotes wrapping the whole
// statement. Some models quote the SQL they return.
func stripEnclosingQuotes(statement string) string {
	if len(statement) >= 2 {
		first, last := statement[0], statement[len(statement)-1]
		if first == last && (first == '"' || first == '\'') {
			return strings.TrimSpace(statement[1 : len(statement)-1])
		}
	}
	return statement
}

// normalizeValue converts driver byte slices to strings so rows serialize
// cleanly downstream.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
