package postgres

import (
	"context"
	"database/sql"
	"time"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

type sqlRows struct {
	rows   *sql.Rows
	cancel context.CancelFunc
}

func (r *sqlRows) Next() bool {
	return r.rows.Next()
}

func (r *sqlRows) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

func (r *sqlRows) Err() error {
	return r.rows.Err()
}

func (r *sqlRows) Close() error {
	defer r.cancel()
	return r.rows.Close()
}

type sqlDB struct {
	db      *sql.DB
	timeout time.Duration
}

// NewSQLDB wraps db. A positive timeout bounds each query, row iteration
// included.
func NewSQLDB(db *sql.DB, timeout time.Duration) DB {
	return &sqlDB{db: db, timeout: timeout}
}

func (s *sqlDB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	cancel := context.CancelFunc(func() {})
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		cancel()
		return nil, err
	}
	return &sqlRows{rows: rows, cancel: cancel}, nil
}
