package postgres

import (
	"context"
	"database/sql"
	"time"
)

type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type sqlDB struct {
	db      *sql.DB
	timeout time.Duration
}

func NewSQLDB(db *sql.DB, timeout time.Duration) DB {
	return &sqlDB{db: db, timeout: timeout}
}

func (s *sqlDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.db.ExecContext(ctx, query, args...)
}
