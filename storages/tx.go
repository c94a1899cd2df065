package storages

import (
	"context"
	"database/sql"
)

type Tx interface {
	Commit() error
	Rollback() error
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) *sql.Row
}

type sqlTx struct {
	tx *sql.Tx
}

var _ Tx = sqlTx{}

func (s sqlTx) Commit() error {
	return s.tx.Commit()
}

func (s sqlTx) Rollback() error {
	return s.tx.Rollback()
}

func (s sqlTx) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.tx.ExecContext(ctx, query, args...)
}

func (s sqlTx) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.tx.QueryContext(ctx, query, args...)
}

func (s sqlTx) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.tx.QueryRowContext(ctx, query, args...)
}
