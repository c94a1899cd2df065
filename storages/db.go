package storages

import (
	"context"
	"database/sql"
	"errors"

	"github.com/reusee/e5"
	_ "modernc.org/sqlite"
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

type DB struct {
	db *sql.DB
}

// Open opens a sqlite database file and applies the schema statements.
func Open(ctx context.Context, path string, schema ...string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrap(err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, wrap(err)
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, wrap(err)
		}
	}
	return &DB{
		db: db,
	}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Tx runs fn in a transaction, committing when fn returns nil.
func (d *DB) Tx(ctx context.Context, fn func(Tx) error) (err error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap(err)
	}
	t := sqlTx{tx: tx}
	defer func() {
		if err != nil {
			err = errors.Join(err, ignoreDone(t.Rollback()))
		}
	}()
	if err := fn(t); err != nil {
		return err
	}
	if err := t.Commit(); err != nil {
		return wrap(err)
	}
	return nil
}

func ignoreDone(err error) error {
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}
