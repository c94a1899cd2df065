package storages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/reusee/tapec/checkpoints"
)

var sqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS checkpoints (
		id TEXT PRIMARY KEY,
		program TEXT NOT NULL,
		position INTEGER NOT NULL,
		pointer INTEGER NOT NULL,
		tape BLOB NOT NULL,
		created INTEGER NOT NULL
	)`,
}

// SQLStore keeps checkpoints in one sqlite table.
type SQLStore struct {
	DB *DB
}

var _ checkpoints.Store = SQLStore{}

func OpenSQLStore(ctx context.Context, path string) (SQLStore, error) {
	db, err := Open(ctx, path, sqlSchema...)
	if err != nil {
		return SQLStore{}, err
	}
	return SQLStore{
		DB: db,
	}, nil
}

func (s SQLStore) Save(ctx context.Context, record *checkpoints.Record) error {
	record.Prepare()
	return s.DB.Tx(ctx, func(tx Tx) error {
		_, err := tx.Exec(ctx, `INSERT OR REPLACE INTO checkpoints
			(id, program, position, pointer, tape, created)
			VALUES (?, ?, ?, ?, ?, ?)`,
			record.ID,
			record.Program,
			record.Position,
			record.Pointer,
			record.Tape,
			record.Created.UnixNano(),
		)
		if err != nil {
			return wrap(err)
		}
		return nil
	})
}

func (s SQLStore) Load(ctx context.Context, id string) (*checkpoints.Record, error) {
	record := &checkpoints.Record{
		ID: id,
	}
	var created int64
	err := s.DB.Tx(ctx, func(tx Tx) error {
		return tx.QueryRow(ctx, `SELECT program, position, pointer, tape, created
			FROM checkpoints WHERE id = ?`, id).Scan(
			&record.Program,
			&record.Position,
			&record.Pointer,
			&record.Tape,
			&created,
		)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", checkpoints.ErrNotFound, id)
	} else if err != nil {
		return nil, wrap(err)
	}
	record.Created = time.Unix(0, created)
	if len(record.Tape) == 0 {
		return nil, fmt.Errorf("%w: empty snapshot", checkpoints.ErrBadCheckpoint)
	}
	if err := record.Validate(record.Position, len(record.Tape)); err != nil {
		return nil, err
	}
	return record, nil
}

func (s SQLStore) Delete(ctx context.Context, id string) error {
	return s.DB.Tx(ctx, func(tx Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM checkpoints WHERE id = ?`, id)
		if err != nil {
			return wrap(err)
		}
		return nil
	})
}

func (s SQLStore) Close() error {
	return s.DB.Close()
}
