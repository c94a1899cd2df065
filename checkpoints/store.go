package checkpoints

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("checkpoint not found")
	ErrLocked   = errors.New("checkpoint locked")
)

// Record is a stored checkpoint.
type Record struct {
	ID string
	// Program identifies the program the checkpoint was taken from.
	Program string
	Created time.Time
	Checkpoint
}

type Store interface {
	// Save stores the record, assigning ID and Created when zero.
	Save(ctx context.Context, record *Record) error
	Load(ctx context.Context, id string) (*Record, error)
	Delete(ctx context.Context, id string) error
}

// Prepare assigns ID and Created when zero.
func (record *Record) Prepare() {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Created.IsZero() {
		record.Created = time.Now()
	}
}
