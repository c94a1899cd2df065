package checkpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"
)

// FileStore keeps each checkpoint as a restart descriptor, a tape snapshot and a metadata file.
// The descriptor and snapshot can be passed unchanged to a generated resumable program.
type FileStore struct {
	Dir string
}

var _ Store = FileStore{}

type fileMeta struct {
	Program string    `json:"program"`
	Created time.Time `json:"created"`
}

func (f FileStore) DescriptorPath(id string) string {
	return filepath.Join(f.Dir, id+".pos")
}

func (f FileStore) TapePath(id string) string {
	return filepath.Join(f.Dir, id+".tape")
}

func (f FileStore) metaPath(id string) string {
	return filepath.Join(f.Dir, id+".json")
}

func (f FileStore) lock(id string) (func(), error) {
	lockFile := filepath.Join(f.Dir, id+".lock")
	file, err := os.OpenFile(lockFile, os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrLocked, id)
		}
		return nil, err
	}
	file.Close()
	return func() {
		os.Remove(lockFile)
	}, nil
}

func (f FileStore) Save(ctx context.Context, record *Record) error {
	record.Prepare()
	if err := os.MkdirAll(f.Dir, 0755); err != nil {
		return err
	}
	unlock, err := f.lock(record.ID)
	if err != nil {
		return err
	}
	defer unlock()

	descriptor := new(bytes.Buffer)
	snapshot := new(bytes.Buffer)
	if err := WriteCheckpoint(descriptor, snapshot, &record.Checkpoint); err != nil {
		return err
	}
	meta, err := json.MarshalIndent(fileMeta{
		Program: record.Program,
		Created: record.Created,
	}, "", "  ")
	if err != nil {
		return err
	}

	// meta last, so Load never sees it without the pair
	if err := writeAtomic(f.TapePath(record.ID), snapshot.Bytes()); err != nil {
		return err
	}
	if err := writeAtomic(f.DescriptorPath(record.ID), descriptor.Bytes()); err != nil {
		return err
	}
	return writeAtomic(f.metaPath(record.ID), meta)
}

func (f FileStore) Load(ctx context.Context, id string) (*Record, error) {
	unlock, err := f.lock(id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	metaContent, err := os.ReadFile(f.metaPath(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	} else if err != nil {
		return nil, err
	}
	var meta fileMeta
	if err := json.Unmarshal(metaContent, &meta); err != nil {
		return nil, err
	}

	descriptor, err := os.Open(f.DescriptorPath(id))
	if err != nil {
		return nil, err
	}
	defer descriptor.Close()
	snapshot, err := os.Open(f.TapePath(id))
	if err != nil {
		return nil, err
	}
	defer snapshot.Close()
	stat, err := snapshot.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size() < 1 {
		return nil, fmt.Errorf("%w: empty snapshot", ErrBadCheckpoint)
	}

	// the position is checked against the program by the caller
	checkpoint, err := ReadCheckpoint(descriptor, snapshot, math.MaxInt, int(stat.Size()))
	if err != nil {
		return nil, err
	}

	return &Record{
		ID:         id,
		Program:    meta.Program,
		Created:    meta.Created,
		Checkpoint: *checkpoint,
	}, nil
}

func (f FileStore) Delete(ctx context.Context, id string) error {
	unlock, err := f.lock(id)
	if err != nil {
		return err
	}
	defer unlock()
	var errs []error
	for _, path := range []string{
		f.metaPath(id),
		f.DescriptorPath(id),
		f.TapePath(id),
	} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
