package checkpoints

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T, store Store) {
	ctx := context.Background()

	record := &Record{
		Program: "+[,.]",
		Checkpoint: Checkpoint{
			Position: 1,
			Pointer:  2,
			Tape:     []byte{1, 2, 3, 4},
		},
	}
	if err := store.Save(ctx, record); err != nil {
		t.Fatal(err)
	}
	if record.ID == "" || record.Created.IsZero() {
		t.Fatal()
	}

	loaded, err := store.Load(ctx, record.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Program != record.Program ||
		loaded.Position != 1 ||
		loaded.Pointer != 2 ||
		!bytes.Equal(loaded.Tape, record.Tape) ||
		!loaded.Created.Equal(record.Created) {
		t.Fatalf("got %+v", loaded)
	}

	// replace
	record.Position = 0
	record.Tape = []byte{9, 9, 9, 9}
	if err := store.Save(ctx, record); err != nil {
		t.Fatal(err)
	}
	loaded, err = store.Load(ctx, record.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Position != 0 || loaded.Tape[0] != 9 {
		t.Fatalf("got %+v", loaded)
	}

	if err := store.Delete(ctx, record.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(ctx, record.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v", err)
	}
	if _, err := store.Load(ctx, "nonexistent"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestFileStore(t *testing.T) {
	testStore(t, FileStore{
		Dir: t.TempDir(),
	})
}

func TestFileStoreLock(t *testing.T) {
	store := FileStore{
		Dir: t.TempDir(),
	}
	record := &Record{
		ID: "locked",
		Checkpoint: Checkpoint{
			Tape: []byte{0},
		},
	}
	if err := os.WriteFile(filepath.Join(store.Dir, "locked.lock"), nil, 0600); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(context.Background(), record); !errors.Is(err, ErrLocked) {
		t.Fatalf("got %v", err)
	}
}

func TestFileStorePair(t *testing.T) {
	store := FileStore{
		Dir: t.TempDir(),
	}
	record := &Record{
		Checkpoint: Checkpoint{
			Position: 2,
			Pointer:  1,
			Tape:     []byte("abc"),
		},
	}
	if err := store.Save(context.Background(), record); err != nil {
		t.Fatal(err)
	}
	// the pair is readable as restart files
	checkpoint, err := ReadFiles(store.DescriptorPath(record.ID), store.TapePath(record.ID), 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if checkpoint.Position != 2 || checkpoint.Pointer != 1 || string(checkpoint.Tape) != "abc" {
		t.Fatalf("got %+v", checkpoint)
	}

	dir := t.TempDir()
	descriptorPath := filepath.Join(dir, "cp.pos")
	tapePath := filepath.Join(dir, "cp.tape")
	if err := WriteFiles(descriptorPath, tapePath, checkpoint); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFiles(descriptorPath, tapePath, 1, 3); !errors.Is(err, ErrBadCheckpoint) {
		t.Fatalf("got %v", err)
	}
}
