package storages

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/tapec/checkpoints"
	"github.com/reusee/tapec/logs"
	"github.com/reusee/tapec/modes"
	"github.com/reusee/tapec/tapeconfigs"
)

type Module struct {
	dscope.Module
}

func (Module) Store(
	kind tapeconfigs.CheckpointStore,
	configDir tapeconfigs.CheckpointDir,
	mode modes.Mode,
	t *testing.T,
	logger logs.Logger,
) checkpoints.Store {
	dir := string(configDir)
	if mode == modes.ModeDevelopment && t != nil {
		dir = t.TempDir()
	}

	switch kind {

	case tapeconfigs.SQLiteCheckpointStore:
		if err := os.MkdirAll(dir, 0755); err != nil {
			panic(err)
		}
		path := filepath.Join(dir, "checkpoints.db")
		store, err := OpenSQLStore(context.Background(), path)
		if err != nil {
			panic(err)
		}
		if t != nil {
			t.Cleanup(func() {
				store.Close()
			})
		}
		logger.Debug("checkpoint store", "kind", kind, "path", path)
		return store

	default:
		logger.Debug("checkpoint store", "kind", kind, "dir", dir)
		return checkpoints.FileStore{
			Dir: dir,
		}
	}
}
