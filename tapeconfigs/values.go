package tapeconfigs

import (
	"os"
	"path/filepath"

	"github.com/reusee/tapec/cmds"
	"github.com/reusee/tapec/configs"
)

var (
	maxCodeLengthFlag    = cmds.Var[*MaxCodeLength]("-max-code-length", "maximum number of source characters, comments included")
	maxLoopDepthFlag     = cmds.Var[*MaxLoopDepth]("-max-loop-depth", "maximum bracket nesting, -1 for unlimited")
	maxReentryPointsFlag = cmds.Var[*MaxReentryPoints]("-max-reentry-points", "maximum number of I/O instructions in resumable mode")
	tapeLengthFlag       = cmds.Var[*TapeLength]("-tape-length", "number of tape cells")
	sandboxedFlag        = cmds.Var[*Sandboxed]("-sandboxed", "true or false, run generated programs under seccomp")
	resumableFlag        = cmds.Var[*Resumable]("-resumable", "true or false, generate checkpointable programs")
	lineWidthFlag        = cmds.Var[*LineWidth]("-line-width", "column budget of generated statements")
	formatFlag           = cmds.Var[*Format]("-format", "true or false, gofmt generated programs")
	checkpointStoreFlag  = cmds.Var[*CheckpointStore]("-checkpoint-store", "file or sqlite")
	checkpointDirFlag    = cmds.Var[*CheckpointDir]("-checkpoint-dir", "directory of checkpoint files and database")
)

func resolve[T configs.Configurable](loader configs.Loader, flag *T, def T) T {
	value, err := configs.Resolve(loader, flag, def)
	if err != nil {
		panic(err)
	}
	return value
}

type MaxCodeLength int

func (MaxCodeLength) ConfigPath() string {
	return "max_code_length"
}

const DefaultMaxCodeLength = 1 << 20

func (Module) MaxCodeLength(loader configs.Loader) MaxCodeLength {
	return resolve(loader, *maxCodeLengthFlag, DefaultMaxCodeLength)
}

// MaxLoopDepth bounds bracket nesting. Negative means unlimited.
type MaxLoopDepth int

func (MaxLoopDepth) ConfigPath() string {
	return "max_loop_depth"
}

func (m MaxLoopDepth) Limit() *int {
	if m < 0 {
		return nil
	}
	n := int(m)
	return &n
}

// DefaultMaxLoopDepth is used when neither flag nor config sets a depth.
type DefaultMaxLoopDepth int

func (Module) DefaultMaxLoopDepth() DefaultMaxLoopDepth {
	return -1
}

func (Module) MaxLoopDepth(
	loader configs.Loader,
	def DefaultMaxLoopDepth,
) MaxLoopDepth {
	return resolve(loader, *maxLoopDepthFlag, MaxLoopDepth(def))
}

type MaxReentryPoints int

func (MaxReentryPoints) ConfigPath() string {
	return "max_reentry_points"
}

const DefaultMaxReentryPoints = 1 << 16

func (Module) MaxReentryPoints(loader configs.Loader) MaxReentryPoints {
	return resolve(loader, *maxReentryPointsFlag, DefaultMaxReentryPoints)
}

type TapeLength int

func (TapeLength) ConfigPath() string {
	return "tape_length"
}

const DefaultTapeLength = 1 << 20

func (Module) TapeLength(loader configs.Loader) TapeLength {
	return resolve(loader, *tapeLengthFlag, DefaultTapeLength)
}

type Sandboxed bool

func (Sandboxed) ConfigPath() string {
	return "sandboxed"
}

func (Module) Sandboxed(loader configs.Loader) Sandboxed {
	return resolve(loader, *sandboxedFlag, true)
}

type Resumable bool

func (Resumable) ConfigPath() string {
	return "resumable"
}

func (Module) Resumable(loader configs.Loader) Resumable {
	return resolve(loader, *resumableFlag, false)
}

type LineWidth int

func (LineWidth) ConfigPath() string {
	return "line_width"
}

const DefaultLineWidth = 62

func (Module) LineWidth(loader configs.Loader) LineWidth {
	return resolve(loader, *lineWidthFlag, DefaultLineWidth)
}

type Format bool

func (Format) ConfigPath() string {
	return "format"
}

func (Module) Format(loader configs.Loader) Format {
	return resolve(loader, *formatFlag, false)
}

type CheckpointStore string

const (
	FileCheckpointStore   CheckpointStore = "file"
	SQLiteCheckpointStore CheckpointStore = "sqlite"
)

func (CheckpointStore) ConfigPath() string {
	return "checkpoint_store"
}

func (Module) CheckpointStore(loader configs.Loader) CheckpointStore {
	return resolve(loader, *checkpointStoreFlag, FileCheckpointStore)
}

type CheckpointDir string

func (CheckpointDir) ConfigPath() string {
	return "checkpoint_dir"
}

func (Module) CheckpointDir(loader configs.Loader) CheckpointDir {
	def := filepath.Join(os.TempDir(), "tapec")
	if dir, err := os.UserCacheDir(); err == nil {
		def = filepath.Join(dir, "tapec")
	}
	return resolve(loader, *checkpointDirFlag, CheckpointDir(def))
}
