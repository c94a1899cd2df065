package harness

import (
	"fmt"

	"github.com/reusee/tapec/checkpoints"
)

// Restore reads the checkpoint named by the command line arguments:
// none for a fresh start, or a restart descriptor file and a tape file.
func Restore(args []string, lastPosition int, tapeLength int) (*checkpoints.Checkpoint, error) {
	switch len(args) {
	case 0:
		return nil, nil
	case 2:
		return checkpoints.ReadFiles(args[0], args[1], lastPosition, tapeLength)
	}
	return nil, fmt.Errorf("%w: want a descriptor file and a tape file, got %d arguments", ErrArgs, len(args))
}
