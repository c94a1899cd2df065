package checkpoints

import (
	"bytes"
	"os"
)

// ReadFiles reads a restart descriptor file and a tape snapshot file.
func ReadFiles(descriptorPath string, tapePath string, lastPosition int, tapeLength int) (*Checkpoint, error) {
	descriptor, err := os.Open(descriptorPath)
	if err != nil {
		return nil, err
	}
	defer descriptor.Close()
	snapshot, err := os.Open(tapePath)
	if err != nil {
		return nil, err
	}
	defer snapshot.Close()
	return ReadCheckpoint(descriptor, snapshot, lastPosition, tapeLength)
}

// WriteFiles writes the pair read by ReadFiles, replacing each file atomically.
func WriteFiles(descriptorPath string, tapePath string, checkpoint *Checkpoint) error {
	descriptor := new(bytes.Buffer)
	snapshot := new(bytes.Buffer)
	if err := WriteCheckpoint(descriptor, snapshot, checkpoint); err != nil {
		return err
	}
	if err := writeAtomic(tapePath, snapshot.Bytes()); err != nil {
		return err
	}
	return writeAtomic(descriptorPath, descriptor.Bytes())
}
