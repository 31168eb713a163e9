//go:build !unix

package stream

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// growSupported is false: without a mapping primitive the region is a fixed
// size copy of the file that cannot be extended in place
const growSupported = false

// mapping emulates a file mapping with an in-memory copy written back on sync
type mapping struct {
	file     *os.File
	data     []byte
	writable bool
}

func mapFile(file *os.File, size int64, writable bool) (*mapping, error) {
	data := make([]byte, size)
	if _, err := file.ReadAt(data, 0); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &mapping{file: file, data: data, writable: writable}, nil
}

func (m *mapping) remap(size int64) error {
	return fmt.Errorf("remapping to %d bytes: %w", size, ErrUnsupported)
}

func (m *mapping) sync() error {
	if m.data == nil || !m.writable {
		return nil
	}
	_, err := m.file.WriteAt(m.data, 0)
	return err
}

func (m *mapping) unmap() error {
	m.data = nil
	return nil
}
