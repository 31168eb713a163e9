//go:build unix

package stream

import (
	"errors"
	"fmt"
	"golang.org/x/sys/unix"
	"os"
)

// growSupported reports whether a mapped output can be remapped at a larger size
const growSupported = true

// truncateFile resizes the file behind a mapping
var truncateFile = (*os.File).Truncate

// mapping is a shared memory map of a file region starting at offset 0
type mapping struct {
	file     *os.File
	data     []byte
	writable bool
}

// mapFile maps the first size bytes of file
func mapFile(file *os.File, size int64, writable bool) (*mapping, error) {
	m := &mapping{file: file, writable: writable}
	if err := m.mapAt(size); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *mapping) mapAt(size int64) error {
	// mmap rejects zero-length regions, an empty file maps to no data
	if size == 0 {
		m.data = nil
		return nil
	}
	prot := unix.PROT_READ
	if m.writable {
		prot |= unix.PROT_WRITE
	}
	data, err := unix.Mmap(int(m.file.Fd()), 0, int(size), prot, unix.MAP_SHARED)
	if err != nil {
		return err
	}
	m.data = data
	return nil
}

// remap releases the current region, extends the file and maps size bytes
// again. When extending or mapping fails the previous region is mapped back,
// so the mapping only ends up empty if that fails as well.
func (m *mapping) remap(size int64) error {
	old := int64(len(m.data))
	if err := m.unmap(); err != nil {
		return err
	}
	err := truncateFile(m.file, size)
	if err == nil {
		if err = m.mapAt(size); err == nil {
			return nil
		}
	}
	if rerr := m.mapAt(old); rerr != nil {
		return errors.Join(err, fmt.Errorf("restoring %d byte mapping: %w", old, rerr))
	}
	return err
}

func (m *mapping) sync() error {
	if m.data == nil || !m.writable {
		return nil
	}
	return unix.Msync(m.data, unix.MS_SYNC)
}

func (m *mapping) unmap() error {
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	m.data = nil
	return err
}
