package stream

import (
	"fmt"
	"github.com/lni/dragonboat/v4/logger"
	"io"
	"os"
)

var Logger = logger.GetLogger("stream")

const (
	// DefaultMappedSize is the initial mapping size of a mapped output when none is given
	DefaultMappedSize int64 = 4096
	// DefaultGrowIncrement is the step by which a mapped output grows on overflow
	DefaultGrowIncrement int64 = 4096
)

// --------------------------------------------------------------------------
// Mapped-file Input
// --------------------------------------------------------------------------

// MappedInput reads a file through a memory mapping of its full size
type MappedInput struct {
	Cursor
	inputCore
	file   *os.File
	region *mapping
	closed bool
}

// OpenMappedInput opens path read-only and maps it
func OpenMappedInput(path string) (*MappedInput, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	in, err := NewMappedInput(file, false)
	if err != nil {
		file.Close()
		return nil, err
	}
	return in, nil
}

// NewMappedInput maps an already opened file. The input takes ownership of
// the handle and closes it on Close. writable must match the file's open mode.
func NewMappedInput(file *os.File, writable bool) (*MappedInput, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stating %s: %w", file.Name(), err)
	}
	region, err := mapFile(file, info.Size(), writable)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", file.Name(), err)
	}
	in := &MappedInput{
		Cursor: boundedCursor(info.Size()),
		file:   file,
		region: region,
	}
	in.inputCore = inputCore{cur: &in.Cursor, fill: in.fill}
	return in, nil
}

func (in *MappedInput) fill(p []byte) error {
	if in.closed {
		return ErrClosed
	}
	if err := in.require(int64(len(p))); err != nil {
		return err
	}
	in.advance(int64(copy(p, in.region.data[in.offset:])))
	return nil
}

// Read implements io.Reader
func (in *MappedInput) Read(p []byte) (int, error) {
	if in.closed {
		return 0, ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	if in.IsEmpty() {
		return 0, io.EOF
	}
	n := copy(p, in.region.data[in.offset:])
	in.advance(int64(n))
	return n, nil
}

func (in *MappedInput) Skip(n int64) error {
	if in.closed {
		return ErrClosed
	}
	if n < 0 {
		return fmt.Errorf("%w: negative skip %d", ErrConfig, n)
	}
	if err := in.require(n); err != nil {
		return err
	}
	in.advance(n)
	return nil
}

func (in *MappedInput) Reset() error {
	if in.closed {
		return ErrClosed
	}
	in.offset = 0
	return nil
}

func (in *MappedInput) IsClosed() (bool, error) {
	return in.closed, nil
}

// Close unmaps the region and closes the file
func (in *MappedInput) Close() error {
	if in.closed {
		return ErrClosed
	}
	in.closed = true
	err := in.region.unmap()
	if cerr := in.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// --------------------------------------------------------------------------
// Mapped-file Output
// --------------------------------------------------------------------------

// MappedOutput writes a file through a memory mapping. When a write does not
// fit the mapped size, the mapping is released, the file is extended and
// mapped again, and the write continues at the same offset. On platforms
// without a mapping primitive the output has a fixed size and overflows fail
// with ErrCapacity.
//
// Close truncates the file to the highest offset written.
type MappedOutput struct {
	Cursor
	outputCore
	file      *os.File
	region    *mapping
	increment int64
	written   int64
	grows     int
	closed    bool
	// broken is set once a failed grow lost the mapping
	broken error
}

// CreateMappedOutput creates (or truncates) path and maps size bytes of it
func CreateMappedOutput(path string, size, increment int64) (*MappedOutput, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	out, err := NewMappedOutput(file, size, increment)
	if err != nil {
		file.Close()
		return nil, err
	}
	return out, nil
}

// NewMappedOutput maps an already opened read-write file. The file is
// extended to size bytes when shorter; writing starts at offset 0. A size or
// increment <= 0 selects the defaults.
func NewMappedOutput(file *os.File, size, increment int64) (*MappedOutput, error) {
	if size <= 0 {
		size = DefaultMappedSize
	}
	if increment <= 0 {
		increment = DefaultGrowIncrement
	}
	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stating %s: %w", file.Name(), err)
	}
	if info.Size() < size {
		if err := file.Truncate(size); err != nil {
			return nil, fmt.Errorf("extending %s to %d bytes: %w", file.Name(), size, err)
		}
	}
	region, err := mapFile(file, size, true)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", file.Name(), err)
	}
	out := &MappedOutput{
		Cursor:    boundedCursor(size),
		file:      file,
		region:    region,
		increment: increment,
	}
	out.outputCore = outputCore{cur: &out.Cursor, drain: out.drain}
	return out, nil
}

func (out *MappedOutput) drain(p []byte) error {
	if out.closed {
		return ErrClosed
	}
	if out.broken != nil {
		return out.broken
	}
	if need := int64(len(p)); need > out.Space() {
		if err := out.grow(need - out.Space()); err != nil {
			return err
		}
	}
	out.advance(int64(copy(out.region.data[out.offset:], p)))
	out.written = max(out.written, out.offset)
	return nil
}

// grow extends the mapping by enough increments to cover deficit bytes. It is a
// single remap: the cursor is saved, the region is mapped again at the new
// length and the cursor is restored before the pending write continues.
func (out *MappedOutput) grow(deficit int64) error {
	if !growSupported {
		return capacityError(deficit+out.Space(), out.Space())
	}
	steps := (deficit + out.increment - 1) / out.increment
	size := out.length + steps*out.increment
	pos := out.offset
	if err := out.region.remap(size); err != nil {
		err = fmt.Errorf("growing %s to %d bytes: %w", out.file.Name(), size, err)
		if int64(len(out.region.data)) < out.length {
			out.broken = err
		}
		return err
	}
	out.length = size
	out.offset = pos
	out.grows++
	Logger.Debugf("grew mapping of %s to %d bytes at offset %d", out.file.Name(), size, pos)
	return nil
}

// Grows returns the number of times the mapping was grown
func (out *MappedOutput) Grows() int {
	return out.grows
}

// Skip writes n zero bytes, growing the mapping if needed
func (out *MappedOutput) Skip(n int64) error {
	if n < 0 {
		return fmt.Errorf("%w: negative skip %d", ErrConfig, n)
	}
	return out.drain(make([]byte, n))
}

// Reset moves the cursor back to offset 0. Bytes already written stay in place.
func (out *MappedOutput) Reset() error {
	if out.closed {
		return ErrClosed
	}
	out.offset = 0
	return nil
}

// Flush synchronises the mapped pages with the file
func (out *MappedOutput) Flush() error {
	if out.closed {
		return ErrClosed
	}
	return out.region.sync()
}

func (out *MappedOutput) IsClosed() (bool, error) {
	return out.closed, nil
}

// Close flushes and unmaps the region, truncates the file to the bytes written
// and closes it
func (out *MappedOutput) Close() error {
	if out.closed {
		return ErrClosed
	}
	err := out.region.sync()
	out.closed = true
	if uerr := out.region.unmap(); err == nil {
		err = uerr
	}
	if terr := out.file.Truncate(out.written); err == nil {
		err = terr
	}
	if cerr := out.file.Close(); err == nil {
		err = cerr
	}
	return err
}
