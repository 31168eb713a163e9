package stream

import (
	"fmt"
	"io"
)

// Buffer is a readable and writable stream over one byte slice with a single
// position. Every read and every write advance the same cursor, so reading
// back written data requires MoveTo or Reset first.
type Buffer struct {
	Cursor
	inputCore
	outputCore
	data   []byte
	closed bool
}

// NewBuffer creates a buffer over a privately owned slice of size bytes
func NewBuffer(size int) (*Buffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrConfig, size)
	}
	return NewBufferOn(make([]byte, size)), nil
}

// NewBufferOn creates a buffer aliasing data
func NewBufferOn(data []byte) *Buffer {
	b := &Buffer{
		Cursor: boundedCursor(int64(len(data))),
		data:   data,
	}
	b.inputCore = inputCore{cur: &b.Cursor, fill: b.fill}
	b.outputCore = outputCore{cur: &b.Cursor, drain: b.drain}
	return b
}

func (b *Buffer) fill(p []byte) error {
	if b.closed {
		return ErrClosed
	}
	if err := b.require(int64(len(p))); err != nil {
		return err
	}
	b.advance(int64(copy(p, b.data[b.offset:])))
	return nil
}

func (b *Buffer) drain(p []byte) error {
	if b.closed {
		return ErrClosed
	}
	if err := b.require(int64(len(p))); err != nil {
		return err
	}
	b.advance(int64(copy(b.data[b.offset:], p)))
	return nil
}

// Read implements io.Reader
func (b *Buffer) Read(p []byte) (int, error) {
	if b.closed {
		return 0, ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	if b.IsEmpty() {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.offset:])
	b.advance(int64(n))
	return n, nil
}

// MoveTo places the single position at pos
func (b *Buffer) MoveTo(pos int64) error {
	if b.closed {
		return ErrClosed
	}
	if pos < 0 || pos > b.length {
		return fmt.Errorf("%w: position %d outside [0, %d]", ErrCapacity, pos, b.length)
	}
	b.advance(pos - b.offset)
	return nil
}

// Skip moves the position forward by n bytes without touching the data
func (b *Buffer) Skip(n int64) error {
	if b.closed {
		return ErrClosed
	}
	if n < 0 {
		return fmt.Errorf("%w: negative skip %d", ErrConfig, n)
	}
	if err := b.require(n); err != nil {
		return err
	}
	b.advance(n)
	return nil
}

func (b *Buffer) Reset() error {
	return b.MoveTo(0)
}

func (b *Buffer) Flush() error {
	if b.closed {
		return ErrClosed
	}
	return nil
}

// Bytes returns the whole backing slice
func (b *Buffer) Bytes() []byte {
	return b.data
}

func (b *Buffer) IsClosed() (bool, error) {
	return b.closed, nil
}

func (b *Buffer) Close() error {
	if b.closed {
		return ErrClosed
	}
	b.closed = true
	b.data = nil
	return nil
}
