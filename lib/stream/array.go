package stream

import (
	"fmt"
	"io"
)

// --------------------------------------------------------------------------
// Array-backed Input
// --------------------------------------------------------------------------

// ArrayInput reads from a fixed byte slice. The slice is either aliased
// (shared with the caller) or a private clone, depending on the constructor.
type ArrayInput struct {
	Cursor
	inputCore
	data   []byte
	closed bool
}

// NewArrayInput creates an input that aliases data without copying it
func NewArrayInput(data []byte) *ArrayInput {
	in := &ArrayInput{
		Cursor: boundedCursor(int64(len(data))),
		data:   data,
	}
	in.inputCore = inputCore{cur: &in.Cursor, fill: in.fill}
	return in
}

// NewArrayInputCopy creates an input over a private clone of data
func NewArrayInputCopy(data []byte) *ArrayInput {
	return NewArrayInput(append([]byte(nil), data...))
}

func (in *ArrayInput) fill(p []byte) error {
	if in.closed {
		return ErrClosed
	}
	if err := in.require(int64(len(p))); err != nil {
		return err
	}
	in.advance(int64(copy(p, in.data[in.offset:])))
	return nil
}

// Read implements io.Reader, returning io.EOF once the slice is consumed
func (in *ArrayInput) Read(p []byte) (int, error) {
	if in.closed {
		return 0, ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	if in.IsEmpty() {
		return 0, io.EOF
	}
	n := copy(p, in.data[in.offset:])
	in.advance(int64(n))
	return n, nil
}

// Skip advances the cursor by n bytes. It fails with ErrCapacity and leaves
// the cursor unchanged when fewer than n bytes remain.
func (in *ArrayInput) Skip(n int64) error {
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

func (in *ArrayInput) Reset() error {
	if in.closed {
		return ErrClosed
	}
	in.offset = 0
	return nil
}

// Bytes returns the unread part of the backing slice
func (in *ArrayInput) Bytes() []byte {
	if in.closed {
		return nil
	}
	return in.data[in.offset:]
}

func (in *ArrayInput) IsClosed() (bool, error) {
	return in.closed, nil
}

// Close drops the reference to the backing slice
func (in *ArrayInput) Close() error {
	if in.closed {
		return ErrClosed
	}
	in.closed = true
	in.data = nil
	return nil
}

// --------------------------------------------------------------------------
// Array-backed Output
// --------------------------------------------------------------------------

// ArrayOutput writes into a fixed byte slice
type ArrayOutput struct {
	Cursor
	outputCore
	data   []byte
	closed bool
}

// NewArrayOutput creates an output over a privately owned slice of size bytes
func NewArrayOutput(size int) (*ArrayOutput, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrConfig, size)
	}
	return NewArrayOutputOn(make([]byte, size)), nil
}

// NewArrayOutputOn creates an output writing directly into the caller's slice
func NewArrayOutputOn(data []byte) *ArrayOutput {
	out := &ArrayOutput{
		Cursor: boundedCursor(int64(len(data))),
		data:   data,
	}
	out.outputCore = outputCore{cur: &out.Cursor, drain: out.drain}
	return out
}

func (out *ArrayOutput) drain(p []byte) error {
	if out.closed {
		return ErrClosed
	}
	if err := out.require(int64(len(p))); err != nil {
		return err
	}
	out.advance(int64(copy(out.data[out.offset:], p)))
	return nil
}

// Skip writes n zero bytes
func (out *ArrayOutput) Skip(n int64) error {
	if out.closed {
		return ErrClosed
	}
	if n < 0 {
		return fmt.Errorf("%w: negative skip %d", ErrConfig, n)
	}
	if err := out.require(n); err != nil {
		return err
	}
	clear(out.data[out.offset : out.offset+n])
	out.advance(n)
	return nil
}

func (out *ArrayOutput) Reset() error {
	if out.closed {
		return ErrClosed
	}
	out.offset = 0
	return nil
}

// Flush is a no-op, writes land in the slice immediately
func (out *ArrayOutput) Flush() error {
	if out.closed {
		return ErrClosed
	}
	return nil
}

// Bytes returns the written part of the backing slice
func (out *ArrayOutput) Bytes() []byte {
	if out.closed {
		return nil
	}
	return out.data[:out.offset]
}

func (out *ArrayOutput) IsClosed() (bool, error) {
	return out.closed, nil
}

// Close drops the reference to the backing slice
func (out *ArrayOutput) Close() error {
	if out.closed {
		return ErrClosed
	}
	out.closed = true
	out.data = nil
	return nil
}
