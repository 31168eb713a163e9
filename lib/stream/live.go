package stream

import (
	"errors"
	"fmt"
	"io"
)

// zeroChunk is the write size used when skipping on a live output
const zeroChunk = 4096

// --------------------------------------------------------------------------
// Live-stream Input
// --------------------------------------------------------------------------

// LiveInput reads sequentially from an external reader such as a connection
// or an open file. The offset counts bytes transferred. There is no rewind,
// and the closed state of the backing reader is not tracked.
type LiveInput struct {
	Cursor
	inputCore
	r io.Reader
}

// NewLiveInput creates an input over r. A limit > 0 caps the number of bytes
// that may be read; reads past the cap fail with ErrCapacity.
func NewLiveInput(r io.Reader, limit int64) *LiveInput {
	in := &LiveInput{
		Cursor: limitCursor(limit),
		r:      r,
	}
	in.inputCore = inputCore{cur: &in.Cursor, fill: in.fill}
	return in
}

// fill reads exactly len(p) bytes. When the reader ends early the bytes already
// received are consumed and counted.
func (in *LiveInput) fill(p []byte) error {
	if err := in.require(int64(len(p))); err != nil {
		return err
	}
	n, err := io.ReadFull(in.r, p)
	in.advance(int64(n))
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("live input: got %d of %d bytes: %w", n, len(p), err)
		}
		return err
	}
	return nil
}

// Read implements io.Reader, never reading past the length cap
func (in *LiveInput) Read(p []byte) (int, error) {
	if in.bounded {
		if in.IsEmpty() && len(p) > 0 {
			return 0, io.EOF
		}
		if space := in.Space(); int64(len(p)) > space {
			p = p[:space]
		}
	}
	n, err := in.r.Read(p)
	in.advance(int64(n))
	return n, err
}

// Skip reads and drops n bytes
func (in *LiveInput) Skip(n int64) error {
	if n < 0 {
		return fmt.Errorf("%w: negative skip %d", ErrConfig, n)
	}
	if err := in.require(n); err != nil {
		return err
	}
	copied, err := io.CopyN(io.Discard, in.r, n)
	in.advance(copied)
	if err != nil {
		return fmt.Errorf("live input: skipped %d of %d bytes: %w", copied, n, err)
	}
	return nil
}

func (in *LiveInput) Reset() error {
	return fmt.Errorf("live input reset: %w", ErrUnsupported)
}

func (in *LiveInput) IsClosed() (bool, error) {
	return false, fmt.Errorf("live input closed state: %w", ErrUnsupported)
}

// Close closes the backing reader if it is an io.Closer
func (in *LiveInput) Close() error {
	if c, ok := in.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// --------------------------------------------------------------------------
// Live-stream Output
// --------------------------------------------------------------------------

// LiveOutput writes sequentially to an external writer. Every put is handed
// to the writer immediately.
type LiveOutput struct {
	Cursor
	outputCore
	w io.Writer
}

// NewLiveOutput creates an output over w. A limit > 0 caps the number of bytes
// that may be written.
func NewLiveOutput(w io.Writer, limit int64) *LiveOutput {
	out := &LiveOutput{
		Cursor: limitCursor(limit),
		w:      w,
	}
	out.outputCore = outputCore{cur: &out.Cursor, drain: out.drain}
	return out
}

func (out *LiveOutput) drain(p []byte) error {
	_, err := out.Write(p)
	return err
}

// Write implements io.Writer and reports partial writes
func (out *LiveOutput) Write(p []byte) (int, error) {
	if err := out.require(int64(len(p))); err != nil {
		return 0, err
	}
	n, err := out.w.Write(p)
	out.advance(int64(n))
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}

// Skip writes n zero bytes
func (out *LiveOutput) Skip(n int64) error {
	if n < 0 {
		return fmt.Errorf("%w: negative skip %d", ErrConfig, n)
	}
	if err := out.require(n); err != nil {
		return err
	}
	zeros := make([]byte, min(n, zeroChunk))
	for n > 0 {
		chunk := zeros[:min(n, int64(len(zeros)))]
		if _, err := out.Write(chunk); err != nil {
			return err
		}
		n -= int64(len(chunk))
	}
	return nil
}

func (out *LiveOutput) Reset() error {
	return fmt.Errorf("live output reset: %w", ErrUnsupported)
}

// Flush flushes the writer if it buffers
func (out *LiveOutput) Flush() error {
	if f, ok := out.w.(flusher); ok {
		return f.Flush()
	}
	return nil
}

func (out *LiveOutput) IsClosed() (bool, error) {
	return false, fmt.Errorf("live output closed state: %w", ErrUnsupported)
}

// Close flushes and closes the backing writer if it is an io.Closer
func (out *LiveOutput) Close() error {
	err := out.Flush()
	if c, ok := out.w.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
