package stream

import (
	"errors"
	"fmt"
	"io"
)

// CharInput reads bytes from a character stream, one character per byte: each
// decoded rune is narrowed to its low 8 bits. Offset and length are not
// tracked and always report 0.
type CharInput struct {
	Cursor
	inputCore
	r io.RuneReader
}

// NewCharInput creates an input over r
func NewCharInput(r io.RuneReader) *CharInput {
	in := &CharInput{r: r}
	in.inputCore = inputCore{cur: &in.Cursor, fill: in.fill}
	return in
}

func (in *CharInput) fill(p []byte) error {
	for i := range p {
		ch, _, err := in.r.ReadRune()
		if err != nil {
			if i > 0 && errors.Is(err, io.EOF) {
				return fmt.Errorf("char input: got %d of %d bytes: %w", i, len(p), io.ErrUnexpectedEOF)
			}
			return err
		}
		p[i] = byte(ch)
	}
	return nil
}

// Read implements io.Reader
func (in *CharInput) Read(p []byte) (int, error) {
	for i := range p {
		ch, _, err := in.r.ReadRune()
		if err != nil {
			if i > 0 && errors.Is(err, io.EOF) {
				return i, nil
			}
			return i, err
		}
		p[i] = byte(ch)
	}
	return len(p), nil
}

// Skip reads and drops n characters
func (in *CharInput) Skip(n int64) error {
	if n < 0 {
		return fmt.Errorf("%w: negative skip %d", ErrConfig, n)
	}
	for ; n > 0; n-- {
		if _, _, err := in.r.ReadRune(); err != nil {
			return err
		}
	}
	return nil
}

func (in *CharInput) Reset() error {
	return fmt.Errorf("char input reset: %w", ErrUnsupported)
}

func (in *CharInput) IsClosed() (bool, error) {
	return false, fmt.Errorf("char input closed state: %w", ErrUnsupported)
}

// Close closes the backing reader if it is an io.Closer
func (in *CharInput) Close() error {
	if c, ok := in.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// CharOutput writes each byte as one character to a character sink. Offset
// and length are not tracked and always report 0.
type CharOutput struct {
	Cursor
	outputCore
	w RuneWriter
}

// NewCharOutput creates an output over w
func NewCharOutput(w RuneWriter) *CharOutput {
	out := &CharOutput{w: w}
	out.outputCore = outputCore{cur: &out.Cursor, drain: out.drain}
	return out
}

func (out *CharOutput) drain(p []byte) error {
	for _, b := range p {
		if _, err := out.w.WriteRune(rune(b)); err != nil {
			return err
		}
	}
	return nil
}

// Skip writes n zero characters
func (out *CharOutput) Skip(n int64) error {
	if n < 0 {
		return fmt.Errorf("%w: negative skip %d", ErrConfig, n)
	}
	for ; n > 0; n-- {
		if _, err := out.w.WriteRune(0); err != nil {
			return err
		}
	}
	return nil
}

func (out *CharOutput) Reset() error {
	return fmt.Errorf("char output reset: %w", ErrUnsupported)
}

// Flush flushes the sink if it buffers
func (out *CharOutput) Flush() error {
	if f, ok := out.w.(flusher); ok {
		return f.Flush()
	}
	return nil
}

func (out *CharOutput) IsClosed() (bool, error) {
	return false, fmt.Errorf("char output closed state: %w", ErrUnsupported)
}

// Close flushes and closes the sink if it is an io.Closer
func (out *CharOutput) Close() error {
	err := out.Flush()
	if c, ok := out.w.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
