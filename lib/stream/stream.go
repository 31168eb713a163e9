package stream

import (
	"io"
)

// --------------------------------------------------------------------------
// Capability contracts
// --------------------------------------------------------------------------

// Stream holds the cursor and lifecycle operations shared by Input and Output
type Stream interface {
	// Offset returns the bytes consumed (Input) or produced (Output) so far
	Offset() int64
	// Length returns the declared capacity, 0 when the stream is unbounded
	Length() int64
	// Space returns Length() - Offset(), -1 when the stream is unbounded
	Space() int64
	// IsEmpty reports whether Space() == 0
	IsEmpty() bool
	// Inverted reports whether multi-byte primitives are in reversed byte order
	Inverted() bool
	// SetInvert switches the byte order of multi-byte primitives
	SetInvert(invert bool)
	// Skip discards n bytes (Input) or emits n zero bytes (Output)
	Skip(n int64) error
	// Reset moves the cursor back to the start of the stream
	Reset() error
	// IsClosed reports whether Close has been called. Backings that do not
	// track their closed state return ErrUnsupported.
	IsClosed() (bool, error)
	// Close releases the backing resource
	Close() error
}

// Input is a readable byte stream. All multi-byte primitives honour the invert flag.
type Input interface {
	Stream
	io.Reader

	GetByte() (byte, error)
	GetBool() (bool, error)
	// GetChar reads one 16-bit code unit
	GetChar() (rune, error)
	GetShort() (int16, error)
	GetInt() (int32, error)
	GetLong() (int64, error)
	GetFloat() (float32, error)
	GetDouble() (float64, error)
	// GetString reads a string prefixed with a 1-byte length
	GetString() (string, error)
	// GetFixedString reads n bytes and trims trailing zero padding
	GetFixedString(n int) (string, error)

	GetBytes(n int) ([]byte, error)
	GetChars(n int) ([]rune, error)
	GetShorts(n int) ([]int16, error)
	GetInts(n int) ([]int32, error)
	GetLongs(n int) ([]int64, error)
	GetFloats(n int) ([]float32, error)
	GetDoubles(n int) ([]float64, error)
	GetStrings(n int) ([]string, error)

	// GetLine reads up to the next '\n', dropping the line break and a trailing '\r'
	GetLine() (string, error)
	// ScanFor consumes bytes up to and including seq and returns the bytes before it
	ScanFor(seq []byte) ([]byte, error)
}

// Output is a writable byte stream. All multi-byte primitives honour the invert flag.
type Output interface {
	Stream
	io.Writer

	PutByte(v byte) error
	PutBool(v bool) error
	// PutChar writes v as one 16-bit code unit
	PutChar(v rune) error
	PutShort(v int16) error
	PutInt(v int32) error
	PutLong(v int64) error
	PutFloat(v float32) error
	PutDouble(v float64) error
	// PutString writes v prefixed with a 1-byte length
	PutString(v string) error
	// PutFixedString writes exactly n bytes, truncating or zero-padding v
	PutFixedString(v string, n int) error

	PutBytes(v []byte) error
	PutChars(v []rune) error
	PutShorts(v []int16) error
	PutInts(v []int32) error
	PutLongs(v []int64) error
	PutFloats(v []float32) error
	PutDoubles(v []float64) error
	PutStrings(v []string) error

	// PutLine writes s followed by a line break
	PutLine(s string) error
	// PutBreakLine writes a single line break
	PutBreakLine() error
	// Flush pushes buffered bytes to the backing store
	Flush() error
}

// RuneWriter is the character sink used by CharOutput (bufio.Writer,
// strings.Builder and bytes.Buffer all satisfy it)
type RuneWriter interface {
	WriteRune(r rune) (int, error)
}

type flusher interface {
	Flush() error
}

var (
	_ Input  = (*ArrayInput)(nil)
	_ Input  = (*MappedInput)(nil)
	_ Input  = (*LiveInput)(nil)
	_ Input  = (*CharInput)(nil)
	_ Input  = (*Buffer)(nil)
	_ Input  = (*NamedInput)(nil)
	_ Output = (*ArrayOutput)(nil)
	_ Output = (*MappedOutput)(nil)
	_ Output = (*LiveOutput)(nil)
	_ Output = (*CharOutput)(nil)
	_ Output = (*Buffer)(nil)
	_ Output = (*NamedOutput)(nil)
)
