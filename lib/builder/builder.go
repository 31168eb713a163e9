// Package builder is the construction facade of the stream library. A Source
// describes where bytes come from or go to; the intent functions (Input,
// Output, Buffer, the packet and option constructors) pick the matching
// backing implementation for it.
//
// Dispatch:
//
//	Source          Input            Output           Buffer
//	FromPath        mapped file      mapped file      -
//	FromFile        mapped file      mapped file      -
//	FromBytes       array            array            buffer
//	InMemory        -                array            buffer
//	FromReader      live stream      -                -
//	FromWriter      -                live stream      -
//	FromConn        live stream      live stream      -
//	FromRunes       char stream      -                -
//	ToRunes         -                char stream      -
//
// Packets require FromConn. Unsupported combinations fail with
// stream.ErrUnsupported.
package builder

import (
	"fmt"
	"github.com/Driw/streamio/lib/options"
	"github.com/Driw/streamio/lib/packet"
	"github.com/Driw/streamio/lib/stream"
	"io"
	"os"
)

type kind int

const (
	kindNone kind = iota
	kindPath
	kindFile
	kindBytes
	kindMemory
	kindReader
	kindWriter
	kindConn
	kindRuneReader
	kindRuneWriter
)

// Source describes a backing store and the options used to open it. The With
// methods return modified copies.
type Source struct {
	kind       kind
	path       string
	file       *os.File
	data       []byte
	reader     io.Reader
	writer     io.Writer
	conn       packet.Connection
	runeReader io.RuneReader
	runeWriter stream.RuneWriter

	name      string
	limit     int64
	size      int64
	increment int64
	copy      bool
	invert    bool
}

// --------------------------------------------------------------------------
// Sources
// --------------------------------------------------------------------------

// FromPath opens the file at path through a memory mapping
func FromPath(path string) Source {
	return Source{kind: kindPath, path: path, name: path}
}

// FromFile maps an already opened file. The stream takes ownership of it.
func FromFile(file *os.File) Source {
	return Source{kind: kindFile, file: file, name: file.Name()}
}

// FromBytes uses data as the backing array. Inputs alias data unless WithCopy is set.
func FromBytes(data []byte) Source {
	return Source{kind: kindBytes, data: data}
}

// InMemory allocates a new backing array of size bytes
func InMemory(size int64) Source {
	return Source{kind: kindMemory, size: size}
}

// FromReader reads sequentially from r
func FromReader(r io.Reader) Source {
	return Source{kind: kindReader, reader: r}
}

// FromWriter writes sequentially to w
func FromWriter(w io.Writer) Source {
	return Source{kind: kindWriter, writer: w}
}

// FromConn uses a duplex connection, for live streams and packets
func FromConn(conn packet.Connection) Source {
	return Source{kind: kindConn, conn: conn}
}

// FromRunes reads one byte per character from r
func FromRunes(r io.RuneReader) Source {
	return Source{kind: kindRuneReader, runeReader: r}
}

// ToRunes writes one character per byte to w
func ToRunes(w stream.RuneWriter) Source {
	return Source{kind: kindRuneWriter, runeWriter: w}
}

// WithName labels the resulting stream
func (s Source) WithName(name string) Source {
	s.name = name
	return s
}

// WithLimit caps the bytes a live stream may transfer
func (s Source) WithLimit(limit int64) Source {
	s.limit = limit
	return s
}

// WithSize sets the initial mapping size of a mapped output
func (s Source) WithSize(size int64) Source {
	s.size = size
	return s
}

// WithIncrement sets the grow step of a mapped output
func (s Source) WithIncrement(increment int64) Source {
	s.increment = increment
	return s
}

// WithCopy makes array backings work on a private copy of the bytes
func (s Source) WithCopy() Source {
	s.copy = true
	return s
}

// WithInvert selects the reversed byte order for multi-byte primitives
func (s Source) WithInvert(invert bool) Source {
	s.invert = invert
	return s
}

func (s Source) String() string {
	switch s.kind {
	case kindPath:
		return "path " + s.path
	case kindFile:
		return "file " + s.file.Name()
	case kindBytes:
		return fmt.Sprintf("bytes[%d]", len(s.data))
	case kindMemory:
		return fmt.Sprintf("memory[%d]", s.size)
	case kindReader:
		return "reader"
	case kindWriter:
		return "writer"
	case kindConn:
		return "connection"
	case kindRuneReader:
		return "rune reader"
	case kindRuneWriter:
		return "rune writer"
	default:
		return "empty source"
	}
}

func (s Source) unsupported(intent string) error {
	return fmt.Errorf("%w: cannot open %s from %s", stream.ErrUnsupported, intent, s)
}

func (s Source) bytes() []byte {
	if s.copy {
		return append([]byte(nil), s.data...)
	}
	return s.data
}

// --------------------------------------------------------------------------
// Intents
// --------------------------------------------------------------------------

// Input opens a readable stream over the source
func Input(s Source) (stream.Input, error) {
	var in stream.Input
	switch s.kind {
	case kindPath:
		m, err := stream.OpenMappedInput(s.path)
		if err != nil {
			return nil, err
		}
		in = m
	case kindFile:
		m, err := stream.NewMappedInput(s.file, false)
		if err != nil {
			return nil, err
		}
		in = m
	case kindBytes:
		in = stream.NewArrayInput(s.bytes())
	case kindReader:
		in = stream.NewLiveInput(s.reader, s.limit)
	case kindConn:
		in = stream.NewLiveInput(s.conn, s.limit)
	case kindRuneReader:
		in = stream.NewCharInput(s.runeReader)
	default:
		return nil, s.unsupported("input")
	}
	in.SetInvert(s.invert)
	if s.name != "" {
		return stream.NameInput(in, s.name), nil
	}
	return in, nil
}

// Output opens a writable stream over the source
func Output(s Source) (stream.Output, error) {
	var out stream.Output
	switch s.kind {
	case kindPath:
		m, err := stream.CreateMappedOutput(s.path, s.size, s.increment)
		if err != nil {
			return nil, err
		}
		out = m
	case kindFile:
		m, err := stream.NewMappedOutput(s.file, s.size, s.increment)
		if err != nil {
			return nil, err
		}
		out = m
	case kindBytes:
		out = stream.NewArrayOutputOn(s.data)
	case kindMemory:
		a, err := stream.NewArrayOutput(int(s.size))
		if err != nil {
			return nil, err
		}
		out = a
	case kindWriter:
		out = stream.NewLiveOutput(s.writer, s.limit)
	case kindConn:
		out = stream.NewLiveOutput(s.conn, s.limit)
	case kindRuneWriter:
		out = stream.NewCharOutput(s.runeWriter)
	default:
		return nil, s.unsupported("output")
	}
	out.SetInvert(s.invert)
	if s.name != "" {
		return stream.NameOutput(out, s.name), nil
	}
	return out, nil
}

// Buffer opens a read-write buffer over an array source
func Buffer(s Source) (*stream.Buffer, error) {
	var buf *stream.Buffer
	switch s.kind {
	case kindBytes:
		buf = stream.NewBufferOn(s.bytes())
	case kindMemory:
		b, err := stream.NewBuffer(int(s.size))
		if err != nil {
			return nil, err
		}
		buf = b
	default:
		return nil, s.unsupported("buffer")
	}
	buf.SetInvert(s.invert)
	return buf, nil
}

// OptionReader opens an option reader over Input(s)
func OptionReader(s Source) (*options.Reader, error) {
	in, err := Input(s)
	if err != nil {
		return nil, err
	}
	return options.NewReader(in), nil
}

// OptionWriter opens an option writer over Output(s)
func OptionWriter(s Source) (*options.Writer, error) {
	out, err := Output(s)
	if err != nil {
		return nil, err
	}
	return options.NewWriter(out), nil
}

// --------------------------------------------------------------------------
// Packets
// --------------------------------------------------------------------------

// DynamicInputPacket waits for the next bytes on a connection source
func DynamicInputPacket(s Source) (stream.Input, error) {
	if s.kind != kindConn {
		return nil, s.unsupported("input packet")
	}
	in, err := packet.NewDynamicInput(s.conn, s.name)
	if err != nil {
		return nil, err
	}
	in.SetInvert(s.invert)
	return in, nil
}

// StaticInputPacket reads exactly length bytes (or packet.AnyLength) from a connection source
func StaticInputPacket(s Source, length int) (stream.Input, error) {
	if s.kind != kindConn {
		return nil, s.unsupported("input packet")
	}
	in, err := packet.NewStaticInput(s.conn, s.name, length)
	if err != nil {
		return nil, err
	}
	in.SetInvert(s.invert)
	return in, nil
}

// DynamicOutputPacket writes straight through to a connection source
func DynamicOutputPacket(s Source) (stream.Output, error) {
	if s.kind != kindConn {
		return nil, s.unsupported("output packet")
	}
	out := packet.NewDynamicOutput(s.conn, s.name)
	out.SetInvert(s.invert)
	return out, nil
}

// StaticOutputPacket buffers length bytes for a connection source
func StaticOutputPacket(s Source, length int) (stream.Output, error) {
	if s.kind != kindConn {
		return nil, s.unsupported("output packet")
	}
	out, err := packet.NewStaticOutput(s.conn, s.name, length)
	if err != nil {
		return nil, err
	}
	out.SetInvert(s.invert)
	return out, nil
}
