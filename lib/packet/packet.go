// Package packet frames single messages exchanged over a duplex connection as
// ephemeral streams.
//
// Framing Modes:
//   - Dynamic input: waits until the peer has sent something and wraps exactly
//     the bytes available at that moment. There is no length header, so both
//     peers must agree on message boundaries some other way.
//   - Static input: waits for an agreed number of bytes and reads exactly that
//     many.
//   - Dynamic output: every put is written to the connection immediately.
//   - Static output: writes accumulate in a fixed buffer and each Flush sends
//     the bytes written since the previous Flush.
//
// Waiting is a busy poll on Connection.Available with no timeout. It only ends
// early when the connection reports that it is no longer connected, so a
// silent peer that keeps the connection open blocks the caller indefinitely.
package packet

import (
	"fmt"
	"github.com/Driw/streamio/lib/stream"
	"github.com/lni/dragonboat/v4/logger"
	"io"
	"runtime"
)

var Logger = logger.GetLogger("packet")

const (
	// DefaultStaticSize is the buffer size of a static output packet created with length 0
	DefaultStaticSize = 512
	// AnyLength requests whatever is available from a static input packet
	AnyLength = -1
)

// Connection is the duplex connection a packet is framed on
type Connection interface {
	io.Reader
	io.Writer
	// Available returns the number of bytes that can be read without blocking
	Available() (int, error)
	// Connected reports whether the peer is still connected
	Connected() bool
}

// await polls conn until at least want bytes are available or the connection
// drops, and returns the bytes available at that point
func await(conn Connection, want int) (int, error) {
	for {
		n, err := conn.Available()
		if err != nil {
			return 0, err
		}
		if n >= want {
			return n, nil
		}
		if !conn.Connected() {
			// bytes may have arrived just before the disconnect
			return conn.Available()
		}
		runtime.Gosched()
	}
}

// readExactly reads length bytes from conn into a new input
func readExactly(conn Connection, name string, length int) (*stream.NamedInput, error) {
	buf := make([]byte, length)
	n, err := io.ReadFull(conn, buf)
	if n != length {
		return nil, fmt.Errorf("%w: packet %s: short read of %d of %d bytes: %v", stream.ErrFraming, name, n, length, err)
	}
	return stream.NameInput(stream.NewArrayInput(buf), name), nil
}

// --------------------------------------------------------------------------
// Input packets
// --------------------------------------------------------------------------

// NewDynamicInput waits until bytes are available and returns an input over
// all of them. It fails with stream.ErrFraming if the connection closes
// before anything arrives.
func NewDynamicInput(conn Connection, name string) (*stream.NamedInput, error) {
	n, err := await(conn, 1)
	if err != nil {
		return nil, fmt.Errorf("packet %s: %w", name, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: packet %s: connection closed unexpectedly", stream.ErrFraming, name)
	}
	Logger.Debugf("dynamic input packet %s: %d bytes", name, n)
	return readExactly(conn, name, n)
}

// NewStaticInput waits until length bytes are available and reads exactly
// that many. AnyLength reads whatever is available once at least one byte
// arrived. A connection that closes early fails with stream.ErrFraming.
func NewStaticInput(conn Connection, name string, length int) (*stream.NamedInput, error) {
	if length < AnyLength {
		return nil, fmt.Errorf("%w: packet %s: negative length %d", stream.ErrConfig, name, length)
	}
	want := length
	if length == AnyLength {
		want = 1
	}
	n, err := await(conn, want)
	if err != nil {
		return nil, fmt.Errorf("packet %s: %w", name, err)
	}
	if length == AnyLength {
		if n == 0 {
			return nil, fmt.Errorf("%w: packet %s: connection closed unexpectedly", stream.ErrFraming, name)
		}
		length = n
	}
	Logger.Debugf("static input packet %s: %d bytes", name, length)
	return readExactly(conn, name, length)
}

// --------------------------------------------------------------------------
// Output packets
// --------------------------------------------------------------------------

// NewDynamicOutput returns an output writing straight to conn
func NewDynamicOutput(conn Connection, name string) *stream.NamedOutput {
	return stream.NameOutput(stream.NewLiveOutput(conn, 0), name)
}

var _ stream.Output = (*StaticOutput)(nil)

// StaticOutput buffers a packet of fixed size. Flush sends the bytes written
// since the previous Flush, Close flushes the rest.
type StaticOutput struct {
	*stream.ArrayOutput
	conn    Connection
	flushed int64
}

// NewStaticOutput creates an output packet with a buffer of length bytes, or
// DefaultStaticSize bytes when length is 0
func NewStaticOutput(conn Connection, name string, length int) (*stream.NamedOutput, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: packet %s: negative length %d", stream.ErrConfig, name, length)
	}
	if length == 0 {
		length = DefaultStaticSize
	}
	buf, err := stream.NewArrayOutput(length)
	if err != nil {
		return nil, err
	}
	Logger.Debugf("static output packet %s: %d bytes", name, length)
	return stream.NameOutput(&StaticOutput{ArrayOutput: buf, conn: conn}, name), nil
}

// Flush writes the bytes between the previous flush and the current offset
func (p *StaticOutput) Flush() error {
	if closed, _ := p.IsClosed(); closed {
		return stream.ErrClosed
	}
	pending := p.Bytes()[p.flushed:]
	if len(pending) == 0 {
		return nil
	}
	n, err := p.conn.Write(pending)
	p.flushed += int64(n)
	return err
}

// Reset rewinds the buffer. Bytes already flushed are not sent again.
func (p *StaticOutput) Reset() error {
	if err := p.ArrayOutput.Reset(); err != nil {
		return err
	}
	p.flushed = 0
	return nil
}

// Close flushes pending bytes and releases the buffer
func (p *StaticOutput) Close() error {
	err := p.Flush()
	if cerr := p.ArrayOutput.Close(); err == nil {
		err = cerr
	}
	return err
}
