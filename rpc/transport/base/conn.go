package base

import (
	"bufio"
	"errors"
	"io"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

const (
	// DefaultBufferSize is the read buffer size of a Conn
	DefaultBufferSize = 64 * 1024
	// probeWindow is how long the fallback probe waits for bytes to arrive
	probeWindow = time.Millisecond
)

// Conn adapts a net.Conn for packet framing. All reads go through an internal
// buffer, so Available counts both buffered bytes and bytes still queued in
// the socket.
type Conn struct {
	net.Conn
	reader *bufio.Reader
	raw    syscall.RawConn
	closed atomic.Bool

	deadlineMu   sync.Mutex
	readDeadline time.Time
}

// NewConn wraps c with a read buffer of bufferSize bytes (DefaultBufferSize when <= 0)
func NewConn(c net.Conn, bufferSize int) *Conn {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	conn := &Conn{
		Conn:   c,
		reader: bufio.NewReaderSize(c, bufferSize),
	}
	if sc, ok := c.(syscall.Conn); ok {
		if raw, err := sc.SyscallConn(); err == nil {
			conn.raw = raw
		}
	}
	return conn
}

func (c *Conn) Read(p []byte) (int, error) {
	return c.reader.Read(p)
}

// Wait blocks until at least one byte can be read
func (c *Conn) Wait() error {
	_, err := c.reader.Peek(1)
	return err
}

// Available returns the number of bytes that can be read without blocking
func (c *Conn) Available() (int, error) {
	buffered := c.reader.Buffered()
	if c.closed.Load() {
		return buffered, nil
	}
	queued, err := c.pending()
	if err != nil {
		return buffered, err
	}
	return buffered + queued, nil
}

// Connected reports whether the peer still holds the connection open
func (c *Conn) Connected() bool {
	if c.closed.Load() {
		return false
	}
	return c.peerConnected()
}

func (c *Conn) SetDeadline(t time.Time) error {
	c.deadlineMu.Lock()
	c.readDeadline = t
	c.deadlineMu.Unlock()
	return c.Conn.SetDeadline(t)
}

func (c *Conn) SetReadDeadline(t time.Time) error {
	c.deadlineMu.Lock()
	c.readDeadline = t
	c.deadlineMu.Unlock()
	return c.Conn.SetReadDeadline(t)
}

func (c *Conn) Close() error {
	c.closed.Store(true)
	return c.Conn.Close()
}

// --------------------------------------------------------------------------
// Fallback probing
// --------------------------------------------------------------------------

// probe waits up to probeWindow for one byte beyond the buffered ones and
// restores the caller's read deadline afterwards. It returns io.EOF once the
// peer closed and everything it sent is buffered.
func (c *Conn) probe() error {
	want := c.reader.Buffered() + 1
	if want > c.reader.Size() {
		return nil
	}

	c.deadlineMu.Lock()
	restore := c.readDeadline
	c.deadlineMu.Unlock()

	window := time.Now().Add(probeWindow)
	if !restore.IsZero() && restore.Before(window) {
		window = restore
	}
	if err := c.Conn.SetReadDeadline(window); err != nil {
		return err
	}
	_, err := c.reader.Peek(want)
	if derr := c.Conn.SetReadDeadline(restore); err == nil || errors.Is(err, os.ErrDeadlineExceeded) {
		err = derr
	}
	return err
}

func (c *Conn) probePending() (int, error) {
	if err := c.probe(); err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	// the probe moved any received bytes into the buffer
	return 0, nil
}

func (c *Conn) probeConnected() bool {
	return c.probe() == nil
}
