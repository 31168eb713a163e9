//go:build linux || darwin

package base

import (
	"bufio"
	"errors"
	"golang.org/x/sys/unix"
)

// pending returns the bytes queued in the socket receive buffer
func (c *Conn) pending() (int, error) {
	if c.raw == nil {
		return c.probePending()
	}
	var n int
	var ioctlErr error
	if err := c.raw.Control(func(fd uintptr) {
		n, ioctlErr = unix.IoctlGetInt(int(fd), ioctlInq)
	}); err != nil {
		return 0, err
	}
	return n, ioctlErr
}

// peerConnected peeks at the socket without blocking. A zero byte result
// means the peer shut the connection down. A shutdown is only visible once
// the data queued before it is read, so queued bytes are first moved into the
// read buffer.
func (c *Conn) peerConnected() bool {
	if c.raw == nil {
		return c.probeConnected()
	}
	if queued, err := c.pending(); err == nil && queued > 0 {
		want := min(c.reader.Buffered()+queued, c.reader.Size())
		if _, err := c.reader.Peek(want); err != nil && !errors.Is(err, bufio.ErrBufferFull) {
			return false
		}
	}
	connected := true
	if err := c.raw.Control(func(fd uintptr) {
		var b [1]byte
		n, _, err := unix.Recvfrom(int(fd), b[:], unix.MSG_PEEK|unix.MSG_DONTWAIT)
		switch {
		case n > 0:
		case err == nil:
			connected = false
		case err == unix.EAGAIN || err == unix.EWOULDBLOCK || err == unix.EINTR:
		default:
			connected = false
		}
	}); err != nil {
		return false
	}
	return connected
}
