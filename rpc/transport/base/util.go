package base

import (
	"errors"
	"io"
	"net"
	"time"
)

// isClosed reports whether err marks a connection or listener that was closed
// by either side
func isClosed(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
}

// setDeadline applies timeout to conn starting now, a zero timeout clears the deadline
func setDeadline(conn interface{ SetDeadline(time.Time) error }, timeout time.Duration) error {
	if timeout <= 0 {
		return conn.SetDeadline(time.Time{})
	}
	return conn.SetDeadline(time.Now().Add(timeout))
}
