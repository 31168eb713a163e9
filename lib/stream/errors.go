package stream

import (
	"errors"
	"fmt"
	"io"
)

// --------------------------------------------------------------------------
// Error taxonomy
// --------------------------------------------------------------------------

// Every failure surfaced by a stream wraps exactly one of these sentinels, so
// callers can classify errors with errors.Is regardless of the backing store.
var (
	// ErrCapacity is returned when a read or write goes beyond the declared space
	ErrCapacity = errors.New("stream capacity exceeded")
	// ErrClosed is returned when a stream is used after Close
	ErrClosed = errors.New("stream is closed")
	// ErrUnsupported is returned for operations that are meaningless for a backing store
	ErrUnsupported = errors.New("operation not supported by stream")
	// ErrFraming is returned when a packet could not be framed from a connection
	ErrFraming = errors.New("packet framing error")
	// ErrFormat is returned when structured data read from a stream is malformed
	ErrFormat = errors.New("malformed stream data")
	// ErrConfig is returned for invalid construction parameters
	ErrConfig = errors.New("invalid stream configuration")
)

// capacityError reports a request of n bytes against the remaining space
func capacityError(n, space int64) error {
	return fmt.Errorf("%w: need %d bytes, %d remaining", ErrCapacity, n, space)
}

// IsEnd reports whether err marks the end of the readable data, either because a
// bounded stream ran out of space or because a sequential backing reached EOF.
func IsEnd(err error) bool {
	return errors.Is(err, ErrCapacity) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
