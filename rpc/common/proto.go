package common

import (
	"fmt"
	"github.com/Driw/streamio/lib/builder"
	"github.com/Driw/streamio/lib/stream"
)

// --------------------------------------------------------------------------
// Message Header
// --------------------------------------------------------------------------

// MessageType identifies the payload following a header
type MessageType byte

const (
	// MsgTEcho carries option records the server answers with the same records
	MsgTEcho MessageType = iota + 1
	// MsgTStats requests the server counters, answered as option records
	MsgTStats
	// MsgTError answers a failed request with a single "error" string record
	MsgTError
)

func (t MessageType) String() string {
	switch t {
	case MsgTEcho:
		return "echo"
	case MsgTStats:
		return "stats"
	case MsgTError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", byte(t))
	}
}

// HeaderSize is the encoded size of a Header: 1 type byte and a 4 byte payload length
const HeaderSize = 5

// Header precedes every request and response. The payload itself is a
// sequence of option records of exactly Length bytes.
type Header struct {
	Type   MessageType
	Length int32
}

// WriteHeader encodes h onto out
func WriteHeader(out stream.Output, h Header) error {
	if err := out.PutByte(byte(h.Type)); err != nil {
		return err
	}
	return out.PutInt(h.Length)
}

// ReadHeader decodes a header and checks that its payload length is in [0, maxLength]
func ReadHeader(in stream.Input, maxLength int) (Header, error) {
	t, err := in.GetByte()
	if err != nil {
		return Header{}, err
	}
	length, err := in.GetInt()
	if err != nil {
		return Header{}, err
	}
	h := Header{Type: MessageType(t), Length: length}
	if h.Type < MsgTEcho || h.Type > MsgTError {
		return h, fmt.Errorf("%w: unknown message type %d", stream.ErrFormat, t)
	}
	if length < 0 || (maxLength > 0 && int(length) > maxLength) {
		return h, fmt.Errorf("%w: payload length %d outside [0, %d]", stream.ErrFormat, length, maxLength)
	}
	return h, nil
}

// ReadPayload reads the length bytes following a header through a live input
// on src. The reads block, so a payload may exceed the connection's read
// buffer and the connection's read deadline bounds the wait. The returned
// input keeps the byte order of src.
func ReadPayload(src builder.Source, name string, length int) (stream.Input, error) {
	live, err := builder.Input(src.WithLimit(int64(length)))
	if err != nil {
		return nil, err
	}
	buf, err := live.GetBytes(length)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: short read of %d bytes: %w", stream.ErrFraming, name, length, err)
	}
	return builder.Input(builder.FromBytes(buf).WithInvert(live.Inverted()).WithName(name))
}
