package stream

import (
	"encoding/binary"
)

// Cursor is the position state shared by every backing implementation. It
// tracks the number of bytes consumed or produced, the declared length and the
// byte order used for multi-byte primitives.
//
// For a bounded cursor Offset() + Space() == Length() always holds. Sequential
// streams without a length cap are unbounded: Length() reports 0 and Space()
// reports -1 because the remaining data is unknown.
type Cursor struct {
	offset  int64
	length  int64
	bounded bool
	invert  bool
}

// boundedCursor creates a cursor with a fixed length
func boundedCursor(length int64) Cursor {
	return Cursor{length: length, bounded: true}
}

// limitCursor creates a bounded cursor for limit > 0 and an unbounded one otherwise
func limitCursor(limit int64) Cursor {
	if limit > 0 {
		return boundedCursor(limit)
	}
	return Cursor{}
}

// Offset returns the number of bytes consumed or produced so far
func (c *Cursor) Offset() int64 {
	return c.offset
}

// Length returns the declared capacity, 0 for unbounded streams
func (c *Cursor) Length() int64 {
	if !c.bounded {
		return 0
	}
	return c.length
}

// Space returns the remaining capacity, -1 for unbounded streams
func (c *Cursor) Space() int64 {
	if !c.bounded {
		return -1
	}
	return c.length - c.offset
}

// IsEmpty reports whether a bounded stream has no space left
func (c *Cursor) IsEmpty() bool {
	return c.bounded && c.length-c.offset == 0
}

// Inverted reports whether multi-byte primitives use the reversed byte order
func (c *Cursor) Inverted() bool {
	return c.invert
}

// SetInvert toggles the byte order of multi-byte primitives for this stream only
func (c *Cursor) SetInvert(invert bool) {
	c.invert = invert
}

// order returns the byte order selected by the invert flag. The natural order is big endian.
func (c *Cursor) order() binary.ByteOrder {
	if c.invert {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// require checks that n more bytes fit into a bounded cursor without moving it
func (c *Cursor) require(n int64) error {
	if c.bounded && n > c.length-c.offset {
		return capacityError(n, c.length-c.offset)
	}
	return nil
}

func (c *Cursor) advance(n int64) {
	c.offset += n
}
