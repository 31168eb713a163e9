package options

import (
	"fmt"
	"github.com/Driw/streamio/lib/stream"
	"github.com/lni/dragonboat/v4/logger"
	"io"
)

var Logger = logger.GetLogger("options")

// FormatError reports an unknown tag byte and the stream offset it was read at
type FormatError struct {
	Offset int64
	Tag    byte
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unknown option tag %#02x at offset %d", e.Tag, e.Offset)
}

func (e *FormatError) Unwrap() error {
	return stream.ErrFormat
}

// Reader decodes records from an input stream in the order they were written
type Reader struct {
	in stream.Input
}

// NewReader creates a reader over in
func NewReader(in stream.Input) *Reader {
	return &Reader{in: in}
}

// Next decodes the next record. It returns io.EOF when the stream ends cleanly
// on a record boundary. A stream ending inside a record fails with
// stream.ErrFormat, an unknown tag with a *FormatError.
func (r *Reader) Next() (Record, error) {
	offset := r.in.Offset()
	b, err := r.in.GetByte()
	if err != nil {
		if stream.IsEnd(err) {
			return Record{}, io.EOF
		}
		return Record{}, err
	}
	tag := Tag(b)
	if !tag.Valid() {
		return Record{}, &FormatError{Offset: offset, Tag: b}
	}
	name, err := r.in.GetString()
	if err != nil {
		return Record{}, truncated(offset, err)
	}
	v, err := r.payload(tag)
	if err != nil {
		return Record{}, truncated(offset, err)
	}
	return Record{Name: name, Tag: tag, Value: v}, nil
}

func truncated(offset int64, err error) error {
	if stream.IsEnd(err) {
		return fmt.Errorf("%w: record at offset %d is truncated: %w", stream.ErrFormat, offset, err)
	}
	return err
}

func (r *Reader) payload(tag Tag) (any, error) {
	switch tag {
	case TagByte:
		return r.in.GetByte()
	case TagChar:
		return r.in.GetChar()
	case TagShort:
		return r.in.GetShort()
	case TagInt:
		return r.in.GetInt()
	case TagLong:
		return r.in.GetLong()
	case TagFloat:
		return r.in.GetFloat()
	case TagDouble:
		return r.in.GetDouble()
	case TagString:
		return r.in.GetString()
	default:
		return r.in.GetBool()
	}
}

// ReadAll decodes records until the stream ends
func (r *Reader) ReadAll() ([]Record, error) {
	var recs []Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
	}
}
