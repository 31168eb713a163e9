package options

import (
	"fmt"
	"github.com/Driw/streamio/lib/stream"
)

// Writer encodes records onto an output stream. Every record is followed by a
// flush of the stream.
type Writer struct {
	out   stream.Output
	count int
}

// NewWriter creates a writer over out
func NewWriter(out stream.Output) *Writer {
	return &Writer{out: out}
}

// Put validates and writes one record, then flushes the stream
func (w *Writer) Put(rec Record) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("%w: %w", stream.ErrConfig, err)
	}
	if err := w.out.PutByte(byte(rec.Tag)); err != nil {
		return err
	}
	if err := w.out.PutString(rec.Name); err != nil {
		return err
	}
	if err := w.payload(rec); err != nil {
		return fmt.Errorf("writing option %q: %w", rec.Name, err)
	}
	if err := w.out.Flush(); err != nil {
		return err
	}
	w.count++
	Logger.Debugf("wrote option %s", rec)
	return nil
}

func (w *Writer) payload(rec Record) error {
	switch rec.Tag {
	case TagByte:
		return w.out.PutByte(rec.Value.(uint8))
	case TagChar:
		return w.out.PutChar(rec.Value.(rune))
	case TagShort:
		return w.out.PutShort(rec.Value.(int16))
	case TagInt:
		return w.out.PutInt(rec.Value.(int32))
	case TagLong:
		return w.out.PutLong(rec.Value.(int64))
	case TagFloat:
		return w.out.PutFloat(rec.Value.(float32))
	case TagDouble:
		return w.out.PutDouble(rec.Value.(float64))
	case TagString:
		return w.out.PutString(rec.Value.(string))
	default:
		return w.out.PutBool(rec.Value.(bool))
	}
}

// PutAll writes recs in order and stops at the first failure
func (w *Writer) PutAll(recs []Record) error {
	for _, rec := range recs {
		if err := w.Put(rec); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) PutByte(name string, v uint8) error { return w.Put(Byte(name, v)) }
func (w *Writer) PutChar(name string, v rune) error { return w.Put(Char(name, v)) }
func (w *Writer) PutShort(name string, v int16) error { return w.Put(Short(name, v)) }
func (w *Writer) PutInt(name string, v int32) error { return w.Put(Int(name, v)) }
func (w *Writer) PutLong(name string, v int64) error { return w.Put(Long(name, v)) }
func (w *Writer) PutFloat(name string, v float32) error { return w.Put(Float(name, v)) }
func (w *Writer) PutDouble(name string, v float64) error { return w.Put(Double(name, v)) }
func (w *Writer) PutString(name string, v string) error { return w.Put(String(name, v)) }
func (w *Writer) PutBool(name string, v bool) error { return w.Put(Bool(name, v)) }

// Count returns the number of records written
func (w *Writer) Count() int {
	return w.count
}
