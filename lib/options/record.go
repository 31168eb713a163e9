package options

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxNameLength is the longest name the 1-byte name-length field can carry
const maxNameLength = math.MaxUint8

// Record is one named, typed value of an option stream. Value holds the Go
// type matching Tag:
//
//	TagByte   uint8     TagLong   int64
//	TagChar   rune      TagFloat  float32
//	TagShort  int16     TagDouble float64
//	TagInt    int32     TagString string
//	TagBool   bool
type Record struct {
	Name  string
	Tag   Tag
	Value any
}

func Byte(name string, v uint8) Record { return Record{Name: name, Tag: TagByte, Value: v} }
func Char(name string, v rune) Record { return Record{Name: name, Tag: TagChar, Value: v} }
func Short(name string, v int16) Record { return Record{Name: name, Tag: TagShort, Value: v} }
func Int(name string, v int32) Record { return Record{Name: name, Tag: TagInt, Value: v} }
func Long(name string, v int64) Record { return Record{Name: name, Tag: TagLong, Value: v} }
func Float(name string, v float32) Record { return Record{Name: name, Tag: TagFloat, Value: v} }
func Double(name string, v float64) Record { return Record{Name: name, Tag: TagDouble, Value: v} }
func String(name string, v string) Record { return Record{Name: name, Tag: TagString, Value: v} }
func Bool(name string, v bool) Record { return Record{Name: name, Tag: TagBool, Value: v} }

// Validate checks that the record can be encoded: a known tag, a value of the
// matching Go type, and name and string lengths that fit their 1-byte prefix.
func (r Record) Validate() error {
	if len(r.Name) > maxNameLength {
		return fmt.Errorf("option name of %d bytes exceeds %d", len(r.Name), maxNameLength)
	}
	if !r.Tag.Valid() {
		return fmt.Errorf("option %q: unknown tag %d", r.Name, byte(r.Tag))
	}
	ok := false
	switch v := r.Value.(type) {
	case uint8:
		ok = r.Tag == TagByte
	case int32:
		// rune and int32 are the same type
		ok = r.Tag == TagInt || (r.Tag == TagChar && v >= 0 && v <= math.MaxUint16)
	case int16:
		ok = r.Tag == TagShort
	case int64:
		ok = r.Tag == TagLong
	case float32:
		ok = r.Tag == TagFloat
	case float64:
		ok = r.Tag == TagDouble
	case string:
		if r.Tag == TagString && len(v) > maxNameLength {
			return fmt.Errorf("option %q: string of %d bytes exceeds %d", r.Name, len(v), maxNameLength)
		}
		ok = r.Tag == TagString
	case bool:
		ok = r.Tag == TagBool
	}
	if !ok {
		return fmt.Errorf("option %q: value %v (%T) does not match type %s", r.Name, r.Value, r.Value, r.Tag)
	}
	return nil
}

// String renders the record as name:type=value, the form accepted by ParseRecord
func (r Record) String() string {
	return r.Name + ":" + r.Tag.String() + "=" + r.Text()
}

// Text renders the value of the record
func (r Record) Text() string {
	if v, ok := r.Value.(rune); ok && r.Tag == TagChar {
		return string(v)
	}
	switch v := r.Value.(type) {
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// ParseRecord parses a record from its name:type=value text form
func ParseRecord(s string) (Record, error) {
	head, text, found := strings.Cut(s, "=")
	if !found {
		return Record{}, fmt.Errorf("option %q: expected name:type=value", s)
	}
	name, typ, found := strings.Cut(head, ":")
	if !found || name == "" {
		return Record{}, fmt.Errorf("option %q: expected name:type=value", s)
	}
	tag, err := ParseTag(typ)
	if err != nil {
		return Record{}, fmt.Errorf("option %q: %w", name, err)
	}
	v, err := ParseValue(tag, text)
	if err != nil {
		return Record{}, fmt.Errorf("option %q: %w", name, err)
	}
	rec := Record{Name: name, Tag: tag, Value: v}
	return rec, rec.Validate()
}

// ParseValue converts text into the Go value matching tag
func ParseValue(tag Tag, text string) (any, error) {
	switch tag {
	case TagByte:
		v, err := strconv.ParseUint(text, 0, 8)
		return uint8(v), err
	case TagChar:
		if utf8.RuneCountInString(text) != 1 {
			return nil, fmt.Errorf("char value %q must be a single character", text)
		}
		r, _ := utf8.DecodeRuneInString(text)
		return r, nil
	case TagShort:
		v, err := strconv.ParseInt(text, 0, 16)
		return int16(v), err
	case TagInt:
		v, err := strconv.ParseInt(text, 0, 32)
		return int32(v), err
	case TagLong:
		v, err := strconv.ParseInt(text, 0, 64)
		return v, err
	case TagFloat:
		v, err := strconv.ParseFloat(text, 32)
		return float32(v), err
	case TagDouble:
		v, err := strconv.ParseFloat(text, 64)
		return v, err
	case TagString:
		return text, nil
	case TagBool:
		v, err := strconv.ParseBool(text)
		return v, err
	default:
		return nil, fmt.Errorf("unknown tag %d", byte(tag))
	}
}

// Size returns the number of bytes the records occupy on the wire
func Size(recs ...Record) int64 {
	var total int64
	for _, r := range recs {
		total += 2 + int64(len(r.Name))
		if n := r.Tag.payloadSize(); n >= 0 {
			total += int64(n)
		} else if s, ok := r.Value.(string); ok {
			total += 1 + int64(len(s))
		}
	}
	return total
}
