package options

import (
	"fmt"
	"strings"
)

// Tag identifies the payload type of a record
type Tag byte

const (
	TagByte Tag = iota
	TagChar
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagString
	TagBool
)

var tagNames = [...]string{
	TagByte:   "byte",
	TagChar:   "char",
	TagShort:  "short",
	TagInt:    "int",
	TagLong:   "long",
	TagFloat:  "float",
	TagDouble: "double",
	TagString: "string",
	TagBool:   "bool",
}

// aliases accepted by ParseTag in addition to the canonical names
var tagAliases = map[string]Tag{
	"u8":  TagByte,
	"i16": TagShort,
	"i32": TagInt,
	"i64": TagLong,
	"f32": TagFloat,
	"f64": TagDouble,
	"str": TagString,
}

// Valid reports whether t is a known tag
func (t Tag) Valid() bool {
	return t <= TagBool
}

func (t Tag) String() string {
	if !t.Valid() {
		return fmt.Sprintf("tag(%d)", byte(t))
	}
	return tagNames[t]
}

// payloadSize returns the fixed payload size of t, or -1 for strings
func (t Tag) payloadSize() int {
	switch t {
	case TagByte, TagBool:
		return 1
	case TagChar, TagShort:
		return 2
	case TagInt, TagFloat:
		return 4
	case TagLong, TagDouble:
		return 8
	default:
		return -1
	}
}

// ParseTag resolves a tag from its name ("int", "double", ...) or a short alias ("i32", "f64", ...)
func ParseTag(s string) (Tag, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range tagNames {
		if name == s {
			return Tag(t), nil
		}
	}
	if t, ok := tagAliases[s]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("unknown option type %q", s)
}
