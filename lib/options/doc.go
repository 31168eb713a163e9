// Package options implements the tagged option codec: a flat, self-describing
// sequence of named typed values written to and read from any stream.Output
// or stream.Input.
//
// Wire Format:
//
//	Each record is laid out as
//
//	  [1 tag byte][1 name-length byte][name bytes][payload]
//
//	where the payload encoding is fixed by the tag:
//
//	  byte=0   1 byte        long=4    8 bytes
//	  char=1   2 bytes       float=5   4 bytes
//	  short=2  2 bytes       double=6  8 bytes
//	  int=3    4 bytes       string=7  1 length byte + bytes
//	  bool=8   1 byte
//
//	Multi-byte payloads follow the byte order of the underlying stream.
//
// Key Components:
//   - Writer: emits records and flushes the stream after each one
//   - Reader: decodes records strictly in write order, there is no lookup by name
//   - Record: one (name, tag, value) triple, with parsing and sizing helpers
//   - Export: JSON, YAML and CBOR renderings of a record list for diagnostics
//
// An unknown tag byte is fatal for the rest of the stream and is reported as a
// *FormatError holding the offset of the tag.
package options
