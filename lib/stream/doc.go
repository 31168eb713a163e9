// Package stream provides a unified read/write contract over heterogeneous
// backing stores. Every backing exposes the same cursor model (offset, length,
// space) and the same typed primitive codec, so higher layers (packet framing,
// the option codec) never care where bytes come from.
//
// The package focuses on:
//   - One capability interface set (Input, Output) with independent concrete types
//   - A small Cursor value composed into every backing instead of a type hierarchy
//   - A runtime byte-order switch per stream instance (the invert flag)
//   - Explicit, typed failures that are never retried internally
//
// Key Components:
//
//   - Cursor: offset, declared length and invert flag. For bounded streams
//     Offset() + Space() == Length() holds after every operation.
//
//   - ArrayInput / ArrayOutput: fixed slices, either aliased or privately owned.
//
//   - Buffer: one slice with one position shared by reads and writes. Use
//     MoveTo or Reset to read back what was written.
//
//   - MappedInput / MappedOutput: memory-mapped files. The output grows by
//     unmapping, extending and remapping the file when a write overflows.
//     Platforms without mmap fall back to a fixed-size, non-growable region.
//
//   - LiveInput / LiveOutput: sequential readers and writers (connections,
//     pipes, open files) with an optional length cap. No rewind.
//
//   - CharInput / CharOutput: character streams, one rune per byte. Offset and
//     length are not tracked.
//
//   - NamedInput / NamedOutput: diagnostic labels around any of the above.
//
// Byte Order:
//
//	Multi-byte primitives are big endian. SetInvert(true) switches the stream
//	to little endian. Strings carry a 1-byte length prefix; fixed-length strings
//	are zero padded.
//
// Failure Semantics:
//
//	On bounded backings the space for a primitive (or a whole primitive array)
//	is checked before any byte moves, so a capacity error leaves the cursor
//	unchanged. On live backings the cursor counts the bytes that were actually
//	transferred before a failure. Strings and string arrays are sequences of
//	primitives and may stop part way.
//
// Thread Safety:
//
//	Streams are not safe for concurrent use. Each stream has exactly one owner,
//	and Close must not race an in-flight read or write.
package stream
