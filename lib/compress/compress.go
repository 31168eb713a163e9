// Package compress wraps the general purpose compressors used next to the
// stream core. Every codec works on plain io.Reader/io.Writer values, so any
// stream.Input or stream.Output can be compressed or expanded directly.
package compress

import (
	"bytes"
	"fmt"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"io"
	"strings"
)

// Algorithm identifies a compression codec
type Algorithm uint8

const (
	None Algorithm = iota
	Deflate
	Zstd
	LZ4
	Snappy
)

func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case Deflate:
		return "deflate"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	case Snappy:
		return "snappy"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(a))
	}
}

// Parse resolves an algorithm from its name
func Parse(name string) (Algorithm, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return None, nil
	case "deflate", "flate":
		return Deflate, nil
	case "zstd":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	case "snappy":
		return Snappy, nil
	default:
		return None, fmt.Errorf("unknown compression algorithm %q", name)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NewWriter returns a writer compressing into w. Close must be called to
// flush the final block; it does not close w.
func NewWriter(w io.Writer, alg Algorithm) (io.WriteCloser, error) {
	switch alg {
	case None:
		return nopWriteCloser{w}, nil
	case Deflate:
		return flate.NewWriter(w, flate.DefaultCompression)
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case LZ4:
		return lz4.NewWriter(w), nil
	case Snappy:
		return snappy.NewBufferedWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression algorithm %s", alg)
	}
}

// NewReader returns a reader expanding the compressed data read from r
func NewReader(r io.Reader, alg Algorithm) (io.ReadCloser, error) {
	switch alg {
	case None:
		return io.NopCloser(r), nil
	case Deflate:
		return flate.NewReader(r), nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case Snappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("unsupported compression algorithm %s", alg)
	}
}

// Copy compresses everything read from src into dst and returns the number of
// uncompressed bytes consumed
func Copy(dst io.Writer, src io.Reader, alg Algorithm) (int64, error) {
	zw, err := NewWriter(dst, alg)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(zw, src)
	if cerr := zw.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("%s compress: %w", alg, err)
	}
	return n, nil
}

// Expand decompresses everything read from src into dst and returns the
// number of uncompressed bytes written
func Expand(dst io.Writer, src io.Reader, alg Algorithm) (int64, error) {
	zr, err := NewReader(src, alg)
	if err != nil {
		return 0, err
	}
	defer zr.Close()
	n, err := io.Copy(dst, zr)
	if err != nil {
		return n, fmt.Errorf("%s decompress: %w", alg, err)
	}
	return n, nil
}

// Bytes compresses data in memory
func Bytes(data []byte, alg Algorithm) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Copy(&buf, bytes.NewReader(data), alg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExpandBytes decompresses data in memory
func ExpandBytes(data []byte, alg Algorithm) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Expand(&buf, bytes.NewReader(data), alg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
