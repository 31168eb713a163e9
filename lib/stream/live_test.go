package stream

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"testing"
)

// shortWriter accepts at most max bytes per call
type shortWriter struct {
	buf bytes.Buffer
	max int
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) > w.max {
		p = p[:w.max]
	}
	return w.buf.Write(p)
}

// TestLiveRoundTrip writes through a live output and reads it back sequentially
func TestLiveRoundTrip(t *testing.T) {
	var sink bytes.Buffer
	out := NewLiveOutput(&sink, 0)
	_ = out.PutShort(7)
	_ = out.PutString("live")
	_ = out.PutLongs([]int64{1, 2})
	if out.Length() != 0 || out.Space() != -1 {
		t.Errorf("unbounded output should report length 0 and space -1, got %d/%d", out.Length(), out.Space())
	}
	if out.Offset() != int64(sink.Len()) {
		t.Errorf("offset %d should match bytes written %d", out.Offset(), sink.Len())
	}

	in := NewLiveInput(bytes.NewReader(sink.Bytes()), 0)
	if v, _ := in.GetShort(); v != 7 {
		t.Errorf("GetShort = %d", v)
	}
	if v, _ := in.GetString(); v != "live" {
		t.Errorf("GetString = %q", v)
	}
	if v, err := in.GetLongs(2); err != nil || v[1] != 2 {
		t.Errorf("GetLongs = %v, %v", v, err)
	}
	if _, err := in.GetByte(); !IsEnd(err) {
		t.Errorf("expected an end-of-stream error, got %v", err)
	}
}

// TestLiveLimit checks the optional length cap on live streams
func TestLiveLimit(t *testing.T) {
	in := NewLiveInput(bytes.NewReader([]byte{1, 2, 3, 4, 5, 6}), 4)
	checkInvariant(t, in)
	if _, err := in.GetInt(); err != nil {
		t.Fatalf("GetInt within the cap failed: %v", err)
	}
	if _, err := in.GetByte(); !errors.Is(err, ErrCapacity) {
		t.Errorf("expected ErrCapacity past the cap, got %v", err)
	}
	if n, err := in.Read(make([]byte, 4)); n != 0 || err != io.EOF {
		t.Errorf("Read past the cap = %d, %v", n, err)
	}

	var sink bytes.Buffer
	out := NewLiveOutput(&sink, 3)
	if err := out.PutInt(1); !errors.Is(err, ErrCapacity) {
		t.Errorf("expected ErrCapacity, got %v", err)
	}
	if sink.Len() != 0 || out.Offset() != 0 {
		t.Errorf("nothing should be written, got %d bytes offset %d", sink.Len(), out.Offset())
	}
}

// TestLivePartialTransfer checks that the offset counts bytes actually moved
func TestLivePartialTransfer(t *testing.T) {
	in := NewLiveInput(bytes.NewReader([]byte{1, 2}), 0)
	_, err := in.GetInt()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
	}
	if !IsEnd(err) {
		t.Error("IsEnd should accept a truncated read")
	}
	if in.Offset() != 2 {
		t.Errorf("offset should count the 2 bytes received, got %d", in.Offset())
	}

	w := &shortWriter{max: 3}
	out := NewLiveOutput(w, 0)
	if err := out.PutLong(1); !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("expected io.ErrShortWrite, got %v", err)
	}
	if out.Offset() != 3 {
		t.Errorf("offset should count the 3 bytes accepted, got %d", out.Offset())
	}
}

// TestLiveSkip checks skipping on both directions
func TestLiveSkip(t *testing.T) {
	in := NewLiveInput(bytes.NewReader([]byte{0, 0, 0, 9}), 0)
	if err := in.Skip(3); err != nil {
		t.Fatalf("Skip failed: %v", err)
	}
	if b, _ := in.GetByte(); b != 9 {
		t.Errorf("expected 9 after skip, got %d", b)
	}

	var sink bytes.Buffer
	out := NewLiveOutput(&sink, 0)
	if err := out.Skip(5000); err != nil {
		t.Fatalf("Skip failed: %v", err)
	}
	if sink.Len() != 5000 || out.Offset() != 5000 {
		t.Errorf("expected 5000 zero bytes, got %d offset %d", sink.Len(), out.Offset())
	}
	if bytes.IndexFunc(sink.Bytes(), func(r rune) bool { return r != 0 }) != -1 {
		t.Error("skip should only write zero bytes")
	}
}

// TestLiveUnsupported checks the operations a live stream cannot offer
func TestLiveUnsupported(t *testing.T) {
	in := NewLiveInput(bytes.NewReader(nil), 0)
	if err := in.Reset(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Reset: expected ErrUnsupported, got %v", err)
	}
	if _, err := in.IsClosed(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("IsClosed: expected ErrUnsupported, got %v", err)
	}
	out := NewLiveOutput(io.Discard, 0)
	if err := out.Reset(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Reset: expected ErrUnsupported, got %v", err)
	}
}

// TestLiveFlush checks that Flush and Close reach a buffered writer
func TestLiveFlush(t *testing.T) {
	var sink bytes.Buffer
	bw := bufio.NewWriter(&sink)
	out := NewLiveOutput(bw, 0)
	_ = out.PutInt(1)
	if sink.Len() != 0 {
		t.Fatalf("bytes should still be buffered, got %d", sink.Len())
	}
	if err := out.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if sink.Len() != 4 {
		t.Errorf("expected 4 flushed bytes, got %d", sink.Len())
	}
	_ = out.PutInt(2)
	if err := out.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if sink.Len() != 8 {
		t.Errorf("Close should flush, got %d bytes", sink.Len())
	}
}
