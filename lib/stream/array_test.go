package stream

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"
)

// checkInvariant verifies offset + space == length for a bounded stream
func checkInvariant(t *testing.T, s Stream) {
	t.Helper()
	if s.Offset()+s.Space() != s.Length() {
		t.Fatalf("cursor invariant broken: offset %d + space %d != length %d", s.Offset(), s.Space(), s.Length())
	}
}

// TestArrayPrimitiveRoundTrip writes every primitive and reads it back
func TestArrayPrimitiveRoundTrip(t *testing.T) {
	for _, invert := range []bool{false, true} {
		out, err := NewArrayOutput(128)
		if err != nil {
			t.Fatalf("NewArrayOutput failed: %v", err)
		}
		out.SetInvert(invert)

		steps := []func() error{
			func() error { return out.PutByte(0xAB) },
			func() error { return out.PutBool(true) },
			func() error { return out.PutChar('é') },
			func() error { return out.PutShort(-2) },
			func() error { return out.PutInt(0x01020304) },
			func() error { return out.PutLong(-1234567890123) },
			func() error { return out.PutFloat(1.5) },
			func() error { return out.PutDouble(3.14) },
			func() error { return out.PutString("hello") },
			func() error { return out.PutFixedString("ab", 4) },
		}
		for i, step := range steps {
			if err := step(); err != nil {
				t.Fatalf("put %d failed: %v", i, err)
			}
			checkInvariant(t, out)
		}

		in := NewArrayInput(out.Bytes())
		in.SetInvert(invert)

		if v, err := in.GetByte(); err != nil || v != 0xAB {
			t.Errorf("GetByte = %x, %v", v, err)
		}
		if v, err := in.GetBool(); err != nil || !v {
			t.Errorf("GetBool = %v, %v", v, err)
		}
		if v, err := in.GetChar(); err != nil || v != 'é' {
			t.Errorf("GetChar = %q, %v", v, err)
		}
		if v, err := in.GetShort(); err != nil || v != -2 {
			t.Errorf("GetShort = %d, %v", v, err)
		}
		if v, err := in.GetInt(); err != nil || v != 0x01020304 {
			t.Errorf("GetInt = %x, %v", v, err)
		}
		if v, err := in.GetLong(); err != nil || v != -1234567890123 {
			t.Errorf("GetLong = %d, %v", v, err)
		}
		if v, err := in.GetFloat(); err != nil || v != 1.5 {
			t.Errorf("GetFloat = %v, %v", v, err)
		}
		if v, err := in.GetDouble(); err != nil || v != 3.14 {
			t.Errorf("GetDouble = %v, %v", v, err)
		}
		if v, err := in.GetString(); err != nil || v != "hello" {
			t.Errorf("GetString = %q, %v", v, err)
		}
		if v, err := in.GetFixedString(4); err != nil || v != "ab" {
			t.Errorf("GetFixedString = %q, %v", v, err)
		}
		if !in.IsEmpty() {
			t.Errorf("input should be empty, %d bytes left", in.Space())
		}
	}
}

// TestInvertByteOrder checks that the invert flag reverses multi-byte values
func TestInvertByteOrder(t *testing.T) {
	out, _ := NewArrayOutput(4)
	if err := out.PutInt(0x01020304); err != nil {
		t.Fatalf("PutInt failed: %v", err)
	}
	if !bytes.Equal(out.Bytes(), []byte{1, 2, 3, 4}) {
		t.Fatalf("natural order should be big endian, got %v", out.Bytes())
	}

	in := NewArrayInput(out.Bytes())
	if v, _ := in.GetInt(); v != 0x01020304 {
		t.Errorf("expected 0x01020304, got %#x", v)
	}

	in = NewArrayInput(out.Bytes())
	in.SetInvert(true)
	if !in.Inverted() {
		t.Fatal("Inverted() should report true")
	}
	if v, _ := in.GetInt(); v != 0x04030201 {
		t.Errorf("expected 0x04030201 with invert, got %#x", v)
	}
}

// TestArrayArrays covers the array variants of every primitive
func TestArrayArrays(t *testing.T) {
	out, _ := NewArrayOutput(256)
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("put failed: %v", err)
		}
	}
	must(out.PutChars([]rune("hi")))
	must(out.PutShorts([]int16{1, -1}))
	must(out.PutInts([]int32{7, 8, 9}))
	must(out.PutLongs([]int64{1 << 40}))
	must(out.PutFloats([]float32{0.25}))
	must(out.PutDoubles([]float64{-2.5, 1e10}))
	must(out.PutStrings([]string{"a", "", "bcd"}))

	in := NewArrayInput(out.Bytes())
	if v, err := in.GetChars(2); err != nil || string(v) != "hi" {
		t.Errorf("GetChars = %q, %v", string(v), err)
	}
	if v, err := in.GetShorts(2); err != nil || v[0] != 1 || v[1] != -1 {
		t.Errorf("GetShorts = %v, %v", v, err)
	}
	if v, err := in.GetInts(3); err != nil || v[0] != 7 || v[2] != 9 {
		t.Errorf("GetInts = %v, %v", v, err)
	}
	if v, err := in.GetLongs(1); err != nil || v[0] != 1<<40 {
		t.Errorf("GetLongs = %v, %v", v, err)
	}
	if v, err := in.GetFloats(1); err != nil || v[0] != 0.25 {
		t.Errorf("GetFloats = %v, %v", v, err)
	}
	if v, err := in.GetDoubles(2); err != nil || v[0] != -2.5 || v[1] != 1e10 {
		t.Errorf("GetDoubles = %v, %v", v, err)
	}
	if v, err := in.GetStrings(3); err != nil || len(v) != 3 || v[2] != "bcd" {
		t.Errorf("GetStrings = %v, %v", v, err)
	}
	checkInvariant(t, in)
}

// TestArrayCapacity pins down the cursor behaviour on capacity errors
func TestArrayCapacity(t *testing.T) {
	in := NewArrayInput([]byte{1, 2, 3})

	if _, err := in.GetInt(); !errors.Is(err, ErrCapacity) {
		t.Fatalf("expected ErrCapacity, got %v", err)
	}
	if in.Offset() != 0 {
		t.Errorf("failed multi-byte read must leave the cursor unchanged, offset %d", in.Offset())
	}
	if err := in.Skip(4); !errors.Is(err, ErrCapacity) {
		t.Errorf("expected ErrCapacity on skip, got %v", err)
	}
	if in.Offset() != 0 {
		t.Errorf("failed skip must leave the cursor unchanged, offset %d", in.Offset())
	}
	if err := in.Skip(3); err != nil {
		t.Fatalf("Skip(3) failed: %v", err)
	}
	if !in.IsEmpty() {
		t.Error("input should be empty")
	}
	if _, err := in.GetByte(); !errors.Is(err, ErrCapacity) {
		t.Errorf("expected ErrCapacity past the end, got %v", err)
	}

	out, _ := NewArrayOutput(2)
	if err := out.PutInt(1); !errors.Is(err, ErrCapacity) {
		t.Errorf("expected ErrCapacity on write, got %v", err)
	}
	if out.Offset() != 0 {
		t.Errorf("failed write must leave the cursor unchanged, offset %d", out.Offset())
	}
	if err := out.PutString(string(make([]byte, 300))); !errors.Is(err, ErrCapacity) {
		t.Errorf("expected ErrCapacity for an oversized string, got %v", err)
	}
}

// TestArrayOversizedArrayRead asks for far more values than the input holds
func TestArrayOversizedArrayRead(t *testing.T) {
	in := NewArrayInput([]byte{1, 2, 3, 4})

	if _, err := in.GetBytes(math.MaxInt / 2); !errors.Is(err, ErrCapacity) {
		t.Errorf("GetBytes: expected ErrCapacity, got %v", err)
	}
	if _, err := in.GetLongs(1 << 20); !errors.Is(err, ErrCapacity) {
		t.Errorf("GetLongs: expected ErrCapacity, got %v", err)
	}
	if _, err := in.GetLongs(math.MaxInt/8 + 1); !errors.Is(err, ErrCapacity) {
		t.Errorf("GetLongs with an overflowing size: expected ErrCapacity, got %v", err)
	}
	if _, err := in.GetChars(math.MaxInt/2 + 1); !errors.Is(err, ErrCapacity) {
		t.Errorf("GetChars with an overflowing size: expected ErrCapacity, got %v", err)
	}
	if in.Offset() != 0 {
		t.Fatalf("rejected reads must leave the cursor unchanged, offset %d", in.Offset())
	}
	if v, err := in.GetInts(1); err != nil || v[0] != 0x01020304 {
		t.Errorf("GetInts(1) = %v, %v", v, err)
	}
}

// TestArrayClose checks the closed-resource errors
func TestArrayClose(t *testing.T) {
	in := NewArrayInput([]byte{1, 2})
	if err := in.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if closed, err := in.IsClosed(); err != nil || !closed {
		t.Errorf("IsClosed = %v, %v", closed, err)
	}
	if _, err := in.GetByte(); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if err := in.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed on double close, got %v", err)
	}

	out, _ := NewArrayOutput(2)
	_ = out.Close()
	if err := out.PutByte(1); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

// TestArrayAliasing checks aliased and copied inputs
func TestArrayAliasing(t *testing.T) {
	data := []byte{1, 2}
	aliased := NewArrayInput(data)
	copied := NewArrayInputCopy(data)
	data[0] = 9

	if b, _ := aliased.GetByte(); b != 9 {
		t.Errorf("aliased input should see caller changes, got %d", b)
	}
	if b, _ := copied.GetByte(); b != 1 {
		t.Errorf("copied input should not see caller changes, got %d", b)
	}

	target := make([]byte, 2)
	out := NewArrayOutputOn(target)
	_ = out.PutShort(0x0102)
	if target[0] != 1 || target[1] != 2 {
		t.Errorf("output should write into the caller slice, got %v", target)
	}
}

// TestArrayLinesAndScan covers line-oriented reads and sequence scanning
func TestArrayLinesAndScan(t *testing.T) {
	out, _ := NewArrayOutput(64)
	_ = out.PutLine("first")
	_ = out.PutBytes([]byte("second\r"))
	_ = out.PutBreakLine()
	_ = out.PutBytes([]byte("key=value;;rest"))

	in := NewArrayInput(out.Bytes())
	if line, err := in.GetLine(); err != nil || line != "first" {
		t.Errorf("GetLine = %q, %v", line, err)
	}
	if line, err := in.GetLine(); err != nil || line != "second" {
		t.Errorf("GetLine = %q, %v", line, err)
	}
	if head, err := in.ScanFor([]byte(";;")); err != nil || string(head) != "key=value" {
		t.Errorf("ScanFor = %q, %v", head, err)
	}
	if line, err := in.GetLine(); err != nil || line != "rest" {
		t.Errorf("last line without break = %q, %v", line, err)
	}
	if _, err := in.GetLine(); !errors.Is(err, ErrCapacity) {
		t.Errorf("expected ErrCapacity at the end, got %v", err)
	}
}

// TestArrayReader checks io.Reader compatibility
func TestArrayReader(t *testing.T) {
	in := NewArrayInput([]byte("abcdef"))
	_, _ = in.GetByte()
	rest, err := io.ReadAll(in)
	if err != nil || string(rest) != "bcdef" {
		t.Errorf("ReadAll = %q, %v", rest, err)
	}
	if err := in.Reset(); err != nil || in.Offset() != 0 {
		t.Errorf("Reset = %v, offset %d", err, in.Offset())
	}
}
