package stream

import (
	"strings"
	"testing"
)

// TestNamedStreams checks that the label is diagnostic only
func TestNamedStreams(t *testing.T) {
	raw, _ := NewArrayOutput(8)
	out := NameOutput(raw, "request")
	if out.Name() != "request" {
		t.Errorf("Name = %q", out.Name())
	}
	_ = out.PutInt(5)
	if raw.Offset() != 4 {
		t.Errorf("writes should reach the wrapped output, offset %d", raw.Offset())
	}
	if out.Unwrap() != Output(raw) {
		t.Error("Unwrap should return the wrapped output")
	}
	if s := out.String(); !strings.HasPrefix(s, "request[") || !strings.Contains(s, "offset=4") {
		t.Errorf("unexpected String() %q", s)
	}

	in := NameInput(NewArrayInput(raw.Bytes()), "reply")
	if v, err := in.GetInt(); err != nil || v != 5 {
		t.Errorf("GetInt = %d, %v", v, err)
	}
	if in.Name() != "reply" || in.Offset() != 4 {
		t.Errorf("unexpected named input state %s", in)
	}
}
