package options

import (
	"bytes"
	"encoding/json"
	"errors"
	"github.com/Driw/streamio/lib/stream"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"io"
	"testing"
)

func encode(t *testing.T, recs ...Record) []byte {
	t.Helper()
	out, err := stream.NewArrayOutput(int(Size(recs...)))
	require.NoError(t, err)
	require.NoError(t, NewWriter(out).PutAll(recs))
	require.True(t, out.IsEmpty(), "Size must match the encoded length")
	return out.Bytes()
}

func TestRoundTripInOrder(t *testing.T) {
	out, err := stream.NewArrayOutput(64)
	require.NoError(t, err)
	w := NewWriter(out)
	require.NoError(t, w.PutByte("a", 1))
	require.NoError(t, w.PutString("b", "hello"))
	require.NoError(t, w.PutDouble("c", 3.14))
	assert.Equal(t, 3, w.Count())

	recs, err := NewReader(stream.NewArrayInput(out.Bytes())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []Record{
		{Name: "a", Tag: TagByte, Value: uint8(1)},
		{Name: "b", Tag: TagString, Value: "hello"},
		{Name: "c", Tag: TagDouble, Value: 3.14},
	}, recs)
}

func TestWireLayout(t *testing.T) {
	data := encode(t, Short("n", 0x0102))
	assert.Equal(t, []byte{byte(TagShort), 1, 'n', 0x01, 0x02}, data)
}

func TestEveryTag(t *testing.T) {
	recs := []Record{
		Byte("byte", 0xFF),
		Char("char", 'Ω'),
		Short("short", -300),
		Int("int", 1<<30),
		Long("long", -1<<50),
		Float("float", 0.5),
		Double("double", -1e-9),
		String("string", ""),
		Bool("bool", true),
	}
	for _, invert := range []bool{false, true} {
		out, err := stream.NewArrayOutput(int(Size(recs...)))
		require.NoError(t, err)
		out.SetInvert(invert)
		require.NoError(t, NewWriter(out).PutAll(recs))

		in := stream.NewArrayInput(out.Bytes())
		in.SetInvert(invert)
		got, err := NewReader(in).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, recs, got)
	}
}

func TestUnknownTag(t *testing.T) {
	first := Int("ok", 7)
	data := append(encode(t, first), 0x2A, 0, 0)

	r := NewReader(stream.NewArrayInput(data))
	rec, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, first, rec)

	_, err = r.Next()
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, Size(first), formatErr.Offset)
	assert.Equal(t, byte(0x2A), formatErr.Tag)
	assert.True(t, errors.Is(err, stream.ErrFormat))
}

func TestTruncatedRecord(t *testing.T) {
	data := encode(t, Long("big", 42))
	_, err := NewReader(stream.NewArrayInput(data[:len(data)-3])).Next()
	assert.ErrorIs(t, err, stream.ErrFormat)

	_, err = NewReader(stream.NewArrayInput(nil)).Next()
	assert.Equal(t, io.EOF, err)
}

func TestLiveStreamReader(t *testing.T) {
	data := encode(t, Bool("x", false), String("y", "live"))
	recs, err := NewReader(stream.NewLiveInput(bytes.NewReader(data), 0)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Equal(t, "live", recs[1].Value)
}

func TestWriterRejectsInvalid(t *testing.T) {
	out, _ := stream.NewArrayOutput(16)
	w := NewWriter(out)
	err := w.Put(Record{Name: "x", Tag: TagInt, Value: "nope"})
	assert.ErrorIs(t, err, stream.ErrConfig)
	assert.Equal(t, int64(0), out.Offset())
	assert.Error(t, w.Put(Record{Name: "x", Tag: Tag(9), Value: true}))
	assert.Error(t, w.PutString("x", string(make([]byte, 256))))
}

func TestWriterCapacity(t *testing.T) {
	out, _ := stream.NewArrayOutput(4)
	err := NewWriter(out).PutLong("x", 1)
	assert.ErrorIs(t, err, stream.ErrCapacity)
}

func TestParseRecord(t *testing.T) {
	tests := map[string]Record{
		"a:byte=1":          Byte("a", 1),
		"b:char=z":          Char("b", 'z'),
		"c:short=-2":        Short("c", -2),
		"d:i32=0x10":        Int("d", 16),
		"e:long=9000000000": Long("e", 9000000000),
		"f:float=1.5":       Float("f", 1.5),
		"g:f64=3.14":        Double("g", 3.14),
		"h:string=a=b":      String("h", "a=b"),
		"i:bool=true":       Bool("i", true),
	}
	for text, want := range tests {
		got, err := ParseRecord(text)
		require.NoError(t, err, text)
		assert.Equal(t, want, got, text)
		again, err := ParseRecord(got.String())
		require.NoError(t, err, got.String())
		assert.Equal(t, want, again)
	}

	for _, bad := range []string{"noequals", ":int=1", "a:nope=1", "a:byte=256", "a:char=ab", "a:bool=maybe"} {
		_, err := ParseRecord(bad)
		assert.Error(t, err, bad)
	}
}

func TestExport(t *testing.T) {
	recs := []Record{Byte("a", 1), String("b", "hello"), Char("c", 'x')}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, "text", recs))
	assert.Equal(t, "a:byte=1\nb:string=hello\nc:char=x\n", buf.String())

	buf.Reset()
	require.NoError(t, ExportJSON(&buf, recs))
	var fromJSON []entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fromJSON))
	require.Len(t, fromJSON, 3)
	assert.Equal(t, "b", fromJSON[1].Name)
	assert.Equal(t, "hello", fromJSON[1].Value)
	assert.Equal(t, "x", fromJSON[2].Value)

	buf.Reset()
	require.NoError(t, ExportYAML(&buf, recs))
	var fromYAML []entry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	require.Len(t, fromYAML, 3)
	assert.Equal(t, "string", fromYAML[1].Type)

	buf.Reset()
	require.NoError(t, ExportCBOR(&buf, recs))
	var fromCBOR []entry
	require.NoError(t, cbor.Unmarshal(buf.Bytes(), &fromCBOR))
	require.Len(t, fromCBOR, 3)
	assert.Equal(t, "a", fromCBOR[0].Name)
	assert.Equal(t, "char", fromCBOR[2].Type)

	assert.Error(t, Export(&buf, "xml", recs))
}

func TestParseDefinitions(t *testing.T) {
	data := []byte(`[
		// connection settings
		{"name": "port", "type": "int", "value": 8080},
		{"name": "host", "type": "string", "value": "localhost"},
		/* flags */
		{"name": "debug", "type": "bool", "value": true},
		{"name": "ratio", "type": "f32", "value": "0.25"},
	]`)
	recs, err := ParseDefinitions(data)
	require.NoError(t, err)
	assert.Equal(t, []Record{
		Int("port", 8080),
		String("host", "localhost"),
		Bool("debug", true),
		Float("ratio", 0.25),
	}, recs)

	_, err = ParseDefinitions([]byte(`[{"name": "x", "type": "byte", "value": 300}]`))
	assert.Error(t, err)
}
