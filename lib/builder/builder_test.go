package builder

import (
	"bytes"
	"github.com/Driw/streamio/lib/options"
	"github.com/Driw/streamio/lib/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// loopConn reads back what was written to it
type loopConn struct {
	bytes.Buffer
}

func (c *loopConn) Available() (int, error) { return c.Len(), nil }
func (c *loopConn) Connected() bool { return true }

func TestArraySources(t *testing.T) {
	out, err := Output(InMemory(8).WithInvert(true))
	require.NoError(t, err)
	require.NoError(t, out.PutInt(0x01020304))
	data := out.(*stream.ArrayOutput).Bytes()
	assert.Equal(t, []byte{4, 3, 2, 1}, data)

	in, err := Input(FromBytes(data).WithInvert(true).WithName("le"))
	require.NoError(t, err)
	named, ok := in.(*stream.NamedInput)
	require.True(t, ok)
	assert.Equal(t, "le", named.Name())
	v, err := in.GetInt()
	require.NoError(t, err)
	assert.Equal(t, int32(0x01020304), v)

	copied, err := Input(FromBytes(data).WithCopy())
	require.NoError(t, err)
	data[0] = 0
	b, _ := copied.GetByte()
	assert.Equal(t, byte(4), b)
}

func TestBuffer(t *testing.T) {
	buf, err := Buffer(InMemory(16))
	require.NoError(t, err)
	require.NoError(t, buf.PutLong(99))
	require.NoError(t, buf.Reset())
	v, err := buf.GetLong()
	require.NoError(t, err)
	assert.Equal(t, int64(99), v)

	_, err = Buffer(FromReader(strings.NewReader("x")))
	assert.ErrorIs(t, err, stream.ErrUnsupported)
}

func TestMappedFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opts.bin")
	out, err := Output(FromPath(path))
	require.NoError(t, err)
	w := options.NewWriter(out)
	recs := []options.Record{options.Int("port", 7000), options.String("host", "example.org")}
	require.NoError(t, w.PutAll(recs))
	require.NoError(t, out.Close())

	file, err := os.Open(path)
	require.NoError(t, err)
	r, err := OptionReader(FromFile(file))
	require.NoError(t, err)
	got, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, recs, got)
}

func TestSequentialSources(t *testing.T) {
	var sink bytes.Buffer
	out, err := Output(FromWriter(&sink).WithLimit(2))
	require.NoError(t, err)
	require.NoError(t, out.PutShort(5))
	assert.ErrorIs(t, out.PutByte(1), stream.ErrCapacity)

	in, err := Input(FromReader(&sink))
	require.NoError(t, err)
	v, err := in.GetShort()
	require.NoError(t, err)
	assert.Equal(t, int16(5), v)

	var sb strings.Builder
	cout, err := Output(ToRunes(&sb))
	require.NoError(t, err)
	require.NoError(t, cout.PutBytes([]byte("ok")))
	cin, err := Input(FromRunes(strings.NewReader(sb.String())))
	require.NoError(t, err)
	s, err := cin.GetBytes(2)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(s))
}

func TestPackets(t *testing.T) {
	conn := &loopConn{}
	src := FromConn(conn).WithName("ping")

	out, err := StaticOutputPacket(src, 6)
	require.NoError(t, err)
	require.NoError(t, out.PutString("hello"))
	require.NoError(t, out.Close())

	in, err := StaticInputPacket(src, 6)
	require.NoError(t, err)
	s, err := in.GetString()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	dout, err := DynamicOutputPacket(src)
	require.NoError(t, err)
	require.NoError(t, dout.PutInt(3))
	din, err := DynamicInputPacket(src)
	require.NoError(t, err)
	assert.Equal(t, int64(4), din.Length())

	_, err = DynamicInputPacket(InMemory(4))
	assert.ErrorIs(t, err, stream.ErrUnsupported)
}

func TestUnsupported(t *testing.T) {
	_, err := Input(InMemory(4))
	assert.ErrorIs(t, err, stream.ErrUnsupported)
	_, err = Output(FromReader(strings.NewReader("")))
	assert.ErrorIs(t, err, stream.ErrUnsupported)
	_, err = Input(Source{})
	assert.ErrorIs(t, err, stream.ErrUnsupported)
}
