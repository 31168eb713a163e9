package client

import (
	"errors"
	"github.com/Driw/streamio/lib/options"
	"github.com/Driw/streamio/rpc/common"
	"github.com/Driw/streamio/rpc/server"
	"github.com/Driw/streamio/rpc/transport/tcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net"
	"strings"
	"testing"
	"time"
)

// startServer runs an option server on a loopback port and returns a
// connected client
func startServer(t *testing.T, invert bool) *RPCClient {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := server.NewRPCServer(common.ServerConfig{
		Transport:     common.TransportTCP,
		Endpoint:      listener.Addr().String(),
		TimeoutSecond: 5,
		MaxPacketSize: 16 << 20,
		Invert:        invert,
		Socket:        common.SocketConfig{TCPLingerSec: -1},
	}, tcp.NewTCPDefaultServerTransport())

	done := make(chan error, 1)
	go func() { done <- srv.ServeListener(listener) }()

	c, err := NewRPCClient(common.ClientConfig{
		Transport:     common.TransportTCP,
		Endpoint:      listener.Addr().String(),
		TimeoutSecond: 5,
		Invert:        invert,
	}, tcp.NewTCPClientTransport())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
		_ = srv.Close()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})
	return c
}

func TestEcho(t *testing.T) {
	for _, invert := range []bool{false, true} {
		c := startServer(t, invert)

		recs := []options.Record{
			options.Byte("a", 1),
			options.String("b", "hello"),
			options.Double("c", 3.14),
			options.Char("d", 'Ω'),
			options.Long("e", -1<<40),
			options.Bool("f", true),
		}
		echoed, err := c.Echo(recs)
		require.NoError(t, err)
		assert.Equal(t, recs, echoed, "invert=%v", invert)

		// the session stays usable
		echoed, err = c.Echo(recs[:1])
		require.NoError(t, err)
		assert.Equal(t, recs[:1], echoed)
	}
}

func TestEchoEmpty(t *testing.T) {
	c := startServer(t, false)
	echoed, err := c.Echo(nil)
	require.NoError(t, err)
	assert.Empty(t, echoed)
}

func TestEchoLargerThanReadBuffer(t *testing.T) {
	c := startServer(t, true)

	recs := make([]options.Record, 16*1024)
	for i := range recs {
		recs[i] = options.String("s", strings.Repeat("x", 200))
	}
	require.Greater(t, options.Size(recs...), int64(2<<20))

	echoed, err := c.Echo(recs)
	require.NoError(t, err)
	assert.Equal(t, recs, echoed)
}

func TestStats(t *testing.T) {
	c := startServer(t, false)

	recs := []options.Record{options.Int("x", 1), options.Int("y", 2), options.Int("z", 3)}
	_, err := c.Echo(recs)
	require.NoError(t, err)

	stats, err := c.Stats()
	require.NoError(t, err)

	values := map[string]any{}
	for _, rec := range stats {
		values[rec.Name] = rec.Value
	}
	size := int64(options.Size(recs...))
	assert.Equal(t, int64(2), values["requests"])
	assert.Equal(t, int64(0), values["errors"])
	assert.Equal(t, int64(3), values["records"])
	assert.Equal(t, 2*int64(common.HeaderSize)+size, values["bytes_in"])
	assert.Equal(t, int64(common.HeaderSize)+size, values["bytes_out"])
	assert.Equal(t, int32(1), values["sessions"])
}

func TestRemoteError(t *testing.T) {
	c := startServer(t, false)

	_, err := c.invoke(common.MsgTError, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRemote), "got %v", err)
	assert.Contains(t, err.Error(), "unsupported message type")

	// an answered error keeps the session open
	echoed, err := c.Echo([]options.Record{options.Short("s", 7)})
	require.NoError(t, err)
	assert.Equal(t, []options.Record{options.Short("s", 7)}, echoed)
}

func TestConnectFails(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	endpoint := listener.Addr().String()
	require.NoError(t, listener.Close())

	_, err = NewRPCClient(common.ClientConfig{Endpoint: endpoint}, tcp.NewTCPClientTransport())
	assert.Error(t, err)
}
