package unix

import (
	"fmt"
	"github.com/Driw/streamio/rpc/common"
	"github.com/Driw/streamio/rpc/transport"
	"github.com/Driw/streamio/rpc/transport/base"
	"net"
	"os"
)

const (
	defaultBufferSize = 64 * 1024 // 64 KB
)

// connector dials, listens on and tunes Unix domain sockets. The endpoint is
// the socket path.
type connector struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see base.IServerConnector, base.IClientConnector)
// --------------------------------------------------------------------------

func (connector) GetName() string {
	return "unix"
}

func (connector) Listen(config common.ServerConfig) (net.Listener, error) {
	// a stale socket file from a previous run blocks the bind
	if err := os.RemoveAll(config.Endpoint); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %v", err)
	}

	listener, err := net.Listen("unix", config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create Unix socket: %v", err)
	}
	return listener, nil
}

func (connector) Connect(endpoint string) (net.Conn, error) {
	return net.Dial("unix", endpoint)
}

// UpgradeConnection applies the buffer sizes, the TCP settings do not apply
func (connector) UpgradeConnection(conn net.Conn, socket common.SocketConfig) error {
	unixConn, ok := conn.(*net.UnixConn)
	if !ok {
		return nil
	}
	if socket.WriteBufferSize > 0 {
		if err := unixConn.SetWriteBuffer(socket.WriteBufferSize); err != nil {
			return err
		}
	}
	if socket.ReadBufferSize > 0 {
		return unixConn.SetReadBuffer(socket.ReadBufferSize)
	}
	return nil
}

// --------------------------------------------------------------------------
// Transport Factory Methods
// --------------------------------------------------------------------------

// NewUnixDefaultServerTransport creates a new Unix server transport with the default buffer size
func NewUnixDefaultServerTransport() transport.IRPCServerTransport {
	return NewUnixServerTransport(defaultBufferSize)
}

// NewUnixServerTransport creates a new Unix server transport whose sessions
// read through a buffer of bufferSize bytes
func NewUnixServerTransport(bufferSize int) transport.IRPCServerTransport {
	return base.NewBaseServerTransport(connector{}, bufferSize)
}

// NewUnixClientTransport creates a new Unix client transport
func NewUnixClientTransport() transport.IRPCClientTransport {
	return base.NewBaseClientTransport(connector{}, defaultBufferSize)
}
