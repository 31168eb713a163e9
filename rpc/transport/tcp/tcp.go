package tcp

import (
	"fmt"
	"github.com/Driw/streamio/rpc/common"
	"github.com/Driw/streamio/rpc/transport"
	"github.com/Driw/streamio/rpc/transport/base"
	"net"
	"time"
)

const (
	defaultBufferSize = 512 * 1024 // 512 KB
)

// connector dials, listens on and tunes TCP sockets. It serves as both the
// base.IServerConnector and the base.IClientConnector.
type connector struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see base.IServerConnector, base.IClientConnector)
// --------------------------------------------------------------------------

func (connector) GetName() string {
	return "tcp"
}

func (connector) Listen(config common.ServerConfig) (net.Listener, error) {
	listener, err := net.Listen("tcp", config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create TCP socket: %v", err)
	}
	return listener, nil
}

func (connector) Connect(endpoint string) (net.Conn, error) {
	return net.Dial("tcp", endpoint)
}

func (connector) UpgradeConnection(conn net.Conn, socket common.SocketConfig) error {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return nil
	}

	// Disable Nagle's algorithm if configured
	if err := tcpConn.SetNoDelay(socket.TCPNoDelay); err != nil {
		return err
	}
	if socket.WriteBufferSize > 0 {
		if err := tcpConn.SetWriteBuffer(socket.WriteBufferSize); err != nil {
			return err
		}
	}
	if socket.ReadBufferSize > 0 {
		if err := tcpConn.SetReadBuffer(socket.ReadBufferSize); err != nil {
			return err
		}
	}
	if socket.TCPKeepAliveSec > 0 {
		if err := tcpConn.SetKeepAliveConfig(net.KeepAliveConfig{
			Enable:   true,
			Idle:     time.Duration(socket.TCPKeepAliveSec) * time.Second,
			Interval: time.Duration(socket.TCPKeepAliveSec) * time.Second,
		}); err != nil {
			return err
		}
	}
	if socket.TCPLingerSec >= 0 {
		return tcpConn.SetLinger(socket.TCPLingerSec)
	}
	return nil
}

// --------------------------------------------------------------------------
// Transport Factory Methods
// --------------------------------------------------------------------------

// NewTCPDefaultServerTransport creates a new TCP server transport with the default buffer size
func NewTCPDefaultServerTransport() transport.IRPCServerTransport {
	return NewTCPServerTransport(defaultBufferSize)
}

// NewTCPServerTransport creates a new TCP server transport whose sessions read
// through a buffer of bufferSize bytes
func NewTCPServerTransport(bufferSize int) transport.IRPCServerTransport {
	return base.NewBaseServerTransport(connector{}, bufferSize)
}

// NewTCPClientTransport creates a new TCP client transport
func NewTCPClientTransport() transport.IRPCClientTransport {
	return base.NewBaseClientTransport(connector{}, defaultBufferSize)
}
