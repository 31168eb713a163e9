package transport

import (
	"github.com/Driw/streamio/lib/packet"
	"github.com/Driw/streamio/rpc/common"
	"io"
	"net"
	"time"
)

// IConn is an established connection that packets can be framed on
type IConn interface {
	packet.Connection
	io.Closer
	// Wait blocks until the peer sends the first byte of the next message. It
	// returns io.EOF when the peer closed the connection cleanly.
	Wait() error
	SetDeadline(t time.Time) error
	RemoteAddr() net.Addr
}

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc handles one request on conn. It is called by a server
// transport every time a new message starts on a session; returning an error
// ends the session.
type ServerHandleFunc func(conn IConn) error

// IRPCServerTransport is the interface for the server side of the transport layer
type IRPCServerTransport interface {
	// RegisterHandler registers the request handler, it must be called before Listen
	RegisterHandler(handler ServerHandleFunc)
	// Listen creates a listener for the configured endpoint and serves it until Close
	Listen(config common.ServerConfig) error
	// Serve accepts sessions on an existing listener until Close
	Serve(listener net.Listener, config common.ServerConfig) error
	// Sessions returns the number of open sessions
	Sessions() int
	// Close stops accepting and closes all open sessions
	Close() error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IRPCClientTransport is the interface for the client side of the transport layer
type IRPCClientTransport interface {
	// Connect dials the configured endpoint
	Connect(config common.ClientConfig) (IConn, error)
}
