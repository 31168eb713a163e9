package base

import (
	"fmt"
	"github.com/Driw/streamio/rpc/common"
	"github.com/Driw/streamio/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"net"
)

var Logger = logger.GetLogger("transport/rpc")

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IClientConnector defines the interface for transport-specific connection operations
type IClientConnector interface {
	// Connect establishes a single connection to endpoint
	Connect(endpoint string) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies the socket settings to an established connection
	UpgradeConnection(conn net.Conn, socket common.SocketConfig) error
}

// clientTransport implements the core client transport functionality
// independent of the specific transport medium (unix, tcp, etc.)
type clientTransport struct {
	connector  IClientConnector
	bufferSize int
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseClientTransport creates a new base client transport with the specified connector
func NewBaseClientTransport(connector IClientConnector, bufferSize int) transport.IRPCClientTransport {
	return &clientTransport{
		connector:  connector,
		bufferSize: bufferSize,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Connect(config common.ClientConfig) (transport.IConn, error) {
	if config.Endpoint == "" {
		return nil, fmt.Errorf("no endpoint provided")
	}

	raw, err := t.connector.Connect(config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", config.Endpoint, err)
	}

	if err := t.connector.UpgradeConnection(raw, config.Socket); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("failed to upgrade connection to %s: %w", config.Endpoint, err)
	}

	Logger.Infof("Connected to %s using %s transport", config.Endpoint, t.connector.GetName())
	return NewConn(raw, t.bufferSize), nil
}
