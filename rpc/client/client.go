package client

import (
	"github.com/Driw/streamio/lib/builder"
	"github.com/Driw/streamio/lib/options"
	"github.com/Driw/streamio/rpc/common"
	"github.com/Driw/streamio/rpc/transport"
	"sync"
	"time"
)

// RPCClient sends option records to a server over one connection. Calls are
// serialized, a connection carries one exchange at a time.
type RPCClient struct {
	config common.ClientConfig
	conn   transport.IConn
	mu     sync.Mutex
}

// NewRPCClient connects to the server configured in config
func NewRPCClient(config common.ClientConfig, transport transport.IRPCClientTransport) (*RPCClient, error) {
	conn, err := transport.Connect(config)
	if err != nil {
		return nil, err
	}
	Logger.Debugf("Created RPC Client%s", config.String())
	return &RPCClient{config: config, conn: conn}, nil
}

// Echo sends recs and returns the records the server echoed
func (c *RPCClient) Echo(recs []options.Record) ([]options.Record, error) {
	return c.invoke(common.MsgTEcho, recs)
}

// Stats returns the server counters as records
func (c *RPCClient) Stats() ([]options.Record, error) {
	return c.invoke(common.MsgTStats, nil)
}

// Close closes the connection
func (c *RPCClient) Close() error {
	return c.conn.Close()
}

func (c *RPCClient) invoke(msgType common.MessageType, recs []options.Record) ([]options.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if timeout := c.config.Timeout(); timeout > 0 {
		if err := c.conn.SetDeadline(time.Now().Add(timeout)); err != nil {
			return nil, err
		}
		defer func() { _ = c.conn.SetDeadline(time.Time{}) }()
	}

	src := builder.FromConn(c.conn).WithInvert(c.config.Invert)
	return invokeRPCRequest(src, msgType, recs)
}
