package base

import (
	"fmt"
	"github.com/Driw/streamio/rpc/common"
	"github.com/Driw/streamio/rpc/transport"
	"github.com/puzpuzpuz/xsync/v3"
	"net"
	"sync"
	"sync/atomic"
)

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IServerConnector defines the interface for transport-specific server operations
type IServerConnector interface {
	// Listen creates a listener and returns it
	Listen(config common.ServerConfig) (net.Listener, error)

	// UpgradeConnection applies the socket settings to an accepted connection
	UpgradeConnection(conn net.Conn, socket common.SocketConfig) error

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverTransport implements the core server transport functionality
type serverTransport struct {
	connector  IServerConnector
	handler    transport.ServerHandleFunc
	config     common.ServerConfig
	bufferSize int

	listenerMu sync.Mutex
	listener   net.Listener

	sessions      *xsync.MapOf[uint64, *Conn]
	nextSessionID atomic.Uint64
	closing       atomic.Bool
	wg            sync.WaitGroup
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseServerTransport creates a new base server transport. bufferSize is
// the read buffer of every session and bounds the largest packet on platforms
// without a bytes-available ioctl.
func NewBaseServerTransport(connector IServerConnector, bufferSize int) transport.IRPCServerTransport {
	return &serverTransport{
		connector:  connector,
		bufferSize: bufferSize,
		sessions:   xsync.NewMapOf[uint64, *Conn](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *serverTransport) Listen(config common.ServerConfig) error {
	listener, err := t.connector.Listen(config)
	if err != nil {
		return fmt.Errorf("failed to create listener: %v", err)
	}
	return t.Serve(listener, config)
}

func (t *serverTransport) Serve(listener net.Listener, config common.ServerConfig) error {
	if t.handler == nil {
		return fmt.Errorf("no handler registered")
	}
	t.config = config

	t.listenerMu.Lock()
	t.listener = listener
	t.listenerMu.Unlock()

	Logger.Infof("Starting %s server on %s", t.connector.GetName(), listener.Addr())

	for {
		conn, err := listener.Accept()
		if err != nil {
			if t.closing.Load() || isClosed(err) {
				t.wg.Wait()
				Logger.Infof("Stopped %s server on %s", t.connector.GetName(), listener.Addr())
				return nil
			}
			Logger.Errorf("Accept error: %v", err)
			continue
		}

		if err := t.connector.UpgradeConnection(conn, config.Socket); err != nil {
			Logger.Warningf("Failed to upgrade connection from %s: %v", conn.RemoteAddr(), err)
		}

		t.wg.Add(1)
		go t.handleConnection(conn)
	}
}

func (t *serverTransport) Sessions() int {
	return t.sessions.Size()
}

func (t *serverTransport) Close() error {
	t.closing.Store(true)

	t.listenerMu.Lock()
	listener := t.listener
	t.listenerMu.Unlock()

	var err error
	if listener != nil {
		err = listener.Close()
	}
	t.sessions.Range(func(id uint64, conn *Conn) bool {
		_ = conn.Close()
		return true
	})
	return err
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// handleConnection serves the messages of one session until the peer leaves
func (t *serverTransport) handleConnection(raw net.Conn) {
	defer t.wg.Done()

	id := t.nextSessionID.Add(1)
	conn := NewConn(raw, t.bufferSize)
	t.sessions.Store(id, conn)
	defer func() {
		t.sessions.Delete(id)
		_ = conn.Close()
	}()

	Logger.Debugf("Session %d opened by %s", id, raw.RemoteAddr())
	timeout := t.config.Timeout()

	for {
		// idle sessions block here instead of polling
		if err := conn.Wait(); err != nil {
			if isClosed(err) || t.closing.Load() {
				Logger.Debugf("Session %d closed", id)
			} else {
				Logger.Errorf("Session %d: error waiting for request: %v", id, err)
			}
			return
		}

		if err := setDeadline(conn, timeout); err != nil {
			Logger.Errorf("Session %d: failed to set deadline: %v", id, err)
			return
		}

		if err := t.handler(conn); err != nil {
			Logger.Errorf("Session %d: error handling request: %v", id, err)
			return
		}

		if err := setDeadline(conn, 0); err != nil {
			Logger.Errorf("Session %d: failed to clear deadline: %v", id, err)
			return
		}
	}
}
