package unix

import (
	"github.com/Driw/streamio/rpc/common"
	"net"
	"os"
	"path/filepath"
	"testing"
)

func TestListenRemovesStaleSocket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stale.sock")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	listener, err := connector{}.Listen(common.ServerConfig{Endpoint: path})
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	defer listener.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := listener.Accept()
		if err == nil {
			accepted <- conn
		}
		close(accepted)
	}()

	conn, err := connector{}.Connect(path)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer conn.Close()

	socket := common.SocketConfig{WriteBufferSize: 8192, ReadBufferSize: 8192}
	if err := (connector{}).UpgradeConnection(conn, socket); err != nil {
		t.Errorf("UpgradeConnection failed: %v", err)
	}
	if server, ok := <-accepted; ok {
		server.Close()
	} else {
		t.Error("no connection accepted")
	}
}
