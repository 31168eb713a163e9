//go:build !linux && !darwin

package base

func (c *Conn) pending() (int, error) {
	return c.probePending()
}

func (c *Conn) peerConnected() bool {
	return c.probeConnected()
}
