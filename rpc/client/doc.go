// Package client implements the client side of the option server.
//
// A request is written through a dynamic output packet, so every record
// reaches the connection as soon as it is put. The response header is read
// with a static input packet, then exactly the payload length it announces
// with common.ReadPayload.
//
// Usage Example:
//
//	c, err := client.NewRPCClient(common.ClientConfig{
//	  Transport: common.TransportTCP,
//	  Endpoint:  "localhost:8080",
//	}, tcp.NewTCPClientTransport())
//	if err != nil {
//	  log.Fatal(err)
//	}
//	defer c.Close()
//
//	echoed, err := c.Echo([]options.Record{options.Int("port", 8080)})
//
// Errors reported by the server wrap ErrRemote.
package client
