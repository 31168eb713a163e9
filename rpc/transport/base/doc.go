// Package base provides the protocol independent part of the transport layer:
// the connection adapter used for packet framing and the generic client and
// server transports. Socket specific behaviour is injected through the
// IClientConnector and IServerConnector interfaces (see the tcp and unix
// packages).
//
// Key Components:
//
//   - Conn: Wraps a net.Conn with a read buffer and implements
//     packet.Connection. On Linux and Darwin the bytes-available query uses the
//     FIONREAD ioctl and the connected-state query a non-blocking MSG_PEEK
//     receive. Elsewhere both fall back to a short read probe into the buffer,
//     which limits Available to the buffer size.
//
//   - clientTransport: Dials an endpoint and upgrades the connection with the
//     socket settings of the configuration.
//
//   - serverTransport: Accepts sessions, keeps them in a concurrent registry
//     and calls the handler once per message. Between messages a session
//     blocks in Conn.Wait instead of polling.
//
// Thread Safety:
//
//	The server creates a dedicated goroutine for each session and handles the
//	messages of one session sequentially. A Conn must only be used by one
//	goroutine at a time, with the exception of Close.
package base
