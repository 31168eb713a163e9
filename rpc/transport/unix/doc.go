// Package unix implements the Unix domain socket transport for the option
// server and client, for processes running on the same machine.
//
// This package extends the base transport layer with Unix socket-specific
// connectors while inheriting session handling and the packet connection
// adapter from the base package.
//
// The listener removes a stale socket file before binding. Only the buffer
// sizes of the socket configuration apply to Unix sockets.
//
// The default read buffer size is 64 KB.
package unix
