// Package rpc provides the option server and client that exchange option
// records as packets over a socket.
//
// The package is organized into several subpackages:
//
//   - common: The message header, configuration structures, and logging.
//
//   - transport: Session handling with pluggable socket implementations
//     (TCP, Unix sockets). A session is a packet.Connection.
//
//   - client: Sends option records and reads the server answer.
//
//   - server: Answers echo and stats requests through adapters and exposes
//     its counters as Prometheus metrics.
package rpc
