// Package transport defines the interfaces the option server and client use to
// exchange packets over a network. It provides a common contract that all
// transport implementations must fulfill, so the packet layer never depends on
// a specific socket type.
//
// The package focuses on:
//   - Defining clear interfaces for client and server transport layers
//   - Exposing connections with the bytes-available and connected-state
//     queries that packet framing polls
//   - Enabling multiple transport implementations (TCP, Unix sockets)
//
// Key Components:
//
//   - IConn: A connection usable as packet.Connection, with a blocking Wait
//     used between messages so idle sessions do not poll.
//
//   - IRPCClientTransport: Interface for client-side transport implementations.
//
//   - IRPCServerTransport: Interface for server-side transport implementations
//     that accept sessions and call the registered handler per message.
//
//   - ServerHandleFunc: Function type for request handling callbacks.
package transport
