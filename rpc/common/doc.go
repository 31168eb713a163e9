// Package common provides the data structures and utilities shared by the
// option server, the option client and the CLI.
//
// The package focuses on:
//   - The message header framing every request and response
//   - Configuration structures for client and server components
//   - Custom logging implementation on top of the dragonboat logger facade
//
// Key Components:
//
//   - Header: A 5 byte prefix (message type and payload length) that lets the
//     receiver read the following option records with a static input packet of
//     exactly the announced size.
//
//   - ServerConfig: Listen address, transport, socket tuning, request limits
//     and the optional metrics endpoint of the server.
//
//   - ClientConfig: Endpoint, transport, timeout and socket tuning of a client.
//
//   - Logger: Custom ILogger installed as the dragonboat logger factory so
//     every package logs in the same "LEVEL | name | message" layout.
package common
