// Package tcp implements the TCP socket transport for the option server and
// client. It provides concrete implementations of the base package's connector
// interfaces and applies the socket settings of the configuration (no delay,
// keep-alive, linger and buffer sizes) to every accepted or dialed connection.
//
// A single connector type serves both sides. Keep-alive uses the configured
// period as idle time and probe interval.
//
// The default read buffer size is 512 KB, which also bounds the packet size on
// platforms where the base package has to probe for available bytes.
package tcp
