package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Transport names accepted in the configuration
const (
	TransportTCP  = "tcp"
	TransportUnix = "unix"
)

// --------------------------------------------------------------------------
// Socket configuration shared by server and client
// --------------------------------------------------------------------------

// SocketConfig holds the settings applied to every accepted or dialed connection
type SocketConfig struct {
	// TCPNoDelay disables Nagle's algorithm
	TCPNoDelay bool
	// TCPKeepAliveSec enables keep-alive probes with this period, 0 disables them
	TCPKeepAliveSec int
	// TCPLingerSec sets SO_LINGER, a negative value keeps the OS default
	TCPLingerSec    int
	WriteBufferSize int
	ReadBufferSize  int
}

func (c *SocketConfig) addFields(addField func(name, value string)) {
	addField("TCP No Delay", strconv.FormatBool(c.TCPNoDelay))
	addField("TCP Keep Alive", fmt.Sprintf("%d sec", c.TCPKeepAliveSec))
	addField("TCP Linger", fmt.Sprintf("%d sec", c.TCPLingerSec))
	addField("Write Buffer Size", strconv.Itoa(c.WriteBufferSize))
	addField("Read Buffer Size", strconv.Itoa(c.ReadBufferSize))
}

// --------------------------------------------------------------------------
// RPC server configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters for the option server
type ServerConfig struct {
	// Transport is the socket type, tcp or unix
	Transport string
	// Endpoint is the listen address or socket path
	Endpoint string
	// MetricsEndpoint serves the Prometheus metrics, empty disables it
	MetricsEndpoint string

	// TimeoutSecond bounds a single request exchange, 0 disables the deadline
	TimeoutSecond int64
	// MaxPacketSize is the largest request payload accepted
	MaxPacketSize int
	// Invert selects the reversed byte order for all packets
	Invert bool

	Socket SocketConfig

	// Logging configuration
	LogLevel string
}

// Timeout returns the request deadline as a duration
func (c *ServerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecond) * time.Second
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("RPC Server")
	addField("Transport", c.Transport)
	addField("Endpoint", c.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Max Packet Size", fmt.Sprintf("%d bytes", c.MaxPacketSize))
	addField("Byte Order", byteOrder(c.Invert))

	addSection("Socket")
	c.Socket.addFields(addField)

	addSection("Metrics")
	if c.MetricsEndpoint == "" {
		addField("Endpoint", "disabled")
	} else {
		addField("Endpoint", c.MetricsEndpoint)
	}

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds the parameters used to reach an option server
type ClientConfig struct {
	Transport     string
	Endpoint      string
	TimeoutSecond int64
	Invert        bool
	Socket        SocketConfig
}

// Timeout returns the request deadline as a duration
func (c *ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecond) * time.Second
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Client Configuration")
	addField("Transport", c.Transport)
	addField("Endpoint", c.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Byte Order", byteOrder(c.Invert))

	addSection("Socket")
	c.Socket.addFields(addField)

	return sb.String()
}

func byteOrder(invert bool) string {
	if invert {
		return "little endian (inverted)"
	}
	return "big endian"
}
