package util

import (
	"fmt"
	"github.com/Driw/streamio/lib/options"
	"github.com/Driw/streamio/rpc/common"
	"github.com/Driw/streamio/rpc/transport"
	"github.com/Driw/streamio/rpc/transport/tcp"
	"github.com/Driw/streamio/rpc/transport/unix"
	"github.com/joho/godotenv"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"strings"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// EnvPrefix is the prefix of all environment variables read by the cli
	EnvPrefix = "streamio"
)

var Logger = logger.GetLogger("cli")

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// InitConfig loads the env files and binds the environment to viper
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// --------------------------------------------------------------------------
// Socket and client flags
// --------------------------------------------------------------------------

// SetupSocketFlags adds the socket tuning flags shared by server and client
func SetupSocketFlags(cmd *cobra.Command) {
	key := "socket-write-buffer"
	cmd.PersistentFlags().Int(key, 0, WrapString("The size of the socket write buffer in KB, 0 keeps the OS default"))

	key = "socket-read-buffer"
	cmd.PersistentFlags().Int(key, 0, WrapString("The size of the socket read buffer in KB, 0 keeps the OS default"))

	key = "tcp-nodelay"
	cmd.PersistentFlags().Bool(key, true, WrapString("Whether to enable TCP_NODELAY (tcp only)"))

	key = "tcp-keepalive"
	cmd.PersistentFlags().Int(key, 0, WrapString("The keepalive interval in seconds, 0 disables it (tcp only)"))

	key = "tcp-linger"
	cmd.PersistentFlags().Int(key, -1, WrapString("The linger time in seconds, negative keeps the OS default (tcp only)"))
}

// GetSocketConfig reads the socket flags from viper
func GetSocketConfig() common.SocketConfig {
	return common.SocketConfig{
		TCPNoDelay:      viper.GetBool("tcp-nodelay"),
		TCPKeepAliveSec: viper.GetInt("tcp-keepalive"),
		TCPLingerSec:    viper.GetInt("tcp-linger"),
		WriteBufferSize: viper.GetInt("socket-write-buffer") * 1024,
		ReadBufferSize:  viper.GetInt("socket-read-buffer") * 1024,
	}
}

// SetupRPCClientFlags adds the connection flags of the option client to a command
func SetupRPCClientFlags(cmd *cobra.Command) {
	key := "timeout"
	cmd.PersistentFlags().Int64(key, 10, WrapString("The timeout in seconds of a single request"))

	key = "endpoint"
	cmd.PersistentFlags().String(key, "localhost:8080", WrapString("The address of the option server (e.g. localhost:8080, /tmp/streamio.sock)"))

	SetupSocketFlags(cmd)
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() *common.ClientConfig {
	return &common.ClientConfig{
		Transport:     viper.GetString("transport"),
		Endpoint:      viper.GetString("endpoint"),
		TimeoutSecond: viper.GetInt64("timeout"),
		Invert:        viper.GetBool("invert"),
		Socket:        GetSocketConfig(),
	}
}

// GetClientTransport creates the client transport based on configuration
func GetClientTransport() (transport.IRPCClientTransport, error) {
	switch viper.GetString("transport") {
	case common.TransportTCP:
		return tcp.NewTCPClientTransport(), nil
	case common.TransportUnix:
		return unix.NewUnixClientTransport(), nil
	default:
		return nil, fmt.Errorf("invalid transport %s", viper.GetString("transport"))
	}
}

// GetServerTransport creates the server transport based on configuration
func GetServerTransport() (transport.IRPCServerTransport, error) {
	switch viper.GetString("transport") {
	case common.TransportTCP:
		return tcp.NewTCPDefaultServerTransport(), nil
	case common.TransportUnix:
		return unix.NewUnixDefaultServerTransport(), nil
	default:
		return nil, fmt.Errorf("invalid transport %s", viper.GetString("transport"))
	}
}

// --------------------------------------------------------------------------
// Option records
// --------------------------------------------------------------------------

// ParseRecords parses a list of name:type=value arguments
func ParseRecords(args []string) ([]options.Record, error) {
	recs := make([]options.Record, 0, len(args))
	for _, arg := range args {
		rec, err := options.ParseRecord(arg)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
