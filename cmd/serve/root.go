package serve

import (
	"fmt"
	cmdUtil "github.com/Driw/streamio/cmd/util"
	"github.com/Driw/streamio/rpc/common"
	"github.com/Driw/streamio/rpc/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
	"os/signal"
	"syscall"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the option server",
		Long:    `Start the option server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is STREAMIO_<flag> (e.g. STREAMIO_MAX_PACKET_SIZE=4096)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// add flags
	key := "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:8080", cmdUtil.WrapString("The address or socket path on which the server will listen (e.g. 0.0.0.0:8080, /tmp/streamio.sock)"))

	key = "metrics-endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("The address serving the Prometheus metrics at /metrics (e.g. localhost:9090), empty disables it"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 5, cmdUtil.WrapString("Timeout in seconds for a single request, 0 disables it"))

	key = "max-packet-size"
	ServeCmd.PersistentFlags().Int(key, 64*1024, cmdUtil.WrapString("The largest request payload in bytes the server accepts"))

	cmdUtil.SetupSocketFlags(ServeCmd)
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.Transport = viper.GetString("transport")
	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.MetricsEndpoint = viper.GetString("metrics-endpoint")
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.MaxPacketSize = viper.GetInt("max-packet-size")
	serveCmdConfig.Invert = viper.GetBool("invert")
	serveCmdConfig.Socket = cmdUtil.GetSocketConfig()
	serveCmdConfig.LogLevel = viper.GetString("log-level")

	if serveCmdConfig.MaxPacketSize <= 0 {
		return fmt.Errorf("max-packet-size must be positive, got %d", serveCmdConfig.MaxPacketSize)
	}
	return nil
}

// run starts the option server and stops it on SIGINT or SIGTERM
func run(_ *cobra.Command, _ []string) error {
	t, err := cmdUtil.GetServerTransport()
	if err != nil {
		return err
	}

	serv := server.NewRPCServer(*serveCmdConfig, t)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cmdUtil.Logger.Infof("Shutting down")
		_ = serv.Close()
	}()

	return serv.Serve()
}
