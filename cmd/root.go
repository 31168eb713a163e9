package cmd

import (
	"fmt"
	"github.com/Driw/streamio/cmd/client"
	"github.com/Driw/streamio/cmd/options"
	"github.com/Driw/streamio/cmd/serve"
	"github.com/Driw/streamio/cmd/util"
	"github.com/Driw/streamio/rpc/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "streamio",
		Short: "byte streams, option records and packets",
		Long: fmt.Sprintf(`streamio (v%s)

Typed binary byte streams over memory, mapped files and live
connections, with a tagged option record format and an option
echo server to exchange records as packets.`, Version),
		SilenceUsage:      true,
		PersistentPreRunE: initLogging,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of streamio",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("streamio v%s\n", Version)
		},
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitConfig)

	// run the logging hook before the hooks of the command groups
	cobra.EnableTraverseRunHooks = true

	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(client.ClientCommands)
	RootCmd.AddCommand(options.OptionCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "transport"
	RootCmd.PersistentFlags().String(key, common.TransportTCP, util.WrapString("transport to use (tcp, unix)"))
	key = "invert"
	RootCmd.PersistentFlags().Bool(key, false, util.WrapString("use the reversed (little endian) byte order for all multi-byte values"))
	key = "log-level"
	RootCmd.PersistentFlags().String(key, "info", util.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// initLogging binds the global flags and installs the log format
func initLogging(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}
	return common.InitLoggers(viper.GetString("log-level"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
