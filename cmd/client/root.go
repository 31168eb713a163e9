package client

import (
	"fmt"
	"github.com/Driw/streamio/cmd/util"
	"github.com/Driw/streamio/lib/options"
	"github.com/Driw/streamio/rpc/client"
	"github.com/spf13/cobra"
	"os"
)

var (
	rpcClient *client.RPCClient

	// ClientCommands represents the client command group
	ClientCommands = &cobra.Command{
		Use:                "client",
		Short:              "Exchange option records with an option server",
		PersistentPreRunE:  setupClient,
		PersistentPostRunE: closeClient,
	}

	sendCmd = &cobra.Command{
		Use:   "send [name:type=value]...",
		Short: "Sends option records and prints the echoed records",
		Long:  `Sends option records to the server and prints the records it echoes. Types are byte, char, short, int, long, float, double, string and bool (e.g. send port:int=8080 name:string=hello)`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := util.ParseRecords(args)
			if err != nil {
				return err
			}
			echoed, err := rpcClient.Echo(recs)
			if err != nil {
				return err
			}
			return options.ExportText(os.Stdout, echoed)
		},
	}

	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Prints the server counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := rpcClient.Stats()
			if err != nil {
				return err
			}
			for _, rec := range stats {
				fmt.Printf("%-12s %s\n", rec.Name, rec.Text())
			}
			return nil
		},
	}
)

func init() {
	// Add common RPC flags to the client command
	util.SetupRPCClientFlags(ClientCommands)

	// Add subcommands
	ClientCommands.AddCommand(sendCmd)
	ClientCommands.AddCommand(statsCmd)
	ClientCommands.AddCommand(perfTestCmd)
}

// setupClient connects the option client
func setupClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	t, err := util.GetClientTransport()
	if err != nil {
		return err
	}

	rpcClient, err = client.NewRPCClient(*util.GetClientConfig(), t)
	return err
}

func closeClient(_ *cobra.Command, _ []string) error {
	if rpcClient == nil {
		return nil
	}
	return rpcClient.Close()
}
