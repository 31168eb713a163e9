package client

import (
	"encoding/csv"
	"fmt"
	"github.com/Driw/streamio/cmd/util"
	"github.com/Driw/streamio/lib/options"
	"github.com/Driw/streamio/rpc/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for option servers",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfNumThreads   = 10
	perfLargeRecords = 100
	perfSkip         = make([]string, 0)
)

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. echo,stats)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of connections used in parallel for the benchmark"))
	key = "large-records"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many records the echo-large request should carry"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfNumThreads = viper.GetInt("threads")
	perfLargeRecords = viper.GetInt("large-records")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	if perfNumThreads <= 0 {
		return fmt.Errorf("threads must be positive, got %d", perfNumThreads)
	}
	return nil
}

func runPerf(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for option servers")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(util.GetClientConfig().String())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Println()

	fmt.Println("starting tests...")

	small := []options.Record{options.Int("port", 8080)}
	large := make([]options.Record, perfLargeRecords)
	for i := range large {
		large[i] = options.String(fmt.Sprintf("key-%d", i), strings.Repeat("v", 64))
	}

	results := make(map[string]testing.BenchmarkResult)
	bench := func(name string, call func(c *client.RPCClient) error) {
		result := testing.Benchmark(func(b *testing.B) {
			if shouldSkip(name) {
				return
			}
			b.SetParallelism(perfNumThreads)
			b.ResetTimer()

			b.RunParallel(func(pb *testing.PB) {
				c, err := newClient()
				if err != nil {
					log.Printf("(%s) - error connecting: %v\n", name, err)
					return
				}
				defer c.Close()

				for pb.Next() {
					if err := call(c); err != nil {
						log.Printf("(%s) - request failed: %v\n", name, err)
					}
				}
			})
		})
		results[name] = result
		printResult(name, result)
	}

	bench("echo", func(c *client.RPCClient) error {
		_, err := c.Echo(small)
		return err
	})
	bench("echo-large", func(c *client.RPCClient) error {
		_, err := c.Echo(large)
		return err
	})
	bench("stats", func(c *client.RPCClient) error {
		_, err := c.Stats()
		return err
	})

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results); err != nil {
			return err
		}
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// newClient opens a dedicated connection, one per benchmark goroutine
func newClient() (*client.RPCClient, error) {
	t, err := util.GetClientTransport()
	if err != nil {
		return nil, err
	}
	return client.NewRPCClient(*util.GetClientConfig(), t)
}

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == skip {
			return true
		}
	}
	return false
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result testing.BenchmarkResult) {
	if result.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	// Print the formatted result
	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\n", test, nsPerOp, time.Duration(nsPerOp), opsPerSec)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]testing.BenchmarkResult) error {
	config := util.GetClientConfig()

	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "Skipped",
		"Endpoint", "Transport", "TimeoutSec", "Inverted",
		"Threads", "LargeRecords",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for test, result := range results {
		var nsPerOp float64
		var opsPerSec float64
		skipped := "true"

		if result.NsPerOp() != 0 {
			skipped = "false"
			nsPerOp = math.Max(float64(result.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			skipped,
			config.Endpoint,
			config.Transport,
			strconv.FormatInt(config.TimeoutSecond, 10),
			strconv.FormatBool(config.Invert),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfLargeRecords),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
