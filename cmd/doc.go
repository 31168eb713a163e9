// Package cmd implements the command-line interface of streamio. It provides
// a hierarchical command structure for running the option server, talking to
// it as a client and working with option record files.
//
// The package is organized into several subpackages:
//
//   - serve: Starts and configures the option server
//   - client: Sends option records to a server (send, stats, perf)
//   - options: Writes, dumps and exports option record files
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// Every flag can also be set through an environment variable named
// STREAMIO_<FLAG> (e.g. STREAMIO_LOG_LEVEL=debug). .env and .env.local are
// loaded on start.
//
// See streamio -help for a list of all commands.
package cmd
