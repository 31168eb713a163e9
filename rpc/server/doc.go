// Package server implements the option server. It reads requests framed as
// packets from a transport session, decodes their option records and answers
// through an adapter chosen by the message type.
//
// Wire Exchange:
//
//	request   header (type byte, int32 payload length), option records
//	response  header, option records
//
// The server reads the header with a static input packet of
// common.HeaderSize bytes, then exactly the announced payload length with
// common.ReadPayload, whose blocking reads are bounded by the session timeout
// rather than the read buffer. The response is written into a static output
// packet sized by options.Size, so it leaves the server in a single write
// per flushed record. All packets honour ServerConfig.Invert.
//
// Key Components:
//
//   - IRPCServerAdapter: answers the records of one message type.
//
//   - NewEchoServerAdapter: logs every record at debug level and sends the records back in
//     the order received.
//
//   - newStatsServerAdapter: answers with the request, error, record, byte and
//     session counters.
//
//   - NewRPCServer: creates a server on top of a transport. When
//     MetricsEndpoint is set the counters are also served in the Prometheus
//     text format at /metrics.
//
// Errors:
//
//	A request that cannot be decoded, or that the adapter rejects, is answered
//	with a MsgTError message holding a single "error" string record. A header
//	with an unknown type or an oversized payload is answered the same way,
//	after which the session is closed since the payload boundary is lost.
//
// Usage Example:
//
//	config := common.ServerConfig{
//	  Transport:     common.TransportTCP,
//	  Endpoint:      "0.0.0.0:8080",
//	  MaxPacketSize: 64 * 1024,
//	  LogLevel:      "info",
//	}
//
//	s := server.NewRPCServer(config, tcp.NewTCPDefaultServerTransport())
//	if err := s.Serve(); err != nil {
//	  log.Fatalf("Server error: %v", err)
//	}
package server
