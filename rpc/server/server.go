package server

import (
	"context"
	"errors"
	"fmt"
	"github.com/Driw/streamio/lib/builder"
	"github.com/Driw/streamio/lib/options"
	"github.com/Driw/streamio/rpc/common"
	"github.com/Driw/streamio/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"net"
	"net/http"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"
)

var Logger = logger.GetLogger("rpc")

// maxErrorLength is the longest error text that fits in a string record
const maxErrorLength = 255

// NewRPCServer creates a new option server
// It takes a config and a transport as parameters
//
// Usage:
//
//	s := server.NewRPCServer(
//		*config,
//		tcp.NewTCPDefaultServerTransport(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewRPCServer(config common.ServerConfig, transport transport.IRPCServerTransport) *RPCServer {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	s := &RPCServer{
		config:    config,
		transport: transport,
	}
	s.stats = newServerStats(transport.Sessions)
	s.adapters = map[common.MessageType]IRPCServerAdapter{
		common.MsgTEcho:  NewEchoServerAdapter(),
		common.MsgTStats: newStatsServerAdapter(s.stats),
	}

	Logger.Infof("Created RPC Server")
	Logger.Infof(config.String())

	return s
}

// RPCServer answers option packets received through a transport
type RPCServer struct {
	config    common.ServerConfig
	transport transport.IRPCServerTransport
	adapters  map[common.MessageType]IRPCServerAdapter
	stats     *serverStats

	metricsMu sync.Mutex
	metrics   *http.Server
}

func (s *RPCServer) registerTransportHandler() {
	s.transport.RegisterHandler(s.handle)
}

// handle reads one request from conn and writes the response
func (s *RPCServer) handle(conn transport.IConn) error {
	src := builder.FromConn(conn).WithInvert(s.config.Invert)

	in, err := builder.StaticInputPacket(src.WithName("request header"), common.HeaderSize)
	if err != nil {
		return err
	}
	header, err := common.ReadHeader(in, s.config.MaxPacketSize)
	if err != nil {
		// the payload boundary is unknown, so the session cannot continue
		s.stats.errors.Inc()
		_ = s.reply(src, common.MsgTError, errorRecords(err))
		return err
	}
	s.stats.bytesIn.Add(common.HeaderSize + int(header.Length))
	s.stats.sizes.Update(float64(header.Length))

	payload, err := common.ReadPayload(src, "request payload", int(header.Length))
	if err != nil {
		return err
	}
	s.stats.requests.Inc()

	req, err := options.NewReader(payload).ReadAll()
	if err != nil {
		s.stats.errors.Inc()
		return s.reply(src, common.MsgTError, errorRecords(fmt.Errorf("failed to decode request: %w", err)))
	}
	s.stats.records.Add(len(req))
	Logger.Debugf("%s request from %s: %d records", header.Type, conn.RemoteAddr(), len(req))

	adapter, ok := s.adapters[header.Type]
	if !ok {
		s.stats.errors.Inc()
		return s.reply(src, common.MsgTError, errorRecords(fmt.Errorf("unsupported message type: %s", header.Type)))
	}

	resp, err := adapter.Handle(req)
	if err != nil {
		s.stats.errors.Inc()
		return s.reply(src, common.MsgTError, errorRecords(err))
	}
	return s.reply(src, header.Type, resp)
}

// reply sends a header and recs in a static output packet of the exact size
func (s *RPCServer) reply(src builder.Source, msgType common.MessageType, recs []options.Record) error {
	size := options.Size(recs...)
	out, err := builder.StaticOutputPacket(src.WithName("response"), common.HeaderSize+int(size))
	if err != nil {
		return err
	}

	if err := common.WriteHeader(out, common.Header{Type: msgType, Length: int32(size)}); err != nil {
		_ = out.Close()
		return err
	}
	if err := options.NewWriter(out).PutAll(recs); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	s.stats.bytesOut.Add(common.HeaderSize + int(size))
	return nil
}

// errorRecords renders err as the payload of an error message
func errorRecords(err error) []options.Record {
	msg := err.Error()
	if len(msg) > maxErrorLength {
		msg = msg[:maxErrorLength]
	}
	return []options.Record{options.String("error", msg)}
}

func (s *RPCServer) init() error {
	// Init logger
	if s.config.LogLevel != "" {
		if err := common.InitLoggers(s.config.LogLevel); err != nil {
			return err
		}
	}

	if s.config.MetricsEndpoint != "" {
		s.serveMetrics()
	}

	// Configure the transport layer
	s.registerTransportHandler()
	return nil
}

// serveMetrics exposes the server counters in the Prometheus text format
func (s *RPCServer) serveMetrics() {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		s.stats.set.WritePrometheus(w)
	})

	srv := &http.Server{
		Addr:              s.config.MetricsEndpoint,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.metricsMu.Lock()
	s.metrics = srv
	s.metricsMu.Unlock()

	go func() {
		Logger.Infof("Serving metrics on %s/metrics", s.config.MetricsEndpoint)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			Logger.Errorf("metrics server failed: %v", err)
		}
	}()
}

// Serve starts the option server
// This function will also initialize the server and start the transport layer
func (s *RPCServer) Serve() error {
	if err := s.init(); err != nil {
		return err
	}
	return s.transport.Listen(s.config)
}

// ServeListener is Serve on an already created listener
func (s *RPCServer) ServeListener(listener net.Listener) error {
	if err := s.init(); err != nil {
		return err
	}
	return s.transport.Serve(listener, s.config)
}

// Close stops the transport and the metrics endpoint
func (s *RPCServer) Close() error {
	s.metricsMu.Lock()
	srv := s.metrics
	s.metricsMu.Unlock()

	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			Logger.Warningf("failed to stop metrics server: %v", err)
		}
	}
	return s.transport.Close()
}
