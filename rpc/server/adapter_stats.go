package server

import (
	"github.com/Driw/streamio/lib/options"
	"github.com/VictoriaMetrics/metrics"
)

// serverStats holds the counters of one server. Every server registers them
// in its own metrics.Set so several servers can live in one process.
type serverStats struct {
	set      *metrics.Set
	requests *metrics.Counter
	errors   *metrics.Counter
	records  *metrics.Counter
	bytesIn  *metrics.Counter
	bytesOut *metrics.Counter
	sizes    *metrics.Histogram
	sessions func() int
}

func newServerStats(sessions func() int) *serverStats {
	set := metrics.NewSet()
	stats := &serverStats{
		set:      set,
		requests: set.NewCounter("streamio_requests_total"),
		errors:   set.NewCounter("streamio_request_errors_total"),
		records:  set.NewCounter("streamio_records_total"),
		bytesIn:  set.NewCounter("streamio_bytes_received_total"),
		bytesOut: set.NewCounter("streamio_bytes_sent_total"),
		sizes:    set.NewHistogram("streamio_request_payload_bytes"),
		sessions: sessions,
	}
	set.NewGauge("streamio_sessions", func() float64 {
		return float64(stats.sessions())
	})
	return stats
}

// newStatsServerAdapter returns an adapter that answers with the server counters
func newStatsServerAdapter(stats *serverStats) IRPCServerAdapter {
	return &statsServerAdapterImpl{stats: stats}
}

type statsServerAdapterImpl struct {
	stats *serverStats
}

func (adapter *statsServerAdapterImpl) Handle(_ []options.Record) ([]options.Record, error) {
	s := adapter.stats
	return []options.Record{
		options.Long("requests", int64(s.requests.Get())),
		options.Long("errors", int64(s.errors.Get())),
		options.Long("records", int64(s.records.Get())),
		options.Long("bytes_in", int64(s.bytesIn.Get())),
		options.Long("bytes_out", int64(s.bytesOut.Get())),
		options.Int("sessions", int32(s.sessions())),
	}, nil
}
