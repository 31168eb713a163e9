package server

import (
	"github.com/Driw/streamio/lib/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestEchoAdapter(t *testing.T) {
	req := []options.Record{options.Int("a", 1), options.String("b", "x")}
	resp, err := NewEchoServerAdapter().Handle(req)
	require.NoError(t, err)
	assert.Equal(t, req, resp)
}

func TestStatsAdapter(t *testing.T) {
	stats := newServerStats(func() int { return 3 })
	stats.requests.Add(4)
	stats.errors.Inc()
	stats.records.Add(7)
	stats.bytesIn.Add(100)
	stats.bytesOut.Add(60)

	resp, err := newStatsServerAdapter(stats).Handle(nil)
	require.NoError(t, err)
	assert.Equal(t, []options.Record{
		options.Long("requests", 4),
		options.Long("errors", 1),
		options.Long("records", 7),
		options.Long("bytes_in", 100),
		options.Long("bytes_out", 60),
		options.Int("sessions", 3),
	}, resp)
}
