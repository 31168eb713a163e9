package options

import (
	"encoding/json"
	"github.com/Driw/streamio/lib/builder"
	"github.com/Driw/streamio/lib/compress"
	"github.com/Driw/streamio/lib/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

var sample = []options.Record{
	options.Int("port", 8080),
	options.String("host", "localhost"),
	options.Bool("tls", false),
}

func TestWriteAndReadRecords(t *testing.T) {
	for _, invert := range []bool{false, true} {
		path := filepath.Join(t.TempDir(), "opts.bin")
		require.NoError(t, WriteRecords(builder.FromPath(path).WithSize(8).WithIncrement(8).WithInvert(invert), sample))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, options.Size(sample...), info.Size(), "file is truncated to the written records")

		recs, err := ReadRecords(builder.FromPath(path).WithInvert(invert))
		require.NoError(t, err)
		assert.Equal(t, sample, recs)
	}
}

func TestExportRecords(t *testing.T) {
	for _, alg := range []compress.Algorithm{compress.None, compress.Deflate, compress.Zstd, compress.LZ4, compress.Snappy} {
		path := filepath.Join(t.TempDir(), "opts.json")
		require.NoError(t, ExportRecords(path, "json", alg, sample))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		plain, err := compress.ExpandBytes(data, alg)
		require.NoError(t, err, "algorithm %s", alg)

		var entries []map[string]any
		require.NoError(t, json.Unmarshal(plain, &entries), "algorithm %s", alg)
		require.Len(t, entries, 3)
		assert.Equal(t, "port", entries[0]["name"])
		assert.Equal(t, "host", entries[1]["name"])
	}
}

func TestExportUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opts.out")
	assert.Error(t, ExportRecords(path, "xml", compress.None, sample))
}
