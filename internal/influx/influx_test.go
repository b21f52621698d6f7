package influx

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/interactiv/extension/internal/config"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unreachable() config.InfluxConfig {
	return config.InfluxConfig{
		Enabled:  true,
		Protocol: "http",
		Host:     "127.0.0.1",
		Port:     "1",
		Org:      "interactiv",
		Bucket:   "interactiv-metrics",
	}
}

func TestConnect_Disabled(t *testing.T) {
	m := NewManager(config.InfluxConfig{}, zerolog.Nop(), "")
	assert.ErrorIs(t, m.Connect(context.Background()), ErrDisabled)
	assert.False(t, m.Online())
}

func TestWritePoint_NotConnected(t *testing.T) {
	m := NewManager(unreachable(), zerolog.Nop(), "")
	assert.Error(t, m.WritePoint(influxdb2_write.NewPointWithMeasurement("x")))
}

func TestConnect_UnreachableNeedsBackupPath(t *testing.T) {
	m := NewManager(unreachable(), zerolog.Nop(), "")
	assert.Error(t, m.Connect(context.Background()))
}

func TestBackupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "influx_backup.log.gz")
	m := NewManager(unreachable(), zerolog.Nop(), path)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, m.Connect(ctx))
	assert.False(t, m.Online())

	p := influxdb2_write.NewPoint(
		"plugin_performance",
		map[string]string{"session": "s-1"},
		map[string]interface{}{"ticks": 42},
		time.Unix(1700000000, 0),
	)
	require.NoError(t, m.WritePoint(p))
	require.NoError(t, m.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)

	sc := bufio.NewScanner(gz)
	require.True(t, sc.Scan())
	assert.Equal(t, "plugin_performance,session=s-1 ticks=42i 1700000000000000000", sc.Text())
}
