package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644))
	return dir
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"logLevel": "debug",
		"props": { "file": "custom.xml" },
		"db": { "host": "10.0.0.1", "port": "5433" }
	}`)

	require.NoError(t, Load(dir))

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, "custom.xml", viper.GetString("props.file"))
	assert.Equal(t, "10.0.0.1", viper.GetString("db.host"))
	assert.Equal(t, "5433", viper.GetString("db.port"))
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{}`)))

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "./interactivlogs", viper.GetString("logsDir"))
	assert.Equal(t, "propsList.xml", viper.GetString("props.file"))
	assert.Equal(t, 1.5, viper.GetFloat64("scan.radius"))
	assert.Equal(t, true, viper.GetBool("slash.enabled"))
	assert.Equal(t, "Context", viper.GetString("slash.control"))
	assert.Equal(t, "memory", viper.GetString("storage.type"))
	assert.Equal(t, "localhost", viper.GetString("db.host"))
	assert.Equal(t, "interactiv", viper.GetString("db.database"))
	assert.Equal(t, false, viper.GetBool("influx.enabled"))
	assert.Equal(t, false, viper.GetBool("graylog.enabled"))
	assert.Equal(t, "localhost:12201", viper.GetString("graylog.address"))
	assert.Equal(t, time.Second, viper.GetDuration("monitor.interval"))
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")

	assert.Equal(t, "info", GetString("logLevel"))
	assert.Equal(t, float32(1.5), GetScanConfig().Radius)
}

func TestGetters(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testKey", "testValue")
	viper.Set("testInt", 42)
	viper.Set("testBool", true)
	viper.Set("testDuration", "250ms")

	assert.Equal(t, "testValue", GetString("testKey"))
	assert.Equal(t, 42, GetInt("testInt"))
	assert.Equal(t, true, GetBool("testBool"))
	assert.Equal(t, 250*time.Millisecond, GetDuration("testDuration"))
}

func TestGetScanAndSlashConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{
		"scan": { "radius": 2.25 },
		"slash": { "enabled": false, "radius": 3, "control": "Jump" }
	}`)))

	assert.Equal(t, ScanConfig{Radius: 2.25}, GetScanConfig())
	assert.Equal(t, SlashConfig{Enabled: false, Radius: 3, Control: "Jump"}, GetSlashConfig())
}

func TestGetSlashConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{}`)))

	assert.Equal(t, SlashConfig{Enabled: true, Radius: 2, Control: "Context"}, GetSlashConfig())
}

func TestGetStorageConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{}`)))

	cfg := GetStorageConfig()
	assert.Equal(t, "memory", cfg.Type)
	assert.Equal(t, "./journal", cfg.Memory.OutputDir)
	assert.Equal(t, true, cfg.Memory.CompressOutput)
	assert.Equal(t, 3*time.Minute, cfg.SQLite.DumpInterval)
	assert.Equal(t, "./journal/interactiv.db", cfg.SQLite.DumpPath)
	assert.Equal(t, 2*time.Second, cfg.Queue.FlushInterval)
	assert.Equal(t, 500, cfg.Queue.BatchSize)
	assert.Equal(t, 10000, cfg.Queue.Limit)
}

func TestGetStorageConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{
		"storage": {
			"type": "sqlite",
			"memory": { "outputDir": "/tmp/out", "compressOutput": false },
			"sqlite": { "dumpInterval": "10m" }
		}
	}`)))

	sc := GetStorageConfig()
	assert.Equal(t, "sqlite", sc.Type)
	assert.Equal(t, "/tmp/out", sc.Memory.OutputDir)
	assert.Equal(t, false, sc.Memory.CompressOutput)
	assert.Equal(t, 10*time.Minute, sc.SQLite.DumpInterval)
}

func TestGetDBConfig_DSN(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{ "db": { "host": "db", "password": "pw" } }`)))

	assert.Equal(t, "host=db port=5432 user=postgres password=pw dbname=interactiv sslmode=disable", GetDBConfig().DSN())
}

func TestGetInfluxConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{ "influx": { "enabled": true, "protocol": "https", "host": "metrics" } }`)))

	ic := GetInfluxConfig()
	assert.True(t, ic.Enabled)
	assert.Equal(t, "https://metrics:8086", ic.URL())
	assert.Equal(t, "interactiv-metrics", ic.Bucket)
}

func TestGetGraylogConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{ "graylog": { "enabled": true, "address": "logs:12201" } }`)))

	assert.Equal(t, GraylogConfig{Enabled: true, Address: "logs:12201"}, GetGraylogConfig())
}
