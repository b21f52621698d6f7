package sqlitestorage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/interactiv/extension/internal/database"
	"github.com/interactiv/extension/internal/model"
	"github.com/interactiv/extension/pkg/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDSN_Unique(t *testing.T) {
	assert.NotEqual(t, memoryDSN(), memoryDSN())
}

func TestBackends_DoNotShareMemory(t *testing.T) {
	a, err := New(Config{}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, a.Init())
	defer a.Close()

	b, err := New(Config{}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, b.Init())
	defer b.Close()

	require.NoError(t, a.StartSession(&core.Session{ID: "a"}))

	var n int64
	require.NoError(t, b.db.Model(&model.Session{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCloseWritesFinalDump(t *testing.T) {
	dump := filepath.Join(t.TempDir(), "journal", "interactiv.db")

	b, err := New(Config{DumpPath: dump, DumpInterval: time.Hour}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, b.Init())

	require.NoError(t, b.StartSession(&core.Session{ID: "s-1", Character: "Trevor", StartTime: time.Now()}))
	require.NoError(t, b.RecordInteraction(&core.Interaction{ModelName: "prop_bench_01a", Action: "Sit"}))
	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	assert.Equal(t, dump, b.ExportedFilePath())
	_, err = os.Stat(dump)
	require.NoError(t, err)

	restored, err := database.OpenSqlite(dump, zerolog.Nop())
	require.NoError(t, err)
	var rows []model.Interaction
	require.NoError(t, restored.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sit", rows[0].Action)
}

func TestPeriodicDump(t *testing.T) {
	dump := filepath.Join(t.TempDir(), "periodic.db")

	b, err := New(Config{DumpPath: dump, DumpInterval: 20 * time.Millisecond}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, b.Init())
	defer b.Close()

	assert.Eventually(t, func() bool {
		_, err := os.Stat(dump)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
}
