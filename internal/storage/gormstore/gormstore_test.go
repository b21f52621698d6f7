package gormstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/interactiv/extension/internal/config"
	"github.com/interactiv/extension/internal/database"
	"github.com/interactiv/extension/internal/model"
	"github.com/interactiv/extension/internal/model/convert"
	"github.com/interactiv/extension/pkg/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	db, err := database.OpenSqlite(filepath.Join(t.TempDir(), "journal.db"), zerolog.Nop())
	require.NoError(t, err)

	b := New(Dependencies{
		DB:     db,
		Logger: zerolog.Nop(),
		// long interval so only explicit flushes write
		Queue: config.QueueConfig{FlushInterval: time.Hour, BatchSize: 2},
	})
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func startSession(t *testing.T, b *Backend) {
	t.Helper()
	require.NoError(t, b.StartSession(&core.Session{
		ID:        "0b7c3a4e-1111-4000-8000-000000000002",
		StartTime: time.Now(),
		Character: "Michael",
	}))
}

func TestNew_Defaults(t *testing.T) {
	b := New(Dependencies{})
	assert.Equal(t, defaultFlushInterval, b.deps.Queue.FlushInterval)
	assert.Equal(t, defaultBatchSize, b.deps.Queue.BatchSize)
}

func TestInit_NoDB(t *testing.T) {
	assert.Error(t, New(Dependencies{Logger: zerolog.Nop()}).Init())
}

func TestRecordWithoutSession(t *testing.T) {
	b := newTestBackend(t)
	assert.ErrorIs(t, b.RecordInteraction(&core.Interaction{}), ErrNoSession)
	assert.ErrorIs(t, b.RecordTyreSlash(&core.TyreSlash{}), ErrNoSession)
	assert.Zero(t, b.Pending())
}

func TestRecordAndFlush(t *testing.T) {
	b := newTestBackend(t)
	startSession(t, b)

	for i := 0; i < 5; i++ {
		require.NoError(t, b.RecordInteraction(&core.Interaction{
			Time:      time.Now(),
			Tick:      uint64(i),
			ModelName: "prop_bench_01a",
			Action:    "Sit",
			Position:  core.Vector3{X: 10, Y: 20, Z: 30},
			Offsets:   []core.Vector3{{X: 0.5}},
		}))
	}
	require.NoError(t, b.RecordTyreSlash(&core.TyreSlash{Time: time.Now(), VehicleModel: "BANSHEE", Tyre: 1}))
	assert.Equal(t, 6, b.Pending())

	require.NoError(t, b.Flush())
	assert.Zero(t, b.Pending())

	var rows []model.Interaction
	require.NoError(t, b.DB().Order("tick").Find(&rows).Error)
	require.Len(t, rows, 5)

	var session model.Session
	require.NoError(t, b.DB().First(&session).Error)
	assert.Equal(t, session.ID, rows[0].SessionID)

	got := convert.InteractionToCore(rows[4], session.UUID)
	assert.Equal(t, uint64(4), got.Tick)
	assert.Equal(t, core.Vector3{X: 10, Y: 20, Z: 30}, got.Position)
	assert.Equal(t, []core.Vector3{{X: 0.5}}, got.Offsets)

	var slashes int64
	require.NoError(t, b.DB().Model(&model.TyreSlash{}).Count(&slashes).Error)
	assert.Equal(t, int64(1), slashes)
}

func TestEndSession(t *testing.T) {
	b := newTestBackend(t)
	startSession(t, b)
	require.NoError(t, b.RecordInteraction(&core.Interaction{Action: "Sit"}))

	require.NoError(t, b.EndSession())
	assert.Zero(t, b.Pending())

	var session model.Session
	require.NoError(t, b.DB().First(&session).Error)
	assert.True(t, session.EndTime.Valid)

	// ended sessions take no more records
	assert.ErrorIs(t, b.RecordInteraction(&core.Interaction{}), ErrNoSession)
	assert.NoError(t, b.EndSession())
}

func TestUpdateSession(t *testing.T) {
	b := newTestBackend(t)
	assert.NoError(t, b.UpdateSession(&core.Session{Character: "nobody"}))

	startSession(t, b)
	require.NoError(t, b.UpdateSession(&core.Session{
		Character:   "Trevor",
		PropsFile:   "propsList.xml",
		PropsLoaded: 14,
	}))

	var session model.Session
	require.NoError(t, b.DB().First(&session).Error)
	assert.Equal(t, "Trevor", session.Character)
	assert.Equal(t, "propsList.xml", session.PropsFile)
	assert.Equal(t, 14, session.PropsLoaded)
	assert.Equal(t, "0b7c3a4e-1111-4000-8000-000000000002", session.UUID)
}

func TestCloseFlushes(t *testing.T) {
	b := newTestBackend(t)
	startSession(t, b)
	require.NoError(t, b.RecordTyreSlash(&core.TyreSlash{Tyre: 3}))

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	var n int64
	require.NoError(t, b.DB().Model(&model.TyreSlash{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestFlushFailureRequeues(t *testing.T) {
	b := newTestBackend(t)
	startSession(t, b)
	require.NoError(t, b.RecordInteraction(&core.Interaction{Action: "Sit"}))

	require.NoError(t, b.DB().Migrator().DropTable(&model.Interaction{}))
	assert.Error(t, b.Flush())
	assert.Equal(t, 1, b.Pending())
}

func TestRecordPerformance(t *testing.T) {
	b := newTestBackend(t)
	assert.ErrorIs(t, b.RecordPerformance(model.PluginPerformance{}), ErrNoSession)

	startSession(t, b)
	require.NoError(t, b.RecordPerformance(model.PluginPerformance{Time: time.Now(), Ticks: 600, PropsLoaded: 3}))

	var rows []model.PluginPerformance
	require.NoError(t, b.DB().Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, uint64(600), rows[0].Ticks)
	assert.NotZero(t, rows[0].SessionID)
}
