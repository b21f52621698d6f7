package storage

import (
	"fmt"

	"github.com/interactiv/extension/internal/config"
	"github.com/interactiv/extension/internal/database"
	"github.com/interactiv/extension/internal/storage/gormstore"
	"github.com/interactiv/extension/internal/storage/memory"
	sqlitestorage "github.com/interactiv/extension/internal/storage/sqlite"
	"github.com/rs/zerolog"
)

// NewBackend creates a storage backend based on configuration. A postgres
// backend whose server cannot be reached falls back to sqlite.
func NewBackend(cfg config.StorageConfig, db config.DBConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "memory", "":
		return memory.New(cfg.Memory), nil
	case "sqlite":
		return sqlitestorage.New(sqlitestorage.Config{
			DumpInterval: cfg.SQLite.DumpInterval,
			DumpPath:     cfg.SQLite.DumpPath,
			Queue:        cfg.Queue,
		}, log)
	case "postgres":
		conn, err := database.OpenPostgres(db, log)
		if err != nil {
			log.Error().Err(err).Msg("Failed to connect to Postgres, falling back to SQLite")
			return sqlitestorage.New(sqlitestorage.Config{
				DumpInterval: cfg.SQLite.DumpInterval,
				DumpPath:     cfg.SQLite.DumpPath,
				Queue:        cfg.Queue,
			}, log)
		}
		return gormstore.New(gormstore.Dependencies{DB: conn, Logger: log, Queue: cfg.Queue}), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Type)
	}
}
