// Package sqlitestorage keeps the journal in an in-memory SQLite database and
// snapshots it to disk with VACUUM INTO. Everything else is the GORM backend.
package sqlitestorage

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/interactiv/extension/internal/config"
	"github.com/interactiv/extension/internal/database"
	"github.com/interactiv/extension/internal/storage/gormstore"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Config holds configuration for the SQLite storage backend.
type Config struct {
	DumpInterval time.Duration
	DumpPath     string // target of the periodic dumps
	Queue        config.QueueConfig
	// DSN overrides the private in-memory database.
	DSN string
}

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstore.Backend
	db      *gorm.DB
	cfg     Config
	log     zerolog.Logger
	stop    chan struct{}
	done    chan struct{}
	dumping bool
	once    sync.Once
}

// memoryDSN names a shared-cache in-memory database private to one backend.
func memoryDSN() string {
	return fmt.Sprintf("file:interactiv-%s?mode=memory&cache=shared", uuid.NewString())
}

// New creates a new SQLite storage backend.
func New(cfg Config, log zerolog.Logger) (*Backend, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = memoryDSN()
	}
	db, err := database.OpenSqlite(dsn, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite DB: %w", err)
	}

	return &Backend{
		Backend: gormstore.New(gormstore.Dependencies{DB: db, Logger: log, Queue: cfg.Queue}),
		db:      db,
		cfg:     cfg,
		log:     log.With().Str("backend", "sqlite").Logger(),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}, nil
}

// Init initializes the embedded GORM backend and starts the dump goroutine.
func (b *Backend) Init() error {
	if err := b.Backend.Init(); err != nil {
		return err
	}

	if b.cfg.DumpPath != "" && b.cfg.DumpInterval > 0 {
		b.dumping = true
		go b.dumpLoop()
	}
	return nil
}

// Close flushes the journal and writes a final dump.
func (b *Backend) Close() error {
	var err error
	b.once.Do(func() {
		close(b.stop)
		if b.dumping {
			<-b.done
		}
		if err = b.Backend.Close(); err != nil {
			return
		}
		if b.cfg.DumpPath != "" {
			err = b.Dump()
		}
	})
	return err
}

// Dump snapshots the database to DumpPath.
func (b *Backend) Dump() error {
	took, err := database.DumpMemoryDBToDisk(b.db, b.cfg.DumpPath)
	if err != nil {
		return err
	}
	b.log.Debug().Dur("took", took).Str("path", b.cfg.DumpPath).Msg("Dumped journal to disk")
	return nil
}

// ExportedFilePath returns the dump path.
func (b *Backend) ExportedFilePath() string {
	return b.cfg.DumpPath
}

func (b *Backend) dumpLoop() {
	defer close(b.done)

	ticker := time.NewTicker(b.cfg.DumpInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stop:
			return
		case <-ticker.C:
			if err := b.Dump(); err != nil {
				b.log.Error().Err(err).Msg("Error dumping to disk")
			}
		}
	}
}
